package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/firego/fire-planner/internal/config"
	"github.com/firego/fire-planner/internal/output"
)

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "write a complete example plan file",
	RunE:  runExampleConfig,
}

func init() {
	exampleConfigCmd.Flags().StringP("output", "o", "fire_plan.yaml", "where to write the example plan")
	exampleConfigCmd.Flags().Bool("force", false, "overwrite an existing file")
	rootCmd.AddCommand(exampleConfigCmd)
}

func runExampleConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	plan := config.NewInputParser().CreateExamplePlan()
	if err := output.SaveConfiguration(plan, path); err != nil {
		return fmt.Errorf("failed to write example plan: %w", err)
	}
	fmt.Printf("Example plan written to %s\n", path)
	fmt.Println("Edit it to match your situation, then run: fireplan --config", path)
	return nil
}
