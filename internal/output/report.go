package output

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/firego/fire-planner/internal/domain"
)

// GenerateReport resolves a formatter by name or alias and writes its output
// to a timestamped file in the working directory.
func GenerateReport(results *domain.PlanComparison, format string) error {
	if f := GetFormatterByName(format); f != nil {
		_, err := WriteFormatted(f, results, extensionFor(f.Name()))
		return err
	}
	if NormalizeFormatName(format) == "all" {
		if _, err := WriteFormatted(ConsoleVerboseFormatter{}, results, "txt"); err != nil {
			return err
		}
		if _, err := WriteFormatted(CSVDetailedExporter{}, results, "csv"); err != nil {
			return err
		}
		if _, err := WriteFormatted(HTMLFormatter{}, results, "html"); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

func extensionFor(name string) string {
	switch {
	case name == "console" || name == "console-lite":
		return "txt"
	case strings.Contains(name, "csv"):
		return "csv"
	default:
		return name
	}
}

// SaveConfiguration writes a plan configuration back out as YAML.
func SaveConfiguration(config *domain.PlanConfig, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
