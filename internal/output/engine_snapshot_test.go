package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/config"
)

// TestEngineSnapshot produces a deterministic snapshot of core plan metrics.
func TestEngineSnapshot(t *testing.T) {
	// Fix time and seed for determinism
	calculation.SetNowFunc(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) })
	calculation.SetSeedFunc(func() int64 { return 12345 })
	defer calculation.SetNowFunc(time.Now)

	parser := config.NewInputParser()
	cfg := parser.CreateExamplePlan()

	eng := calculation.NewCalculationEngine()
	res, err := eng.RunPlan(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run plan: %v", err)
	}

	// Trim to stable summary fields only
	type scenario struct {
		Name        string `json:"name"`
		FINumber    string `json:"fi_number,omitempty"`
		YearsToFI   string `json:"years_to_fi,omitempty"`
		SuccessRate string `json:"success_rate,omitempty"`
		FinalP50    string `json:"final_p50,omitempty"`
	}
	var out struct {
		GeneratedAt string     `json:"generated_at"`
		Scenarios   []scenario `json:"scenarios"`
	}
	out.GeneratedAt = res.GeneratedAt.UTC().Format(time.RFC3339)
	for _, sc := range res.Scenarios {
		row := scenario{Name: sc.Name}
		if sc.FI != nil {
			row.FINumber = sc.FI.FINumber.StringFixed(2)
			row.YearsToFI = sc.FI.YearsToFI.String()
		}
		if sc.Simulation != nil {
			row.SuccessRate = sc.Simulation.SuccessRate.StringFixed(4)
			row.FinalP50 = SummarizeSimulation(sc.Simulation).Percentiles.P50.StringFixed(0)
		}
		out.Scenarios = append(out.Scenarios, row)
	}
	data, _ := json.MarshalIndent(out, "", "  ")

	goldenPath := filepath.Join("testdata", "engine_snapshot.golden.json")
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	if update {
		if err := os.WriteFile(goldenPath, data, 0644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if strings.HasPrefix(string(golden), "(placeholder") {
		t.Skip("golden snapshot not initialized; run with UPDATE_GOLDEN=1 to record")
	}
	if string(golden) != string(data) {
		t.Fatalf("engine snapshot drift; run UPDATE_GOLDEN=1 to accept\n--- have ---\n%s\n--- want ---\n%s", string(data), string(golden))
	}
}
