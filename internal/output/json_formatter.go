package output

import (
	"github.com/goccy/go-json"

	"github.com/firego/fire-planner/internal/domain"
)

// JSONFormatter serializes the plan comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
