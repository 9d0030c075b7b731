package domain

import (
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// Years counts projected years until a goal, possibly fractional. The
// positive infinity sentinel means the goal is never reached.
type Years float64

// Never is the sentinel for a goal that is never reached.
func Never() Years {
	return Years(math.Inf(1))
}

// Reachable reports whether the goal is reached in finite time.
func (y Years) Reachable() bool {
	return !math.IsInf(float64(y), 1)
}

// MarshalJSON renders the never-reached sentinel as null so encoders do not
// reject the infinity.
func (y Years) MarshalJSON() ([]byte, error) {
	if !y.Reachable() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(y))
}

func (y Years) String() string {
	if !y.Reachable() {
		return "never"
	}
	return fmt.Sprintf("%.1f", float64(y))
}
