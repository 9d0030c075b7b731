package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ConfigurationError reports an input that was rejected before any
// calculation work started.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewConfigurationError builds a ConfigurationError for the given field.
func NewConfigurationError(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FiniteDecimal converts a float input to a decimal, rejecting NaN and
// infinities before they can reach a calculation.
func FiniteDecimal(field string, value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Decimal{}, NewConfigurationError(field, "must be a finite number, got %v", value)
	}
	return decimal.NewFromFloat(value), nil
}
