package calculation

import "time"

// nowFunc supplies the clock behind GeneratedAt stamps and projected FI dates.
// Tests override it to pin snapshot output.
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// seedFunc supplies entropy for simulations that carry no explicit seed.
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }
