// Package timegetter contains the default [domain.TimeGetter] implementation.
package timegetter

import (
	"time"

	"github.com/mcabreradev/filter-sub003/domain"
)

// TimeGetter implements [domain.TimeGetter].
type TimeGetter struct{}

// NewTimeGetter returns a new implementation of domain.TimeGetter.
func NewTimeGetter() domain.TimeGetter {
	return &TimeGetter{}
}

// GetTime implements [domain.TimeGetter].
func (t *TimeGetter) GetTime() time.Time {
	return time.Now()
}

// Fixed is a [domain.TimeGetter] pinned to a single instant, for tests and
// reproducible relative-time evaluation.
type Fixed struct {
	T time.Time
}

// GetTime implements [domain.TimeGetter].
func (f Fixed) GetTime() time.Time {
	return f.T
}
