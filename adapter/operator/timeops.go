package operator

import (
	"time"

	"github.com/mcabreradev/filter-sub003/domain"
	"github.com/mcabreradev/filter-sub003/pkg/structure"
)

// Window is the argument of $recent and $upcoming: a span of days, hours and
// minutes around "now".
type Window struct {
	Days    int `mapstructure:"days"`
	Hours   int `mapstructure:"hours"`
	Minutes int `mapstructure:"minutes"`
}

// Duration converts the window to a [time.Duration].
func (w Window) Duration() time.Duration {
	return time.Duration(w.Days)*24*time.Hour +
		time.Duration(w.Hours)*time.Hour +
		time.Duration(w.Minutes)*time.Minute
}

// HourRange is the argument of $timeOfDay. Start and End are hours of day,
// start inclusive, end exclusive; Start > End wraps past midnight and equal
// endpoints name a single hour.
type HourRange struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

// AgeRange is the argument of $age. Unit is "years" (default), "months" or
// "days". Max of zero leaves the range unbounded above.
type AgeRange struct {
	Min  int    `mapstructure:"min"`
	Max  int    `mapstructure:"max"`
	Unit string `mapstructure:"unit"`
}

// ParseWindow decodes a $recent/$upcoming argument: a bare number of days or
// a {days, hours, minutes} object.
func ParseWindow(op string, arg any) (Window, error) {
	if days, ok := structure.AsInteger(arg); ok {
		return Window{Days: days}, nil
	}
	var w Window
	if err := decodeArg(arg, &w); err != nil {
		return w, domain.ErrOperatorArgument{Operator: op, Want: "days or {days,hours,minutes}", Actual: arg}
	}
	return w, nil
}

// ParseWeekdays decodes a $dayOfWeek argument: a weekday number or a list of
// them, 0=Sunday through 6=Saturday.
func ParseWeekdays(arg any) (map[int]bool, error) {
	days := make(map[int]bool, 7)
	if d, ok := structure.AsInteger(arg); ok {
		days[d] = true
		return days, nil
	}
	items, ok := structure.Items(arg)
	if !ok {
		return nil, domain.ErrOperatorArgument{Operator: "$dayOfWeek", Want: "weekday number or list", Actual: arg}
	}
	for _, item := range items {
		d, ok := structure.AsInteger(item)
		if !ok || d < 0 || d > 6 {
			return nil, domain.ErrOperatorArgument{Operator: "$dayOfWeek", Want: "weekday numbers 0..6", Actual: arg}
		}
		days[d] = true
	}
	return days, nil
}

// ParseHourRange decodes a $timeOfDay argument.
func ParseHourRange(arg any) (HourRange, error) {
	var r HourRange
	if err := decodeArg(arg, &r); err != nil {
		return r, domain.ErrOperatorArgument{Operator: "$timeOfDay", Want: "{start,end}", Actual: arg}
	}
	if r.Start < 0 || r.Start > 23 || r.End < 0 || r.End > 23 {
		return r, domain.ErrOperatorArgument{Operator: "$timeOfDay", Want: "hours 0..23", Actual: arg}
	}
	return r, nil
}

// ParseAgeRange decodes an $age argument.
func ParseAgeRange(arg any) (AgeRange, error) {
	var r AgeRange
	if err := decodeArg(arg, &r); err != nil {
		return r, domain.ErrOperatorArgument{Operator: "$age", Want: "{min,max,unit}", Actual: arg}
	}
	switch r.Unit {
	case "", "years", "months", "days":
	default:
		return r, domain.ErrOperatorArgument{Operator: "$age", Want: "unit years|months|days", Actual: arg}
	}
	return r, nil
}

// ParseBool decodes a boolean operator argument ($isWeekday, $isWeekend,
// $exists).
func ParseBool(op string, arg any) (bool, error) {
	b, ok := arg.(bool)
	if !ok {
		return false, domain.ErrOperatorArgument{Operator: op, Want: "bool", Actual: arg}
	}
	return b, nil
}

// ParseTime decodes a date-like operator argument ($isBefore, $isAfter).
func ParseTime(op string, arg any) (time.Time, error) {
	t, ok := structure.AsTime(arg)
	if !ok {
		return time.Time{}, domain.ErrOperatorArgument{Operator: op, Want: "date", Actual: arg}
	}
	return t, nil
}

// Recent reports whether the value falls within the window in the past,
// endpoints inclusive.
func (e *Evaluator) Recent(value any, w Window) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	now := e.clock.GetTime()
	return !t.After(now) && !t.Before(now.Add(-w.Duration()))
}

// Upcoming reports whether the value falls within the window in the future,
// endpoints inclusive.
func (e *Evaluator) Upcoming(value any, w Window) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	now := e.clock.GetTime()
	return !t.Before(now) && !t.After(now.Add(w.Duration()))
}

// DayOfWeek reports whether the value's weekday is in the given set.
func (e *Evaluator) DayOfWeek(value any, days map[int]bool) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	return days[int(t.Weekday())]
}

// TimeOfDay reports whether the value's hour of day lies within the range,
// start inclusive, end exclusive. Equal endpoints name that single hour.
func (e *Evaluator) TimeOfDay(value any, r HourRange) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	h := t.Hour()
	switch {
	case r.Start == r.End:
		return h == r.Start
	case r.Start > r.End:
		return h >= r.Start || h < r.End
	default:
		return h >= r.Start && h < r.End
	}
}

// Age converts the value (a birth or reference date) into an age in the
// range's unit and range-checks it.
func (e *Evaluator) Age(value any, r AgeRange) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	now := e.clock.GetTime()
	if t.After(now) {
		return false
	}

	var age int
	switch r.Unit {
	case "months":
		age = monthsBetween(t, now)
	case "days":
		age = int(now.Sub(t).Hours() / 24)
	default:
		age = monthsBetween(t, now) / 12
	}

	if age < r.Min {
		return false
	}
	if r.Max > 0 && age > r.Max {
		return false
	}
	return true
}

// IsWeekday reports whether the value's weekday-ness (Monday through Friday)
// equals the expected flag.
func (e *Evaluator) IsWeekday(value any, want bool) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	wd := t.Weekday()
	isWeekday := wd != time.Saturday && wd != time.Sunday
	return isWeekday == want
}

// IsWeekend is the weekend counterpart of IsWeekday.
func (e *Evaluator) IsWeekend(value any, want bool) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	wd := t.Weekday()
	return (wd == time.Saturday || wd == time.Sunday) == want
}

// IsBefore reports whether the value is strictly before the reference date.
func (e *Evaluator) IsBefore(value any, ref time.Time) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	return t.Before(ref)
}

// IsAfter reports whether the value is strictly after the reference date.
func (e *Evaluator) IsAfter(value any, ref time.Time) bool {
	t, ok := structure.AsTime(value)
	if !ok {
		return false
	}
	return t.After(ref)
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}
