package report

import "tally/internal/core"

// Mode names the active date-range selection of a ledger view.
type Mode string

const (
	ModeAll     Mode = "all"     // no bounds
	ModeDaily   Mode = "daily"   // today only
	ModeWeekly  Mode = "weekly"  // week-to-date, week begins Sunday
	ModeMonthly Mode = "monthly" // month-to-date
	ModeCustom  Mode = "custom"  // caller-set explicit bounds
)

func (m Mode) Valid() bool {
	switch m {
	case ModeAll, ModeDaily, ModeWeekly, ModeMonthly, ModeCustom:
		return true
	default:
		return false
	}
}

// Resolve maps a symbolic period to concrete inclusive bounds relative
// to the given reference day. For ModeAll and ModeCustom it returns
// zero dates: all is unbounded, custom keeps whatever the caller last
// set explicitly.
func Resolve(m Mode, today core.Date) (start, end core.Date) {
	today = today.Truncate()
	switch m {
	case ModeDaily:
		return today, today
	case ModeWeekly:
		// Most recent Sunday on or before today.
		back := int(today.Weekday())
		return core.DateOf(today.AddDate(0, 0, -back)), today
	case ModeMonthly:
		return core.NewDate(today.Year(), int(today.Month()), 1), today
	default:
		return core.Date{}, core.Date{}
	}
}

// RangeState is the small state machine behind the filter bar: quick
// buttons jump to a named mode, any manual date edit switches to
// custom, and clearing returns to the unbounded view.
type RangeState struct {
	Mode  Mode
	Start core.Date
	End   core.Date
}

// NewRangeState starts unbounded.
func NewRangeState() RangeState {
	return RangeState{Mode: ModeAll}
}

// QuickSelect handles a quick-range button press, resolving the bounds
// against the given reference day. Unknown modes leave the state
// untouched.
func (s RangeState) QuickSelect(m Mode, today core.Date) RangeState {
	if !m.Valid() || m == ModeCustom {
		return s
	}
	start, end := Resolve(m, today)
	return RangeState{Mode: m, Start: start, End: end}
}

// SetStart handles a manual start-date edit: the state becomes custom
// and the other bound is kept.
func (s RangeState) SetStart(d core.Date) RangeState {
	return RangeState{Mode: ModeCustom, Start: d.Truncate(), End: s.End}
}

// SetEnd handles a manual end-date edit.
func (s RangeState) SetEnd(d core.Date) RangeState {
	return RangeState{Mode: ModeCustom, Start: s.Start, End: d.Truncate()}
}

// Clear returns to the unbounded all-time view.
func (s RangeState) Clear() RangeState {
	return NewRangeState()
}

// Filter materializes the current bounds together with the remaining
// criteria into a Filter.
func (s RangeState) Filter(categories []string, search string) Filter {
	return Filter{Start: s.Start, End: s.End, Categories: categories, Search: search}
}
