package dashboard

import "time"

// Action is a user-initiated filter-state mutation. The reducer is the only
// way FilterState changes; every application triggers a recompute of the
// derived aggregates by the caller.
type Action interface {
	isAction()
}

// SetFilterMode switches between week and month bucketing.
type SetFilterMode struct {
	Mode FilterMode
}

// PreviousPeriod steps one week or month back. Always allowed.
type PreviousPeriod struct{}

// NextPeriod steps one week or month forward. Ignored when the selected
// period already contains now.
type NextPeriod struct{}

// SetSearchQuery replaces the search query.
type SetSearchQuery struct {
	Query string
}

// SetSearchFilter replaces the search match mode.
type SetSearchFilter struct {
	Filter SearchFilter
}

func (SetFilterMode) isAction()   {}
func (PreviousPeriod) isAction()  {}
func (NextPeriod) isAction()      {}
func (SetSearchQuery) isAction()  {}
func (SetSearchFilter) isAction() {}

// Reduce applies an action to the filter state. Pure: the input state is
// never mutated.
func Reduce(state FilterState, action Action, now time.Time) FilterState {
	switch a := action.(type) {
	case SetFilterMode:
		state.Mode = a.Mode
	case PreviousPeriod:
		if state.Mode == FilterMonth {
			state.Month = state.Month.Prev()
		} else {
			state.WeekStart = state.WeekStart.AddDate(0, 0, -7)
		}
	case NextPeriod:
		if !state.CanGoNext(now) {
			return state
		}
		if state.Mode == FilterMonth {
			state.Month = state.Month.Next()
		} else {
			state.WeekStart = state.WeekStart.AddDate(0, 0, 7)
		}
	case SetSearchQuery:
		state.Query = a.Query
	case SetSearchFilter:
		state.Filter = a.Filter
	}
	return state
}
