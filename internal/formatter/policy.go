package formatter

import "github.com/frzip09/absolute-time/internal/settings"

// Decision is the attribute set one element should end up with. It is
// recomputed from scratch every pass; nothing is inferred from the
// element's prior state.
type Decision struct {
	Style   string // format-style value
	Weekday bool
	Time    bool // hour + minute
	Seconds bool
}

// Decide evaluates the formatting policy for one element.
func Decide(s settings.Settings, elementYear, currentYear int, actionsPage bool) Decision {
	d := Decision{Style: string(s.DateStyle)}

	switch s.ShowWeekday {
	case settings.WeekdayAlways:
		d.Weekday = true
	case settings.WeekdayOlderYears:
		d.Weekday = elementYear < currentYear
	}

	switch s.ShowTime {
	case settings.TimeAlways:
		d.Time = true
	case settings.TimeActionsOnly:
		d.Time = actionsPage
	}

	d.Seconds = d.Time && s.IncludeSeconds
	return d
}
