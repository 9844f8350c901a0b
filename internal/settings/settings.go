package settings

import "strconv"

// DateStyle controls the verbosity of the rendered absolute date.
type DateStyle string

const (
	DateStyleShort  DateStyle = "short"
	DateStyleMedium DateStyle = "medium"
	DateStyleLong   DateStyle = "long"
)

// WeekdayMode controls when a weekday abbreviation is attached.
type WeekdayMode string

const (
	WeekdayNever      WeekdayMode = "never"
	WeekdayOlderYears WeekdayMode = "olderYears"
	WeekdayAlways     WeekdayMode = "always"
)

// TimeMode controls when hour/minute (and optionally seconds) are attached.
type TimeMode string

const (
	TimeNever       TimeMode = "never"
	TimeActionsOnly TimeMode = "actionsOnly"
	TimeAlways      TimeMode = "always"
)

// Persistence field names. These are the keys used in every backend and in
// change notifications, matching the per-field storage schema.
const (
	FieldEnabled        = "enabled"
	FieldDebug          = "debug"
	FieldDateStyle      = "dateStyle"
	FieldShowWeekday    = "showWeekday"
	FieldShowTime       = "showTime"
	FieldIncludeSeconds = "includeSeconds"
)

// Settings is the sole persistent entity: the user's formatting preferences.
//
// A Settings value is treated as immutable. Every change goes through Apply
// (or Toggle), which returns a new value; nothing mutates one in place.
type Settings struct {
	Enabled        bool        `json:"enabled" yaml:"enabled"`
	Debug          bool        `json:"debug" yaml:"debug"`
	DateStyle      DateStyle   `json:"dateStyle" yaml:"dateStyle"`
	ShowWeekday    WeekdayMode `json:"showWeekday" yaml:"showWeekday"`
	ShowTime       TimeMode    `json:"showTime" yaml:"showTime"`
	IncludeSeconds bool        `json:"includeSeconds" yaml:"includeSeconds"`
}

// Patch is a partial settings value keyed by persistence field name.
// It is the delivery shape of change notifications and of stored records;
// a full-value map is just a patch that happens to name every field.
type Patch map[string]any

// Defaults returns the canonical default settings value.
func Defaults() Settings {
	return Settings{
		Enabled:        true,
		Debug:          false,
		DateStyle:      DateStyleShort,
		ShowWeekday:    WeekdayOlderYears,
		ShowTime:       TimeActionsOnly,
		IncludeSeconds: false,
	}
}

// Coerce builds a valid Settings value from an untrusted raw record.
// It is total: every field falls back to its default when absent or
// malformed, and a nil map yields Defaults(). One bad field never rejects
// the rest of the record.
func Coerce(raw Patch) Settings {
	return Apply(Defaults(), raw)
}

// Apply returns a new Settings value with the patched fields changed.
// Field values that fail validation leave the current value untouched, so
// Apply is total for any patch shape.
func Apply(cur Settings, p Patch) Settings {
	next := cur
	for key, val := range p {
		switch key {
		case FieldEnabled:
			next.Enabled = asBool(val, cur.Enabled)
		case FieldDebug:
			next.Debug = asBool(val, cur.Debug)
		case FieldIncludeSeconds:
			next.IncludeSeconds = asBool(val, cur.IncludeSeconds)
		case FieldDateStyle:
			switch DateStyle(asString(val)) {
			case DateStyleShort, DateStyleMedium, DateStyleLong:
				next.DateStyle = DateStyle(asString(val))
			}
		case FieldShowWeekday:
			switch WeekdayMode(asString(val)) {
			case WeekdayNever, WeekdayOlderYears, WeekdayAlways:
				next.ShowWeekday = WeekdayMode(asString(val))
			}
		case FieldShowTime:
			switch TimeMode(asString(val)) {
			case TimeNever, TimeActionsOnly, TimeAlways:
				next.ShowTime = TimeMode(asString(val))
			}
		}
		// Unknown keys are ignored.
	}
	return next
}

// Toggle flips a boolean field and returns the new value. Non-boolean or
// unknown keys return the current value unchanged and ok=false.
func Toggle(cur Settings, key string) (Settings, bool) {
	switch key {
	case FieldEnabled:
		return Apply(cur, Patch{FieldEnabled: !cur.Enabled}), true
	case FieldDebug:
		return Apply(cur, Patch{FieldDebug: !cur.Debug}), true
	case FieldIncludeSeconds:
		return Apply(cur, Patch{FieldIncludeSeconds: !cur.IncludeSeconds}), true
	default:
		return cur, false
	}
}

// Record returns the full per-field map of s, the shape every backend
// persists and the shape of a full-value change notification.
func Record(s Settings) Patch {
	return Patch{
		FieldEnabled:        s.Enabled,
		FieldDebug:          s.Debug,
		FieldDateStyle:      string(s.DateStyle),
		FieldShowWeekday:    string(s.ShowWeekday),
		FieldShowTime:       string(s.ShowTime),
		FieldIncludeSeconds: s.IncludeSeconds,
	}
}

func asBool(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
		return def
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return def
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
