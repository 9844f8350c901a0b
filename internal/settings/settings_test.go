package settings

import (
	"testing"
)

func TestCoerceTotality(t *testing.T) {
	tests := []struct {
		name     string
		raw      Patch
		expected Settings
	}{
		{
			name:     "nil map",
			raw:      nil,
			expected: Defaults(),
		},
		{
			name:     "empty map",
			raw:      Patch{},
			expected: Defaults(),
		},
		{
			name:     "invalid dateStyle falls back to default",
			raw:      Patch{"dateStyle": "tiny"},
			expected: Defaults(),
		},
		{
			name:     "wrong type for enum falls back to default",
			raw:      Patch{"showWeekday": 7},
			expected: Defaults(),
		},
		{
			name: "one bad field does not reject the rest",
			raw:  Patch{"dateStyle": "bogus", "showTime": "always", "enabled": false},
			expected: Settings{
				Enabled:        false,
				Debug:          false,
				DateStyle:      DateStyleShort,
				ShowWeekday:    WeekdayOlderYears,
				ShowTime:       TimeAlways,
				IncludeSeconds: false,
			},
		},
		{
			name: "full valid record",
			raw: Patch{
				"enabled":        true,
				"debug":          true,
				"dateStyle":      "long",
				"showWeekday":    "always",
				"showTime":       "never",
				"includeSeconds": true,
			},
			expected: Settings{
				Enabled:        true,
				Debug:          true,
				DateStyle:      DateStyleLong,
				ShowWeekday:    WeekdayAlways,
				ShowTime:       TimeNever,
				IncludeSeconds: true,
			},
		},
		{
			name: "string booleans accepted",
			raw:  Patch{"enabled": "false", "includeSeconds": "true"},
			expected: Settings{
				Enabled:        false,
				Debug:          false,
				DateStyle:      DateStyleShort,
				ShowWeekday:    WeekdayOlderYears,
				ShowTime:       TimeActionsOnly,
				IncludeSeconds: true,
			},
		},
		{
			name:     "unknown keys ignored",
			raw:      Patch{"theme": "dark", "version": 3},
			expected: Defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Coerce(tt.raw)
			if result != tt.expected {
				t.Errorf("Coerce() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestApplyLeavesCurrentOnInvalid(t *testing.T) {
	cur := Apply(Defaults(), Patch{"dateStyle": "medium", "showTime": "always"})

	next := Apply(cur, Patch{"dateStyle": "gigantic"})
	if next.DateStyle != DateStyleMedium {
		t.Errorf("invalid patch value changed dateStyle to %q", next.DateStyle)
	}
	if next.ShowTime != TimeAlways {
		t.Errorf("untouched field changed: showTime = %q", next.ShowTime)
	}
}

func TestApplyDoesNotMutateCurrent(t *testing.T) {
	cur := Defaults()
	_ = Apply(cur, Patch{"enabled": false, "dateStyle": "long"})
	if cur != Defaults() {
		t.Errorf("Apply mutated its input: %+v", cur)
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		wantOK bool
		check  func(Settings) bool
	}{
		{
			name:   "enabled flips",
			key:    FieldEnabled,
			wantOK: true,
			check:  func(s Settings) bool { return !s.Enabled },
		},
		{
			name:   "debug flips",
			key:    FieldDebug,
			wantOK: true,
			check:  func(s Settings) bool { return s.Debug },
		},
		{
			name:   "includeSeconds flips",
			key:    FieldIncludeSeconds,
			wantOK: true,
			check:  func(s Settings) bool { return s.IncludeSeconds },
		},
		{
			name:   "enum field rejected",
			key:    FieldDateStyle,
			wantOK: false,
			check:  func(s Settings) bool { return s == Defaults() },
		},
		{
			name:   "unknown key rejected",
			key:    "nope",
			wantOK: false,
			check:  func(s Settings) bool { return s == Defaults() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Toggle(Defaults(), tt.key)
			if ok != tt.wantOK {
				t.Errorf("Toggle() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.check(result) {
				t.Errorf("Toggle() = %+v", result)
			}
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := Settings{
		Enabled:        false,
		Debug:          true,
		DateStyle:      DateStyleLong,
		ShowWeekday:    WeekdayNever,
		ShowTime:       TimeAlways,
		IncludeSeconds: true,
	}
	if got := Coerce(Record(s)); got != s {
		t.Errorf("Coerce(Record(s)) = %+v, want %+v", got, s)
	}
}
