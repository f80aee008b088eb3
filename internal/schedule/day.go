package schedule

import (
	"strings"
	"time"
)

// Weekdays lists the class days in week order. Weekend days never hold
// classes and have no code.
var Weekdays = []string{"MON", "TUE", "WED", "THU", "FRI"}

// dayNames maps lowercase weekday names to their codes in scan order.
// Saturday and Sunday map to the empty code.
var dayNames = []struct {
	name string
	code string
}{
	{"monday", "MON"},
	{"tuesday", "TUE"},
	{"wednesday", "WED"},
	{"thursday", "THU"},
	{"friday", "FRI"},
	{"saturday", ""},
	{"sunday", ""},
}

func dayCode(weekday time.Weekday) string {
	switch weekday {
	case time.Monday:
		return "MON"
	case time.Tuesday:
		return "TUE"
	case time.Wednesday:
		return "WED"
	case time.Thursday:
		return "THU"
	case time.Friday:
		return "FRI"
	default:
		return ""
	}
}

// weekdayIndex returns the position of a day code within Weekdays,
// or -1 when the code is not a class day.
func weekdayIndex(code string) int {
	for i, d := range Weekdays {
		if d == code {
			return i
		}
	}
	return -1
}

// ResolveDay extracts a day code from lowercased query text. Relative
// references take precedence in the order tomorrow, today, yesterday;
// literal weekday names are scanned afterwards in week order. The
// second return value carries a user-facing message when the resolved
// day has no classes (weekends), or a note when a weekend tomorrow is
// rolled forward to the next class day. Both values empty means the
// text mentions no day at all.
func ResolveDay(text string, now time.Time) (string, string) {
	if strings.Contains(text, "tomorrow") {
		tomorrow := now.AddDate(0, 0, 1)
		if code := dayCode(tomorrow.Weekday()); code != "" {
			return code, ""
		}
		// Weekend tomorrow: roll forward to the next class day.
		daysAhead := 1
		if tomorrow.Weekday() == time.Saturday {
			daysAhead = 2
		}
		nextDay := tomorrow.AddDate(0, 0, daysAhead)
		if code := dayCode(nextDay.Weekday()); code != "" {
			return code, "Since tomorrow is " + tomorrow.Weekday().String() +
				", here's your schedule for " + nextDay.Weekday().String()
		}
		return "", "No classes on weekends! 🎉"
	}

	if strings.Contains(text, "today") {
		if code := dayCode(now.Weekday()); code != "" {
			return code, ""
		}
		return "", "It's the weekend - no classes today! 🎉"
	}

	if strings.Contains(text, "yesterday") {
		yesterday := now.AddDate(0, 0, -1)
		if code := dayCode(yesterday.Weekday()); code != "" {
			return code, ""
		}
		return "", "That was the weekend - no classes! 🎉"
	}

	for _, d := range dayNames {
		if strings.Contains(text, d.name) {
			if d.code == "" {
				return "", "No classes on " + titleCase(d.name) + "! 🎉"
			}
			return d.code, ""
		}
	}

	return "", ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
