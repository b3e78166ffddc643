package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// GetTodayFromSettings returns today's date string (YYYY-MM-DD) using the timezone from settings.
func GetTodayFromSettings(settings models.Settings) (string, error) {
	return GetTodayInTimezone(settings.Timezone)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("fuseau horaire invalide %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate parses a date string (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// NormalizeTime accepts H:MM or HH:MM and returns the zero-padded HH:MM form,
// which sorts correctly as a string.
func NormalizeTime(timeStr string) (string, error) {
	t, err := ParseTime(strings.TrimSpace(timeStr))
	if err != nil {
		return "", err
	}
	return t.Format(constants.TimeFormat), nil
}

// ValidateTimeFormat checks that the string is a zero-padded HH:MM time.
func ValidateTimeFormat(timeStr string) bool {
	n, err := NormalizeTime(timeStr)
	return err == nil && n == timeStr
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatDisplayDate turns YYYY-MM-DD into DD/MM/YYYY. Unparseable input is returned as is.
func FormatDisplayDate(dateStr string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(constants.DisplayDateFormat)
}

// WeekdayName returns the French weekday name for a time.Weekday.
func WeekdayName(d time.Weekday) constants.Weekday {
	// constants.Weekdays starts on Monday
	return constants.Weekdays[(int(d)+6)%7]
}

// ParseWeekday accepts a French weekday name, case-insensitively.
func ParseWeekday(s string) (constants.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range constants.Weekdays {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("jour invalide %q (attendu : lundi ... dimanche)", s)
}

// IsWeekday reports whether s is one of the seven French weekday names.
func IsWeekday(s string) bool {
	for _, d := range constants.Weekdays {
		if string(d) == s {
			return true
		}
	}
	return false
}

// WeekStart returns the Monday (at midnight) of the week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateForWeekday returns the date string of the given weekday within the week starting at monday.
func DateForWeekday(monday time.Time, day constants.Weekday) (string, error) {
	for i, d := range constants.Weekdays {
		if d == day {
			return monday.AddDate(0, 0, i).Format(constants.DateFormat), nil
		}
	}
	return "", fmt.Errorf("jour invalide %q", day)
}
