package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Europe/Paris", timezone: "Europe/Paris", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"noon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTimeToMinutes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		wantErr   bool
		validated bool
	}{
		{in: "09:30", want: "09:30", validated: true},
		{in: "9:30", want: "09:30"},
		{in: " 7:05 ", want: "07:05"},
		{in: "23:59", want: "23:59", validated: true},
		{in: "24:00", wantErr: true},
		{in: "9h30", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if v := ValidateTimeFormat(tt.in); v != tt.validated {
				t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.in, v, tt.validated)
			}
		})
	}
}

func TestWeekdays(t *testing.T) {
	if got := WeekdayName(time.Monday); got != "lundi" {
		t.Errorf("WeekdayName(Monday) = %q, want lundi", got)
	}
	if got := WeekdayName(time.Sunday); got != "dimanche" {
		t.Errorf("WeekdayName(Sunday) = %q, want dimanche", got)
	}

	if d, err := ParseWeekday(" Mercredi "); err != nil || d != "mercredi" {
		t.Errorf("ParseWeekday(Mercredi) = %q, %v", d, err)
	}
	if _, err := ParseWeekday("wednesday"); err == nil {
		t.Error("ParseWeekday(wednesday) expected error")
	}
	if !IsWeekday("samedi") || IsWeekday("Samedi") {
		t.Error("IsWeekday is exact-match on lowercase names")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-04-15", "2024-04-15"}, // Monday
		{"2024-04-17", "2024-04-15"},
		{"2024-04-21", "2024-04-15"}, // Sunday
		{"2024-05-01", "2024-04-29"},
	}
	for _, tt := range tests {
		d, _ := ParseDate(tt.date)
		if got := WeekStart(d).Format(constants.DateFormat); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}

	monday, _ := ParseDate("2024-04-15")
	if got, _ := DateForWeekday(monday, "vendredi"); got != "2024-04-19" {
		t.Errorf("DateForWeekday(vendredi) = %s, want 2024-04-19", got)
	}
	if _, err := DateForWeekday(monday, "friday"); err == nil {
		t.Error("DateForWeekday(friday) expected error")
	}
}

func TestFormatDisplayDate(t *testing.T) {
	if got := FormatDisplayDate("2024-04-15"); got != "15/04/2024" {
		t.Errorf("FormatDisplayDate() = %q", got)
	}
	if got := FormatDisplayDate("bientôt"); got != "bientôt" {
		t.Errorf("FormatDisplayDate(invalid) = %q", got)
	}
}
