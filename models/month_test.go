package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Month
		wantErr bool
	}{
		{"canonical", "April", time.April, false},
		{"lower case", "june", time.June, false},
		{"upper case with spaces", "  DECEMBER ", time.December, false},
		{"abbreviation", "Jan", 0, true},
		{"number", "4", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMonth(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownMonth) {
				t.Errorf("ParseMonth(%q) error = %v, want ErrUnknownMonth", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMonthRange_Contains(t *testing.T) {
	springToMay := MonthRange{time.March, time.May}
	winter := MonthRange{time.November, time.February}
	june := MonthRange{time.June, time.June}
	tests := []struct {
		name  string
		r     MonthRange
		month time.Month
		want  bool
	}{
		{"inside", springToMay, time.April, true},
		{"lower bound", springToMay, time.March, true},
		{"upper bound", springToMay, time.May, true},
		{"after", springToMay, time.June, false},
		{"before", springToMay, time.February, false},
		{"wrap start", winter, time.November, true},
		{"wrap december", winter, time.December, true},
		{"wrap january", winter, time.January, true},
		{"wrap end", winter, time.February, true},
		{"wrap outside", winter, time.July, false},
		{"wrap just outside", winter, time.March, false},
		{"single month", june, time.June, true},
		{"single month other", june, time.July, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Contains(tt.month); got != tt.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tt.r, tt.month, got, tt.want)
			}
		})
	}
}

func TestMonthRange_Dates(t *testing.T) {
	tests := []struct {
		name     string
		r        MonthRange
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			"june only",
			MonthRange{time.June, time.June},
			time.Date(2000, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			"march to may",
			MonthRange{time.March, time.May},
			time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 5, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"february in a leap reference year",
			MonthRange{time.January, time.February},
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			"december",
			MonthRange{time.December, time.December},
			time.Date(2000, 12, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			"wrapping range ends next year",
			MonthRange{time.November, time.February},
			time.Date(2000, 11, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2001, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.r.Dates()
			if !from.Equal(tt.wantFrom) || !to.Equal(tt.wantTo) {
				t.Errorf("%v.Dates() = [%v, %v], want [%v, %v]", tt.r, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestParseMonthRange(t *testing.T) {
	r, err := ParseMonthRange("November", "february")
	if err != nil {
		t.Fatal(err)
	}
	if r != (MonthRange{time.November, time.February}) || !r.Wraps() {
		t.Errorf("ParseMonthRange() = %+v", r)
	}
	if _, err = ParseMonthRange("June", "Juno"); !errors.Is(err, ErrUnknownMonth) {
		t.Errorf("ParseMonthRange() error = %v, want ErrUnknownMonth", err)
	}
}
