package models

import (
	"fmt"
	"strings"
	"time"
)

// ReferenceYear is the nominal year month ranges are projected onto when shown as dates
const ReferenceYear = 2000

// ParseMonth accepts a full English month name in any case
func ParseMonth(name string) (time.Month, error) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}

// MonthNames lists the names ParseMonth accepts, January first
func MonthNames() []string {
	names := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		names = append(names, m.String())
	}
	return names
}

// MonthRange is an inclusive range of months of the year. From > To means the range wraps
// over the end of the year, e.g. November to February.
type MonthRange struct {
	From time.Month `gorm:"not null"`
	To   time.Month `gorm:"not null"`
}

// ParseMonthRange parses both ends, failing if either is not a month name
func ParseMonthRange(from, to string) (r MonthRange, err error) {
	if r.From, err = ParseMonth(from); err != nil {
		return MonthRange{}, err
	}
	if r.To, err = ParseMonth(to); err != nil {
		return MonthRange{}, err
	}
	return r, nil
}

func (r MonthRange) Wraps() bool {
	return r.From > r.To
}

// Contains is the in-memory twin of the month condition in PlaceFilter
func (r MonthRange) Contains(m time.Month) bool {
	if r.Wraps() {
		return m >= r.From || m <= r.To
	}
	return m >= r.From && m <= r.To
}

// Dates returns the first day of From and the last day of To in ReferenceYear.
// A wrapping range ends in the following year.
func (r MonthRange) Dates() (from, to time.Time) {
	from = time.Date(ReferenceYear, r.From, 1, 0, 0, 0, 0, time.UTC)
	toYear := ReferenceYear
	if r.Wraps() {
		toYear++
	}
	// Day 0 of the next month is the last day of this one
	to = time.Date(toYear, r.To+1, 0, 0, 0, 0, 0, time.UTC)
	return
}

func (r MonthRange) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return r.From.String() + " - " + r.To.String()
}
