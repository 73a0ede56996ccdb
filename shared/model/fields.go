package model

import (
	"strconv"
	"strings"
	"time"

	"heritage/shared/constant"
)

// Cell types for the CSV tables. Parsing is forgiving: an unreadable number
// coerces to zero and an unreadable date to the zero time, so one bad cell
// never fails a whole-table load.

type Int int

func (i Int) MarshalCSV() (string, error) {
	return strconv.Itoa(int(i)), nil
}

func (i *Int) UnmarshalCSV(cell string) error {
	cell = strings.TrimSpace(cell)
	if cell == constant.Empty {
		*i = 0

		return nil
	}

	if n, err := strconv.Atoi(cell); err == nil {
		*i = Int(n)

		return nil
	}

	// Spreadsheet exports sometimes write integers as "5.0".
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		*i = Int(int(f))

		return nil
	}

	*i = 0

	return nil
}

type Float float64

func (f Float) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(f), 'f', -1, 64), nil
}

func (f *Float) UnmarshalCSV(cell string) error {
	cell = strings.TrimSpace(cell)
	if cell == constant.Empty {
		*f = 0

		return nil
	}

	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		*f = Float(v)

		return nil
	}

	*f = 0

	return nil
}

// Date is a calendar day cell. A value that parses with none of the known
// layouts becomes the zero time and the owning record is skipped downstream.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	constant.DateFormatStorage,
	constant.DateFormat,
	constant.StampFormat,
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return constant.Empty, nil
	}

	return d.Format(constant.DateFormatStorage), nil
}

func (d *Date) UnmarshalCSV(cell string) error {
	cell = strings.TrimSpace(cell)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			*d = NewDate(t)

			return nil
		}
	}

	d.Time = time.Time{}

	return nil
}

// Stamp is a timestamp cell (entry time, advance date).
type Stamp struct {
	time.Time
}

func (s Stamp) MarshalCSV() (string, error) {
	if s.IsZero() {
		return constant.Empty, nil
	}

	return s.Format(constant.StampFormat), nil
}

func (s *Stamp) UnmarshalCSV(cell string) error {
	cell = strings.TrimSpace(cell)

	for _, layout := range []string{constant.StampFormat, constant.DateFormatStorage, constant.DateFormat} {
		if t, err := time.Parse(layout, cell); err == nil {
			s.Time = t

			return nil
		}
	}

	s.Time = time.Time{}

	return nil
}
