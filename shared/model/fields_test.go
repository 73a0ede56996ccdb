package model_test

import (
	"testing"
	"time"

	"heritage/shared/model"
)

func TestInt_UnmarshalCSV(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected int
	}{
		{
			name:     "plain integer",
			cell:     "5",
			expected: 5,
		},
		{
			name:     "spreadsheet float export",
			cell:     "5.0",
			expected: 5,
		},
		{
			name:     "padded",
			cell:     " 12 ",
			expected: 12,
		},
		{
			name:     "empty coerces to zero",
			cell:     "",
			expected: 0,
		},
		{
			name:     "garbage coerces to zero",
			cell:     "five",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i model.Int
			if err := i.UnmarshalCSV(tt.cell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if int(i) != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, int(i))
			}
		})
	}
}

func TestFloat_UnmarshalCSV(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected float64
	}{
		{
			name:     "decimal",
			cell:     "1500.50",
			expected: 1500.50,
		},
		{
			name:     "integer form",
			cell:     "2000",
			expected: 2000,
		},
		{
			name:     "empty coerces to zero",
			cell:     "",
			expected: 0,
		},
		{
			name:     "garbage coerces to zero",
			cell:     "n/a",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f model.Float
			if err := f.UnmarshalCSV(tt.cell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if float64(f) != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, float64(f))
			}
		})
	}
}

func TestDate_UnmarshalCSV(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		expected time.Time
	}{
		{
			name:     "storage layout",
			cell:     "2024-06-01",
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "wire layout",
			cell:     "01-Jun-2024",
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "stamp layout truncates to the day",
			cell:     "2024-06-01 14:30:00",
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "garbage coerces to zero time",
			cell:     "soon",
			expected: time.Time{},
		},
		{
			name:     "empty coerces to zero time",
			cell:     "",
			expected: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d model.Date
			if err := d.UnmarshalCSV(tt.cell); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !d.Time.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, d.Time)
			}
		})
	}
}

func TestDate_MarshalCSV(t *testing.T) {
	d := model.NewDate(time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC))

	cell, err := d.MarshalCSV()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cell != "2024-06-01" {
		t.Errorf("expected 2024-06-01, got %s", cell)
	}

	zero, err := model.Date{}.MarshalCSV()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if zero != "" {
		t.Errorf("expected empty cell for zero date, got %s", zero)
	}
}

func TestStamp_RoundTrip(t *testing.T) {
	var s model.Stamp
	if err := s.UnmarshalCSV("2024-06-01 14:30:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cell, err := s.MarshalCSV()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cell != "2024-06-01 14:30:00" {
		t.Errorf("expected 2024-06-01 14:30:00, got %s", cell)
	}

	var garbage model.Stamp
	if err := garbage.UnmarshalCSV("whenever"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !garbage.IsZero() {
		t.Error("expected garbage stamp to coerce to zero time")
	}
}
