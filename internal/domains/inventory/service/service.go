package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"heritage/config"
	"heritage/infras/otel"
	"heritage/internal/domains/inventory/model"
	"heritage/shared/constant"
	"heritage/shared/failure"
)

// Inventory computes per-day remaining units for each room category from
// the fixed inventory and the current set of stay lines.
type Inventory interface {
	Categories(ctx context.Context) []model.Category
	Calendar(ctx context.Context, year int, month time.Month, lines []model.StayLine) map[string][]int
	RangeCheck(ctx context.Context, checkIn, checkOut time.Time, lines []model.StayLine) (map[string]int, error)
}

type serviceImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Inventory {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
	}
}

// Categories returns the configured room categories sorted by name.
func (s *serviceImpl) Categories(ctx context.Context) []model.Category {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Categories")
	defer scope.End()

	categories := make([]model.Category, 0, len(s.cfg.Inventory.Rooms))
	for name, units := range s.cfg.Inventory.Rooms {
		categories = append(categories, model.Category{Name: name, TotalUnits: units})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories
}

// Calendar returns, per category, one remaining-units value for every day of
// the month. Each day starts at the category's total units and every
// occupying line subtracts its quantity; the result may go negative when a
// day is overbooked.
func (s *serviceImpl) Calendar(ctx context.Context, year int, month time.Month, lines []model.StayLine) map[string][]int {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	remaining := make(map[string][]int, len(s.cfg.Inventory.Rooms))
	for name, units := range s.cfg.Inventory.Rooms {
		days := make([]int, daysInMonth)
		for i := range days {
			days[i] = units
		}
		remaining[name] = days
	}

	for _, line := range lines {
		if s.skip(line) {
			continue
		}

		days, known := remaining[line.RoomType]
		if !known {
			// Categories outside the inventory never reduce availability.
			continue
		}

		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if line.Occupies(date) {
				days[day-1] -= line.Qty
			}
		}
	}

	return remaining
}

// RangeCheck collapses availability over [checkIn, checkOut) to the minimum
// remaining units per category: the binding constraint is the worst day of
// the span.
func (s *serviceImpl) RangeCheck(ctx context.Context, checkIn, checkOut time.Time, lines []model.StayLine) (map[string]int, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RangeCheck")
	defer scope.End()

	if !checkOut.After(checkIn) {
		return nil, failure.BadRequestFromString("check-out must be after check-in") //nolint:wrapcheck
	}

	result := make(map[string]int, len(s.cfg.Inventory.Rooms))
	for name, units := range s.cfg.Inventory.Rooms {
		result[name] = units
	}

	for day := checkIn; day.Before(checkOut); day = day.AddDate(0, 0, 1) {
		for name, units := range s.cfg.Inventory.Rooms {
			booked := 0

			for _, line := range lines {
				if s.skip(line) || line.RoomType != name {
					continue
				}

				if line.Occupies(day) {
					booked += line.Qty
				}
			}

			if units-booked < result[name] {
				result[name] = units - booked
			}
		}
	}

	return result, nil
}

// skip drops lines that cannot or should not reduce availability: unusable
// dates, and canceled bookings unless the legacy counting policy is on.
func (s *serviceImpl) skip(line model.StayLine) bool {
	if line.CheckIn.IsZero() || line.CheckOut.IsZero() {
		log.Debug().Str("room_type", line.RoomType).Msg("skipping stay line with unusable dates")

		return true
	}

	if !line.CheckOut.After(line.CheckIn) {
		return true
	}

	if line.Canceled && !s.cfg.App.Policy.CountCanceled {
		return true
	}

	return false
}
