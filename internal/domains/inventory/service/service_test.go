package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"heritage/config"
	"heritage/infras/otel/mocks"
	"heritage/internal/domains/inventory/model"
	"heritage/internal/domains/inventory/service"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newService(rooms map[string]int, countCanceled bool) service.Inventory {
	cfg := &config.Config{}
	cfg.Inventory.Rooms = rooms
	cfg.App.Policy.CountCanceled = countCanceled

	return service.New(cfg, mocks.NewOtel())
}

func TestInventoryService_Categories(t *testing.T) {
	svc := newService(map[string]int{"Superior Room": 2, "Deluxe Room": 15}, false)

	categories := svc.Categories(context.Background())

	assert.Len(t, categories, 2)
	assert.Equal(t, "Deluxe Room", categories[0].Name)
	assert.Equal(t, 15, categories[0].TotalUnits)
	assert.Equal(t, "Superior Room", categories[1].Name)
}

func TestInventoryService_Calendar(t *testing.T) {
	svc := newService(map[string]int{"Deluxe Room": 15}, false)

	lines := []model.StayLine{
		{
			RoomType: "Deluxe Room",
			Qty:      5,
			CheckIn:  day(2024, time.June, 1),
			CheckOut: day(2024, time.June, 4),
		},
	}

	remaining := svc.Calendar(context.Background(), 2024, time.June, lines)

	days := remaining["Deluxe Room"]
	assert.Len(t, days, 30)
	assert.Equal(t, 10, days[0])
	assert.Equal(t, 10, days[1])
	assert.Equal(t, 10, days[2])
	// The check-out day itself is free again.
	assert.Equal(t, 15, days[3])
	assert.Equal(t, 15, days[29])
}

func TestInventoryService_CalendarOneNightStay(t *testing.T) {
	svc := newService(map[string]int{"Deluxe Room": 15}, false)

	lines := []model.StayLine{
		{
			RoomType: "Deluxe Room",
			Qty:      1,
			CheckIn:  day(2024, time.June, 2),
			CheckOut: day(2024, time.June, 3),
		},
	}

	remaining := svc.Calendar(context.Background(), 2024, time.June, lines)

	days := remaining["Deluxe Room"]
	assert.Equal(t, 15, days[0])
	// A one-night stay occupies exactly its check-in day.
	assert.Equal(t, 14, days[1])
	assert.Equal(t, 15, days[2])
}

func TestInventoryService_CalendarOverbooked(t *testing.T) {
	svc := newService(map[string]int{"Superior Room": 2}, false)

	lines := []model.StayLine{
		{
			RoomType: "Superior Room",
			Qty:      1,
			CheckIn:  day(2024, time.June, 1),
			CheckOut: day(2024, time.June, 5),
		},
		{
			RoomType: "Superior Room",
			Qty:      2,
			CheckIn:  day(2024, time.June, 3),
			CheckOut: day(2024, time.June, 6),
		},
	}

	remaining := svc.Calendar(context.Background(), 2024, time.June, lines)

	days := remaining["Superior Room"]
	assert.Equal(t, 1, days[0])
	assert.Equal(t, -1, days[2])
	assert.Equal(t, -1, days[3])
	assert.Equal(t, 0, days[4])
	assert.Equal(t, 2, days[5])
}

func TestInventoryService_CalendarSkipsCanceled(t *testing.T) {
	lines := []model.StayLine{
		{
			RoomType: "Deluxe Room",
			Qty:      5,
			CheckIn:  day(2024, time.June, 1),
			CheckOut: day(2024, time.June, 4),
			Canceled: true,
		},
	}

	t.Run("canceled lines free their units", func(t *testing.T) {
		svc := newService(map[string]int{"Deluxe Room": 15}, false)

		remaining := svc.Calendar(context.Background(), 2024, time.June, lines)
		assert.Equal(t, 15, remaining["Deluxe Room"][0])
	})

	t.Run("legacy policy keeps counting them", func(t *testing.T) {
		svc := newService(map[string]int{"Deluxe Room": 15}, true)

		remaining := svc.Calendar(context.Background(), 2024, time.June, lines)
		assert.Equal(t, 10, remaining["Deluxe Room"][0])
	})
}

func TestInventoryService_CalendarSkipsUnusableLines(t *testing.T) {
	svc := newService(map[string]int{"Deluxe Room": 15}, false)

	lines := []model.StayLine{
		// Dates that failed to parse carry zero times.
		{RoomType: "Deluxe Room", Qty: 5},
		// Inverted interval.
		{
			RoomType: "Deluxe Room",
			Qty:      3,
			CheckIn:  day(2024, time.June, 10),
			CheckOut: day(2024, time.June, 8),
		},
		// Category outside the inventory.
		{
			RoomType: "Presidential Suite",
			Qty:      1,
			CheckIn:  day(2024, time.June, 1),
			CheckOut: day(2024, time.June, 30),
		},
	}

	remaining := svc.Calendar(context.Background(), 2024, time.June, lines)

	for i, left := range remaining["Deluxe Room"] {
		assert.Equal(t, 15, left, "day %d", i+1)
	}

	_, known := remaining["Presidential Suite"]
	assert.False(t, known)
}

func TestInventoryService_RangeCheck(t *testing.T) {
	svc := newService(map[string]int{"Deluxe Room": 15, "Superior Room": 2}, false)

	lines := []model.StayLine{
		{
			RoomType: "Deluxe Room",
			Qty:      5,
			CheckIn:  day(2024, time.June, 2),
			CheckOut: day(2024, time.June, 3),
		},
		{
			RoomType: "Superior Room",
			Qty:      3,
			CheckIn:  day(2024, time.June, 1),
			CheckOut: day(2024, time.June, 4),
		},
	}

	remaining, err := svc.RangeCheck(context.Background(), day(2024, time.June, 1), day(2024, time.June, 4), lines)

	assert.NoError(t, err)
	// The binding constraint is the worst day of the span.
	assert.Equal(t, 10, remaining["Deluxe Room"])
	assert.Equal(t, -1, remaining["Superior Room"])
}

func TestInventoryService_RangeCheckExcludesCheckOutDay(t *testing.T) {
	svc := newService(map[string]int{"Deluxe Room": 15}, false)

	lines := []model.StayLine{
		{
			RoomType: "Deluxe Room",
			Qty:      5,
			CheckIn:  day(2024, time.June, 4),
			CheckOut: day(2024, time.June, 8),
		},
	}

	// The queried stay ends the day the other one begins.
	remaining, err := svc.RangeCheck(context.Background(), day(2024, time.June, 1), day(2024, time.June, 4), lines)

	assert.NoError(t, err)
	assert.Equal(t, 15, remaining["Deluxe Room"])
}

func TestInventoryService_RangeCheckRejectsInvertedStay(t *testing.T) {
	svc := newService(map[string]int{"Deluxe Room": 15}, false)

	_, err := svc.RangeCheck(context.Background(), day(2024, time.June, 4), day(2024, time.June, 4), nil)
	assert.Error(t, err)

	_, err = svc.RangeCheck(context.Background(), day(2024, time.June, 4), day(2024, time.June, 1), nil)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, model.ClassAvailable, model.Classify(3))
	assert.Equal(t, model.ClassFull, model.Classify(0))
	assert.Equal(t, model.ClassOverCapacity, model.Classify(-1))
}
