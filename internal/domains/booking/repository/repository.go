package repository

import (
	"context"

	"heritage/config"
	"heritage/infras/csvfile"
	"heritage/infras/otel"
	"heritage/internal/domains/booking/model"
)

// Table is the storage contract one CSV-backed table satisfies. Every write
// rewrites the file in full; Backup snapshots the current bytes before a
// mutation touches them.
type Table[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
	ReplaceAll(ctx context.Context, records []T) error
	Append(ctx context.Context, records []T) error
	Backup(ctx context.Context) (string, error)
	Path() string
}

func NewBookings(cfg *config.Config, ot otel.Otel) Table[model.Booking] {
	return csvfile.NewTable[model.Booking](cfg.Storage.DataDir, cfg.Storage.BookingsFile, cfg.Storage.BackupDir, ot)
}

func NewRoomLines(cfg *config.Config, ot otel.Otel) Table[model.RoomLine] {
	return csvfile.NewTable[model.RoomLine](cfg.Storage.DataDir, cfg.Storage.LinesFile, cfg.Storage.BackupDir, ot)
}

func NewAdvances(cfg *config.Config, ot otel.Otel) Table[model.AdvancePayment] {
	return csvfile.NewTable[model.AdvancePayment](cfg.Storage.DataDir, cfg.Storage.AdvancesFile, cfg.Storage.BackupDir, ot)
}
