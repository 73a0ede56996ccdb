package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"heritage/infras/otel"
	"heritage/shared/constant"
	"heritage/shared/timezone"
)

const (
	backupStampLayout = "20060102-150405"

	otelAttrFile = "file"
)

// Table is the whole-file storage port for one CSV table. Every operation
// reads or rewrites the backing file in full; there is no row-level access.
type Table[T any] struct {
	path      string
	backupDir string
	otel      otel.Otel
}

func NewTable[T any](dataDir, fileName, backupDir string, ot otel.Otel) *Table[T] {
	return &Table[T]{
		path:      filepath.Join(dataDir, fileName),
		backupDir: backupDir,
		otel:      ot,
	}
}

// Path returns the location of the backing file.
func (t *Table[T]) Path() string {
	return t.path
}

// LoadAll reads the whole table. A missing file is an empty table, not an
// error. A file that cannot be decoded degrades to an empty table and the
// error is surfaced so the caller can report it.
func (t *Table[T]) LoadAll(ctx context.Context) (records []T, err error) {
	_, scope := t.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".LoadAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFile, t.path)

	records = []T{}

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}

		return records, fmt.Errorf("failed to read table %s: %w", t.path, err)
	}

	if len(raw) == 0 {
		return records, nil
	}

	if err = gocsv.UnmarshalBytes(raw, &records); err != nil {
		log.Error().Err(err).Str("file", t.path).Msg("failed to decode table, degrading to empty")

		return []T{}, fmt.Errorf("failed to decode table %s: %w", t.path, err)
	}

	return records, nil
}

// ReplaceAll rewrites the whole table, header included.
func (t *Table[T]) ReplaceAll(ctx context.Context, records []T) (err error) {
	_, scope := t.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".ReplaceAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFile, t.path)

	if err = os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	raw, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return fmt.Errorf("failed to encode table %s: %w", t.path, err)
	}

	if err = os.WriteFile(t.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write table %s: %w", t.path, err)
	}

	return nil
}

// Append adds records to the end of the table. The file is still rewritten
// in full so the header stays canonical even when the file did not exist.
func (t *Table[T]) Append(ctx context.Context, records []T) error {
	existing, err := t.LoadAll(ctx)
	if err != nil {
		return err
	}

	return t.ReplaceAll(ctx, append(existing, records...))
}

// Backup copies the backing file into the backup directory under a
// timestamped name and returns the copy's path. A missing table needs no
// backup and yields an empty path.
func (t *Table[T]) Backup(ctx context.Context) (backupPath string, err error) {
	_, scope := t.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Backup")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrFile, t.path)

	raw, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return constant.Empty, nil
		}

		return constant.Empty, fmt.Errorf("failed to read table %s for backup: %w", t.path, err)
	}

	if err = os.MkdirAll(t.backupDir, 0o755); err != nil {
		return constant.Empty, fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := timezone.Now().Format(backupStampLayout)
	name := fmt.Sprintf("%s.%s.csv", baseName(t.path), stamp)
	backupPath = filepath.Join(t.backupDir, name)

	if err = os.WriteFile(backupPath, raw, 0o644); err != nil {
		return constant.Empty, fmt.Errorf("failed to write backup %s: %w", backupPath, err)
	}

	log.Info().Str("file", t.path).Str("backup", backupPath).Msg("table backed up")

	return backupPath, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	return base[:len(base)-len(ext)]
}
