package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heritage/infras/csvfile"
	"heritage/infras/otel/mocks"
)

type record struct {
	ID   int    `csv:"id"`
	Name string `csv:"name"`
}

func newTable(t *testing.T) (*csvfile.Table[record], string) {
	t.Helper()

	dir := t.TempDir()

	return csvfile.NewTable[record](dir, "records.csv", filepath.Join(dir, "backups"), mocks.NewOtel()), dir
}

func TestTable_LoadAllMissingFile(t *testing.T) {
	table, _ := newTable(t)

	records, err := table.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("expected missing file to be an empty table, got error: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("expected empty table, got %d records", len(records))
	}
}

func TestTable_LoadAllEmptyFile(t *testing.T) {
	table, _ := newTable(t)

	if err := os.WriteFile(table.Path(), []byte{}, 0o644); err != nil {
		t.Fatalf("failed to seed empty file: %v", err)
	}

	records, err := table.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("expected empty file to be an empty table, got error: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("expected empty table, got %d records", len(records))
	}
}

func TestTable_ReplaceAllRoundTrip(t *testing.T) {
	table, _ := newTable(t)
	ctx := context.Background()

	want := []record{
		{ID: 1, Name: "DELUXE ROOM"},
		{ID: 2, Name: "FAMILY SUITS"},
	}

	if err := table.ReplaceAll(ctx, want); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	got, err := table.LoadAll(ctx)
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestTable_AppendKeepsExistingRows(t *testing.T) {
	table, _ := newTable(t)
	ctx := context.Background()

	if err := table.Append(ctx, []record{{ID: 1, Name: "FIRST"}}); err != nil {
		t.Fatalf("failed first append: %v", err)
	}

	if err := table.Append(ctx, []record{{ID: 2, Name: "SECOND"}}); err != nil {
		t.Fatalf("failed second append: %v", err)
	}

	got, err := table.LoadAll(ctx)
	if err != nil {
		t.Fatalf("failed to load table: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("expected rows in append order, got %+v", got)
	}
}

func TestTable_LoadAllCorruptFileDegradesToEmpty(t *testing.T) {
	table, _ := newTable(t)

	corrupt := "id,name\n1,\"unclosed\n"
	if err := os.WriteFile(table.Path(), []byte(corrupt), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	records, err := table.LoadAll(context.Background())
	if err == nil {
		t.Fatal("expected decode error for corrupt file")
	}

	if len(records) != 0 {
		t.Errorf("expected degraded empty table, got %d records", len(records))
	}
}

func TestTable_Backup(t *testing.T) {
	table, dir := newTable(t)
	ctx := context.Background()

	if err := table.ReplaceAll(ctx, []record{{ID: 7, Name: "KEEP"}}); err != nil {
		t.Fatalf("failed to write table: %v", err)
	}

	backupPath, err := table.Backup(ctx)
	if err != nil {
		t.Fatalf("failed to back up table: %v", err)
	}

	if filepath.Dir(backupPath) != filepath.Join(dir, "backups") {
		t.Errorf("expected backup under the backup directory, got %s", backupPath)
	}

	base := filepath.Base(backupPath)
	if !strings.HasPrefix(base, "records.") || !strings.HasSuffix(base, ".csv") {
		t.Errorf("expected timestamped backup name, got %s", base)
	}

	original, err := os.ReadFile(table.Path())
	if err != nil {
		t.Fatalf("failed to read original: %v", err)
	}

	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}

	if string(original) != string(copied) {
		t.Error("expected backup bytes to match the original file")
	}
}

func TestTable_BackupMissingFile(t *testing.T) {
	table, _ := newTable(t)

	backupPath, err := table.Backup(context.Background())
	if err != nil {
		t.Fatalf("expected missing table to need no backup, got error: %v", err)
	}

	if backupPath != "" {
		t.Errorf("expected empty backup path, got %s", backupPath)
	}
}
