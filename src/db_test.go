package main

import (
	"errors"
	"testing"

	"github.com/plusk0/editable-table/grid"
)

func testRecords() []grid.Record {
	return []grid.Record{
		{ID: "r1", FirstName: "John", LastName: "Doe", Position: "Developer", Phone: "(626) 555-1234", Email: "john_doe@example.com"},
		{ID: "r2", FirstName: "Jane", LastName: "Doe", Position: "Designer", Phone: "(626) 512-1563", Email: "jane_doe@example.com"},
	}
}

func openTestStore(t *testing.T) *sqlStore {
	t.Helper()
	s, err := openStore(testRecords())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreLoadOrder(t *testing.T) {
	s := openTestStore(t)
	rows, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := testRecords()
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestStoreCommit(t *testing.T) {
	s := openTestStore(t)
	upd := testRecords()[1]
	upd.Position = "Lead Designer"
	add := grid.Record{ID: "r3", FirstName: "Bob", LastName: "Smith", Position: "Manager", Phone: "1", Email: "b@s.io"}
	if err := s.Commit(grid.Changeset{Updated: []grid.Record{upd}, Added: []grid.Record{add}}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	rows, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 3 || rows[1].Position != "Lead Designer" || rows[2] != add {
		t.Fatalf("unexpected rows after commit %+v", rows)
	}
}

func TestStoreCommitIsAtomic(t *testing.T) {
	s := openTestStore(t)
	upd := testRecords()[0]
	upd.FirstName = "Johnny"
	err := s.Commit(grid.Changeset{
		Updated: []grid.Record{upd, {ID: "missing"}},
		Added:   []grid.Record{{ID: "r9"}},
	})
	if !errors.Is(err, grid.ErrUnknownRow) {
		t.Fatalf("expected ErrUnknownRow, got %v", err)
	}
	rows, _ := s.Load()
	if len(rows) != 2 || rows[0].FirstName != "John" {
		t.Fatalf("failed commit leaked changes: %+v", rows)
	}

	// duplicate id violates the UNIQUE constraint
	if err := s.Commit(grid.Changeset{Added: []grid.Record{{ID: "r1"}}}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
}

func TestStoreWithGrid(t *testing.T) {
	s := openTestStore(t)
	g, err := grid.New(s)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	if err := g.Edit("r1", grid.Email, "john@doe.dev"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := g.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	rows, _ := s.Load()
	if rows[0].Email != "john@doe.dev" {
		t.Fatalf("save did not reach the database: %+v", rows[0])
	}
}
