package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/plusk0/editable-table/grid"
)

// memoryDSN keeps the database in process; rows live as long as the app.
const memoryDSN = ":memory:"

// sqlStore is a grid.Store backed by sqlite. Each record is kept as a
// JSON blob in the entries table, ordered by seq.
type sqlStore struct {
	db *sql.DB
}

var _ grid.Store = (*sqlStore)(nil)

// openStore opens an in-memory database, creates the entries table and
// inserts seed.
func openStore(seed []grid.Record) (*sqlStore, error) {
	db, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	createEntries := `
	CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		data TEXT NOT NULL
	);
	`
	if _, err := db.Exec(createEntries); err != nil {
		db.Close()
		return nil, fmt.Errorf("create entries table: %w", err)
	}

	s := &sqlStore{db: db}
	if err := s.Commit(grid.Changeset{Added: seed}); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed rows: %w", err)
	}
	return s, nil
}

func (s *sqlStore) Close() error { return s.db.Close() }

// Load returns all rows in insertion order
func (s *sqlStore) Load() ([]grid.Record, error) {
	rows, err := s.db.Query("SELECT id, data FROM entries ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []grid.Record
	for rows.Next() {
		var id, dataStr string
		if err := rows.Scan(&id, &dataStr); err != nil {
			return nil, err
		}
		var r grid.Record
		if err := json.Unmarshal([]byte(dataStr), &r); err != nil {
			return nil, fmt.Errorf("decode row %s: %w", id, err)
		}
		r.ID = id
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Commit applies cs in one transaction
func (s *sqlStore) Commit(cs grid.Changeset) (err error) {
	if cs.Empty() {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, rbErr)
		}
	}()

	for _, r := range cs.Updated {
		if err = replaceRow(tx, r); err != nil {
			return err
		}
	}
	for _, r := range cs.Added {
		if err = insertRow(tx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// insertRow appends r as a json blob
func insertRow(tx *sql.Tx, r grid.Record) error {
	js, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO entries (id, data) VALUES (?, ?)", r.ID, string(js)); err != nil {
		return fmt.Errorf("insert row %s: %w", r.ID, err)
	}
	return nil
}

// replaceRow replaces the entire data blob for an existing row
func replaceRow(tx *sql.Tx, r grid.Record) error {
	js, err := json.Marshal(r)
	if err != nil {
		return err
	}
	res, err := tx.Exec("UPDATE entries SET data = ? WHERE id = ?", string(js), r.ID)
	if err != nil {
		return fmt.Errorf("update row %s: %w", r.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update row %s: %w", r.ID, grid.ErrUnknownRow)
	}
	return nil
}
