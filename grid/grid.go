// Package grid implements the edit, validate and commit cycle of an
// editable table of person records, independent of any UI toolkit.
//
// Committed rows live in a Store. Edits go to a draft copy keyed by row
// id and are either merged back in one Save or dropped by Cancel. At most
// one new row can be staged at a time.
package grid

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrUnknownRow    = errors.New("unknown row")
	ErrUnknownField  = errors.New("unknown field")
	ErrNothingToSave = errors.New("nothing to save")
	ErrInvalid       = errors.New("validation failed")
)

// State is the commit state of a Grid.
type State int

const (
	Clean State = iota
	Dirty
)

func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "clean"
}

// Row is one displayed row carrying draft values.
type Row struct {
	Record
	Pending bool // staged by AddRow, not yet saved
}

type cellKey struct {
	rowID string
	field Field
}

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the logger used for save and debug events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// WithSorter sets the comparison used by Sort.
func WithSorter(s *Sorter) Option {
	return func(g *Grid) {
		if s != nil {
			g.sorter = s
		}
	}
}

// WithValidator replaces the default memoising Validator.
func WithValidator(v *Validator) Option {
	return func(g *Grid) {
		if v != nil {
			g.validator = v
		}
	}
}

// WithIDFunc sets the generator for new row ids.
func WithIDFunc(fn func() string) Option {
	return func(g *Grid) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// Grid is the editable table state. A Grid is not safe for concurrent
// use; drive it from the UI's event goroutine.
type Grid struct {
	store     Store
	log       *slog.Logger
	sorter    *Sorter
	validator *Validator
	newID     func() string

	committed []Record          // store order
	draft     map[string]Record // by row id
	pending   *Record
	dirty     map[cellKey]struct{}
	sortKey   *SortKey
}

// New loads the committed rows from store and returns a Clean grid.
func New(store Store, opts ...Option) (*Grid, error) {
	g := &Grid{
		store:     store,
		log:       slog.Default(),
		sorter:    &Sorter{},
		validator: NewValidator(DefaultMemoSize),
		newID:     NewID,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.reload(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) reload() error {
	rows, err := g.store.Load()
	if err != nil {
		return fmt.Errorf("load rows: %w", err)
	}
	g.committed = rows
	g.resetDrafts()
	return nil
}

func (g *Grid) resetDrafts() {
	g.draft = make(map[string]Record, len(g.committed))
	for _, r := range g.committed {
		g.draft[r.ID] = r
	}
	g.pending = nil
	g.dirty = make(map[cellKey]struct{})
}

// Rows returns the display list: committed rows with their draft values,
// ordered by the active sort key, then the pending row if any.
func (g *Grid) Rows() []Row {
	ordered := g.committed
	if g.sortKey != nil {
		ordered = g.sorter.Sort(g.committed, *g.sortKey)
	}
	out := make([]Row, 0, len(ordered)+1)
	for _, r := range ordered {
		out = append(out, Row{Record: g.draft[r.ID]})
	}
	if g.pending != nil {
		out = append(out, Row{Record: *g.pending, Pending: true})
	}
	return out
}

// Committed returns a copy of the rows as last saved.
func (g *Grid) Committed() []Record {
	return append([]Record(nil), g.committed...)
}

// Sort applies the header-click toggle for f and returns the new key.
// Sort keys are read from the committed rows, so typing never reorders
// the table under the cursor.
func (g *Grid) Sort(f Field) (SortKey, error) {
	if !f.valid() {
		return SortKey{}, fmt.Errorf("sort: %w: %v", ErrUnknownField, f)
	}
	k := nextKey(g.sortKey, f)
	g.sortKey = &k
	g.log.Debug("sort", "field", f, "direction", k.Direction)
	return k, nil
}

// SortBy sets the sort key explicitly.
func (g *Grid) SortBy(k SortKey) error {
	if !k.Field.valid() {
		return fmt.Errorf("sort: %w: %v", ErrUnknownField, k.Field)
	}
	g.sortKey = &k
	return nil
}

// ClearSort restores store order.
func (g *Grid) ClearSort() { g.sortKey = nil }

// SortKey returns the active sort key, if any.
func (g *Grid) SortKey() (SortKey, bool) {
	if g.sortKey == nil {
		return SortKey{}, false
	}
	return *g.sortKey, true
}

// Edit sets the draft value of one cell and marks it dirty.
func (g *Grid) Edit(rowID string, f Field, value string) error {
	if !f.valid() {
		return fmt.Errorf("edit: %w: %v", ErrUnknownField, f)
	}
	if g.pending != nil && g.pending.ID == rowID {
		g.pending.Set(f, value)
	} else {
		r, ok := g.draft[rowID]
		if !ok {
			return fmt.Errorf("edit %s: %w", rowID, ErrUnknownRow)
		}
		r.Set(f, value)
		g.draft[rowID] = r
	}
	g.dirty[cellKey{rowID: rowID, field: f}] = struct{}{}
	g.log.Debug("edit", "row", rowID, "field", f)
	return nil
}

func (g *Grid) record(rowID string) (Record, bool) {
	if g.pending != nil && g.pending.ID == rowID {
		return *g.pending, true
	}
	r, ok := g.draft[rowID]
	return r, ok
}

// Value returns the draft value of one cell.
func (g *Grid) Value(rowID string, f Field) (string, error) {
	r, ok := g.record(rowID)
	if !ok {
		return "", fmt.Errorf("value %s: %w", rowID, ErrUnknownRow)
	}
	return r.Get(f), nil
}

// IsCellDirty reports whether the cell was edited since the last Save
// or Cancel.
func (g *Grid) IsCellDirty(rowID string, f Field) bool {
	_, ok := g.dirty[cellKey{rowID: rowID, field: f}]
	return ok
}

// DirtyCells returns the number of cells marked dirty.
func (g *Grid) DirtyCells() int { return len(g.dirty) }

// CellError returns the validation message for one cell, or "" when the
// value is acceptable or the row does not exist.
func (g *Grid) CellError(rowID string, f Field) string {
	r, ok := g.record(rowID)
	if !ok {
		return ""
	}
	msg, _ := g.validator.Check(f, r.Get(f))
	return msg
}

// Errors returns every failing cell in display order.
func (g *Grid) Errors() []CellError {
	var errs []CellError
	for _, row := range g.Rows() {
		for _, f := range Fields {
			if msg, ok := g.validator.Check(f, row.Get(f)); !ok {
				errs = append(errs, CellError{RowID: row.ID, Field: f, Message: msg})
			}
		}
	}
	return errs
}

// Valid reports whether no cell fails validation.
func (g *Grid) Valid() bool {
	check := func(r Record) bool {
		for _, f := range Fields {
			if _, ok := g.validator.Check(f, r.Get(f)); !ok {
				return false
			}
		}
		return true
	}
	for _, r := range g.draft {
		if !check(r) {
			return false
		}
	}
	return g.pending == nil || check(*g.pending)
}

// IsDirty reports whether a draft differs from the committed rows or a
// new row is staged.
func (g *Grid) IsDirty() bool {
	if g.pending != nil {
		return true
	}
	for _, r := range g.committed {
		if g.draft[r.ID] != r {
			return true
		}
	}
	return false
}

// State returns Dirty when there is something to save or discard.
func (g *Grid) State() State {
	if g.IsDirty() {
		return Dirty
	}
	return Clean
}

// CanSave reports whether Save would be accepted.
func (g *Grid) CanSave() bool { return g.IsDirty() && g.Valid() }

// CanCancel reports whether Cancel has anything to discard.
func (g *Grid) CanCancel() bool { return g.IsDirty() }

// AddRow stages an empty row and returns its id. When a row is already
// staged it returns that row's id and false.
func (g *Grid) AddRow() (string, bool) {
	if g.pending != nil {
		return g.pending.ID, false
	}
	g.pending = &Record{ID: g.newID()}
	g.log.Debug("add row", "row", g.pending.ID)
	return g.pending.ID, true
}

// Pending returns the staged new row, if any.
func (g *Grid) Pending() (Record, bool) {
	if g.pending == nil {
		return Record{}, false
	}
	return *g.pending, true
}

func (g *Grid) changeset() Changeset {
	var cs Changeset
	for _, r := range g.committed {
		if d := g.draft[r.ID]; d != r {
			cs.Updated = append(cs.Updated, d)
		}
	}
	if g.pending != nil {
		cs.Added = append(cs.Added, *g.pending)
	}
	return cs
}

// apply folds a committed changeset into the local rows without asking
// the store.
func (g *Grid) apply(cs Changeset) {
	next := append([]Record(nil), g.committed...)
	index := make(map[string]int, len(next))
	for i, r := range next {
		index[r.ID] = i
	}
	for _, r := range cs.Updated {
		if i, ok := index[r.ID]; ok {
			next[i] = r
		}
	}
	next = append(next, cs.Added...)
	g.committed = next
	g.resetDrafts()
}

// Save validates every draft, commits the changes to the store and
// returns the committed rows. A rejected or failed commit keeps drafts
// and dirty marks for the user to fix. Once the store has accepted the
// changes the grid is clean, even if reading the rows back fails.
func (g *Grid) Save() ([]Record, error) {
	if !g.IsDirty() {
		return nil, ErrNothingToSave
	}
	if errs := g.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, errs[0])
	}
	cs := g.changeset()
	if err := g.store.Commit(cs); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := g.reload(); err != nil {
		g.apply(cs)
		return nil, fmt.Errorf("committed, but %w", err)
	}
	g.log.Info("saved data", "updated", len(cs.Updated), "added", len(cs.Added), "rows", g.committed)
	return g.Committed(), nil
}

// Cancel drops every draft and the staged row, returning to the last
// committed rows.
func (g *Grid) Cancel() {
	if g.IsDirty() {
		g.log.Debug("discard edits", "dirty_cells", len(g.dirty))
	}
	g.resetDrafts()
}
