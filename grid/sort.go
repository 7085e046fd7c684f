package grid

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// SortKey is the active column and direction.
type SortKey struct {
	Field     Field
	Direction Direction
}

// Sorter orders records by one column. The zero value compares bytes.
type Sorter struct {
	coll *collate.Collator
}

// NewSorter returns a Sorter using the collation rules of the BCP 47 tag
// locale, or byte order when locale is empty.
func NewSorter(locale string) (*Sorter, error) {
	if locale == "" {
		return &Sorter{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &Sorter{coll: collate.New(tag)}, nil
}

func (s *Sorter) compare(a, b string) int {
	if s == nil || s.coll == nil {
		return strings.Compare(a, b)
	}
	return s.coll.CompareString(a, b)
}

// Sort returns a copy of recs ordered by key. Equal keys keep their
// relative order in both directions.
func (s *Sorter) Sort(recs []Record, key SortKey) []Record {
	out := append([]Record(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		c := s.compare(out[i].Get(key.Field), out[j].Get(key.Field))
		if key.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// nextKey is the header-click toggle: the active column flips from
// ascending to descending, anything else starts ascending.
func nextKey(cur *SortKey, f Field) SortKey {
	if cur != nil && cur.Field == f && cur.Direction == Ascending {
		return SortKey{Field: f, Direction: Descending}
	}
	return SortKey{Field: f, Direction: Ascending}
}
