// Package compare implements the live keyspace comparison engine: cursor
// scanning, per-table aggregation, and the source/destination diff.
package compare

import (
	"sort"
	"strings"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// KeyType is the storage kind of a value as reported by the server.
type KeyType int

const (
	TypeString KeyType = iota
	TypeHash
	TypeList
	TypeSet
	TypeZSet
	TypeStream
	TypeOther // unknown or future server-side types
)

// ParseKeyType maps a TYPE reply to a KeyType. Unrecognized replies map to
// TypeOther so a new server-side type never aborts a scan.
func ParseKeyType(s string) KeyType {
	switch s {
	case "string":
		return TypeString
	case "hash":
		return TypeHash
	case "list":
		return TypeList
	case "set":
		return TypeSet
	case "zset":
		return TypeZSet
	case "stream":
		return TypeStream
	default:
		return TypeOther
	}
}

func (t KeyType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeHash:
		return "hash"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeZSet:
		return "zset"
	case TypeStream:
		return "stream"
	default:
		return "other"
	}
}

// KeyTypes lists every variant in display order.
var KeyTypes = []KeyType{TypeString, TypeHash, TypeList, TypeSet, TypeZSet, TypeStream, TypeOther}

const (
	// TableNoPrefix groups keys that contain no delimiter.
	TableNoPrefix = "(none)"
	// TableUnclassified groups keys whose per-key introspection failed.
	TableUnclassified = "(unclassified)"
)

// NoExpiry is the TTL sentinel for keys without an expiry (PTTL reply -1).
const NoExpiry = time.Duration(-1) * time.Millisecond

// KeyRecord is one key observed during a scan pass.
type KeyRecord struct {
	Key   string
	Table string
	Type  KeyType
	TTL   time.Duration // NoExpiry if the key never expires
}

// TableFor derives the logical table for a key: the substring before the
// first occurrence of the delimiter. A leading delimiter yields the empty
// string, a valid table of its own. Keys without the delimiter fall into
// TableNoPrefix.
func TableFor(key, delimiter string) string {
	if i := strings.Index(key, delimiter); i >= 0 {
		return key[:i]
	}
	return TableNoPrefix
}

// TableSummary aggregates one table within one keyspace.
type TableSummary struct {
	Table    string
	KeyCount int64
}

// Snapshot is an immutable point-in-time view of one keyspace's table
// counts. Tables iterate in lexicographic order.
type Snapshot struct {
	tables  *orderedmap.OrderedMap[string, int64]
	total   int64
	takenAt time.Time
}

// NewSnapshot materializes a snapshot from raw per-table counts. The counts
// map is copied; the caller may discard or reuse it.
func NewSnapshot(counts map[string]int64, takenAt time.Time) *Snapshot {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := orderedmap.NewOrderedMap[string, int64]()
	var total int64
	for _, name := range names {
		tables.Set(name, counts[name])
		total += counts[name]
	}

	return &Snapshot{
		tables:  tables,
		total:   total,
		takenAt: takenAt,
	}
}

// Total returns the number of keys counted across all tables.
func (s *Snapshot) Total() int64 {
	return s.total
}

// TakenAt returns when the scan pass that built this snapshot finished.
func (s *Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// Len returns the number of distinct tables.
func (s *Snapshot) Len() int {
	return s.tables.Len()
}

// Count returns the key count for a table and whether the table is present.
func (s *Snapshot) Count(table string) (int64, bool) {
	return s.tables.Get(table)
}

// Tables returns the per-table summaries in lexicographic order.
func (s *Snapshot) Tables() []TableSummary {
	out := make([]TableSummary, 0, s.tables.Len())
	for el := s.tables.Front(); el != nil; el = el.Next() {
		out = append(out, TableSummary{Table: el.Key, KeyCount: el.Value})
	}
	return out
}

// TableCounts pairs one table's key counts on both sides.
type TableCounts struct {
	Table       string
	Source      int64
	Destination int64
}

// DiffResult is the structural diff of two snapshots. All slices are in
// lexicographic table order; the result is never mutated after construction.
type DiffResult struct {
	OnlyInSource      []TableSummary
	OnlyInDestination []TableSummary
	InBoth            []TableCounts
}

// InSync reports whether the two snapshots had identical table sets with
// identical counts. This is informational; count drift is expected while a
// migration is in flight.
func (d *DiffResult) InSync() bool {
	if len(d.OnlyInSource) > 0 || len(d.OnlyInDestination) > 0 {
		return false
	}
	for _, tc := range d.InBoth {
		if tc.Source != tc.Destination {
			return false
		}
	}
	return true
}
