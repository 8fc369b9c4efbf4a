package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotOf(counts map[string]int64) *Snapshot {
	return NewSnapshot(counts, time.Now())
}

func TestDiff_CountDrift(t *testing.T) {
	// Source: user:1, user:2, order:5 — destination: user:1, order:5, order:6.
	// Both tables exist on both sides; only counts differ. This must not be
	// misreported as "only in" either side.
	source := snapshotOf(map[string]int64{"user": 2, "order": 1})
	destination := snapshotOf(map[string]int64{"user": 1, "order": 2})

	diff := Diff(source, destination)

	assert.Empty(t, diff.OnlyInSource)
	assert.Empty(t, diff.OnlyInDestination)
	require.Len(t, diff.InBoth, 2)

	assert.Equal(t, TableCounts{Table: "order", Source: 1, Destination: 2}, diff.InBoth[0])
	assert.Equal(t, TableCounts{Table: "user", Source: 2, Destination: 1}, diff.InBoth[1])
	assert.False(t, diff.InSync())
}

func TestDiff_ExtraDestinationTable(t *testing.T) {
	// A table present only in the destination must surface, never be dropped.
	source := snapshotOf(map[string]int64{"user": 2})
	destination := snapshotOf(map[string]int64{"user": 2, "session": 10})

	diff := Diff(source, destination)

	assert.Empty(t, diff.OnlyInSource)
	require.Len(t, diff.OnlyInDestination, 1)
	assert.Equal(t, "session", diff.OnlyInDestination[0].Table)
	assert.Equal(t, int64(10), diff.OnlyInDestination[0].KeyCount)
}

func TestDiff_Symmetry(t *testing.T) {
	a := snapshotOf(map[string]int64{"user": 2, "order": 1, "cart": 4})
	b := snapshotOf(map[string]int64{"user": 1, "session": 9})

	forward := Diff(a, b)
	backward := Diff(b, a)

	assert.Equal(t, forward.OnlyInSource, backward.OnlyInDestination)
	assert.Equal(t, forward.OnlyInDestination, backward.OnlyInSource)
}

func TestDiff_Totality(t *testing.T) {
	// Every table appearing in either snapshot lands in exactly one group.
	a := snapshotOf(map[string]int64{"a": 1, "b": 2, "c": 3})
	b := snapshotOf(map[string]int64{"b": 2, "c": 1, "d": 4})

	diff := Diff(a, b)

	seen := make(map[string]int)
	for _, ts := range diff.OnlyInSource {
		seen[ts.Table]++
	}
	for _, ts := range diff.OnlyInDestination {
		seen[ts.Table]++
	}
	for _, tc := range diff.InBoth {
		seen[tc.Table]++
	}

	for _, table := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, 1, seen[table], "table %s should appear exactly once", table)
	}
	assert.Len(t, seen, 4)
}

func TestDiff_Determinism(t *testing.T) {
	a := snapshotOf(map[string]int64{"user": 2, "order": 1})
	b := snapshotOf(map[string]int64{"user": 2, "session": 3})

	first := Diff(a, b)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Diff(a, b))
	}
}

func TestDiff_EmptySnapshots(t *testing.T) {
	empty := snapshotOf(map[string]int64{})

	diff := Diff(empty, empty)

	assert.Empty(t, diff.OnlyInSource)
	assert.Empty(t, diff.OnlyInDestination)
	assert.Empty(t, diff.InBoth)
	assert.True(t, diff.InSync())
}

func TestDiff_OneSideEmpty(t *testing.T) {
	source := snapshotOf(map[string]int64{"user": 2, "order": 1})
	empty := snapshotOf(map[string]int64{})

	diff := Diff(source, empty)

	require.Len(t, diff.OnlyInSource, 2)
	assert.Equal(t, "order", diff.OnlyInSource[0].Table)
	assert.Equal(t, "user", diff.OnlyInSource[1].Table)
	assert.Empty(t, diff.InBoth)
}

func TestDiff_LexicographicOrder(t *testing.T) {
	a := snapshotOf(map[string]int64{"zebra": 1, "apple": 1, "mango": 1})
	b := snapshotOf(map[string]int64{"zebra": 1, "apple": 1, "mango": 1})

	diff := Diff(a, b)

	require.Len(t, diff.InBoth, 3)
	assert.Equal(t, "apple", diff.InBoth[0].Table)
	assert.Equal(t, "mango", diff.InBoth[1].Table)
	assert.Equal(t, "zebra", diff.InBoth[2].Table)
}

func TestDiff_SentinelTables(t *testing.T) {
	// The no-prefix sentinel and the empty-string table are distinct,
	// ordinary tables to the differ.
	a := snapshotOf(map[string]int64{TableNoPrefix: 3, "": 1})
	b := snapshotOf(map[string]int64{TableNoPrefix: 3})

	diff := Diff(a, b)

	require.Len(t, diff.OnlyInSource, 1)
	assert.Equal(t, "", diff.OnlyInSource[0].Table)
	require.Len(t, diff.InBoth, 1)
	assert.Equal(t, TableNoPrefix, diff.InBoth[0].Table)
}
