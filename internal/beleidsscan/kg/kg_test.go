package kg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
)

type memStore map[string]*Commit

func (m memStore) GetCommit(_ context.Context, id string) (*Commit, error) {
	c, ok := m[id]
	if !ok {
		return nil, ErrCommitNotFound
	}
	return c, nil
}

func (m memStore) add(id string, parents ...string) {
	m[id] = &Commit{ID: id, Parents: parents}
}

func TestSnapshotOf(t *testing.T) {
	s := SnapshotOf([]Triple{
		{Subject: "doc:1", Predicate: "dct:title", Object: "Omgevingsvisie"},
		{Subject: "doc:1", Predicate: "dct:title", Object: "Omgevingsvisie 2040"},
	})
	// later triple wins the slot
	require.Len(t, s, 1)
	assert.Equal(t, "Omgevingsvisie 2040", s["doc:1|dct:title"].Object)
}

func TestMergeSnapshotsClean(t *testing.T) {
	base := SnapshotOf([]Triple{
		{Subject: "doc:1", Predicate: "dct:title", Object: "Omgevingsvisie"},
		{Subject: "doc:1", Predicate: "dct:publisher", Object: "gemeente:utrecht"},
	})
	ours := SnapshotOf([]Triple{
		{Subject: "doc:1", Predicate: "dct:title", Object: "Omgevingsvisie 2040"},
		{Subject: "doc:1", Predicate: "dct:publisher", Object: "gemeente:utrecht"},
	})
	theirs := SnapshotOf([]Triple{
		{Subject: "doc:1", Predicate: "dct:title", Object: "Omgevingsvisie"},
		{Subject: "doc:1", Predicate: "dct:publisher", Object: "gemeente:utrecht"},
		{Subject: "doc:2", Predicate: "dct:title", Object: "Beleidsregel parkeren"},
	})

	got, conflicts, err := MergeSnapshots(base, ours, theirs, merge.Options{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Len(t, got, 3)
	assert.Equal(t, "Omgevingsvisie 2040", got["doc:1|dct:title"].Object)
}

func TestMergeSnapshotsConflict(t *testing.T) {
	base := SnapshotOf([]Triple{{Subject: "doc:1", Predicate: "dct:title", Object: "a"}})
	ours := SnapshotOf([]Triple{{Subject: "doc:1", Predicate: "dct:title", Object: "b"}})
	theirs := SnapshotOf([]Triple{{Subject: "doc:1", Predicate: "dct:title", Object: "c"}})

	_, conflicts, err := MergeSnapshots(base, ours, theirs, merge.Options{})
	assert.ErrorIs(t, err, merge.ErrUnresolvedConflicts)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "doc:1|dct:title", conflicts[0].Key)
}

func TestMergeSnapshotsNilBase(t *testing.T) {
	ours := SnapshotOf([]Triple{{Subject: "doc:1", Predicate: "p", Object: "x"}})
	theirs := SnapshotOf([]Triple{{Subject: "doc:1", Predicate: "p", Object: "y"}})

	_, conflicts, err := MergeSnapshots(nil, ours, theirs, merge.Options{})
	assert.ErrorIs(t, err, merge.ErrUnresolvedConflicts)
	require.Len(t, conflicts, 1)
	assert.Equal(t, merge.ConflictBothAdded, conflicts[0].Kind)
}

// history:
//
//	c1 -- c2 -- c3        (main)
//	  \
//	   c4 -- c5           (topic)
func testHistory() memStore {
	m := memStore{}
	m.add("c1")
	m.add("c2", "c1")
	m.add("c3", "c2")
	m.add("c4", "c1")
	m.add("c5", "c4")
	return m
}

func TestMergeBase(t *testing.T) {
	ctx := context.Background()
	m := testHistory()

	base, err := MergeBase(ctx, m, "c3", "c5")
	require.NoError(t, err)
	assert.Equal(t, "c1", base)

	// same commit
	base, err = MergeBase(ctx, m, "c3", "c3")
	require.NoError(t, err)
	assert.Equal(t, "c3", base)

	// linear: ancestor is the base
	base, err = MergeBase(ctx, m, "c2", "c3")
	require.NoError(t, err)
	assert.Equal(t, "c2", base)

	// disjoint history
	m.add("x1")
	base, err = MergeBase(ctx, m, "c3", "x1")
	require.NoError(t, err)
	assert.Equal(t, "", base)
}

func TestMergeBaseThroughMergeCommit(t *testing.T) {
	ctx := context.Background()
	m := testHistory()
	m.add("m1", "c3", "c5") // merge of topic into main

	base, err := MergeBase(ctx, m, "m1", "c5")
	require.NoError(t, err)
	assert.Equal(t, "c5", base)
}

func TestIsAncestor(t *testing.T) {
	ctx := context.Background()
	m := testHistory()

	ok, err := IsAncestor(ctx, m, "c1", "c5")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAncestor(ctx, m, "c3", "c5")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsAncestor(ctx, m, "", "c5")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFirstParentLog(t *testing.T) {
	ctx := context.Background()
	m := testHistory()
	m.add("m1", "c3", "c5")

	log, err := FirstParentLog(ctx, m, "m1", 0)
	require.NoError(t, err)
	ids := make([]string, len(log))
	for i, c := range log {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"m1", "c3", "c2", "c1"}, ids)

	log, err = FirstParentLog(ctx, m, "m1", 2)
	require.NoError(t, err)
	assert.Len(t, log, 2)
}
