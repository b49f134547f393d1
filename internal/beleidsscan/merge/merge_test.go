package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eqStr(a, b string) bool { return a == b }

func TestMapsCleanMerge(t *testing.T) {
	base := map[string]string{"a": "1", "b": "2", "c": "3"}
	ours := map[string]string{"a": "1", "b": "2x", "c": "3", "d": "4"}
	theirs := map[string]string{"b": "2", "c": "3", "e": "5"} // deleted a, added e

	got, conflicts, err := Maps(base, ours, theirs, eqStr, Options{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, map[string]string{"b": "2x", "c": "3", "d": "4", "e": "5"}, got)
}

func TestMapsIdenticalChangeIsNotConflict(t *testing.T) {
	base := map[string]string{"a": "1"}
	ours := map[string]string{"a": "2", "n": "new"}
	theirs := map[string]string{"a": "2", "n": "new"}

	got, conflicts, err := Maps(base, ours, theirs, eqStr, Options{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, map[string]string{"a": "2", "n": "new"}, got)
}

func TestMapsBothDeleted(t *testing.T) {
	base := map[string]string{"a": "1"}
	got, conflicts, err := Maps(base, map[string]string{}, map[string]string{}, eqStr, Options{})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Empty(t, got)
}

func TestMapsConflictKinds(t *testing.T) {
	tests := []struct {
		name   string
		base   map[string]string
		ours   map[string]string
		theirs map[string]string
		kind   ConflictKind
	}{
		{
			name:   "both modified differently",
			base:   map[string]string{"k": "0"},
			ours:   map[string]string{"k": "1"},
			theirs: map[string]string{"k": "2"},
			kind:   ConflictBothModified,
		},
		{
			name:   "both added differently",
			base:   map[string]string{},
			ours:   map[string]string{"k": "1"},
			theirs: map[string]string{"k": "2"},
			kind:   ConflictBothAdded,
		},
		{
			name:   "modify versus delete",
			base:   map[string]string{"k": "0"},
			ours:   map[string]string{"k": "1"},
			theirs: map[string]string{},
			kind:   ConflictModifyDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, conflicts, err := Maps(tt.base, tt.ours, tt.theirs, eqStr, Options{Strategy: StrategyFail})
			assert.ErrorIs(t, err, ErrUnresolvedConflicts)
			assert.Nil(t, got)
			require.Len(t, conflicts, 1)
			assert.Equal(t, "k", conflicts[0].Key)
			assert.Equal(t, tt.kind, conflicts[0].Kind)
		})
	}
}

func TestMapsStrategyOursAndTheirs(t *testing.T) {
	base := map[string]string{"k": "0"}
	ours := map[string]string{"k": "1"}
	theirs := map[string]string{"k": "2"}

	got, conflicts, err := Maps(base, ours, theirs, eqStr, Options{Strategy: StrategyOurs})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, "1", got["k"])

	got, _, err = Maps(base, ours, theirs, eqStr, Options{Strategy: StrategyTheirs})
	require.NoError(t, err)
	assert.Equal(t, "2", got["k"])
}

func TestMapsStrategyTheirsDeletionWins(t *testing.T) {
	base := map[string]string{"k": "0"}
	ours := map[string]string{"k": "1"}
	theirs := map[string]string{}

	got, _, err := Maps(base, ours, theirs, eqStr, Options{Strategy: StrategyTheirs})
	require.NoError(t, err)
	_, exists := got["k"]
	assert.False(t, exists)
}

func TestMapsManualResolution(t *testing.T) {
	base := map[string]string{"a": "0", "b": "0"}
	ours := map[string]string{"a": "1", "b": "1"}
	theirs := map[string]string{"a": "2", "b": "2"}

	// only one key resolved: the other stays a conflict
	got, conflicts, err := Maps(base, ours, theirs, eqStr, Options{
		Strategy: StrategyManual,
		Choices:  map[string]Side{"a": SideTheirs},
	})
	assert.ErrorIs(t, err, ErrUnresolvedConflicts)
	assert.Nil(t, got)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "b", conflicts[0].Key)

	got, conflicts, err = Maps(base, ours, theirs, eqStr, Options{
		Strategy: StrategyManual,
		Choices:  map[string]Side{"a": SideTheirs, "b": SideBase},
	})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, map[string]string{"a": "2", "b": "0"}, got)
}

func TestMapsUnknownStrategy(t *testing.T) {
	_, _, err := Maps(nil, nil, nil, eqStr, Options{Strategy: Strategy("bogus")})
	assert.Error(t, err)
}
