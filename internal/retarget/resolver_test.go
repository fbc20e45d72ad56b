package retarget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mot-retarget/internal/motdb"
)

func namesDB(names ...string) *motdb.Database {
	return &motdb.Database{Bones: names}
}

func TestResolveEndEffectorBump(t *testing.T) {
	db := namesDB("b0", "b1", "b2", "b3", "b4", "e_head", "head")
	r := NewResolver(db, []uint16{0, 4, 6, 9}, DefaultNameRules(), DefaultExclude())

	res, err := r.Resolve("e_head")
	require.NoError(t, err)
	assert.Equal(t, Resolution{Name: "e_head", DBBoneID: 6, Slot: 2}, res)
}

func TestResolveBumpMatchesAnywhere(t *testing.T) {
	db := namesDB("kl_te_l_wj", "x")
	r := NewResolver(db, []uint16{1}, DefaultNameRules(), nil)

	// "te_" contains "e_"
	res, err := r.Resolve("kl_te_l_wj")
	require.NoError(t, err)
	assert.Equal(t, 1, res.DBBoneID)
}

func TestResolveFailures(t *testing.T) {
	db := namesDB("a", "b", "c")
	r := NewResolver(db, []uint16{0, 1}, DefaultNameRules(), nil)

	_, err := r.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownBone)

	_, err = r.Resolve("c")
	assert.ErrorIs(t, err, ErrUnmappedBone)
}

func TestResolveExcluded(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	bones := []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	r := NewResolver(namesDB(names...), bones, nil, DefaultExclude())

	res, err := r.Resolve("i")
	assert.ErrorIs(t, err, ErrExcluded)
	assert.Equal(t, 8, res.Slot)

	_, err = r.Resolve("h")
	assert.NoError(t, err)
}

func TestResolveRuleTable(t *testing.T) {
	db := namesDB("p_root", "root", "x", "y", "tip_end")
	rules := []NameRule{
		{Contains: "tip_", Bump: -2},
		{Contains: "p_", Bump: 1},
		{Contains: "", Bump: 100}, // empty patterns never match
	}
	r := NewResolver(db, []uint16{0, 1, 2, 3, 4}, rules, nil)

	res, err := r.Resolve("p_root")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Slot)

	// first matching rule wins
	res, err = r.Resolve("tip_end")
	require.NoError(t, err)
	assert.Equal(t, 2, res.DBBoneID)

	res, err = r.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, 2, res.DBBoneID)
}

func TestResolveWithoutRules(t *testing.T) {
	db := namesDB("e_head", "head")
	r := NewResolver(db, []uint16{0, 1}, nil, nil)

	res, err := r.Resolve("e_head")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Slot)
}
