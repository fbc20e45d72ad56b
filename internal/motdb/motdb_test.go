package motdb

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mot-retarget/internal/binio"
)

func sampleDB() *Database {
	return &Database{
		MotionSets: []MotionSet{
			{ID: 3, Name: "CMN", Motions: []Motion{{ID: 100, Name: "CMN_POSE_STAND"}, {ID: 101, Name: "CMN_POSE_WALK"}}},
			{ID: 9, Name: "EMPTY"},
		},
		Bones: []string{"gblctr", "n_hara_cp", "kg_hara_y", "e_kao_cp", "n_kao", "j_kao_wj"},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			want := sampleDB()
			got, err := Decode(Encode(want, order), order)
			require.NoError(t, err)

			assert.Equal(t, want.Bones, got.Bones)
			require.Len(t, got.MotionSets, 2)
			assert.Equal(t, want.MotionSets[0], got.MotionSets[0])
			assert.Equal(t, "EMPTY", got.MotionSets[1].Name)
			assert.Equal(t, uint32(9), got.MotionSets[1].ID)
			assert.Empty(t, got.MotionSets[1].Motions)
		})
	}
}

func TestBoneID(t *testing.T) {
	db := sampleDB()

	id, ok := db.BoneID("e_kao_cp")
	require.True(t, ok)
	assert.Equal(t, 3, id)

	_, ok = db.BoneID("E_KAO_CP")
	assert.False(t, ok, "lookup is an exact match")

	_, ok = db.BoneID("missing")
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte{1, 0, 0}, binary.LittleEndian)
	assert.ErrorIs(t, err, binio.ErrTruncated)

	data := Encode(sampleDB(), binary.LittleEndian)
	bad := append([]byte(nil), data...)
	binary.LittleEndian.PutUint32(bad, 2)
	_, err = Decode(bad, binary.LittleEndian)
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Decode(data[:40], binary.LittleEndian)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mot_db.bin")
	require.NoError(t, os.WriteFile(path, Encode(sampleDB(), binary.LittleEndian), 0644))

	db, err := Load(path, binary.LittleEndian)
	require.NoError(t, err)
	assert.Len(t, db.Bones, 6)

	_, err = Load(filepath.Join(t.TempDir(), "nope.bin"), binary.LittleEndian)
	assert.Error(t, err)
}
