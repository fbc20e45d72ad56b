package bonedb

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
		Skeletons: []Skeleton{
			{
				Name: "CMN",
				Bones: []Bone{
					{Name: "n_hara_cp", Type: BoneTypePosition},
					{Name: "kg_hara_y", Type: BoneTypeRotation, HasParent: true, Parent: 0},
					{Name: "c_kata_l", Type: BoneTypeType6, HasParent: true, Parent: 1, PoleTarget: 3, Mirror: 4, Flags: 1},
				},
			},
			{Name: "EMPTY"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	got, err := Decode(Encode(sampleDB()))
	require.NoError(t, err)
	require.Len(t, got.Skeletons, 2)
	assert.Equal(t, sampleDB().Skeletons[0], got.Skeletons[0])
	assert.Equal(t, "EMPTY", got.Skeletons[1].Name)
	assert.Empty(t, got.Skeletons[1].Bones)
}

func TestSkeletonMode(t *testing.T) {
	skel := sampleDB().Skeletons[0]

	tests := []struct {
		name string
		want BoneType
		rot  bool
	}{
		{"kg_hara_y", BoneTypeRotation, true},
		{"n_hara_cp", BoneTypePosition, false},
		{"c_kata_l", BoneTypeType6, false},
		{"not_in_skeleton", BoneTypePosition, false},
		{"KG_HARA_Y", BoneTypePosition, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skel.Mode(tt.name))
			assert.Equal(t, tt.rot, skel.IsRotation(tt.name))
		})
	}
}

func TestDatabaseSkeleton(t *testing.T) {
	db := sampleDB()

	s, err := db.Skeleton("")
	require.NoError(t, err)
	assert.Equal(t, "CMN", s.Name)

	s, err = db.Skeleton("EMPTY")
	require.NoError(t, err)
	assert.Equal(t, "EMPTY", s.Name)

	_, err = db.Skeleton("MIK")
	assert.ErrorIs(t, err, ErrNoSkeleton)

	_, err = (&Database{}).Skeleton("")
	assert.ErrorIs(t, err, ErrNoSkeleton)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte{0x20, 0x27})
	assert.ErrorIs(t, err, binio.ErrTruncated)

	data := Encode(sampleDB())
	bad := append([]byte(nil), data...)
	binary.LittleEndian.PutUint32(bad, 0xDEADBEEF)
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrBadSignature)

	_, err = Decode(data[:28])
	assert.Error(t, err)
}

func TestBoneTypeString(t *testing.T) {
	assert.Equal(t, "Rotation", BoneTypeRotation.String())
	assert.Equal(t, "Position", BoneTypePosition.String())
	assert.Equal(t, "BoneType(200)", BoneType(200).String())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bone_data.bin")
	require.NoError(t, os.WriteFile(path, Encode(sampleDB()), 0644))

	db, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, db.Skeletons, 2)
}
