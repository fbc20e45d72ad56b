package config

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mot-retarget/internal/axis"
	"mot-retarget/internal/retarget"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "retarget.yaml", `
base_dir: /data/diva
mot_db: rob/mot_db.bin
big_endian: true
bvh_name_encoding: shift_jis
directive: "-x+y+z"
scale: [2, 2, 2]
name_rules:
  - contains: "tip_"
    bump: 2
exclude_slots: []
joint_workers: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/diva", cfg.BaseDir)
	assert.True(t, cfg.BigEndian)
	assert.Equal(t, "shift_jis", cfg.BvhNameEncoding)
	assert.Equal(t, []float32{2, 2, 2}, cfg.Scale)
	assert.Equal(t, []NameRule{{Contains: "tip_", Bump: 2}}, cfg.NameRules)
	assert.NotNil(t, cfg.ExcludeSlots)
	assert.Empty(t, cfg.ExcludeSlots)
	assert.Equal(t, 4, cfg.JointWorkers)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"bone_db": "/abs/bone_data.bin", "workers": 3, "exclude_slots": [1, 2]}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/abs/bone_data.bin", cfg.BoneDB)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []int{1, 2}, cfg.ExcludeSlots)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.json", `{"workers": "many"}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "scale: [1, 2\n"))
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	cfg := Config{BaseDir: "/data"}
	cfg.Resolve(Flags{})

	assert.Equal(t, filepath.Join("/data", "rob", "mot_db.bin"), cfg.MotDB)
	assert.Equal(t, filepath.Join("/data", "rob", "bone_data.bin"), cfg.BoneDB)
	assert.Equal(t, filepath.Join("/data", "rob", "retargeted"), cfg.OutputDir)
	assert.Equal(t, "+x+z+y", cfg.Directive)
	assert.Equal(t, []float32{1, 1, -1}, cfg.Scale)
	assert.Equal(t, []float32{0, 0, 0}, cfg.Offset)
	assert.Equal(t, []NameRule{{Contains: "e_", Bump: 1}}, cfg.NameRules)
	assert.Equal(t, []int{8}, cfg.ExcludeSlots)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, 1, cfg.JointWorkers)
	assert.Equal(t, binary.LittleEndian, cfg.ByteOrder())
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{BaseDir: "/data", MotDB: "custom/mot_db.bin", Workers: 2, Directive: "+x+y+z"}
	cfg.Resolve(Flags{
		DataDir:   "/other",
		BoneDB:    "/abs/bone.bin",
		Directive: "-x-y-z",
		BigEndian: true,
		Workers:   6,
	})

	assert.Equal(t, "/other", cfg.BaseDir)
	assert.Equal(t, filepath.Join("/other", "custom", "mot_db.bin"), cfg.MotDB)
	assert.Equal(t, "/abs/bone.bin", cfg.BoneDB)
	assert.Equal(t, "-x-y-z", cfg.Directive)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, binary.BigEndian, cfg.ByteOrder())
}

func TestResolveKeepsExplicitEmptyTables(t *testing.T) {
	cfg := Config{BaseDir: "/data", NameRules: []NameRule{}, ExcludeSlots: []int{}}
	cfg.Resolve(Flags{})
	assert.Empty(t, cfg.NameRules)
	assert.Empty(t, cfg.ExcludeSlots)

	opts, err := cfg.RetargetOptions(nil)
	require.NoError(t, err)
	assert.Empty(t, opts.Rules)
	assert.Empty(t, opts.Exclude)
}

func TestRetargetOptions(t *testing.T) {
	cfg := Config{
		Directive:    "-x0y+z",
		Scale:        []float32{1, 2, 3},
		Offset:       []float32{0, 0, 5},
		NameRules:    []NameRule{{Contains: "e_", Bump: 2}},
		ExcludeSlots: []int{0},
		JointWorkers: 3,
	}
	opts, err := cfg.RetargetOptions(nil)
	require.NoError(t, err)

	assert.Equal(t, axis.MustParse("-x0y+z"), opts.Directive)
	assert.Equal(t, axis.Conversion{Scale: [3]float32{1, 2, 3}, Offset: [3]float32{0, 0, 5}}, opts.Conversion)
	assert.Equal(t, []retarget.NameRule{{Contains: "e_", Bump: 2}}, opts.Rules)
	assert.Equal(t, []int{0}, opts.Exclude)
	assert.Equal(t, 3, opts.Workers)
}

func TestRetargetOptionsUnsetUsesDefaults(t *testing.T) {
	opts, err := (&Config{}).RetargetOptions(nil)
	require.NoError(t, err)
	def := retarget.DefaultOptions()
	assert.Equal(t, def.Directive, opts.Directive)
	assert.Equal(t, def.Conversion, opts.Conversion)
	assert.Equal(t, def.Rules, opts.Rules)
	assert.Equal(t, def.Exclude, opts.Exclude)
}

func TestRetargetOptionsErrors(t *testing.T) {
	_, err := (&Config{Directive: "+x+y+w"}).RetargetOptions(nil)
	assert.ErrorIs(t, err, axis.ErrMalformedDirective)

	_, err = (&Config{Scale: []float32{1, 1}}).RetargetOptions(nil)
	assert.Error(t, err)

	_, err = (&Config{Offset: []float32{1, 1, 1, 1}}).RetargetOptions(nil)
	assert.Error(t, err)
}
