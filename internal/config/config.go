package config

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"mot-retarget/internal/axis"
)

// Config holds the database paths and retarget rules of a run.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir" yaml:"base_dir"`
	MotDB     string `json:"mot_db" yaml:"mot_db"`
	BoneDB    string `json:"bone_db" yaml:"bone_db"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Decoding
	BigEndian       bool   `json:"big_endian" yaml:"big_endian"`
	BvhNameEncoding string `json:"bvh_name_encoding" yaml:"bvh_name_encoding"`
	Skeleton        string `json:"skeleton" yaml:"skeleton"`

	// Retarget rules. A nil NameRules or ExcludeSlots takes the default
	// table; an explicit empty list disables it.
	Directive    string     `json:"directive" yaml:"directive"`
	Scale        []float32  `json:"scale" yaml:"scale"`
	Offset       []float32  `json:"offset" yaml:"offset"`
	NameRules    []NameRule `json:"name_rules" yaml:"name_rules"`
	ExcludeSlots []int      `json:"exclude_slots" yaml:"exclude_slots"`

	// Execution
	Workers      int `json:"workers" yaml:"workers"`
	JointWorkers int `json:"joint_workers" yaml:"joint_workers"`
	PreviewSize  int `json:"preview_size" yaml:"preview_size"`
}

// NameRule is the file form of a bone-name adjustment.
type NameRule struct {
	Contains string `json:"contains" yaml:"contains"`
	Bump     int    `json:"bump" yaml:"bump"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir      string
	MotDB        string
	BoneDB       string
	OutputDir    string
	Directive    string
	BigEndian    bool
	Workers      int
	JointWorkers int
}

// Resolve applies CLI overrides, resolves relative paths against BaseDir
// and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.MotDB != "" {
		c.MotDB = flags.MotDB
	}
	if flags.BoneDB != "" {
		c.BoneDB = flags.BoneDB
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Directive != "" {
		c.Directive = flags.Directive
	}
	if flags.BigEndian {
		c.BigEndian = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.JointWorkers > 0 {
		c.JointWorkers = flags.JointWorkers
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	if c.BaseDir != "" {
		if c.MotDB == "" {
			c.MotDB = filepath.Join(c.BaseDir, "rob", "mot_db.bin")
		} else if !filepath.IsAbs(c.MotDB) {
			c.MotDB = filepath.Join(c.BaseDir, c.MotDB)
		}

		if c.BoneDB == "" {
			c.BoneDB = filepath.Join(c.BaseDir, "rob", "bone_data.bin")
		} else if !filepath.IsAbs(c.BoneDB) {
			c.BoneDB = filepath.Join(c.BaseDir, c.BoneDB)
		}

		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "rob", "retargeted")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}

	if c.Directive == "" {
		c.Directive = axis.Default
	}
	if c.Scale == nil {
		c.Scale = []float32{1, 1, -1}
	}
	if c.Offset == nil {
		c.Offset = []float32{0, 0, 0}
	}
	if c.NameRules == nil {
		c.NameRules = []NameRule{{Contains: "e_", Bump: 1}}
	}
	if c.ExcludeSlots == nil {
		c.ExcludeSlots = []int{8}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.JointWorkers <= 0 {
		c.JointWorkers = 1
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 1024
	}
}

// ByteOrder returns the byte order of mot and mot_db files.
func (c *Config) ByteOrder() binary.ByteOrder {
	if c.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if hasDatabases(base) {
				return base
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if hasDatabases(cwd) {
		return cwd
	}
	return ""
}

func hasDatabases(base string) bool {
	_, err := os.Stat(filepath.Join(base, "rob", "mot_db.bin"))
	return err == nil
}
