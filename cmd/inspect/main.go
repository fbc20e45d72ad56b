package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"mot-retarget/internal/bonedb"
	"mot-retarget/internal/bvh"
	"mot-retarget/internal/motdb"
	"mot-retarget/internal/motion"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                6,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func main() {
	dump := flag.Bool("dump", false, "Dump the decoded structure")
	bigEndian := flag.Bool("be", false, "mot and mot_db files are big-endian")
	encoding := flag.String("encoding", "", "BVH joint name encoding (utf-8, shift_jis)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-dump] [-be] <file>...\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if *bigEndian {
		order = binary.BigEndian
	}

	failed := false
	for _, path := range flag.Args() {
		v, err := inspect(path, order, bvh.Options{NameEncoding: *encoding})
		if err != nil {
			fmt.Printf("%s: Error: %v\n", path, err)
			failed = true
			continue
		}
		if *dump {
			dumper.Dump(v)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string, order binary.ByteOrder, opts bvh.Options) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch detect(path, data) {
	case "bvh":
		b, err := bvh.ParseBytes(data, opts)
		if err != nil {
			return nil, err
		}
		printBvh(path, b)
		return b, nil
	case "bone_data":
		db, err := bonedb.Decode(data)
		if err != nil {
			return nil, err
		}
		printBoneDB(path, db)
		return db, nil
	case "mot_db":
		db, err := motdb.Decode(data, order)
		if err != nil {
			return nil, err
		}
		printMotDB(path, db)
		return db, nil
	default:
		m, err := motion.Decode(data, order)
		if err != nil {
			return nil, err
		}
		printMotion(path, m)
		return m, nil
	}
}

func detect(path string, data []byte) string {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".bvh"), bytes.HasPrefix(bytes.TrimSpace(data), []byte("HIERARCHY")):
		return "bvh"
	case len(data) >= 4 && binary.LittleEndian.Uint32(data) == bonedb.Signature:
		return "bone_data"
	case strings.Contains(base, "mot_db"):
		return "mot_db"
	}
	return "mot"
}

func printBvh(path string, b *bvh.Bvh) {
	fmt.Printf("%s: BVH, joints=%d, channels=%d, frames=%d, frame time=%.4fs\n",
		path, len(b.Joints), b.ChannelCount(), b.FrameCount(), b.FrameTime)
	for _, j := range b.Joints {
		types := make([]string, len(j.Channels))
		for i, c := range j.Channels {
			types[i] = c.Type.String()
		}
		fmt.Printf("  %s%s [%s]\n", strings.Repeat("  ", j.Depth), j.Name, strings.Join(types, " "))
	}
}

func printBoneDB(path string, db *bonedb.Database) {
	fmt.Printf("%s: bone_data, skeletons=%d\n", path, len(db.Skeletons))
	for _, s := range db.Skeletons {
		counts := map[bonedb.BoneType]int{}
		for _, b := range s.Bones {
			counts[b.Type]++
		}
		fmt.Printf("  %s: bones=%d, rotation=%d, position=%d\n",
			s.Name, len(s.Bones), counts[bonedb.BoneTypeRotation], counts[bonedb.BoneTypePosition])
	}
}

func printMotDB(path string, db *motdb.Database) {
	motions := 0
	for _, s := range db.MotionSets {
		motions += len(s.Motions)
	}
	fmt.Printf("%s: mot_db, sets=%d, motions=%d, bones=%d\n", path, len(db.MotionSets), motions, len(db.Bones))
	for _, s := range db.MotionSets {
		fmt.Printf("  [%d] %s: %d motions\n", s.ID, s.Name, len(s.Motions))
	}
}

func printMotion(path string, m *motion.Motion) {
	counts := map[motion.Kind]int{}
	keys := 0
	for _, fd := range m.Sets {
		counts[fd.Kind]++
		keys += fd.Len()
	}
	fmt.Printf("%s: mot, frames=%d, slots=%d, sets=%d, keys=%d\n", path, m.FrameCount, m.SlotCount(), len(m.Sets), keys)
	for _, k := range []motion.Kind{motion.KindNone, motion.KindPose, motion.KindLinear, motion.KindSmooth} {
		fmt.Printf("  %s: %d\n", k, counts[k])
	}
	for slot := range m.Bones {
		c := m.Slot(slot)
		if !c[0].IsAnimated() && !c[1].IsAnimated() && !c[2].IsAnimated() {
			continue
		}
		fmt.Printf("  slot %d (bone %d): %s/%s/%s keys=%d/%d/%d\n", slot, m.Bones[slot],
			c[0].Kind, c[1].Kind, c[2].Kind, c[0].Len(), c[1].Len(), c[2].Len())
	}
}
