// Package motdb decodes the motion-set database: the named motion sets
// and the global bone-name table whose positions are the db bone ids
// referenced by mot files.
package motdb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"mot-retarget/internal/binio"
)

const headerSize = 24

// ErrVersion is returned for a header version this package does not read.
var ErrVersion = errors.New("mot_db: unsupported version")

// Version is the only header version written and accepted.
const Version = 1

// MotionSet is one named group of motions.
type MotionSet struct {
	ID      uint32
	Name    string
	Motions []Motion
}

type Motion struct {
	ID   uint32
	Name string
}

// Database is a decoded mot_db.
type Database struct {
	MotionSets []MotionSet
	Bones      []string
}

// BoneID returns the position of name in the bone table (exact match).
func (db *Database) BoneID(name string) (int, bool) {
	for i, b := range db.Bones {
		if b == name {
			return i, true
		}
	}
	return 0, false
}

// Load reads and decodes a mot_db file.
func Load(path string, order binary.ByteOrder) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mot_db: read %s: %w", path, err)
	}
	db, err := Decode(raw, order)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return db, nil
}

// Decode parses a mot_db.
//
// Header (u32 each): version, sets offset, set count, set ids offset,
// bone name offsets offset, bone name count. Each set entry is
// {name, motion name offsets, motion count, motion ids offsets}; strings
// are null terminated.
func Decode(data []byte, order binary.ByteOrder) (*Database, error) {
	r := binio.NewReader(data, order)

	version := r.U32()
	setsOff := r.U32()
	setCount := r.U32()
	setIDsOff := r.U32()
	boneNamesOff := r.U32()
	boneCount := r.U32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot_db: read header: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w %d", ErrVersion, version)
	}
	// every entry needs at least 4 bytes
	if int(setCount) > len(data)/4 || int(boneCount) > len(data)/4 {
		return nil, fmt.Errorf("mot_db: counts %d/%d exceed %d bytes: %w", setCount, boneCount, len(data), binio.ErrTruncated)
	}

	db := &Database{
		MotionSets: make([]MotionSet, setCount),
		Bones:      make([]string, boneCount),
	}

	r.Seek(int(boneNamesOff))
	for i := range db.Bones {
		db.Bones[i] = r.CString(r.U32())
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot_db: read bone names: %w", err)
	}

	r.Seek(int(setIDsOff))
	for i := range db.MotionSets {
		db.MotionSets[i].ID = r.U32()
	}

	for i := range db.MotionSets {
		r.Seek(int(setsOff) + 16*i)
		set := &db.MotionSets[i]
		set.Name = r.CString(r.U32())
		namesOff := r.U32()
		count := r.U32()
		idsOff := r.U32()
		if r.Err() != nil || int(count) > len(data)/4 {
			return nil, fmt.Errorf("mot_db: set %d: bad motion table: %w", i, binio.ErrTruncated)
		}
		set.Motions = make([]Motion, count)
		r.Seek(int(namesOff))
		for j := range set.Motions {
			set.Motions[j].Name = r.CString(r.U32())
		}
		r.Seek(int(idsOff))
		for j := range set.Motions {
			set.Motions[j].ID = r.U32()
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("mot_db: read motion sets: %w", err)
	}

	return db, nil
}

// Encode serializes db in the layout read by Decode.
func Encode(db *Database, order binary.ByteOrder) []byte {
	w := binio.NewWriter(order)
	for i := 0; i < headerSize; i++ {
		w.U8(0)
	}

	setsOff := w.Len()
	for range db.MotionSets {
		for i := 0; i < 16; i++ {
			w.U8(0)
		}
	}

	setIDsOff := w.Len()
	for _, s := range db.MotionSets {
		w.U32(s.ID)
	}

	for i, s := range db.MotionSets {
		idsOff := w.Len()
		for _, m := range s.Motions {
			w.U32(m.ID)
		}
		namesOff := w.Len()
		for range s.Motions {
			w.U32(0)
		}
		for j, m := range s.Motions {
			w.PutU32At(namesOff+4*j, w.CString(m.Name))
		}
		w.Align(4)

		entry := setsOff + 16*i
		w.PutU32At(entry, w.CString(s.Name))
		w.Align(4)
		w.PutU32At(entry+4, uint32(namesOff))
		w.PutU32At(entry+8, uint32(len(s.Motions)))
		w.PutU32At(entry+12, uint32(idsOff))
	}

	boneNamesOff := w.Len()
	for range db.Bones {
		w.U32(0)
	}
	for i, b := range db.Bones {
		w.PutU32At(boneNamesOff+4*i, w.CString(b))
	}
	w.Align(4)

	w.PutU32At(0, Version)
	w.PutU32At(4, uint32(setsOff))
	w.PutU32At(8, uint32(len(db.MotionSets)))
	w.PutU32At(12, uint32(setIDsOff))
	w.PutU32At(16, uint32(boneNamesOff))
	w.PutU32At(20, uint32(len(db.Bones)))

	return w.Bytes()
}
