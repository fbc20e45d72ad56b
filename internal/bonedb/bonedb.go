// Package bonedb decodes the bone database: per-skeleton bone records
// whose type says whether the engine drives a bone by rotation or by
// position.
package bonedb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"mot-retarget/internal/binio"
)

//go:generate go tool stringer -type=BoneType -trimprefix=BoneType -output=bonetype_string.go

// BoneType is the engine's bone driving mode.
type BoneType uint8

const (
	BoneTypeRotation BoneType = iota
	BoneTypeType1
	BoneTypePosition
	BoneTypeType3
	BoneTypeType4
	BoneTypeType5
	BoneTypeType6
)

// Signature opens every bone database.
const Signature uint32 = 0x09102720

const (
	boneEntrySize = 12
	endOfBones    = 0xFF
)

var (
	ErrBadSignature = errors.New("bone_data: bad signature")
	ErrNoSkeleton   = errors.New("bone_data: skeleton not found")
)

type Bone struct {
	Name       string
	Type       BoneType
	HasParent  bool
	Parent     uint8
	PoleTarget uint8
	Mirror     uint8
	Flags      uint8
}

type Skeleton struct {
	Name  string
	Bones []Bone
}

// Mode returns the type of the bone with exactly this name, or
// BoneTypePosition when the skeleton has no such bone.
func (s *Skeleton) Mode(name string) BoneType {
	for _, b := range s.Bones {
		if b.Name == name {
			return b.Type
		}
	}
	return BoneTypePosition
}

// IsRotation reports whether the named bone is driven by rotation.
func (s *Skeleton) IsRotation(name string) bool {
	return s.Mode(name) == BoneTypeRotation
}

type Database struct {
	Skeletons []Skeleton
}

// Skeleton returns the named skeleton, or the first one when name is empty.
func (db *Database) Skeleton(name string) (*Skeleton, error) {
	if len(db.Skeletons) == 0 {
		return nil, ErrNoSkeleton
	}
	if name == "" {
		return &db.Skeletons[0], nil
	}
	for i := range db.Skeletons {
		if db.Skeletons[i].Name == name {
			return &db.Skeletons[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSkeleton, name)
}

// Load reads and decodes a bone database file.
func Load(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bone_data: read %s: %w", path, err)
	}
	db, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return db, nil
}

// Decode parses a little-endian bone database.
//
// Header: signature, skeleton count, skeleton offsets table, skeleton name
// offsets table. A skeleton header holds the offset of its bone list; bones
// are 12-byte records terminated by a record of type 0xFF.
func Decode(data []byte) (*Database, error) {
	r := binio.NewReader(data, binary.LittleEndian)

	sig := r.U32()
	count := r.U32()
	skelsOff := r.U32()
	namesOff := r.U32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("bone_data: read header: %w", err)
	}
	if sig != Signature {
		return nil, fmt.Errorf("%w %#08x", ErrBadSignature, sig)
	}
	if int(count) > len(data)/4 {
		return nil, fmt.Errorf("bone_data: %d skeletons in %d bytes: %w", count, len(data), binio.ErrTruncated)
	}

	db := &Database{Skeletons: make([]Skeleton, count)}
	for i := range db.Skeletons {
		skel := &db.Skeletons[i]

		r.Seek(int(namesOff) + 4*i)
		skel.Name = r.CString(r.U32())

		r.Seek(int(skelsOff) + 4*i)
		r.Seek(int(r.U32()))
		r.Seek(int(r.U32()))
		for r.Err() == nil {
			typ := r.U8()
			if typ == endOfBones {
				break
			}
			b := Bone{
				Type:       BoneType(typ),
				HasParent:  r.U8() != 0,
				Parent:     r.U8(),
				PoleTarget: r.U8(),
				Mirror:     r.U8(),
				Flags:      r.U8(),
			}
			r.U16() // padding
			b.Name = r.CString(r.U32())
			skel.Bones = append(skel.Bones, b)
		}
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("bone_data: skeleton %d: %w", i, err)
		}
	}

	return db, nil
}

// Encode serializes db in the layout read by Decode.
func Encode(db *Database) []byte {
	w := binio.NewWriter(binary.LittleEndian)
	w.U32(Signature)
	w.U32(uint32(len(db.Skeletons)))
	w.U32(0)
	w.U32(0)

	skelsOff := w.Len()
	for range db.Skeletons {
		w.U32(0)
	}
	namesOff := w.Len()
	for range db.Skeletons {
		w.U32(0)
	}

	for i, skel := range db.Skeletons {
		headerOff := w.Len()
		w.U32(0)
		w.PutU32At(skelsOff+4*i, uint32(headerOff))

		bonesOff := w.Len()
		w.PutU32At(headerOff, uint32(bonesOff))
		for _, b := range skel.Bones {
			w.U8(uint8(b.Type))
			if b.HasParent {
				w.U8(1)
			} else {
				w.U8(0)
			}
			w.U8(b.Parent)
			w.U8(b.PoleTarget)
			w.U8(b.Mirror)
			w.U8(b.Flags)
			w.U16(0)
			w.U32(0)
		}
		w.U8(endOfBones)
		w.Align(4)

		for j, b := range skel.Bones {
			w.PutU32At(bonesOff+boneEntrySize*j+8, w.CString(b.Name))
		}
		w.PutU32At(namesOff+4*i, w.CString(skel.Name))
		w.Align(4)
	}

	w.PutU32At(8, uint32(skelsOff))
	w.PutU32At(12, uint32(namesOff))
	return w.Bytes()
}
