package retarget

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBone means the joint name is not in the motion-set database.
	ErrUnknownBone = errors.New("retarget: bone not in motion-set database")
	// ErrUnmappedBone means the db bone id is not in the motion's bone table.
	ErrUnmappedBone = errors.New("retarget: bone id not in motion bone table")
	// ErrExcluded means the resolved slot is protected from writes.
	ErrExcluded = errors.New("retarget: slot excluded")
)

// BoneNames looks a bone name up in the motion-set database.
type BoneNames interface {
	BoneID(name string) (int, bool)
}

// NameRule shifts the db bone id of every joint whose name contains
// Contains by Bump.
type NameRule struct {
	Contains string
	Bump     int
}

// DefaultNameRules moves end-effector markers ("e_...") to the bone that
// follows them in the motion-set database.
func DefaultNameRules() []NameRule {
	return []NameRule{{Contains: "e_", Bump: 1}}
}

// DefaultExclude protects slot 8 of the standard skeleton.
func DefaultExclude() []int {
	return []int{8}
}

// Resolution is a joint successfully mapped to a bone slot.
type Resolution struct {
	Name     string
	DBBoneID int
	Slot     int
}

// Resolver maps joint names to bone slots of one motion.
type Resolver struct {
	names   BoneNames
	bones   []uint16
	rules   []NameRule
	exclude map[int]struct{}
}

func NewResolver(names BoneNames, bones []uint16, rules []NameRule, exclude []int) *Resolver {
	r := &Resolver{
		names:   names,
		bones:   bones,
		rules:   rules,
		exclude: make(map[int]struct{}, len(exclude)),
	}
	for _, s := range exclude {
		r.exclude[s] = struct{}{}
	}
	return r
}

// Resolve looks the name up in the motion-set database, applies the first
// matching name rule, and finds the resulting id in the bone table.
func (r *Resolver) Resolve(name string) (Resolution, error) {
	id, ok := r.names.BoneID(name)
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownBone, name)
	}
	id = r.adjust(name, id)

	slot := -1
	for i, b := range r.bones {
		if int(b) == id {
			slot = i
			break
		}
	}
	if slot < 0 {
		return Resolution{}, fmt.Errorf("%w: %q (id %d)", ErrUnmappedBone, name, id)
	}

	res := Resolution{Name: name, DBBoneID: id, Slot: slot}
	if _, skip := r.exclude[slot]; skip {
		return res, fmt.Errorf("%w: %q at %d", ErrExcluded, name, slot)
	}
	return res, nil
}

func (r *Resolver) adjust(name string, id int) int {
	for _, rule := range r.rules {
		if rule.Contains != "" && strings.Contains(name, rule.Contains) {
			return id + rule.Bump
		}
	}
	return id
}
