package retarget

import (
	"errors"
	"fmt"
)

// State is the phase of a retarget run.
type State int

const (
	StateCollapsing State = iota
	StateRetargeting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCollapsing:
		return "collapsing"
	case StateRetargeting:
		return "retargeting"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Stage names the resolution step a joint failed at.
type Stage string

const (
	StageMotionSet Stage = "mot_db"
	StageBones     Stage = "bones"
)

type Applied struct {
	Joint    string `json:"joint"`
	Slot     int    `json:"slot"`
	DBBoneID int    `json:"db_bone_id"`
	Rotation bool   `json:"rotation"`
}

type Skipped struct {
	Joint  string `json:"joint"`
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

// Report records what a run did with every joint.
type Report struct {
	State    State     `json:"-"`
	Frames   int       `json:"frames"`
	Applied  []Applied `json:"applied"`
	Skipped  []Skipped `json:"skipped"`
	Excluded []string  `json:"excluded"`
}

func (r *Report) skip(joint string, err error) {
	stage := StageMotionSet
	if errors.Is(err, ErrUnmappedBone) {
		stage = StageBones
	}
	r.Skipped = append(r.Skipped, Skipped{Joint: joint, Stage: stage, Reason: err.Error()})
}

// SkippedNames returns the joints that failed resolution, in traversal order.
func (r *Report) SkippedNames() []string {
	names := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		names[i] = s.Joint
	}
	return names
}

// Summary is a one-line count of the outcome.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d applied, %d skipped, %d excluded, %d frames",
		len(r.Applied), len(r.Skipped), len(r.Excluded), r.Frames)
}
