// Package retarget maps the joints of a hierarchical motion onto the bone
// slots of a mot animation: it resolves each joint name to a slot,
// decides whether the bone is driven by rotation or position, remaps the
// joint's channels and overwrites the slot's three curves.
package retarget

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"mot-retarget/internal/axis"
	"mot-retarget/internal/bvh"
	"mot-retarget/internal/logging"
	"mot-retarget/internal/motion"
)

// ErrSlotRange is returned when a resolved slot has no sets to write.
var ErrSlotRange = errors.New("retarget: slot out of range")

// Source is the hierarchical motion being retargeted.
type Source interface {
	Hierarchy() []bvh.Joint
	FrameCount() int
	Samples(ch bvh.Channel) []float32
}

// Classifier tells rotation-driven bones from position-driven ones.
type Classifier interface {
	IsRotation(name string) bool
}

// Options configures a Retargeter. Start from DefaultOptions.
type Options struct {
	Directive  axis.Directive
	Conversion axis.Conversion
	Rules      []NameRule
	Exclude    []int
	// Workers > 1 computes joint curves concurrently; writes still land
	// in traversal order.
	Workers int
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Directive:  axis.MustParse(axis.Default),
		Conversion: axis.DefaultConversion(),
		Rules:      DefaultNameRules(),
		Exclude:    DefaultExclude(),
		Workers:    1,
	}
}

// Retargeter holds the read-only lookup tables of a run and can be reused
// across motions.
type Retargeter struct {
	names    BoneNames
	classify Classifier
	opts     Options
	log      *slog.Logger
}

func New(names BoneNames, classify Classifier, opts Options) *Retargeter {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Retargeter{names: names, classify: classify, opts: opts, log: log}
}

type job struct {
	joint    bvh.Joint
	res      Resolution
	rotation bool
}

// Run collapses every set of m to a static pose, then overwrites the sets
// of every resolvable joint of src with remapped Linear curves. Joints
// that fail resolution are reported and skipped; any other error aborts
// the run.
func (rt *Retargeter) Run(src Source, m *motion.Motion) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("retarget: %w", err)
	}

	rep := &Report{State: StateCollapsing, Frames: src.FrameCount()}
	m.CollapseAll()

	rep.State = StateRetargeting
	resolver := NewResolver(rt.names, m.Bones, rt.opts.Rules, rt.opts.Exclude)

	var jobs []job
	for _, j := range src.Hierarchy() {
		res, err := resolver.Resolve(j.Name)
		switch {
		case err == nil:
		case errors.Is(err, ErrExcluded):
			rep.Excluded = append(rep.Excluded, j.Name)
			continue
		default:
			rt.log.Warn("skipping joint", "joint", j.Name, "err", err)
			rep.skip(j.Name, err)
			continue
		}
		rt.log.Debug("resolved joint", "joint", j.Name, "db_bone_id", res.DBBoneID, "slot", res.Slot)
		jobs = append(jobs, job{joint: j, res: res, rotation: rt.classify.IsRotation(j.Name)})
	}

	curves, err := rt.compute(src, jobs)
	if err != nil {
		return rep, err
	}

	for i, jb := range jobs {
		slot := jb.res.Slot
		if slot < 0 || 3*slot+2 >= len(m.Sets) {
			return rep, fmt.Errorf("%w: %q resolved to %d of %d", ErrSlotRange, jb.joint.Name, slot, len(m.Bones))
		}
		rt.log.Info("adding joint", "joint", jb.joint.Name, "slot", slot, "rotation", jb.rotation)
		copy(m.Sets[3*slot:3*slot+3], curves[i][:])
		rep.Applied = append(rep.Applied, Applied{
			Joint:    jb.joint.Name,
			Slot:     slot,
			DBBoneID: jb.res.DBBoneID,
			Rotation: jb.rotation,
		})
	}

	if len(rep.Applied) > 0 {
		frames := min(src.FrameCount(), math.MaxUint16)
		m.FrameCount = max(m.FrameCount, uint16(frames))
	}

	rep.State = StateDone
	return rep, nil
}

func (rt *Retargeter) compute(src Source, jobs []job) ([][3]motion.FrameData, error) {
	curves := make([][3]motion.FrameData, len(jobs))
	if rt.opts.Workers == 1 {
		for i, jb := range jobs {
			c, err := rt.curves(src, jb)
			if err != nil {
				return nil, err
			}
			curves[i] = c
		}
		return curves, nil
	}

	var g errgroup.Group
	g.SetLimit(rt.opts.Workers)
	for i, jb := range jobs {
		g.Go(func() error {
			c, err := rt.curves(src, jb)
			if err != nil {
				return err
			}
			curves[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curves, nil
}

func (rt *Retargeter) curves(src Source, jb job) ([3]motion.FrameData, error) {
	chans, err := SelectChannels(jb.joint.Channels, jb.rotation)
	if err != nil {
		return [3]motion.FrameData{}, fmt.Errorf("joint %q: %w", jb.joint.Name, err)
	}
	samples := [3][]float32{src.Samples(chans[0]), src.Samples(chans[1]), src.Samples(chans[2])}
	out, err := rt.opts.Directive.Apply(samples, rt.opts.Conversion, jb.rotation)
	if err != nil {
		return out, fmt.Errorf("joint %q: %w", jb.joint.Name, err)
	}
	return out, nil
}
