package motion

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMotion is returned when a mot file holds no motion entry.
	ErrNoMotion = errors.New("mot: no motion in file")
	// ErrLayout is matched by every *LayoutError.
	ErrLayout = errors.New("mot: sets do not match bones")
)

// LayoutError reports a Motion whose set count is not three per bone.
type LayoutError struct {
	Sets  int
	Bones int
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("mot: %d sets for %d bones (want %d)", e.Sets, e.Bones, 3*e.Bones)
}

func (e *LayoutError) Is(target error) bool { return target == ErrLayout }
