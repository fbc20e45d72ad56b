// Package axis implements the axis-remap grammar: a six character
// directive such as "+x+z+y" naming, for each output axis in order, a sign
// and the source channel that feeds it.
package axis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDirective is returned by Parse for any string outside the grammar.
var ErrMalformedDirective = errors.New("axis: malformed directive")

// Default is the directive used when none is configured.
const Default = "+x+z+y"

type Sign int8

const (
	Plus Sign = iota
	Minus
	Zero
)

// Factor returns the multiplier of the sign.
func (s Sign) Factor() float32 {
	switch s {
	case Minus:
		return -1
	case Zero:
		return 0
	}
	return 1
}

func (s Sign) String() string {
	switch s {
	case Minus:
		return "-"
	case Zero:
		return "0"
	}
	return "+"
}

// Axis selects one of the three extracted source channels by position.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	return string("xyz"[a])
}

// Component drives one output axis.
type Component struct {
	Sign Sign
	Axis Axis
}

// Directive is a parsed remap directive: one component per output axis
// (x, y, z in order).
type Directive [3]Component

// Identity maps every output axis to the same source axis unchanged.
var Identity = Directive{{Plus, X}, {Plus, Y}, {Plus, Z}}

// Parse validates and parses a directive of the form
// [sign][axis][sign][axis][sign][axis] with sign in "+-0" and axis in "xyz".
func Parse(s string) (Directive, error) {
	var d Directive
	if len(s) != 6 {
		return d, fmt.Errorf("%w %q: want 6 characters, got %d", ErrMalformedDirective, s, len(s))
	}
	for i := range d {
		sc, ac := s[2*i], s[2*i+1]
		switch sc {
		case '+':
			d[i].Sign = Plus
		case '-':
			d[i].Sign = Minus
		case '0':
			d[i].Sign = Zero
		default:
			return d, fmt.Errorf("%w %q: unexpected sign %q at %d", ErrMalformedDirective, s, sc, 2*i)
		}
		idx := strings.IndexByte("xyz", ac)
		if idx < 0 {
			return d, fmt.Errorf("%w %q: unexpected axis %q at %d", ErrMalformedDirective, s, ac, 2*i+1)
		}
		d[i].Axis = Axis(idx)
	}
	return d, nil
}

// MustParse is Parse for directives known at compile time.
func MustParse(s string) Directive {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Directive) String() string {
	var sb strings.Builder
	for _, c := range d {
		sb.WriteString(c.Sign.String())
		sb.WriteString(c.Axis.String())
	}
	return sb.String()
}
