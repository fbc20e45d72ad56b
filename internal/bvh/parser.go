package bvh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("bvh: syntax error")

// Options controls parsing.
type Options struct {
	// NameEncoding is the encoding of joint names: "" or "utf-8", or
	// "shift_jis" for files exported by Japanese tools.
	NameEncoding string
}

func (o Options) decoder() (*encoding.Decoder, error) {
	switch strings.ToLower(o.NameEncoding) {
	case "", "utf-8", "utf8":
		return unicode.UTF8.NewDecoder(), nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS.NewDecoder(), nil
	}
	return nil, fmt.Errorf("bvh: unknown name encoding %q", o.NameEncoding)
}

// ParseFile reads and parses a BVH file.
func ParseFile(path string, opts Options) (*Bvh, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bvh: read %s: %w", path, err)
	}
	b, err := ParseBytes(raw, opts)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return b, nil
}

// Parse reads a whole BVH document from r.
func Parse(r io.Reader, opts Options) (*Bvh, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bvh: read: %w", err)
	}
	return ParseBytes(raw, opts)
}

func ParseBytes(raw []byte, opts Options) (*Bvh, error) {
	dec, err := opts.decoder()
	if err != nil {
		return nil, err
	}
	p := &parser{dec: dec, b: &Bvh{}}
	for _, line := range bytes.Split(raw, []byte("\n")) {
		p.lines = append(p.lines, strings.Fields(string(line)))
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.b, nil
}

type parser struct {
	lines [][]string
	line  int // current line index
	field int // next field within the line
	dec   *encoding.Decoder

	b        *Bvh
	channels int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line+1, fmt.Sprintf(format, args...))
}

// next returns the next whitespace-separated token, crossing lines.
func (p *parser) next() (string, error) {
	for p.line < len(p.lines) {
		if p.field < len(p.lines[p.line]) {
			tok := p.lines[p.line][p.field]
			p.field++
			return tok, nil
		}
		p.line++
		p.field = 0
	}
	return "", fmt.Errorf("%w: unexpected end of file", ErrSyntax)
}

func (p *parser) expect(want string) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok != want {
		return p.errorf("expected %q, got %q", want, tok)
	}
	return nil
}

func (p *parser) float() (float32, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, p.errorf("bad number %q", tok)
	}
	return float32(v), nil
}

func (p *parser) vec3() ([3]float32, error) {
	var v [3]float32
	for i := range v {
		f, err := p.float()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (p *parser) parse() error {
	if err := p.expect("HIERARCHY"); err != nil {
		return err
	}
	tok, err := p.next()
	if err != nil {
		return err
	}
	for tok == "ROOT" {
		if err := p.joint(-1, 0); err != nil {
			return err
		}
		if tok, err = p.next(); err != nil {
			return err
		}
	}
	if len(p.b.Joints) == 0 {
		return p.errorf("expected ROOT, got %q", tok)
	}
	if tok != "MOTION" {
		return p.errorf("expected MOTION, got %q", tok)
	}
	return p.motion()
}

// joint parses "<name> { OFFSET .. CHANNELS .. children }" after ROOT/JOINT.
func (p *parser) joint(parent, depth int) error {
	name, err := p.next()
	if err != nil {
		return err
	}
	if name, err = p.dec.String(name); err != nil {
		return p.errorf("joint name: %v", err)
	}
	if err := p.expect("{"); err != nil {
		return err
	}

	idx := len(p.b.Joints)
	p.b.Joints = append(p.b.Joints, Joint{Name: name, Parent: parent, Depth: depth})

	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		switch tok {
		case "OFFSET":
			v, err := p.vec3()
			if err != nil {
				return err
			}
			p.b.Joints[idx].Offset = v
		case "CHANNELS":
			if err := p.channelList(idx); err != nil {
				return err
			}
		case "JOINT":
			if err := p.joint(idx, depth+1); err != nil {
				return err
			}
		case "End":
			if err := p.endSite(idx); err != nil {
				return err
			}
		case "}":
			return nil
		default:
			return p.errorf("unexpected %q in joint %q", tok, name)
		}
	}
}

func (p *parser) channelList(idx int) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return p.errorf("bad channel count %q", tok)
	}
	chans := make([]Channel, n)
	for i := range chans {
		tok, err := p.next()
		if err != nil {
			return err
		}
		ct, ok := parseChannelType(tok)
		if !ok {
			return p.errorf("unknown channel %q", tok)
		}
		chans[i] = Channel{Type: ct, Index: p.channels}
		p.channels++
	}
	p.b.Joints[idx].Channels = chans
	return nil
}

func (p *parser) endSite(idx int) error {
	if err := p.expect("Site"); err != nil {
		return err
	}
	if err := p.expect("{"); err != nil {
		return err
	}
	if err := p.expect("OFFSET"); err != nil {
		return err
	}
	v, err := p.vec3()
	if err != nil {
		return err
	}
	p.b.Joints[idx].HasEndSite = true
	p.b.Joints[idx].EndSite = v
	return p.expect("}")
}

func (p *parser) motion() error {
	if err := p.expect("Frames:"); err != nil {
		return err
	}
	tok, err := p.next()
	if err != nil {
		return err
	}
	frames, err := strconv.Atoi(tok)
	if err != nil || frames < 0 {
		return p.errorf("bad frame count %q", tok)
	}
	if err := p.expect("Frame"); err != nil {
		return err
	}
	if err := p.expect("Time:"); err != nil {
		return err
	}
	if tok, err = p.next(); err != nil {
		return err
	}
	if p.b.FrameTime, err = strconv.ParseFloat(tok, 64); err != nil {
		return p.errorf("bad frame time %q", tok)
	}

	// frame rows are line based
	p.line++
	p.field = 0
	// capacity bounded by the rows present, not the declared count
	p.b.Frames = make([][]float32, 0, min(frames, max(len(p.lines)-p.line, 0)))
	for ; p.line < len(p.lines) && len(p.b.Frames) < frames; p.line++ {
		fields := p.lines[p.line]
		if len(fields) == 0 {
			continue
		}
		if len(fields) != p.channels {
			return p.errorf("frame %d has %d values, want %d", len(p.b.Frames), len(fields), p.channels)
		}
		row := make([]float32, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return p.errorf("bad number %q", f)
			}
			row[i] = float32(v)
		}
		p.b.Frames = append(p.b.Frames, row)
	}
	if len(p.b.Frames) != frames {
		return fmt.Errorf("%w: %d frames declared, %d found", ErrSyntax, frames, len(p.b.Frames))
	}
	return nil
}
