// Package profile describes a surface layout in YAML: the selection groups,
// flags and mode the controls share, and one entry per physical control.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/PixPMusic/gopher-surface/internal/midi"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultProfile []byte

var (
	ErrUnknownKind      = errors.New("unknown control kind")
	ErrMissingField     = errors.New("missing field")
	ErrUnknownReference = errors.New("unknown reference")
	ErrInvalidAccel     = errors.New("acceleration must be a finite number of at least 1")
	ErrDuplicateID      = errors.New("duplicate control id")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidInput     = errors.New("invalid input")
)

// Kind names a control type in a profile
type Kind string

const (
	KindToggle      Kind = "toggle"
	KindToggleDial  Kind = "toggle_dial"
	KindTickDial    Kind = "tick_dial"
	KindGroupSelect Kind = "group_select"
	KindGroupDial   Kind = "group_dial"
	KindModeToggle  Kind = "mode_toggle"
	KindModePress   Kind = "mode_press"
)

// Profile is a complete surface layout
type Profile struct {
	Mode     *ModeSpec     `yaml:"mode,omitempty"`
	Groups   []GroupSpec   `yaml:"groups"`
	Flags    []FlagSpec    `yaml:"flags"`
	Controls []ControlSpec `yaml:"controls"`
}

// ModeSpec declares the global two-valued mode
type ModeSpec struct {
	Name    string   `yaml:"name"`
	Values  []string `yaml:"values"`
	Initial string   `yaml:"initial,omitempty"`
}

// GroupSpec declares a selection group
type GroupSpec struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
	Default string   `yaml:"default"`
}

// FlagSpec declares an independent flag
type FlagSpec struct {
	Name    string `yaml:"name"`
	Initial bool   `yaml:"initial"`
}

// ControlSpec declares one control. Which fields matter depends on Kind.
type ControlSpec struct {
	ID            string     `yaml:"id,omitempty"`
	Kind          Kind       `yaml:"kind"`
	Group         string     `yaml:"group,omitempty"`
	Name          string     `yaml:"name,omitempty"`
	Label         string     `yaml:"label,omitempty"`
	Member        string     `yaml:"member,omitempty"`
	Param         string     `yaml:"param,omitempty"`
	Flag          string     `yaml:"flag,omitempty"`
	Accel         float64    `yaml:"accel,omitempty"`
	Reset         bool       `yaml:"reset,omitempty"`
	ModeQualified bool       `yaml:"mode_qualified,omitempty"`
	Color         string     `yaml:"color,omitempty"`
	Foreground    string     `yaml:"foreground,omitempty"`
	Input         *InputSpec `yaml:"input,omitempty"`
}

// InputSpec ties a control to a physical input on a configured device.
// Exactly one of row/col, note or cc is set.
type InputSpec struct {
	Device string `yaml:"device"`
	Row    *int   `yaml:"row,omitempty"`
	Col    *int   `yaml:"col,omitempty"`
	Note   *int   `yaml:"note,omitempty"`
	CC     *int   `yaml:"cc,omitempty"`
}

// MIDI converts the spec to a device input
func (s InputSpec) MIDI() (midi.Input, error) {
	set := 0
	var in midi.Input
	if s.Row != nil || s.Col != nil {
		if s.Row == nil || s.Col == nil {
			return midi.Input{}, fmt.Errorf("%w: pad needs both row and col", ErrInvalidInput)
		}
		set++
		in = midi.PadInput(*s.Row, *s.Col)
	}
	if s.Note != nil {
		set++
		n, err := midiNumber(*s.Note)
		if err != nil {
			return midi.Input{}, err
		}
		in = midi.NoteInput(n)
	}
	if s.CC != nil {
		set++
		n, err := midiNumber(*s.CC)
		if err != nil {
			return midi.Input{}, err
		}
		in = midi.CCInput(n)
	}
	if set != 1 {
		return midi.Input{}, fmt.Errorf("%w: set exactly one of row/col, note or cc", ErrInvalidInput)
	}
	if s.Device == "" {
		return midi.Input{}, fmt.Errorf("%w: device", ErrMissingField)
	}
	return in, nil
}

func midiNumber(n int) (uint8, error) {
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: %d out of range 0-127", ErrInvalidInput, n)
	}
	return uint8(n), nil
}

// Parse decodes a YAML profile
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// Load reads and parses the profile at path
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Default returns the built-in profile
func Default() *Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks the profile for configuration errors. All problems are
// reported together.
func (p *Profile) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	groups := make(map[string]GroupSpec, len(p.Groups))
	for _, g := range p.Groups {
		if g.Name == "" {
			fail("group: %w: name", ErrMissingField)
			continue
		}
		groups[g.Name] = g
	}
	flags := make(map[string]bool, len(p.Flags))
	for _, f := range p.Flags {
		if f.Name == "" {
			fail("flag: %w: name", ErrMissingField)
			continue
		}
		flags[f.Name] = true
	}
	if p.Mode != nil {
		if p.Mode.Name == "" {
			fail("mode: %w: name", ErrMissingField)
		}
		if len(p.Mode.Values) != 2 {
			fail("mode %q: %w: exactly two values", p.Mode.Name, ErrMissingField)
		}
	}

	ids := make(map[string]bool, len(p.Controls))
	for i, c := range p.Controls {
		where := fmt.Sprintf("control %d", i)
		if c.ID != "" {
			where = fmt.Sprintf("control %q", c.ID)
			if ids[c.ID] {
				fail("%s: %w", where, ErrDuplicateID)
			}
			ids[c.ID] = true
		}

		req, ok := requirements[c.Kind]
		if !ok {
			fail("%s: %w %q", where, ErrUnknownKind, c.Kind)
			continue
		}
		for _, field := range req.fields {
			if field.get(c) == "" {
				fail("%s: %w: %s", where, ErrMissingField, field.name)
			}
		}
		if (req.mode || c.ModeQualified) && p.Mode == nil {
			fail("%s: %w: mode", where, ErrUnknownReference)
		}
		if req.group {
			g, ok := groups[c.Group]
			if !ok && c.Group != "" {
				fail("%s: %w: group %q", where, ErrUnknownReference, c.Group)
			}
			if ok && c.Member != "" && !slices.Contains(g.Members, c.Member) {
				fail("%s: %w: member %q of group %q", where, ErrUnknownReference, c.Member, c.Group)
			}
		}
		if c.Flag != "" && !flags[c.Flag] {
			fail("%s: %w: flag %q", where, ErrUnknownReference, c.Flag)
		}
		if c.Accel != 0 && (c.Accel < 1 || math.IsInf(c.Accel, 0) || math.IsNaN(c.Accel)) {
			fail("%s: %w (got %v)", where, ErrInvalidAccel, c.Accel)
		}
		for _, hex := range []string{c.Color, c.Foreground} {
			if hex == "" {
				continue
			}
			if _, err := ParseColor(hex); err != nil {
				fail("%s: %w", where, err)
			}
		}
		if c.Input != nil {
			if _, err := c.Input.MIDI(); err != nil {
				fail("%s: %w", where, err)
			}
		}
	}

	return errors.Join(errs...)
}

type field struct {
	name string
	get  func(ControlSpec) string
}

var (
	fieldGroup  = field{"group", func(c ControlSpec) string { return c.Group }}
	fieldName   = field{"name", func(c ControlSpec) string { return c.Name }}
	fieldMember = field{"member", func(c ControlSpec) string { return c.Member }}
	fieldParam  = field{"param", func(c ControlSpec) string { return c.Param }}
)

// requirement lists what each kind needs from its spec
type requirement struct {
	fields []field
	group  bool // group must be declared in groups
	mode   bool // needs the profile mode
}

var requirements = map[Kind]requirement{
	KindToggle:      {fields: []field{fieldGroup, fieldName}},
	KindToggleDial:  {fields: []field{fieldGroup, fieldName}},
	KindTickDial:    {fields: []field{fieldGroup, fieldName}},
	KindGroupSelect: {fields: []field{fieldGroup, fieldMember}, group: true},
	KindGroupDial:   {fields: []field{fieldGroup}, group: true},
	KindModeToggle:  {mode: true},
	KindModePress:   {fields: []field{fieldGroup, fieldParam}, mode: true},
}

// ParseColor parses #rrggbb into an opaque color
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
