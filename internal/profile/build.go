package profile

import (
	"fmt"

	"github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/surface"
	"github.com/google/uuid"
)

// Deps are the collaborators every built control talks to
type Deps struct {
	Gateway  surface.Gateway
	Redrawer surface.Redrawer
}

// InputBinding ties a control to a physical input
type InputBinding struct {
	ControlID string
	Device    string
	Input     midi.Input
}

// Surface is a built profile: live coordinators and the controls sharing them
type Surface struct {
	Coordinator *surface.Coordinator
	Mode        *surface.Mode // nil if the profile declares no mode
	Controls    []*surface.Control
	Inputs      []InputBinding
}

// Control returns the control with the given ID, or nil
func (s *Surface) Control(id string) *surface.Control {
	for _, c := range s.Controls {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Close drops every control's subscriptions
func (s *Surface) Close() {
	for _, c := range s.Controls {
		c.Close()
	}
}

// builder creates the binding for one kind of control
type builder func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding

var builders = map[Kind]builder{
	KindToggle: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		return surface.NewToggle(spec.address(), s.boolState(spec), gw)
	},
	KindToggleDial: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		return surface.NewToggleDial(spec.address(), s.boolState(spec), gw, spec.Reset)
	},
	KindTickDial: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		var addr surface.DialAddress = spec.address()
		if spec.ModeQualified {
			addr = surface.ModeAddress{Group: spec.Group, Name: spec.Name, Mode: s.Mode}
		}
		accel := spec.Accel
		if accel == 0 {
			accel = 1
		}
		return surface.NewTickDial(addr, accel, gw, spec.Reset)
	},
	KindGroupSelect: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		return surface.NewGroupSelect(s.Coordinator, spec.Group, spec.Member, gw)
	},
	KindGroupDial: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		return surface.NewGroupDial(s.Coordinator, spec.Group, gw)
	},
	KindModeToggle: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		return surface.NewModeToggle(s.Mode)
	},
	KindModePress: func(s *Surface, spec ControlSpec, gw surface.Gateway) surface.Binding {
		return surface.NewModePress(spec.Group, spec.Param, s.Mode, gw)
	},
}

func (c ControlSpec) address() surface.Address {
	return surface.Address{Group: c.Group, Name: c.Name}
}

func (c ControlSpec) label() string {
	for _, l := range []string{c.Label, c.Name, c.Member, c.Param, c.Group} {
		if l != "" {
			return l
		}
	}
	return string(c.Kind)
}

func (c ControlSpec) visual() surface.Visual {
	var v surface.Visual
	// Already validated
	if c.Color != "" {
		v.ActiveColor, _ = ParseColor(c.Color)
	}
	if c.Foreground != "" {
		v.Foreground, _ = ParseColor(c.Foreground)
	}
	return v
}

func (s *Surface) boolState(spec ControlSpec) surface.BoolState {
	if spec.Flag != "" {
		return surface.NewFlagBool(s.Coordinator, spec.Flag)
	}
	return surface.NewLocalBool(false)
}

// Build validates the profile and creates its coordinators and controls
func (p *Profile) Build(deps Deps) (*Surface, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Surface{Coordinator: surface.NewCoordinator()}
	for _, g := range p.Groups {
		if err := s.Coordinator.DefineGroup(g.Name, g.Members, g.Default); err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	for _, f := range p.Flags {
		if err := s.Coordinator.DefineFlag(f.Name, f.Initial); err != nil {
			return nil, fmt.Errorf("flag %q: %w", f.Name, err)
		}
	}
	if p.Mode != nil {
		m, err := surface.NewMode(p.Mode.Name, p.Mode.Values[0], p.Mode.Values[1])
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", p.Mode.Name, err)
		}
		if p.Mode.Initial != "" {
			if err := m.Set(p.Mode.Initial); err != nil {
				return nil, fmt.Errorf("mode %q: %w", p.Mode.Name, err)
			}
		}
		s.Mode = m
	}

	for _, spec := range p.Controls {
		id := spec.ID
		if id == "" {
			id = uuid.New().String()
		}
		binding := builders[spec.Kind](s, spec, deps.Gateway)
		s.Controls = append(s.Controls, surface.NewControl(id, spec.label(), binding, spec.visual(), deps.Redrawer))

		if spec.Input != nil {
			in, _ := spec.Input.MIDI()
			s.Inputs = append(s.Inputs, InputBinding{ControlID: id, Device: spec.Input.Device, Input: in})
		}
	}

	return s, nil
}
