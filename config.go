package motion

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Presets holds named transitions and variants loaded from YAML.
type Presets struct {
	Transitions map[string]Transition
	Variants    Variants
}

// Transition returns the named transition.
func (p *Presets) Transition(name string) (Transition, bool) {
	tr, ok := p.Transitions[name]
	return tr, ok
}

// transitionSpec is the YAML shape of a transition.
type transitionSpec struct {
	Duration time.Duration `mapstructure:"duration"`
	Delay    time.Duration `mapstructure:"delay"`
	Easing   string        `mapstructure:"easing"`
	Repeat   string        `mapstructure:"repeat"`
	Stagger  *staggerSpec  `mapstructure:"stagger"`
	Spring   *springSpec   `mapstructure:"spring"`
}

type staggerSpec struct {
	Each  time.Duration `mapstructure:"each"`
	From  string        `mapstructure:"from"`
	Index int           `mapstructure:"index"`
}

type springSpec struct {
	Stiffness       *float64 `mapstructure:"stiffness"`
	Damping         *float64 `mapstructure:"damping"`
	Mass            *float64 `mapstructure:"mass"`
	InitialVelocity *float64 `mapstructure:"velocity"`
	RestDelta       *float64 `mapstructure:"rest_delta"`
	RestSpeed       *float64 `mapstructure:"rest_speed"`
}

type variantSpec struct {
	Target     map[string]any `mapstructure:"target"`
	Transition any            `mapstructure:"transition"`
}

type presetsDoc struct {
	Transitions map[string]map[string]any `yaml:"transitions"`
	Variants    map[string]map[string]any `yaml:"variants"`
}

// LoadPresets parses a YAML document of the form:
//
//	transitions:
//	  fade: {duration: 300ms, easing: ease-in-out}
//	  pop:  {spring: {stiffness: 300, damping: 15}}
//	variants:
//	  hidden:  {target: {opacity: 0, x: -20px}, transition: fade}
//	  visible: {target: {opacity: 1, x: 0px}, transition: {duration: 0.5}}
//
// Durations accept Go duration strings or plain seconds. A variant's
// transition is either the name of a transition or an inline block.
// Target values are parsed with ParseValue; YAML numbers become Number.
func LoadPresets(data []byte) (*Presets, error) {
	var doc presetsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	p := &Presets{
		Transitions: make(map[string]Transition, len(doc.Transitions)),
		Variants:    make(Variants, len(doc.Variants)),
	}
	for name, raw := range doc.Transitions {
		tr, err := decodeTransition(raw)
		if err != nil {
			return nil, fmt.Errorf("transition %q: %w", name, err)
		}
		p.Transitions[name] = tr
	}
	for name, raw := range doc.Variants {
		var spec variantSpec
		if err := decode(raw, &spec); err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		v := Variant{Target: make(Target, len(spec.Target))}
		for prop, rv := range spec.Target {
			val, err := decodeValue(rv)
			if err != nil {
				return nil, fmt.Errorf("variant %q: property %q: %w", name, prop, err)
			}
			v.Target[prop] = val
		}
		switch tr := spec.Transition.(type) {
		case nil:
		case string:
			named, ok := p.Transitions[tr]
			if !ok {
				return nil, fmt.Errorf("variant %q: unknown transition %q", name, tr)
			}
			v.Transition = &named
		case map[string]any:
			inline, err := decodeTransition(tr)
			if err != nil {
				return nil, fmt.Errorf("variant %q: %w", name, err)
			}
			v.Transition = &inline
		default:
			return nil, fmt.Errorf("variant %q: transition must be a name or a map, got %T", name, tr)
		}
		p.Variants[name] = v
	}
	return p, nil
}

func decode(input any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return d.Decode(input)
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook reads bare YAML numbers as seconds.
func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return Seconds(float64(v))
	case float64:
		return Seconds(v)
	}
	return data, nil
}

func decodeTransition(raw map[string]any) (Transition, error) {
	var spec transitionSpec
	if err := decode(raw, &spec); err != nil {
		return Transition{}, err
	}
	tr := Transition{Duration: spec.Duration, Delay: spec.Delay}
	if spec.Easing != "" {
		e, err := EasingByName(spec.Easing)
		if err != nil {
			return Transition{}, err
		}
		tr.Easing = e
	}
	r, err := parseRepeat(spec.Repeat)
	if err != nil {
		return Transition{}, err
	}
	tr.Repeat = r
	if spec.Stagger != nil {
		st := Stagger{Each: spec.Stagger.Each, Index: spec.Stagger.Index}
		switch strings.ToLower(spec.Stagger.From) {
		case "", "first":
			st.From = StaggerFirst
		case "last":
			st.From = StaggerLast
		case "center":
			st.From = StaggerCenter
		case "index":
			st.From = StaggerIndex
		default:
			return Transition{}, fmt.Errorf("%w: stagger origin %q", ErrInvalidValue, spec.Stagger.From)
		}
		tr.Stagger = &st
	}
	if spec.Spring != nil {
		c := DefaultSpring()
		for _, f := range []struct {
			src *float64
			dst *float64
		}{
			{spec.Spring.Stiffness, &c.Stiffness},
			{spec.Spring.Damping, &c.Damping},
			{spec.Spring.Mass, &c.Mass},
			{spec.Spring.InitialVelocity, &c.InitialVelocity},
			{spec.Spring.RestDelta, &c.RestDelta},
			{spec.Spring.RestSpeed, &c.RestSpeed},
		} {
			if f.src != nil {
				*f.dst = *f.src
			}
		}
		tr.Spring = &c
	}
	if err := tr.Validate(); err != nil {
		return Transition{}, err
	}
	return tr, nil
}

// parseRepeat accepts "", "never", "infinite", "alternate",
// "infinite-alternating" and a run count.
func parseRepeat(s string) (Repeat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "never":
		return Never, nil
	case "infinite", "loop":
		return Infinite, nil
	case "alternate", "infinite-alternating", "mirror":
		return InfiniteAlternating, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return Repeat{}, fmt.Errorf("%w: repeat %q", ErrInvalidValue, s)
	}
	return Count(n), nil
}

func decodeValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case int:
		return Number(float64(v)), nil
	case float64:
		n := Number(v)
		return n, n.Validate()
	case string:
		return ParseValue(v), nil
	}
	return Value{}, fmt.Errorf("%w: unsupported value %v (%T)", ErrInvalidValue, raw, raw)
}
