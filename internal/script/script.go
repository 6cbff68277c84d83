// Package script replays recorded input events against a viewer.State.
//
// A script is a YAML document:
//
//	viewport: {width: 800, height: 600}
//	events:
//	  - {type: down, x: 100, y: 100}
//	  - {type: move, x: 140, y: 90}
//	  - {type: up}
//	  - {type: wheel, x: 400, y: 300, delta: -120}
//	  - {type: key, code: ArrowLeft}
//	  - {type: preset, preset: x+}
//	  - {type: step, count: 61}
//	  - {type: resize, width: 1024, height: 768}
package script

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitcube/internal/viewer"
)

// EventType identifies an input event.
type EventType string

const (
	EventDown   EventType = "down"
	EventMove   EventType = "move"
	EventUp     EventType = "up"
	EventKey    EventType = "key"
	EventWheel  EventType = "wheel"
	EventPreset EventType = "preset"
	EventStep   EventType = "step"
	EventResize EventType = "resize"
)

// Event is one recorded input. Only the fields of its Type are used.
type Event struct {
	Type   EventType     `yaml:"type"`
	X      float64       `yaml:"x,omitempty"`
	Y      float64       `yaml:"y,omitempty"`
	Delta  float64       `yaml:"delta,omitempty"`
	Code   string        `yaml:"code,omitempty"`
	Preset viewer.Preset `yaml:"preset,omitempty"`
	Count  int           `yaml:"count,omitempty"`
	Width  float64       `yaml:"width,omitempty"`
	Height float64       `yaml:"height,omitempty"`
}

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Script is a viewport plus an ordered event list.
type Script struct {
	Viewport Viewport `yaml:"viewport"`
	Events   []Event  `yaml:"events"`
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script %s", path)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "script %s", path)
	}
	return sc, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the viewport and every event.
func (sc *Script) Validate() error {
	if sc.Viewport.Width <= 0 || sc.Viewport.Height <= 0 {
		return errors.Errorf("viewport must be positive, got %vx%v", sc.Viewport.Width, sc.Viewport.Height)
	}
	for i, ev := range sc.Events {
		if err := ev.validate(); err != nil {
			return errors.Wrapf(err, "event %d", i)
		}
	}
	return nil
}

func (ev Event) validate() error {
	switch ev.Type {
	case EventDown, EventMove, EventUp, EventWheel:
		return nil
	case EventKey:
		if ev.Code == "" {
			return errors.New("key event without code")
		}
	case EventPreset:
		if _, ok := viewer.PresetAngles(ev.Preset); !ok {
			return errors.Errorf("unknown preset %q", ev.Preset)
		}
	case EventStep:
		if ev.Count < 0 {
			return errors.Errorf("negative step count %d", ev.Count)
		}
	case EventResize:
		if ev.Width <= 0 || ev.Height <= 0 {
			return errors.Errorf("resize must be positive, got %vx%v", ev.Width, ev.Height)
		}
	case "":
		return errors.New("missing event type")
	default:
		return errors.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
