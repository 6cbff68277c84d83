package script

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitcube/internal/logger"
	"github.com/Faultbox/orbitcube/internal/viewer"
	"github.com/Faultbox/orbitcube/pkg/math"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
}

// Frame is the view after one event has been applied.
type Frame struct {
	Index      int            `json:"index" yaml:"index"`
	Event      Event          `json:"event" yaml:"event"`
	Changed    bool           `json:"changed" yaml:"changed"`
	Readout    viewer.Readout `json:"readout" yaml:"readout"`
	Projection math.Mat4      `json:"projection" yaml:"projection"`
}

// Replay applies the events of sc to st in order and calls fn with the
// resulting frame after each one. A non-nil error from fn stops the
// replay and is returned.
func Replay(st *viewer.State, sc *Script, fn func(Frame) error) error {
	log := logger.Named("script")
	vp := sc.Viewport

	for i, ev := range sc.Events {
		changed, err := apply(st, &vp, ev)
		if err != nil {
			return errors.Wrapf(err, "event %d", i)
		}

		frame := Frame{
			Index:      i,
			Event:      ev,
			Changed:    changed,
			Readout:    st.Readout(),
			Projection: st.Projection(vp.Width, vp.Height),
		}
		if fn != nil {
			if err := fn(frame); err != nil {
				return err
			}
		}
	}

	log.Debug("replay finished",
		zap.Int("events", len(sc.Events)),
		zap.String("state", dumper.Sdump(st.Readout())))
	return nil
}

func apply(st *viewer.State, vp *Viewport, ev Event) (bool, error) {
	switch ev.Type {
	case EventDown:
		st.BeginDrag(ev.X, ev.Y)
		return false, nil
	case EventMove:
		return st.DragTo(ev.X, ev.Y), nil
	case EventUp:
		st.EndDrag()
		return false, nil
	case EventKey:
		return st.Key(ev.Code), nil
	case EventWheel:
		return st.Zoom(ev.X, ev.Y, ev.Delta, vp.Width, vp.Height), nil
	case EventPreset:
		if err := st.StartAutoRotation(ev.Preset); err != nil {
			return false, err
		}
		return false, nil
	case EventStep:
		changed := false
		for n := 0; n < ev.Count; n++ {
			if st.Step() {
				changed = true
			}
		}
		return changed, nil
	case EventResize:
		vp.Width, vp.Height = ev.Width, ev.Height
		return true, nil
	default:
		return false, errors.Errorf("unknown event type %q", ev.Type)
	}
}
