package rowan

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Target string  `json:"target,omitempty"`
	On     bool    `json:"on,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a scripted interaction through the viewer's injection
// queue, one action at a time, waiting for each gesture to drain before the
// next. Attach to a Viewer via SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script. Every step is validated up front so
// a typo fails at load time, not halfway through a session.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("rowan: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("rowan: parse script: no steps")
	}
	for i, st := range sc.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("rowan: parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func validateStep(st scriptStep) error {
	switch st.Action {
	case "press", "move", "release", "click", "drag", "wheel", "wait", "screenshot":
		return nil
	case "toggle":
		switch st.Target {
		case "sleeping", "collisions", "joints", "sensors", "aabbs", "positions", "status", "broadphase":
			return nil
		}
		return fmt.Errorf("unknown toggle target %q", st.Target)
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// SetScript attaches a script runner. The runner advances once per Update,
// before input polling. A nil runner detaches.
func (v *Viewer) SetScript(runner *ScriptRunner) {
	v.script = runner
}

// Done reports whether all steps of the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Viewer.Update.
func (r *ScriptRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if v.ptr.InjectedPending() > 0 {
		return
	}
	// Count down wait ticks.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "press":
		v.ptr.InjectPress(st.X, st.Y)
	case "move":
		v.ptr.InjectMove(st.X, st.Y)
	case "release":
		v.ptr.InjectRelease(st.X, st.Y)
	case "click":
		v.ptr.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		v.ptr.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		v.ptr.InjectWheel(st.X, st.Y)
	case "toggle":
		applyToggle(v, st.Target, st.On)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	// The script finishes only once its last gesture has fully drained.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && v.ptr.InjectedPending() == 0 {
		r.done = true
	}
}

func applyToggle(v *Viewer, target string, on bool) {
	switch target {
	case "sleeping":
		v.SetDrawSleeping(on)
	case "collisions":
		v.SetDrawCollisions(on)
	case "joints":
		v.SetDrawJoints(on)
	case "sensors":
		v.SetDrawSensors(on)
	case "aabbs":
		v.SetDrawAABBs(on)
	case "positions":
		v.SetDrawPositions(on)
	case "status":
		v.SetShowStatus(on)
	case "broadphase":
		v.SetDrawBroadphase(on)
	}
}
