package motion

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Node   string  `json:"node,omitempty"`
	Style  string  `json:"style,omitempty"`
	Value  string  `json:"value,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var testActions = map[string]bool{
	"click": true, "press": true, "release": true, "hover": true,
	"drag": true, "wait": true, "screenshot": true, "focus-next": true, "expect": true,
}

// TestRunner sequences injected input and style expectations across frames
// for scripted interaction tests. Attach to a Stage via SetTestRunner.
//
// A script looks like:
//
//	{"steps": [
//	  {"action": "hover", "x": 50, "y": 50},
//	  {"action": "wait", "frames": 30},
//	  {"action": "expect", "node": "button", "style": "opacity", "value": "1"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "expect" && (st.Node == "" || st.Style == "") {
			return nil, fmt.Errorf("parse test script: step %d: expect needs node and style", i)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. The runner's step method
// is called from Stage.Update before input processing each frame.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages of expectations that did not hold.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the test runner by one frame. Called from Stage.Update.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
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
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "focus-next":
		s.FocusNext()
	case "expect":
		r.expect(s, st)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) expect(s *Stage, st testStep) {
	n := s.FindNode(st.Node)
	if n == nil {
		r.failures = append(r.failures, fmt.Sprintf("step %d: no node %q", r.cursor-1, st.Node))
		return
	}
	got, ok := n.ComputedStyle(st.Style)
	if !ok {
		r.failures = append(r.failures, fmt.Sprintf("step %d: %s has no style %q", r.cursor-1, st.Node, st.Style))
		return
	}
	want := ParseValue(st.Value)
	if !ParseValue(got).Equal(want) && got != st.Value {
		r.failures = append(r.failures,
			fmt.Sprintf("step %d: %s %s = %q, want %q", r.cursor-1, st.Node, st.Style, got, st.Value))
	}
}

// FindNode returns the first node named name in tree order, or nil.
func (s *Stage) FindNode(name string) *Node {
	var find func(n *Node) *Node
	find = func(n *Node) *Node {
		if n.Name == name {
			return n
		}
		for _, c := range n.children {
			if f := find(c); f != nil {
				return f
			}
		}
		return nil
	}
	return find(s.root)
}
