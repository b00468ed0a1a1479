package motion

import "time"

// Phase is the lifecycle state of an animation task.
type Phase uint8

const (
	PhasePending Phase = iota
	PhaseDelaying
	PhaseRunning
	PhaseCompleted
	PhaseCancelled
)

var phaseNames = [...]string{
	PhasePending:   "pending",
	PhaseDelaying:  "delaying",
	PhaseRunning:   "running",
	PhaseCompleted: "completed",
	PhaseCancelled: "cancelled",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether p is Completed or Cancelled.
func (p Phase) Terminal() bool { return p >= PhaseCompleted }

// TaskEvent describes a task at a lifecycle transition.
type TaskEvent struct {
	TaskID    uint64
	Batch     BatchHandle
	ElementID uint64
	Element   string // element name, may be empty
	Property  string
	From      Value
	To        Value
	Phase     Phase
	Spring    bool
	Now       time.Duration
}

// TickEvent summarizes one scheduler tick.
type TickEvent struct {
	Now     time.Duration
	Active  int
	Stepped int
	Elapsed time.Duration // wall time spent in Tick
}

// Hooks observe the scheduler. Every field is optional. Hooks run
// synchronously inside Start, Stop and Tick and must not call back into the
// scheduler except to start new work.
type Hooks struct {
	OnStart    func(*TaskEvent)
	OnComplete func(*TaskEvent)
	OnCancel   func(*TaskEvent)
	OnError    func(*TaskEvent, error)
	OnTick     func(*TickEvent)
}

// Chain returns hooks that call h and then next for every event.
func (h Hooks) Chain(next Hooks) Hooks {
	return Hooks{
		OnStart:    chainTask(h.OnStart, next.OnStart),
		OnComplete: chainTask(h.OnComplete, next.OnComplete),
		OnCancel:   chainTask(h.OnCancel, next.OnCancel),
		OnError: func(ev *TaskEvent, err error) {
			if h.OnError != nil {
				h.OnError(ev, err)
			}
			if next.OnError != nil {
				next.OnError(ev, err)
			}
		},
		OnTick: func(ev *TickEvent) {
			if h.OnTick != nil {
				h.OnTick(ev)
			}
			if next.OnTick != nil {
				next.OnTick(ev)
			}
		},
	}
}

func chainTask(a, b func(*TaskEvent)) func(*TaskEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ev *TaskEvent) {
		a(ev)
		b(ev)
	}
}
