package motion

// Step is one stage of a Sequence.
type Step struct {
	Element    *Element
	Target     Target
	Transition Transition
}

// Sequence plays steps one after another: each step starts when the
// previous step's batch is done.
type Sequence struct {
	sched     *Scheduler
	steps     []Step
	next      int
	current   BatchHandle
	done      bool
	cancelled bool
	err       error
	onDone    []func()
}

// Play validates every step and starts the first one.
func (s *Scheduler) Play(steps ...Step) (*Sequence, error) {
	for _, st := range steps {
		if st.Element == nil {
			return nil, &PropertyError{Property: "sequence", Err: ErrInvalidValue, Detail: "nil element"}
		}
		if err := st.Transition.Validate(); err != nil {
			return nil, err
		}
		for prop, v := range st.Target {
			if err := v.Validate(); err != nil {
				return nil, &PropertyError{Property: prop, Err: err}
			}
		}
	}
	q := &Sequence{sched: s, steps: append([]Step(nil), steps...)}
	q.advance()
	return q, nil
}

// Done reports whether the sequence finished, failed or was cancelled.
func (q *Sequence) Done() bool { return q.done }

// Err returns the error that ended the sequence early, if any.
func (q *Sequence) Err() error { return q.err }

// OnDone registers fn to run when the sequence ends for any reason.
func (q *Sequence) OnDone(fn func()) {
	if q.done {
		fn()
		return
	}
	q.onDone = append(q.onDone, fn)
}

// Cancel stops the current step and skips the remaining ones.
func (q *Sequence) Cancel() {
	if q.done {
		return
	}
	q.cancelled = true
	q.sched.StopBatch(q.current)
	q.finish()
}

func (q *Sequence) advance() {
	if q.cancelled || q.done {
		return
	}
	if q.next >= len(q.steps) {
		q.finish()
		return
	}
	st := q.steps[q.next]
	q.next++
	h, err := q.sched.Start(st.Element, st.Target, st.Transition)
	if err != nil {
		q.err = err
		q.finish()
		return
	}
	q.current = h
	q.sched.OnComplete(h, func(BatchResult) { q.advance() })
}

func (q *Sequence) finish() {
	q.done = true
	fns := q.onDone
	q.onDone = nil
	for _, fn := range fns {
		fn()
	}
}

// StopBatch cancels the remaining tasks of a batch and returns how many were
// cancelled.
func (s *Scheduler) StopBatch(h BatchHandle) int {
	if s.Done(h) {
		return 0
	}
	s.enter()
	defer s.leave()
	n := 0
	for _, t := range s.tasks {
		if t.batch == h && !t.phase.Terminal() {
			s.cancel(t)
			n++
		}
	}
	if !s.ticking {
		s.compact()
	}
	return n
}
