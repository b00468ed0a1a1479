package motion

// BatchHandle identifies the tasks created by one Start call.
type BatchHandle uint64

type batch struct {
	pending   int
	cancelled int
	callbacks []func(BatchResult)
}

// BatchResult is passed to completion callbacks.
type BatchResult struct {
	Handle BatchHandle
	// Cancelled counts the batch's tasks that were stopped, replaced or
	// failed instead of completing.
	Cancelled int
}

func (s *Scheduler) newBatch() (BatchHandle, *batch) {
	s.nextBatch++
	b := &batch{}
	s.batches[s.nextBatch] = b
	return s.nextBatch, b
}

// finishBatch forgets the batch and queues its callbacks. They run once the
// outermost Start, Stop, StopBatch, DestroyElement or Tick has returned its
// task table to a consistent state.
func (s *Scheduler) finishBatch(h BatchHandle, b *batch) {
	delete(s.batches, h)
	res := BatchResult{Handle: h, Cancelled: b.cancelled}
	for _, fn := range b.callbacks {
		s.deferred = append(s.deferred, func() { fn(res) })
	}
	b.callbacks = nil
}

func (s *Scheduler) enter() { s.depth++ }

// leave drains queued callbacks when the outermost mutation ends. Callbacks
// may start or stop tasks; whatever those queue runs in the same drain.
func (s *Scheduler) leave() {
	s.depth--
	if s.depth > 0 || s.draining {
		return
	}
	s.draining = true
	defer func() { s.draining = false }()
	for len(s.deferred) > 0 {
		fn := s.deferred[0]
		s.deferred[0] = nil
		s.deferred = s.deferred[1:]
		fn()
	}
	s.deferred = nil
}

// Done reports whether every task of the batch reached a terminal phase. A
// Start that created no tasks yields a batch that is done at once. Unknown
// handles report true.
func (s *Scheduler) Done(h BatchHandle) bool {
	_, ok := s.batches[h]
	return !ok
}

// OnComplete registers fn to run when the batch is done. If it already is,
// fn runs immediately.
func (s *Scheduler) OnComplete(h BatchHandle, fn func(BatchResult)) {
	b, ok := s.batches[h]
	if !ok {
		fn(BatchResult{Handle: h})
		return
	}
	b.callbacks = append(b.callbacks, fn)
}
