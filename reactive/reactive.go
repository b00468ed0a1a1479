// Package reactive is a small synchronous signal graph: writable signals,
// effects that re-run when a signal they read changes, batched writes and
// scopes that own effects and cleanup callbacks.
//
// The graph is single-threaded. Signals, effects and scopes must be used from
// one goroutine, the same one that drives the animation frame loop.
package reactive

import "fmt"

// maxFlushRounds bounds the effects re-queued by their own writes within one
// flush.
const maxFlushRounds = 1000

// dependency is anything an observer can read.
type dependency interface {
	unsubscribe(o *observer)
}

// observer is an effect or a plain subscription.
type observer struct {
	fn       func()
	tracking bool // re-collect dependencies on every run
	deps     []dependency
	stopped  bool
	queued   bool
}

var (
	current    *observer
	batchDepth int
	flushing   bool
	queue      []*observer
)

func (o *observer) run() {
	if o.stopped {
		return
	}
	if !o.tracking {
		prev := current
		current = nil
		defer func() { current = prev }()
		o.fn()
		return
	}
	o.clearDeps()
	prev := current
	current = o
	defer func() { current = prev }()
	o.fn()
}

func (o *observer) clearDeps() {
	for _, d := range o.deps {
		d.unsubscribe(o)
	}
	o.deps = o.deps[:0]
}

func (o *observer) stop() {
	if o.stopped {
		return
	}
	o.stopped = true
	o.clearDeps()
}

func schedule(o *observer) {
	if o.stopped || o.queued {
		return
	}
	o.queued = true
	queue = append(queue, o)
}

// flush runs queued observers in the order they were queued. Observers
// queued while flushing run in a later round of the same flush.
func flush() {
	if flushing || batchDepth > 0 {
		return
	}
	flushing = true
	defer func() { flushing = false }()
	for round := 0; len(queue) > 0; round++ {
		if round >= maxFlushRounds {
			queue = nil
			panic(fmt.Sprintf("reactive: effects did not settle after %d rounds", maxFlushRounds))
		}
		pending := queue
		queue = nil
		for _, o := range pending {
			o.queued = false
			o.run()
		}
	}
}

// Batch runs fn and defers every effect it triggers until fn returns. Each
// affected effect runs once.
func Batch(fn func()) {
	batchDepth++
	defer func() {
		batchDepth--
		flush()
	}()
	fn()
}

// Untrack runs fn without recording its reads as dependencies of the
// running effect.
func Untrack[T any](fn func() T) T {
	prev := current
	current = nil
	defer func() { current = prev }()
	return fn()
}

// Effect runs fn now and again whenever a signal it read during its last
// run changes. It returns a function that stops the effect.
func Effect(fn func()) (stop func()) {
	o := &observer{fn: fn, tracking: true}
	Batch(o.run)
	return o.stop
}
