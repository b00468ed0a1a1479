package motion

import (
	"fmt"
	"time"
)

// StaggerOrigin selects the element a stagger counts distance from.
type StaggerOrigin uint8

const (
	StaggerFirst StaggerOrigin = iota
	StaggerLast
	StaggerCenter
	StaggerIndex
)

// Stagger offsets the start of each element in a group by Each times its
// distance from the origin.
type Stagger struct {
	Each  time.Duration
	From  StaggerOrigin
	Index int // origin for StaggerIndex
}

// Validate rejects a negative step or origin index.
func (st Stagger) Validate() error {
	if st.Each < 0 {
		return fmt.Errorf("%w: negative stagger %v", ErrInvalidValue, st.Each)
	}
	if st.From == StaggerIndex && st.Index < 0 {
		return fmt.Errorf("%w: negative stagger origin %d", ErrInvalidValue, st.Index)
	}
	return nil
}

// Delay returns the extra delay of element i in a group of n.
func (st Stagger) Delay(i, n int) time.Duration {
	var dist float64
	switch st.From {
	case StaggerLast:
		dist = float64(n - 1 - i)
	case StaggerCenter:
		dist = float64(i) - float64(n-1)/2
	case StaggerIndex:
		dist = float64(i - st.Index)
	default:
		dist = float64(i)
	}
	if dist < 0 {
		dist = -dist
	}
	return time.Duration(dist * float64(st.Each))
}

// StartStaggered starts target on every element with tr, delaying element i
// by tr.Delay plus tr.Stagger.Delay(i, len(els)). Validation covers every
// element before any task is created.
func (s *Scheduler) StartStaggered(els []*Element, target Target, tr Transition) ([]BatchHandle, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	for _, el := range els {
		if el == nil {
			return nil, fmt.Errorf("%w: nil element", ErrInvalidValue)
		}
		if el.destroyed {
			s.reportGone(el)
			return nil, ErrElementGone
		}
		for prop, v := range target {
			if err := el.checkKind(prop, v.kind); err != nil {
				return nil, err
			}
		}
	}
	handles := make([]BatchHandle, 0, len(els))
	for i, el := range els {
		each := tr
		each.Stagger = nil
		if tr.Stagger != nil {
			each.Delay += tr.Stagger.Delay(i, len(els))
		}
		h, err := s.Start(el, target, each)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}
