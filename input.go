package motion

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerSource reports the pointer position in screen coordinates and
// whether its primary button is held.
type PointerSource interface {
	Pointer() (x, y float64, pressed bool)
}

// PointerFunc adapts a function to PointerSource.
type PointerFunc func() (x, y float64, pressed bool)

// Pointer implements PointerSource.
func (f PointerFunc) Pointer() (float64, float64, bool) { return f() }

// ebitenPointer reads the mouse, falling back to the first touch.
type ebitenPointer struct{}

func (ebitenPointer) Pointer() (float64, float64, bool) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		tx, ty := ebiten.TouchPosition(ids[0])
		return float64(tx), float64(ty), true
	}
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// pointerState tracks a single pointer across frames.
type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node // node under the pointer at press time
	hoverNode *Node
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order, appending
// interactable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	buf = append(buf, n)
	for _, child := range sortedByZ(n.children) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Stage) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if n.containsLocal(lx, ly) {
			return n
		}
	}
	return nil
}

// HitTest returns the topmost interactable node at a screen point, using the
// world transforms of the latest update.
func (s *Stage) HitTest(x, y float64) *Node {
	return s.hitTest(x, y)
}

// --- Input processing ---

// processInput is called from Stage.Update inside a reactive batch, so all
// gesture signal changes of one frame reach bridges together.
func (s *Stage) processInput() {
	if s.keyboard && inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			s.FocusPrev()
		} else {
			s.FocusNext()
		}
	}
	if s.processInjectedInput() {
		return
	}
	x, y, pressed := s.pointer.Pointer()
	s.processPointer(x, y, pressed)
}

// processPointer drives hover, press and click from one pointer sample.
func (s *Stage) processPointer(wx, wy float64, pressed bool) {
	ps := &s.ptr
	target := s.hitTest(wx, wy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			ps.hoverNode.Hovered.Set(false)
			s.emit(GestureHoverEnd, ps.hoverNode, wx, wy)
		}
		if target != nil {
			target.Hovered.Set(true)
			s.emit(GestureHoverStart, target, wx, wy)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.hitNode = target
		if target != nil {
			target.Pressed.Set(true)
			s.emit(GesturePressStart, target, wx, wy)
			if target.Focusable {
				s.Focus(target)
			}
		}
	case !pressed && ps.down:
		if hit := ps.hitNode; hit != nil && !hit.disposed {
			hit.Pressed.Set(false)
			s.emit(GesturePressEnd, hit, wx, wy)
			if hit == target {
				s.emit(GestureClick, hit, wx, wy)
				if hit.OnClick != nil {
					hit.OnClick(hit)
				}
			}
		}
		ps.down = false
		ps.hitNode = nil
	}
	ps.lastX = wx
	ps.lastY = wy
}

// --- Focus ---

// Focused returns the focused node, or nil.
func (s *Stage) Focused() *Node {
	if s.focused != nil && s.focused.disposed {
		s.focused = nil
	}
	return s.focused
}

// Focus moves focus to n. A nil n clears focus.
func (s *Stage) Focus(n *Node) {
	prev := s.Focused()
	if prev == n {
		return
	}
	if prev != nil {
		prev.Focused.Set(false)
		s.emit(GestureBlur, prev, 0, 0)
	}
	s.focused = n
	if n != nil {
		n.Focused.Set(true)
		s.emit(GestureFocus, n, 0, 0)
	}
}

// FocusNext moves focus to the next focusable node in tree order, wrapping
// around.
func (s *Stage) FocusNext() { s.cycleFocus(1) }

// FocusPrev moves focus to the previous focusable node in tree order.
func (s *Stage) FocusPrev() { s.cycleFocus(-1) }

func (s *Stage) cycleFocus(dir int) {
	var order []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Focusable {
			order = append(order, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.root)
	if len(order) == 0 {
		return
	}
	idx := -1
	cur := s.Focused()
	for i, n := range order {
		if n == cur {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir < 0:
		idx = len(order) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + dir + len(order)) % len(order)
	}
	s.Focus(order[idx])
}
