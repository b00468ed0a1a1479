package motion

import (
	"strconv"
	"strings"

	"github.com/phanxgames/motion/reactive"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, the stage is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a retained rectangle on a Stage. It implements Surface, so an
// Element can animate it: opacity, background-color, width, height, left,
// top and transform map onto its fields; any other style is stored and read
// back verbatim.
//
// The gesture signals are driven by the stage's input processing and are
// what bridges read for hover, tap, focus and in-view overlays.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local, before the animated transform)
	X, Y          float64
	Width, Height float64
	// OriginX and OriginY place the transform origin as a fraction of the
	// size; the default is the center.
	OriginX, OriginY float64

	// Styles
	Transform Transform
	Alpha     float64
	Color     RGBA

	// Visibility & interaction
	Visible      bool
	Interactable bool
	Focusable    bool
	ZIndex       int

	// Gesture state
	Hovered *reactive.Signal[bool]
	Pressed *reactive.Signal[bool]
	Focused *reactive.Signal[bool]
	InView  *reactive.Signal[bool]

	// Callbacks (nil by default)
	OnClick func(*Node)

	// EntityID links the node to an ECS entity; gesture events are forwarded
	// to the stage's EntityStore only when it is non-zero.
	EntityID uint32
	UserData any

	// Computed, refreshed every stage update.
	worldTransform [6]float64
	worldAlpha     float64

	styles    map[string]string
	element   *Element
	onDispose []func()
	disposed  bool
}

// NewNode creates a visible, interactable rectangle.
func NewNode(name string, w, h float64) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		Width:          w,
		Height:         h,
		OriginX:        0.5,
		OriginY:        0.5,
		Alpha:          1,
		Color:          ColorWhite,
		Visible:        true,
		Interactable:   true,
		Hovered:        reactive.New(false),
		Pressed:        reactive.New(false),
		Focused:        reactive.New(false),
		InView:         reactive.New(false),
		worldTransform: identityAffine,
		worldAlpha:     1,
	}
}

// NewContainer creates a node with no size. Containers group children and
// are never hit.
func NewContainer(name string) *Node {
	n := NewNode(name, 0, 0)
	return n
}

// --- Surface ---

// SetStyle implements Surface. Unparsable values for mapped styles are
// ignored.
func (n *Node) SetStyle(name, value string) {
	if n.disposed {
		return
	}
	switch strings.ToLower(name) {
	case "opacity":
		if v, err := parseFinite(value); err == nil {
			n.Alpha = clamp(v, 0, 1)
		}
		return
	case "background-color", "color":
		if c, err := ParseColor(value); err == nil {
			n.Color = c
		}
		return
	case "width":
		if v, err := parseLength(value); err == nil {
			n.Width = v
		}
		return
	case "height":
		if v, err := parseLength(value); err == nil {
			n.Height = v
		}
		return
	case "left":
		if v, err := parseLength(value); err == nil {
			n.X = v
		}
		return
	case "top":
		if v, err := parseLength(value); err == nil {
			n.Y = v
		}
		return
	case transformProperty:
		if t, err := ParseTransform(value); err == nil {
			n.Transform = t
		}
		return
	}
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[name] = value
}

// ComputedStyle implements Surface.
func (n *Node) ComputedStyle(name string) (string, bool) {
	switch strings.ToLower(name) {
	case "opacity":
		return formatFloat(n.Alpha), true
	case "background-color", "color":
		return n.Color.String(), true
	case "width":
		return formatFloat(n.Width) + "px", true
	case "height":
		return formatFloat(n.Height) + "px", true
	case "left":
		return formatFloat(n.X) + "px", true
	case "top":
		return formatFloat(n.Y) + "px", true
	case transformProperty:
		if n.Transform.IsEmpty() {
			return "none", true
		}
		return n.Transform.String(), true
	}
	v, ok := n.styles[name]
	return v, ok
}

func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "px") {
		return parseUnit(s, "px")
	}
	return strconv.ParseFloat(s, 64)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("motion: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("motion: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("motion: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// --- Disposal ---

// OnDispose registers fn to run when the node is disposed. Stages use it to
// destroy the node's element and bridges.
func (n *Node) OnDispose(fn func()) {
	n.onDispose = append(n.onDispose, fn)
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	fns := n.onDispose
	n.onDispose = nil
	for _, fn := range fns {
		fn()
	}
	n.disposed = true
	n.children = nil
	n.Parent = nil
	n.OnClick = nil
	n.UserData = nil
	n.element = nil
	n.styles = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Geometry ---

// localTransform places the node at (X, Y) and applies its animated
// transform around the origin.
func (n *Node) localTransform() [6]float64 {
	t := n.Transform
	px, py := n.OriginX*n.Width, n.OriginY*n.Height
	sx := t.Value(FieldScale) * t.Value(FieldScaleX)
	sy := t.Value(FieldScale) * t.Value(FieldScaleY)
	return composeAffine(
		n.X+px+t.Value(FieldX), n.Y+py+t.Value(FieldY),
		sx, sy,
		t.Value(FieldRotateZ)*radPerDeg,
		t.Value(FieldSkewX)*radPerDeg, t.Value(FieldSkewY)*radPerDeg,
		px, py,
	)
}

// WorldTransform returns the node's world matrix as of the latest stage
// update.
func (n *Node) WorldTransform() [6]float64 { return n.worldTransform }

// WorldToLocal converts a world point into the node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (float64, float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// LocalToWorld converts a local point into world space.
func (n *Node) LocalToWorld(lx, ly float64) (float64, float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// WorldBounds returns the axis-aligned bounds of the node's rectangle in
// world space.
func (n *Node) WorldBounds() Rect {
	var minX, minY, maxX, maxY float64
	for i, p := range [4][2]float64{{0, 0}, {n.Width, 0}, {0, n.Height}, {n.Width, n.Height}} {
		x, y := n.LocalToWorld(p[0], p[1])
		if i == 0 || x < minX {
			minX = x
		}
		if i == 0 || y < minY {
			minY = y
		}
		if i == 0 || x > maxX {
			maxX = x
		}
		if i == 0 || y > maxY {
			maxY = y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// containsLocal reports whether a local point is inside the rectangle.
// Zero-size nodes are never hit.
func (n *Node) containsLocal(lx, ly float64) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// updateWorldTransform refreshes world matrices and alpha for the subtree.
func updateWorldTransform(n *Node, parent [6]float64, parentAlpha float64) {
	n.worldTransform = multiplyAffine(parent, n.localTransform())
	n.worldAlpha = parentAlpha * n.Alpha
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha)
	}
}

// --- Helpers ---

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
