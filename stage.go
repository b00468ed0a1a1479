package motion

import (
	"image/color"
	"log/slog"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/motion/reactive"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, gesture events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event GestureEvent)
}

// GestureType identifies a gesture transition on a node.
type GestureType uint8

const (
	GestureHoverStart GestureType = iota
	GestureHoverEnd
	GesturePressStart
	GesturePressEnd
	GestureClick
	GestureFocus
	GestureBlur
	GestureEnterView
	GestureLeaveView
)

var gestureNames = [...]string{
	"hover-start", "hover-end", "press-start", "press-end", "click",
	"focus", "blur", "enter-view", "leave-view",
}

func (g GestureType) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return "unknown"
}

// GestureEvent carries gesture data for the ECS bridge.
type GestureEvent struct {
	Type     GestureType
	EntityID uint32
	NodeID   uint32
	X, Y     float64 // world coordinates of the pointer, zero for focus and view
	Frame    uint64
}

// DefaultTPS is the tick rate a stage assumes when none is configured.
const DefaultTPS = 60

// Stage is an ebiten.Game that owns a node tree, a Scheduler and a reactive
// scope. Every Update processes input into the nodes' gesture signals,
// advances the stage clock by one frame and ticks the scheduler; Draw paints
// each visible node as a filled rectangle.
type Stage struct {
	root   *Node
	sched  *Scheduler
	scope  *reactive.Scope
	logger *slog.Logger

	width, height int
	tps           int
	now           time.Duration
	frame         uint64
	ClearColor    RGBA

	// ScreenshotDir is the directory Screenshot writes PNGs to.
	ScreenshotDir   string
	screenshotQueue []string

	// Input
	pointer     PointerSource
	keyboard    bool
	ptr         pointerState
	hitBuf      []*Node
	focused     *Node
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	store      EntityStore
	debug      bool
	showFPS    bool
	pixel      *ebiten.Image
	updateFunc func() error

	schedOpts []Option
}

// StageOption configures a Stage.
type StageOption func(*Stage)

// WithStageSize fixes the logical screen size. Without it the stage adopts
// the window size reported to Layout.
func WithStageSize(w, h int) StageOption {
	return func(s *Stage) { s.width, s.height = w, h }
}

// WithTPS sets the number of updates per second the stage clock assumes.
func WithTPS(tps int) StageOption {
	return func(s *Stage) {
		if tps > 0 {
			s.tps = tps
		}
	}
}

// WithPointer replaces the ebiten mouse with src. Keyboard focus traversal
// is disabled, since it also reads ebiten state.
func WithPointer(src PointerSource) StageOption {
	return func(s *Stage) {
		s.pointer = src
		s.keyboard = false
	}
}

// WithSchedulerOptions passes options through to the stage's Scheduler.
func WithSchedulerOptions(opts ...Option) StageOption {
	return func(s *Stage) { s.schedOpts = append(s.schedOpts, opts...) }
}

// NewStage creates a stage with an empty root container.
func NewStage(opts ...StageOption) *Stage {
	root := NewContainer("root")
	s := &Stage{
		root:       root,
		scope:      reactive.NewScope(),
		tps:        DefaultTPS,
		pointer:    ebitenPointer{},
		keyboard:   true,
		ClearColor: ColorBlack,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sched = NewScheduler(s.schedOpts...)
	s.logger = s.sched.logger
	return s
}

// Root returns the stage's root container node.
func (s *Stage) Root() *Node { return s.root }

// Scheduler returns the stage's scheduler.
func (s *Stage) Scheduler() *Scheduler { return s.sched }

// Scope returns the reactive scope bridges created by Animate belong to.
func (s *Stage) Scope() *reactive.Scope { return s.scope }

// Now returns the stage clock: the timestamp of the most recent tick.
func (s *Stage) Now() time.Duration { return s.sched.Now() }

// Frame returns the number of completed updates.
func (s *Stage) Frame() uint64 { return s.frame }

// Size returns the logical screen size.
func (s *Stage) Size() (int, int) { return s.width, s.height }

// Element returns the animation element for n, creating it on first use.
// Disposing n destroys the element and cancels its animations.
func (s *Stage) Element(n *Node) *Element {
	if n.element != nil {
		return n.element
	}
	el := NewNamedElement(n.Name, n)
	n.element = el
	n.OnDispose(func() { s.sched.DestroyElement(el) })
	return el
}

// Animate binds n to a reactive target. Gesture overlays whose Active
// source is nil follow the node's own gesture signals. The bridge lives
// until n is disposed or the stage scope is disposed.
func (s *Stage) Animate(n *Node, cfg BridgeConfig) *Bridge {
	el := s.Element(n)
	cfg.Hover = withActive(cfg.Hover, n.Hovered)
	cfg.Tap = withActive(cfg.Tap, n.Pressed)
	cfg.Focus = withActive(cfg.Focus, n.Focused)
	cfg.InView = withActive(cfg.InView, n.InView)
	if cfg.OnError == nil {
		cfg.OnError = func(prop string, err error) {
			s.logger.Warn("animate failed", "node", n.Name, "property", prop, "error", err)
		}
	}
	b := NewBridge(s.scope, s.sched, el, cfg)
	n.OnDispose(b.Destroy)
	return b
}

func withActive(g *Gesture, sig BoolSource) *Gesture {
	if g == nil || g.Active != nil {
		return g
	}
	cp := *g
	cp.Active = sig
	return &cp
}

// To starts a one-off animation of n toward target.
func (s *Stage) To(n *Node, target Target, tr Transition) (BatchHandle, error) {
	return s.sched.Start(s.Element(n), target, tr)
}

// SetUpdateFunc registers fn to run at the start of every Update, before
// input and the scheduler tick. A non-nil error stops the game loop.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables per-frame stats, logged at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Dispose disposes the node tree and the reactive scope.
func (s *Stage) Dispose() {
	s.root.Dispose()
	s.scope.Dispose()
}

func (s *Stage) frameDuration() time.Duration {
	return time.Second / time.Duration(s.tps)
}

// Update implements ebiten.Game.
func (s *Stage) Update() error {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// World transforms first so hit testing sees last frame's motion.
	updateWorldTransform(s.root, identityAffine, 1)
	reactive.Batch(func() {
		s.processInput()
		s.updateInView()
	})

	if s.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sched.Tick(s.now)
	s.now += s.frameDuration()
	s.frame++

	if s.debug {
		stats.tickTime = time.Since(t0)
		stats.active = s.sched.ActiveCount()
		stats.nodes = countNodes(s.root)
		s.debugLog(stats)
	}
	return nil
}

// Draw implements ebiten.Game.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	cr, cg, cb, ca := s.ClearColor.Unit()
	screen.Fill(color.NRGBA{R: uint8(cr * 255), G: uint8(cg * 255), B: uint8(cb * 255), A: uint8(ca * 255)})

	updateWorldTransform(s.root, identityAffine, 1)
	s.draw(screen, s.root)
	if s.showFPS {
		s.drawOverlay(screen)
	}
	s.flushScreenshots(screen)
}

func (s *Stage) draw(screen *ebiten.Image, n *Node) {
	if !n.Visible {
		return
	}
	if n.Width > 0 && n.Height > 0 && n.worldAlpha > 0 {
		m := n.worldTransform
		var geo ebiten.GeoM
		geo.SetElement(0, 0, m[0])
		geo.SetElement(1, 0, m[1])
		geo.SetElement(0, 1, m[2])
		geo.SetElement(1, 1, m[3])
		geo.SetElement(0, 2, m[4])
		geo.SetElement(1, 2, m[5])

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Concat(geo)
		r, g, b, a := n.Color.Unit()
		a *= n.worldAlpha
		// ColorScale is premultiplied.
		op.ColorScale.Scale(float32(r*a), float32(g*a), float32(b*a), float32(a))
		screen.DrawImage(s.pixel, op)
	}
	for _, child := range sortedByZ(n.children) {
		s.draw(screen, child)
	}
}

// Layout implements ebiten.Game.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.width == 0 || s.height == 0 {
		s.width, s.height = outsideWidth, outsideHeight
	}
	return s.width, s.height
}

// sortedByZ returns children in painter order: ascending ZIndex, tree order
// for ties. The input is returned as is when already ordered.
func sortedByZ(children []*Node) []*Node {
	ordered := true
	for i := 1; i < len(children); i++ {
		if children[i].ZIndex < children[i-1].ZIndex {
			ordered = false
			break
		}
	}
	if ordered {
		return children
	}
	out := make([]*Node, len(children))
	copy(out, children)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// updateInView sets each node's InView signal from whether its world bounds
// intersect the screen.
func (s *Stage) updateInView() {
	if s.width == 0 || s.height == 0 {
		return
	}
	screen := Rect{Width: float64(s.width), Height: float64(s.height)}
	var walk func(n *Node, visible bool)
	walk = func(n *Node, visible bool) {
		visible = visible && n.Visible
		in := visible && n.Width > 0 && n.Height > 0 && n.WorldBounds().Intersects(screen)
		if n.InView.Set(in) {
			if in {
				s.emit(GestureEnterView, n, 0, 0)
			} else {
				s.emit(GestureLeaveView, n, 0, 0)
			}
		}
		for _, child := range n.children {
			walk(child, visible)
		}
	}
	walk(s.root, true)
}

func (s *Stage) emit(t GestureType, n *Node, x, y float64) {
	if s.store == nil || n == nil || n.EntityID == 0 {
		return
	}
	s.store.EmitEvent(GestureEvent{
		Type:     t,
		EntityID: n.EntityID,
		NodeID:   n.ID,
		X:        x,
		Y:        y,
		Frame:    s.frame,
	})
}
