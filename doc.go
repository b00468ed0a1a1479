// Package motion is a declarative animation engine: it drives style
// properties of elements from their current values toward targets over time,
// using duration-based easing curves or physical springs.
//
// # Values and targets
//
// Every animatable quantity is a [Value]: a number, a length in px, %, deg
// or rad, an [RGBA] color, a composite [Transform], or an opaque string.
// [ParseValue] reads the CSS-like text form and [Value.String] writes it
// back. A [Target] maps property names to values:
//
//	target := motion.Target{
//		"opacity":          motion.Number(1),
//		"x":                motion.Pixels(120),
//		"background-color": motion.ParseValue("#3b82f6"),
//	}
//
// The shorthands x, y, z, rotate, scale, scaleX, scaleY, skewX and skewY each
// drive one field of the element's transform; the element writes a single
// composed transform string to its [Surface] per tick.
//
// # Scheduler
//
// A [Scheduler] owns every running animation. [Scheduler.Start] begins one
// task per property; starting a property that is already animating replaces
// the old task and carries its velocity into the new one. [Scheduler.Tick]
// advances all tasks to a timestamp supplied by the host clock:
//
//	sched := motion.NewScheduler(motion.WithLogger(logger))
//	el := motion.NewElement(surface)
//	h, err := sched.Start(el, target, motion.Tween(300*time.Millisecond, motion.EaseOut))
//	...
//	sched.Tick(now)
//	if sched.Done(h) { ... }
//
// A [Transition] with a zero Duration is spring-driven. Delay, [Repeat] and
// [Stagger] apply to both timings. [Scheduler.Play] runs steps in sequence.
//
// # Reactive bridge
//
// [NewBridge] keeps an element animating toward a target computed from
// reactive state (see package reactive). Whenever a signal the target reads
// changes, only the properties whose values differ are restarted. Hover, tap,
// focus and in-view overlays layer on top of the base target.
//
// # Stage
//
// [Stage] is an [ebiten.Game] host: a tree of rectangle [Node]s that
// implement [Surface], with pointer and focus input wired to each node's
// gesture signals. [Stage.Animate] binds a node to a bridge:
//
//	stage := motion.NewStage()
//	btn := motion.NewNode("button", 120, 40)
//	stage.Root().AddChild(btn)
//	stage.Animate(btn, motion.BridgeConfig{
//		Target: motion.Static(motion.Target{"opacity": motion.Number(1)}),
//		Hover:  &motion.Gesture{Target: motion.Static(motion.Target{"scale": motion.Number(1.1)})},
//	})
//	motion.Run(stage, motion.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// # Observability
//
// [Hooks] report task lifecycle and tick events. [NewMetrics] turns them into
// Prometheus collectors. Diagnostics go to the [log/slog] logger given with
// [WithLogger]; the default logger discards.
//
// # Presets
//
// [LoadPresets] reads named transitions and variants from YAML.
//
// [ebiten.Game]: https://pkg.go.dev/github.com/hajimehoshi/ebiten/v2#Game
package motion
