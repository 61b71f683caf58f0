// Package tappable implements interactive surfaces that simulate native
// press feedback: delayed active highlighting, hover, focus-visible and
// ripple markers, on top of touch, mouse and pen input.
//
// # Timing
//
// A press shows feedback only after [press.ActivationDelay]; once shown,
// feedback stays visible for the configured effect duration even when the
// finger lifts early. Moving more than [press.DragThreshold] cancels the
// press.
//
// # Coordination
//
// Every surface under one application root shares a [registry.Registry].
// Starting a press on one surface clears every other surface, so at most
// one surface is pressed at a time. Construct the registry once and pass
// it to each surface:
//
//	loop := schedule.NewLoop(0)
//	reg := registry.New(loop)
//	save := tappable.New(reg, tappable.Options{OnClick: save})
//	defer save.Dispose()
//
// # Nesting
//
// A surface inside another sets [Options.Ancestor] to the outer surface.
// While the inner surface is hovered or pressed the outer one suppresses
// its own hover and active feedback.
//
// # Rendering
//
// Surfaces do not style anything. [Surface.State] returns the flags and
// ripple coordinates a presentation layer turns into visuals, and
// [Surface.AddListener] reports when they change.
package tappable
