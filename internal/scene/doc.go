// Package scene provides the retained-mode 2D scene graph behind the
// overlay: a flat Node tree with cached affine world transforms, painter
// order drawing by ZIndex, AABB and custom-shape hit testing, and a pointer
// state machine that turns raw mouse state into click, double-click, hover,
// and dead-zone filtered drag events.
//
// The package is strictly single-threaded: every method must be called from
// the game loop goroutine. Timing is frame-delta driven: the scene keeps no
// wall clock, which makes interaction sequences reproducible in tests via
// the Inject* helpers.
//
// Rendering is the only part that touches the GPU. Layout, transforms, hit
// testing, text measurement, and the input state machine all run on plain
// values, so the logic layer is fully exercisable in unit tests without a
// display.
package scene
