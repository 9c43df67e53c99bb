// Package desktop runs a world in an ebiten window.
//
// The world draws into a scene.Graph; Game draws snapshots of that graph
// each frame, loading sprite images from an asset filesystem on first use
// and labels with the Go Mono font. Mouse and touch input is flipped into
// scene space (origin bottom-left) before it reaches the world, and every
// ebiten Update is one frame tick.
package desktop
