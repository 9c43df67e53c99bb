// Package scene provides a retained scene graph that implements
// engine.Scene.
//
// The Graph stores sprites and labels with their position, depth and
// scale. Hosts draw it by taking a Snapshot each frame; the HTTP server
// uses it without drawing so that world state, tile counts and node
// positions can be inspected through the API.
//
// Sprite sizes come from a Sizer. ImageSizer reads PNG headers from an
// asset directory, FixedSizer gives every asset the same size.
package scene
