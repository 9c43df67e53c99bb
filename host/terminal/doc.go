// Package terminal runs a world on a tcell screen.
//
// The scene is drawn at a fixed number of scene units per terminal cell.
// Tiles become glyphs picked from their asset name, the player is '@' and
// labels are written as text. Mouse button 1 drives the touch callbacks
// with the centre of the clicked cell; arrow keys, WASD, b, c, z and m run
// commands directly. q, Esc and Ctrl-C quit.
package terminal
