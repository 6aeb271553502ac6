// Package viz renders a constellation in the terminal.
//
// The package implements the TUI using the Bubble Tea framework:
//
//   - [Model]: one running engine drawn onto a braille canvas
//   - [Canvas]: Braille-based pixel canvas; each cell remembers the level of
//     the brightest thing drawn into it so edges and particles shade apart
//   - a preset launcher started by [RunLauncher]
//   - Theme selection with 5 built-in color schemes
//
// The simulation runs in virtual pixels: one braille dot covers
// [PixelsPerDot] pixels on each axis, so a terminal of c columns and r rows
// is a c*2*PixelsPerDot by r*4*PixelsPerDot viewport.
//
// # Key Bindings
//
// The hero variant only listens for q. The interactive variant adds:
//
//	Click - Spawn a burst at the pointer
//	Drag  - Attract particles toward the pointer
//	R     - Reset to a fresh field
//	Tab   - Toggle the stats panel
//	T     - Cycle color themes
//	Space - Pause/Resume
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Recordings are saved as constellation.gif in the current directory.
package viz
