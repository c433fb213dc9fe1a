// Package viz provides the terminal front end for live runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live view, braille canvas plus a stats sidebar
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Viewport]: world-to-dot projection with Y flipped for screens
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	R     - Rebuild the scene from its config
//	N/P   - Cycle through registered scenes
//	M     - Cycle the charted metric
//	[]    - Replay (rewind/forward)
//	?     - Show help overlay
//	Q     - Quit
package viz
