// Package viz is the terminal front end of the engine.
//
// The engine scene is replayed onto a braille [Canvas] by a [CanvasPainter]
// and shown next to a lipgloss side panel by the Bubble Tea [Model]:
//
//   - the T_H and T_C fields, edited in place
//   - the stage label in its theme colour
//   - the efficiency readout with a spring-damped gauge
//   - a short trace of the gas column height
//
// # Key Bindings
//
//	0-9 . - e  Type into the focused field
//	Tab        Switch fields
//	S P U R    Start, pause, resume, reset
//	Space      Pause/Resume
//	T          Cycle color themes
//	G          Toggle GIF recording
//	?          Show help overlay
//
// # Recording
//
// G starts and stops a [GIFRecorder]; the file is written when recording
// stops or the program quits.
package viz
