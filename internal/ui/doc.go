// Package ui provides terminal output helpers for the sensorgas one-shot
// commands (history, insert, init).
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations, clean readings
//	ColorError     (red)    - Failures, dirty readings
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//
// Use DisableColors() to switch to monochrome output (for --no-color flag).
//
// # Spinner Usage
//
// The Spinner type provides an animated indicator for store operations:
//
//	s := ui.NewSpinner("Connecting to sensor store")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
//
// # Tables
//
// RenderReadingTable prints readings through a Bubbles table with a
// clean/dirty summary line.
package ui
