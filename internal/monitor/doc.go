// Package monitor implements the terminal dashboard for gas sensor readings.
//
// The dashboard shows the readings held by a telemetry.State in one of three
// views: a chart of the recent readings with their smoothed trend, the latest
// reading with its clean or dirty verdict, and a scrollable history of every
// reading in the current snapshot.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds the telemetry state, layout size, and UI flags
//   - Update: Processes messages (keystrokes, frame ticks, fetch results)
//   - View: Renders the active view to a string for display
//
// # Message Flow
//
// The dashboard runs on a short frame tick and lets the poller decide when
// a fetch is due:
//
//  1. tickMsg fires every frame (default 250ms)
//  2. Poller.TryStart claims the fetch slot when the cadence has elapsed
//  3. fetchCmd runs Poller.Fetch off the UI goroutine
//  4. fetchResultMsg arrives and Poller.Apply swaps in the new snapshot
//  5. View() re-renders from the buffer
//
// A slow store never stacks fetches: TryStart refuses while one is in flight,
// and frames keep rendering the previous snapshot in the meantime.
//
// # Keyboard Shortcuts
//
//	1/d, 2/t, 3/h   - Dashboard, Realtime, History
//	tab, shift+tab  - Cycle views
//	j/k, pgup/pgdn  - Scroll history
//	r               - Fetch on the next frame
//	?               - Toggle help overlay
//	q, Ctrl+C       - Quit
package monitor
