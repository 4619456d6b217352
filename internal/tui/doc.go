// Package tui hosts a perk grid in the terminal.
//
// The TUI is a Bubble Tea program that acts as the grid's host: it owns the
// element tree, reports the terminal width to the responsive controller
// and forwards navigation keys to the focus manager. What it draws is read
// back from the element tree, so the terminal shows exactly the state the
// widget produced.
//
// # Architecture
//
// The TUI follows a Model-View-Controller (MVC) pattern:
//
//   - Model (internal/tui/model/): state, key bindings, messages and the
//     Loop that runs widget callbacks inside Update
//   - View (internal/tui/view/): renders the grid as a table (grid display)
//     or as package cards (list display), plus header, status bar and
//     overlays
//   - Controller (internal/tui/controller/): dispatches messages and keys
//     and manages the program lifecycle
//
// # Event loop
//
// The widget never touches the element tree from another goroutine. The
// data fetch runs in a tea.Cmd; its result and every debounce timer are
// delivered as model.RunMsg and executed by Update. Terminal columns are
// converted into pixels with a configurable factor before they reach the
// responsive controller.
//
// # Key Bindings
//
//   - Arrows or h/j/k/l: move between cells
//   - Home/End, g/G: first/last column; ctrl+Home/ctrl+End: first/last row
//   - y: copy the focused cell to the clipboard
//   - d: cycle display (responsive, grid, list)
//   - r: reload the data
//   - L: activity log; ?: help; D: dark/light mode; q: quit
package tui
