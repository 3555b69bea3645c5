// Package ui contains the Bubble Tea program that renders a registry hive as
// three panes: the subkeys of the entered key, the values of the selected
// subkey, and an inspector for the selected value.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes, clipboard results).
//   - Key presses are resolved against the key map in keys.go. Global
//     bindings (quit, focus cycling, sort, find, copy) apply in every pane;
//     the rest are interpreted by the focused pane. Each key press issues at
//     most one navigator operation.
//   - After every message the model recomputes its layout and hands the
//     visible row counts to nav.Navigator.SyncViewport, keeping cached scroll
//     offsets in step with the screen.
//
// State ownership:
//   - Cursor positions, scroll offsets, sort order and selection history live
//     in internal/nav. The model only keeps presentation state: focus, the
//     find prompt, the inspector viewport and transient status messages.
//
// Rendering lives in view.go and only reads from the navigator.
package ui
