// Package ui provides terminal color themes for CLI and TUI output.
// The active theme is process-global and guarded by a mutex so presentation
// code can query colors without threading a theme value through every call.
package ui
