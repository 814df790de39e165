// Package tui renders the session in the terminal with Bubbletea.
//
// The app subscribes to the experiment's lifecycle events, repainting as
// blocks and trials advance, and translates key presses into the key codes
// the task controller understands.
package tui
