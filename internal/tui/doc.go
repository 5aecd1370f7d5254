// Package tui is the terminal front end. It draws the flash card with
// tcell and turns mouse buttons and keys into card gestures, so the same
// tap and long press rules apply as in the GUI.
package tui
