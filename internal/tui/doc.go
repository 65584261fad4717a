// Package tui renders the sign-in form in a terminal.
//
// Keystrokes feed the field controllers; state changes from the form and the
// session observer arrive as messages through a conflating signal channel.
package tui
