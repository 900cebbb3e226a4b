// Package tui implements a terminal presenter. Narration fragments are
// converted from inline HTML to ANSI styles and choices are drawn as
// numbered buttons in a flow layout sized to the terminal.
package tui
