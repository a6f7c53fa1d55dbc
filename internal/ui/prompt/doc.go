// Package prompt provides the interactive confirmation used before a run.
//
// [Confirm] renders a bubbletea yes/no prompt when the input is a terminal
// and falls back to reading a typed yes/no answer otherwise.
package prompt
