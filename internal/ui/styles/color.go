package styles

import (
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Detect returns the color profile of w, honouring NO_COLOR and friends.
func Detect(w io.Writer) colorprofile.Profile {
	return colorprofile.Detect(w, os.Environ())
}

// HasColor reports whether p can render ANSI colors.
func HasColor(p colorprofile.Profile) bool {
	switch p {
	case colorprofile.ANSI, colorprofile.ANSI256, colorprofile.TrueColor:
		return true
	}
	return false
}

// SetColor enables or disables colors for every style in this package.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
