package styles

// Symbols holds the markers printed in front of report lines
type Symbols struct {
	OK      string
	Fail    string
	Warn    string
	Skip    string
	Bullet  string
	Command string
}

var unicodeSymbols = Symbols{
	OK:      "✓",
	Fail:    "✗",
	Warn:    "⚠",
	Skip:    "–",
	Bullet:  "•",
	Command: "$",
}

// ASCII fallback for terminals that cannot render the unicode set
var asciiSymbols = Symbols{
	OK:      "+",
	Fail:    "x",
	Warn:    "!",
	Skip:    "-",
	Bullet:  "*",
	Command: "$",
}

var currentSymbols = unicodeSymbols

// SetASCII switches between the unicode and ASCII symbol sets
func SetASCII(enabled bool) {
	if enabled {
		currentSymbols = asciiSymbols
	} else {
		currentSymbols = unicodeSymbols
	}
}

// CurrentSymbols returns the active symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// OK renders a success marker followed by text
func OK(text string) string {
	return SuccessStyle.Render(currentSymbols.OK) + " " + text
}

// Fail renders a failure marker followed by text
func Fail(text string) string {
	return ErrorStyle.Render(currentSymbols.Fail) + " " + text
}

// Warn renders a warning marker followed by text
func Warn(text string) string {
	return WarningStyle.Render(currentSymbols.Warn) + " " + text
}

// Skip renders a skip marker followed by muted text
func Skip(text string) string {
	return MutedStyle.Render(currentSymbols.Skip + " " + text)
}

// Command renders a recorded command line
func Command(line string) string {
	return MutedStyle.Render(currentSymbols.Command + " " + line)
}
