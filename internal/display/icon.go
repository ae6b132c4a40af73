package display

// Icon is the name of an icon that accompanies a status.
type Icon string

const (
	IconCheckCircle   Icon = "check-circle"
	IconAlertCircle   Icon = "alert-circle"
	IconAlertTriangle Icon = "alert-triangle"
	IconHelpCircle    Icon = "help-circle"
	IconMinusCircle   Icon = "minus-circle"
	IconSearch        Icon = "search"
	IconEye           Icon = "eye"
)

type glyph struct {
	Unicode string
	ASCII   string
}

var glyphs = map[Icon]glyph{
	IconCheckCircle:   {"✔", "o"},
	IconAlertCircle:   {"✘", "x"},
	IconAlertTriangle: {"⚠", "!"},
	IconHelpCircle:    {"?", "?"},
	IconMinusCircle:   {"−", "-"},
	IconSearch:        {"⌕", "~"},
	IconEye:           {"◉", "*"},
}

func (i Icon) String() string {
	return string(i)
}

// Glyph returns a character to show the icon in a text.
func (i Icon) Glyph(ascii bool) string {
	g, ok := glyphs[i]
	if !ok {
		return " "
	}
	if ascii {
		return g.ASCII
	}
	return g.Unicode
}
