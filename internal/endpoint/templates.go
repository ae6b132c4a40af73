package endpoint

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/macrat/statusboard/internal/display"
	"golang.org/x/text/width"
)

//go:embed templates/base.html
var baseHTMLTemplateStr string

var baseHTMLTemplate = template.Must(template.New("base.html").Funcs(templateFuncs).Parse(baseHTMLTemplateStr))

func loadHTMLTemplate(s string) *template.Template {
	return template.Must(
		template.Must(baseHTMLTemplate.Clone()).Parse(s),
	)
}

// textWidth is the width of status.txt.
const textWidth = 80

// runeWidth returns how many columns r takes on a terminal.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// displayWidth returns how many columns s takes on a terminal.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		w += runeWidth(r)
	}
	return w
}

var (
	templateFuncs = map[string]interface{}{
		"glyph": func(i display.Icon, ascii bool) string {
			return i.Glyph(ascii)
		},
		"upper": strings.ToUpper,
		"rule": func(ascii bool) string {
			if ascii {
				return strings.Repeat("=", textWidth)
			}
			return strings.Repeat("━", textWidth)
		},
		"break_text": func(s string, w int) []string {
			r := []string{}
			var line strings.Builder
			lineWidth := 0
			for _, c := range s {
				cw := runeWidth(c)
				if lineWidth+cw > w && lineWidth > 0 {
					r = append(r, line.String())
					line.Reset()
					lineWidth = 0
				}
				line.WriteRune(c)
				lineWidth += cw
			}
			if line.Len() > 0 {
				r = append(r, line.String())
			}
			return r
		},
		"pad": func(s string, w int) string {
			n := w - displayWidth(s)
			if n <= 0 {
				return s
			}
			return s + strings.Repeat(" ", n)
		},
		"align_right": func(s string, w int) string {
			n := w - displayWidth(s)
			if n <= 0 {
				return s
			}
			return strings.Repeat(" ", n) + s
		},
		"align_center": func(s string, w int) string {
			n := w - displayWidth(s)
			if n <= 0 {
				return s
			}
			return strings.Repeat(" ", n/2) + s
		},
	}
)
