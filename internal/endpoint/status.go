package endpoint

import (
	_ "embed"
	"fmt"
	"io"
	"net/http"
	textTemplate "text/template"
	"time"

	"github.com/goccy/go-json"
	"github.com/macrat/statusboard/internal/mcp"
)

//go:embed templates/status.html
var statusHTMLTemplate string

func StatusHTMLEndpoint(s Store, c Config) http.HandlerFunc {
	tmpl := loadHTMLTemplate(statusHTMLTemplate)

	return func(w http.ResponseWriter, r *http.Request) {
		page, err := newStatusPage(s, c, time.Now())
		if err != nil {
			handleError(s, "status.html", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=UTF-8")

		handleError(s, "status.html", tmpl.Execute(newFlushWriter(w), page))
	}
}

//go:embed templates/status.txt
var statusTextTemplate string

var statusTextTmpl = textTemplate.Must(textTemplate.New("status.txt").Funcs(templateFuncs).Parse(statusTextTemplate))

// WriteStatusText renders the text dashboard of s into w.
func WriteStatusText(w io.Writer, s Store, c Config, ascii bool) error {
	page, err := newStatusPage(s, c, time.Now())
	if err != nil {
		return err
	}
	page.ASCII = ascii

	return statusTextTmpl.Execute(w, page)
}

func StatusTextEndpoint(s Store, c Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ascii bool
		switch charset := r.URL.Query().Get("charset"); charset {
		case "", "unicode":
			ascii = false
		case "ascii":
			ascii = true
		default:
			http.Error(w, fmt.Sprintf("unsupported charset: %q", charset), http.StatusBadRequest)
			return
		}

		page, err := newStatusPage(s, c, time.Now())
		if err != nil {
			handleError(s, "status.txt", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		page.ASCII = ascii

		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")

		handleError(s, "status.txt", statusTextTmpl.Execute(newFlushWriter(w), page))
	}
}

// StatusJSONEndpoint replies the current snapshot as JSON.
// The result can be filtered by a jq query in the jq parameter.
func StatusJSONEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET")

		jq, err := mcp.ParseJQ(r.URL.Query().Get("jq"))
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid jq query: %s", err), http.StatusBadRequest)
			return
		}

		snapshot, loaded := s.View()
		input := mcp.SnapshotToMap(snapshot)
		input["loaded"] = loaded

		output, err := jq.Run(r.Context(), input)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to run jq query: %s", err), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=UTF-8")

		enc := json.NewEncoder(newFlushWriter(w))

		handleError(s, "status.json", enc.Encode(output.Result))
	}
}
