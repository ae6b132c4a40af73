package endpoint

import (
	"bytes"
	"net/http"
	"time"

	"github.com/macrat/statusboard/internal/export"
)

func IncidentsCSVEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, loaded := s.View()
		if !loaded {
			notLoaded(w)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=UTF-8")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET")

		handleError(s, "incidents.csv", export.ToCSV(newFlushWriter(w), snapshot.Incidents))
	}
}

func IncidentsXlsxEndpoint(s Store, c Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, loaded := s.View()
		if !loaded {
			notLoaded(w)
			return
		}

		var buf bytes.Buffer
		if err := export.ToXlsx(&buf, snapshot.Incidents, time.Now().In(c.location())); err != nil {
			handleError(s, "incidents.xlsx", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="incidents.xlsx"`)

		_, err := buf.WriteTo(w)
		handleError(s, "incidents.xlsx", err)
	}
}
