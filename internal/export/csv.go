package export

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	api "github.com/macrat/statusboard/lib-statusboard"
)

// Columns is the header of the exported incident tables.
var Columns = []string{"id", "title", "severity", "status", "created_at", "resolved_at", "affected_services"}

func resolvedAt(i api.Incident) string {
	if !i.IsResolved() {
		return ""
	}
	return i.ResolvedAt.Format(time.RFC3339)
}

// ToCSV writes incidents as CSV in the order they are given.
func ToCSV(w io.Writer, incidents []api.Incident) error {
	c := csv.NewWriter(w)

	if err := c.Write(Columns); err != nil {
		return err
	}

	for _, i := range incidents {
		err := c.Write([]string{
			i.ID,
			i.Title,
			i.Severity.String(),
			i.Status.String(),
			i.CreatedAt.Format(time.RFC3339),
			resolvedAt(i),
			strings.Join(i.AffectedServices, ", "),
		})
		if err != nil {
			return err
		}
	}

	c.Flush()

	return c.Error()
}
