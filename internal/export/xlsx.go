package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	api "github.com/macrat/statusboard/lib-statusboard"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the sheet that ToXlsx makes.
const SheetName = "incidents"

func excelPos(x, y uint) string {
	pos, err := excelize.CoordinatesToCellName(int(x+1), int(y+1))
	if err != nil {
		panic(err)
	}
	return pos
}

var severityColors = map[api.Severity]string{
	api.SeverityCritical: "FF2D00",
	api.SeverityMajor:    "DDA100",
	api.SeverityMinor:    "C0C0C0",
}

// ToXlsx writes incidents as an Excel workbook.
// The times are written in the location of createdAt.
func ToXlsx(w io.Writer, incidents []api.Incident, createdAt time.Time) error {
	xlsx := excelize.NewFile()
	defer xlsx.Close()
	if err := xlsx.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	xlsx.SetAppProps(&excelize.AppProperties{
		Application: "statusboard",
	})
	xlsx.SetDocProps(&excelize.DocProperties{
		Created:        createdAt.Format(time.RFC3339),
		Modified:       createdAt.Format(time.RFC3339),
		Creator:        "statusboard",
		LastModifiedBy: "statusboard",
	})

	zone, _ := createdAt.Zone()
	for col, name := range Columns {
		if strings.HasSuffix(name, "_at") {
			name = fmt.Sprintf("%s (%s)", name, zone)
		}
		xlsx.SetCellStr(SheetName, excelPos(uint(col), 0), name)
	}

	datefmt := "yyyy-mm-dd hh:mm:ss"

	setValue := func(x, y uint, value any, color string, style int, format *string) {
		pos := excelPos(x, y)
		xlsx.SetCellValue(SheetName, pos, value)
		sid, _ := xlsx.NewStyle(&excelize.Style{
			CustomNumFmt: format,
			Border:       []excelize.Border{{Type: "bottom", Style: style, Color: color}},
		})
		xlsx.SetCellStyle(SheetName, pos, pos, sid)
	}

	for i, inc := range incidents {
		row := uint(i + 1)
		color := severityColors[inc.Severity]

		setValue(0, row, inc.ID, color, 1, nil)
		setValue(1, row, inc.Title, color, 1, nil)
		setValue(2, row, inc.Severity.String(), color, 5, nil)
		setValue(3, row, inc.Status.String(), color, 1, nil)
		setValue(4, row, inc.CreatedAt.In(createdAt.Location()), color, 1, &datefmt)
		if inc.IsResolved() {
			setValue(5, row, inc.ResolvedAt.In(createdAt.Location()), color, 1, &datefmt)
		} else {
			setValue(5, row, "", color, 1, nil)
		}
		setValue(6, row, strings.Join(inc.AffectedServices, ", "), color, 1, nil)
	}

	err := xlsx.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return err
	}

	xlsx.SetColWidth(SheetName, "A", "A", 12)
	xlsx.SetColWidth(SheetName, "B", "B", 40)
	xlsx.SetColWidth(SheetName, "E", "F", 20)
	xlsx.SetColWidth(SheetName, "G", "G", 30)

	if err := xlsx.AutoFilter(SheetName, "A1:"+excelPos(uint(len(Columns)-1), 0), nil); err != nil {
		return err
	}

	return xlsx.Write(w)
}
