package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/westside-labs/rentscout/internal/model"
)

// WriteXLSX writes ranked apartments as a single-sheet workbook in
// rank order.
func WriteXLSX(w io.Writer, apartments []model.RankedApartment) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Apartments")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().Value = h
	}

	for i, apt := range apartments {
		xr := sheet.AddRow()
		for _, cell := range row(i+1, apt) {
			xr.AddCell().Value = cell
		}
	}

	return eris.Wrap(file.Write(w), "export: write xlsx")
}
