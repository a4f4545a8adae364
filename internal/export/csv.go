package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/westside-labs/rentscout/internal/model"
)

// WriteCSV writes ranked apartments as CSV, one row per apartment in
// rank order.
func WriteCSV(w io.Writer, apartments []model.RankedApartment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for i, apt := range apartments {
		if err := cw.Write(row(i+1, apt)); err != nil {
			return eris.Wrapf(err, "export: write csv row %d", i+1)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
