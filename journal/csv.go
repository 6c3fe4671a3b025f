package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"trade_id", "symbol", "time", "side", "qty", "price", "realized_pnl", "fee", "note",
}

// WriteCSV renders trades as CSV with a header row. Timestamps are
// rendered as RFC3339 in UTC.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		ts := time.UnixMilli(t.TimestampMS).UTC().Format(time.RFC3339)
		err := cw.Write([]string{
			t.TradeID,
			t.Symbol,
			ts,
			t.Side,
			f(t.Qty),
			f(t.Price),
			f(t.RealizedPNL),
			f(t.Fee),
			t.Note,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
