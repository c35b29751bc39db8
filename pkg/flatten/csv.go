package flatten

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Header is the fixed CSV column order.
var Header = []string{"ImageName", "ImagePreSignedUrl", "API", "ItemID", "SubItemID", "Value", "Confidence"}

// WriteCSV writes the header and rows to w in RFC 4180 format.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.ImageName, r.ImagePreSignedURL, r.API, r.ItemID, r.SubItemID, r.Value, r.Confidence}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
