package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"bargain-buddy/internal/render"
)

// Keep header order EXACT; downstream sheets key on column position.
var digestHeader = []string{
	"MERCHANT_ID",
	"MERCHANT",
	"STATUS",
	"TITLE",
	"MIN_PRICE",
	"MAX_PRICE",
	"IS_RANGE",
	"SPEECH",
}

// WriteDealCSV writes one row per merchant.
func WriteDealCSV(w io.Writer, rows []DigestRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(digestHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(toCSVRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDealCSVFile is WriteDealCSV into a new file at outPath.
func WriteDealCSVFile(outPath string, rows []DigestRow) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("export: create csv: %w", err)
	}
	defer f.Close()

	if err := WriteDealCSV(f, rows); err != nil {
		return fmt.Errorf("export: write csv: %w", err)
	}
	return f.Close()
}

func toCSVRow(r DigestRow) []string {
	minPrice, maxPrice := "", ""
	// prices only mean something when there is a deal
	if r.Status == StatusActive || r.Status == StatusSoldOut {
		minPrice = render.Price(r.MinPrice)
		maxPrice = render.Price(r.MaxPrice)
	}
	return []string{
		r.MerchantID,
		r.Merchant,
		r.Status,
		r.Title,
		minPrice,
		maxPrice,
		strconv.FormatBool(r.IsRange),
		r.Speech,
	}
}
