package export

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"bargain-buddy/internal/render"
)

/*
<DealDigest generated="2026-10-15T07:00:00Z">
  <Deal merchant="shirt" status="sold_out">
    <name>Shirt Woot</name>
    <title>Space Cat Tee</title>
    <min_price>18</min_price>
    <max_price>18</max_price>
    <is_range>false</is_range>
    <speech>Today's Shirt Woot is sold out. It was called Space Cat Tee for $18.</speech>
  </Deal>
</DealDigest>
*/

type xmlDigest struct {
	XMLName   xml.Name  `xml:"DealDigest"`
	Generated string    `xml:"generated,attr"`
	Deals     []xmlDeal `xml:"Deal"`
}

type xmlDeal struct {
	MerchantID string `xml:"merchant,attr"`
	Status     string `xml:"status,attr"`

	Name     string `xml:"name"`
	Title    string `xml:"title,omitempty"`
	MinPrice string `xml:"min_price,omitempty"`
	MaxPrice string `xml:"max_price,omitempty"`
	IsRange  bool   `xml:"is_range"`
	Speech   string `xml:"speech"`
}

// WriteDealXML writes the digest as a single XML document.
func WriteDealXML(outPath string, rows []DigestRow, generated time.Time) error {
	out := xmlDigest{
		Generated: generated.UTC().Format(time.RFC3339),
		Deals:     make([]xmlDeal, 0, len(rows)),
	}

	for _, r := range rows {
		d := xmlDeal{
			MerchantID: r.MerchantID,
			Status:     r.Status,
			Name:       r.Merchant,
			Title:      r.Title,
			IsRange:    r.IsRange,
			Speech:     r.Speech,
		}
		if r.Status == StatusActive || r.Status == StatusSoldOut {
			d.MinPrice = render.Price(r.MinPrice)
			d.MaxPrice = render.Price(r.MaxPrice)
		}
		out.Deals = append(out.Deals, d)
	}

	b, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal xml: %w", err)
	}

	if err := os.WriteFile(outPath, append([]byte(xml.Header), b...), 0o644); err != nil {
		return fmt.Errorf("export: write xml: %w", err)
	}
	return nil
}
