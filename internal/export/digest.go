package export

import (
	"errors"

	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/render"
)

// Digest row statuses.
const (
	StatusActive      = "active"
	StatusSoldOut     = "sold_out"
	StatusNoOffer     = "no_offer"
	StatusUnreachable = "unreachable"
	StatusUnexpected  = "unexpected"
)

// DigestRow is one merchant's deal as it stood when the digest was built.
type DigestRow struct {
	MerchantID string
	Merchant   string
	Status     string
	Title      string
	MinPrice   float64
	MaxPrice   float64
	IsRange    bool
	Speech     string
}

// NewDigestRow summarizes a lookup outcome for m. d is ignored when err is set.
func NewDigestRow(m domain.Merchant, d *domain.Deal, err error) DigestRow {
	row := DigestRow{
		MerchantID: m.ID,
		Merchant:   m.SpokenName,
		Status:     digestStatus(d, err),
		Speech:     render.Text(m, d, err),
	}
	if err == nil && d != nil {
		row.Title = d.Title
		row.MinPrice = d.MinPrice
		row.MaxPrice = d.MaxPrice
		row.IsRange = d.IsRange
	}
	return row
}

func digestStatus(d *domain.Deal, err error) string {
	switch {
	case errors.Is(err, domain.ErrTransport):
		return StatusUnreachable
	case errors.Is(err, domain.ErrMalformedPayload):
		return StatusUnexpected
	case errors.Is(err, domain.ErrNoCurrentOffer):
		return StatusNoOffer
	case err != nil, d == nil:
		return StatusUnexpected
	case d.SoldOut:
		return StatusSoldOut
	default:
		return StatusActive
	}
}
