package meh

import (
	"context"
	"fmt"

	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/httpx"
)

// Provider adapts the Meh client into the internal providers.OfferProvider interface.
type Provider struct {
	C *Client
}

func (p Provider) Name() string { return "meh" }

// CurrentOffer parses whatever body the feed returned, error statuses
// included; the status only shows up in the error when parsing fails.
func (p Provider) CurrentOffer(ctx context.Context, _ domain.Merchant) (domain.Offer, error) {
	raw, err := p.C.FetchCurrent(ctx)
	if _, statusOnly := httpx.StatusOnly(err); err != nil && !statusOnly {
		return domain.Offer{}, err
	}

	offer, perr := ParseOffer(raw)
	if perr != nil && err != nil {
		return domain.Offer{}, fmt.Errorf("%w (%w)", perr, err)
	}
	return offer, perr
}
