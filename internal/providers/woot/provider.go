package woot

import (
	"context"
	"fmt"

	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/httpx"
)

// Provider adapts the Woot client into the internal providers.OfferProvider interface.
type Provider struct {
	C *Client
}

func (p Provider) Name() string { return "woot" }

func (p Provider) CurrentOffer(ctx context.Context, m domain.Merchant) (domain.Offer, error) {
	raw, err := p.C.FetchEvents(ctx, m.Site)
	if _, statusOnly := httpx.StatusOnly(err); err != nil && !statusOnly {
		return domain.Offer{}, err
	}

	// error statuses still carry a body worth classifying
	offer, perr := ParseOffer(raw)
	if perr != nil && err != nil {
		return domain.Offer{}, fmt.Errorf("%w (%w)", perr, err)
	}
	return offer, perr
}
