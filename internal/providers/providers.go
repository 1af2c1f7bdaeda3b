package providers

import (
	"context"
	"fmt"

	"bargain-buddy/internal/domain"
)

// OfferProvider reads the current offer of a merchant from its retailer feed.
//
// Errors wrap one of domain.ErrTransport, domain.ErrMalformedPayload or
// domain.ErrNoCurrentOffer.
type OfferProvider interface {
	Name() string
	CurrentOffer(ctx context.Context, m domain.Merchant) (domain.Offer, error)
}

// Registry picks the provider serving a merchant's feed family.
type Registry map[domain.Family]OfferProvider

func (r Registry) For(m domain.Merchant) (OfferProvider, error) {
	p, ok := r[m.Family]
	if !ok || p == nil {
		return nil, fmt.Errorf("providers: no provider for family %s", m.Family)
	}
	return p, nil
}

// CurrentDeal fetches the merchant's offer and summarizes it.
func (r Registry) CurrentDeal(ctx context.Context, m domain.Merchant) (domain.Deal, error) {
	p, err := r.For(m)
	if err != nil {
		return domain.Deal{}, err
	}

	offer, err := p.CurrentOffer(ctx, m)
	if err != nil {
		return domain.Deal{}, err
	}
	return domain.NewDeal(m, offer)
}
