package woot

import (
	"encoding/json"
	"fmt"

	"bargain-buddy/internal/domain"
)

/* -------- Response -------- */

type Event struct {
	Offers []Offer `json:"Offers"`
}

type Offer struct {
	Title   *string `json:"Title"`
	Items   []Item  `json:"Items"`
	SoldOut bool    `json:"SoldOut"`
}

type Item struct {
	SalePrice *float64 `json:"SalePrice"`
}

// ParseOffer reads the first offer of the first event. An empty event list,
// or a first event without offers, means there is no deal running right now
// and yields domain.ErrNoCurrentOffer.
func ParseOffer(raw []byte) (domain.Offer, error) {
	var events *[]Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return domain.Offer{}, fmt.Errorf("%w: woot: json parse error: %v", domain.ErrMalformedPayload, err)
	}
	if events == nil {
		return domain.Offer{}, fmt.Errorf("%w: woot: null events payload", domain.ErrMalformedPayload)
	}
	if len(*events) == 0 || len((*events)[0].Offers) == 0 {
		return domain.Offer{}, domain.ErrNoCurrentOffer
	}

	o := (*events)[0].Offers[0]
	switch {
	case o.Title == nil:
		return domain.Offer{}, fmt.Errorf("%w: woot: offer has no Title", domain.ErrMalformedPayload)
	case len(o.Items) == 0:
		return domain.Offer{}, fmt.Errorf("%w: woot: offer has no Items", domain.ErrMalformedPayload)
	}

	items := make([]domain.Item, 0, len(o.Items))
	for i, it := range o.Items {
		if it.SalePrice == nil {
			return domain.Offer{}, fmt.Errorf("%w: woot: item %d has no SalePrice", domain.ErrMalformedPayload, i)
		}
		items = append(items, domain.Item{Price: *it.SalePrice})
	}

	return domain.Offer{
		Title:   *o.Title,
		Items:   items,
		SoldOut: o.SoldOut,
	}, nil
}
