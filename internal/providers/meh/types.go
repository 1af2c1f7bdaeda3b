package meh

import (
	"encoding/json"
	"fmt"

	"bargain-buddy/internal/domain"
)

/* -------- Response -------- */

// Fields are pointers so a missing key can be told apart from a zero value.
type CurrentResponse struct {
	Deal *Deal `json:"deal"`
}

type Deal struct {
	ID    string  `json:"id"`
	Title *string `json:"title"`
	Items []Item  `json:"items"`
	URL   string  `json:"url"`
}

type Item struct {
	ID        string   `json:"id"`
	Condition string   `json:"condition"`
	Price     *float64 `json:"price"`
}

// ParseOffer turns a current.json payload into an Offer. Meh has a single
// deal per day and no sold-out state.
func ParseOffer(raw []byte) (domain.Offer, error) {
	var resp CurrentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.Offer{}, fmt.Errorf("%w: meh: json parse error: %v", domain.ErrMalformedPayload, err)
	}

	d := resp.Deal
	switch {
	case d == nil:
		return domain.Offer{}, fmt.Errorf("%w: meh: missing deal", domain.ErrMalformedPayload)
	case d.Title == nil:
		return domain.Offer{}, fmt.Errorf("%w: meh: missing deal.title", domain.ErrMalformedPayload)
	case len(d.Items) == 0:
		return domain.Offer{}, fmt.Errorf("%w: meh: deal has no items", domain.ErrMalformedPayload)
	}

	items := make([]domain.Item, 0, len(d.Items))
	for i, it := range d.Items {
		if it.Price == nil {
			return domain.Offer{}, fmt.Errorf("%w: meh: item %d has no price", domain.ErrMalformedPayload, i)
		}
		items = append(items, domain.Item{Price: *it.Price})
	}

	return domain.Offer{
		Title: *d.Title,
		Items: items,
	}, nil
}
