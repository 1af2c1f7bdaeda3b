package domain

import "errors"

// Error kinds produced while fetching and parsing a feed. All of them are
// turned into speech by the renderer; none of them ends a session.
var (
	ErrTransport        = errors.New("transport failure")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrNoCurrentOffer   = errors.New("no current offer")
)

type Item struct {
	Price float64
}

// Offer is the retailer-agnostic view of a feed payload.
// Parsers never build an Offer without items.
type Offer struct {
	Title   string
	Items   []Item
	SoldOut bool
}

// Deal is the rendering-ready summary of an Offer.
type Deal struct {
	MerchantName string
	Title        string
	MinPrice     float64
	MaxPrice     float64
	IsRange      bool
	SoldOut      bool
}

// NewDeal summarizes o for merchant m. It fails with ErrMalformedPayload
// when o has no items.
func NewDeal(m Merchant, o Offer) (Deal, error) {
	if len(o.Items) == 0 {
		return Deal{}, ErrMalformedPayload
	}

	minPrice, maxPrice := o.Items[0].Price, o.Items[0].Price
	for _, it := range o.Items[1:] {
		if it.Price < minPrice {
			minPrice = it.Price
		}
		if it.Price > maxPrice {
			maxPrice = it.Price
		}
	}

	return Deal{
		MerchantName: m.SpokenName,
		Title:        o.Title,
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		IsRange:      len(o.Items) > 1,
		// meh has no sold-out state in its feed
		SoldOut: o.SoldOut && m.Family != FamilyMeh,
	}, nil
}

// Utterance is what the skill says and shows. Both texts are always the same.
type Utterance struct {
	SpokenText string
	CardText   string
}

func NewUtterance(text string) Utterance {
	return Utterance{SpokenText: text, CardText: text}
}
