package domain

// Family groups merchants that share a feed shape.
type Family int

const (
	// FamilyMeh is the single deal-of-the-day feed (api.meh.com).
	FamilyMeh Family = iota
	// FamilyWoot is the multi-category events feed (api.woot.com).
	FamilyWoot
)

func (f Family) String() string {
	switch f {
	case FamilyMeh:
		return "meh"
	case FamilyWoot:
		return "woot"
	default:
		return "unknown"
	}
}

// Merchant is one retailer/category pair the skill can read deals from.
type Merchant struct {
	ID         string // canonical id, e.g. "shirt"
	SpokenName string // "Shirt Woot"
	Family     Family
	Site       string // woot site selector, empty for meh

	// UseCalled renders "called {title}" instead of "a {title}".
	UseCalled bool
}
