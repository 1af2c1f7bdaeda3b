// Package render turns a deal lookup outcome into the sentence the skill speaks.
package render

import (
	"errors"
	"fmt"
	"strconv"

	"bargain-buddy/internal/domain"
)

// Render builds the utterance for merchant m. err is the outcome of the feed
// lookup; when it is nil, d must hold the deal. Render never fails.
func Render(m domain.Merchant, d *domain.Deal, err error) domain.Utterance {
	return domain.NewUtterance(Text(m, d, err))
}

// Text is Render without the card wrapper.
func Text(m domain.Merchant, d *domain.Deal, err error) string {
	name := m.SpokenName

	switch {
	case errors.Is(err, domain.ErrTransport):
		return fmt.Sprintf("Sorry, I was unable to reach %s. Please try again later.", name)
	case errors.Is(err, domain.ErrMalformedPayload):
		return unexpected(name)
	case errors.Is(err, domain.ErrNoCurrentOffer):
		return fmt.Sprintf("It's a %s-off!", name)
	case err != nil, d == nil:
		return unexpected(name)
	}

	soldOut := d.SoldOut && m.Family != domain.FamilyMeh

	if d.IsRange {
		if soldOut {
			return fmt.Sprintf("Today's %s is sold out. It was a choice of %s starting at $%s.", name, d.Title, Price(d.MinPrice))
		}
		return fmt.Sprintf("Today's %s deal is a choice of %s starting at $%s.", name, d.Title, Price(d.MinPrice))
	}

	article := "a"
	if m.UseCalled {
		article = "called"
	}
	if soldOut {
		return fmt.Sprintf("Today's %s is sold out. It was %s %s for $%s.", name, article, d.Title, Price(d.MaxPrice))
	}
	return fmt.Sprintf("Today's %s deal is %s %s for $%s.", name, article, d.Title, Price(d.MaxPrice))
}

func unexpected(name string) string {
	return fmt.Sprintf("Sorry, I got an unexpected response from %s. Please try again later.", name)
}

// Price formats p in its shortest exact decimal form: 25, 24.99, 0.5.
func Price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
