// Package catalog holds the fixed set of merchants the skill supports and
// maps spoken category phrases onto them.
package catalog

import (
	"strings"

	"bargain-buddy/internal/domain"
)

// DefaultID is the merchant used when a phrase is missing or unknown.
const DefaultID = "woot"

// merchants keeps the order used when listing them to the user.
var merchants = []domain.Merchant{
	{ID: "woot", SpokenName: "Woot", Family: domain.FamilyWoot, Site: "www.woot.com"},
	{ID: "meh", SpokenName: "Meh", Family: domain.FamilyMeh},
	{ID: "home", SpokenName: "Home Woot", Family: domain.FamilyWoot, Site: "home.woot.com"},
	{ID: "electronics", SpokenName: "Electronics Woot", Family: domain.FamilyWoot, Site: "electronics.woot.com"},
	{ID: "computers", SpokenName: "Computers Woot", Family: domain.FamilyWoot, Site: "computers.woot.com"},
	{ID: "tools", SpokenName: "Tools Woot", Family: domain.FamilyWoot, Site: "tools.woot.com"},
	{ID: "sport", SpokenName: "Sport Woot", Family: domain.FamilyWoot, Site: "sport.woot.com"},
	{ID: "accessories", SpokenName: "Accessories Woot", Family: domain.FamilyWoot, Site: "accessories.woot.com"},
	{ID: "kids", SpokenName: "Kids Woot", Family: domain.FamilyWoot, Site: "kids.woot.com"},
	{ID: "sellout", SpokenName: "Sellout Woot", Family: domain.FamilyWoot, Site: "sellout.woot.com"},
	{ID: "wine", SpokenName: "Wine Woot", Family: domain.FamilyWoot, Site: "wine.woot.com"},
	{ID: "shirt", SpokenName: "Shirt Woot", Family: domain.FamilyWoot, Site: "shirt.woot.com", UseCalled: true},
}

// synonyms maps a normalized spoken phrase to a merchant id.
var synonyms = map[string]string{
	"meh": "meh",

	"home": "home",

	"electronics": "electronics",
	"electronic":  "electronics",

	"computers": "computers",
	"computer":  "computers",

	"tools":            "tools",
	"tool":             "tools",
	"tool and garden":  "tools",
	"tools and garden": "tools",

	"sports": "sport",
	"sport":  "sport",

	"accessories": "accessories",
	"accessory":   "accessories",

	"kids": "kids",
	"kid":  "kids",

	"shirts": "shirt",
	"shirt":  "shirt",

	"wines": "wine",
	"wine":  "wine",

	"sellouts":  "sellout",
	"sell outs": "sellout",
	"sellout":   "sellout",
	"sell out":  "sellout",
}

var byID = func() map[string]domain.Merchant {
	m := make(map[string]domain.Merchant, len(merchants))
	for _, mc := range merchants {
		m[mc.ID] = mc
	}
	return m
}()

// Resolve maps a spoken category phrase to a merchant. An empty or unknown
// phrase resolves to the default Woot merchant.
func Resolve(phrase string) domain.Merchant {
	if id, ok := synonyms[normalize(phrase)]; ok {
		return byID[id]
	}
	return byID[DefaultID]
}

// Lookup returns the merchant with the given canonical id.
func Lookup(id string) (domain.Merchant, bool) {
	m, ok := byID[id]
	return m, ok
}

// All returns every supported merchant.
func All() []domain.Merchant {
	out := make([]domain.Merchant, len(merchants))
	copy(out, merchants)
	return out
}

// SpokenList renders all merchant names as "A, B, and C".
func SpokenList() string {
	names := make([]string, 0, len(merchants))
	for _, m := range merchants {
		names = append(names, m.SpokenName)
	}
	return readableList(names, ", ", ", and ")
}

func readableList(items []string, sep, lastSep string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], sep) + lastSep + items[len(items)-1]
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
