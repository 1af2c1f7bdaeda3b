package providers

import (
	"bargain-buddy/internal/config"
	"bargain-buddy/internal/domain"
	"bargain-buddy/internal/providers/meh"
	"bargain-buddy/internal/providers/woot"
)

// FromConfig wires the Meh and Woot feed clients from cfg.
func FromConfig(cfg config.Config) Registry {
	return Registry{
		domain.FamilyMeh:  meh.Provider{C: meh.New(cfg.MehBaseURL, cfg.MehAPIKey, cfg.FeedTimeout)},
		domain.FamilyWoot: woot.Provider{C: woot.New(cfg.WootBaseURL, cfg.WootAPIKey, cfg.FeedTimeout)},
	}
}
