// Package categorizer assigns a category to a transaction by keyword
// substring matching over its description.
//
// Categories are tried in declaration order and, within a category, keywords
// in declaration order. The first hit wins, so overlapping keywords resolve to
// whichever category was declared first.
package categorizer

import (
	"strings"

	"github.com/monsTa-b0y/exp-dashboard/internal/config"
)

const (
	DefaultFallback    = "Other"
	DefaultMoneyMarker = "Money Received"
)

type rule struct {
	category string
	keywords []string
}

// Categorizer is immutable after construction and safe for concurrent use.
type Categorizer struct {
	rules       []rule
	fallback    string
	moneyMarker string
	valid       map[string]bool
}

// Option customizes a Categorizer.
type Option func(*Categorizer)

// WithFallback sets the category returned when nothing matches.
func WithFallback(category string) Option {
	return func(c *Categorizer) {
		if category != "" {
			c.fallback = category
		}
	}
}

// WithMoneyReceivedMarker sets the tag substring that marks incoming money
// when no keyword matched. The marker doubles as the resulting category.
func WithMoneyReceivedMarker(marker string) Option {
	return func(c *Categorizer) {
		c.moneyMarker = marker
	}
}

// New builds a categorizer from an ordered keyword table. Keywords are
// lowercased; empty keywords are dropped.
func New(rules []config.CategoryRule, opts ...Option) *Categorizer {
	c := &Categorizer{
		fallback:    DefaultFallback,
		moneyMarker: DefaultMoneyMarker,
		valid:       make(map[string]bool, len(rules)),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, r := range rules {
		name := strings.TrimSpace(r.Name)
		if name == "" || c.valid[name] {
			continue
		}
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			kw = strings.ToLower(kw)
			if kw == "" {
				continue
			}
			kws = append(kws, kw)
		}
		c.rules = append(c.rules, rule{category: name, keywords: kws})
		c.valid[name] = true
	}
	// The tag fallback can produce the marker on its own, so it must be
	// assignable even when the table does not declare it.
	if c.moneyMarker != "" && !c.valid[c.moneyMarker] {
		c.rules = append(c.rules, rule{category: c.moneyMarker})
		c.valid[c.moneyMarker] = true
	}
	return c
}

// FromConfig builds a categorizer from application configuration.
func FromConfig(cfg *config.Config) *Categorizer {
	return New(cfg.Categories,
		WithFallback(cfg.DefaultCategory),
		WithMoneyReceivedMarker(cfg.MoneyReceivedTag),
	)
}

// Categorize returns the category for a transaction. tags must be the tag
// string as uploaded, before noise markers are stripped.
func (c *Categorizer) Categorize(details, tags string) string {
	lower := strings.ToLower(details)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	if c.moneyMarker != "" && strings.Contains(tags, c.moneyMarker) {
		return c.moneyMarker
	}
	return c.fallback
}

// Categories returns the closed set of assignable categories in declaration
// order. The fallback category is not part of it.
func (c *Categorizer) Categories() []string {
	out := make([]string, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.category
	}
	return out
}

// Keywords returns a copy of the keywords for one category.
func (c *Categorizer) Keywords(category string) []string {
	for _, r := range c.rules {
		if r.category == category {
			return append([]string(nil), r.keywords...)
		}
	}
	return nil
}

// Valid reports whether category is a member of the closed set.
func (c *Categorizer) Valid(category string) bool {
	return c.valid[category]
}

// Fallback returns the category given to unmatched transactions.
func (c *Categorizer) Fallback() string {
	return c.fallback
}
