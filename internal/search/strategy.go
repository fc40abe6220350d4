package search

import "sort"

// Tier is an ordered execution phase grouping strategies of similar
// specificity. Lower tiers always execute before higher ones.
type Tier int

const (
	TierSpecial Tier = iota
	TierBase
	TierVariation
	TierFallback
)

// String implements fmt.Stringer for log output.
func (t Tier) String() string {
	switch t {
	case TierSpecial:
		return "special"
	case TierBase:
		return "base"
	case TierVariation:
		return "variation"
	case TierFallback:
		return "fallback"
	}
	return "unknown"
}

// Strategy is a stateless policy that may produce one query for a
// request. Implementations must be pure given (context, settings): no
// hidden state shared across requests.
type Strategy interface {
	Name() string
	Tier() Tier
	Priority() int

	// Enabled gates the strategy on user settings.
	Enabled(settings Settings) bool

	// Applies checks the request-shape preconditions.
	Applies(c *Context) bool

	// Build produces the query, or nil to skip. A nil result is never
	// an error.
	Build(c *Context) *Query
}

// defaultStrategies returns the full strategy set in registration
// order; orderStrategies establishes the execution order.
func defaultStrategies() []Strategy {
	return []Strategy{
		normalizedStrategy{},
		variousArtistsStrategy{},
		baseStrategy{},
		selfTitledStrategy{},
		shortNameStrategy{},
		typeDisambiguationStrategy{},
		volumeVariationStrategy{},
		romanVariationStrategy{},
		distinctiveAlbumStrategy{},
		partialAlbumStrategy{},
		aliasStrategy{},
		wildcardStrategy{},
		trackFallbackStrategy{},
	}
}

// orderStrategies groups strategies by tier, sorted by priority
// ascending within each tier.
func orderStrategies(strategies []Strategy) map[Tier][]Strategy {
	byTier := make(map[Tier][]Strategy)
	for _, s := range strategies {
		byTier[s.Tier()] = append(byTier[s.Tier()], s)
	}
	for tier := range byTier {
		group := byTier[tier]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Priority() < group[j].Priority()
		})
	}
	return byTier
}

// tierOrder is the strict execution sequence.
var tierOrder = []Tier{TierSpecial, TierBase, TierVariation, TierFallback}
