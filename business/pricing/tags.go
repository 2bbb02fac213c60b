package pricing

import "pricedeck/domain"

// Fixed smart-tag catalogue. Tags are purely descriptive; each check maps to
// exactly one tag, so duplicates cannot occur.
var (
	tagNewArrival    = domain.SmartTag{Emoji: "🆕", Label: "New Arrival", Color: "#10B981"}
	tagDeclining     = domain.SmartTag{Emoji: "📉", Label: "Declining", Color: "#EF4444"}
	tagCompetitorOOS = domain.SmartTag{Emoji: "🏆", Label: "Competitor Out-of-Stock", Color: "#3B82F6"}
	tagHighDemand    = domain.SmartTag{Emoji: "🔥", Label: "High Demand", Color: "#F59E0B"}
	tagMarginWatch   = domain.SmartTag{Emoji: "⚠️", Label: "Margin Watch", Color: "#EF4444"}
	tagPriceLeader   = domain.SmartTag{Emoji: "👑", Label: "Price Leader", Color: "#C4437C"}
)

const (
	highDemandThreshold  = 1.2
	priceLeaderThreshold = 0.95
)

// GenerateTags evaluates every catalogue check independently against the
// final recommendation and its raw inputs. Output order follows check order.
func GenerateTags(snap domain.ProductSnapshot, finalPrice, marginPct float64) []domain.SmartTag {
	tags := []domain.SmartTag{}

	switch ParseLifecycle(snap.Lifecycle) {
	case LifecycleLaunch:
		tags = append(tags, tagNewArrival)
	case LifecycleDecline:
		tags = append(tags, tagDeclining)
	}

	if snap.MarketOOS {
		tags = append(tags, tagCompetitorOOS)
	}

	if snap.DemandIndex > highDemandThreshold {
		tags = append(tags, tagHighDemand)
	}

	if snap.CompetitorAvg > 0 && finalPrice < snap.CompetitorAvg*priceLeaderThreshold {
		tags = append(tags, tagPriceLeader)
	}

	if marginPct < TierFor(snap.Tier).MinMarginPct*100 {
		tags = append(tags, tagMarginWatch)
	}

	return tags
}
