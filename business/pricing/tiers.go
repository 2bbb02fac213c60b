package pricing

import "strings"

// Tier is a pricing segment with its own margin floor and change-cap policy.
type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	case TierPremium:
		return "premium"
	default:
		return "mid"
	}
}

// ParseTier resolves a raw tier label case-insensitively. Unknown or empty
// labels fall back to mid; source data is allowed to be dirty.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return TierLow
	case "mid":
		return TierMid
	case "high":
		return TierHigh
	case "premium":
		return TierPremium
	default:
		return TierMid
	}
}

// TierConfig is immutable per-tier policy, defined at process start.
type TierConfig struct {
	Name         string
	MinMarginPct float64
	ChangeCapPct float64
}

var tierConfigs = map[Tier]TierConfig{
	TierLow:     {Name: "low", MinMarginPct: 0.10, ChangeCapPct: 0.10},
	TierMid:     {Name: "mid", MinMarginPct: 0.15, ChangeCapPct: 0.05},
	TierHigh:    {Name: "high", MinMarginPct: 0.20, ChangeCapPct: 0.07},
	TierPremium: {Name: "premium", MinMarginPct: 0.25, ChangeCapPct: 0.05},
}

// TierFor returns the configuration for a raw tier label. Never errors.
func TierFor(name string) TierConfig {
	return tierConfigs[ParseTier(name)]
}
