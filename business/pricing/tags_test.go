package pricing

import (
	"testing"

	"pricedeck/domain"
)

func hasTag(tags []domain.SmartTag, label string) bool {
	for _, tag := range tags {
		if tag.Label == label {
			return true
		}
	}
	return false
}

func TestGenerateTagsEmpty(t *testing.T) {
	snap := domain.ProductSnapshot{
		Tier:          "mid",
		Lifecycle:     "maturity",
		BasePrice:     10.0,
		Cost:          5.0,
		CompetitorAvg: 10.0,
		DemandIndex:   1.0,
	}

	tags := GenerateTags(snap, 10.0, 50.0)
	if tags == nil {
		t.Fatal("GenerateTags returned nil, want empty slice")
	}
	if len(tags) != 0 {
		t.Errorf("GenerateTags = %v, want none", tags)
	}
}

func TestGenerateTagsAllChecks(t *testing.T) {
	snap := domain.ProductSnapshot{
		Tier:          "mid",
		Lifecycle:     "launch",
		BasePrice:     10.0,
		Cost:          9.0,
		CompetitorAvg: 20.0,
		MarketOOS:     true,
		DemandIndex:   1.3,
	}

	// Final price 10 is under 95% of the 20 competitor average, and a 10%
	// margin sits under the mid tier's 15% floor.
	tags := GenerateTags(snap, 10.0, 10.0)

	for _, label := range []string{
		"New Arrival",
		"Competitor Out-of-Stock",
		"High Demand",
		"Price Leader",
		"Margin Watch",
	} {
		if !hasTag(tags, label) {
			t.Errorf("missing tag %q in %v", label, tags)
		}
	}
	if len(tags) != 5 {
		t.Errorf("got %d tags, want 5", len(tags))
	}
}

func TestGenerateTagsDeclining(t *testing.T) {
	snap := domain.ProductSnapshot{
		Tier:        "low",
		Lifecycle:   "decline",
		BasePrice:   10.0,
		Cost:        2.0,
		DemandIndex: 1.0,
	}

	tags := GenerateTags(snap, 8.0, 75.0)
	if !hasTag(tags, "Declining") {
		t.Errorf("missing Declining tag in %v", tags)
	}
	if hasTag(tags, "New Arrival") {
		t.Errorf("decline stage must not carry New Arrival: %v", tags)
	}
}

func TestGenerateTagsThresholdBoundaries(t *testing.T) {
	snap := domain.ProductSnapshot{
		Tier:          "low",
		Lifecycle:     "maturity",
		BasePrice:     10.0,
		Cost:          2.0,
		CompetitorAvg: 10.0,
		DemandIndex:   1.2,
	}

	// Demand exactly at 1.2 and price exactly at 95% of market are both
	// outside their strict thresholds.
	tags := GenerateTags(snap, 9.5, 50.0)
	if hasTag(tags, "High Demand") {
		t.Error("demand 1.2 must not trigger High Demand")
	}
	if hasTag(tags, "Price Leader") {
		t.Error("price at exactly 95% of market must not trigger Price Leader")
	}
}

func TestGenerateTagsNoCompetitorData(t *testing.T) {
	snap := domain.ProductSnapshot{
		Tier:        "low",
		Lifecycle:   "maturity",
		BasePrice:   10.0,
		Cost:        2.0,
		DemandIndex: 1.0,
	}

	if tags := GenerateTags(snap, 0.5, 50.0); hasTag(tags, "Price Leader") {
		t.Errorf("Price Leader must require competitor data: %v", tags)
	}
}
