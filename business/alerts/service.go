package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pricedeck/business/pricing"
	"pricedeck/domain"
	"pricedeck/pkg/logger"
)

// Thresholds for the derived alert checks.
const (
	undercutThresholdPct = 0.08
	demandSpikeThreshold = 1.3
)

// Priority base scores per severity; the magnitude of the breach is added on
// top so worse cases within a severity sort first.
const (
	priorityCritical = 100.0
	priorityWarning  = 50.0
	priorityInfo     = 10.0
)

// AlertMailer delivers critical alerts to the pricing team.
type AlertMailer interface {
	SendAlertEmail(ctx context.Context, alerts []domain.Alert) error
}

// Service derives prioritized alerts from the current snapshot set. Alerts
// are computed on demand and never persisted.
type Service struct {
	source pricing.SnapshotSource
	mailer AlertMailer
}

func NewService(source pricing.SnapshotSource, mailer AlertMailer) *Service {
	return &Service{source: source, mailer: mailer}
}

// Evaluate runs every check over every product and returns the alerts sorted
// by priority, highest first. Critical alerts are emailed; a delivery failure
// is logged but does not fail the evaluation.
func (s *Service) Evaluate(ctx context.Context) ([]domain.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	snaps, err := s.source.BuildSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("build snapshots: %w", err)
	}

	now := time.Now()
	alerts := []domain.Alert{}
	for _, snap := range snaps {
		alerts = append(alerts, checkSnapshot(snap, now)...)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].PriorityScore > alerts[j].PriorityScore
	})

	if s.mailer != nil {
		if critical := filterCritical(alerts); len(critical) > 0 {
			if err := s.mailer.SendAlertEmail(ctx, critical); err != nil {
				logger.Error("failed to send alert email", "error", err, "alerts", len(critical))
			}
		}
	}

	return alerts, nil
}

func checkSnapshot(snap domain.ProductSnapshot, now time.Time) []domain.Alert {
	var out []domain.Alert

	if alert, ok := checkMarginCrisis(snap, now); ok {
		out = append(out, alert)
	}
	if alert, ok := checkCompetitorUndercut(snap, now); ok {
		out = append(out, alert)
	}
	if alert, ok := checkDemandSpike(snap, now); ok {
		out = append(out, alert)
	}

	return out
}

// checkMarginCrisis fires when the current margin at base price sits under
// the tier's floor.
func checkMarginCrisis(snap domain.ProductSnapshot, now time.Time) (domain.Alert, bool) {
	if snap.BasePrice <= 0 {
		return domain.Alert{}, false
	}

	marginPct := (snap.BasePrice - snap.Cost) / snap.BasePrice * 100
	floorPct := pricing.TierFor(snap.Tier).MinMarginPct * 100
	if marginPct >= floorPct {
		return domain.Alert{}, false
	}

	deficit := floorPct - marginPct
	return domain.Alert{
		Type:     "margin_crisis",
		SKU:      snap.SKU,
		Severity: domain.AlertTypeCritical,
		Message: fmt.Sprintf("%s margin %.1f%% is below the %s tier floor of %.1f%%",
			snap.ProductName, marginPct, pricing.TierFor(snap.Tier).Name, floorPct),
		PriorityScore: priorityCritical + deficit,
		CreatedAt:     now,
	}, true
}

// checkCompetitorUndercut fires when our base price exceeds the competitor
// average by more than the undercut threshold.
func checkCompetitorUndercut(snap domain.ProductSnapshot, now time.Time) (domain.Alert, bool) {
	if snap.CompetitorAvg <= 0 || snap.BasePrice <= 0 {
		return domain.Alert{}, false
	}

	premium := (snap.BasePrice - snap.CompetitorAvg) / snap.CompetitorAvg
	if premium <= undercutThresholdPct {
		return domain.Alert{}, false
	}

	return domain.Alert{
		Type:     "competitor_pricing",
		SKU:      snap.SKU,
		Severity: domain.AlertTypeWarning,
		Message: fmt.Sprintf("%s is priced %.1f%% above the market average of %.2f",
			snap.ProductName, premium*100, snap.CompetitorAvg),
		PriorityScore: priorityWarning + premium*100,
		CreatedAt:     now,
	}, true
}

func checkDemandSpike(snap domain.ProductSnapshot, now time.Time) (domain.Alert, bool) {
	if snap.DemandIndex <= demandSpikeThreshold {
		return domain.Alert{}, false
	}

	return domain.Alert{
		Type:     "demand_spike",
		SKU:      snap.SKU,
		Severity: domain.AlertTypeInfo,
		Message: fmt.Sprintf("%s demand index at %.2f, consider raising the price",
			snap.ProductName, snap.DemandIndex),
		PriorityScore: priorityInfo + (snap.DemandIndex-demandSpikeThreshold)*100,
		CreatedAt:     now,
	}, true
}

func filterCritical(alerts []domain.Alert) []domain.Alert {
	var out []domain.Alert
	for _, alert := range alerts {
		if alert.Severity == domain.AlertTypeCritical {
			out = append(out, alert)
		}
	}
	return out
}
