package alerts

import (
	"context"
	"errors"
	"testing"

	"pricedeck/domain"
)

type stubSource struct {
	snaps []domain.ProductSnapshot
}

func (s *stubSource) BuildSnapshots(ctx context.Context) ([]domain.ProductSnapshot, error) {
	return s.snaps, nil
}

func (s *stubSource) BuildSnapshot(ctx context.Context, sku string) (domain.ProductSnapshot, error) {
	for _, snap := range s.snaps {
		if snap.SKU == sku {
			return snap, nil
		}
	}
	return domain.ProductSnapshot{}, errors.New("product not found")
}

type stubMailer struct {
	sent [][]domain.Alert
	err  error
}

func (m *stubMailer) SendAlertEmail(ctx context.Context, alerts []domain.Alert) error {
	m.sent = append(m.sent, alerts)
	return m.err
}

func alertSnapshots() []domain.ProductSnapshot {
	return []domain.ProductSnapshot{
		{
			// Margin 10% against a mid floor of 15%: critical.
			SKU:           "A",
			ProductName:   "Degreaser",
			Tier:          "mid",
			BasePrice:     10.0,
			Cost:          9.0,
			CompetitorAvg: 10.0,
			DemandIndex:   1.0,
		},
		{
			// Priced 25% over market: warning.
			SKU:           "B",
			ProductName:   "Mop",
			Tier:          "low",
			BasePrice:     12.5,
			Cost:          5.0,
			CompetitorAvg: 10.0,
			DemandIndex:   1.0,
		},
		{
			// Demand index 1.4: info.
			SKU:           "C",
			ProductName:   "Vacuum",
			Tier:          "high",
			BasePrice:     300.0,
			Cost:          150.0,
			CompetitorAvg: 310.0,
			DemandIndex:   1.4,
		},
		{
			// Healthy on every check.
			SKU:           "D",
			ProductName:   "Scrubber",
			Tier:          "low",
			BasePrice:     20.0,
			Cost:          10.0,
			CompetitorAvg: 20.0,
			DemandIndex:   1.0,
		},
	}
}

func TestEvaluateChecksAndOrder(t *testing.T) {
	svc := NewService(&stubSource{snaps: alertSnapshots()}, nil)

	alerts, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 3 {
		t.Fatalf("got %d alerts, want 3: %+v", len(alerts), alerts)
	}

	// Priority order: critical margin, then warning undercut, then info spike.
	if alerts[0].Type != "margin_crisis" || alerts[0].SKU != "A" || alerts[0].Severity != domain.AlertTypeCritical {
		t.Errorf("alerts[0] = %+v, want margin crisis for A", alerts[0])
	}
	if alerts[1].Type != "competitor_pricing" || alerts[1].SKU != "B" || alerts[1].Severity != domain.AlertTypeWarning {
		t.Errorf("alerts[1] = %+v, want competitor pricing for B", alerts[1])
	}
	if alerts[2].Type != "demand_spike" || alerts[2].SKU != "C" || alerts[2].Severity != domain.AlertTypeInfo {
		t.Errorf("alerts[2] = %+v, want demand spike for C", alerts[2])
	}

	for i := 1; i < len(alerts); i++ {
		if alerts[i].PriorityScore > alerts[i-1].PriorityScore {
			t.Errorf("alerts not sorted by priority: %v after %v",
				alerts[i].PriorityScore, alerts[i-1].PriorityScore)
		}
	}
}

func TestEvaluateThresholdBoundaries(t *testing.T) {
	svc := NewService(&stubSource{snaps: []domain.ProductSnapshot{
		{
			// 7.5% over market sits inside the allowed band.
			SKU:           "E",
			ProductName:   "Broom",
			Tier:          "low",
			BasePrice:     10.75,
			Cost:          5.0,
			CompetitorAvg: 10.0,
			DemandIndex:   1.3,
		},
	}}, nil)

	alerts, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("got alerts at the thresholds: %+v", alerts)
	}
}

func TestEvaluateEmailsCriticalOnly(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewService(&stubSource{snaps: alertSnapshots()}, mailer)

	if _, err := svc.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if len(mailer.sent[0]) != 1 || mailer.sent[0][0].Severity != domain.AlertTypeCritical {
		t.Errorf("emailed alerts = %+v, want the single critical one", mailer.sent[0])
	}
}

func TestEvaluateNoEmailWithoutCritical(t *testing.T) {
	mailer := &stubMailer{}
	svc := NewService(&stubSource{snaps: []domain.ProductSnapshot{
		{SKU: "D", ProductName: "Scrubber", Tier: "low", BasePrice: 20.0, Cost: 10.0, CompetitorAvg: 20.0, DemandIndex: 1.0},
	}}, mailer)

	if _, err := svc.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(mailer.sent))
	}
}

func TestEvaluateMailerFailureDoesNotFail(t *testing.T) {
	mailer := &stubMailer{err: errors.New("smtp down")}
	svc := NewService(&stubSource{snaps: alertSnapshots()}, mailer)

	alerts, err := svc.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(alerts) != 3 {
		t.Errorf("got %d alerts, want 3 despite mail failure", len(alerts))
	}
}
