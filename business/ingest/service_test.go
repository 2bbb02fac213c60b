package ingest

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"gorm.io/gorm"

	"pricedeck/domain"
)

type fakeProductRepo struct {
	products map[string]domain.Product
	order    []string
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		repo.products[p.SKU] = p
		repo.order = append(repo.order, p.SKU)
	}
	return repo
}

func (r *fakeProductRepo) FetchAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.order))
	for _, sku := range r.order {
		out = append(out, r.products[sku])
	}
	return out, nil
}

func (r *fakeProductRepo) FetchBySKU(ctx context.Context, sku string) (domain.Product, error) {
	p, ok := r.products[sku]
	if !ok {
		return domain.Product{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) UpsertBySKU(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.SKU]; !ok {
		r.order = append(r.order, product.SKU)
	}
	r.products[product.SKU] = *product
	return nil
}

type fakeCompetitorRepo struct {
	rows map[string]domain.CompetitorPrice
}

func newFakeCompetitorRepo(rows ...domain.CompetitorPrice) *fakeCompetitorRepo {
	repo := &fakeCompetitorRepo{rows: make(map[string]domain.CompetitorPrice)}
	for _, row := range rows {
		repo.rows[row.SKU] = row
	}
	return repo
}

func (r *fakeCompetitorRepo) FetchAll(ctx context.Context) ([]domain.CompetitorPrice, error) {
	out := make([]domain.CompetitorPrice, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeCompetitorRepo) UpsertBySKU(ctx context.Context, price *domain.CompetitorPrice) error {
	r.rows[price.SKU] = *price
	return nil
}

type fakeOrderRepo struct {
	lines []domain.OrderLine
}

func (r *fakeOrderRepo) FetchAll(ctx context.Context) ([]domain.OrderLine, error) {
	return r.lines, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, line *domain.OrderLine) error {
	r.lines = append(r.lines, *line)
	return nil
}

func TestBuildSnapshotsJoinsAndDefaults(t *testing.T) {
	products := newFakeProductRepo(
		domain.Product{SKU: "A", ProductName: "Degreaser", ProductCategory: "chemicals", Tier: "mid", Lifecycle: "maturity", BasePrice: 20.0, Cost: 12.0},
		domain.Product{SKU: "B", ProductName: "Mop", ProductCategory: "equipment", Tier: "low", Lifecycle: "growth", BasePrice: 10.0},
	)
	competitors := newFakeCompetitorRepo(
		domain.CompetitorPrice{SKU: "A", Competitor1Price: 19.0, Competitor2Price: 21.0, MarketOutOfStock: true},
	)
	orders := &fakeOrderRepo{lines: []domain.OrderLine{
		{SKU: "A", Quantity: 100},
		{SKU: "B", Quantity: 50},
	}}

	svc := NewService(products, competitors, orders)
	snaps, err := svc.BuildSnapshots(context.Background())
	if err != nil {
		t.Fatalf("BuildSnapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}

	a, b := snaps[0], snaps[1]

	// A has two observed competitor prices and the OOS flag set.
	if a.CompetitorAvg != 20.0 {
		t.Errorf("A CompetitorAvg = %v, want 20.0", a.CompetitorAvg)
	}
	if !a.MarketOOS {
		t.Error("A MarketOOS = false, want true")
	}
	// 100 units is the max, so demand caps at 1.5.
	if a.DemandIndex != 1.5 {
		t.Errorf("A DemandIndex = %v, want 1.5", a.DemandIndex)
	}
	if a.Cost != 12.0 {
		t.Errorf("A Cost = %v, want 12.0", a.Cost)
	}

	// B has no competitor row and no explicit cost.
	if b.CompetitorAvg != 10.0 {
		t.Errorf("B CompetitorAvg = %v, want base-price fallback 10.0", b.CompetitorAvg)
	}
	if b.MarketOOS {
		t.Error("B MarketOOS = true, want false")
	}
	if math.Abs(b.Cost-7.0) > 1e-9 {
		t.Errorf("B Cost = %v, want 0.70 of base", b.Cost)
	}
	// 50 of 100 units: 0.5 + 0.5 = 1.0.
	if b.DemandIndex != 1.0 {
		t.Errorf("B DemandIndex = %v, want 1.0", b.DemandIndex)
	}
}

func TestBuildSnapshotsNoOrders(t *testing.T) {
	products := newFakeProductRepo(
		domain.Product{SKU: "A", Tier: "mid", BasePrice: 20.0, Cost: 12.0},
	)
	svc := NewService(products, newFakeCompetitorRepo(), &fakeOrderRepo{})

	snaps, err := svc.BuildSnapshots(context.Background())
	if err != nil {
		t.Fatalf("BuildSnapshots: %v", err)
	}
	if snaps[0].DemandIndex != 1.0 {
		t.Errorf("DemandIndex = %v, want neutral 1.0 without orders", snaps[0].DemandIndex)
	}
}

func TestBuildSnapshotDemandFloor(t *testing.T) {
	// A tiny seller against a dominant one still floors at 0.5... the index
	// formula adds 0.5 before clamping, so the practical floor is just above.
	products := newFakeProductRepo(
		domain.Product{SKU: "A", Tier: "mid", BasePrice: 20.0, Cost: 12.0},
		domain.Product{SKU: "B", Tier: "mid", BasePrice: 20.0, Cost: 12.0},
	)
	orders := &fakeOrderRepo{lines: []domain.OrderLine{
		{SKU: "A", Quantity: 1000},
		{SKU: "B", Quantity: 1},
	}}
	svc := NewService(products, newFakeCompetitorRepo(), orders)

	snap, err := svc.BuildSnapshot(context.Background(), "B")
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if snap.DemandIndex < 0.5 || snap.DemandIndex > 0.51 {
		t.Errorf("DemandIndex = %v, want just above the 0.5 floor", snap.DemandIndex)
	}
}

func TestBuildSnapshotNotFound(t *testing.T) {
	svc := NewService(newFakeProductRepo(), newFakeCompetitorRepo(), &fakeOrderRepo{})

	_, err := svc.BuildSnapshot(context.Background(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestImportProductsCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,product_name,product_category,tier,product_lifecycle,base_price,cost,quantity",
		"P-1,Glass Cleaner,chemicals,mid,maturity,12.50,8.00,40",
		"P-2,Hand Towels,paper,low,growth,6.00,,120",
		"P-1,Glass Cleaner DUPLICATE,chemicals,mid,maturity,99.00,1.00,1",
		",No SKU,other,low,maturity,1.00,1.00,1",
	}, "\n")

	products := newFakeProductRepo()
	svc := NewService(products, newFakeCompetitorRepo(), &fakeOrderRepo{})

	n, err := svc.ImportProductsCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportProductsCSV: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d rows, want 2", n)
	}

	// Duplicate SKUs keep the first occurrence.
	p1 := products.products["P-1"]
	if p1.ProductName != "Glass Cleaner" || p1.BasePrice != 12.50 {
		t.Errorf("P-1 = %+v, want first occurrence kept", p1)
	}

	// Missing cost defaults to 70% of base.
	p2 := products.products["P-2"]
	if math.Abs(p2.Cost-4.20) > 1e-9 {
		t.Errorf("P-2 Cost = %v, want 4.20", p2.Cost)
	}
}

func TestImportProductsCSVMissingSKUColumn(t *testing.T) {
	svc := NewService(newFakeProductRepo(), newFakeCompetitorRepo(), &fakeOrderRepo{})

	_, err := svc.ImportProductsCSV(context.Background(), strings.NewReader("name,price\nfoo,1"))
	if !errors.Is(err, ErrMissingSKUColumn) {
		t.Errorf("err = %v, want ErrMissingSKUColumn", err)
	}
}

func TestImportCompetitorPricesCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,competitor1_price,competitor2_price,competitor3_price,market_out_of_stock",
		"P-1,11.90,12.80,,true",
		"P-2,5.50,,,false",
	}, "\n")

	competitors := newFakeCompetitorRepo()
	svc := NewService(newFakeProductRepo(), competitors, &fakeOrderRepo{})

	n, err := svc.ImportCompetitorPricesCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCompetitorPricesCSV: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d rows, want 2", n)
	}

	row := competitors.rows["P-1"]
	if !row.MarketOutOfStock || row.Competitor2Price != 12.80 || row.Competitor3Price != 0 {
		t.Errorf("P-1 = %+v", row)
	}
}

func TestImportOrdersCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,quantity,price_each",
		"P-1,3,12.50",
		"P-1,2,12.50",
		"P-2,0,6.00",
		",5,1.00",
	}, "\n")

	orders := &fakeOrderRepo{}
	svc := NewService(newFakeProductRepo(), newFakeCompetitorRepo(), orders)

	n, err := svc.ImportOrdersCSV(context.Background(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportOrdersCSV: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d rows, want 2 (zero-quantity and blank SKU skipped)", n)
	}
	if len(orders.lines) != 2 {
		t.Fatalf("stored %d lines, want 2", len(orders.lines))
	}
	if orders.lines[0].SKU != "P-1" || orders.lines[0].Quantity != 3 {
		t.Errorf("first line = %+v", orders.lines[0])
	}
}
