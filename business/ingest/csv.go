package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pricedeck/domain"
)

var ErrMissingSKUColumn = fmt.Errorf("csv is missing a sku column")

// columnIndex maps lower-cased header names to positions.
type columnIndex map[string]int

func readHeader(r *csv.Reader) (columnIndex, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := idx["sku"]; !ok {
		return nil, ErrMissingSKUColumn
	}

	return idx, nil
}

func (c columnIndex) str(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c columnIndex) float(record []string, name string) float64 {
	raw := c.str(record, name)
	if raw == "" {
		return 0
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func (c columnIndex) boolean(record []string, name string) bool {
	switch strings.ToLower(c.str(record, name)) {
	case "true", "t", "yes", "y", "1":
		return true
	default:
		return false
	}
}

// ImportProductsCSV upserts product rows from a CSV stream. Duplicate SKUs
// within the file keep the first occurrence; a missing cost defaults to 70%
// of base price. Returns the number of rows imported.
func (s *Service) ImportProductsCSV(ctx context.Context, src io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	r := csv.NewReader(src)
	r.TrimLeadingSpace = true

	idx, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	imported, skipped := 0, 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv record: %w", err)
		}

		sku := idx.str(record, "sku")
		if sku == "" || seen[sku] {
			skipped++
			continue
		}
		seen[sku] = true

		basePrice := idx.float(record, "base_price")
		cost := idx.float(record, "cost")
		if cost <= 0 {
			cost = basePrice * defaultCostRatio
		}

		product := domain.Product{
			SKU:             sku,
			ProductName:     idx.str(record, "product_name"),
			ProductCategory: idx.str(record, "product_category"),
			Tier:            idx.str(record, "tier"),
			Lifecycle:       idx.str(record, "product_lifecycle"),
			BasePrice:       basePrice,
			Cost:            cost,
			Quantity:        idx.float(record, "quantity"),
		}

		if err := s.productRepo.UpsertBySKU(ctx, &product); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", sku, err)
		}
		imported++
	}

	logImport("products", imported, skipped)
	return imported, nil
}

// ImportCompetitorPricesCSV upserts competitor price rows. Duplicate SKUs
// keep the first occurrence; absent price columns stay zero (not observed).
func (s *Service) ImportCompetitorPricesCSV(ctx context.Context, src io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	r := csv.NewReader(src)
	r.TrimLeadingSpace = true

	idx, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	imported, skipped := 0, 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv record: %w", err)
		}

		sku := idx.str(record, "sku")
		if sku == "" || seen[sku] {
			skipped++
			continue
		}
		seen[sku] = true

		price := domain.CompetitorPrice{
			SKU:              sku,
			Competitor1Price: idx.float(record, "competitor1_price"),
			Competitor2Price: idx.float(record, "competitor2_price"),
			Competitor3Price: idx.float(record, "competitor3_price"),
			MarketOutOfStock: idx.boolean(record, "market_out_of_stock"),
		}

		if err := s.competitorRepo.UpsertBySKU(ctx, &price); err != nil {
			return imported, fmt.Errorf("upsert competitor price %s: %w", sku, err)
		}
		imported++
	}

	logImport("competitor_prices", imported, skipped)
	return imported, nil
}

// ImportOrdersCSV appends order lines. Order lines are an event log, so no
// de-duplication applies; rows without a SKU or with non-positive quantity
// are skipped.
func (s *Service) ImportOrdersCSV(ctx context.Context, src io.Reader) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	r := csv.NewReader(src)
	r.TrimLeadingSpace = true

	idx, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	imported, skipped := 0, 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read csv record: %w", err)
		}

		sku := idx.str(record, "sku")
		quantity := idx.float(record, "quantity")
		if sku == "" || quantity <= 0 {
			skipped++
			continue
		}

		line := domain.OrderLine{
			SKU:       sku,
			Quantity:  quantity,
			PriceEach: idx.float(record, "price_each"),
		}

		if err := s.orderRepo.Create(ctx, &line); err != nil {
			return imported, fmt.Errorf("create order line: %w", err)
		}
		imported++
	}

	logImport("order_lines", imported, skipped)
	return imported, nil
}
