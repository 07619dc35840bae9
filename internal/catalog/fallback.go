package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/ventaroai/ventaro-server/internal/domain"
)

// fallbackProducts is the single versioned fallback catalog. It is served
// whenever the backing store is unreachable or rejects a lookup, and the
// same snapshot backs the public product listing so the two can not drift.
// Entries keep the legacy id scheme because that is what older clients
// still send at checkout.
var fallbackProducts = []domain.Product{
	{
		ID:       "1",
		Name:     "AI Tools Mastery Guide 2025",
		Price:    decimal.NewFromFloat(25.00),
		Category: domain.CategoryEbook,
		Active:   true,
	},
	{
		ID:       "2",
		Name:     "AI Prompts Arsenal 2025",
		Price:    decimal.NewFromFloat(10.00),
		Category: domain.CategoryPrompts,
		Active:   true,
	},
	{
		ID:       "3",
		Name:     "AI Business Video Guide 2025",
		Price:    decimal.NewFromFloat(50.00),
		Category: domain.CategoryVideo,
		Active:   true,
	},
	{
		ID:       "4",
		Name:     "60-Minute AI Coaching Session",
		Price:    decimal.NewFromFloat(80.00),
		Category: domain.CategoryCoaching,
		Active:   true,
	},
	{
		ID:       "5",
		Name:     "Weekly Support Contract",
		Price:    decimal.NewFromFloat(300.00),
		Category: domain.CategorySupport,
		Active:   true,
	},
	{
		ID:       "6",
		Name:     "Test Product",
		Price:    decimal.NewFromFloat(1.00),
		Category: domain.CategoryTest,
		Active:   true,
	},
}

// Fallback returns a copy of the fallback catalog snapshot.
func Fallback() []domain.Product {
	out := make([]domain.Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}

// fallbackSubset returns the fallback entries matching any of the
// requested identifiers, comparing both raw and canonical forms.
func fallbackSubset(requested []string) []domain.Product {
	want := make(map[string]struct{}, len(requested)*2)
	for _, id := range requested {
		want[id] = struct{}{}
		want[CanonicalID(id)] = struct{}{}
	}
	var out []domain.Product
	for _, p := range fallbackProducts {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
			continue
		}
		if _, ok := want[CanonicalID(p.ID)]; ok {
			out = append(out, p)
		}
	}
	return out
}
