// Package pricing converts matched line items into a priced commercial
// quote.
package pricing

import "github.com/prasad/rfp-pilot/internal/types"

// RateCard holds the fixed service rates applied to every quote.
type RateCard struct {
	Testing   float64
	Logistics float64
	TaxRate   float64
}

// DefaultRateCard returns the demo rate card.
func DefaultRateCard() RateCard {
	return RateCard{
		Testing:   5000,
		Logistics: 2000,
		TaxRate:   0.18,
	}
}

// Calculator prices line items using catalog prices with a static SKU
// price table as fallback.
type Calculator struct {
	rates RateCard
	// priceTable covers SKUs whose recommendation carries no price, e.g.
	// externally-sourced items. Unknown SKUs price at zero.
	priceTable map[string]float64
}

// New creates a Calculator with the given rate card.
func New(rates RateCard) *Calculator {
	return &Calculator{
		rates: rates,
		priceTable: map[string]float64{
			"CABLE-A1": 4500.0,
			"CABLE-B2": 850.0,
		},
	}
}

// Price appends pricing to each line item and aggregates the commercial
// summary. The input items are priced in place and returned as part of the
// final quote alongside the pass-through technical and strategic sections.
func (c *Calculator) Price(items []types.LineItem, analysis *types.StrategicAnalysis, technicalSummary string) types.QuoteResult {
	subtotal := 0.0

	priced := make([]types.LineItem, 0, len(items))
	for _, item := range items {
		unitPrice := item.Recommendation.Price
		if unitPrice == 0 {
			unitPrice = c.priceTable[item.Recommendation.SKU]
		}

		qty := item.Requirement.Quantity
		if qty <= 0 {
			qty = 1
		}

		serviceCost := c.rates.Testing
		total := unitPrice*qty + serviceCost
		subtotal += total

		item.Pricing = &types.Pricing{
			UnitPrice:     unitPrice,
			Quantity:      qty,
			ServiceAddOns: serviceCost,
			TotalPrice:    total,
		}
		priced = append(priced, item)
	}

	return types.QuoteResult{
		LineItems: priced,
		CommercialSummary: types.CommercialSummary{
			Subtotal:   subtotal,
			Tax:        subtotal * c.rates.TaxRate,
			GrandTotal: subtotal * (1 + c.rates.TaxRate),
		},
		TechnicalSummary:  technicalSummary,
		StrategicAnalysis: analysis,
	}
}
