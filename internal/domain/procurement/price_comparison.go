package procurement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"
)

// Confidence is the categorical trust level of a historical price estimate,
// derived purely from the number of contributing data points.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ConfidenceFor maps a data-point count to a confidence band:
// 5 or more -> high, 2-4 -> medium, 1 or fewer -> low.
func ConfidenceFor(dataPoints int) Confidence {
	switch {
	case dataPoints >= 5:
		return ConfidenceHigh
	case dataPoints >= 2:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// RequestedMaterial is one line of a sourcing enquiry.
type RequestedMaterial struct {
	Material string
	Quantity decimal.Decimal
}

// MaterialEstimate is a supplier's estimate for one requested material.
// HasData is false when the supplier has no history for that material; the
// material then contributes nothing to the supplier's total.
type MaterialEstimate struct {
	Material           string
	RequestedQuantity  decimal.Decimal
	EstimatedUnitCost  decimal.Decimal
	EstimatedTotalCost decimal.Decimal
	Confidence         Confidence
	DataPoints         int
	HasData            bool
}

// SupplierQuote aggregates a supplier's estimates across all requested
// materials. Rank is 1-based among suppliers with historical data; zero for
// suppliers excluded from ranking.
type SupplierQuote struct {
	SupplierID         string
	SupplierName       string
	Materials          []MaterialEstimate
	TotalEstimatedCost decimal.Decimal
	TotalDataPoints    int
	HasHistoricalData  bool
	Rank               int
}

// CompareSuppliers builds one quote per supplier present in the price
// history, estimating each requested material from the mean of that
// supplier's historical unit costs. Totals sum resolvable materials only, so
// suppliers with partial data can appear artificially cheap; callers should
// treat partial comparisons cautiously.
//
// Ranking is ascending by total estimated cost among suppliers with any
// resolvable material; ties go to the higher aggregate data-point count,
// then to the lower supplier id for determinism.
func CompareSuppliers(materials []RequestedMaterial, history []entity.SupplierPricePoint) []SupplierQuote {
	// supplier -> material -> observed unit costs
	costs := make(map[string]map[string][]decimal.Decimal)
	names := make(map[string]string)
	ids := make([]string, 0)
	for _, p := range history {
		if _, ok := costs[p.SupplierID]; !ok {
			costs[p.SupplierID] = make(map[string][]decimal.Decimal)
			names[p.SupplierID] = p.SupplierName
			ids = append(ids, p.SupplierID)
		}
		costs[p.SupplierID][p.Material] = append(costs[p.SupplierID][p.Material], p.UnitCost)
	}
	sort.Strings(ids)

	quotes := make([]SupplierQuote, 0, len(ids))
	for _, id := range ids {
		quote := SupplierQuote{
			SupplierID:   id,
			SupplierName: names[id],
			Materials:    make([]MaterialEstimate, 0, len(materials)),
		}
		for _, m := range materials {
			points := costs[id][m.Material]
			est := MaterialEstimate{
				Material:          m.Material,
				RequestedQuantity: m.Quantity,
				DataPoints:        len(points),
				Confidence:        ConfidenceFor(len(points)),
			}
			if len(points) >= 1 {
				est.HasData = true
				est.EstimatedUnitCost = meanOf(points)
				est.EstimatedTotalCost = est.EstimatedUnitCost.Mul(m.Quantity)
				quote.TotalEstimatedCost = quote.TotalEstimatedCost.Add(est.EstimatedTotalCost)
				quote.TotalDataPoints += len(points)
				quote.HasHistoricalData = true
			}
			quote.Materials = append(quote.Materials, est)
		}
		quotes = append(quotes, quote)
	}

	// Rank only suppliers with at least one resolvable material.
	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i], quotes[j]
		if a.HasHistoricalData != b.HasHistoricalData {
			return a.HasHistoricalData
		}
		if !a.HasHistoricalData {
			return a.SupplierID < b.SupplierID
		}
		if !a.TotalEstimatedCost.Equal(b.TotalEstimatedCost) {
			return a.TotalEstimatedCost.LessThan(b.TotalEstimatedCost)
		}
		if a.TotalDataPoints != b.TotalDataPoints {
			return a.TotalDataPoints > b.TotalDataPoints
		}
		return a.SupplierID < b.SupplierID
	})
	rank := 0
	for i := range quotes {
		if quotes[i].HasHistoricalData {
			rank++
			quotes[i].Rank = rank
		}
	}
	return quotes
}

// meanOf returns the arithmetic mean of the observed unit costs.
func meanOf(points []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(points))))
}
