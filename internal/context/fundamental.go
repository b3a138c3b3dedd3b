package context

import (
	"context"

	"github.com/quantive/confluence/internal/core"
)

// Classification cutoffs for raw fundamental figures.
const (
	peUndervalued = 15.0
	peOvervalued  = 30.0

	epsGrowthWeak   = 5.0
	epsGrowthStrong = 15.0
)

// StaticFundamentalsProvider serves configured fundamental summaries.
type StaticFundamentalsProvider struct {
	fundamentals map[string]core.Fundamentals
}

// NewStaticFundamentalsProvider creates a provider over a fixed symbol map.
func NewStaticFundamentalsProvider(fundamentals map[string]core.Fundamentals) *StaticFundamentalsProvider {
	return &StaticFundamentalsProvider{fundamentals: fundamentals}
}

// GetFundamentals returns the configured summary for the symbol, or nil
// when the symbol has no entry.
func (p *StaticFundamentalsProvider) GetFundamentals(_ context.Context, symbol string) (*core.Fundamentals, error) {
	if f, ok := p.fundamentals[symbol]; ok {
		return &f, nil
	}
	return nil, nil
}

// Classify derives valuation and growth labels from raw P/E and EPS
// growth figures. Providers that fetch raw numbers call this so every
// source labels fundamentals the same way.
func Classify(peRatio, epsGrowth float64) (core.Valuation, core.Growth) {
	valuation := core.ValuationFair
	switch {
	case peRatio > 0 && peRatio < peUndervalued:
		valuation = core.ValuationUndervalued
	case peRatio > peOvervalued:
		valuation = core.ValuationOvervalued
	}

	growth := core.GrowthModerate
	switch {
	case epsGrowth < epsGrowthWeak:
		growth = core.GrowthWeak
	case epsGrowth > epsGrowthStrong:
		growth = core.GrowthStrong
	}

	return valuation, growth
}
