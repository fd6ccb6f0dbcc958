package model

import (
	"fmt"

	"goodwill-valuation/pkg/apperrors"
)

// Wire names of the method-specific input fields.
const (
	FieldAnnualProfit        = "annualProfit"
	FieldCapitalizationRate  = "capitalizationRate"
	FieldMarketMultiplier    = "marketMultiplier"
	FieldComparableCompanies = "comparableCompanies"
	FieldReplacementCost     = "replacementCost"
	FieldDepreciation        = "depreciation"
)

var inputFieldOwner = map[string]Method{
	FieldAnnualProfit:        MethodProfitCapitalization,
	FieldCapitalizationRate:  MethodProfitCapitalization,
	FieldMarketMultiplier:    MethodMarketComparison,
	FieldComparableCompanies: MethodMarketComparison,
	FieldReplacementCost:     MethodCostBased,
	FieldDepreciation:        MethodCostBased,
}

// Inputs is the method-specific part of a valuation. Exactly one variant
// exists per Method and a record only ever carries the variant of its method.
type Inputs interface {
	Method() Method
	isInputs()
}

type ProfitCapitalizationInputs struct {
	AnnualProfit       *float64 `json:"annualProfit,omitempty"`
	CapitalizationRate *float64 `json:"capitalizationRate,omitempty"`
}

type MarketComparisonInputs struct {
	MarketMultiplier    *float64            `json:"marketMultiplier,omitempty"`
	ComparableCompanies []ComparableCompany `json:"comparableCompanies,omitempty"`
}

type ComparableCompany struct {
	Name       string   `json:"name,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

type CostBasedInputs struct {
	ReplacementCost *float64 `json:"replacementCost,omitempty"`
	Depreciation    *float64 `json:"depreciation,omitempty"`
}

// ExcessEarningsInputs and OptionPricingInputs carry no stored inputs yet.
type ExcessEarningsInputs struct{}

type OptionPricingInputs struct{}

func (ProfitCapitalizationInputs) Method() Method { return MethodProfitCapitalization }
func (MarketComparisonInputs) Method() Method     { return MethodMarketComparison }
func (CostBasedInputs) Method() Method            { return MethodCostBased }
func (ExcessEarningsInputs) Method() Method       { return MethodExcessEarnings }
func (OptionPricingInputs) Method() Method        { return MethodOptionPricing }

func (ProfitCapitalizationInputs) isInputs() {}
func (MarketComparisonInputs) isInputs()     {}
func (CostBasedInputs) isInputs()            {}
func (ExcessEarningsInputs) isInputs()       {}
func (OptionPricingInputs) isInputs()        {}

// InputsPatch holds method-specific fields supplied by a caller. A nil field
// was not supplied.
type InputsPatch struct {
	AnnualProfit        *float64
	CapitalizationRate  *float64
	MarketMultiplier    *float64
	ComparableCompanies *[]ComparableCompany
	ReplacementCost     *float64
	Depreciation        *float64
}

// Fields returns the wire names of the supplied fields in a stable order.
func (p InputsPatch) Fields() []string {
	var fields []string
	if p.AnnualProfit != nil {
		fields = append(fields, FieldAnnualProfit)
	}
	if p.CapitalizationRate != nil {
		fields = append(fields, FieldCapitalizationRate)
	}
	if p.MarketMultiplier != nil {
		fields = append(fields, FieldMarketMultiplier)
	}
	// an empty list carries no input and is accepted for any method
	if p.ComparableCompanies != nil && len(*p.ComparableCompanies) > 0 {
		fields = append(fields, FieldComparableCompanies)
	}
	if p.ReplacementCost != nil {
		fields = append(fields, FieldReplacementCost)
	}
	if p.Depreciation != nil {
		fields = append(fields, FieldDepreciation)
	}
	return fields
}

// ApplyTo overwrites the supplied fields on in. Supplying a field that
// belongs to another method is a validation error.
func (p InputsPatch) ApplyTo(in Inputs) (Inputs, error) {
	if in == nil {
		return nil, apperrors.Invalid("valuationMethod: Path `valuationMethod` is required.")
	}
	for _, f := range p.Fields() {
		if owner := inputFieldOwner[f]; owner != in.Method() {
			return nil, apperrors.Invalid(fmt.Sprintf("%s: field belongs to %s and cannot be used with %s", f, owner, in.Method()))
		}
	}

	switch cur := in.(type) {
	case ProfitCapitalizationInputs:
		if p.AnnualProfit != nil {
			cur.AnnualProfit = p.AnnualProfit
		}
		if p.CapitalizationRate != nil {
			cur.CapitalizationRate = p.CapitalizationRate
		}
		return cur, nil
	case MarketComparisonInputs:
		if p.MarketMultiplier != nil {
			cur.MarketMultiplier = p.MarketMultiplier
		}
		if p.ComparableCompanies != nil {
			cur.ComparableCompanies = *p.ComparableCompanies
		}
		return cur, nil
	case CostBasedInputs:
		if p.ReplacementCost != nil {
			cur.ReplacementCost = p.ReplacementCost
		}
		if p.Depreciation != nil {
			cur.Depreciation = p.Depreciation
		}
		return cur, nil
	default:
		return in, nil
	}
}
