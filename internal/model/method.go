package model

import (
	"fmt"

	"goodwill-valuation/pkg/apperrors"
)

// Method is the valuation approach a record was evaluated with.
// Wire values keep the labels used by existing clients.
type Method string

const (
	MethodProfitCapitalization Method = "수익가치법"
	MethodMarketComparison     Method = "시장가치법"
	MethodCostBased            Method = "원가법"
	MethodExcessEarnings       Method = "초과이익법"
	MethodOptionPricing        Method = "옵션가치평가법"
)

// Methods lists every supported method in display order.
func Methods() []Method {
	return []Method{
		MethodProfitCapitalization,
		MethodMarketComparison,
		MethodCostBased,
		MethodExcessEarnings,
		MethodOptionPricing,
	}
}

func (m Method) IsValid() bool {
	switch m {
	case MethodProfitCapitalization, MethodMarketComparison, MethodCostBased,
		MethodExcessEarnings, MethodOptionPricing:
		return true
	default:
		return false
	}
}

// ExpertOnly reports whether the method was only offered in expert mode.
func (m Method) ExpertOnly() bool {
	return m == MethodExcessEarnings || m == MethodOptionPricing
}

func (m Method) String() string {
	return string(m)
}

// NewInputs returns the empty input variant for m, or nil when m is unknown.
func (m Method) NewInputs() Inputs {
	switch m {
	case MethodProfitCapitalization:
		return ProfitCapitalizationInputs{}
	case MethodMarketComparison:
		return MarketComparisonInputs{}
	case MethodCostBased:
		return CostBasedInputs{}
	case MethodExcessEarnings:
		return ExcessEarningsInputs{}
	case MethodOptionPricing:
		return OptionPricingInputs{}
	default:
		return nil
	}
}

func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", apperrors.Invalid(fmt.Sprintf("`%s` is not a valid enum value for path `valuationMethod`", s))
	}
	return m, nil
}
