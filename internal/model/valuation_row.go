package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ValuationRow is the persisted, flattened form of a Valuation. Input columns
// of methods other than ValuationMethod are always NULL.
type ValuationRow struct {
	ID                  uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	CompanyName         string                                `gorm:"type:varchar(255);not null"`
	ValuationMethod     string                                `gorm:"type:varchar(32);not null"`
	ExpertMode          bool                                  `gorm:"not null"`
	AnnualProfit        *float64                              `gorm:"column:annual_profit"`
	CapitalizationRate  *float64                              `gorm:"column:capitalization_rate"`
	MarketMultiplier    *float64                              `gorm:"column:market_multiplier"`
	ComparableCompanies datatypes.JSONSlice[ComparableCompany] `gorm:"column:comparable_companies;not null"`
	ReplacementCost     *float64                              `gorm:"column:replacement_cost"`
	Depreciation        *float64                              `gorm:"column:depreciation"`
	IndustryRisk        float64                               `gorm:"not null"`
	GrowthAdjustment    float64                               `gorm:"not null"`
	MarketRiskPremium   float64                               `gorm:"not null"`
	EvaluationDate      time.Time                             `gorm:"not null;index"`
	Result              *float64                              `gorm:"column:result"`
	Notes               string                                `gorm:"type:text"`
	Version             int                                   `gorm:"not null"`
	CreatedAt           time.Time                             `gorm:"autoCreateTime"`
	UpdatedAt           time.Time                             `gorm:"autoUpdateTime"`
}

func (ValuationRow) TableName() string {
	return "valuations"
}

// ToRow flattens v for storage.
func ToRow(v *Valuation) *ValuationRow {
	row := &ValuationRow{
		ID:                  v.ID,
		CompanyName:         v.CompanyName,
		ValuationMethod:     string(v.Method),
		ExpertMode:          v.ExpertMode,
		ComparableCompanies: datatypes.NewJSONSlice([]ComparableCompany{}),
		IndustryRisk:        v.Adjustments.IndustryRisk,
		GrowthAdjustment:    v.Adjustments.GrowthAdjustment,
		MarketRiskPremium:   v.Adjustments.MarketRiskPremium,
		EvaluationDate:      v.EvaluationDate,
		Result:              v.Result,
		Notes:               v.Notes,
		Version:             v.Version,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}

	switch in := v.Inputs.(type) {
	case ProfitCapitalizationInputs:
		row.AnnualProfit = in.AnnualProfit
		row.CapitalizationRate = in.CapitalizationRate
	case MarketComparisonInputs:
		row.MarketMultiplier = in.MarketMultiplier
		if in.ComparableCompanies != nil {
			row.ComparableCompanies = datatypes.NewJSONSlice(in.ComparableCompanies)
		}
	case CostBasedInputs:
		row.ReplacementCost = in.ReplacementCost
		row.Depreciation = in.Depreciation
	}

	return row
}

// ToValuation rebuilds the domain record, keeping only the inputs of the
// stored method.
func (r *ValuationRow) ToValuation() *Valuation {
	method := Method(r.ValuationMethod)

	var inputs Inputs
	switch method {
	case MethodProfitCapitalization:
		inputs = ProfitCapitalizationInputs{
			AnnualProfit:       r.AnnualProfit,
			CapitalizationRate: r.CapitalizationRate,
		}
	case MethodMarketComparison:
		in := MarketComparisonInputs{MarketMultiplier: r.MarketMultiplier}
		if len(r.ComparableCompanies) > 0 {
			in.ComparableCompanies = []ComparableCompany(r.ComparableCompanies)
		}
		inputs = in
	case MethodCostBased:
		inputs = CostBasedInputs{
			ReplacementCost: r.ReplacementCost,
			Depreciation:    r.Depreciation,
		}
	default:
		inputs = method.NewInputs()
	}

	return &Valuation{
		ID:          r.ID,
		CompanyName: r.CompanyName,
		Method:      method,
		ExpertMode:  r.ExpertMode,
		Inputs:      inputs,
		Adjustments: ExpertAdjustments{
			IndustryRisk:      r.IndustryRisk,
			GrowthAdjustment:  r.GrowthAdjustment,
			MarketRiskPremium: r.MarketRiskPremium,
		},
		EvaluationDate: r.EvaluationDate,
		Result:         r.Result,
		Notes:          r.Notes,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
