package model

import (
	"strings"
	"time"

	"goodwill-valuation/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	DefaultIndustryRisk      = 1.0
	DefaultGrowthAdjustment  = 0.0
	DefaultMarketRiskPremium = 5.0
)

// ExpertAdjustments are the risk and growth knobs exposed in expert mode.
// They are stored on every record, defaulted when the caller omits them.
type ExpertAdjustments struct {
	IndustryRisk      float64
	GrowthAdjustment  float64
	MarketRiskPremium float64
}

func DefaultExpertAdjustments() ExpertAdjustments {
	return ExpertAdjustments{
		IndustryRisk:      DefaultIndustryRisk,
		GrowthAdjustment:  DefaultGrowthAdjustment,
		MarketRiskPremium: DefaultMarketRiskPremium,
	}
}

// Valuation is one stored company valuation. Result is whatever the caller
// computed; it is never derived from Inputs here.
type Valuation struct {
	ID             uuid.UUID
	CompanyName    string
	Method         Method
	ExpertMode     bool
	Inputs         Inputs
	Adjustments    ExpertAdjustments
	EvaluationDate time.Time
	Result         *float64
	Notes          string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the schema-level rules: required name, known method and an
// input variant that matches the method.
func (v *Valuation) Validate() error {
	if strings.TrimSpace(v.CompanyName) == "" {
		return apperrors.Invalid("companyName: Path `companyName` is required.")
	}
	if v.Method == "" {
		return apperrors.Invalid("valuationMethod: Path `valuationMethod` is required.")
	}
	if _, err := ParseMethod(string(v.Method)); err != nil {
		return err
	}
	if v.Inputs == nil || v.Inputs.Method() != v.Method {
		return apperrors.Invalid("inputs do not match valuationMethod " + v.Method.String())
	}
	return nil
}

// Patch lists the fields a caller may change after creation. EvaluationDate,
// Result and identity fields are immutable.
type Patch struct {
	CompanyName *string
	Method      *Method
	ExpertMode  *bool
	Notes       *string
	Inputs      InputsPatch

	IndustryRisk      *float64
	GrowthAdjustment  *float64
	MarketRiskPremium *float64
}

// Apply merges p onto v. Supplied fields overwrite, the rest are kept. A
// method change discards the previous method's inputs.
func (v *Valuation) Apply(p Patch) error {
	next := *v

	if p.CompanyName != nil {
		next.CompanyName = *p.CompanyName
	}
	if p.ExpertMode != nil {
		next.ExpertMode = *p.ExpertMode
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if p.IndustryRisk != nil {
		next.Adjustments.IndustryRisk = *p.IndustryRisk
	}
	if p.GrowthAdjustment != nil {
		next.Adjustments.GrowthAdjustment = *p.GrowthAdjustment
	}
	if p.MarketRiskPremium != nil {
		next.Adjustments.MarketRiskPremium = *p.MarketRiskPremium
	}

	if p.Method != nil && *p.Method != v.Method {
		m, err := ParseMethod(string(*p.Method))
		if err != nil {
			return err
		}
		next.Method = m
		next.Inputs = m.NewInputs()
	}

	inputs, err := p.Inputs.ApplyTo(next.Inputs)
	if err != nil {
		return err
	}
	next.Inputs = inputs

	if err := next.Validate(); err != nil {
		return err
	}
	*v = next
	return nil
}
