package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"goodwill-valuation/internal/model"
	"goodwill-valuation/pkg/apperrors"
)

// ValuationRequest is the flat create body accepted by POST.
type ValuationRequest struct {
	CompanyName         string                    `json:"companyName" validate:"required"`
	ValuationMethod     string                    `json:"valuationMethod" validate:"required,oneof=수익가치법 시장가치법 원가법 초과이익법 옵션가치평가법"`
	ExpertMode          *bool                     `json:"expertMode"`
	AnnualProfit        *float64                  `json:"annualProfit"`
	CapitalizationRate  *float64                  `json:"capitalizationRate"`
	MarketMultiplier    *float64                  `json:"marketMultiplier"`
	ComparableCompanies []model.ComparableCompany `json:"comparableCompanies"`
	ReplacementCost     *float64                  `json:"replacementCost"`
	Depreciation        *float64                  `json:"depreciation"`
	IndustryRisk        *float64                  `json:"industryRisk"`
	GrowthAdjustment    *float64                  `json:"growthAdjustment"`
	MarketRiskPremium   *float64                  `json:"marketRiskPremium"`
	EvaluationDate      *time.Time                `json:"evaluationDate"`
	Result              *float64                  `json:"result"`
	Notes               string                    `json:"notes"`
}

// ToModel builds the domain record. EvaluationDate stays zero when omitted
// so the service can stamp the creation time.
func (r *ValuationRequest) ToModel() (*model.Valuation, error) {
	method, err := model.ParseMethod(r.ValuationMethod)
	if err != nil {
		return nil, err
	}

	inputs, err := inputsPatch(r.AnnualProfit, r.CapitalizationRate, r.MarketMultiplier,
		r.ComparableCompanies, r.ReplacementCost, r.Depreciation).ApplyTo(method.NewInputs())
	if err != nil {
		return nil, err
	}

	adjustments := model.DefaultExpertAdjustments()
	if r.IndustryRisk != nil {
		adjustments.IndustryRisk = *r.IndustryRisk
	}
	if r.GrowthAdjustment != nil {
		adjustments.GrowthAdjustment = *r.GrowthAdjustment
	}
	if r.MarketRiskPremium != nil {
		adjustments.MarketRiskPremium = *r.MarketRiskPremium
	}

	v := &model.Valuation{
		CompanyName: r.CompanyName,
		Method:      method,
		ExpertMode:  r.ExpertMode != nil && *r.ExpertMode,
		Inputs:      inputs,
		Adjustments: adjustments,
		Result:      r.Result,
		Notes:       r.Notes,
	}
	if r.EvaluationDate != nil {
		v.EvaluationDate = *r.EvaluationDate
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// ValuationPatchRequest mirrors the fields PATCH may change.
type ValuationPatchRequest struct {
	CompanyName         *string                   `json:"companyName"`
	ValuationMethod     *string                   `json:"valuationMethod"`
	ExpertMode          *bool                     `json:"expertMode"`
	AnnualProfit        *float64                  `json:"annualProfit"`
	CapitalizationRate  *float64                  `json:"capitalizationRate"`
	MarketMultiplier    *float64                  `json:"marketMultiplier"`
	ComparableCompanies []model.ComparableCompany `json:"comparableCompanies"`
	ReplacementCost     *float64                  `json:"replacementCost"`
	Depreciation        *float64                  `json:"depreciation"`
	IndustryRisk        *float64                  `json:"industryRisk"`
	GrowthAdjustment    *float64                  `json:"growthAdjustment"`
	MarketRiskPremium   *float64                  `json:"marketRiskPremium"`
	Notes               *string                   `json:"notes"`
}

// patchableFields is keyed by lower-cased wire name; JSON field matching
// ignores case, so the allow-list does too.
var patchableFields = lowerKeys(map[string]struct{}{
	"companyName":                  {},
	"valuationMethod":              {},
	"expertMode":                   {},
	model.FieldAnnualProfit:        {},
	model.FieldCapitalizationRate:  {},
	model.FieldMarketMultiplier:    {},
	model.FieldComparableCompanies: {},
	model.FieldReplacementCost:     {},
	model.FieldDepreciation:        {},
	"industryRisk":                 {},
	"growthAdjustment":             {},
	"marketRiskPremium":            {},
	"notes":                        {},
})

func lowerKeys(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[strings.ToLower(k)] = struct{}{}
	}
	return out
}

// ParseValuationPatch decodes a PATCH body. Keys outside the allow-list,
// such as evaluationDate or result, are rejected by name. An empty body
// changes nothing.
func ParseValuationPatch(body []byte) (model.Patch, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return model.Patch{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.Patch{}, apperrors.Invalid(err.Error())
	}

	var rejected []string
	for key := range raw {
		if _, ok := patchableFields[strings.ToLower(key)]; !ok {
			rejected = append(rejected, key)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return model.Patch{}, apperrors.Invalid(fmt.Sprintf("fields cannot be updated: %s", strings.Join(rejected, ", ")))
	}

	var req ValuationPatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return model.Patch{}, apperrors.Invalid(err.Error())
	}
	return req.ToPatch(), nil
}

func (r *ValuationPatchRequest) ToPatch() model.Patch {
	p := model.Patch{
		CompanyName:       r.CompanyName,
		ExpertMode:        r.ExpertMode,
		Notes:             r.Notes,
		IndustryRisk:      r.IndustryRisk,
		GrowthAdjustment:  r.GrowthAdjustment,
		MarketRiskPremium: r.MarketRiskPremium,
		Inputs: inputsPatch(r.AnnualProfit, r.CapitalizationRate, r.MarketMultiplier,
			r.ComparableCompanies, r.ReplacementCost, r.Depreciation),
	}
	if r.ValuationMethod != nil {
		m := model.Method(*r.ValuationMethod)
		p.Method = &m
	}
	return p
}

func inputsPatch(annualProfit, capRate, multiplier *float64, comparables []model.ComparableCompany, replacement, depreciation *float64) model.InputsPatch {
	p := model.InputsPatch{
		AnnualProfit:       annualProfit,
		CapitalizationRate: capRate,
		MarketMultiplier:   multiplier,
		ReplacementCost:    replacement,
		Depreciation:       depreciation,
	}
	if comparables != nil {
		p.ComparableCompanies = &comparables
	}
	return p
}

// ValuationResponse is the flat JSON shape of a stored record. Input fields
// of other methods are omitted.
type ValuationResponse struct {
	ID                  string                    `json:"id"`
	CompanyName         string                    `json:"companyName"`
	ValuationMethod     string                    `json:"valuationMethod"`
	ExpertMode          bool                      `json:"expertMode"`
	AnnualProfit        *float64                  `json:"annualProfit,omitempty"`
	CapitalizationRate  *float64                  `json:"capitalizationRate,omitempty"`
	MarketMultiplier    *float64                  `json:"marketMultiplier,omitempty"`
	ComparableCompanies []model.ComparableCompany `json:"comparableCompanies,omitempty"`
	ReplacementCost     *float64                  `json:"replacementCost,omitempty"`
	Depreciation        *float64                  `json:"depreciation,omitempty"`
	IndustryRisk        float64                   `json:"industryRisk"`
	GrowthAdjustment    float64                   `json:"growthAdjustment"`
	MarketRiskPremium   float64                   `json:"marketRiskPremium"`
	EvaluationDate      time.Time                 `json:"evaluationDate"`
	Result              *float64                  `json:"result,omitempty"`
	Notes               string                    `json:"notes,omitempty"`
	Version             int                       `json:"version"`
	CreatedAt           time.Time                 `json:"createdAt"`
	UpdatedAt           time.Time                 `json:"updatedAt"`
}

func NewValuationResponse(v *model.Valuation) ValuationResponse {
	resp := ValuationResponse{
		ID:                v.ID.String(),
		CompanyName:       v.CompanyName,
		ValuationMethod:   string(v.Method),
		ExpertMode:        v.ExpertMode,
		IndustryRisk:      v.Adjustments.IndustryRisk,
		GrowthAdjustment:  v.Adjustments.GrowthAdjustment,
		MarketRiskPremium: v.Adjustments.MarketRiskPremium,
		EvaluationDate:    v.EvaluationDate,
		Result:            v.Result,
		Notes:             v.Notes,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}

	switch in := v.Inputs.(type) {
	case model.ProfitCapitalizationInputs:
		resp.AnnualProfit = in.AnnualProfit
		resp.CapitalizationRate = in.CapitalizationRate
	case model.MarketComparisonInputs:
		resp.MarketMultiplier = in.MarketMultiplier
		resp.ComparableCompanies = in.ComparableCompanies
	case model.CostBasedInputs:
		resp.ReplacementCost = in.ReplacementCost
		resp.Depreciation = in.Depreciation
	}

	return resp
}

func NewValuationListResponse(vs []model.Valuation) []ValuationResponse {
	resp := make([]ValuationResponse, 0, len(vs))
	for i := range vs {
		resp = append(resp, NewValuationResponse(&vs[i]))
	}
	return resp
}
