package model

import (
	"testing"
	"time"

	"goodwill-valuation/pkg/apperrors"
	"goodwill-valuation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfitValuation() *Valuation {
	return &Valuation{
		ID:          uuid.New(),
		CompanyName: "한빛상사",
		Method:      MethodProfitCapitalization,
		Inputs: ProfitCapitalizationInputs{
			AnnualProfit:       utils.ToPointer(120_000_000.0),
			CapitalizationRate: utils.ToPointer(0.12),
		},
		Adjustments:    DefaultExpertAdjustments(),
		EvaluationDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Result:         utils.ToPointer(1_000_000_000.0),
		Notes:          "first pass",
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		got, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.Equal(t, m, got.NewInputs().Method())
	}

	_, err := ParseMethod("DCF")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Nil(t, Method("DCF").NewInputs())
}

func TestMethod_ExpertOnly(t *testing.T) {
	assert.False(t, MethodProfitCapitalization.ExpertOnly())
	assert.False(t, MethodMarketComparison.ExpertOnly())
	assert.False(t, MethodCostBased.ExpertOnly())
	assert.True(t, MethodExcessEarnings.ExpertOnly())
	assert.True(t, MethodOptionPricing.ExpertOnly())
}

func TestValuation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *Valuation)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Valuation) {}},
		{name: "blank company name", mutate: func(v *Valuation) { v.CompanyName = "  " }, wantErr: true},
		{name: "missing method", mutate: func(v *Valuation) { v.Method = "" }, wantErr: true},
		{name: "unknown method", mutate: func(v *Valuation) { v.Method = "DCF" }, wantErr: true},
		{name: "mismatched inputs", mutate: func(v *Valuation) { v.Inputs = CostBasedInputs{} }, wantErr: true},
		{name: "nil inputs", mutate: func(v *Valuation) { v.Inputs = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newProfitValuation()
			tt.mutate(v)
			err := v.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValuation_Apply(t *testing.T) {
	t.Run("notes only keeps everything else", func(t *testing.T) {
		v := newProfitValuation()
		before := *v

		err := v.Apply(Patch{Notes: utils.ToPointer("revised")})
		require.NoError(t, err)

		assert.Equal(t, "revised", v.Notes)
		before.Notes = "revised"
		assert.Equal(t, before, *v)
	})

	t.Run("input of same method overwrites", func(t *testing.T) {
		v := newProfitValuation()
		err := v.Apply(Patch{Inputs: InputsPatch{CapitalizationRate: utils.ToPointer(0.1)}})
		require.NoError(t, err)

		in := v.Inputs.(ProfitCapitalizationInputs)
		assert.Equal(t, 0.1, *in.CapitalizationRate)
		assert.Equal(t, 120_000_000.0, *in.AnnualProfit)
	})

	t.Run("input of another method is rejected and nothing changes", func(t *testing.T) {
		v := newProfitValuation()
		before := *v

		err := v.Apply(Patch{
			Notes:  utils.ToPointer("ignored"),
			Inputs: InputsPatch{ReplacementCost: utils.ToPointer(5.0)},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), FieldReplacementCost)
		assert.Equal(t, before, *v)
	})

	t.Run("method change swaps the input variant", func(t *testing.T) {
		v := newProfitValuation()
		method := MethodCostBased

		err := v.Apply(Patch{
			Method: &method,
			Inputs: InputsPatch{
				ReplacementCost: utils.ToPointer(300.0),
				Depreciation:    utils.ToPointer(50.0),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, MethodCostBased, v.Method)
		assert.Equal(t, CostBasedInputs{
			ReplacementCost: utils.ToPointer(300.0),
			Depreciation:    utils.ToPointer(50.0),
		}, v.Inputs)
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		v := newProfitValuation()
		method := Method("DCF")
		assert.ErrorIs(t, v.Apply(Patch{Method: &method}), apperrors.ErrInvalidInput)
		assert.Equal(t, MethodProfitCapitalization, v.Method)
	})

	t.Run("blank company name is rejected", func(t *testing.T) {
		v := newProfitValuation()
		assert.ErrorIs(t, v.Apply(Patch{CompanyName: utils.ToPointer("")}), apperrors.ErrInvalidInput)
		assert.Equal(t, "한빛상사", v.CompanyName)
	})

	t.Run("expert adjustments", func(t *testing.T) {
		v := newProfitValuation()
		err := v.Apply(Patch{
			ExpertMode:        utils.ToPointer(true),
			IndustryRisk:      utils.ToPointer(1.3),
			MarketRiskPremium: utils.ToPointer(6.5),
		})
		require.NoError(t, err)

		assert.True(t, v.ExpertMode)
		assert.Equal(t, ExpertAdjustments{IndustryRisk: 1.3, GrowthAdjustment: 0, MarketRiskPremium: 6.5}, v.Adjustments)
	})
}

func TestRowRoundTrip(t *testing.T) {
	market := &Valuation{
		ID:          uuid.New(),
		CompanyName: "Acme",
		Method:      MethodMarketComparison,
		Inputs: MarketComparisonInputs{
			MarketMultiplier: utils.ToPointer(8.0),
			ComparableCompanies: []ComparableCompany{
				{Name: "Peer A", Multiplier: utils.ToPointer(7.5)},
				{Name: "Peer B", Multiplier: utils.ToPointer(8.5)},
			},
		},
		Adjustments:    DefaultExpertAdjustments(),
		EvaluationDate: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		in   *Valuation
	}{
		{name: "profit", in: newProfitValuation()},
		{name: "market", in: market},
		{name: "excess earnings", in: &Valuation{
			ID: uuid.New(), CompanyName: "Expert Co", Method: MethodExcessEarnings,
			ExpertMode: true, Inputs: ExcessEarningsInputs{}, Adjustments: DefaultExpertAdjustments(),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ToRow(tt.in)
			assert.Equal(t, string(tt.in.Method), row.ValuationMethod)
			assert.Equal(t, tt.in, row.ToValuation())
		})
	}
}

func TestToRow_OnlyOwnMethodColumns(t *testing.T) {
	row := ToRow(newProfitValuation())

	assert.NotNil(t, row.AnnualProfit)
	assert.Nil(t, row.MarketMultiplier)
	assert.Nil(t, row.ReplacementCost)
	assert.Nil(t, row.Depreciation)
	assert.Empty(t, row.ComparableCompanies)
}
