package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/cashflow_backend/internal/apperrors"
	"github.com/finsight/cashflow_backend/internal/core/domain"
	"github.com/finsight/cashflow_backend/internal/core/services"
)

func TestValidateFlowItem(t *testing.T) {
	svc := services.NewFlowEditService()

	valid := activeItem("rent", domain.Outflow, "2500")
	valid.SourceAccountID = "checking"
	assert.Empty(t, svc.ValidateFlowItem(valid))

	testCases := []struct {
		name    string
		mutate  func(*domain.FlowItem)
		problem string
	}{
		{
			"missing name",
			func(i *domain.FlowItem) { i.Name = "" },
			"name is required",
		},
		{
			"non-positive amount",
			func(i *domain.FlowItem) { i.Amount = decimal.Zero },
			"amount must be a positive number",
		},
		{
			"percentage above 100",
			func(i *domain.FlowItem) { p := d("150"); i.Percentage = &p },
			"percentage must be between 0 and 100",
		},
		{
			"negative percentage",
			func(i *domain.FlowItem) { p := d("-5"); i.Percentage = &p },
			"percentage must be between 0 and 100",
		},
		{
			"outflow with destination",
			func(i *domain.FlowItem) { i.DestinationAccountID = "savings" },
			"outflow must not have a destination account",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := valid
			tc.mutate(&item)
			assert.Contains(t, svc.ValidateFlowItem(item), tc.problem)
		})
	}
}

func TestValidateFlowItem_KindAccountRules(t *testing.T) {
	svc := services.NewFlowEditService()

	inflow := activeItem("salary", domain.Inflow, "6000")
	inflow.SourceAccountID = "checking"
	assert.Contains(t, svc.ValidateFlowItem(inflow), "inflow must not have a source account")

	transfer := activeItem("savings", domain.Transfer, "1000")
	assert.Contains(t, svc.ValidateFlowItem(transfer), "transfer requires both a source and a destination account")

	transfer.SourceAccountID = "checking"
	transfer.DestinationAccountID = "checking"
	assert.Contains(t, svc.ValidateFlowItem(transfer), "transfer source and destination accounts must be distinct")

	transfer.DestinationAccountID = "savings-acct"
	assert.Empty(t, svc.ValidateFlowItem(transfer))
}

func TestValidateFlowItem_PercentageDrivenSkipsAmountCheck(t *testing.T) {
	svc := services.NewFlowEditService()

	item := activeItem("dca", domain.Transfer, "0")
	item.SourceAccountID = "checking"
	item.DestinationAccountID = "brokerage"
	p := d("20")
	item.Percentage = &p

	assert.Empty(t, svc.ValidateFlowItem(item))
}

func TestValidateSplitAmounts(t *testing.T) {
	svc := services.NewFlowEditService()

	// Under-allocation is permitted.
	result := svc.ValidateSplitAmounts(d("1000"), []decimal.Decimal{d("600"), d("300")})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Error)

	// Exact allocation is permitted.
	result = svc.ValidateSplitAmounts(d("1000"), []decimal.Decimal{d("600"), d("400")})
	assert.True(t, result.Valid)

	// Over-allocation is rejected.
	result = svc.ValidateSplitAmounts(d("1000"), []decimal.Decimal{d("700"), d("500")})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "exceeding")

	// Non-positive fragments are rejected.
	result = svc.ValidateSplitAmounts(d("1000"), []decimal.Decimal{d("600"), decimal.Zero})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "positive")
}

func TestCalculateRemainingAmount(t *testing.T) {
	svc := services.NewFlowEditService()

	remaining := svc.CalculateRemainingAmount(d("1000"), []decimal.Decimal{d("600"), d("300")})
	assert.True(t, d("100").Equal(remaining))

	remaining = svc.CalculateRemainingAmount(d("1000"), []decimal.Decimal{d("600"), d("400")})
	assert.True(t, remaining.IsZero())
}

func TestSplitFlowByAmount(t *testing.T) {
	svc := services.NewFlowEditService()

	original := activeItem("shopping", domain.Outflow, "1000")
	original.SourceAccountID = "checking"
	original.CategoryID = "cat-shopping"
	original.Frequency = domain.Quarterly
	original.CurrencyCode = domain.CurrencyEUR

	splits, err := svc.SplitFlowByAmount(original, []domain.AmountSplit{
		{Name: "clothes", Amount: d("600")},
		{Name: "electronics", Amount: d("300")},
	})
	require.NoError(t, err)
	require.Len(t, splits, 2)

	for _, split := range splits {
		assert.NotEmpty(t, split.FlowItemID)
		assert.NotEqual(t, original.FlowItemID, split.FlowItemID)
		assert.Equal(t, original.Kind, split.Kind)
		assert.Equal(t, original.CurrencyCode, split.CurrencyCode)
		assert.Equal(t, original.Frequency, split.Frequency)
		assert.Equal(t, original.SourceAccountID, split.SourceAccountID)
		assert.Equal(t, original.CategoryID, split.CategoryID)
		assert.Equal(t, original.IsActive, split.IsActive)
	}
	assert.Equal(t, "clothes", splits[0].Name)
	assert.True(t, d("600").Equal(splits[0].Amount))
	assert.NotEqual(t, splits[0].FlowItemID, splits[1].FlowItemID)
}

func TestSplitFlowByAmount_RejectsOverAllocation(t *testing.T) {
	svc := services.NewFlowEditService()

	original := activeItem("shopping", domain.Outflow, "1000")
	_, err := svc.SplitFlowByAmount(original, []domain.AmountSplit{
		{Name: "a", Amount: d("700")},
		{Name: "b", Amount: d("500")},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.SplitFlowByAmount(original, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSplitFlowByDestination(t *testing.T) {
	svc := services.NewFlowEditService()

	original := activeItem("payday", domain.Transfer, "2000")
	original.SourceAccountID = "checking"
	original.DestinationAccountID = "savings-acct"
	original.CategoryID = "cat-savings"

	splits, err := svc.SplitFlowByDestination(original, []domain.DestinationSplit{
		{Name: "emergency fund", Amount: d("1200")},
		{Name: "brokerage dca", Amount: d("800"), DestinationAccountID: "brokerage", CategoryID: "cat-invest"},
	})
	require.NoError(t, err)
	require.Len(t, splits, 2)

	// Without overrides the fragment keeps the original's routing.
	assert.Equal(t, "savings-acct", splits[0].DestinationAccountID)
	assert.Equal(t, "cat-savings", splits[0].CategoryID)

	// Overrides fan the flow out to a different recipient and category.
	assert.Equal(t, "brokerage", splits[1].DestinationAccountID)
	assert.Equal(t, "cat-invest", splits[1].CategoryID)
	assert.Equal(t, "checking", splits[1].SourceAccountID)
}

func TestAddIntermediateCategory(t *testing.T) {
	svc := services.NewFlowEditService()

	item := activeItem("rent", domain.Outflow, "2500")
	before := item.UpdatedAt

	updated := svc.AddIntermediateCategory(item, "cat-housing")
	assert.Equal(t, "cat-housing", updated.CategoryID)
	assert.True(t, updated.UpdatedAt.After(before))
	// Input is untouched.
	assert.Empty(t, item.CategoryID)
}

func TestCreateCustomCategory(t *testing.T) {
	svc := services.NewFlowEditService()

	category := svc.CreateCustomCategory("Pets", domain.Outflow, "paw")
	assert.NotEmpty(t, category.CategoryID)
	assert.Equal(t, "Pets", category.Name)
	assert.Equal(t, domain.Outflow, category.Kind)
	assert.Equal(t, "paw", category.Icon)
	assert.True(t, category.IsCustom)

	fallback := svc.CreateCustomCategory("Misc", domain.Inflow, "")
	assert.Equal(t, "tag", fallback.Icon)
}

func TestRemoveCategory_DetachesItems(t *testing.T) {
	svc := services.NewFlowEditService()

	categorized := activeItem("rent", domain.Outflow, "2500")
	categorized.CategoryID = "cat-housing"
	other := activeItem("groceries", domain.Outflow, "400")
	other.CategoryID = "cat-groceries"

	categories := []domain.Category{
		{CategoryID: "cat-housing", Name: "Housing", Kind: domain.Outflow},
		{CategoryID: "cat-groceries", Name: "Groceries", Kind: domain.Outflow},
	}

	items, remaining := svc.RemoveCategory([]domain.FlowItem{categorized, other}, categories, "cat-housing")

	require.Len(t, remaining, 1)
	assert.Equal(t, "cat-groceries", remaining[0].CategoryID)

	// The referencing item is detached, not deleted.
	require.Len(t, items, 2)
	assert.Empty(t, items[0].CategoryID)
	assert.Equal(t, "cat-groceries", items[1].CategoryID)
}
