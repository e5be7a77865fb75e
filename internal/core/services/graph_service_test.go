package services_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/cashflow_backend/internal/core/domain"
	"github.com/finsight/cashflow_backend/internal/core/services"
)

func newGraphService() *services.GraphService {
	return services.NewGraphService(services.NewReportingService())
}

func TestBuildFlowGraph_ThreeTierOutflow(t *testing.T) {
	svc := newGraphService()

	rent := activeItem("rent", domain.Outflow, "2500")
	rent.SourceAccountID = "checking"
	rent.CategoryID = "cat-rent"

	categories := []domain.Category{{CategoryID: "cat-rent", Name: "Rent", Kind: domain.Outflow}}
	accounts := []domain.AccountInfo{{AccountID: "checking", Name: "checking"}, {AccountID: "other", Name: "other"}}

	graph, err := svc.BuildFlowGraph([]domain.FlowItem{rent}, categories, accounts, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)

	require.Len(t, graph.Edges, 2)
	weights := make(map[[2]string]string)
	for _, e := range graph.Edges {
		weights[[2]string{e.From, e.To}] = e.Weight.String()
	}
	assert.Equal(t, "2500", weights[[2]string{"checking", "Rent"}])
	assert.Equal(t, "2500", weights[[2]string{"Rent", domain.ExternalExpensesNode}])

	names := make([]string, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"checking", "Rent", domain.ExternalExpensesNode}, names)
}

func TestBuildFlowGraph_SharedEdgesCollapse(t *testing.T) {
	svc := newGraphService()

	first := activeItem("weekly shop", domain.Outflow, "200")
	first.SourceAccountID = "checking"
	first.CategoryID = "cat-groceries"
	second := activeItem("farmers market", domain.Outflow, "150")
	second.SourceAccountID = "checking"
	second.CategoryID = "cat-groceries"

	categories := []domain.Category{{CategoryID: "cat-groceries", Name: "Groceries", Kind: domain.Outflow}}
	accounts := []domain.AccountInfo{{AccountID: "checking", Name: "checking"}}

	graph, err := svc.BuildFlowGraph([]domain.FlowItem{first, second}, categories, accounts, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)

	// Two items through the same category collapse into single edges with
	// combined weights, not duplicates.
	require.Len(t, graph.Edges, 2)
	for _, edge := range graph.Edges {
		assert.True(t, d("350").Equal(edge.Weight), "edge %s->%s has weight %s", edge.From, edge.To, edge.Weight)
	}
}

func TestBuildFlowGraph_OrderIndependent(t *testing.T) {
	svc := newGraphService()

	items := []domain.FlowItem{}
	salary := activeItem("salary", domain.Inflow, "6000")
	salary.DestinationAccountID = "checking"
	salary.CategoryID = "cat-salary"
	items = append(items, salary)

	rent := activeItem("rent", domain.Outflow, "2500")
	rent.SourceAccountID = "checking"
	rent.CategoryID = "cat-housing"
	items = append(items, rent)

	groceries := activeItem("groceries", domain.Outflow, "400")
	groceries.SourceAccountID = "checking"
	groceries.CategoryID = "cat-groceries"
	items = append(items, groceries)

	savings := activeItem("savings", domain.Transfer, "900")
	savings.SourceAccountID = "checking"
	savings.DestinationAccountID = "savings-acct"
	items = append(items, savings)

	categories := []domain.Category{
		{CategoryID: "cat-salary", Name: "Salary", Kind: domain.Inflow},
		{CategoryID: "cat-housing", Name: "Housing", Kind: domain.Outflow},
		{CategoryID: "cat-groceries", Name: "Groceries", Kind: domain.Outflow},
	}
	accounts := []domain.AccountInfo{
		{AccountID: "checking", Name: "checking"},
		{AccountID: "savings-acct", Name: "savings"},
	}

	reference, err := svc.BuildFlowGraph(items, categories, accounts, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]domain.FlowItem{}, items...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		permuted, err := svc.BuildFlowGraph(shuffled, categories, accounts, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
		require.NoError(t, err)
		assert.Equal(t, reference, permuted)
	}
}

func TestBuildFlowGraph_ExternalIncomeHasNoSecondLeg(t *testing.T) {
	svc := newGraphService()

	freelance := activeItem("freelance", domain.Inflow, "1500")
	freelance.CategoryID = "cat-salary"
	categories := []domain.Category{{CategoryID: "cat-salary", Name: "Salary", Kind: domain.Inflow}}

	graph, err := svc.BuildFlowGraph([]domain.FlowItem{freelance}, categories, nil, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)

	// Plain external income stops at its category node.
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, domain.ExternalIncomeNode, graph.Edges[0].From)
	assert.Equal(t, "Salary", graph.Edges[0].To)

	// An inflow landing in a tracked account grows the second leg.
	deposited := freelance
	deposited.DestinationAccountID = "checking"
	accounts := []domain.AccountInfo{{AccountID: "checking", Name: "checking"}}
	graph, err = svc.BuildFlowGraph([]domain.FlowItem{deposited}, categories, accounts, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)
	require.Len(t, graph.Edges, 2)
	assert.Equal(t, "checking", graph.Edges[1].To)
}

func TestBuildFlowGraph_UncategorizedFallsBackToItemName(t *testing.T) {
	svc := newGraphService()

	mystery := activeItem("Mystery Sub", domain.Outflow, "15")
	mystery.CategoryID = "deleted-category"

	graph, err := svc.BuildFlowGraph([]domain.FlowItem{mystery}, nil, nil, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)

	require.Len(t, graph.Edges, 2)
	assert.Equal(t, "Mystery Sub", graph.Edges[1].From)
	assert.Equal(t, domain.ExternalExpensesNode, graph.Edges[1].To)
}

func TestBuildFlowGraph_YearlyPeriodScalesWeights(t *testing.T) {
	svc := newGraphService()

	rent := activeItem("rent", domain.Outflow, "2500")
	graph, err := svc.BuildFlowGraph([]domain.FlowItem{rent}, nil, nil, nil, domain.CurrencyUSD, d("1"), domain.PeriodYearly)
	require.NoError(t, err)

	require.NotEmpty(t, graph.Edges)
	assert.True(t, d("30000").Equal(graph.Edges[0].Weight))
}

func TestBuildFlowGraph_NodeColors(t *testing.T) {
	svc := newGraphService()

	salary := activeItem("salary", domain.Inflow, "6000")
	salary.CategoryID = "cat-salary"
	rent := activeItem("rent", domain.Outflow, "2500")
	rent.SourceAccountID = "checking"
	rent.CategoryID = "cat-housing"
	savings := activeItem("savings", domain.Transfer, "900")
	savings.SourceAccountID = "checking"
	savings.DestinationAccountID = "savings-acct"

	categories := []domain.Category{
		{CategoryID: "cat-salary", Name: "Salary", Kind: domain.Inflow},
		{CategoryID: "cat-housing", Name: "Housing", Kind: domain.Outflow},
	}
	accounts := []domain.AccountInfo{
		{AccountID: "checking", Name: "checking"},
		{AccountID: "savings-acct", Name: "savings"},
	}

	graph, err := svc.BuildFlowGraph([]domain.FlowItem{salary, rent, savings}, categories, accounts, nil, domain.CurrencyUSD, d("1"), domain.PeriodMonthly)
	require.NoError(t, err)

	colors := make(map[string]domain.NodeColor)
	for _, n := range graph.Nodes {
		colors[n.Name] = n.Color
	}

	assert.Equal(t, domain.ColorIncome, colors["Salary"])
	assert.Equal(t, domain.ColorExpense, colors["Housing"])
	assert.Equal(t, domain.ColorTransfer, colors["savings"])
	assert.Equal(t, domain.ColorIncome, colors[domain.ExternalIncomeNode])
	// Checking carries both outflow and transfer traffic.
	assert.Equal(t, domain.ColorNeutral, colors["checking"])
}

func TestNodeContributors(t *testing.T) {
	svc := newGraphService()

	first := activeItem("weekly shop", domain.Outflow, "200")
	first.SourceAccountID = "checking"
	first.CategoryID = "cat-groceries"
	second := activeItem("farmers market", domain.Outflow, "150")
	second.SourceAccountID = "checking"
	second.CategoryID = "cat-groceries"
	unrelated := activeItem("rent", domain.Outflow, "2500")
	unrelated.SourceAccountID = "checking"

	categories := []domain.Category{{CategoryID: "cat-groceries", Name: "Groceries", Kind: domain.Outflow}}
	accounts := []domain.AccountInfo{{AccountID: "checking", Name: "checking"}}
	items := []domain.FlowItem{first, second, unrelated}

	flows := svc.NodeContributors(items, categories, accounts, "Groceries")
	assert.Len(t, flows.Inflows, 2)
	assert.Len(t, flows.Outflows, 2)

	flows = svc.NodeContributors(items, categories, accounts, "checking")
	assert.Empty(t, flows.Inflows)
	assert.Len(t, flows.Outflows, 3)

	flows = svc.NodeContributors(items, categories, accounts, domain.ExternalExpensesNode)
	assert.Len(t, flows.Inflows, 3)
	assert.Empty(t, flows.Outflows)
}
