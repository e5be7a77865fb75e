package services

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsight/cashflow_backend/internal/core/domain"
	"github.com/finsight/cashflow_backend/internal/utils/fx"
)

// GraphService derives the three-tier flow graph for the Sankey view.
type GraphService struct {
	reporting *ReportingService
}

// NewGraphService creates a new GraphService.
func NewGraphService(reporting *ReportingService) *GraphService {
	return &GraphService{reporting: reporting}
}

// itemRoute is the derived node path of one flow item: source tier, category
// tier, destination tier. hasSecondLeg is false for plain external income,
// which has no category -> destination edge.
type itemRoute struct {
	source       string
	category     string
	destination  string
	hasSecondLeg bool
}

// routeFor derives an item's node names. Dangling category or account
// references fall back to the item's own name and the synthetic external
// nodes; they are expected, never an error.
func routeFor(item domain.FlowItem, categoryNames map[string]string, accountNames map[string]string) itemRoute {
	route := itemRoute{
		source:       domain.ExternalIncomeNode,
		category:     item.Name,
		destination:  domain.ExternalExpensesNode,
		hasSecondLeg: true,
	}

	if name, ok := accountNames[item.SourceAccountID]; ok && item.SourceAccountID != "" {
		route.source = name
	}
	if name, ok := categoryNames[item.CategoryID]; ok && item.CategoryID != "" {
		route.category = name
	}
	if name, ok := accountNames[item.DestinationAccountID]; ok && item.DestinationAccountID != "" {
		route.destination = name
	} else if item.Kind == domain.Inflow {
		// External income terminates at its category node.
		route.hasSecondLeg = false
	}

	return route
}

func categoryNameIndex(categories []domain.Category) map[string]string {
	index := make(map[string]string, len(categories))
	for _, c := range categories {
		index[c.CategoryID] = c.Name
	}
	return index
}

func accountNameIndex(accounts []domain.AccountInfo) map[string]string {
	index := make(map[string]string, len(accounts))
	for _, a := range accounts {
		index[a.AccountID] = a.Name
	}
	return index
}

// BuildFlowGraph maps the flat item list into the aggregated weighted graph.
// Edge weights are monthly amounts converted into displayCurrency and scaled
// by the period multiplier; edges sharing (from, to) collapse into one.
// Nodes and edges come back sorted so equal inputs produce equal outputs
// regardless of item order.
func (s *GraphService) BuildFlowGraph(
	items []domain.FlowItem,
	categories []domain.Category,
	accounts []domain.AccountInfo,
	balances domain.BalanceSnapshot,
	displayCurrency string,
	usdToEurRate decimal.Decimal,
	period domain.GraphPeriod,
) (*domain.FlowGraph, error) {
	categoryNames := categoryNameIndex(categories)
	accountNames := accountNameIndex(accounts)
	periodFactor := period.Multiplier()

	type edgeKey struct{ from, to string }
	weights := make(map[edgeKey]decimal.Decimal)
	// A node keeps its kind's color while every flow through it agrees;
	// mixed-kind nodes fall back to neutral.
	nodeColors := make(map[string]domain.NodeColor)

	tint := func(nodeName string, kind domain.FlowKind) {
		color := domain.ColorForKind(kind)
		if existing, ok := nodeColors[nodeName]; ok && existing != color {
			nodeColors[nodeName] = domain.ColorNeutral
			return
		}
		nodeColors[nodeName] = color
	}

	for _, item := range items {
		if !item.IsActive {
			continue
		}
		monthly := s.reporting.ResolveMonthlyAmount(item, balances)
		normalized, err := fx.Convert(monthly, item.CurrencyCode, displayCurrency, usdToEurRate)
		if err != nil {
			return nil, fmt.Errorf("failed to weigh flow item %s: %w", item.FlowItemID, err)
		}
		weight := normalized.Mul(periodFactor)

		route := routeFor(item, categoryNames, accountNames)

		first := edgeKey{route.source, route.category}
		if existing, ok := weights[first]; ok {
			weights[first] = existing.Add(weight)
		} else {
			weights[first] = weight
		}
		tint(route.source, item.Kind)
		tint(route.category, item.Kind)

		if route.hasSecondLeg {
			second := edgeKey{route.category, route.destination}
			if existing, ok := weights[second]; ok {
				weights[second] = existing.Add(weight)
			} else {
				weights[second] = weight
			}
			tint(route.destination, item.Kind)
		}
	}

	// Synthetic endpoints keep their canonical colors even when transfers
	// or mixed flows touch them.
	if _, ok := nodeColors[domain.ExternalIncomeNode]; ok {
		nodeColors[domain.ExternalIncomeNode] = domain.ColorIncome
	}
	if _, ok := nodeColors[domain.ExternalExpensesNode]; ok {
		nodeColors[domain.ExternalExpensesNode] = domain.ColorExpense
	}

	edges := make([]domain.GraphEdge, 0, len(weights))
	for key, weight := range weights {
		edges = append(edges, domain.GraphEdge{From: key.from, To: key.to, Weight: weight})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	nodes := make([]domain.GraphNode, 0, len(nodeColors))
	for name, color := range nodeColors {
		nodes = append(nodes, domain.GraphNode{Name: name, Color: color})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })

	return &domain.FlowGraph{Nodes: nodes, Edges: edges}, nil
}

// NodeContributors reconstructs which flow items pass through the named
// node. An item whose derived edges end at the node is one of its inflows;
// an item whose derived edges start at the node is one of its outflows. The
// same route derivation used during aggregation is reapplied here, so the
// answer always matches the rendered graph.
func (s *GraphService) NodeContributors(
	items []domain.FlowItem,
	categories []domain.Category,
	accounts []domain.AccountInfo,
	nodeName string,
) domain.NodeFlows {
	categoryNames := categoryNameIndex(categories)
	accountNames := accountNameIndex(accounts)

	flows := domain.NodeFlows{NodeName: nodeName}
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		route := routeFor(item, categoryNames, accountNames)

		arrives := route.category == nodeName
		departs := route.source == nodeName
		if route.hasSecondLeg {
			arrives = arrives || route.destination == nodeName
			departs = departs || route.category == nodeName
		}

		if arrives {
			flows.Inflows = append(flows.Inflows, item)
		}
		if departs {
			flows.Outflows = append(flows.Outflows, item)
		}
	}
	return flows
}
