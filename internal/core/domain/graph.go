package domain

import "github.com/shopspring/decimal"

// Synthetic graph node identities. Flows without a tracked source account
// originate at the external income node; flows without a tracked destination
// terminate at the external expenses node. These are fixed identities of the
// graph contract, not display strings chosen by the renderer.
const (
	ExternalIncomeNode   = "Income"
	ExternalExpensesNode = "Expenses"
)

// NodeColor is the hex color assigned to a graph node by its flow kind.
type NodeColor string

const (
	ColorIncome   NodeColor = "#22c55e"
	ColorExpense  NodeColor = "#ef4444"
	ColorTransfer NodeColor = "#3b82f6"
	ColorNeutral  NodeColor = "#94a3b8"
)

// ColorForKind maps a flow kind to its node color.
func ColorForKind(kind FlowKind) NodeColor {
	switch kind {
	case Inflow:
		return ColorIncome
	case Outflow:
		return ColorExpense
	case Transfer:
		return ColorTransfer
	default:
		return ColorNeutral
	}
}

// GraphPeriod scales edge weights to the requested reporting window.
type GraphPeriod string

const (
	PeriodMonthly GraphPeriod = "MONTHLY"
	PeriodYearly  GraphPeriod = "YEARLY"
)

// Multiplier returns the factor applied to monthly weights for the period.
func (p GraphPeriod) Multiplier() decimal.Decimal {
	if p == PeriodYearly {
		return decimal.NewFromInt(12)
	}
	return decimal.NewFromInt(1)
}

// GraphNode is one endpoint in the flow graph.
type GraphNode struct {
	Name  string    `json:"name"`
	Color NodeColor `json:"color"`
}

// GraphEdge is a weighted directed edge between two named nodes. Weights are
// already in the caller-chosen display currency and period.
type GraphEdge struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Weight decimal.Decimal `json:"weight"`
}

// FlowGraph is the three-tier source -> category -> destination graph
// consumed by the Sankey renderer. It is a pure data contract: nodes and
// edges only, no dependency on any charting library.
type FlowGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// NodeFlows lists the flow items that pass through one graph node, split by
// direction relative to the node.
type NodeFlows struct {
	NodeName string     `json:"nodeName"`
	Inflows  []FlowItem `json:"inflows"`
	Outflows []FlowItem `json:"outflows"`
}
