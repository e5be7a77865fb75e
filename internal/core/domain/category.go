package domain

// Category is a named bucket grouping flows of the same kind for graph and
// report purposes. Categories exist independent of flows; deleting one
// detaches the flows that reference it.
type Category struct {
	CategoryID string   `json:"categoryID"`
	Name       string   `json:"name"`
	Kind       FlowKind `json:"kind"`
	Icon       string   `json:"icon,omitempty"`
	// IsCustom distinguishes user-created categories from built-in defaults.
	IsCustom bool `json:"isCustom"`
	AuditFields
}

// defaultCategorySpec seeds the built-in categories of a fresh scenario.
var defaultCategorySpec = []struct {
	name string
	kind FlowKind
	icon string
}{
	{"Salary", Inflow, "briefcase"},
	{"Investments", Inflow, "trending-up"},
	{"Other Income", Inflow, "plus-circle"},
	{"Housing", Outflow, "home"},
	{"Groceries", Outflow, "shopping-cart"},
	{"Transport", Outflow, "car"},
	{"Utilities", Outflow, "zap"},
	{"Leisure", Outflow, "smile"},
	{"Other Expenses", Outflow, "minus-circle"},
	{"Savings", Transfer, "piggy-bank"},
	{"Debt Payments", Transfer, "credit-card"},
}

// DefaultCategories returns the built-in category set for a new scenario.
// Ids are generated by the supplied function so callers control id allocation.
func DefaultCategories(newID func() string, fields AuditFields) []Category {
	categories := make([]Category, 0, len(defaultCategorySpec))
	for _, spec := range defaultCategorySpec {
		categories = append(categories, Category{
			CategoryID:  newID(),
			Name:        spec.name,
			Kind:        spec.kind,
			Icon:        spec.icon,
			IsCustom:    false,
			AuditFields: fields,
		})
	}
	return categories
}

// CategoriesForKind filters categories to those matching a flow kind.
func CategoriesForKind(categories []Category, kind FlowKind) []Category {
	var matched []Category
	for _, c := range categories {
		if c.Kind == kind {
			matched = append(matched, c)
		}
	}
	return matched
}
