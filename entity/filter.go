package entity

import (
	"maps"
	"slices"
)

// FilterOp represents a filter operation type.
type FilterOp int

const (
	// Logical operators
	And FilterOp = iota
	Or
	Not

	// Comparison operators
	Eq       // ==
	Ne       // !=
	Gt       // >
	Gte      // >=
	Lt       // <
	Lte      // <=
	Contains // substring match
	Match    // regex match
)

var opNames = map[FilterOp]string{
	Eq:       "==",
	Ne:       "!=",
	Gt:       ">",
	Gte:      ">=",
	Lt:       "<",
	Lte:      "<=",
	Contains: "contains",
	Match:    "matches",
}

// String returns the operator as shown to users.
func (op FilterOp) String() string {
	name, ok := opNames[op]
	if !ok {
		return "?"
	}
	return name
}

// Filter represents a composable filter for row queries.
// Filters can be simple comparisons or complex logical combinations.
type Filter struct {
	Op       FilterOp // Operation type
	Field    string   // Field name for comparison (empty for logical ops)
	Value    any      // Comparison value (nil for logical ops)
	Enabled  bool     // Whether this filter is active
	Children []Filter // Child filters for logical ops
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort represents a sort directive for row queries.
type Sort struct {
	Field     string
	Direction Direction
}

// View is the search, sort and filters a provider is asked to apply.
type View struct {
	Search  string
	Sort    Sort
	Filters map[string]Filter
}

// Combined folds enabled filters into a single AND filter.
// The zero Filter is returned when none are enabled.
func (view View) Combined() Filter {

	var enabled []Filter
	for _, key := range slices.Sorted(maps.Keys(view.Filters)) {
		f := view.Filters[key]
		if f.Enabled {
			enabled = append(enabled, f)
		}
	}

	switch len(enabled) {
	case 0:
		return Filter{}
	case 1:
		return enabled[0]
	}
	return Filter{Op: And, Children: enabled}
}
