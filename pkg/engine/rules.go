package engine

import "github.com/mrhapile/skindx/pkg/types"

// RuleSource supplies the ordered rule base the engine evaluates.
type RuleSource interface {
	// Rules returns the rules in evaluation order.
	Rules() []types.Rule
}
