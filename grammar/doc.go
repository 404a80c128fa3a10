// Package grammar implements the grammar-analysis engine: NULLABLE/FIRST/
// FOLLOW computation, LR automaton construction for the LR(0)/SLR(1)/
// LALR(1)/canonical-LR(1) family, LL(1) predictive-table construction, and
// conflict detection for all five classes.
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramcheck.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("gramcheck.grammar")
}
