package lexer

import "plexlex/internal/diag"

// ReporterAdapter feeds lexer diagnostics into a Bag. With Dedup set,
// repeated reports after Restore over already scanned input are dropped.
type ReporterAdapter struct {
	Bag   *diag.Bag
	Dedup bool
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	var rep diag.Reporter = diag.BagReporter{Bag: r.Bag}
	if r.Dedup {
		rep = diag.NewDedupReporter(rep)
	}
	return rep
}
