package markov

// Prune returns a copy of the table without any link whose count is less
// than or equal to minFreq. Totals are recomputed and contexts left without
// links are dropped, so the copy keeps every table invariant. Entry and
// context order are preserved.
//
// Pruning removes rare, and often noisy, transitions. It can remove the start
// context entirely; NewGenerator reports that as ErrEmptyModel.
func (t *Table) Prune(minFreq int) *Table {
	pruned := newTable()
	for _, ctx := range t.order {
		for _, e := range t.dists[ctx].entries {
			if e.Count > minFreq {
				pruned.observeN(ctx, e.Symbol, e.Count)
			}
		}
	}
	return pruned
}
