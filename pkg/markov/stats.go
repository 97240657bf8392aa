package markov

// TableStats holds aggregated statistics for a single table.
type TableStats struct {
	Contexts       int // The number of observed (prev, cur) contexts.
	Transitions    int // The number of unique context->next links.
	TotalFrequency int // The sum of all link counts; the total number of trained transitions.
	Words          int // The number of trained words, i.e. transitions into Start.
	StartingChars  int // The number of unique real symbols that can start a word.
	AlphabetSize   int // The number of unique real symbols in the table.
	LongestContext int // The largest number of continuations of a single context.
}

// Stats returns a snapshot of statistics for the table.
func (t *Table) Stats() TableStats {
	var stats TableStats
	stats.Contexts = len(t.order)

	for _, d := range t.dists {
		stats.Transitions += len(d.entries)
		stats.TotalFrequency += d.total
		stats.Words += d.Count(Start)
		if len(d.entries) > stats.LongestContext {
			stats.LongestContext = len(d.entries)
		}
	}

	if d, ok := t.dists[StartContext]; ok {
		for _, e := range d.entries {
			if e.Symbol != Start {
				stats.StartingChars++
			}
		}
	}

	stats.AlphabetSize = len(t.Alphabet())
	return stats
}
