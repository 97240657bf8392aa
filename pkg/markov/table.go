package markov

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is a single unit of the model's alphabet. Real characters are stored
// as their (lowercased) code point, which is always positive. Two values are
// reserved: Start and Total.
type Symbol int32

const (
	// Start marks a word boundary. It fills both context positions at the
	// beginning of a word and is recorded as the transition that ends a word.
	Start Symbol = 0
	// Total is a bookkeeping key. Distribution.Count(Total) returns the sum of
	// all entries of a distribution. It is never a transition target.
	Total Symbol = -1
)

// String renders the symbol for logs and debugging output.
func (s Symbol) String() string {
	switch s {
	case Start:
		return "<START>"
	case Total:
		return "<TOTAL>"
	default:
		return string(rune(s))
	}
}

// Context is the two previous symbols used to predict the next one.
type Context struct {
	Prev Symbol
	Cur  Symbol
}

// StartContext is the context at the beginning of every word.
var StartContext = Context{Prev: Start, Cur: Start}

// String renders the context as "prev cur".
func (c Context) String() string {
	return c.Prev.String() + " " + c.Cur.String()
}

// Entry is a single observed transition out of a context.
type Entry struct {
	Symbol Symbol
	Count  int
}

// Distribution holds the observed next symbols of one context. Entries keep
// the order in which they were first observed during training; weighted
// selection walks them in that order.
type Distribution struct {
	entries []Entry
	index   map[Symbol]int
	total   int
}

func newDistribution() *Distribution {
	return &Distribution{index: make(map[Symbol]int)}
}

// add increments the count for next and the distribution total.
func (d *Distribution) add(next Symbol, n int) {
	if i, ok := d.index[next]; ok {
		d.entries[i].Count += n
	} else {
		d.index[next] = len(d.entries)
		d.entries = append(d.entries, Entry{Symbol: next, Count: n})
	}
	d.total += n
}

// Count returns the observed count of next in this context. Count(Total)
// returns the sum over all entries.
func (d *Distribution) Count(next Symbol) int {
	if next == Total {
		return d.total
	}
	if i, ok := d.index[next]; ok {
		return d.entries[i].Count
	}
	return 0
}

// Total returns the sum of all entry counts.
func (d *Distribution) Total() int {
	return d.total
}

// Len returns the number of distinct next symbols.
func (d *Distribution) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the entries in first-observed order.
func (d *Distribution) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Table is a second-order character transition frequency table. It is built
// once by Build or Train and is read-only afterwards, so a single Table can be
// shared by any number of Generators without locking.
type Table struct {
	dists map[Context]*Distribution
	// order keeps contexts in first-observed order for stable iteration.
	order []Context
}

func newTable() *Table {
	return &Table{dists: make(map[Context]*Distribution)}
}

// observe records one transition from ctx to next.
func (t *Table) observe(ctx Context, next Symbol) {
	t.observeN(ctx, next, 1)
}

func (t *Table) observeN(ctx Context, next Symbol, n int) {
	d, ok := t.dists[ctx]
	if !ok {
		d = newDistribution()
		t.dists[ctx] = d
		t.order = append(t.order, ctx)
	}
	d.add(next, n)
}

// addWord records every transition of a single encoded word, including the
// closing transition back to Start.
func (t *Table) addWord(word []Symbol) {
	ctx := StartContext
	for _, next := range word {
		t.observe(ctx, next)
		ctx = Context{Prev: ctx.Cur, Cur: next}
	}
	t.observe(ctx, Start)
}

// Lookup returns the distribution for ctx. The boolean is false if the
// context was never observed during training.
func (t *Table) Lookup(ctx Context) (*Distribution, bool) {
	d, ok := t.dists[ctx]
	return d, ok
}

// Len returns the number of observed contexts.
func (t *Table) Len() int {
	return len(t.order)
}

// Contexts returns every observed context in first-observed order.
func (t *Table) Contexts() []Context {
	out := make([]Context, len(t.order))
	copy(out, t.order)
	return out
}

// Ready reports whether the table can be sampled from, i.e. whether the start
// context has at least one observed continuation.
func (t *Table) Ready() error {
	d, ok := t.dists[StartContext]
	if !ok || d.total == 0 {
		return ErrEmptyModel
	}
	return nil
}

// Alphabet returns every real symbol that appears as a transition target,
// sorted ascending.
func (t *Table) Alphabet() []Symbol {
	seen := make(map[Symbol]struct{})
	for _, d := range t.dists {
		for _, e := range d.entries {
			if e.Symbol != Start {
				seen[e.Symbol] = struct{}{}
			}
		}
	}
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String dumps the table one context per line. It is meant for debugging
// small models.
func (t *Table) String() string {
	var sb strings.Builder
	for _, ctx := range t.order {
		d := t.dists[ctx]
		sb.WriteString(ctx.String())
		sb.WriteString(" ->")
		for _, e := range d.entries {
			fmt.Fprintf(&sb, " %s:%d", e.Symbol, e.Count)
		}
		fmt.Fprintf(&sb, " (total %d)\n", d.total)
	}
	return sb.String()
}
