package markov

import (
	"fmt"
	"go/build"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
)

// buildTable is a convenience helper that builds a table from words and fails
// the test on error.
func buildTable(t testing.TB, words ...string) *Table {
	t.Helper()
	table, err := Build(words)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", words, err)
	}
	return table
}

// newTestGenerator builds a table and a seeded generator over it.
func newTestGenerator(t testing.TB, seed uint64, words ...string) *Generator {
	t.Helper()
	g, err := NewGenerator(buildTable(t, words...), WithSeed(seed))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

// scriptedSource returns a fixed sequence of draws. It panics if a draw is
// out of range or the script runs out, both of which mean the generator took
// a different path than the test expected.
type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) IntN(n int) int {
	if s.pos >= len(s.draws) {
		panic(fmt.Sprintf("scripted source exhausted after %d draws", s.pos))
	}
	v := s.draws[s.pos]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted draw %d is %d, outside [0, %d)", s.pos, v, n))
	}
	s.pos++
	return v
}

func (s *scriptedSource) remaining() int {
	return len(s.draws) - s.pos
}

// tableCounts flattens a table into a comparable map.
func tableCounts(table *Table) map[Context]map[Symbol]int {
	out := make(map[Context]map[Symbol]int)
	for _, ctx := range table.Contexts() {
		d, _ := table.Lookup(ctx)
		inner := make(map[Symbol]int)
		for _, e := range d.Entries() {
			inner[e.Symbol] = e.Count
		}
		inner[Total] = d.Count(Total)
		out[ctx] = inner
	}
	return out
}

var testCorpus = []string{
	"apple", "banana", "cherry", "date", "elderberry", "fig", "grape",
	"honeydew", "kiwi", "lemon", "mango", "nectarine", "orange", "papaya",
	"quince", "raspberry", "strawberry", "tangerine", "ugli", "vanilla",
	"watermelon", "yam", "zucchini", "apricot", "blueberry", "cantaloupe",
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus extracts lowercase identifiers from Go source files to
// create a word list for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}
		wordRegex := regexp.MustCompile(`[a-z]{3,}`)

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = strings.Join(testCorpus, "\n")
				return
			}
			for _, w := range wordRegex.FindAllString(string(content), -1) {
				sb.WriteString(w)
				sb.WriteString("\n")
			}
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
