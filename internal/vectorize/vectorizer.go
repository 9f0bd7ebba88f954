package vectorize

import (
	"sort"
)

// DefaultMaxFeatures caps the vocabulary when CountVectorizer.MaxFeatures is unset.
const DefaultMaxFeatures = 5000

// CountVectorizer fits a vocabulary over documents and counts term occurrences.
type CountVectorizer struct {
	MaxFeatures int
}

// Entry is one non-zero cell of a row.
type Entry struct {
	Col   int
	Count int
}

// Matrix holds one sparse row per document over an alphabetically ordered
// vocabulary. Entries within a row are sorted by column.
type Matrix struct {
	vocabulary []string
	rows       [][]Entry
}

// FitTransform learns the vocabulary from docs and returns their count vectors.
func (v CountVectorizer) FitTransform(docs []string) *Matrix {
	limit := v.MaxFeatures
	if limit <= 0 {
		limit = DefaultMaxFeatures
	}

	analyzed := make([][]string, len(docs))
	totals := make(map[string]int)
	for i, doc := range docs {
		terms := Analyze(doc)
		analyzed[i] = terms
		for _, term := range terms {
			totals[term]++
		}
	}

	vocab := make([]string, 0, len(totals))
	for term := range totals {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	if len(vocab) > limit {
		// Most frequent first; the stable sort keeps alphabetical order among ties.
		sort.SliceStable(vocab, func(i, j int) bool {
			return totals[vocab[i]] > totals[vocab[j]]
		})
		vocab = vocab[:limit]
		sort.Strings(vocab)
	}

	columns := make(map[string]int, len(vocab))
	for i, term := range vocab {
		columns[term] = i
	}

	rows := make([][]Entry, len(docs))
	for i, terms := range analyzed {
		counts := make(map[int]int)
		for _, term := range terms {
			if col, ok := columns[term]; ok {
				counts[col]++
			}
		}
		row := make([]Entry, 0, len(counts))
		for col, n := range counts {
			row = append(row, Entry{Col: col, Count: n})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].Col < row[b].Col })
		rows[i] = row
	}

	return &Matrix{vocabulary: vocab, rows: rows}
}

// Rows returns the number of documents.
func (m *Matrix) Rows() int { return len(m.rows) }

// Cols returns the vocabulary size.
func (m *Matrix) Cols() int { return len(m.vocabulary) }

// Vocabulary returns the retained terms in column order.
func (m *Matrix) Vocabulary() []string {
	out := make([]string, len(m.vocabulary))
	copy(out, m.vocabulary)
	return out
}

// Entries returns the non-zero cells of row i. The slice must not be modified.
func (m *Matrix) Entries(i int) []Entry { return m.rows[i] }

// At returns the count for row i and column j.
func (m *Matrix) At(i, j int) int {
	row := m.rows[i]
	k := sort.Search(len(row), func(k int) bool { return row[k].Col >= j })
	if k < len(row) && row[k].Col == j {
		return row[k].Count
	}
	return 0
}

// Row returns row i as a dense slice.
func (m *Matrix) Row(i int) []int {
	out := make([]int, len(m.vocabulary))
	for _, e := range m.rows[i] {
		out[e.Col] = e.Count
	}
	return out
}

// Dense materializes the full count matrix.
func (m *Matrix) Dense() [][]int {
	out := make([][]int, len(m.rows))
	for i := range m.rows {
		out[i] = m.Row(i)
	}
	return out
}

// NonZero returns the number of stored cells.
func (m *Matrix) NonZero() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}
