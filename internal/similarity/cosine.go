// Package similarity computes the pairwise cosine similarity matrix over count
// vectors.
//
// A row whose vector is all zero (a tag made only of stop words) has no defined
// direction. Its similarity to every row, itself included, is 0.
//
// Scores are computed in float64 and stored as float32, so they are accurate
// to about 7 significant digits.
package similarity

import (
	"math"

	"movierec/internal/vectorize"
)

// Matrix is a square symmetric similarity matrix stored row major.
type Matrix struct {
	n      int
	values []float32
}

type posting struct {
	row   int
	count float64
}

// Cosine computes similarity for every pair of rows of m.
func Cosine(m *vectorize.Matrix) *Matrix {
	n := m.Rows()
	out := &Matrix{n: n, values: make([]float32, n*n)}

	norms := make([]float64, n)
	postings := make([][]posting, m.Cols())
	for i := 0; i < n; i++ {
		var sum float64
		for _, e := range m.Entries(i) {
			c := float64(e.Count)
			sum += c * c
			postings[e.Col] = append(postings[e.Col], posting{row: i, count: c})
		}
		norms[i] = math.Sqrt(sum)
	}

	dots := make([]float64, n)
	for i := 0; i < n; i++ {
		if norms[i] == 0 {
			continue
		}
		out.set(i, i, 1)
		for j := range dots {
			dots[j] = 0
		}
		for _, e := range m.Entries(i) {
			c := float64(e.Count)
			for _, p := range postings[e.Col] {
				if p.row > i {
					dots[p.row] += c * p.count
				}
			}
		}
		for j := i + 1; j < n; j++ {
			if dots[j] == 0 || norms[j] == 0 {
				continue
			}
			v := clamp(dots[j] / (norms[i] * norms[j]))
			out.set(i, j, v)
			out.set(j, i, v)
		}
	}
	return out
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

func (m *Matrix) set(i, j int, v float64) {
	m.values[i*m.n+j] = float32(v)
}

// Size returns the number of rows (and columns).
func (m *Matrix) Size() int { return m.n }

// At returns the similarity between rows i and j.
func (m *Matrix) At(i, j int) float64 {
	return float64(m.values[i*m.n+j])
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.n)
	for j, v := range m.values[i*m.n : (i+1)*m.n] {
		out[j] = float64(v)
	}
	return out
}

// Bytes reports the memory held by the matrix values.
func (m *Matrix) Bytes() int {
	return len(m.values) * 4
}
