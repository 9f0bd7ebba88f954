package similarity

import (
	"math"
	"testing"

	"movierec/internal/vectorize"
)

func buildMatrix(docs ...string) *Matrix {
	return Cosine(vectorize.CountVectorizer{}.FitTransform(docs))
}

func TestCosineSymmetricWithUnitDiagonal(t *testing.T) {
	m := buildMatrix(
		"space war rebels empire",
		"space station war",
		"romance paris",
		"the of and", // all stop words
		"rebels rebels empire",
	)
	if m.Size() != 5 {
		t.Fatalf("unexpected size %d", m.Size())
	}
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Fatalf("asymmetric at %d,%d: %v vs %v", i, j, m.At(i, j), m.At(j, i))
			}
			if v := m.At(i, j); v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("out of range at %d,%d: %v", i, j, v)
			}
		}
	}
	for _, i := range []int{0, 1, 2, 4} {
		if m.At(i, i) != 1 {
			t.Fatalf("expected unit diagonal at %d, got %v", i, m.At(i, i))
		}
	}
	if m.At(3, 3) != 0 {
		t.Fatalf("expected zero vector diagonal to be 0, got %v", m.At(3, 3))
	}
	for j := 0; j < m.Size(); j++ {
		if m.At(3, j) != 0 {
			t.Fatalf("expected zero vector row to be 0 at %d", j)
		}
	}
}

func TestCosineValues(t *testing.T) {
	// space war  vs  space station war: dot=2, norms sqrt2*sqrt3
	m := buildMatrix("space war", "space station war", "romance")
	want := 2 / (math.Sqrt(2) * math.Sqrt(3))
	if got := m.At(0, 1); math.Abs(got-want) > 1e-6 {
		t.Fatalf("At(0,1) = %v, want %v", got, want)
	}
	if m.At(0, 2) != 0 {
		t.Fatalf("expected disjoint rows to be 0")
	}
	row := m.Row(1)
	if len(row) != 3 || row[1] != 1 {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestCosineEmptyCorpus(t *testing.T) {
	m := buildMatrix()
	if m.Size() != 0 || m.Bytes() != 0 {
		t.Fatalf("expected empty matrix")
	}
}

func TestCosineMatchesDenseFloat64(t *testing.T) {
	counts := vectorize.CountVectorizer{}.FitTransform([]string{
		"space war rebels empire galaxy galaxy",
		"space station war crew crew crew",
		"romance paris cafe love",
		"rebels rebels empire war",
		"galaxy love station paris",
	})
	dense := counts.Dense()
	m := Cosine(counts)
	for i := range dense {
		for j := range dense {
			var dot, ni, nj float64
			for k := range dense[i] {
				a, b := float64(dense[i][k]), float64(dense[j][k])
				dot += a * b
				ni += a * a
				nj += b * b
			}
			want := dot / (math.Sqrt(ni) * math.Sqrt(nj))
			if got := m.At(i, j); math.Abs(got-want) > 1e-6 {
				t.Fatalf("score %d,%d = %v, want %v", i, j, got, want)
			}
		}
	}
}
