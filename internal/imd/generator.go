// Package imd enumerates intermodulation products of two transmitters and
// classifies them against frequency bands.
package imd

import (
	"iter"
	"math"

	"github.com/RMahshie/imdscreen/pkg/models"
)

// Term is one point of the harmonic/sign cartesian product.
type Term struct {
	N, M         int
	Sign1, Sign2 models.Sign
}

// Frequency evaluates |s1·n·f1 + s2·m·f2|.
func (t Term) Frequency(f1, f2 float64) float64 {
	return math.Abs(float64(t.Sign1)*float64(t.N)*f1 + float64(t.Sign2)*float64(t.M)*f2)
}

// Combinations yields every term of {0..nMax}×{0..mMax}×{+1,-1}×{+1,-1}
// except those with n = m = 0. Terms come out ordered by n, then m, then
// sign1, then sign2.
func Combinations(nMax, mMax int) iter.Seq[Term] {
	return func(yield func(Term) bool) {
		for n := 0; n <= nMax; n++ {
			for m := 0; m <= mMax; m++ {
				if n == 0 && m == 0 {
					continue
				}
				for _, s1 := range models.Signs {
					for _, s2 := range models.Signs {
						if !yield(Term{N: n, M: m, Sign1: s1, Sign2: s2}) {
							return
						}
					}
				}
			}
		}
	}
}

// Count returns the number of products Generate emits for the given limits.
func Count(nMax, mMax int) int {
	if nMax < 0 || mMax < 0 {
		return 0
	}
	return 4 * ((nMax+1)*(mMax+1) - 1)
}

// Generate computes every IMD product of f1 and f2 up to the given harmonic
// orders. Products that share a frequency are all kept.
func Generate(f1, f2 float64, nMax, mMax int) []models.Product {
	products := make([]models.Product, 0, Count(nMax, mMax))
	for t := range Combinations(nMax, mMax) {
		products = append(products, models.Product{
			N:         t.N,
			M:         t.M,
			Sign1:     t.Sign1,
			Sign2:     t.Sign2,
			Frequency: t.Frequency(f1, f2),
		})
	}
	return products
}
