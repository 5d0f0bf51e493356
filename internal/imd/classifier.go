package imd

import (
	"strings"

	"github.com/RMahshie/imdscreen/pkg/models"
)

// Label joins, in band order, the names of the bands containing f.
// It returns "" when no band matches.
func Label(f float64, bands []models.Band) string {
	var names []string
	for _, b := range bands {
		if b.Contains(f) {
			names = append(names, b.Name)
		}
	}
	return strings.Join(names, ", ")
}

// Classify annotates each product with its overlap label. The result has
// the same length and order as products.
func Classify(products []models.Product, bands []models.Band) []models.ClassifiedProduct {
	out := make([]models.ClassifiedProduct, len(products))
	for i, p := range products {
		out[i] = models.ClassifiedProduct{
			Product: p,
			Overlap: Label(p.Frequency, bands),
		}
	}
	return out
}

// DuplicateFrequencies counts products whose frequency already appeared
// earlier in the slice.
func DuplicateFrequencies(products []models.Product) int {
	seen := make(map[float64]struct{}, len(products))
	dups := 0
	for _, p := range products {
		if _, ok := seen[p.Frequency]; ok {
			dups++
			continue
		}
		seen[p.Frequency] = struct{}{}
	}
	return dups
}
