// Package bands holds the fixed frequency band tables used for IMD screening.
package bands

import (
	"github.com/RMahshie/imdscreen/pkg/models"
)

// Table is an ordered list of bands. Order is significant: overlap labels
// join matching band names in table order.
type Table []models.Band

const (
	GNSSL1 = "GNSS L1, E1, B1"
	GNSSL2 = "GNSS L2, E6, B3, L6"
	GNSSL5 = "GNSS L5, E5, B2, L3"
)

var reference = Table{
	{Name: GNSSL1, Low: 1559, High: 1610},
	{Name: GNSSL2, Low: 1215, High: 1300},
	{Name: GNSSL5, Low: 1164, High: 1215},
	{Name: "WLAN 2.4G band", Low: 2400, High: 2500},
	{Name: "WLAN 5G band", Low: 5725, High: 5875},
	{Name: "WLAN 6G band", Low: 5945, High: 7125},
	{Name: "LMR UHF", Low: 350, High: 470},
	{Name: "LMR 800", Low: 806, High: 870},
}

var gnss = []string{GNSSL1, GNSSL2, GNSSL5}

// Reference returns a copy of the full reference table shown to users.
func Reference() Table {
	return append(Table(nil), reference...)
}

// GNSS returns the bands used for overlap checking.
func GNSS() Table {
	return Reference().Subset(gnss...)
}

// Subset returns the bands whose names are listed, keeping table order.
// Unknown names are ignored.
func (t Table) Subset(names ...string) Table {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out Table
	for _, b := range t {
		if want[b.Name] {
			out = append(out, b)
		}
	}
	return out
}

// Names returns the band names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, b := range t {
		names[i] = b.Name
	}
	return names
}

// Has reports whether a band with the given name is in the table.
func (t Table) Has(name string) bool {
	for _, b := range t {
		if b.Name == name {
			return true
		}
	}
	return false
}
