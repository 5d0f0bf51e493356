package bands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceTable(t *testing.T) {
	ref := Reference()
	require.Len(t, ref, 8)

	assert.Equal(t, []string{
		"GNSS L1, E1, B1",
		"GNSS L2, E6, B3, L6",
		"GNSS L5, E5, B2, L3",
		"WLAN 2.4G band",
		"WLAN 5G band",
		"WLAN 6G band",
		"LMR UHF",
		"LMR 800",
	}, ref.Names())

	assert.Equal(t, 1559.0, ref[0].Low)
	assert.Equal(t, 1610.0, ref[0].High)
	assert.Equal(t, "5945 MHz - 7125 MHz", ref[5].RangeLabel())
}

func TestReferenceReturnsCopy(t *testing.T) {
	ref := Reference()
	ref[0].Low = 0

	assert.Equal(t, 1559.0, Reference()[0].Low)
}

func TestGNSSTable(t *testing.T) {
	g := GNSS()
	require.Len(t, g, 3)
	assert.Equal(t, []string{GNSSL1, GNSSL2, GNSSL5}, g.Names())
	assert.True(t, g.Has(GNSSL5))
	assert.False(t, g.Has("LMR 800"))
}

func TestSubsetKeepsTableOrder(t *testing.T) {
	sub := Reference().Subset("LMR 800", "WLAN 2.4G band", "no such band")
	assert.Equal(t, []string{"WLAN 2.4G band", "LMR 800"}, sub.Names())
}
