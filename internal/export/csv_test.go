package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/imdscreen/pkg/models"
)

func row(n, m int, s1, s2 models.Sign, f float64, overlap string) models.ResultRow {
	return models.ResultRow{
		ClassifiedProduct: models.ClassifiedProduct{
			Product: models.Product{N: n, M: m, Sign1: s1, Sign2: s2, Frequency: f},
			Overlap: overlap,
		},
		Highlight: overlap != "",
	}
}

func TestEncode(t *testing.T) {
	rows := []models.ResultRow{
		row(1, 0, models.Positive, models.Negative, 100, ""),
		row(2, 5, models.Negative, models.Positive, 1215, "GNSS L2, E6, B3, L6, GNSS L5, E5, B2, L3"),
		row(3, 1, models.Positive, models.Positive, 1234.5, ""),
	}

	data, err := Encode(rows)
	require.NoError(t, err)

	want := "n,m,Sign of n,Sign of m,IMD Frequency (MHz),Overlap\n" +
		"1,0,1,-1,100.0,\n" +
		"2,5,-1,1,1215.0,\"GNSS L2, E6, B3, L6, GNSS L5, E5, B2, L3\"\n" +
		"3,1,1,1,1234.5,\n"
	assert.Equal(t, want, string(data))
}

func TestEncodeRoundTripsThroughReader(t *testing.T) {
	rows := []models.ResultRow{row(1, 1, models.Positive, models.Positive, 1200, "GNSS L5, E5, B2, L3")}

	data, err := Encode(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, "GNSS L5, E5, B2, L3", records[1][5])
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "n,m,Sign of n,Sign of m,IMD Frequency (MHz),Overlap\n", string(data))
}

func TestFormatFrequency(t *testing.T) {
	assert.Equal(t, "0.0", FormatFrequency(0))
	assert.Equal(t, "1559.0", FormatFrequency(1559))
	assert.Equal(t, "100.1", FormatFrequency(100.1))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesErrors(t *testing.T) {
	err := Write(failingWriter{}, []models.ResultRow{row(1, 0, models.Positive, models.Positive, 100, "")})
	assert.Error(t, err)
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `attachment; filename="imd_frequencies_with_gnss_overlap.csv"`, ContentDisposition())
}
