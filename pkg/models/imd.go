package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// Default transmitter frequencies in MHz
const (
	DefaultF1 = 100.0
	DefaultF2 = 200.0
)

// CalculationInput carries the two transmitter frequencies of a screening run
type CalculationInput struct {
	F1 float64 `json:"f1"`
	F2 float64 `json:"f2"`
}

// CalculationParams is the request body of a screening. A field left out
// takes its default; an explicit 0 is kept.
type CalculationParams struct {
	F1 *float64 `json:"f1,omitempty" minimum:"0" default:"100" example:"100" doc:"LMR Tx frequency in MHz"`
	F2 *float64 `json:"f2,omitempty" minimum:"0" default:"200" example:"200" doc:"WiFi Tx frequency in MHz, must be greater than f1"`
}

// Input resolves the params to concrete frequencies
func (p CalculationParams) Input() CalculationInput {
	in := CalculationInput{F1: DefaultF1, F2: DefaultF2}
	if p.F1 != nil {
		in.F1 = *p.F1
	}
	if p.F2 != nil {
		in.F2 = *p.F2
	}
	return in
}

// CalculateRequest represents a request to run an IMD screening
type CalculateRequest struct {
	Body CalculationParams
}

// ResultRow is one row of the presented IMD table
type ResultRow struct {
	ClassifiedProduct
	Highlight bool `json:"highlight" doc:"True when the product falls inside a checked band"`
}

// Calculation is the complete, sorted outcome of one screening run
type Calculation struct {
	ID                   string      `json:"id" doc:"Calculation identifier"`
	F1                   float64     `json:"f1" doc:"LMR Tx frequency in MHz"`
	F2                   float64     `json:"f2" doc:"WiFi Tx frequency in MHz"`
	NMax                 int         `json:"n_max" doc:"Highest harmonic order of f1"`
	MMax                 int         `json:"m_max" doc:"Highest harmonic order of f2"`
	CheckedBands         []Band      `json:"checked_bands" doc:"Bands used for overlap checking"`
	Count                int         `json:"count" doc:"Number of generated products"`
	OverlapCount         int         `json:"overlap_count" doc:"Number of products inside a checked band"`
	DuplicateFrequencies int         `json:"duplicate_frequencies" doc:"Products whose frequency repeats an earlier row (kept, not removed)"`
	Rows                 []ResultRow `json:"rows" doc:"Products sorted ascending by frequency"`
	CreatedAt            time.Time   `json:"created_at" doc:"When the calculation ran"`
}

// CalculateResponse wraps a calculation result
type CalculateResponse struct {
	Body *Calculation
}

// CSVResponse streams the result table as a CSV attachment
type CSVResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportResponseBody describes an uploaded CSV export
type ExportResponseBody struct {
	ID          string `json:"id" doc:"Export identifier"`
	FileName    string `json:"file_name" doc:"File name offered to the client"`
	DownloadURL string `json:"download_url" doc:"Pre-signed URL for downloading the CSV"`
	ExpiresIn   int    `json:"expires_in" doc:"URL expiration time in seconds"`
	Rows        int    `json:"rows" doc:"Number of data rows in the CSV"`
}

// ExportResponse represents the response from creating an export
type ExportResponse struct {
	Body ExportResponseBody
}

// BandRow is one row of the reference band table
type BandRow struct {
	Band
	Range   string `json:"range" example:"1559 MHz - 1610 MHz" doc:"Human readable range"`
	Checked bool   `json:"checked" doc:"True when the band is used for overlap checking"`
}

// BandsResponse lists the reference band table
type BandsResponse struct {
	Body struct {
		Bands []BandRow `json:"bands" doc:"Reference frequency bands"`
	}
}
