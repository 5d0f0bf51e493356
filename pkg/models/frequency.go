package models

import (
	"fmt"
	"strconv"
)

// Sign is the mixing polarity applied to one harmonic term of an IMD product
type Sign int

const (
	Positive Sign = 1
	Negative Sign = -1
)

// Signs lists both polarities in generation order
var Signs = [2]Sign{Positive, Negative}

// Product is one generated intermodulation product of two fundamentals
type Product struct {
	N         int     `json:"n" doc:"Harmonic order of f1"`
	M         int     `json:"m" doc:"Harmonic order of f2"`
	Sign1     Sign    `json:"sign_n" enum:"1,-1" doc:"Sign applied to the f1 term"`
	Sign2     Sign    `json:"sign_m" enum:"1,-1" doc:"Sign applied to the f2 term"`
	Frequency float64 `json:"frequency_mhz" doc:"IMD frequency in MHz"`
}

// Band is a named closed frequency interval in MHz
type Band struct {
	Name string  `json:"name" doc:"Band name"`
	Low  float64 `json:"low_mhz" doc:"Lower edge in MHz"`
	High float64 `json:"high_mhz" doc:"Upper edge in MHz"`
}

// Contains reports whether f lies inside the band, edges included
func (b Band) Contains(f float64) bool {
	return f >= b.Low && f <= b.High
}

// RangeLabel renders the band as "<low> MHz - <high> MHz"
func (b Band) RangeLabel() string {
	return fmt.Sprintf("%s MHz - %s MHz", FormatMHz(b.Low), FormatMHz(b.High))
}

// ClassifiedProduct is a product annotated with the bands it falls in
type ClassifiedProduct struct {
	Product
	Overlap string `json:"overlap" doc:"Comma separated names of the bands containing the frequency"`
}

// Overlaps reports whether at least one band matched
func (c ClassifiedProduct) Overlaps() bool {
	return c.Overlap != ""
}

// FormatMHz prints a frequency without trailing zeros
func FormatMHz(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
