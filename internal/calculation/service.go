package calculation

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/imdscreen/internal/bands"
	apperrors "github.com/RMahshie/imdscreen/internal/errors"
	"github.com/RMahshie/imdscreen/internal/imd"
	"github.com/RMahshie/imdscreen/pkg/models"
)

// InvalidOrderMessage is shown when f2 does not exceed f1.
const InvalidOrderMessage = "F2 must be greater than F1. Please adjust the inputs."

// Recorder receives calculation metrics. A nil Recorder is allowed.
type Recorder interface {
	RecordCalculation(calc *models.Calculation, elapsed time.Duration)
	RecordRejected()
}

type CalculationService interface {
	Calculate(ctx context.Context, in models.CalculationInput) (*models.Calculation, error)
	ReferenceBands() bands.Table
	CheckedBands() bands.Table
}

// Limits are the highest harmonic orders applied to f1 and f2.
type Limits struct {
	NMax int
	MMax int
}

// DefaultLimits matches the fixed n_max = m_max = 5 screening depth.
var DefaultLimits = Limits{NMax: 5, MMax: 5}

type calculationService struct {
	limits    Limits
	reference bands.Table
	checked   bands.Table
	recorder  Recorder
	now       func() time.Time
}

func NewCalculationService(limits Limits, recorder Recorder) CalculationService {
	return &calculationService{
		limits:    limits,
		reference: bands.Reference(),
		checked:   bands.GNSS(),
		recorder:  recorder,
		now:       time.Now,
	}
}

// Validate checks the transmitter frequencies before any product is generated.
func Validate(in models.CalculationInput) error {
	if math.IsNaN(in.F1) || math.IsInf(in.F1, 0) || in.F1 < 0 {
		return apperrors.NewInputError("f1", "F1 must be a non-negative frequency in MHz.")
	}
	if math.IsNaN(in.F2) || math.IsInf(in.F2, 0) || in.F2 < 0 {
		return apperrors.NewInputError("f2", "F2 must be a non-negative frequency in MHz.")
	}
	if in.F2 <= in.F1 {
		return apperrors.NewInputError("f2", InvalidOrderMessage)
	}
	return nil
}

func (s *calculationService) Calculate(ctx context.Context, in models.CalculationInput) (*models.Calculation, error) {
	if err := Validate(in); err != nil {
		log.Warn().Float64("f1", in.F1).Float64("f2", in.F2).Err(err).Msg("Rejected IMD calculation")
		if s.recorder != nil {
			s.recorder.RecordRejected()
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()

	// Step 1: generate every harmonic/sign combination
	products := imd.Generate(in.F1, in.F2, s.limits.NMax, s.limits.MMax)

	// Step 2: annotate with the checked bands
	classified := imd.Classify(products, s.checked)

	// Step 3: present ascending by frequency, ties in generation order
	rows := make([]models.ResultRow, len(classified))
	overlaps := 0
	for i, c := range classified {
		rows[i] = models.ResultRow{ClassifiedProduct: c, Highlight: c.Overlaps()}
		if c.Overlaps() {
			overlaps++
		}
	}
	slices.SortStableFunc(rows, func(a, b models.ResultRow) int {
		return cmp.Compare(a.Frequency, b.Frequency)
	})

	calc := &models.Calculation{
		ID:                   uuid.New().String(),
		F1:                   in.F1,
		F2:                   in.F2,
		NMax:                 s.limits.NMax,
		MMax:                 s.limits.MMax,
		CheckedBands:         append([]models.Band(nil), s.checked...),
		Count:                len(rows),
		OverlapCount:         overlaps,
		DuplicateFrequencies: imd.DuplicateFrequencies(products),
		Rows:                 rows,
		CreatedAt:            start,
	}

	elapsed := s.now().Sub(start)
	if s.recorder != nil {
		s.recorder.RecordCalculation(calc, elapsed)
	}

	log.Info().
		Str("calculationID", calc.ID).
		Float64("f1", calc.F1).
		Float64("f2", calc.F2).
		Int("products", calc.Count).
		Int("overlaps", calc.OverlapCount).
		Int("duplicates", calc.DuplicateFrequencies).
		Dur("elapsed", elapsed).
		Msg("IMD calculation completed")

	return calc, nil
}

func (s *calculationService) ReferenceBands() bands.Table {
	return append(bands.Table(nil), s.reference...)
}

func (s *calculationService) CheckedBands() bands.Table {
	return append(bands.Table(nil), s.checked...)
}
