package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/imdscreen/internal/calculation"
	apperrors "github.com/RMahshie/imdscreen/internal/errors"
	"github.com/RMahshie/imdscreen/internal/export"
	"github.com/RMahshie/imdscreen/internal/storage"
	"github.com/RMahshie/imdscreen/pkg/models"
)

// IMDHandler handles IMD screening HTTP requests
type IMDHandler struct {
	calc      calculation.CalculationService
	s3Service storage.S3Service
}

// NewIMDHandler creates a new IMD handler. s3Service may be nil, in which
// case uploaded exports are unavailable.
func NewIMDHandler(calc calculation.CalculationService, s3Service storage.S3Service) *IMDHandler {
	return &IMDHandler{
		calc:      calc,
		s3Service: s3Service,
	}
}

// ListBands returns the reference band table
func (h *IMDHandler) ListBands(ctx context.Context, _ *struct{}) (*models.BandsResponse, error) {
	checked := h.calc.CheckedBands()

	resp := &models.BandsResponse{}
	for _, b := range h.calc.ReferenceBands() {
		resp.Body.Bands = append(resp.Body.Bands, models.BandRow{
			Band:    b,
			Range:   b.RangeLabel(),
			Checked: checked.Has(b.Name),
		})
	}
	return resp, nil
}

// Calculate runs a screening and returns the sorted table
func (h *IMDHandler) Calculate(ctx context.Context, req *models.CalculateRequest) (*models.CalculateResponse, error) {
	calc, err := h.run(ctx, req.Body.Input())
	if err != nil {
		return nil, err
	}
	return &models.CalculateResponse{Body: calc}, nil
}

// CalculateCSV runs a screening and returns the table as a CSV attachment
func (h *IMDHandler) CalculateCSV(ctx context.Context, req *models.CalculateRequest) (*models.CSVResponse, error) {
	calc, err := h.run(ctx, req.Body.Input())
	if err != nil {
		return nil, err
	}

	data, err := export.Encode(calc.Rows)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to render CSV", err)
	}

	return &models.CSVResponse{
		ContentType:        export.ContentType,
		ContentDisposition: export.ContentDisposition(),
		Body:               data,
	}, nil
}

// CreateExport runs a screening, uploads the CSV and returns a download URL
func (h *IMDHandler) CreateExport(ctx context.Context, req *models.CalculateRequest) (*models.ExportResponse, error) {
	if h.s3Service == nil {
		return nil, huma.Error503ServiceUnavailable("CSV exports are not configured on this server")
	}

	calc, err := h.run(ctx, req.Body.Input())
	if err != nil {
		return nil, err
	}

	data, err := export.Encode(calc.Rows)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to render CSV", err)
	}

	exportID := uuid.New().String()
	key := storage.ExportKey(exportID, export.FileName)

	log.Info().Str("exportID", exportID).Str("key", key).Int("bytes", len(data)).Msg("Uploading CSV export")
	if err := h.s3Service.UploadExport(ctx, key, data, export.ContentType, export.FileName); err != nil {
		return nil, huma.Error502BadGateway("Failed to store export. Please try again.", err)
	}

	url, err := h.s3Service.GenerateDownloadURL(ctx, key, export.FileName)
	if err != nil {
		return nil, huma.Error502BadGateway("Failed to prepare download. Please try again.", err)
	}
	log.Info().Str("exportID", exportID).Msg("CSV export ready")

	return &models.ExportResponse{
		Body: models.ExportResponseBody{
			ID:          exportID,
			FileName:    export.FileName,
			DownloadURL: url,
			ExpiresIn:   int(h.s3Service.URLExpiry().Seconds()),
			Rows:        len(calc.Rows),
		},
	}, nil
}

// run calls the calculation service and maps its errors to HTTP errors
func (h *IMDHandler) run(ctx context.Context, in models.CalculationInput) (*models.Calculation, error) {
	calc, err := h.calc.Calculate(ctx, in)
	if err != nil {
		var ie apperrors.InputError
		if errors.As(err, &ie) {
			return nil, huma.Error400BadRequest(ie.Message, &huma.ErrorDetail{
				Message:  ie.Message,
				Location: "body." + ie.Field,
				Value:    fieldValue(in, ie.Field),
			})
		}
		return nil, huma.Error500InternalServerError("Failed to calculate IMD frequencies", err)
	}
	return calc, nil
}

func fieldValue(in models.CalculationInput, field string) any {
	if field == "f1" {
		return in.F1
	}
	return in.F2
}
