package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/imdscreen/internal/api/handlers"
	"github.com/RMahshie/imdscreen/internal/calculation"
	"github.com/RMahshie/imdscreen/internal/storage"
)

// RegisterRoutes sets up all API routes. s3Service may be nil.
func RegisterRoutes(api huma.API, calc calculation.CalculationService, s3Service storage.S3Service) {
	// Initialize handlers
	imdHandler := handlers.NewIMDHandler(calc, s3Service)

	huma.Register(api, huma.Operation{
		OperationID: "listBands",
		Method:      http.MethodGet,
		Path:        "/api/bands",
		Summary:     "List reference bands",
		Description: "Returns the reference frequency bands and marks those used for overlap checking",
		Tags:        []string{"Bands"},
	}, imdHandler.ListBands)

	huma.Register(api, huma.Operation{
		OperationID: "calculateIMD",
		Method:      http.MethodPost,
		Path:        "/api/imd/calculations",
		Summary:     "Calculate IMD frequencies",
		Description: "Generates every IMD product of f1 and f2, flags GNSS overlaps and returns the table sorted by frequency",
		Tags:        []string{"IMD"},
	}, imdHandler.Calculate)

	huma.Register(api, huma.Operation{
		OperationID: "calculateIMDCSV",
		Method:      http.MethodPost,
		Path:        "/api/imd/calculations/csv",
		Summary:     "Download IMD frequencies as CSV",
		Description: "Same table as calculateIMD, returned as a CSV attachment",
		Tags:        []string{"IMD"},
	}, imdHandler.CalculateCSV)

	huma.Register(api, huma.Operation{
		OperationID: "createIMDExport",
		Method:      http.MethodPost,
		Path:        "/api/imd/exports",
		Summary:     "Export IMD frequencies",
		Description: "Uploads the CSV table to object storage and returns a pre-signed download URL",
		Tags:        []string{"IMD"},
	}, imdHandler.CreateExport)
}
