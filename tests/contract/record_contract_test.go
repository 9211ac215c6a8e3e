package contract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/handler"
	"github.com/noah-isme/hygiea-go-api/internal/service"
)

type stubRecordService struct {
	result dto.SubmitResult
}

func (s stubRecordService) Submit(context.Context, service.SessionActor, dto.RecordDraft, service.EvidenceBatch) (dto.SubmitResult, error) {
	return s.result, nil
}

func (s stubRecordService) ListRecent(context.Context, int) ([]dto.RecordResponse, error) {
	return nil, nil
}

type stubDraftService struct{}

func (stubDraftService) Get(context.Context, string) (dto.DraftResponse, error) {
	return dto.DraftResponse{}, nil
}

func (stubDraftService) Update(context.Context, string, dto.DraftUpdateRequest) (dto.DraftResponse, error) {
	return dto.DraftResponse{}, nil
}

func (stubDraftService) AdjustScore(context.Context, string, int) (dto.DraftResponse, error) {
	return dto.DraftResponse{}, nil
}

func (stubDraftService) ResetAfterSubmit(context.Context, string) (dto.DraftResponse, error) {
	return dto.DraftResponse{}, nil
}

func TestRecordSubmissionContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "record_submission.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	result := dto.SubmitResult{
		RecordID:       "20240501083015_a1B2c",
		WeekNumber:     13,
		PreSemester:    false,
		InspectionDate: "2024-05-01",
		ClassLabel:     "101",
		DeductionScore: 2,
		PhotoURLs: []string{
			"https://res.cloudinary.com/demo/image/upload/c_limit,w_400/hygiea/evidence/2024-05-01_101_00",
		},
		StoredFiles:   []string{"2024-05-01_101_00.png"},
		FailedUploads: []dto.FailedEvidence{{Index: 1, Name: "b.png", Reason: "file exceeds maximum allowed size"}},
		SubmittedAt:   time.Now().UTC(),
	}

	recordHandler := handler.NewRecordHandler(stubRecordService{result: result}, stubDraftService{}, zerolog.Nop())

	app := fiber.New()
	recordHandler.Register(app.Group("/api/v1/records"))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"inspection_date": "2024-05-01",
		"class_label":     "101",
		"inspector_name":  "Chen Yi",
		"area":            "indoor",
		"item":            "floor",
		"condition":       "not cleaned",
		"deduction_score": "2",
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("photos", "a.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.NoError(t, schema.Validate(decoded))
}
