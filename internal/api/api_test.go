package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/breachxpress-api/internal/api"
	"github.com/breachxpress-api/internal/config"
	"github.com/breachxpress-api/internal/mocks"
	"github.com/breachxpress-api/internal/models"
	"github.com/breachxpress-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// stubEvidenceStore records uploads without touching disk
type stubEvidenceStore struct {
	SavedFilenames []string
	SaveErr        error
}

func (s *stubEvidenceStore) Save(filename string, size int64, r io.Reader) (string, error) {
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.SavedFilenames = append(s.SavedFilenames, filename)
	io.Copy(io.Discard, r)
	return "evidence/stub-ref.pdf", nil
}

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockArticleService, *mocks.MockSubmissionService, *stubEvidenceStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockArticle := mocks.NewMockArticleService()
	mockSubmission := mocks.NewMockSubmissionService()
	mockSite := mocks.NewMockSiteService()

	services := &service.Services{
		Article:    mockArticle,
		Submission: mockSubmission,
		Site:       mockSite,
	}

	operators := mocks.NewMockOperatorRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("sekrit"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash failed: %v", err)
	}
	operators.Create(context.Background(), &models.Operator{
		ID:           "op-1",
		Username:     "admin",
		PasswordHash: string(hash),
	})

	evidence := &stubEvidenceStore{}

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "8080"},
		Evidence: config.EvidenceConfig{MaxSize: 1024 * 1024, Dir: t.TempDir()},
	}

	router := api.NewRouter(services, operators, evidence, cfg, zerolog.Nop())
	return router, mockArticle, mockSubmission, evidence
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "breachxpress-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestCreateSubmission(t *testing.T) {
	router, _, mockSubmission, evidence := setupTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("title", "City Hall Leak")
	mw.WriteField("summary", "Documents show irregular payments.")
	mw.WriteField("story", "The full account.")
	mw.WriteField("category", "corruption")
	mw.WriteField("tags", "corruption, city-hall")
	part, _ := mw.CreateFormFile("evidence", "dossier.pdf")
	part.Write([]byte("fake pdf bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/v1/submissions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["slug"] == "" {
		t.Error("Response should carry the submission slug")
	}

	if len(evidence.SavedFilenames) != 1 || evidence.SavedFilenames[0] != "dossier.pdf" {
		t.Errorf("Evidence file should have been stored, got %v", evidence.SavedFilenames)
	}

	sub := mockSubmission.Submissions["test-submission"]
	if sub == nil {
		t.Fatal("Submission should have reached the service")
	}
}

func TestCreateSubmissionDefaultsCategory(t *testing.T) {
	router, _, mockSubmission, _ := setupTestRouter(t)

	var got *models.SubmissionInput
	mockSubmission.SubmitFunc = func(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error) {
		got = in
		return &models.Submission{Slug: "s", PromotionStatus: models.PromotionPending}, nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("title", "t")
	mw.WriteField("summary", "s")
	mw.WriteField("story", "st")
	mw.Close()

	req := httptest.NewRequest("POST", "/v1/submissions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", w.Code)
	}
	if got.Category != "user_submitted" {
		t.Errorf("Missing category must default to user_submitted, got %q", got.Category)
	}
	if got.Evidence != "" {
		t.Errorf("No file uploaded, evidence must stay empty, got %q", got.Evidence)
	}
}

func TestCreateSubmissionValidationFailure(t *testing.T) {
	router, _, mockSubmission, _ := setupTestRouter(t)

	mockSubmission.SubmitFunc = func(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error) {
		return nil, models.ValidationErrors{{Field: "title", Message: "title is required"}}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("summary", "s")
	mw.Close()

	req := httptest.NewRequest("POST", "/v1/submissions", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "title") {
		t.Errorf("Response should name the failing field: %s", w.Body.String())
	}
}

func TestCreateSubmissionMalformedMultipart(t *testing.T) {
	router, _, mockSubmission, _ := setupTestRouter(t)

	mockSubmission.SubmitFunc = func(ctx context.Context, in *models.SubmissionInput) (*models.Submission, error) {
		t.Error("Submit must not run for a body that cannot be parsed")
		return nil, nil
	}

	// multipart content type without a boundary: unparseable, not merely
	// missing the evidence part
	req := httptest.NewRequest("POST", "/v1/submissions", strings.NewReader("not a multipart body"))
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGetArticleBySlug(t *testing.T) {
	router, mockArticle, _, _ := setupTestRouter(t)

	mockArticle.Articles["leak-20240301100000"] = &models.Article{
		ID:        "a-1",
		Slug:      "leak-20240301100000",
		Title:     "Leak",
		Published: true,
	}

	req := httptest.NewRequest("GET", "/v1/articles/leak-20240301100000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Article     models.Article `json:"article"`
		ReadingTime string         `json:"reading_time"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.Article.Slug != "leak-20240301100000" {
		t.Errorf("Unexpected article: %+v", response.Article)
	}
	if response.ReadingTime != "1 min read" {
		t.Errorf("Expected reading time '1 min read', got %q", response.ReadingTime)
	}
}

func TestGetUnpublishedArticleIs404(t *testing.T) {
	router, mockArticle, _, _ := setupTestRouter(t)

	mockArticle.Articles["draft"] = &models.Article{ID: "a-1", Slug: "draft", Published: false}

	req := httptest.NewRequest("GET", "/v1/articles/draft", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestListArticlesFiltersCategory(t *testing.T) {
	router, mockArticle, _, _ := setupTestRouter(t)

	mockArticle.Articles["a"] = &models.Article{ID: "a", Slug: "a", Published: true, Category: "corruption"}
	mockArticle.Articles["b"] = &models.Article{ID: "b", Slug: "b", Published: true, Category: "justice"}

	req := httptest.NewRequest("GET", "/v1/articles?category=corruption", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Articles []models.Article `json:"articles"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Articles) != 1 || response.Articles[0].Slug != "a" {
		t.Errorf("Expected only the corruption article, got %+v", response.Articles)
	}
}

func TestAdminRequiresAuth(t *testing.T) {
	router, _, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/v1/admin/submissions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without credentials, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/v1/admin/submissions", nil)
	req.SetBasicAuth("admin", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with bad password, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/v1/admin/submissions", nil)
	req.SetBasicAuth("nobody", "sekrit")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 with unknown operator, got %d", w.Code)
	}
}

func TestPromoteSubmission(t *testing.T) {
	router, _, mockSubmission, _ := setupTestRouter(t)

	mockSubmission.Submissions["leak-20240210090000"] = &models.Submission{
		ID:              "sub-1",
		Slug:            "leak-20240210090000",
		Title:           "Leak",
		PromotionStatus: models.PromotionPending,
	}

	req := httptest.NewRequest("POST", "/v1/admin/submissions/leak-20240210090000/promote", nil)
	req.SetBasicAuth("admin", "sekrit")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Article models.Article `json:"article"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if !response.Article.Published {
		t.Error("Promoted article must be published")
	}
}

func TestPromoteFailureNamesSubmission(t *testing.T) {
	router, _, mockSubmission, _ := setupTestRouter(t)

	mockSubmission.PromoteFunc = func(ctx context.Context, slug string) (*models.Article, error) {
		return nil, &models.PromotionError{SubmissionSlug: slug, Err: io.ErrUnexpectedEOF}
	}

	req := httptest.NewRequest("POST", "/v1/admin/submissions/leak-x/promote", nil)
	req.SetBasicAuth("admin", "sekrit")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["submission"] != "leak-x" {
		t.Errorf("Response should name the retryable submission, got %v", response)
	}
}

func TestPromoteUnknownSubmission(t *testing.T) {
	router, _, _, _ := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/v1/admin/submissions/nope/promote", nil)
	req.SetBasicAuth("admin", "sekrit")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestContactForm(t *testing.T) {
	router, _, _, _ := setupTestRouter(t)

	payload := `{"name":"Jordan","email":"jordan@example.com","subject":"Tip","message":"Call me."}`
	req := httptest.NewRequest("POST", "/v1/contact", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateArticleRequiresAuth(t *testing.T) {
	router, _, _, _ := setupTestRouter(t)

	payload := `{"title":"t","summary":"s","body":"b"}`
	req := httptest.NewRequest("POST", "/v1/admin/articles", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestCreateArticle(t *testing.T) {
	router, mockArticle, _, _ := setupTestRouter(t)

	var got *models.ArticleInput
	mockArticle.CreateFunc = func(ctx context.Context, in *models.ArticleInput) (*models.Article, error) {
		got = in
		return &models.Article{Slug: "t-20240301100000", Title: in.Title, Published: in.Published}, nil
	}

	payload := `{"title":"t","summary":"s","body":"b","author":"Desk","published":true}`
	req := httptest.NewRequest("POST", "/v1/admin/articles", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("admin", "sekrit")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if got == nil || got.Title != "t" {
		t.Errorf("Input should have reached the service, got %+v", got)
	}
}
