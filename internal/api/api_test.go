package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/club-roster-api/internal/api"
	"github.com/club-roster-api/internal/config"
	"github.com/club-roster-api/internal/mocks"
	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/club-roster-api/internal/service"
	"github.com/club-roster-api/internal/spreadsheet"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tealeg/xlsx"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router   *gin.Engine
	services *service.Services
	members  *mocks.MockMemberRepository
	groups   *mocks.MockGroupRepository
	imports  *mocks.MockImportRepository
	email    *mocks.MockEmailService
	token    string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		members: mocks.NewMockMemberRepository(),
		groups:  mocks.NewMockGroupRepository(),
		imports: mocks.NewMockImportRepository(),
		email:   mocks.NewMockEmailService(),
	}

	users := mocks.NewMockUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	users.EnsureUser(context.Background(), "admin", string(hash))

	repos := &repository.Repositories{
		Member:   env.members,
		Group:    env.groups,
		Import:   env.imports,
		Settings: mocks.NewMockSettingsRepository(),
		User:     users,
	}

	log := zerolog.Nop()
	auth := service.NewAuthService(users, &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, log)
	importSvc := service.NewImportService(
		env.imports,
		spreadsheet.Read,
		func(jobID int64) service.RowHandler { return service.NewMemberRowHandler(repos, jobID) },
		log,
	)

	env.services = &service.Services{
		Import: importSvc,
		Roster: service.NewRosterService(repos, log),
		Auth:   auth,
		Email:  env.email,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Import: config.ImportConfig{
			MaxUploadSize: 20 * 1024 * 1024,
			UploadDir:     t.TempDir(),
		},
	}

	env.router = api.NewRouter(env.services, cfg, log)

	token, err := auth.Login(context.Background(), "admin", "admin-pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	env.token = token

	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// memberWorkbook builds an in-memory xlsx upload wrapped in a
// multipart body.
func memberWorkbook(t *testing.T, dataRows [][]string) (*bytes.Buffer, string) {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Members")
	if err != nil {
		t.Fatalf("AddSheet failed: %v", err)
	}
	header := sheet.AddRow()
	for _, name := range []string{"ID", "Name", "Email", "Group", "Active", "Phone", "Address", "Date of Birth"} {
		header.AddCell().Value = name
	}
	for _, cells := range dataRows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().Value = v
		}
	}

	var workbook bytes.Buffer
	if err := file.Write(&workbook); err != nil {
		t.Fatalf("Write workbook failed: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "members.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatalf("Write part failed: %v", err)
	}
	writer.Close()

	return body, writer.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "club-roster-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin-pass"})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["token"] == "" {
		t.Error("Expected a token in the response")
	}
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	env := setupTestEnv(t)

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "Invalid credentials" {
		t.Errorf("Unexpected error message: %q", response["error"])
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/members"},
		{"GET", "/api/imports"},
		{"GET", "/api/settings"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", route.method, route.path, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/api/members", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for a forged token, got %d", w.Code)
	}
}

func TestImportLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	body, contentType := memberWorkbook(t, [][]string{
		{"1000", "John Smith", "john@example.com", "A", "Active", "420123456789", "Main St 12, 120 00 Prague", "1.2.1990"},
		{"abc", "Bad Row", "bad@example.com", "A", "Active", "", "", ""},
	})

	req := httptest.NewRequest("POST", "/api/imports/members", body)
	req.Header.Set("Content-Type", contentType)
	w := env.do(req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		ImportID int64  `json:"import_id"`
		Status   string `json:"status"`
		Message  string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.ImportID == 0 {
		t.Fatal("Expected an import id")
	}
	if created.Message != "Import started" {
		t.Errorf("Unexpected message: %q", created.Message)
	}

	// The run is asynchronous; wait for it before inspecting results.
	env.services.Import.Wait()

	detailReq := httptest.NewRequest("GET", fmt.Sprintf("/api/imports/%d", created.ImportID), nil)
	dw := env.do(detailReq)
	if dw.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", dw.Code, dw.Body.String())
	}

	var detail models.ImportDetail
	json.Unmarshal(dw.Body.Bytes(), &detail)
	if detail.Status != models.ImportStatusCompleted {
		t.Errorf("Expected completed status, got %s", detail.Status)
	}

	messages := map[string]bool{}
	for _, l := range detail.Logs {
		messages[l.Message] = true
	}
	if !messages["Inserted new member 1000"] {
		t.Errorf("Expected insert log, got %+v", detail.Logs)
	}
	if !messages["ID must be a number > 999. Got: abc"] {
		t.Errorf("Expected validation log for bad row, got %+v", detail.Logs)
	}

	if member := env.members.Members[1000]; member == nil || member.Email != "john@example.com" {
		t.Errorf("Expected member 1000 persisted, got %+v", member)
	}

	listReq := httptest.NewRequest("GET", "/api/imports", nil)
	lw := env.do(listReq)
	if lw.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", lw.Code)
	}
	var jobs []models.ImportJob
	json.Unmarshal(lw.Body.Bytes(), &jobs)
	if len(jobs) != 1 || jobs[0].ID != created.ImportID {
		t.Errorf("Expected the created job listed, got %+v", jobs)
	}
}

func TestImportWithoutFile(t *testing.T) {
	env := setupTestEnv(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()

	req := httptest.NewRequest("POST", "/api/imports/members", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := env.do(req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestGetImport_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest("GET", "/api/imports/42", nil)
	w := env.do(req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "Import not found" {
		t.Errorf("Unexpected error message: %q", response["error"])
	}
}

func TestSendWelcomeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.members.Members[1000] = &models.Member{ID: 1000, Email: "john@example.com"}

	body, _ := json.Marshal(map[string]string{
		"to":      "john@example.com",
		"subject": "Welcome to the club",
		"body":    "<p>Hi John</p>",
	})
	req := httptest.NewRequest("POST", "/api/members/1000/send-welcome", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(env.email.Sent) != 1 {
		t.Fatalf("Expected 1 email sent, got %d", len(env.email.Sent))
	}
	if env.email.Sent[0].To != "john@example.com" || env.email.Sent[0].Subject != "Welcome to the club" {
		t.Errorf("Unexpected email: %+v", env.email.Sent[0])
	}
}

func TestDeleteGroup_Conflict(t *testing.T) {
	env := setupTestEnv(t)
	env.groups.Groups["A"] = &models.Group{ID: "A", Trainer: "Jane Doe"}
	env.members.Members[1000] = &models.Member{ID: 1000, GroupID: "A"}

	req := httptest.NewRequest("DELETE", "/api/groups/A", nil)
	w := env.do(req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "Cannot delete group with assigned members" {
		t.Errorf("Unexpected error message: %q", response["error"])
	}
}

func TestCreateMember_FutureDateOfBirthRejected(t *testing.T) {
	env := setupTestEnv(t)

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Jane",
		"email":         "jane@example.com",
		"group_id":      "A",
		"date_of_birth": "2999-01-01",
	})
	req := httptest.NewRequest("POST", "/api/members", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := env.do(req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "Date of Birth cannot be in the future" {
		t.Errorf("Unexpected error message: %q", response["error"])
	}
}
