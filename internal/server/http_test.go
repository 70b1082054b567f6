package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumeforge/internal/agent"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/observability"
	"resumeforge/internal/pipeline"
	"resumeforge/internal/types"
)

func testServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	appCfg := &config.Config{}
	s := NewServer(appCfg, cfg, logger)
	// Empty config means no oracle clients; every agent runs rule-based.
	s.Agents = agent.NewSet(appCfg, logger, nil)
	s.Orchestrator = pipeline.NewOrchestrator(s.Agents, logger)
	return s
}

func testManager(t *testing.T) *observability.Manager {
	t.Helper()
	om, err := observability.NewManager(observability.Config{Enabled: false}, &config.Config{})
	if err != nil {
		t.Fatalf("creating observability manager: %v", err)
	}
	return om
}

func TestAuthMiddlewareOpenWhenNoKeysConfigured(t *testing.T) {
	s := testServer(t, ServerConfig{})
	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/tailor", nil))

	if !called {
		t.Error("expected handler to run without authentication when no keys configured")
	}
}

func TestAuthMiddlewareRejectsMissingAndInvalidKeys(t *testing.T) {
	s := testServer(t, ServerConfig{APIKeys: []string{"secret-key-12345"}})
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/tailor", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/tailor", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("invalid key: expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareAcceptsHeaderAndBearer(t *testing.T) {
	s := testServer(t, ServerConfig{APIKeys: []string{"secret-key-12345"}})
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/tailor", nil)
	req.Header.Set("X-API-Key", "secret-key-12345")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("X-API-Key: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/tailor", nil)
	req.Header.Set("Authorization", "Bearer secret-key-12345")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Bearer token: expected 200, got %d", rec.Code)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("expected short keys fully masked, got %q", got)
	}
	if got := maskAPIKey("secret-key-12345"); got != "secret-k****" {
		t.Errorf("expected prefix plus mask, got %q", got)
	}
}

func TestHealthHandlerRuleBasedOnly(t *testing.T) {
	s := testServer(t, ServerConfig{Version: "test"})
	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("expected healthy status without oracles, got %v", resp["status"])
	}
	oracles, ok := resp["oracles"].(map[string]any)
	if !ok {
		t.Fatalf("expected oracles object, got %T", resp["oracles"])
	}
	if oracles["configured"] != false {
		t.Errorf("expected configured=false when no oracle set up, got %v", oracles["configured"])
	}
}

func TestHealthHandlerRejectsPost(t *testing.T) {
	s := testServer(t, ServerConfig{})
	rec := httptest.NewRecorder()
	s.healthHandler(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestStatsHandlerReportsRateLimitConfig(t *testing.T) {
	s := testServer(t, ServerConfig{
		Version: "test",
		RateLimit: &config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 60,
			BurstCapacity:  10,
			ByIP:           true,
		},
	})
	defer s.RateLimiter.Close()

	rec := httptest.NewRecorder()
	s.statsHandler(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding stats response: %v", err)
	}
	rl, ok := resp["rate_limiting"].(map[string]any)
	if !ok {
		t.Fatalf("expected rate_limiting stats, got %T", resp["rate_limiting"])
	}
	if rl["burst_capacity"] != float64(10) {
		t.Errorf("expected burst capacity 10, got %v", rl["burst_capacity"])
	}
}

func TestTailorHandlerValidation(t *testing.T) {
	s := testServer(t, ServerConfig{})
	om := testManager(t)
	handler := s.createTailorHandler(om)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing role title", `{"profile":{"name":"A"},"role":{"company_name":"Acme","job_description":"jd"}}`, http.StatusBadRequest},
		{"missing company", `{"profile":{"name":"A"},"role":{"role_title":"Engineer","job_description":"jd"}}`, http.StatusBadRequest},
		{"missing job description", `{"profile":{"name":"A"},"role":{"role_title":"Engineer","company_name":"Acme"}}`, http.StatusBadRequest},
		{"malformed json", `{"profile":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tailor", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTailorHandlerRejectsWrongContentType(t *testing.T) {
	s := testServer(t, ServerConfig{})
	handler := s.createTailorHandler(testManager(t))

	req := httptest.NewRequest(http.MethodPost, "/tailor", strings.NewReader("profile=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong content type, got %d", rec.Code)
	}
}

func TestTailorHandlerEndToEnd(t *testing.T) {
	s := testServer(t, ServerConfig{})
	handler := s.createTailorHandler(testManager(t))

	body := TailorRequest{
		Profile: types.ProfileRecord{
			Name:    "Jordan Smith",
			Email:   "jordan@example.com",
			Summary: "Software engineer building web services with Python and AWS.",
			Skills:  json.RawMessage(`["Python","AWS","PostgreSQL"]`),
		},
		Role: types.RoleSubmission{
			CompanyName: "Acme Corp",
			RoleTitle:   "Senior Software Engineer",
			JobDescription: "We are looking for a senior software engineer with Python " +
				"and Kubernetes experience to lead our platform team.",
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/tailor", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var bundle types.Bundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decoding bundle: %v", err)
	}
	if !bundle.Success {
		t.Error("expected successful bundle from rule-based pipeline")
	}
	if !strings.Contains(bundle.FinalResume.ResumeMD, "Jordan Smith") {
		t.Errorf("expected markdown resume to carry profile name, got %q", bundle.FinalResume.ResumeMD)
	}
	if bundle.JobAnalysis.SeniorityLevel != types.SenioritySenior {
		t.Errorf("expected senior seniority from job description, got %q", bundle.JobAnalysis.SeniorityLevel)
	}
}

func TestParseHandlerEndToEnd(t *testing.T) {
	s := testServer(t, ServerConfig{})
	handler := s.createParseHandler(testManager(t))

	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(
		`{"resumeText":"Jordan Smith\njordan@example.com\n\nSkills: Python, AWS, PostgreSQL"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var parsed types.ParsedResume
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decoding parsed resume: %v", err)
	}
	if parsed.PersonalInfo.Email != "jordan@example.com" {
		t.Errorf("expected email extracted, got %q", parsed.PersonalInfo.Email)
	}
}

func TestParseHandlerMissingText(t *testing.T) {
	s := testServer(t, ServerConfig{})
	handler := s.createParseHandler(testManager(t))

	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(`{"resumeText":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeHandlerEndToEnd(t *testing.T) {
	s := testServer(t, ServerConfig{})
	handler := s.createAnalyzeHandler(testManager(t))

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(
		`{"companyName":"Acme Corp","roleTitle":"Staff Engineer",`+
			`"jobDescription":"Looking for a staff engineer with Go and Kubernetes experience."}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var analysis types.JobAnalysis
	if err := json.Unmarshal(rec.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("decoding analysis: %v", err)
	}
	if analysis.SeniorityLevel == "" {
		t.Error("expected seniority level to be set")
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := testServer(t, ServerConfig{MaxRequestSize: 64})
	handler := s.requestSizeLimitMiddleware()(s.createParseHandler(testManager(t)))

	big := `{"resumeText":"` + strings.Repeat("x", 256) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized body, got %d", rec.Code)
	}
}

func TestRateLimiterAllowsBurstThenRejects(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	limiter := NewRateLimiter(60, 2, logger)
	defer limiter.Close()

	if !limiter.Allow("ip:10.0.0.1") || !limiter.Allow("ip:10.0.0.1") {
		t.Fatal("expected burst capacity of 2 to admit two requests")
	}
	if limiter.Allow("ip:10.0.0.1") {
		t.Error("expected third immediate request to be rejected")
	}
	// A different key gets its own bucket.
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("expected fresh key to be admitted")
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5000"
	if got := getClientIP(req); got != "192.0.2.1" {
		t.Errorf("RemoteAddr: expected 192.0.2.1, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 192.0.2.1")
	if got := getClientIP(req); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For: expected first IP, got %q", got)
	}
}
