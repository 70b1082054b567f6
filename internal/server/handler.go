package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumeforge/internal/observability"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createTailorHandler wraps the tailoring pipeline with observability
func (s *Server) createTailorHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.tailor")
		defer span.End()

		var req TailorRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Role.RoleTitle) == "" {
			err := fmt.Errorf("missing role title")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing role title", "role.role_title field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Role.CompanyName) == "" {
			err := fmt.Errorf("missing company name")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing company name", "role.company_name field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Role.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "role.job_description field is required", http.StatusBadRequest)
			return
		}
		if s.MaxRequestSize > 0 && len(req.Role.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.Role.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large",
				fmt.Sprintf("job_description exceeds recommended size limit of %d characters", s.MaxRequestSize/2),
				http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("request.role_title", req.Role.RoleTitle),
			attribute.Int("request.job_length", len(req.Role.JobDescription)),
			attribute.String("operation", "tailor"),
		)

		bundle := s.Orchestrator.Generate(ctx, req.Profile, req.Role)

		metrics := om.GetMetrics()
		metrics.RecordResumeTailored(ctx, bundle.Success)

		span.SetAttributes(
			attribute.Bool("success", bundle.Success),
			attribute.Int("match.score", bundle.MatchScore.OverallMatchScore),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(bundle); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createParseHandler wraps the resume parser with observability
func (s *Server) createParseHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		var req ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("operation", "parse"),
		)

		parsed := s.Agents.ResumeParser.Parse(ctx, req.ResumeText)

		metrics := om.GetMetrics()
		metrics.RecordResumeParsed(ctx)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.experience_count", len(parsed.Experience)),
			attribute.Int("response.skill_count", len(parsed.Skills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(parsed); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createAnalyzeHandler wraps the job analyzer with observability
func (s *Server) createAnalyzeHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		analysis := s.Agents.JobAnalyzer.Analyze(ctx, types.RoleSubmission{
			CompanyName:    req.CompanyName,
			RoleTitle:      req.RoleTitle,
			JobDescription: req.JobDescription,
			CompanyInfo:    req.CompanyInfo,
		})

		metrics := om.GetMetrics()
		metrics.RecordJobAnalyzed(ctx)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("seniority", analysis.SeniorityLevel),
			attribute.Int("hard_skill_count", len(analysis.Keywords.HardSkills)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.Manager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := originalMiddleware(next)
		return func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			limited(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(), r.URL.Path)
			}
		}
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
