package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"resumeforge/internal/oracle"
)

// Metrics holds the custom instruments for the tailoring service. The
// zero value is safe: every record method is a no-op until the
// instruments are created, so a disabled manager still hands out a
// usable instance.
type Metrics struct {
	// Specialist agent metrics
	AgentDuration  metric.Float64Histogram
	AgentRequests  metric.Int64Counter
	AgentFallbacks metric.Int64Counter
	AgentTokens    metric.Int64Histogram

	// Business metrics
	ResumesTailored metric.Int64Counter
	ResumesParsed   metric.Int64Counter
	JobsAnalyzed    metric.Int64Counter

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.AgentDuration, err = meter.Float64Histogram(
		"resumeforge_agent_duration_seconds",
		metric.WithDescription("Time spent per specialist agent run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent duration metric: %w", err)
	}

	m.AgentRequests, err = meter.Int64Counter(
		"resumeforge_agent_requests_total",
		metric.WithDescription("Total number of specialist agent runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent request metric: %w", err)
	}

	m.AgentFallbacks, err = meter.Int64Counter(
		"resumeforge_agent_fallbacks_total",
		metric.WithDescription("Agent runs served by the rule-based fallback"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent fallback metric: %w", err)
	}

	m.AgentTokens, err = meter.Int64Histogram(
		"resumeforge_agent_token_usage_total",
		metric.WithDescription("Token usage per agent oracle call (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token usage metric: %w", err)
	}

	m.ResumesTailored, err = meter.Int64Counter(
		"resumeforge_resumes_tailored_total",
		metric.WithDescription("Total number of tailoring runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resumes tailored metric: %w", err)
	}

	m.ResumesParsed, err = meter.Int64Counter(
		"resumeforge_resumes_parsed_total",
		metric.WithDescription("Total number of resumes parsed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resumes parsed metric: %w", err)
	}

	m.JobsAnalyzed, err = meter.Int64Counter(
		"resumeforge_jobs_analyzed_total",
		metric.WithDescription("Total number of job descriptions analyzed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create jobs analyzed metric: %w", err)
	}

	m.RateLimitHits, err = meter.Int64Counter(
		"resumeforge_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return m, nil
}

// RecordAgentRun implements agent.Recorder: one observation per agent
// run, labeled by agent name and whether the rule-based fallback
// produced the result.
func (m *Metrics) RecordAgentRun(ctx context.Context, agent string, elapsed time.Duration, usedFallback bool) {
	attrs := []attribute.KeyValue{
		attribute.String("agent", agent),
		attribute.Bool("fallback", usedFallback),
	}
	if m.AgentDuration != nil {
		m.AgentDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
	}
	if m.AgentRequests != nil {
		m.AgentRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if usedFallback && m.AgentFallbacks != nil {
		m.AgentFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("agent", agent)))
	}
}

// RecordTokenUsage implements agent.Recorder for oracle token counts
func (m *Metrics) RecordTokenUsage(ctx context.Context, agent string, usage *oracle.TokenUsage) {
	if m.AgentTokens == nil || usage == nil {
		return
	}
	for _, tt := range []struct {
		tokenType string
		value     int64
	}{
		{"input", usage.InputTokens},
		{"output", usage.OutputTokens},
		{"total", usage.TotalTokens},
	} {
		m.AgentTokens.Record(ctx, tt.value, metric.WithAttributes(
			attribute.String("agent", agent),
			attribute.String("token_type", tt.tokenType),
		))
	}
}

// RecordResumeTailored counts one completed tailoring run
func (m *Metrics) RecordResumeTailored(ctx context.Context, success bool) {
	if m.ResumesTailored != nil {
		m.ResumesTailored.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

// RecordResumeParsed counts one standalone resume parse
func (m *Metrics) RecordResumeParsed(ctx context.Context) {
	if m.ResumesParsed != nil {
		m.ResumesParsed.Add(ctx, 1)
	}
}

// RecordJobAnalyzed counts one standalone job analysis
func (m *Metrics) RecordJobAnalyzed(ctx context.Context) {
	if m.JobsAnalyzed != nil {
		m.JobsAnalyzed.Add(ctx, 1)
	}
}

// RecordRateLimitHit counts one rejected request
func (m *Metrics) RecordRateLimitHit(ctx context.Context, key string) {
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("key", key)))
	}
}
