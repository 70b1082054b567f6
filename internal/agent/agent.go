// Package agent implements the six specialist agents of the tailoring
// pipeline. Each agent is an interface with two implementations: a
// rule-based one that always works, and an oracle-backed one that wraps
// it and downgrades to it on any call or decode failure. Run methods
// never return errors; a structurally complete result always comes back.
package agent

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"google.golang.org/genai"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/oracle"
	"resumeforge/internal/types"
)

// Recorder receives per-run telemetry from the agents. Implementations
// must be safe for concurrent use; a nil Recorder disables recording.
type Recorder interface {
	RecordAgentRun(ctx context.Context, agent string, elapsed time.Duration, usedFallback bool)
	RecordTokenUsage(ctx context.Context, agent string, usage *oracle.TokenUsage)
}

// JobAnalyzer extracts structured requirements from a job posting.
type JobAnalyzer interface {
	Analyze(ctx context.Context, role types.RoleSubmission) types.JobAnalysis
}

// ResumeParser extracts structured data from free-form resume text.
type ResumeParser interface {
	Parse(ctx context.Context, resumeText string) types.ParsedResume
}

// QualityReviewer flags clichés, metric-free bullets, and repetition.
type QualityReviewer interface {
	Review(ctx context.Context, resume types.ResumeData, roleTitle string) types.QualityReview
}

// ContentOptimizer rewrites summary, bullets, and skill ordering to
// align with a job analysis.
type ContentOptimizer interface {
	Optimize(ctx context.Context, resume types.ResumeData, analysis types.JobAnalysis, role types.RoleSubmission) types.ContentOptimization
}

// MatchScorer scores a resume against a job analysis.
type MatchScorer interface {
	Score(ctx context.Context, resume types.ResumeData, analysis types.JobAnalysis, role types.RoleSubmission) types.MatchScore
}

// ToneCalibrator aligns resume language with a target seniority level.
type ToneCalibrator interface {
	Calibrate(ctx context.Context, resume types.ResumeData, targetLevel, roleTitle string) types.RoleCalibration
}

// Set bundles one instance of every specialist agent.
type Set struct {
	JobAnalyzer      JobAnalyzer
	ResumeParser     ResumeParser
	QualityReviewer  QualityReviewer
	ContentOptimizer ContentOptimizer
	MatchScorer      MatchScorer
	ToneCalibrator   ToneCalibrator

	clients map[string]oracle.Client
}

// NewSet builds all six agents from the application config. Agents whose
// oracle cannot be constructed (no API key, unsupported provider) are
// built rule-based only; NewSet itself never fails.
func NewSet(cfg *config.Config, logger *errors.Logger, recorder Recorder) *Set {
	s := &Set{}
	s.JobAnalyzer = NewJobAnalyzer(s.newClient(cfg, config.AgentJobAnalysis, logger), agentConfig(cfg, config.AgentJobAnalysis), logger, recorder)
	s.ResumeParser = NewResumeParser(s.newClient(cfg, config.AgentResumeParse, logger), agentConfig(cfg, config.AgentResumeParse), logger, recorder)
	s.QualityReviewer = NewQualityReviewer(s.newClient(cfg, config.AgentQuality, logger), agentConfig(cfg, config.AgentQuality), logger, recorder)
	s.ContentOptimizer = NewContentOptimizer(s.newClient(cfg, config.AgentOptimize, logger), agentConfig(cfg, config.AgentOptimize), logger, recorder)
	s.MatchScorer = NewMatchScorer(s.newClient(cfg, config.AgentScore, logger), agentConfig(cfg, config.AgentScore), logger, recorder)
	s.ToneCalibrator = NewToneCalibrator(s.newClient(cfg, config.AgentCalibrate, logger), agentConfig(cfg, config.AgentCalibrate), logger, recorder)
	return s
}

// Close releases every oracle client held by the set's agents.
func (s *Set) Close() error {
	var firstErr error
	for _, c := range s.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OracleStatus reports model info and circuit breaker state for every
// constructed oracle client, keyed by agent name. Agents running
// rule-based only do not appear.
func (s *Set) OracleStatus(ctx context.Context) map[string]any {
	status := make(map[string]any, len(s.clients))
	for agent, client := range s.clients {
		status[agent] = map[string]any{
			"model":           client.GetModelInfo(ctx),
			"circuit_breaker": client.GetCircuitBreakerStats(),
		}
	}
	return status
}

func agentConfig(cfg *config.Config, agent string) *config.AgentAIConfig {
	agentCfg := cfg.AgentConfig(agent)
	return &agentCfg
}

func (s *Set) newClient(cfg *config.Config, agent string, logger *errors.Logger) oracle.Client {
	client, err := oracle.New(agentConfig(cfg, agent), agent, logger)
	if err != nil {
		if stderrors.Is(err, oracle.ErrUnavailable) {
			logger.Info("Oracle not configured, agent runs rule-based only", "agent", agent)
		} else {
			logger.LogError(err, "Oracle client construction failed, agent runs rule-based only", "agent", agent)
		}
		return nil
	}
	if s.clients == nil {
		s.clients = make(map[string]oracle.Client)
	}
	s.clients[agent] = client
	return client
}

// oracleBase holds the shared machinery of the oracle-backed agents.
type oracleBase struct {
	agent    string
	client   oracle.Client
	cfg      *config.AgentAIConfig
	logger   *errors.Logger
	recorder Recorder
}

// generate runs one oracle call and decodes the JSON response into out.
// It reports false when the caller should use the rule-based result
// instead; it never returns an error.
func (b *oracleBase) generate(ctx context.Context, system, user string, schema *genai.Schema, out any) bool {
	raw, usage, err := b.client.GenerateJSON(ctx, oracle.Request{
		Agent:  b.agent,
		System: system,
		User:   user,
		Schema: schema,
	})
	if usage != nil && b.recorder != nil {
		b.recorder.RecordTokenUsage(ctx, b.agent, usage)
	}
	if err != nil {
		b.logger.Warn("Oracle call failed, downgrading to rule-based result",
			"agent", b.agent, "error", err.Error())
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		b.logger.Warn("Oracle response did not match the expected shape, downgrading to rule-based result",
			"agent", b.agent, "error", err.Error())
		return false
	}
	return true
}

// record reports one agent run to the recorder, if any.
func (b *oracleBase) record(ctx context.Context, started time.Time, usedFallback bool) {
	if b.recorder != nil {
		b.recorder.RecordAgentRun(ctx, b.agent, time.Since(started), usedFallback)
	}
}
