package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/oracle"
	"resumeforge/internal/types"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	return logger
}

// stubOracle returns a canned response or error from GenerateJSON.
type stubOracle struct {
	raw   json.RawMessage
	err   error
	calls int
}

func (s *stubOracle) GenerateJSON(_ context.Context, _ oracle.Request) (json.RawMessage, *oracle.TokenUsage, error) {
	s.calls++
	return s.raw, nil, s.err
}

func (s *stubOracle) GetModelInfo(_ context.Context) *oracle.ModelInfo {
	return &oracle.ModelInfo{Name: "stub", Available: true}
}

func (s *stubOracle) GetCircuitBreakerStats() map[string]any { return nil }

func (s *stubOracle) Close() error { return nil }

func testResume() types.ResumeData {
	return types.ResumeData{
		Name:    "Jordan Smith",
		Email:   "jordan@example.com",
		Summary: "Software engineer building web services with Python and AWS.",
		Skills:  []string{"Python", "AWS", "PostgreSQL"},
		Experience: []types.Experience{
			{
				Title:   "Software Engineer",
				Company: "Acme Corp",
				Achievements: "Developed a billing service handling 10,000 requests per day\n" +
					"Improved deployment pipeline reliability",
			},
		},
		Education: []types.Education{
			{Degree: "B.S. Computer Science", Institution: "State University"},
		},
	}
}

func testRole() types.RoleSubmission {
	return types.RoleSubmission{
		CompanyName: "Initech",
		RoleTitle:   "Senior Software Engineer",
		JobDescription: "We need a senior engineer with python, aws, docker and kubernetes. " +
			"You will develop scalable services and lead a small team. 5+ years experience required. " +
			"Strong communication and leadership skills.",
	}
}

func TestOracleAgentsDowngradeOnCallFailure(t *testing.T) {
	logger := testLogger(t)
	cfg := &config.AgentAIConfig{}
	stub := &stubOracle{err: fmt.Errorf("boom")}
	ctx := context.Background()

	analyzer := NewJobAnalyzer(stub, cfg, logger, nil)
	analysis := analyzer.Analyze(ctx, testRole())
	if len(analysis.Keywords.HardSkills) == 0 {
		t.Error("expected rule-based hard skills after oracle failure")
	}

	reviewer := NewQualityReviewer(stub, cfg, logger, nil)
	review := reviewer.Review(ctx, testResume(), "Engineer")
	if review.QualityScore.Spelling != 100 {
		t.Errorf("expected rule-based spelling score 100, got %d", review.QualityScore.Spelling)
	}

	scorer := NewMatchScorer(stub, cfg, logger, nil)
	score := scorer.Score(ctx, testResume(), analysis, testRole())
	if score.Summary == "" {
		t.Error("expected rule-based score summary after oracle failure")
	}

	if stub.calls != 3 {
		t.Errorf("expected 3 oracle calls, got %d", stub.calls)
	}
}

func TestOracleAgentsDowngradeOnMalformedResponse(t *testing.T) {
	logger := testLogger(t)
	cfg := &config.AgentAIConfig{}
	stub := &stubOracle{raw: json.RawMessage(`{"seniority_level": ["not", "a", "string"]}`)}

	analyzer := NewJobAnalyzer(stub, cfg, logger, nil)
	analysis := analyzer.Analyze(context.Background(), testRole())
	if analysis.SeniorityLevel != types.SenioritySenior {
		t.Errorf("expected rule-based seniority senior, got %q", analysis.SeniorityLevel)
	}
}

func TestOracleAgentUsesOracleResult(t *testing.T) {
	logger := testLogger(t)
	cfg := &config.AgentAIConfig{}
	response := types.JobAnalysis{
		Keywords:       types.KeywordSet{HardSkills: []string{"go", "kubernetes"}},
		SeniorityLevel: types.SeniorityExecutive,
	}
	raw, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("marshaling stub response: %v", err)
	}
	stub := &stubOracle{raw: raw}

	analyzer := NewJobAnalyzer(stub, cfg, logger, nil)
	analysis := analyzer.Analyze(context.Background(), testRole())
	if analysis.SeniorityLevel != types.SeniorityExecutive {
		t.Errorf("expected oracle seniority executive, got %q", analysis.SeniorityLevel)
	}
	if len(analysis.Keywords.HardSkills) != 2 {
		t.Errorf("expected 2 oracle hard skills, got %v", analysis.Keywords.HardSkills)
	}
	if analysis.Keywords.SoftSkills == nil {
		t.Error("expected coerced non-nil soft skills")
	}
}

func TestNewSetWithoutOracle(t *testing.T) {
	cfg := &config.Config{}
	set := NewSet(cfg, testLogger(t), nil)

	if set.JobAnalyzer == nil || set.ResumeParser == nil || set.QualityReviewer == nil ||
		set.ContentOptimizer == nil || set.MatchScorer == nil || set.ToneCalibrator == nil {
		t.Fatal("expected all six agents to be constructed")
	}
	if len(set.clients) != 0 {
		t.Errorf("expected no oracle clients without an API key, got %d", len(set.clients))
	}
	if err := set.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestCoerceSeniority(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"junior", types.SeniorityJunior},
		{"mid", types.SeniorityMid},
		{"senior", types.SenioritySenior},
		{"executive", types.SeniorityExecutive},
		{"", types.SeniorityMid},
		{"Senior", types.SeniorityMid},
		{"staff", types.SeniorityMid},
	}
	for _, tt := range tests {
		if got := coerceSeniority(tt.in); got != tt.want {
			t.Errorf("coerceSeniority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		if got := clampScore(tt.in); got != tt.want {
			t.Errorf("clampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
