package agent

import (
	"context"
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func ruleScorer(t *testing.T) *ruleMatchScorer {
	t.Helper()
	return &ruleMatchScorer{logger: testLogger(t)}
}

func scoringAnalysis() types.JobAnalysis {
	return types.JobAnalysis{
		Keywords: types.KeywordSet{
			HardSkills: []string{"Python", "AWS", "Terraform", "Kafka"},
			SoftSkills: []string{"communication", "leadership"},
		},
	}
}

func TestRuleMatchScorerKeywordFormula(t *testing.T) {
	resume := types.ResumeData{
		Summary: "Python engineer with AWS experience and strong communication.",
		Education: []types.Education{
			{Degree: "B.S.", Institution: "State University"},
		},
	}
	score := ruleScorer(t).Score(context.Background(), resume, scoringAnalysis(), types.RoleSubmission{})

	// 3 of 6 keywords matched: python, aws, communication
	if score.ScoreBreakdown.KeywordMatch.Score != 50 {
		t.Errorf("keyword score = %d, want 50", score.ScoreBreakdown.KeywordMatch.Score)
	}
	if score.ScoreBreakdown.KeywordMatch.CoveragePercentage != 50 {
		t.Errorf("coverage = %d, want 50", score.ScoreBreakdown.KeywordMatch.CoveragePercentage)
	}
	if got := score.ScoreBreakdown.KeywordMatch.MatchedKeywords; len(got) != 3 {
		t.Errorf("matched = %v", got)
	}
	if got := score.ScoreBreakdown.KeywordMatch.MissingKeywords; len(got) != 2 ||
		got[0] != "terraform" || got[1] != "kafka" {
		t.Errorf("missing = %v, want [terraform kafka]", got)
	}

	// Qualifications: 70 base + 20 education + 10 (3 matched > 2 = half
	// of hard skills)
	quals := score.ScoreBreakdown.QualificationsFit
	if quals.Score != 100 {
		t.Errorf("qualifications = %d, want 100", quals.Score)
	}
	if !quals.EducationMatch || !quals.ExperienceMatch || quals.CertificationMatch {
		t.Errorf("qualification flags = %+v", quals)
	}

	// 50*0.4 + 100*0.3 + 85*0.2 + 90*0.1 = 76
	if score.OverallMatchScore != 76 {
		t.Errorf("overall = %d, want 76", score.OverallMatchScore)
	}
}

func TestRuleMatchScorerNoEducationNoMatches(t *testing.T) {
	resume := types.ResumeData{Summary: "Retail background."}
	score := ruleScorer(t).Score(context.Background(), resume, scoringAnalysis(), types.RoleSubmission{})

	if score.ScoreBreakdown.KeywordMatch.Score != 0 {
		t.Errorf("keyword score = %d, want 0", score.ScoreBreakdown.KeywordMatch.Score)
	}
	if score.ScoreBreakdown.QualificationsFit.Score != 70 {
		t.Errorf("qualifications = %d, want 70 base", score.ScoreBreakdown.QualificationsFit.Score)
	}
	if score.ScoreBreakdown.QualificationsFit.EducationMatch {
		t.Error("education match should be false")
	}
	// 0*0.4 + 70*0.3 + 85*0.2 + 90*0.1 = 47
	if score.OverallMatchScore != 47 {
		t.Errorf("overall = %d, want 47", score.OverallMatchScore)
	}
	// Missing keywords are the hard skills only, capped at 5
	if got := score.ScoreBreakdown.KeywordMatch.MissingKeywords; len(got) != 4 {
		t.Errorf("missing = %v", got)
	}
}

func TestRuleMatchScorerFixedComponents(t *testing.T) {
	score := ruleScorer(t).Score(context.Background(), types.ResumeData{}, scoringAnalysis(), types.RoleSubmission{})

	if score.ScoreBreakdown.SemanticMatch.Score != 85 {
		t.Errorf("semantic = %d, want 85", score.ScoreBreakdown.SemanticMatch.Score)
	}
	if score.ScoreBreakdown.SemanticMatch.Explanation != "Estimated semantic alignment based on keyword matches" {
		t.Errorf("semantic explanation = %q", score.ScoreBreakdown.SemanticMatch.Explanation)
	}
	if score.ScoreBreakdown.ResponsibilitiesCoverage.Score != 80 {
		t.Errorf("responsibilities = %d, want 80", score.ScoreBreakdown.ResponsibilitiesCoverage.Score)
	}
	if score.ScoreBreakdown.ATSCompliance.Score != 90 {
		t.Errorf("ats = %d, want 90", score.ScoreBreakdown.ATSCompliance.Score)
	}
	if got := score.ScoreBreakdown.ATSCompliance.Recommendations; len(got) != 2 {
		t.Errorf("ats recommendations = %v", got)
	}
}

func TestRuleMatchScorerImprovementPriority(t *testing.T) {
	resume := types.ResumeData{Summary: "Python only."}
	score := ruleScorer(t).Score(context.Background(), resume, scoringAnalysis(), types.RoleSubmission{})

	if len(score.ImprovementPriority) != 1 {
		t.Fatalf("improvement priority = %+v", score.ImprovementPriority)
	}
	priority := score.ImprovementPriority[0]
	if priority.Area != "keyword_match" || priority.Impact != "high" {
		t.Errorf("priority = %+v", priority)
	}
	if !strings.Contains(priority.Suggestion, "aws, terraform, kafka") {
		t.Errorf("suggestion = %q, want first three missing keywords", priority.Suggestion)
	}
	if !strings.Contains(score.Summary, "matches 16%") {
		t.Errorf("summary = %q", score.Summary)
	}
	if !strings.Contains(score.Summary, "Add 3 critical skills") {
		t.Errorf("summary = %q", score.Summary)
	}
}
