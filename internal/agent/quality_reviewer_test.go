package agent

import (
	"context"
	"strings"
	"testing"

	"resumeforge/internal/types"
)

func ruleReviewer(t *testing.T) *ruleQualityReviewer {
	t.Helper()
	return &ruleQualityReviewer{logger: testLogger(t)}
}

func TestRuleQualityReviewerCliches(t *testing.T) {
	resume := types.ResumeData{
		Summary: "A hard worker and team player with synergy.",
	}
	review := ruleReviewer(t).Review(context.Background(), resume, "Engineer")

	if len(review.Cliches) != 3 {
		t.Fatalf("cliches = %d, want 3: %+v", len(review.Cliches), review.Cliches)
	}
	for _, issue := range review.Cliches {
		if issue.Issue != "Overused buzzword" || issue.Severity != "important" {
			t.Errorf("cliche issue = %+v", issue)
		}
	}
	// 85 - 3*5 cliche penalty - 10 metrics penalty (no bullets means a
	// metrics score of zero)
	if review.QualityScore.Overall != 60 {
		t.Errorf("overall = %d, want 60", review.QualityScore.Overall)
	}
	if review.QualityScore.Metrics != 0 {
		t.Errorf("metrics = %d, want 0 with no bullets", review.QualityScore.Metrics)
	}
}

func TestRuleQualityReviewerMissingMetrics(t *testing.T) {
	resume := types.ResumeData{
		Experience: []types.Experience{
			{
				Achievements: "Increased revenue by 25% across two quarters\n" +
					"Maintained the internal documentation portal for engineering\n" +
					"Led a team", // short bullet, not flagged
			},
		},
	}
	review := ruleReviewer(t).Review(context.Background(), resume, "Engineer")

	if len(review.MissingMetrics) != 1 {
		t.Fatalf("missing metrics = %+v, want 1", review.MissingMetrics)
	}
	issue := review.MissingMetrics[0]
	if issue.Issue != "No quantifiable metrics" {
		t.Errorf("issue = %q", issue.Issue)
	}
	if issue.Suggestion != "Add specific numbers, percentages, or timeframes" {
		t.Errorf("suggestion = %q", issue.Suggestion)
	}
	// 2 of 3 bullets have metrics or are too short to flag: score is
	// (3-1)/3 = 66
	if review.QualityScore.Metrics != 66 {
		t.Errorf("metrics score = %d, want 66", review.QualityScore.Metrics)
	}
	// 85 - 0 cliches - 10 metrics penalty
	if review.QualityScore.Overall != 75 {
		t.Errorf("overall = %d, want 75", review.QualityScore.Overall)
	}
}

func TestRuleQualityReviewerBulletTruncation(t *testing.T) {
	long := strings.Repeat("managing stakeholder relationships ", 5) // > 100 chars, no digits
	resume := types.ResumeData{
		Experience: []types.Experience{{Achievements: long}},
	}
	review := ruleReviewer(t).Review(context.Background(), resume, "Engineer")

	if len(review.MissingMetrics) != 1 {
		t.Fatalf("missing metrics = %+v", review.MissingMetrics)
	}
	bullet := review.MissingMetrics[0].Bullet
	if !strings.HasSuffix(bullet, "...") {
		t.Errorf("long bullet should be truncated with ellipsis: %q", bullet)
	}
	if len(bullet) != 103 {
		t.Errorf("truncated bullet length = %d, want 103", len(bullet))
	}
}

func TestRuleQualityReviewerRepetitivePhrases(t *testing.T) {
	resume := types.ResumeData{
		Summary: strings.Repeat("responsible ", 5) + "for several initiatives",
	}
	review := ruleReviewer(t).Review(context.Background(), resume, "Engineer")

	if len(review.RepetitivePhrases) != 1 {
		t.Fatalf("repetitive phrases = %+v, want 1", review.RepetitivePhrases)
	}
	issue := review.RepetitivePhrases[0]
	if issue.Phrase != "responsible" || issue.Count != 5 {
		t.Errorf("phrase = %q count = %d", issue.Phrase, issue.Count)
	}
	if issue.Severity != "minor" {
		t.Errorf("severity = %q, want minor", issue.Severity)
	}
}

func TestRuleQualityReviewerCleanResume(t *testing.T) {
	resume := types.ResumeData{
		Summary: "Engineer focused on measurable outcomes.",
		Experience: []types.Experience{
			{Achievements: "Cut infrastructure spend by 30% in 2023\nShipped 12 features"},
		},
	}
	review := ruleReviewer(t).Review(context.Background(), resume, "Engineer")

	if review.QualityScore.Overall != 85 {
		t.Errorf("overall = %d, want 85 for a clean resume", review.QualityScore.Overall)
	}
	if review.QualityScore.Spelling != 100 || review.QualityScore.Formatting != 90 || review.QualityScore.Content != 80 {
		t.Errorf("fixed dimension scores = %+v", review.QualityScore)
	}
	if review.QualityScore.Metrics != 100 {
		t.Errorf("metrics = %d, want 100", review.QualityScore.Metrics)
	}
	want := "Resume has 0 bullets without metrics and 0 clichéd phrases to address."
	if review.Summary != want {
		t.Errorf("summary = %q", review.Summary)
	}
	if review.SpellingGrammar == nil || review.FormattingIssues == nil {
		t.Error("issue lists should be non-nil empty slices")
	}
}
