package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/oracle"
	"resumeforge/internal/types"
)

// NewQualityReviewer returns an oracle-backed reviewer when a client is
// available, otherwise the rule-based one.
func NewQualityReviewer(client oracle.Client, cfg *config.AgentAIConfig, logger *errors.Logger, recorder Recorder) QualityReviewer {
	rule := &ruleQualityReviewer{logger: logger}
	if client == nil {
		return rule
	}
	return &oracleQualityReviewer{
		base: oracleBase{
			agent:    config.AgentQuality,
			client:   client,
			cfg:      cfg,
			logger:   logger,
			recorder: recorder,
		},
		fallback: rule,
	}
}

type oracleQualityReviewer struct {
	base     oracleBase
	fallback *ruleQualityReviewer
}

func (r *oracleQualityReviewer) Review(ctx context.Context, resume types.ResumeData, roleTitle string) types.QualityReview {
	started := time.Now()
	user := fmt.Sprintf(userPrompt(r.base.agent, r.base.cfg),
		roleTitle, resume.Summary, joinBullets(resume), strings.Join(resume.Skills, ", "))

	var review types.QualityReview
	if !r.base.generate(ctx, systemPrompt(r.base.agent, r.base.cfg), user, qualityReviewSchema, &review) {
		r.base.record(ctx, started, true)
		return r.fallback.Review(ctx, resume, roleTitle)
	}
	normalizeQualityReview(&review)
	r.base.record(ctx, started, false)
	return review
}

// Rule-based review: cliché list, metric-free bullet detection, and
// long-word repetition counting.

var clichePhrases = []string{
	"team player", "hard worker", "fast learner", "detail-oriented",
	"self-motivated", "go-getter", "think outside the box", "synergy",
}

var metricsPattern = regexp.MustCompile(`\d+[%]?|\d+\+|(\d+,\d+)`)

type ruleQualityReviewer struct {
	logger *errors.Logger
}

func (r *ruleQualityReviewer) Review(_ context.Context, resume types.ResumeData, _ string) types.QualityReview {
	review := types.QualityReview{}

	var allBullets []string
	for _, exp := range resume.Experience {
		allBullets = append(allBullets, exp.Bullets()...)
	}
	allText := strings.ToLower(resume.Summary + " " + strings.Join(allBullets, " "))

	for _, cliche := range clichePhrases {
		if strings.Contains(allText, cliche) {
			review.Cliches = append(review.Cliches, types.QualityIssue{
				Text:       cliche,
				Issue:      "Overused buzzword",
				Suggestion: "Replace with specific achievement",
				Severity:   "important",
			})
		}
	}

	for _, bullet := range allBullets {
		if !metricsPattern.MatchString(bullet) && len(bullet) > 20 {
			display := bullet
			if len(display) > 100 {
				display = display[:100] + "..."
			}
			review.MissingMetrics = append(review.MissingMetrics, types.QualityIssue{
				Bullet:     display,
				Issue:      "No quantifiable metrics",
				Suggestion: "Add specific numbers, percentages, or timeframes",
				Severity:   "important",
			})
		}
	}

	review.RepetitivePhrases = repetitiveWords(allText)

	totalBullets := len(allBullets)
	bulletsWithMetrics := totalBullets - len(review.MissingMetrics)
	metricsScore := int(float64(bulletsWithMetrics) / float64(max(totalBullets, 1)) * 100)

	overall := 85 - 5*len(review.Cliches)
	if metricsScore < 70 {
		overall -= 10
	}
	if overall < 0 {
		overall = 0
	}

	review.QualityScore = types.QualityScore{
		Overall:    overall,
		Spelling:   100,
		Metrics:    metricsScore,
		Formatting: 90,
		Content:    80,
	}
	review.Summary = fmt.Sprintf("Resume has %d bullets without metrics and %d clichéd phrases to address.",
		len(review.MissingMetrics), len(review.Cliches))

	normalizeQualityReview(&review)
	return review
}

// repetitiveWords flags words longer than five characters used more
// than four times, in first-occurrence order.
func repetitiveWords(text string) []types.QualityIssue {
	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(text) {
		if len(word) > 5 {
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	var issues []types.QualityIssue
	for _, word := range order {
		if counts[word] > 4 {
			issues = append(issues, types.QualityIssue{
				Phrase:     word,
				Count:      counts[word],
				Suggestion: "Use synonyms for variety",
				Severity:   "minor",
			})
		}
	}
	return issues
}

func joinBullets(resume types.ResumeData) string {
	var bullets []string
	for _, exp := range resume.Experience {
		for _, bullet := range exp.Bullets() {
			bullets = append(bullets, fmt.Sprintf("%s at %s: %s", orDefault(exp.Title, "Role"), orDefault(exp.Company, "Company"), bullet))
		}
	}
	return strings.Join(bullets, "\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
