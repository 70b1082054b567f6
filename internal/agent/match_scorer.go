package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/oracle"
	"resumeforge/internal/types"
)

// NewMatchScorer returns an oracle-backed scorer when a client is
// available, otherwise the rule-based one.
func NewMatchScorer(client oracle.Client, cfg *config.AgentAIConfig, logger *errors.Logger, recorder Recorder) MatchScorer {
	rule := &ruleMatchScorer{logger: logger}
	if client == nil {
		return rule
	}
	return &oracleMatchScorer{
		base: oracleBase{
			agent:    config.AgentScore,
			client:   client,
			cfg:      cfg,
			logger:   logger,
			recorder: recorder,
		},
		fallback: rule,
	}
}

type oracleMatchScorer struct {
	base     oracleBase
	fallback *ruleMatchScorer
}

func (s *oracleMatchScorer) Score(ctx context.Context, resume types.ResumeData, analysis types.JobAnalysis, role types.RoleSubmission) types.MatchScore {
	started := time.Now()

	var education []string
	for _, edu := range resume.Education {
		education = append(education, strings.TrimSpace(edu.Degree+" "+edu.Institution))
	}
	user := fmt.Sprintf(userPrompt(s.base.agent, s.base.cfg),
		role.RoleTitle,
		role.CompanyName,
		strings.Join(analysis.Keywords.HardSkills, ", "),
		strings.Join(analysis.Keywords.SoftSkills, ", "),
		strings.Join(analysis.Qualifications.Required.MustHaveSkills, ", "),
		resume.Summary,
		joinBullets(resume),
		strings.Join(resume.Skills, ", "),
		strings.Join(education, "; "))

	var score types.MatchScore
	if !s.base.generate(ctx, systemPrompt(s.base.agent, s.base.cfg), user, matchScoreSchema, &score) {
		s.base.record(ctx, started, true)
		return s.fallback.Score(ctx, resume, analysis, role)
	}
	normalizeMatchScore(&score)
	s.base.record(ctx, started, false)
	return score
}

// Rule-based scoring: keyword substring matching over the flattened
// resume text, weighted with estimated semantic and ATS components.

type ruleMatchScorer struct {
	logger *errors.Logger
}

func (s *ruleMatchScorer) Score(_ context.Context, resume types.ResumeData, analysis types.JobAnalysis, _ types.RoleSubmission) types.MatchScore {
	hardSkills := lowerAll(analysis.Keywords.HardSkills)
	softSkills := lowerAll(analysis.Keywords.SoftSkills)
	resumeText := resume.FlattenedText()

	var matched []string
	matchedHard := 0
	for _, skill := range hardSkills {
		if strings.Contains(resumeText, skill) {
			matched = append(matched, skill)
			matchedHard++
		}
	}
	for _, skill := range softSkills {
		if strings.Contains(resumeText, skill) {
			matched = append(matched, skill)
		}
	}

	totalKeywords := len(hardSkills) + len(softSkills)
	keywordScore := int(float64(len(matched)) / float64(max(totalKeywords, 1)) * 100)

	var missing []string
	for _, skill := range hardSkills {
		if len(missing) == 5 {
			break
		}
		if !strings.Contains(resumeText, skill) {
			missing = append(missing, skill)
		}
	}

	hasEducation := len(resume.Education) > 0
	qualsScore := 70
	if hasEducation {
		qualsScore += 20
	}
	if float64(len(matched)) > float64(len(hardSkills))*0.5 {
		qualsScore += 10
	}

	// Weighted average with estimated semantic (85) and ATS (90) parts
	overall := int(float64(keywordScore)*0.4 + float64(qualsScore)*0.3 + 85*0.2 + 90*0.1)

	score := types.MatchScore{
		OverallMatchScore: overall,
		ScoreBreakdown: types.ScoreBreakdown{
			KeywordMatch: types.KeywordMatch{
				Score:              keywordScore,
				MatchedKeywords:    matched,
				MissingKeywords:    missing,
				CoveragePercentage: keywordScore,
			},
			SemanticMatch: types.SemanticMatch{
				Score:       85,
				Explanation: "Estimated semantic alignment based on keyword matches",
			},
			ResponsibilitiesCoverage: types.ResponsibilitiesCoverage{
				Score: 80,
			},
			QualificationsFit: types.QualificationsFit{
				Score:           qualsScore,
				EducationMatch:  hasEducation,
				ExperienceMatch: true,
			},
			ATSCompliance: types.ATSCompliance{
				Score:           90,
				Recommendations: []string{"Use standard section headings", "Include keywords naturally"},
			},
		},
		ImprovementPriority: []types.ImprovementPriority{
			{
				Area:       "keyword_match",
				Impact:     "high",
				Suggestion: fmt.Sprintf("Add these missing keywords: %s", strings.Join(firstN(missing, 3), ", ")),
			},
		},
		Summary: fmt.Sprintf("Resume matches %d%% of required keywords. Add %d critical skills to improve ATS score.",
			keywordScore, len(missing)),
	}
	normalizeMatchScore(&score)
	return score
}

func lowerAll(s []string) []string {
	lowered := make([]string, len(s))
	for i, v := range s {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}
