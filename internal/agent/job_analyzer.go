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

// NewJobAnalyzer returns an oracle-backed analyzer when a client is
// available, otherwise the rule-based one.
func NewJobAnalyzer(client oracle.Client, cfg *config.AgentAIConfig, logger *errors.Logger, recorder Recorder) JobAnalyzer {
	rule := &ruleJobAnalyzer{logger: logger}
	if client == nil {
		return rule
	}
	return &oracleJobAnalyzer{
		base: oracleBase{
			agent:    config.AgentJobAnalysis,
			client:   client,
			cfg:      cfg,
			logger:   logger,
			recorder: recorder,
		},
		fallback: rule,
	}
}

type oracleJobAnalyzer struct {
	base     oracleBase
	fallback *ruleJobAnalyzer
}

func (a *oracleJobAnalyzer) Analyze(ctx context.Context, role types.RoleSubmission) types.JobAnalysis {
	started := time.Now()
	companyInfo := role.CompanyInfo
	if companyInfo == "" {
		companyInfo = "No additional company information provided."
	}
	user := fmt.Sprintf(userPrompt(a.base.agent, a.base.cfg),
		role.CompanyName, role.RoleTitle, role.JobDescription, companyInfo)

	var analysis types.JobAnalysis
	if !a.base.generate(ctx, systemPrompt(a.base.agent, a.base.cfg), user, jobAnalysisSchema, &analysis) {
		a.base.record(ctx, started, true)
		return a.fallback.Analyze(ctx, role)
	}
	normalizeJobAnalysis(&analysis)
	a.base.record(ctx, started, false)
	return analysis
}

// Rule-based extraction: regex skill patterns, action-verb sentence
// mining, title-substring seniority, years-of-experience capture.

var techSkillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(python|java|javascript|typescript|react|node\.?js|angular|vue|sql|nosql|aws|azure|gcp|docker|kubernetes|git)\b`),
	regexp.MustCompile(`\b(machine learning|deep learning|ai|nlp|computer vision|data science|analytics)\b`),
	regexp.MustCompile(`\b(api|rest|graphql|microservices|devops|ci/cd|agile|scrum)\b`),
}

var softSkillKeywords = []string{
	"leadership", "communication", "collaboration", "teamwork",
	"problem-solving", "analytical", "creative", "organized",
}

var responsibilityVerbs = []string{
	"develop", "design", "implement", "manage", "lead", "collaborate",
	"build", "create", "analyze", "optimize", "maintain",
}

var responsibilityPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(responsibilityVerbs))
	for i, verb := range responsibilityVerbs {
		patterns[i] = regexp.MustCompile(`[^.]*` + verb + `[^.]*\.`)
	}
	return patterns
}()

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)

type ruleJobAnalyzer struct {
	logger *errors.Logger
}

func (a *ruleJobAnalyzer) Analyze(_ context.Context, role types.RoleSubmission) types.JobAnalysis {
	jd := strings.ToLower(role.JobDescription)
	roleTitle := strings.ToLower(role.RoleTitle)

	hardSkills := extractHardSkills(jd)

	var softSkills []string
	for _, skill := range softSkillKeywords {
		if strings.Contains(jd, skill) {
			softSkills = append(softSkills, skill)
		}
	}

	responsibilities := extractResponsibilities(jd)

	years := "2-5"
	if m := yearsPattern.FindStringSubmatch(jd); m != nil {
		years = m[1]
	}

	analysis := types.JobAnalysis{
		Keywords: types.KeywordSet{
			HardSkills: hardSkills,
			SoftSkills: softSkills,
			TechStack:  append([]string{}, hardSkills...),
		},
		Responsibilities: responsibilities,
		Qualifications: types.Qualifications{
			Required: types.RequiredQualifications{
				Education:       []string{"Bachelor's degree"},
				ExperienceYears: years,
				MustHaveSkills:  firstN(hardSkills, 5),
			},
			Preferred: types.PreferredQualifications{
				Education:        []string{"Master's degree"},
				NiceToHaveSkills: sliceRange(hardSkills, 5, 10),
			},
		},
		SeniorityLevel: detectSeniority(roleTitle),
		SemanticContext: types.SemanticContext{
			RoleFocus:   roleTitle,
			KeyOutcomes: []string{"Deliver high-quality solutions", "Meet project deadlines"},
		},
	}
	normalizeJobAnalysis(&analysis)
	return analysis
}

// extractHardSkills collects pattern matches in first-seen order,
// deduplicated.
func extractHardSkills(jd string) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, pattern := range techSkillPatterns {
		for _, match := range pattern.FindAllString(jd, -1) {
			if !seen[match] {
				seen[match] = true
				skills = append(skills, match)
			}
		}
	}
	return skills
}

// extractResponsibilities mines sentences containing action verbs,
// capped at three sentences per verb and ten overall.
func extractResponsibilities(jd string) []types.Responsibility {
	var responsibilities []types.Responsibility
	for i, pattern := range responsibilityPatterns {
		verb := responsibilityVerbs[i]
		for _, match := range pattern.FindAllString(jd, 3) {
			responsibilities = append(responsibilities, types.Responsibility{
				Description:     strings.TrimSpace(match),
				Keywords:        []string{verb},
				SemanticMatches: []string{},
			})
		}
	}
	if len(responsibilities) > 10 {
		responsibilities = responsibilities[:10]
	}
	return responsibilities
}

func detectSeniority(roleTitle string) string {
	switch {
	case containsAny(roleTitle, "senior", "lead", "principal", "staff"):
		return types.SenioritySenior
	case containsAny(roleTitle, "junior", "entry", "associate"):
		return types.SeniorityJunior
	case containsAny(roleTitle, "director", "vp", "head", "chief"):
		return types.SeniorityExecutive
	default:
		return types.SeniorityMid
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	return append([]string{}, s...)
}

func sliceRange(s []string, from, to int) []string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	return append([]string{}, s[from:to]...)
}
