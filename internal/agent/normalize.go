package agent

import "resumeforge/internal/types"

// Oracle output passes through a coerce step before use: scores clamped
// to 0-100, seniority defaulted, slices made non-nil so downstream JSON
// serializes arrays instead of nulls.

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func coerceSeniority(level string) string {
	switch level {
	case types.SeniorityJunior, types.SeniorityMid, types.SenioritySenior, types.SeniorityExecutive:
		return level
	default:
		return types.SeniorityMid
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func normalizeJobAnalysis(a *types.JobAnalysis) {
	a.Keywords.HardSkills = nonNil(a.Keywords.HardSkills)
	a.Keywords.SoftSkills = nonNil(a.Keywords.SoftSkills)
	a.Keywords.IndustryTerms = nonNil(a.Keywords.IndustryTerms)
	a.Keywords.TechStack = nonNil(a.Keywords.TechStack)
	if a.Responsibilities == nil {
		a.Responsibilities = []types.Responsibility{}
	}
	for i := range a.Responsibilities {
		a.Responsibilities[i].Keywords = nonNil(a.Responsibilities[i].Keywords)
		a.Responsibilities[i].SemanticMatches = nonNil(a.Responsibilities[i].SemanticMatches)
	}
	a.Qualifications.Required.Education = nonNil(a.Qualifications.Required.Education)
	a.Qualifications.Required.Certifications = nonNil(a.Qualifications.Required.Certifications)
	a.Qualifications.Required.MustHaveSkills = nonNil(a.Qualifications.Required.MustHaveSkills)
	a.Qualifications.Preferred.Education = nonNil(a.Qualifications.Preferred.Education)
	a.Qualifications.Preferred.Certifications = nonNil(a.Qualifications.Preferred.Certifications)
	a.Qualifications.Preferred.NiceToHaveSkills = nonNil(a.Qualifications.Preferred.NiceToHaveSkills)
	a.SeniorityLevel = coerceSeniority(a.SeniorityLevel)
	a.SemanticContext.KeyOutcomes = nonNil(a.SemanticContext.KeyOutcomes)
	a.SemanticContext.RelatedRoles = nonNil(a.SemanticContext.RelatedRoles)
}

func normalizeParsedResume(r *types.ParsedResume) {
	if r.Education == nil {
		r.Education = []types.Education{}
	}
	if r.Experience == nil {
		r.Experience = []types.Experience{}
	}
	if r.Skills == nil {
		r.Skills = []types.Skill{}
	}
	if r.Projects == nil {
		r.Projects = []types.Project{}
	}
}

func normalizeQualityReview(q *types.QualityReview) {
	if q.SpellingGrammar == nil {
		q.SpellingGrammar = []types.QualityIssue{}
	}
	if q.MissingMetrics == nil {
		q.MissingMetrics = []types.QualityIssue{}
	}
	if q.RepetitivePhrases == nil {
		q.RepetitivePhrases = []types.QualityIssue{}
	}
	if q.Cliches == nil {
		q.Cliches = []types.QualityIssue{}
	}
	if q.FormattingIssues == nil {
		q.FormattingIssues = []types.QualityIssue{}
	}
	q.QualityScore.Overall = clampScore(q.QualityScore.Overall)
	q.QualityScore.Spelling = clampScore(q.QualityScore.Spelling)
	q.QualityScore.Metrics = clampScore(q.QualityScore.Metrics)
	q.QualityScore.Formatting = clampScore(q.QualityScore.Formatting)
	q.QualityScore.Content = clampScore(q.QualityScore.Content)
}

func normalizeContentOptimization(o *types.ContentOptimization) {
	o.OptimizedSummary.KeywordsIntegrated = nonNil(o.OptimizedSummary.KeywordsIntegrated)
	if o.OptimizedBullets == nil {
		o.OptimizedBullets = []types.OptimizedBullet{}
	}
	for i := range o.OptimizedBullets {
		o.OptimizedBullets[i].KeywordsIntegrated = nonNil(o.OptimizedBullets[i].KeywordsIntegrated)
		o.OptimizedBullets[i].ImpactScore = clampScore(o.OptimizedBullets[i].ImpactScore)
	}
	o.OptimizedSkills.PrioritizedSkills = nonNil(o.OptimizedSkills.PrioritizedSkills)
	o.OptimizedSkills.SkillsToAdd = nonNil(o.OptimizedSkills.SkillsToAdd)
	o.OptimizedSkills.SkillsToEmphasize = nonNil(o.OptimizedSkills.SkillsToEmphasize)
	o.OverallSuggestions = nonNil(o.OverallSuggestions)
}

func normalizeMatchScore(m *types.MatchScore) {
	m.OverallMatchScore = clampScore(m.OverallMatchScore)
	km := &m.ScoreBreakdown.KeywordMatch
	km.Score = clampScore(km.Score)
	km.CoveragePercentage = clampScore(km.CoveragePercentage)
	km.MatchedKeywords = nonNil(km.MatchedKeywords)
	km.MissingKeywords = nonNil(km.MissingKeywords)
	sm := &m.ScoreBreakdown.SemanticMatch
	sm.Score = clampScore(sm.Score)
	if sm.StrongAlignments == nil {
		sm.StrongAlignments = []types.SemanticAlignment{}
	}
	rc := &m.ScoreBreakdown.ResponsibilitiesCoverage
	rc.Score = clampScore(rc.Score)
	if rc.CoveredResponsibilities == nil {
		rc.CoveredResponsibilities = []types.CoveredResponsibility{}
	}
	rc.UncoveredResponsibilities = nonNil(rc.UncoveredResponsibilities)
	qf := &m.ScoreBreakdown.QualificationsFit
	qf.Score = clampScore(qf.Score)
	qf.Gaps = nonNil(qf.Gaps)
	ac := &m.ScoreBreakdown.ATSCompliance
	ac.Score = clampScore(ac.Score)
	ac.Issues = nonNil(ac.Issues)
	ac.Recommendations = nonNil(ac.Recommendations)
	if m.ImprovementPriority == nil {
		m.ImprovementPriority = []types.ImprovementPriority{}
	}
}

func normalizeRoleCalibration(c *types.RoleCalibration) {
	c.ToneAssessment.CurrentLevel = coerceSeniority(c.ToneAssessment.CurrentLevel)
	c.ToneAssessment.TargetLevel = coerceSeniority(c.ToneAssessment.TargetLevel)
	c.ToneAssessment.AlignmentScore = clampScore(c.ToneAssessment.AlignmentScore)
	c.ToneAssessment.Issues = nonNil(c.ToneAssessment.Issues)
	if c.VocabularyAdjustments == nil {
		c.VocabularyAdjustments = []types.VocabularyAdjustment{}
	}
	c.LeadershipCalibration.CurrentLeadershipCues = nonNil(c.LeadershipCalibration.CurrentLeadershipCues)
	c.LeadershipCalibration.SuggestedAdditions = nonNil(c.LeadershipCalibration.SuggestedAdditions)
	c.FormalityAdjustments.Suggestions = nonNil(c.FormalityAdjustments.Suggestions)
	if c.CalibratedExamples == nil {
		c.CalibratedExamples = []types.CalibratedExample{}
	}
	for i := range c.CalibratedExamples {
		c.CalibratedExamples[i].KeyChanges = nonNil(c.CalibratedExamples[i].KeyChanges)
	}
}
