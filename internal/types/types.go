package types

import (
	"encoding/json"
	"strings"
)

// Seniority levels used by job analysis and tone calibration.
const (
	SeniorityJunior    = "junior"
	SeniorityMid       = "mid"
	SenioritySenior    = "senior"
	SeniorityExecutive = "executive"
)

// RoleSubmission represents one tailoring request target
type RoleSubmission struct {
	CompanyName    string `json:"company_name"`
	RoleTitle      string `json:"role_title"`
	JobDescription string `json:"job_description"`
	CompanyInfo    string `json:"company_info,omitempty"`
}

// ProfileRecord is the raw profile shape handed to the pipeline. The
// experience/education/skills/projects fields may arrive either as JSON
// arrays or as JSON strings containing arrays; normalization happens in
// the pipeline with a single decode step.
type ProfileRecord struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Location   string          `json:"location,omitempty"`
	LinkedIn   string          `json:"linkedin,omitempty"`
	Summary    string          `json:"summary"`
	Experience json.RawMessage `json:"experience,omitempty"`
	Education  json.RawMessage `json:"education,omitempty"`
	Skills     json.RawMessage `json:"skills,omitempty"`
	Projects   json.RawMessage `json:"projects,omitempty"`
}

// PersonalInfo holds identity and contact fields extracted from a resume
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

// Education entry; dates are opaque display strings, never parsed
type Education struct {
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Institution  string `json:"institution"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	GPA          string `json:"gpa"`
	Achievements string `json:"achievements"`
}

// Experience entry
type Experience struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
	Achievements string `json:"achievements"`
}

// Bullets returns the non-empty lines of the description followed by the
// non-empty lines of the achievements, order preserved.
func (e Experience) Bullets() []string {
	var bullets []string
	for _, block := range []string{e.Description, e.Achievements} {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				bullets = append(bullets, line)
			}
		}
	}
	return bullets
}

// Dates renders the display date range for an experience entry
func (e Experience) Dates() string {
	end := e.EndDate
	if e.Current && end == "" {
		end = "Present"
	}
	switch {
	case e.StartDate != "" && end != "":
		return e.StartDate + " - " + end
	case e.StartDate != "":
		return e.StartDate
	default:
		return end
	}
}

// Skill is a named skill in a free-text category bucket
type Skill struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

// Project entry
type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url"`
	Achievements string `json:"achievements"`
}

// ParsedResume is the structured output of the resume parser
type ParsedResume struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`
	Projects     []Project    `json:"projects"`
}

// ResumeData is the normalized profile view handed to the specialist
// agents: skill names flattened, JSON-string fields already decoded.
type ResumeData struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	LinkedIn   string       `json:"linkedin"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
	Projects   []Project    `json:"projects"`
}

// FlattenedText concatenates summary, skills, and all experience bullets
// into one lower-cased blob for keyword matching.
func (r ResumeData) FlattenedText() string {
	parts := []string{r.Summary}
	parts = append(parts, r.Skills...)
	for _, exp := range r.Experience {
		parts = append(parts, exp.Bullets()...)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// KeywordSet groups the keyword categories extracted from a job posting
type KeywordSet struct {
	HardSkills    []string `json:"hard_skills"`
	SoftSkills    []string `json:"soft_skills"`
	IndustryTerms []string `json:"industry_terms"`
	TechStack     []string `json:"tech_stack"`
}

// Responsibility is one extracted job duty
type Responsibility struct {
	Description     string   `json:"description"`
	Keywords        []string `json:"keywords"`
	SemanticMatches []string `json:"semantic_matches"`
}

// RequiredQualifications are hard requirements from a job posting
type RequiredQualifications struct {
	Education       []string `json:"education"`
	Certifications  []string `json:"certifications"`
	ExperienceYears string   `json:"experience_years"`
	MustHaveSkills  []string `json:"must_have_skills"`
}

// PreferredQualifications are nice-to-have items from a job posting
type PreferredQualifications struct {
	Education        []string `json:"education"`
	Certifications   []string `json:"certifications"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
}

// Qualifications groups required and preferred qualifications
type Qualifications struct {
	Required  RequiredQualifications  `json:"required"`
	Preferred PreferredQualifications `json:"preferred"`
}

// SemanticContext captures the contextual reading of the role
type SemanticContext struct {
	RoleFocus    string   `json:"role_focus"`
	KeyOutcomes  []string `json:"key_outcomes"`
	RelatedRoles []string `json:"related_roles"`
}

// JobAnalysis is the structured output of the job analyzer
type JobAnalysis struct {
	Keywords         KeywordSet       `json:"keywords"`
	Responsibilities []Responsibility `json:"responsibilities"`
	Qualifications   Qualifications   `json:"qualifications"`
	SeniorityLevel   string           `json:"seniority_level"`
	SemanticContext  SemanticContext  `json:"semantic_context"`
}

// QualityIssue is one flagged problem in a resume. The optional fields
// vary by issue category: cliches carry Text, missing-metrics carry
// Bullet, repetitive phrases carry Phrase and Count.
type QualityIssue struct {
	Text       string `json:"text,omitempty"`
	Bullet     string `json:"bullet,omitempty"`
	Phrase     string `json:"phrase,omitempty"`
	Count      int    `json:"count,omitempty"`
	Issue      string `json:"issue,omitempty"`
	Suggestion string `json:"suggestion"`
	Severity   string `json:"severity"`
}

// QualityScore holds the 0-100 per-dimension quality scores
type QualityScore struct {
	Overall    int `json:"overall"`
	Spelling   int `json:"spelling"`
	Metrics    int `json:"metrics"`
	Formatting int `json:"formatting"`
	Content    int `json:"content"`
}

// QualityReview is the structured output of the quality reviewer
type QualityReview struct {
	SpellingGrammar   []QualityIssue `json:"spelling_grammar"`
	MissingMetrics    []QualityIssue `json:"missing_metrics"`
	RepetitivePhrases []QualityIssue `json:"repetitive_phrases"`
	Cliches           []QualityIssue `json:"cliches"`
	FormattingIssues  []QualityIssue `json:"formatting_issues"`
	QualityScore      QualityScore   `json:"quality_score"`
	Summary           string         `json:"summary"`
}

// OptimizedSummary is the summary rewrite with its provenance
type OptimizedSummary struct {
	Original           string   `json:"original"`
	Optimized          string   `json:"optimized"`
	Explanation        string   `json:"explanation"`
	KeywordsIntegrated []string `json:"keywords_integrated"`
}

// OptimizedBullet is one enhanced experience bullet
type OptimizedBullet struct {
	Original           string   `json:"original"`
	Optimized          string   `json:"optimized"`
	Explanation        string   `json:"explanation"`
	KeywordsIntegrated []string `json:"keywords_integrated"`
	ImpactScore        int      `json:"impact_score"`
}

// OptimizedSkills is the reprioritized skills view
type OptimizedSkills struct {
	PrioritizedSkills []string `json:"prioritized_skills"`
	SkillsToAdd       []string `json:"skills_to_add"`
	SkillsToEmphasize []string `json:"skills_to_emphasize"`
	Explanation       string   `json:"explanation"`
}

// ContentOptimization is the structured output of the content optimizer
type ContentOptimization struct {
	OptimizedSummary   OptimizedSummary  `json:"optimized_summary"`
	OptimizedBullets   []OptimizedBullet `json:"optimized_bullets"`
	OptimizedSkills    OptimizedSkills   `json:"optimized_skills"`
	OverallSuggestions []string          `json:"overall_suggestions"`
}

// KeywordMatch is the keyword layer of the match score breakdown
type KeywordMatch struct {
	Score              int      `json:"score"`
	MatchedKeywords    []string `json:"matched_keywords"`
	MissingKeywords    []string `json:"missing_keywords"`
	CoveragePercentage int      `json:"coverage_percentage"`
}

// SemanticAlignment pairs a resume phrase with a job requirement
type SemanticAlignment struct {
	ResumeText     string `json:"resume_text"`
	JobRequirement string `json:"job_requirement"`
}

// SemanticMatch is the semantic layer of the match score breakdown
type SemanticMatch struct {
	Score            int                 `json:"score"`
	StrongAlignments []SemanticAlignment `json:"strong_alignments"`
	Explanation      string              `json:"explanation"`
}

// CoveredResponsibility pairs a job duty with its resume evidence
type CoveredResponsibility struct {
	Responsibility string `json:"responsibility"`
	ResumeEvidence string `json:"resume_evidence"`
}

// ResponsibilitiesCoverage scores how well achievements cover job duties
type ResponsibilitiesCoverage struct {
	Score                     int                     `json:"score"`
	CoveredResponsibilities   []CoveredResponsibility `json:"covered_responsibilities"`
	UncoveredResponsibilities []string                `json:"uncovered_responsibilities"`
}

// QualificationsFit scores education/experience/certification match
type QualificationsFit struct {
	Score              int      `json:"score"`
	EducationMatch     bool     `json:"education_match"`
	ExperienceMatch    bool     `json:"experience_match"`
	CertificationMatch bool     `json:"certification_match"`
	Gaps               []string `json:"gaps"`
}

// ATSCompliance scores the resume's machine-parseability
type ATSCompliance struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// ScoreBreakdown groups all match score layers
type ScoreBreakdown struct {
	KeywordMatch             KeywordMatch             `json:"keyword_match"`
	SemanticMatch            SemanticMatch            `json:"semantic_match"`
	ResponsibilitiesCoverage ResponsibilitiesCoverage `json:"responsibilities_coverage"`
	QualificationsFit        QualificationsFit        `json:"qualifications_fit"`
	ATSCompliance            ATSCompliance            `json:"ats_compliance"`
}

// ImprovementPriority is one ranked improvement action
type ImprovementPriority struct {
	Area       string `json:"area"`
	Impact     string `json:"impact"`
	Suggestion string `json:"suggestion"`
}

// MatchScore is the structured output of the match scorer
type MatchScore struct {
	OverallMatchScore   int                   `json:"overall_match_score"`
	ScoreBreakdown      ScoreBreakdown        `json:"score_breakdown"`
	ImprovementPriority []ImprovementPriority `json:"improvement_priority"`
	Summary             string                `json:"summary"`
}

// ToneAssessment compares the resume's register with the target level
type ToneAssessment struct {
	CurrentLevel   string   `json:"current_level"`
	TargetLevel    string   `json:"target_level"`
	AlignmentScore int      `json:"alignment_score"`
	Issues         []string `json:"issues"`
}

// VocabularyAdjustment is one suggested wording substitution
type VocabularyAdjustment struct {
	Section          string `json:"section"`
	OriginalPhrase   string `json:"original_phrase"`
	CalibratedPhrase string `json:"calibrated_phrase"`
	Reason           string `json:"reason"`
	Example          string `json:"example"`
}

// LeadershipCalibration suggests leadership cues for the target level
type LeadershipCalibration struct {
	CurrentLeadershipCues []string `json:"current_leadership_cues"`
	SuggestedAdditions    []string `json:"suggested_additions"`
	ToneShift             string   `json:"tone_shift"`
}

// FormalityAdjustments captures formality-level guidance
type FormalityAdjustments struct {
	CurrentFormality string   `json:"current_formality"`
	TargetFormality  string   `json:"target_formality"`
	Suggestions      []string `json:"suggestions"`
}

// CalibratedExample is a fully rewritten sample for the target level
type CalibratedExample struct {
	Original   string   `json:"original"`
	Calibrated string   `json:"calibrated"`
	KeyChanges []string `json:"key_changes"`
}

// RoleCalibration is the structured output of the tone calibrator
type RoleCalibration struct {
	ToneAssessment        ToneAssessment         `json:"tone_assessment"`
	VocabularyAdjustments []VocabularyAdjustment `json:"vocabulary_adjustments"`
	LeadershipCalibration LeadershipCalibration  `json:"leadership_calibration"`
	FormalityAdjustments  FormalityAdjustments   `json:"formality_adjustments"`
	CalibratedExamples    []CalibratedExample    `json:"calibrated_examples"`
}

// KeywordCoverage lists job keywords reflected in the tailored resume
type KeywordCoverage struct {
	Covered    []string `json:"covered"`
	Emphasized []string `json:"emphasized"`
}

// FinalResume is the synthesized document pair plus its coverage notes
type FinalResume struct {
	ResumeHTML      string          `json:"resume_html"`
	ResumeMD        string          `json:"resume_md"`
	KeywordCoverage KeywordCoverage `json:"keyword_coverage"`
	TailoringNotes  []string        `json:"tailoring_notes"`
}

// KeywordCount is a term with its occurrence count
type KeywordCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// ATSReport is the keyword overlap report between a job posting and a
// candidate's resume text.
type ATSReport struct {
	TopMatches []KeywordCount `json:"top_matches"`
	TopGaps    []string       `json:"top_gaps"`
}

// Bundle is the aggregate result of one orchestration call. It is always
// structurally complete: failed stages are filled with documented
// defaults and Success/Error record the outcome.
type Bundle struct {
	JobAnalysis         JobAnalysis         `json:"job_analysis"`
	QualityReview       QualityReview       `json:"quality_review"`
	ContentOptimization ContentOptimization `json:"content_optimization"`
	MatchScore          MatchScore          `json:"match_score"`
	RoleCalibration     RoleCalibration     `json:"role_calibration"`
	FinalResume         FinalResume         `json:"final_resume"`
	QuestionsMD         string              `json:"questions_md"`
	ATSReport           ATSReport           `json:"ats_report"`
	Success             bool                `json:"success"`
	Error               string              `json:"error,omitempty"`
}
