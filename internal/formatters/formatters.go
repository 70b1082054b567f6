package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Bundle", &BundleTextFormatter{})
	registry.RegisterFormatter("markdown", "Bundle", &BundleMarkdownFormatter{})
	registry.RegisterFormatter("text", "ParsedResume", &ParsedResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ParsedResume", &ParsedResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "JobAnalysis", &JobAnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "JobAnalysis", &JobAnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Bundle:
		return "Bundle"
	case types.ParsedResume:
		return "ParsedResume"
	case types.JobAnalysis:
		return "JobAnalysis"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// BundleTextFormatter handles text formatting for tailoring results
type BundleTextFormatter struct{}

func (btf *BundleTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Bundle)
	if !ok {
		return "", fmt.Errorf("expected Bundle, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== TAILORED RESUME ===\n\n")
	output.WriteString(result.FinalResume.ResumeMD)
	output.WriteString("\n\n")

	output.WriteString("=== MATCH SCORE ===\n")
	output.WriteString(fmt.Sprintf("Overall: %d/100\n", result.MatchScore.OverallMatchScore))
	output.WriteString(fmt.Sprintf("Keyword match: %d/100\n", result.MatchScore.ScoreBreakdown.KeywordMatch.Score))
	output.WriteString(fmt.Sprintf("ATS compliance: %d/100\n", result.MatchScore.ScoreBreakdown.ATSCompliance.Score))
	if result.MatchScore.Summary != "" {
		output.WriteString(result.MatchScore.Summary)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	output.WriteString("=== QUALITY REVIEW ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.QualityReview.QualityScore.Overall))
	output.WriteString(result.QualityReview.Summary)
	output.WriteString("\n\n")

	if len(result.FinalResume.KeywordCoverage.Covered) > 0 {
		output.WriteString("=== KEYWORD COVERAGE ===\n")
		output.WriteString(strings.Join(result.FinalResume.KeywordCoverage.Covered, ", "))
		output.WriteString("\n\n")
	}

	if len(result.FinalResume.TailoringNotes) > 0 {
		output.WriteString("=== TAILORING NOTES ===\n")
		for i, note := range result.FinalResume.TailoringNotes {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, note))
		}
		output.WriteString("\n")
	}

	if len(result.ATSReport.TopMatches) > 0 {
		output.WriteString("=== ATS KEYWORD MATCHES ===\n")
		for _, match := range result.ATSReport.TopMatches {
			output.WriteString(fmt.Sprintf("- %s (%d)\n", match.Term, match.Count))
		}
		output.WriteString("\n")
	}
	if len(result.ATSReport.TopGaps) > 0 {
		output.WriteString("=== ATS KEYWORD GAPS ===\n")
		for _, gap := range result.ATSReport.TopGaps {
			output.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== INTERVIEW PREPARATION ===\n\n")
	output.WriteString(result.QuestionsMD)
	output.WriteString("\n")

	return output.String(), nil
}

func (btf *BundleTextFormatter) SupportedType() string {
	return "Bundle"
}

// BundleMarkdownFormatter handles markdown formatting for tailoring results
type BundleMarkdownFormatter struct{}

func (bmf *BundleMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Bundle)
	if !ok {
		return "", fmt.Errorf("expected Bundle, got %T", data)
	}

	var output strings.Builder

	output.WriteString(result.FinalResume.ResumeMD)
	output.WriteString("\n\n")

	output.WriteString("## Match Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall:** %d/100\n\n", result.MatchScore.OverallMatchScore))
	output.WriteString(fmt.Sprintf("- Keyword match: %d/100\n", result.MatchScore.ScoreBreakdown.KeywordMatch.Score))
	output.WriteString(fmt.Sprintf("- Semantic match: %d/100\n", result.MatchScore.ScoreBreakdown.SemanticMatch.Score))
	output.WriteString(fmt.Sprintf("- Responsibilities coverage: %d/100\n", result.MatchScore.ScoreBreakdown.ResponsibilitiesCoverage.Score))
	output.WriteString(fmt.Sprintf("- Qualifications fit: %d/100\n", result.MatchScore.ScoreBreakdown.QualificationsFit.Score))
	output.WriteString(fmt.Sprintf("- ATS compliance: %d/100\n", result.MatchScore.ScoreBreakdown.ATSCompliance.Score))
	output.WriteString("\n")

	output.WriteString("## Quality Review\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.QualityReview.QualityScore.Overall))
	output.WriteString(result.QualityReview.Summary)
	output.WriteString("\n\n")

	if len(result.FinalResume.KeywordCoverage.Covered) > 0 {
		output.WriteString("## Keyword Coverage\n\n")
		for _, kw := range result.FinalResume.KeywordCoverage.Covered {
			output.WriteString(fmt.Sprintf("- %s\n", kw))
		}
		output.WriteString("\n")
	}

	if len(result.FinalResume.TailoringNotes) > 0 {
		output.WriteString("## Tailoring Notes\n\n")
		for i, note := range result.FinalResume.TailoringNotes {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, note))
		}
		output.WriteString("\n")
	}

	if len(result.ATSReport.TopMatches) > 0 || len(result.ATSReport.TopGaps) > 0 {
		output.WriteString("## ATS Report\n\n")
		if len(result.ATSReport.TopMatches) > 0 {
			output.WriteString("### Matched Keywords\n")
			for _, match := range result.ATSReport.TopMatches {
				output.WriteString(fmt.Sprintf("- %s (%d)\n", match.Term, match.Count))
			}
			output.WriteString("\n")
		}
		if len(result.ATSReport.TopGaps) > 0 {
			output.WriteString("### Missing Keywords\n")
			for _, gap := range result.ATSReport.TopGaps {
				output.WriteString(fmt.Sprintf("- %s\n", gap))
			}
			output.WriteString("\n")
		}
	}

	output.WriteString(result.QuestionsMD)
	output.WriteString("\n")

	return output.String(), nil
}

func (bmf *BundleMarkdownFormatter) SupportedType() string {
	return "Bundle"
}

// ParsedResumeTextFormatter handles text formatting for parsed resumes
type ParsedResumeTextFormatter struct{}

func (prf *ParsedResumeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParsedResume)
	if !ok {
		return "", fmt.Errorf("expected ParsedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PERSONAL INFO ===\n")
	writeField(&output, "Name", result.PersonalInfo.Name)
	writeField(&output, "Email", result.PersonalInfo.Email)
	writeField(&output, "Phone", result.PersonalInfo.Phone)
	writeField(&output, "Location", result.PersonalInfo.Location)
	writeField(&output, "LinkedIn", result.PersonalInfo.LinkedIn)
	writeField(&output, "Website", result.PersonalInfo.Website)
	if result.PersonalInfo.Summary != "" {
		output.WriteString("\nSummary:\n")
		output.WriteString(result.PersonalInfo.Summary)
		output.WriteString("\n")
	}
	output.WriteString("\n")

	if len(result.Experience) > 0 {
		output.WriteString("=== EXPERIENCE ===\n")
		for _, exp := range result.Experience {
			output.WriteString(fmt.Sprintf("%s at %s", exp.Title, exp.Company))
			if dates := exp.Dates(); dates != "" {
				output.WriteString(" (" + dates + ")")
			}
			output.WriteString("\n")
			for _, bullet := range exp.Bullets() {
				output.WriteString("  - " + bullet + "\n")
			}
		}
		output.WriteString("\n")
	}

	if len(result.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, edu := range result.Education {
			output.WriteString(edu.Degree)
			if edu.Institution != "" {
				output.WriteString(", " + edu.Institution)
			}
			if edu.EndDate != "" {
				output.WriteString(" (" + edu.EndDate + ")")
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		names := make([]string, 0, len(result.Skills))
		for _, skill := range result.Skills {
			names = append(names, skill.Name)
		}
		output.WriteString(strings.Join(names, ", "))
		output.WriteString("\n\n")
	}

	if len(result.Projects) > 0 {
		output.WriteString("=== PROJECTS ===\n")
		for _, project := range result.Projects {
			output.WriteString(project.Name)
			if project.Description != "" {
				output.WriteString(": " + project.Description)
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (prf *ParsedResumeTextFormatter) SupportedType() string {
	return "ParsedResume"
}

func writeField(output *strings.Builder, label, value string) {
	if value != "" {
		output.WriteString(fmt.Sprintf("%s: %s\n", label, value))
	}
}

// ParsedResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ParsedResumeMarkdownFormatter struct{}

func (prmf *ParsedResumeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParsedResume)
	if !ok {
		return "", fmt.Errorf("expected ParsedResume, got %T", data)
	}

	var output strings.Builder

	name := result.PersonalInfo.Name
	if name == "" {
		name = "Parsed Resume"
	}
	output.WriteString("# " + name + "\n\n")

	var contact []string
	for _, field := range []string{
		result.PersonalInfo.Email,
		result.PersonalInfo.Phone,
		result.PersonalInfo.Location,
		result.PersonalInfo.LinkedIn,
	} {
		if field != "" {
			contact = append(contact, field)
		}
	}
	if len(contact) > 0 {
		output.WriteString(strings.Join(contact, " | "))
		output.WriteString("\n\n")
	}

	if result.PersonalInfo.Summary != "" {
		output.WriteString("## Summary\n\n")
		output.WriteString(result.PersonalInfo.Summary)
		output.WriteString("\n\n")
	}

	if len(result.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, exp := range result.Experience {
			output.WriteString(fmt.Sprintf("### %s - %s\n", exp.Title, exp.Company))
			if dates := exp.Dates(); dates != "" {
				output.WriteString("*" + dates + "*\n")
			}
			output.WriteString("\n")
			for _, bullet := range exp.Bullets() {
				output.WriteString("- " + bullet + "\n")
			}
			output.WriteString("\n")
		}
	}

	if len(result.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, edu := range result.Education {
			output.WriteString("- " + edu.Degree)
			if edu.Institution != "" {
				output.WriteString(", " + edu.Institution)
			}
			if edu.EndDate != "" {
				output.WriteString(" (" + edu.EndDate + ")")
			}
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	if len(result.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		names := make([]string, 0, len(result.Skills))
		for _, skill := range result.Skills {
			names = append(names, skill.Name)
		}
		output.WriteString(strings.Join(names, ", "))
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (prmf *ParsedResumeMarkdownFormatter) SupportedType() string {
	return "ParsedResume"
}

// JobAnalysisTextFormatter handles text formatting for job analysis results
type JobAnalysisTextFormatter struct{}

func (jaf *JobAnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobAnalysis)
	if !ok {
		return "", fmt.Errorf("expected JobAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Seniority level: %s\n", result.SeniorityLevel))
	if result.SemanticContext.RoleFocus != "" {
		output.WriteString(fmt.Sprintf("Role focus: %s\n", result.SemanticContext.RoleFocus))
	}
	output.WriteString("\n")

	writeKeywordSection(&output, "Hard skills", result.Keywords.HardSkills)
	writeKeywordSection(&output, "Soft skills", result.Keywords.SoftSkills)
	writeKeywordSection(&output, "Industry terms", result.Keywords.IndustryTerms)
	writeKeywordSection(&output, "Tech stack", result.Keywords.TechStack)

	if len(result.Responsibilities) > 0 {
		output.WriteString("=== RESPONSIBILITIES ===\n")
		for i, resp := range result.Responsibilities {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, resp.Description))
		}
		output.WriteString("\n")
	}

	req := result.Qualifications.Required
	if len(req.MustHaveSkills) > 0 || req.ExperienceYears != "" || len(req.Education) > 0 {
		output.WriteString("=== REQUIRED QUALIFICATIONS ===\n")
		if req.ExperienceYears != "" {
			output.WriteString(fmt.Sprintf("Experience: %s\n", req.ExperienceYears))
		}
		for _, edu := range req.Education {
			output.WriteString(fmt.Sprintf("Education: %s\n", edu))
		}
		for _, skill := range req.MustHaveSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.SemanticContext.KeyOutcomes) > 0 {
		output.WriteString("=== KEY OUTCOMES ===\n")
		for _, outcome := range result.SemanticContext.KeyOutcomes {
			output.WriteString(fmt.Sprintf("- %s\n", outcome))
		}
	}

	return output.String(), nil
}

func (jaf *JobAnalysisTextFormatter) SupportedType() string {
	return "JobAnalysis"
}

func writeKeywordSection(output *strings.Builder, label string, keywords []string) {
	if len(keywords) == 0 {
		return
	}
	output.WriteString(label + ":\n")
	output.WriteString("  " + strings.Join(keywords, ", ") + "\n\n")
}

// JobAnalysisMarkdownFormatter handles markdown formatting for job analysis results
type JobAnalysisMarkdownFormatter struct{}

func (jamf *JobAnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.JobAnalysis)
	if !ok {
		return "", fmt.Errorf("expected JobAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Seniority level:** %s\n\n", result.SeniorityLevel))
	if result.SemanticContext.RoleFocus != "" {
		output.WriteString(fmt.Sprintf("**Role focus:** %s\n\n", result.SemanticContext.RoleFocus))
	}

	output.WriteString("## Keywords\n\n")
	writeMarkdownKeywords(&output, "Hard Skills", result.Keywords.HardSkills)
	writeMarkdownKeywords(&output, "Soft Skills", result.Keywords.SoftSkills)
	writeMarkdownKeywords(&output, "Industry Terms", result.Keywords.IndustryTerms)
	writeMarkdownKeywords(&output, "Tech Stack", result.Keywords.TechStack)

	if len(result.Responsibilities) > 0 {
		output.WriteString("## Responsibilities\n\n")
		for i, resp := range result.Responsibilities {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, resp.Description))
		}
		output.WriteString("\n")
	}

	req := result.Qualifications.Required
	if len(req.MustHaveSkills) > 0 || req.ExperienceYears != "" || len(req.Education) > 0 {
		output.WriteString("## Required Qualifications\n\n")
		if req.ExperienceYears != "" {
			output.WriteString(fmt.Sprintf("**Experience:** %s\n\n", req.ExperienceYears))
		}
		for _, edu := range req.Education {
			output.WriteString(fmt.Sprintf("- Education: %s\n", edu))
		}
		for _, skill := range req.MustHaveSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	pref := result.Qualifications.Preferred
	if len(pref.NiceToHaveSkills) > 0 {
		output.WriteString("## Preferred Qualifications\n\n")
		for _, skill := range pref.NiceToHaveSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	if len(result.SemanticContext.KeyOutcomes) > 0 {
		output.WriteString("## Key Outcomes\n\n")
		for _, outcome := range result.SemanticContext.KeyOutcomes {
			output.WriteString(fmt.Sprintf("- %s\n", outcome))
		}
	}

	return output.String(), nil
}

func (jamf *JobAnalysisMarkdownFormatter) SupportedType() string {
	return "JobAnalysis"
}

func writeMarkdownKeywords(output *strings.Builder, label string, keywords []string) {
	if len(keywords) == 0 {
		return
	}
	output.WriteString("### " + label + "\n")
	output.WriteString(strings.Join(keywords, ", "))
	output.WriteString("\n\n")
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
