package pipeline

import (
	"fmt"
	"html"
	"strings"

	"resumeforge/internal/types"
)

// Synthesize renders the final resume documents from the agent outputs.
// It is a pure deterministic pass: the optimized summary and prioritized
// skills are used when present, the profile originals otherwise, and the
// HTML and Markdown documents always describe identical content.
func Synthesize(resume types.ResumeData, analysis types.JobAnalysis, optimization types.ContentOptimization, calibration types.RoleCalibration) types.FinalResume {
	summary := optimization.OptimizedSummary.Optimized
	if summary == "" {
		summary = resume.Summary
	}
	skills := optimization.OptimizedSkills.PrioritizedSkills
	if len(skills) == 0 {
		skills = resume.Skills
	}

	coverage := keywordCoverage(analysis)

	notes := []string{}
	notes = append(notes, optimization.OverallSuggestions...)
	notes = append(notes, calibration.ToneAssessment.Issues...)

	return types.FinalResume{
		ResumeHTML:      renderHTML(resume, summary, skills),
		ResumeMD:        renderMarkdown(resume, summary, skills),
		KeywordCoverage: coverage,
		TailoringNotes:  notes,
	}
}

// keywordCoverage collects the job keywords reflected in the tailored
// document: covered is the first 20 of hard+soft+industry terms,
// emphasized the first 10.
func keywordCoverage(analysis types.JobAnalysis) types.KeywordCoverage {
	all := []string{}
	all = append(all, analysis.Keywords.HardSkills...)
	all = append(all, analysis.Keywords.SoftSkills...)
	all = append(all, analysis.Keywords.IndustryTerms...)

	covered := all
	if len(covered) > 20 {
		covered = covered[:20]
	}
	emphasized := all
	if len(emphasized) > 10 {
		emphasized = emphasized[:10]
	}
	return types.KeywordCoverage{Covered: covered, Emphasized: emphasized}
}

func renderHTML(resume types.ResumeData, summary string, skills []string) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(`<div class="resume-container">`)
	line(`<div class="resume-header">`)
	line(`<h1>%s</h1>`, html.EscapeString(resume.Name))
	line(`<div class="contact-info">`)
	if resume.Email != "" {
		line(`<span>%s</span>`, html.EscapeString(resume.Email))
	}
	if resume.Phone != "" {
		line(`<span>%s</span>`, html.EscapeString(resume.Phone))
	}
	if resume.LinkedIn != "" {
		line(`<span><a href="%s" target="_blank">LinkedIn</a></span>`, html.EscapeString(resume.LinkedIn))
	}
	line(`</div>`)
	line(`</div>`)

	line(`<div class="resume-section">`)
	line(`<h2>Professional Summary</h2>`)
	line(`<p>%s</p>`, html.EscapeString(summary))
	line(`</div>`)

	line(`<div class="resume-section">`)
	line(`<h2>Skills</h2>`)
	line(`<ul class="skills-list">`)
	for _, skill := range skills {
		line(`<li>%s</li>`, html.EscapeString(skill))
	}
	line(`</ul>`)
	line(`</div>`)

	line(`<div class="resume-section">`)
	line(`<h2>Work Experience</h2>`)
	for _, exp := range resume.Experience {
		line(`<div class="experience-item">`)
		line(`<h3>%s</h3>`, html.EscapeString(exp.Title))
		line(`<h4>%s | %s</h4>`, html.EscapeString(exp.Company), html.EscapeString(exp.Dates()))
		line(`<ul>`)
		for _, bullet := range exp.Bullets() {
			line(`<li>%s</li>`, html.EscapeString(bullet))
		}
		line(`</ul>`)
		line(`</div>`)
	}
	line(`</div>`)

	if len(resume.Education) > 0 {
		line(`<div class="resume-section">`)
		line(`<h2>Education</h2>`)
		for _, edu := range resume.Education {
			line(`<div class="education-item">`)
			line(`<h3>%s</h3>`, html.EscapeString(edu.Degree))
			line(`<h4>%s | %s</h4>`, html.EscapeString(edu.Institution), html.EscapeString(edu.EndDate))
			line(`</div>`)
		}
		line(`</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}

func renderMarkdown(resume types.ResumeData, summary string, skills []string) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(`# %s`, resume.Name)
	line(``)
	contact := resume.Email + " | " + resume.Phone
	if resume.LinkedIn != "" {
		contact += fmt.Sprintf(" | [%s](%s)", resume.LinkedIn, resume.LinkedIn)
	}
	line(`%s`, contact)
	line(``)
	line(`## Professional Summary`)
	line(``)
	line(`%s`, summary)
	line(``)
	line(`## Skills`)
	line(``)
	line(`%s`, strings.Join(skills, ", "))
	line(``)
	line(`## Work Experience`)
	line(``)

	for _, exp := range resume.Experience {
		line(`### %s`, exp.Title)
		line(`**%s** | %s`, exp.Company, exp.Dates())
		line(``)
		for _, bullet := range exp.Bullets() {
			line(`- %s`, bullet)
		}
		line(``)
	}

	if len(resume.Education) > 0 {
		line(`## Education`)
		line(``)
		for _, edu := range resume.Education {
			line(`### %s`, edu.Degree)
			line(`**%s** | %s`, edu.Institution, edu.EndDate)
			line(``)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
