package agent

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/oracle"
	"resumeforge/internal/types"
)

// NewResumeParser returns an oracle-backed parser when a client is
// available, otherwise the rule-based one.
func NewResumeParser(client oracle.Client, cfg *config.AgentAIConfig, logger *errors.Logger, recorder Recorder) ResumeParser {
	rule := &ruleResumeParser{logger: logger}
	if client == nil {
		return rule
	}
	return &oracleResumeParser{
		base: oracleBase{
			agent:    config.AgentResumeParse,
			client:   client,
			cfg:      cfg,
			logger:   logger,
			recorder: recorder,
		},
		fallback: rule,
	}
}

type oracleResumeParser struct {
	base     oracleBase
	fallback *ruleResumeParser
}

func (p *oracleResumeParser) Parse(ctx context.Context, resumeText string) types.ParsedResume {
	started := time.Now()
	user := fmt.Sprintf(userPrompt(p.base.agent, p.base.cfg), resumeText)

	var parsed types.ParsedResume
	if !p.base.generate(ctx, systemPrompt(p.base.agent, p.base.cfg), user, parsedResumeSchema, &parsed) {
		p.base.record(ctx, started, true)
		return p.fallback.Parse(ctx, resumeText)
	}
	normalizeParsedResume(&parsed)
	p.base.record(ctx, started, false)
	return parsed
}

// Rule-based parsing: segment the text into sections by heading lines,
// then run a per-section extractor. Entries are only created when real
// content is found; no empty placeholder records.

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`linkedin\.com/in/[A-Za-z0-9_-]+`)

	datePattern        = regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+20\d{2}|20\d{2}`)
	monthOrYearPattern = regexp.MustCompile(`Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|20\d{2}`)
	gpaPattern         = regexp.MustCompile(`\d\.\d{1,2}`)
	fieldPattern       = regexp.MustCompile(`\(([^)]+)\)`)
	skillSplitPattern  = regexp.MustCompile(`[,;•|]`)
)

// sectionPatterns are tried in order, so a heading that matches more
// than one pattern always classifies the same way ("LEADERSHIP
// EXPERIENCE" is an experience heading, not a leadership one).
var sectionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"education", regexp.MustCompile(`(?i)\b(EDUCATION|Academic Background)\b`)},
	{"experience", regexp.MustCompile(`(?i)\b(RELEVANT EXPERIENCE|EXPERIENCE|WORK HISTORY|PROFESSIONAL EXPERIENCE|Employment)\b`)},
	{"skills", regexp.MustCompile(`(?i)\b(SKILLS|TECHNICAL SKILLS|COMPETENCIES|Technologies)\b`)},
	{"projects", regexp.MustCompile(`(?i)\b(PROJECTS|PORTFOLIO|PERSONAL PROJECTS)\b`)},
	{"leadership", regexp.MustCompile(`(?i)\b(LEADERSHIP|ACADEMIC INVOLVEMENT|ACTIVITIES)\b`)},
}

var degreeKeywords = []string{
	"b.b.a", "b.a.", "b.s.", "m.s.", "m.a.", "master", "bachelor", "phd", "ph.d",
}

type ruleResumeParser struct {
	logger *errors.Logger
}

func (p *ruleResumeParser) Parse(_ context.Context, resumeText string) types.ParsedResume {
	lines := strings.Split(resumeText, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	parsed := types.ParsedResume{}
	parsed.PersonalInfo = extractPersonalInfo(lines)

	for name, section := range sectionBounds(lines) {
		body := lines[section.start:section.end]
		switch name {
		case "education":
			parsed.Education = extractEducation(body)
		case "experience":
			parsed.Experience = extractExperience(body)
		case "skills":
			parsed.Skills = extractSkills(body)
		case "projects":
			parsed.Projects = extractProjects(body)
		}
	}

	if p.logger != nil {
		p.logger.Debug("Rule-based resume parse complete",
			"education", len(parsed.Education),
			"experience", len(parsed.Experience),
			"skills", len(parsed.Skills),
			"projects", len(parsed.Projects))
	}
	normalizeParsedResume(&parsed)
	return parsed
}

func extractPersonalInfo(lines []string) types.PersonalInfo {
	var info types.PersonalInfo
	header := lines
	if len(header) > 15 {
		header = header[:15]
	}
	for _, line := range header {
		if info.Email == "" && strings.Contains(line, "@") {
			info.Email = emailPattern.FindString(line)
		}
		if info.Phone == "" {
			info.Phone = phonePattern.FindString(line)
		}
		if info.LinkedIn == "" {
			lowered := strings.ToLower(line)
			if strings.Contains(lowered, "linkedin.com") {
				if m := linkedinPattern.FindString(lowered); m != "" {
					info.LinkedIn = "https://" + m
				}
			}
		}
	}
	if len(lines) > 0 {
		info.Name = strings.TrimSpace(lines[0])
	}
	return info
}

type sectionSpan struct {
	start, end int
}

// sectionBounds locates the section heading lines and returns the body
// span of each section, ending where the next section begins.
func sectionBounds(lines []string) map[string]sectionSpan {
	headings := make(map[string]int)
	for i, line := range lines {
		for _, sp := range sectionPatterns {
			if sp.pattern.MatchString(line) {
				headings[sp.name] = i
				break
			}
		}
	}

	type heading struct {
		name string
		line int
	}
	ordered := make([]heading, 0, len(headings))
	for name, line := range headings {
		ordered = append(ordered, heading{name, line})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].line < ordered[j].line })

	spans := make(map[string]sectionSpan, len(ordered))
	for i, h := range ordered {
		end := len(lines)
		if i+1 < len(ordered) {
			end = ordered[i+1].line
		}
		spans[h.name] = sectionSpan{start: h.line + 1, end: end}
	}
	return spans
}

func extractEducation(lines []string) []types.Education {
	var education []types.Education
	var current *types.Education

	flush := func() {
		if current != nil && (current.Institution != "" || current.Degree != "") {
			education = append(education, *current)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lowered := strings.ToLower(trimmed)

		if isAllUpper(trimmed) || containsAny(lowered, "university", "institute", "college") {
			flush()
			current = &types.Education{Institution: trimmed}
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case containsAny(lowered, degreeKeywords...):
			current.Degree = trimmed
			if m := fieldPattern.FindStringSubmatch(line); m != nil {
				current.FieldOfStudy = m[1]
			}
		case monthOrYearPattern.MatchString(line):
			dates := datePattern.FindAllString(line, -1)
			if len(dates) >= 2 {
				current.StartDate = dates[0]
				current.EndDate = dates[1]
			} else if len(dates) == 1 {
				current.EndDate = dates[0]
			}
		case strings.Contains(lowered, "gpa"):
			current.GPA = gpaPattern.FindString(line)
		}
	}
	flush()
	return education
}

func extractExperience(lines []string) []types.Experience {
	var experiences []types.Experience
	var current *types.Experience

	flush := func() {
		if current != nil && current.Company != "" {
			experiences = append(experiences, *current)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if isAllUpper(trimmed) && len(trimmed) > 3 {
			flush()
			current = &types.Experience{Company: trimmed}
			continue
		}
		if current == nil {
			continue
		}

		if isBulletLine(trimmed) {
			bullet := trimBullet(trimmed)
			if current.Achievements != "" {
				current.Achievements += "\n" + bullet
			} else {
				current.Achievements = bullet
			}
			continue
		}

		if current.Title == "" && datePattern.MatchString(line) {
			if parts := strings.SplitN(trimmed, ",", 2); len(parts) > 0 {
				current.Title = strings.TrimSpace(parts[0])
			}
			dates := datePattern.FindAllString(line, -1)
			switch {
			case len(dates) >= 2:
				current.StartDate = dates[0]
				current.EndDate = dates[1]
			case len(dates) == 1:
				if strings.Contains(strings.ToLower(line), "present") {
					current.StartDate = dates[0]
					current.EndDate = "Present"
					current.Current = true
				} else {
					current.EndDate = dates[0]
				}
			}
		}
	}
	flush()
	return experiences
}

func extractSkills(lines []string) []types.Skill {
	var skills []types.Skill
	category := "Technical Skills"

	appendSkills := func(text string) {
		for _, name := range skillSplitPattern.Split(text, -1) {
			name = strings.TrimSpace(name)
			if len(name) > 1 && len(name) < 100 {
				skills = append(skills, types.Skill{Name: name, Category: category})
			}
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, ":") && len(trimmed) < 50 {
			parts := strings.SplitN(trimmed, ":", 2)
			category = strings.TrimSpace(parts[0])
			if len(parts) > 1 {
				appendSkills(parts[1])
			}
			continue
		}
		appendSkills(trimmed)
	}
	return skills
}

func extractProjects(lines []string) []types.Project {
	var projects []types.Project
	var current *types.Project

	flush := func() {
		if current != nil && current.Name != "" {
			projects = append(projects, *current)
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !isBulletLine(trimmed) {
			flush()
			name := trimmed
			if m := monthOrYearPattern.FindStringIndex(trimmed); m != nil {
				name = strings.TrimSpace(trimmed[:m[0]])
			}
			current = &types.Project{Name: name}
			continue
		}
		if current == nil {
			continue
		}
		bullet := trimBullet(trimmed)
		if current.Achievements != "" {
			current.Achievements += "\n" + bullet
		} else {
			current.Achievements = bullet
		}
	}
	flush()
	return projects
}

func isBulletLine(s string) bool {
	return strings.HasPrefix(s, "●") || strings.HasPrefix(s, "•") || strings.HasPrefix(s, "-")
}

func trimBullet(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, "●•- "))
}

// isAllUpper reports whether s contains at least one letter and no
// lower-case letters, the heuristic for heading and company lines.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
