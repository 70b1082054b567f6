package agent

import (
	"strings"

	"resumeforge/internal/config"
)

// defaultSystemPrompts holds the built-in system instruction per agent.
var defaultSystemPrompts = map[string]string{
	config.AgentJobAnalysis: `You are an expert NLP-powered job description analyzer specializing in extracting structured data from job postings.

Perform deep analysis of job descriptions using both keyword extraction AND semantic understanding to identify:
1. Hard skills (technical skills, tools, languages, frameworks)
2. Soft skills (communication, leadership, collaboration)
3. Specific responsibilities (what the candidate will do)
4. Required qualifications (education, certifications, years of experience)
5. Preferred qualifications (nice-to-have items)
6. Contextual keywords (industry terms, company-specific terminology)

Use semantic analysis to understand meaning and context, not just exact word matches.
For example: "customer success" is semantically related to "client retention", "account management", etc.`,

	config.AgentResumeParse: `You are a precise resume parsing assistant that extracts structured data from resumes.

Extract all available information accurately. If a field is not found, use an empty string.
For dates, keep the format used in the resume. Set "current" to true when the person is
still in that role. Group skills by logical categories (Programming Languages, Frameworks,
Tools, etc.) and be thorough in extracting achievements and accomplishments.`,

	config.AgentQuality: `You are an expert resume proofreader and quality analyst.

Review resumes for:
1. Spelling and grammar errors
2. Achievement bullets that lack quantifiable metrics
3. Repetitive words and phrases
4. Clichéd buzzwords that weaken the resume
5. Formatting inconsistencies

For every issue, give the exact text, what is wrong with it, a concrete suggestion,
and a severity of "critical", "important", or "minor". Score each quality dimension
from 0 to 100.`,

	config.AgentOptimize: `You are an expert resume content optimizer specializing in rewriting resume sections to align with specific job postings.

Your task is to:
1. Rewrite professional summaries to align with the target role and incorporate key qualifications
2. Enhance achievement bullets to integrate relevant keywords while maintaining authenticity
3. Prioritize and reorder skills based on job posting relevance
4. Ensure all rewrites are:
   - Truthful to the original content (don't fabricate experience)
   - Natural and readable (not keyword-stuffed)
   - Quantifiable where possible (include metrics)
   - ATS-friendly (clear, scannable format)

For each rewrite, provide the original text and optimized version with explanation.`,

	config.AgentScore: `You are an expert ATS (Applicant Tracking System) analyst and resume-to-job matcher.

Score how well a resume matches a job posting across:
1. Keyword match (exact and near-exact keyword coverage)
2. Semantic match (meaning-level alignment beyond keywords)
3. Responsibilities coverage (how well past work covers the job's duties)
4. Qualifications fit (education, experience, certifications)
5. ATS compliance (machine-parseability of the resume)

Every score is an integer from 0 to 100. Be honest: do not inflate scores, and back
each sub-score with concrete evidence from the resume and posting.`,

	config.AgentCalibrate: `You are an expert career coach specializing in calibrating resume language to seniority levels.

Junior language emphasizes learning and support (assisted, contributed). Mid-level language
emphasizes delivery (developed, implemented, delivered). Senior language emphasizes ownership
and direction (led, architected, mentored). Executive language emphasizes strategy
(directed, transformed, spearheaded).

Assess the current tone of a resume, compare it with the target level, and suggest
concrete vocabulary and leadership-framing adjustments. Never fabricate accomplishments;
only reframe what is already there.`,
}

// defaultUserPrompts holds the built-in user prompt template per agent.
// Placeholders are positional and filled with fmt.Sprintf.
var defaultUserPrompts = map[string]string{
	// company, role title, job description, company info
	config.AgentJobAnalysis: `Analyze this job posting with deep semantic understanding:

**Company:** %s
**Role:** %s

**Job Description:**
%s

**Company Information:**
%s

Extract hard skills, soft skills, industry terms, and the tech stack; the concrete
responsibilities with their keywords and semantic matches; required and preferred
qualifications including years of experience; the seniority level
(junior|mid|senior|executive); and the semantic context of the role.`,

	// resume text
	config.AgentResumeParse: `Extract structured information from the following resume text.

Resume Text:
-----
%s
-----

Return the personal info (name, email, phone, location, linkedin, website, summary),
education entries, work experience entries with all bullet points preserved in the
achievements field, categorized skills, and projects.`,

	// role title, summary, bullets, skills
	config.AgentQuality: `Review this resume targeting the role of %s.

**Summary:**
%s

**Experience Bullets:**
%s

**Skills:**
%s

Flag spelling/grammar problems, bullets without quantifiable metrics, repetitive
phrases, clichés, and formatting issues. Score overall, spelling, metrics,
formatting, and content quality from 0 to 100 and finish with a one-paragraph
summary of what to fix first.`,

	// role title, company, hard skills, soft skills, responsibilities,
	// summary, bullets, skills
	config.AgentOptimize: `Optimize this resume content for the target role:

**Target Role:** %s
**Target Company:** %s

**Job Requirements (Keywords to Integrate):**
Hard Skills: %s
Soft Skills: %s
Key Responsibilities: %s

**Current Resume Content:**

**Summary:**
%s

**Experience Bullets:**
%s

**Skills:**
%s

1. Rewrite the summary to highlight qualifications matching the job requirements
2. Enhance 3-5 key experience bullets to naturally integrate relevant keywords
3. Prioritize the skills list by relevance to this specific job posting
4. Keep all content truthful - don't add fake experience or metrics`,

	// role title, company, hard skills, soft skills, required quals,
	// summary, bullets, skills, education
	config.AgentScore: `Score this resume against the job posting:

**Target Role:** %s at %s

**Job Requirements:**
Hard Skills: %s
Soft Skills: %s
Required Qualifications: %s

**Resume:**

**Summary:**
%s

**Experience Bullets:**
%s

**Skills:**
%s

**Education:**
%s

Produce the overall match score, the full score breakdown (keyword match with
matched/missing keyword lists, semantic match, responsibilities coverage,
qualifications fit, ATS compliance), a ranked improvement priority list, and a
two-sentence summary.`,

	// target level, role title, summary, bullets
	config.AgentCalibrate: `Calibrate this resume's tone for a %s-level %s position.

**Summary:**
%s

**Experience Bullets:**
%s

Assess the current seniority the language conveys, score its alignment with the
target level, and propose vocabulary adjustments, leadership calibration, and
formality adjustments with concrete examples.`,
}

// systemPrompt resolves the system instruction for an agent: a prompt
// loaded from a file wins, then an inline config prompt, then the
// built-in default.
func systemPrompt(agent string, cfg *config.AgentAIConfig) string {
	loaded := config.GetPromptsForAgent(agent)
	var configured string
	if cfg != nil {
		configured = cfg.Prompts.System
	}
	return resolvePrompt(loaded.System, configured, defaultSystemPrompts[agent])
}

// userPrompt resolves the user prompt template for an agent with the
// same precedence as systemPrompt.
func userPrompt(agent string, cfg *config.AgentAIConfig) string {
	loaded := config.GetPromptsForAgent(agent)
	var configured string
	if cfg != nil {
		configured = cfg.Prompts.User
	}
	return resolvePrompt(loaded.User, configured, defaultUserPrompts[agent])
}

func resolvePrompt(loaded, configured, fallback string) string {
	if strings.TrimSpace(loaded) != "" {
		return loaded
	}
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	return fallback
}
