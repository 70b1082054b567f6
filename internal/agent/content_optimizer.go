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

// NewContentOptimizer returns an oracle-backed optimizer when a client
// is available, otherwise the rule-based one.
func NewContentOptimizer(client oracle.Client, cfg *config.AgentAIConfig, logger *errors.Logger, recorder Recorder) ContentOptimizer {
	rule := &ruleContentOptimizer{logger: logger}
	if client == nil {
		return rule
	}
	return &oracleContentOptimizer{
		base: oracleBase{
			agent:    config.AgentOptimize,
			client:   client,
			cfg:      cfg,
			logger:   logger,
			recorder: recorder,
		},
		fallback: rule,
	}
}

type oracleContentOptimizer struct {
	base     oracleBase
	fallback *ruleContentOptimizer
}

func (o *oracleContentOptimizer) Optimize(ctx context.Context, resume types.ResumeData, analysis types.JobAnalysis, role types.RoleSubmission) types.ContentOptimization {
	started := time.Now()

	var responsibilities []string
	for _, r := range analysis.Responsibilities {
		responsibilities = append(responsibilities, r.Description)
	}
	user := fmt.Sprintf(userPrompt(o.base.agent, o.base.cfg),
		role.RoleTitle,
		role.CompanyName,
		strings.Join(firstN(analysis.Keywords.HardSkills, 15), ", "),
		strings.Join(firstN(analysis.Keywords.SoftSkills, 10), ", "),
		strings.Join(firstN(responsibilities, 5), "; "),
		resume.Summary,
		joinBullets(resume),
		strings.Join(resume.Skills, ", "))

	var optimization types.ContentOptimization
	if !o.base.generate(ctx, systemPrompt(o.base.agent, o.base.cfg), user, contentOptimizationSchema, &optimization) {
		o.base.record(ctx, started, true)
		return o.fallback.Optimize(ctx, resume, analysis, role)
	}
	normalizeContentOptimization(&optimization)
	o.base.record(ctx, started, false)
	return optimization
}

// Rule-based optimization: one keyword sentence appended to the
// summary, job-overlapping skills sorted first, missing hard skills
// suggested.

type ruleContentOptimizer struct {
	logger *errors.Logger
}

func (o *ruleContentOptimizer) Optimize(_ context.Context, resume types.ResumeData, analysis types.JobAnalysis, _ types.RoleSubmission) types.ContentOptimization {
	hardSkills := analysis.Keywords.HardSkills

	optimizedSummary := resume.Summary
	if resume.Summary != "" {
		loweredSummary := strings.ToLower(resume.Summary)
		for _, skill := range firstN(hardSkills, 3) {
			if !strings.Contains(loweredSummary, strings.ToLower(skill)) {
				optimizedSummary = fmt.Sprintf("%s Experienced with %s.", resume.Summary, skill)
				break
			}
		}
	}

	var matched, unmatched []string
	for _, skill := range resume.Skills {
		if skillOverlapsAny(skill, hardSkills) {
			matched = append(matched, skill)
		} else {
			unmatched = append(unmatched, skill)
		}
	}
	prioritized := append(append([]string{}, matched...), unmatched...)

	var skillsToAdd []string
	for _, hs := range hardSkills {
		if len(skillsToAdd) == 5 {
			break
		}
		if !mentionedInAny(hs, resume.Skills) {
			skillsToAdd = append(skillsToAdd, hs)
		}
	}

	optimization := types.ContentOptimization{
		OptimizedSummary: types.OptimizedSummary{
			Original:           resume.Summary,
			Optimized:          optimizedSummary,
			Explanation:        "Integrated top job requirements into summary",
			KeywordsIntegrated: firstN(hardSkills, 3),
		},
		OptimizedSkills: types.OptimizedSkills{
			PrioritizedSkills: prioritized,
			SkillsToAdd:       skillsToAdd,
			SkillsToEmphasize: firstN(matched, 5),
			Explanation:       fmt.Sprintf("Prioritized %d skills matching job requirements", len(matched)),
		},
		OverallSuggestions: []string{
			fmt.Sprintf("Add these relevant skills from job posting: %s", strings.Join(firstN(skillsToAdd, 3), ", ")),
			fmt.Sprintf("Emphasize %s in your experience bullets", strings.Join(firstN(matched, 3), ", ")),
		},
	}
	normalizeContentOptimization(&optimization)
	return optimization
}

// skillOverlapsAny reports whether the skill and any hard skill contain
// each other, case-insensitively.
func skillOverlapsAny(skill string, hardSkills []string) bool {
	lowered := strings.ToLower(skill)
	for _, hs := range hardSkills {
		hsLowered := strings.ToLower(hs)
		if strings.Contains(lowered, hsLowered) || strings.Contains(hsLowered, lowered) {
			return true
		}
	}
	return false
}

// mentionedInAny reports whether the hard skill appears inside any of
// the candidate's listed skills.
func mentionedInAny(hardSkill string, skills []string) bool {
	lowered := strings.ToLower(hardSkill)
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), lowered) {
			return true
		}
	}
	return false
}
