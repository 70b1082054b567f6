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

// NewToneCalibrator returns an oracle-backed calibrator when a client
// is available, otherwise the rule-based one.
func NewToneCalibrator(client oracle.Client, cfg *config.AgentAIConfig, logger *errors.Logger, recorder Recorder) ToneCalibrator {
	rule := &ruleToneCalibrator{logger: logger}
	if client == nil {
		return rule
	}
	return &oracleToneCalibrator{
		base: oracleBase{
			agent:    config.AgentCalibrate,
			client:   client,
			cfg:      cfg,
			logger:   logger,
			recorder: recorder,
		},
		fallback: rule,
	}
}

type oracleToneCalibrator struct {
	base     oracleBase
	fallback *ruleToneCalibrator
}

func (c *oracleToneCalibrator) Calibrate(ctx context.Context, resume types.ResumeData, targetLevel, roleTitle string) types.RoleCalibration {
	started := time.Now()
	user := fmt.Sprintf(userPrompt(c.base.agent, c.base.cfg),
		coerceSeniority(targetLevel), roleTitle, resume.Summary, joinBullets(resume))

	var calibration types.RoleCalibration
	if !c.base.generate(ctx, systemPrompt(c.base.agent, c.base.cfg), user, roleCalibrationSchema, &calibration) {
		c.base.record(ctx, started, true)
		return c.fallback.Calibrate(ctx, resume, targetLevel, roleTitle)
	}
	normalizeRoleCalibration(&calibration)
	c.base.record(ctx, started, false)
	return calibration
}

// Rule-based calibration: action-verb census per seniority level, with
// one example substitution drawn from the target level's verb set.

var seniorityOrder = []string{
	types.SeniorityJunior, types.SeniorityMid, types.SenioritySenior, types.SeniorityExecutive,
}

var levelVerbs = map[string][]string{
	types.SeniorityJunior:    {"assisted", "supported", "contributed", "learned", "participated", "helped"},
	types.SeniorityMid:       {"developed", "implemented", "delivered", "improved", "built", "created"},
	types.SenioritySenior:    {"led", "architected", "drove", "mentored", "optimized", "designed"},
	types.SeniorityExecutive: {"directed", "transformed", "established", "spearheaded", "envisioned", "pioneered"},
}

type ruleToneCalibrator struct {
	logger *errors.Logger
}

func (c *ruleToneCalibrator) Calibrate(_ context.Context, resume types.ResumeData, targetLevel, _ string) types.RoleCalibration {
	target := coerceSeniority(targetLevel)

	var bullets []string
	for _, exp := range resume.Experience {
		bullets = append(bullets, exp.Bullets()...)
	}
	currentText := strings.ToLower(resume.Summary + " " + strings.Join(bullets, " "))

	// First level with at least two verb hits wins, junior to executive.
	currentLevel := types.SeniorityMid
	for _, level := range seniorityOrder {
		hits := 0
		for _, verb := range levelVerbs[level] {
			if strings.Contains(currentText, verb) {
				hits++
			}
		}
		if hits >= 2 {
			currentLevel = level
			break
		}
	}

	alignmentScore := 60
	var issues []string
	if currentLevel == target {
		alignmentScore = 100
	} else {
		issues = []string{fmt.Sprintf("Language reads as %s level, should be %s", currentLevel, target)}
	}

	targetVerbs := levelVerbs[target]
	firstVerb := targetVerbs[0]
	capitalized := strings.ToUpper(firstVerb[:1]) + firstVerb[1:]

	toneShift := "Focus on strategic impact"
	if target == types.SeniorityMid || target == types.SenioritySenior {
		toneShift = "Shift from collaborative to ownership"
	}

	calibration := types.RoleCalibration{
		ToneAssessment: types.ToneAssessment{
			CurrentLevel:   currentLevel,
			TargetLevel:    target,
			AlignmentScore: alignmentScore,
			Issues:         issues,
		},
		VocabularyAdjustments: []types.VocabularyAdjustment{
			{
				Section:          "bullets",
				OriginalPhrase:   "Worked on",
				CalibratedPhrase: capitalized,
				Reason:           fmt.Sprintf("'%s' is more appropriate for %s level", firstVerb, target),
				Example:          fmt.Sprintf("%s a new feature that improved performance by 25%%", capitalized),
			},
		},
		LeadershipCalibration: types.LeadershipCalibration{
			SuggestedAdditions: []string{fmt.Sprintf("Use verbs like: %s", strings.Join(targetVerbs, ", "))},
			ToneShift:          toneShift,
		},
		FormalityAdjustments: types.FormalityAdjustments{
			CurrentFormality: "appropriate",
			TargetFormality:  "professional",
		},
	}
	normalizeRoleCalibration(&calibration)
	return calibration
}
