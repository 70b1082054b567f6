package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"resumeforge/internal/agent"
	"resumeforge/internal/errors"
	"resumeforge/internal/keywords"
	"resumeforge/internal/types"
)

// Placeholder documents for a failed run. The UI renders these directly,
// so they must stay valid fragments.
const (
	errorResumeHTML = "<p>Error generating resume. Please try again.</p>"
	errorResumeMD   = "# Error\nUnable to generate resume."
)

const atsReportTopK = 20

// Orchestrator drives one tailoring run across the specialist agents.
type Orchestrator struct {
	agents *agent.Set
	logger *errors.Logger
}

func NewOrchestrator(agents *agent.Set, logger *errors.Logger) *Orchestrator {
	return &Orchestrator{agents: agents, logger: logger}
}

// Generate runs the full tailoring pipeline: job analysis, the four
// reviewing agents in parallel, then document synthesis. It never
// returns a Go error; validation or synthesis failures produce a
// Bundle with Success=false, placeholder documents, and documented
// default results so callers always get a complete structure.
func (o *Orchestrator) Generate(ctx context.Context, profile types.ProfileRecord, role types.RoleSubmission) types.Bundle {
	if err := validateRole(role); err != nil {
		o.logger.LogError(err, "Role validation failed, returning error bundle")
		return o.failureBundle(err.Error())
	}

	o.logger.Info("Starting multi-agent tailoring run",
		"role_title", role.RoleTitle, "company", role.CompanyName)

	analysis := o.agents.JobAnalyzer.Analyze(ctx, role)
	o.logger.Info("Job analysis completed",
		"hard_skills", len(analysis.Keywords.HardSkills),
		"responsibilities", len(analysis.Responsibilities),
		"seniority", analysis.SeniorityLevel)

	resume := BuildResumeData(profile)

	// Phase B: the four reviewing agents are independent of each other
	// and run concurrently. A panic in one task is contained to that
	// task, which then yields its documented default result.
	quality := agent.DefaultQualityReview()
	optimization := agent.DefaultContentOptimization(resume)
	match := agent.DefaultMatchScore()
	calibration := agent.DefaultRoleCalibration(analysis.SeniorityLevel)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	g.Go(o.stage("quality_review", func() {
		quality = o.agents.QualityReviewer.Review(gctx, resume, role.RoleTitle)
	}))
	g.Go(o.stage("content_optimization", func() {
		optimization = o.agents.ContentOptimizer.Optimize(gctx, resume, analysis, role)
	}))
	g.Go(o.stage("match_score", func() {
		match = o.agents.MatchScorer.Score(gctx, resume, analysis, role)
	}))
	g.Go(o.stage("role_calibration", func() {
		calibration = o.agents.ToneCalibrator.Calibrate(gctx, resume, analysis.SeniorityLevel, role.RoleTitle)
	}))
	// Stages recover their own panics and never return errors.
	_ = g.Wait()

	bundle, err := o.synthesize(resume, analysis, optimization, calibration, role)
	if err != nil {
		o.logger.LogError(err, "Document synthesis failed, returning error bundle")
		return o.failureBundle(err.Error())
	}

	bundle.JobAnalysis = analysis
	bundle.QualityReview = quality
	bundle.ContentOptimization = optimization
	bundle.MatchScore = match
	bundle.RoleCalibration = calibration
	bundle.Success = true

	o.logger.Info("Tailoring run completed", "match_score", match.OverallMatchScore)
	return bundle
}

// stage wraps a Phase-B task with panic containment. The shared error
// group never sees a failure; the task's preassigned default result
// simply stands when the closure dies.
func (o *Orchestrator) stage(name string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				panicErr := errors.NewAgentError(errors.ErrCodeAgentFailure,
					fmt.Sprintf("agent task panicked: %v", r), nil)
				o.logger.LogError(panicErr, "Agent task failed, using default result", "stage", name)
			}
		}()
		fn()
		o.logger.Debug("Agent task completed", "stage", name)
		return nil
	}
}

// synthesize runs Phase C under the same panic containment as the
// agent stages.
func (o *Orchestrator) synthesize(resume types.ResumeData, analysis types.JobAnalysis, optimization types.ContentOptimization, calibration types.RoleCalibration, role types.RoleSubmission) (bundle types.Bundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPipelineError(errors.ErrCodePipelineFailure,
				fmt.Sprintf("document synthesis panicked: %v", r), nil)
		}
	}()
	bundle.FinalResume = Synthesize(resume, analysis, optimization, calibration)
	bundle.QuestionsMD = InterviewQuestions(role.JobDescription)
	bundle.ATSReport = keywords.ATSReport(role.JobDescription, resume.FlattenedText(), atsReportTopK)
	return bundle, nil
}

func validateRole(role types.RoleSubmission) error {
	switch {
	case role.RoleTitle == "":
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "role_title is required", nil)
	case role.CompanyName == "":
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "company_name is required", nil)
	case role.JobDescription == "":
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, "job_description is required", nil)
	}
	return nil
}

// failureBundle builds the structurally complete error result: every
// agent slot carries its documented default and the final resume holds
// fixed placeholder documents.
func (o *Orchestrator) failureBundle(msg string) types.Bundle {
	return types.Bundle{
		QualityReview:       agent.DefaultQualityReview(),
		ContentOptimization: agent.DefaultContentOptimization(types.ResumeData{}),
		MatchScore:          agent.DefaultMatchScore(),
		RoleCalibration:     agent.DefaultRoleCalibration(types.SeniorityMid),
		FinalResume: types.FinalResume{
			ResumeHTML:      errorResumeHTML,
			ResumeMD:        errorResumeMD,
			KeywordCoverage: types.KeywordCoverage{Covered: []string{}, Emphasized: []string{}},
			TailoringNotes:  []string{"Error: " + msg},
		},
		Success: false,
		Error:   msg,
	}
}
