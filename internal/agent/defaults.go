package agent

import "resumeforge/internal/types"

// Documented default results, used when an orchestration phase fails or
// a concurrent agent task panics. Every default is structurally
// complete so the bundle always serializes the same shape.

// DefaultJobAnalysis returns the neutral job analysis used when the
// analysis phase fails outright.
func DefaultJobAnalysis(role types.RoleSubmission) types.JobAnalysis {
	analysis := types.JobAnalysis{
		SeniorityLevel: types.SeniorityMid,
		SemanticContext: types.SemanticContext{
			RoleFocus: role.RoleTitle,
		},
	}
	normalizeJobAnalysis(&analysis)
	return analysis
}

// DefaultQualityReview returns the neutral review used when the quality
// task fails.
func DefaultQualityReview() types.QualityReview {
	review := types.QualityReview{
		QualityScore: types.QualityScore{
			Overall:    80,
			Spelling:   100,
			Metrics:    70,
			Formatting: 90,
			Content:    80,
		},
		Summary: "Quality review unavailable",
	}
	normalizeQualityReview(&review)
	return review
}

// DefaultContentOptimization returns a pass-through optimization that
// keeps the resume content unchanged.
func DefaultContentOptimization(resume types.ResumeData) types.ContentOptimization {
	opt := types.ContentOptimization{
		OptimizedSummary: types.OptimizedSummary{
			Original:    resume.Summary,
			Optimized:   resume.Summary,
			Explanation: "Content optimization unavailable",
		},
		OptimizedSkills: types.OptimizedSkills{
			PrioritizedSkills: append([]string{}, resume.Skills...),
			Explanation:       "Skills optimization unavailable",
		},
	}
	normalizeContentOptimization(&opt)
	return opt
}

// DefaultMatchScore returns the neutral score used when the scoring
// task fails.
func DefaultMatchScore() types.MatchScore {
	score := types.MatchScore{
		OverallMatchScore: 75,
		ScoreBreakdown: types.ScoreBreakdown{
			KeywordMatch:  types.KeywordMatch{Score: 70, CoveragePercentage: 70},
			SemanticMatch: types.SemanticMatch{Score: 75},
			ResponsibilitiesCoverage: types.ResponsibilitiesCoverage{
				Score: 75,
			},
			QualificationsFit: types.QualificationsFit{
				Score:           80,
				EducationMatch:  true,
				ExperienceMatch: true,
			},
			ATSCompliance: types.ATSCompliance{Score: 85},
		},
		Summary: "Match scoring unavailable",
	}
	normalizeMatchScore(&score)
	return score
}

// DefaultRoleCalibration returns the neutral calibration used when the
// calibration task fails.
func DefaultRoleCalibration(targetLevel string) types.RoleCalibration {
	calibration := types.RoleCalibration{
		ToneAssessment: types.ToneAssessment{
			CurrentLevel:   types.SeniorityMid,
			TargetLevel:    coerceSeniority(targetLevel),
			AlignmentScore: 80,
			Issues:         []string{"Calibration unavailable"},
		},
		FormalityAdjustments: types.FormalityAdjustments{
			CurrentFormality: "appropriate",
			TargetFormality:  "professional",
		},
	}
	normalizeRoleCalibration(&calibration)
	return calibration
}
