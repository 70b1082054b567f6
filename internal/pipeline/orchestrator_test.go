package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"resumeforge/internal/agent"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

func testOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("creating logger: %v", err)
	}
	// Empty config means no oracle clients; every agent runs rule-based.
	agents := agent.NewSet(&config.Config{}, logger, nil)
	return NewOrchestrator(agents, logger)
}

func testProfile() types.ProfileRecord {
	return types.ProfileRecord{
		Name:    "Jordan Smith",
		Email:   "jordan@example.com",
		Phone:   "555-123-4567",
		Summary: "Software engineer building web services with Python and AWS.",
		Experience: json.RawMessage(`[{"title":"Software Engineer","company":"Acme Corp",` +
			`"start_date":"Jun 2020","current":true,` +
			`"achievements":"Developed a billing service handling 10,000 requests per day"}]`),
		Education: json.RawMessage(`[{"degree":"B.S. Computer Science","institution":"State University"}]`),
		Skills:    json.RawMessage(`["Python","AWS","PostgreSQL"]`),
	}
}

func testSubmission() types.RoleSubmission {
	return types.RoleSubmission{
		CompanyName: "Initech",
		RoleTitle:   "Senior Software Engineer",
		JobDescription: "We need a senior engineer with python, aws, docker and kubernetes. " +
			"You will develop scalable services and lead a small team. 5+ years experience required. " +
			"Strong communication and leadership skills.",
	}
}

func TestGenerateProducesCompleteBundle(t *testing.T) {
	o := testOrchestrator(t)

	bundle := o.Generate(context.Background(), testProfile(), testSubmission())

	if !bundle.Success {
		t.Fatalf("Success = false, error = %q", bundle.Error)
	}
	if len(bundle.JobAnalysis.Keywords.HardSkills) == 0 {
		t.Error("job analysis extracted no hard skills")
	}
	if bundle.JobAnalysis.SeniorityLevel != types.SenioritySenior {
		t.Errorf("seniority = %q, want senior", bundle.JobAnalysis.SeniorityLevel)
	}
	if bundle.MatchScore.OverallMatchScore <= 0 {
		t.Errorf("match score = %d", bundle.MatchScore.OverallMatchScore)
	}
	if bundle.RoleCalibration.ToneAssessment.TargetLevel != types.SenioritySenior {
		t.Errorf("calibration target = %q, want the analyzed seniority",
			bundle.RoleCalibration.ToneAssessment.TargetLevel)
	}
	if !strings.Contains(bundle.FinalResume.ResumeHTML, "Jordan Smith") {
		t.Error("final resume HTML missing candidate name")
	}
	if !strings.Contains(bundle.FinalResume.ResumeMD, "# Jordan Smith") {
		t.Error("final resume Markdown missing candidate heading")
	}
	if !strings.HasPrefix(bundle.QuestionsMD, "# Interview Preparation Questions") {
		t.Error("questions document missing")
	}
	if len(bundle.ATSReport.TopMatches) == 0 {
		t.Error("ATS report found no keyword matches for an overlapping profile")
	}
}

func TestGenerateBundleSerializesWithoutNulls(t *testing.T) {
	o := testOrchestrator(t)

	bundle := o.Generate(context.Background(), testProfile(), testSubmission())

	raw, err := json.Marshal(bundle)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Errorf("bundle serialized with null fields:\n%s", raw)
	}
}

func TestGenerateValidationFailure(t *testing.T) {
	o := testOrchestrator(t)
	role := testSubmission()
	role.RoleTitle = ""

	bundle := o.Generate(context.Background(), testProfile(), role)

	if bundle.Success {
		t.Fatal("expected Success = false")
	}
	if !strings.Contains(bundle.Error, "role_title is required") {
		t.Errorf("error = %q", bundle.Error)
	}
	if bundle.FinalResume.ResumeHTML != errorResumeHTML {
		t.Errorf("HTML = %q, want placeholder", bundle.FinalResume.ResumeHTML)
	}
	if bundle.FinalResume.ResumeMD != errorResumeMD {
		t.Errorf("Markdown = %q, want placeholder", bundle.FinalResume.ResumeMD)
	}
	if bundle.QualityReview.Summary != "Quality review unavailable" {
		t.Errorf("quality review should be the documented default, got %q", bundle.QualityReview.Summary)
	}
	if len(bundle.FinalResume.TailoringNotes) != 1 ||
		!strings.HasPrefix(bundle.FinalResume.TailoringNotes[0], "Error: ") {
		t.Errorf("tailoring notes = %v", bundle.FinalResume.TailoringNotes)
	}
}

func TestGenerateMissingFieldsRejected(t *testing.T) {
	o := testOrchestrator(t)
	tests := []struct {
		name string
		role types.RoleSubmission
		want string
	}{
		{"no title", types.RoleSubmission{CompanyName: "x", JobDescription: "y"}, "role_title"},
		{"no company", types.RoleSubmission{RoleTitle: "x", JobDescription: "y"}, "company_name"},
		{"no description", types.RoleSubmission{RoleTitle: "x", CompanyName: "y"}, "job_description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := o.Generate(context.Background(), testProfile(), tt.role)
			if bundle.Success {
				t.Fatal("expected rejection")
			}
			if !strings.Contains(bundle.Error, tt.want) {
				t.Errorf("error = %q, want mention of %s", bundle.Error, tt.want)
			}
		})
	}
}

type panickingReviewer struct{}

func (panickingReviewer) Review(context.Context, types.ResumeData, string) types.QualityReview {
	panic("reviewer exploded")
}

func TestGenerateRecoversPanickingAgent(t *testing.T) {
	o := testOrchestrator(t)
	o.agents.QualityReviewer = panickingReviewer{}

	bundle := o.Generate(context.Background(), testProfile(), testSubmission())

	if !bundle.Success {
		t.Fatalf("run should succeed despite one failing agent, error = %q", bundle.Error)
	}
	if bundle.QualityReview.Summary != "Quality review unavailable" {
		t.Errorf("quality review = %q, want the documented default", bundle.QualityReview.Summary)
	}
	// The other agents still produced real results.
	if len(bundle.ContentOptimization.OptimizedSkills.PrioritizedSkills) == 0 {
		t.Error("content optimizer result lost")
	}
	if bundle.MatchScore.Summary == "Match scoring unavailable" {
		t.Error("match scorer should have run for real")
	}
}

func TestGenerateIsDeterministicWithoutOracle(t *testing.T) {
	o := testOrchestrator(t)

	first := o.Generate(context.Background(), testProfile(), testSubmission())
	second := o.Generate(context.Background(), testProfile(), testSubmission())

	if first.FinalResume.ResumeMD != second.FinalResume.ResumeMD {
		t.Errorf("resume markdown differs between runs:\nfirst:\n%s\nsecond:\n%s",
			first.FinalResume.ResumeMD, second.FinalResume.ResumeMD)
	}
	if first.FinalResume.ResumeHTML != second.FinalResume.ResumeHTML {
		t.Error("resume HTML differs between runs")
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshaling first bundle: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshaling second bundle: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Errorf("bundles differ between runs:\nfirst: %s\nsecond: %s", firstJSON, secondJSON)
	}
}
