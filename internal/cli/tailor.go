package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/agent"
	"resumeforge/internal/common"
	"resumeforge/internal/pipeline"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor [profile-file] [role-file]",
	Short: "Tailor a profile for a specific job posting",
	Long: `Tailor a candidate profile for a specific job posting. The command
takes two arguments: the path to the profile JSON file and the path to the
role JSON file. The role file holds company_name, role_title, job_description
and optional company_info. The result bundles the tailored resume, the job
analysis, quality review, match score, calibration guidance, interview
questions and an ATS keyword report.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if tailorConfig.OutputFormat == "" {
			tailorConfig.OutputFormat = cfg.App.DefaultFormat
		}
		tailorConfig.MaxFileSize = cfg.App.MaxFileSize
		// Validate format against supported formats
		return common.ValidateOutputFormat(tailorConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runTailor,
}

var tailorConfig common.CommandConfig

func init() {
	tailorCmd.Flags().StringVarP(&tailorConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	tailorCmd.Flags().StringVar(&tailorConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = tailorCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// tailorInput pairs the two decoded input files for one tailoring run
type tailorInput struct {
	profile types.ProfileRecord
	role    types.RoleSubmission
}

func runTailor(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	agents := agent.NewSet(cfg, logger, nil)
	defer func() {
		if err := agents.Close(); err != nil {
			logger.LogError(err, "Failed to close oracle clients")
		}
	}()
	orchestrator := pipeline.NewOrchestrator(agents, logger)

	createInput := func(contents []string) (tailorInput, error) {
		if len(contents) != 2 {
			return tailorInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		var input tailorInput
		if err := json.Unmarshal([]byte(contents[0]), &input.profile); err != nil {
			return tailorInput{}, fmt.Errorf("invalid profile JSON: %w", err)
		}
		if err := json.Unmarshal([]byte(contents[1]), &input.role); err != nil {
			return tailorInput{}, fmt.Errorf("invalid role JSON: %w", err)
		}
		return input, nil
	}

	logDetails := func(input tailorInput, cfg common.CommandConfig) {
		logger.Info("Starting resume tailoring",
			"candidate", input.profile.Name,
			"role_title", input.role.RoleTitle,
			"company", input.role.CompanyName,
			"output_format", cfg.OutputFormat)
	}

	tailorOperation := func(ctx context.Context, input tailorInput) types.Bundle {
		return orchestrator.Generate(ctx, input.profile, input.role)
	}

	err := common.RunCommand(
		cmd.Context(),
		logger,
		tailorConfig,
		args,
		createInput,
		tailorOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to tailor resume: %w", err)
	}
	logger.Info("Resume tailoring completed successfully")
	return nil
}
