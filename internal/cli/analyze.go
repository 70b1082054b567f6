package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/agent"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [role-file]",
	Short: "Analyze a job posting for keywords and requirements",
	Long: `Analyze a job posting to extract the signals the tailoring pipeline
works from: hard and soft skills, industry terms, tech stack, responsibilities,
required and preferred qualifications, seniority level and role focus.

The role file may be a JSON role submission (company_name, role_title,
job_description, company_info) or a plain-text job description.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		analyzeConfig.MaxFileSize = cfg.App.MaxFileSize
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	agents := agent.NewSet(cfg, logger, nil)
	defer func() {
		if err := agents.Close(); err != nil {
			logger.LogError(err, "Failed to close oracle clients")
		}
	}()

	createInput := func(contents []string) (types.RoleSubmission, error) {
		if len(contents) != 1 {
			return types.RoleSubmission{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		content := contents[0]

		// JSON role submissions carry company and title metadata; anything
		// else is treated as a bare job description.
		if strings.HasPrefix(strings.TrimSpace(content), "{") {
			var role types.RoleSubmission
			if err := json.Unmarshal([]byte(content), &role); err != nil {
				return types.RoleSubmission{}, fmt.Errorf("invalid role JSON: %w", err)
			}
			if role.JobDescription == "" {
				return types.RoleSubmission{}, fmt.Errorf("role file is missing job_description")
			}
			return role, nil
		}
		if strings.TrimSpace(content) == "" {
			return types.RoleSubmission{}, fmt.Errorf("role file is empty")
		}
		return types.RoleSubmission{JobDescription: content}, nil
	}

	logDetails := func(input types.RoleSubmission, cfg common.CommandConfig) {
		logger.Info("Starting job analysis",
			"role_title", input.RoleTitle,
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	analyzeOperation := func(ctx context.Context, role types.RoleSubmission) types.JobAnalysis {
		return agents.JobAnalyzer.Analyze(ctx, role)
	}

	err := common.RunCommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze job posting: %w", err)
	}
	logger.Info("Job analysis completed successfully")
	return nil
}
