package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-matcher/internal/bootstrap"
	"resume-matcher/internal/extract"
	"resume-matcher/internal/matching"
	"resume-matcher/internal/semantic"
	"resume-matcher/internal/shared/config"
)

type scoreOptions struct {
	ResumePath string
	JobPath    string
	Semantic   bool
}

var scoreOpts scoreOptions

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume file against a job description file and print the analysis as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cfg := config.Load(cfgFile)

		var provider semantic.Provider
		if scoreOpts.Semantic {
			p, name, err := bootstrap.BuildSemantic(ctx, cfg)
			if err != nil {
				return err
			}
			if name == "none" {
				fmt.Fprintln(cmd.ErrOrStderr(), "semantic provider not configured; scoring with keywords only")
			}
			provider = p
		}

		svc := &matching.Service{Semantic: provider, SemanticTimeout: cfg.SemanticTimeout}
		return runScore(ctx, cmd.OutOrStdout(), svc, scoreOpts)
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreOpts.ResumePath, "resume", "r", "", "resume file (.pdf, .docx or plain text)")
	scoreCmd.Flags().StringVarP(&scoreOpts.JobPath, "job", "j", "", "job description file (plain text)")
	scoreCmd.Flags().BoolVar(&scoreOpts.Semantic, "semantic", false, "also run the configured semantic provider")
	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(ctx context.Context, out io.Writer, svc *matching.Service, opts scoreOptions) error {
	resumeText, err := readResume(ctx, opts.ResumePath)
	if err != nil {
		return err
	}
	jobData, err := os.ReadFile(opts.JobPath)
	if err != nil {
		return fmt.Errorf("read job: %w", err)
	}
	jobText := string(jobData)
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return errors.New("resume and job text must not be empty")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(svc.Preview(ctx, resumeText, jobText))
}

// readResume extracts PDF and DOCX files and reads anything else as plain text.
func readResume(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	name := filepath.Base(path)
	if !extract.Supported("", name) {
		return string(data), nil
	}
	text, err := extract.ExtractTextFromBytes(ctx, data, "", name)
	if err != nil {
		return "", fmt.Errorf("extract resume %s: %w", name, err)
	}
	return text, nil
}
