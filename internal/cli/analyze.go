package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"interviewanalyzer/internal/audio"
	"interviewanalyzer/internal/output"
	"interviewanalyzer/internal/pipeline"
)

const analyzeExample = `  interview-analyzer analyze --file interview.mp3
  interview-analyzer analyze --url https://example.com/interview.wav --format json`

func NewAnalyzeCmd(deps *Dependencies) *cobra.Command {
	var (
		file   string
		url    string
		format string
		apiKey string
	)

	cmd := &cobra.Command{
		Use:     "analyze",
		Short:   "Analyze one recording and print the report",
		Example: analyzeExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (url == "") {
				return errors.New("exactly one of --file or --url is required")
			}
			switch format {
			case output.FormatText, output.FormatJSON, output.FormatYAML:
			default:
				return fmt.Errorf("unknown --format %q (want text, json or yaml)", format)
			}

			req := pipeline.Request{URL: url, APIKey: apiKey}
			source := url
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading %s: %w", file, err)
				}
				req.Upload = &audio.Upload{Filename: filepath.Base(file), Data: data}
				source = file
			}

			// Progress goes to stderr so json/yaml output stays parseable.
			output.NewFormatter(cmd.ErrOrStderr()).Analyzing(source)

			ctx, cancel := context.WithTimeout(cmd.Context(), deps.Config.RequestTimeout)
			defer cancel()

			report, err := deps.App.Pipeline.Run(ctx, req)
			if err != nil {
				return err
			}
			return output.NewFormatter(cmd.OutOrStdout()).Report(report, format)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to an .mp3 or .wav recording")
	cmd.Flags().StringVarP(&url, "url", "u", "", "URL of a recording")
	cmd.Flags().StringVarP(&format, "format", "o", output.FormatText, "output format: text, json or yaml")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Mistral API key (overrides MISTRAL_API_KEY)")
	return cmd
}
