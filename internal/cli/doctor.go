package cli

import (
	"github.com/spf13/cobra"

	"interviewanalyzer/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(cmd.OutOrStdout())
			cfg := deps.Config
			ok := true

			if cfg.MistralAPIKey != "" {
				f.SetupCheck("Mistral API key", true, "configured")
			} else {
				f.SetupCheck("Mistral API key", false, "not set. Set MISTRAL_API_KEY, add it to .env, or enter one in the upload form")
				ok = false
			}
			f.SetupCheck("Mistral endpoint", true, cfg.MistralBaseURL)
			f.SetupCheck("Models", true, cfg.TranscriptionModel+" (transcription), "+cfg.ChatModel+" (chat)")

			if cfg.ArchiveEnabled() {
				f.SetupCheck("Report archive", true, "Supabase table "+cfg.ReportsTable)
			} else {
				f.SetupCheck("Report archive", true, "disabled (set SUPABASE_URL and SUPABASE_SERVICE_KEY to enable)")
			}

			if ok {
				f.Success("\nReady to analyze interviews!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
