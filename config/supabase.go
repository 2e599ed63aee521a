package config

import (
	"fmt"
	"strings"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient initializes the Supabase client used by the report
// archive. It returns nil without error when the archive is not configured.
func NewSupabaseClient(cfg *Config) (*supa.Client, error) {
	if !cfg.ArchiveEnabled() {
		Log.Info("Supabase not configured; report archive disabled")
		return nil, nil
	}

	client, err := supa.NewClient(strings.TrimRight(cfg.SupabaseURL, "/"), cfg.SupabaseKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing Supabase client: %w", err)
	}

	Log.WithField("table", cfg.ReportsTable).Info("Supabase client initialized successfully")
	return client, nil
}
