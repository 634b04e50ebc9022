package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sigil/internal/version"
)

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

const versionTagline = "charge first, evaluate second"

var (
	versionFormat   string
	versionShowHash bool
	versionShowMsg  bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMsg, "message", false, "include git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sigil build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := buildVersionPayload()
		switch strings.ToLower(versionFormat) {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), payload)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func buildVersionPayload() versionPayload {
	payload := versionPayload{
		Tool:    "sigil",
		Version: strings.TrimSpace(version.Version),
		Tagline: versionTagline,
	}
	if payload.Version == "" {
		payload.Version = "dev"
	}
	if versionShowHash || versionShowFull {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if versionShowMsg || versionShowFull {
		payload.GitMessage = valueOrUnknown(version.GitMessage)
	}
	if versionShowDate || versionShowFull {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	return payload
}

func renderVersionPretty(out io.Writer, payload versionPayload) {
	display := version.Pretty()
	if strings.TrimSpace(display) == "" {
		display = payload.Version
	}
	fmt.Fprintf(out, "sigil %s (%s)\n", display, payload.Tagline)
	shown := false
	for _, row := range [][2]string{
		{"commit", payload.GitCommit},
		{"message", payload.GitMessage},
		{"built", payload.BuildDate},
	} {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", row[0], row[1])
		shown = true
	}
	if !shown {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
