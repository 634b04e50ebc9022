package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata for the sigil CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var segmentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Pretty colorizes the dotted segments of Version for terminal output.
// Coloring happens at render time so machine-readable paths keep the
// plain string.
func Pretty() string {
	core, suffix, _ := strings.Cut(Version, "-")
	if core == "" {
		return Version
	}
	parts := strings.Split(core, ".")
	for i := range parts {
		parts[i] = segmentColors[i%len(segmentColors)].Sprint(parts[i])
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
