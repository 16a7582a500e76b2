// Package deps validates the external binaries the media acquisition
// workflow shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"toniecloud/internal/config"
)

// Requirement defines an external tool the CLI relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig returns the requirements implied by the acquisition settings.
func ForConfig(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Downloader",
			Command:     cfg.Acquire.Downloader,
			Description: "fetches remote audio (yt-dlp)",
		},
		{
			Name:        "Transcoder",
			Command:     cfg.Acquire.Transcoder,
			Description: "trims fetched audio (ffmpeg)",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
