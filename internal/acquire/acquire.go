package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

var commandContext = exec.CommandContext

// ErrAcquisitionFailed marks download or transcode failures.
var ErrAcquisitionFailed = errors.New("acquisition failed")

const (
	defaultDownloader = "yt-dlp"
	defaultTranscoder = "ffmpeg"
	lockRetryDelay    = 250 * time.Millisecond
)

// Options narrows the fetched audio. From and To are ffmpeg time positions
// ("90", "1:30", "00:01:30.5"); empty means start or end of the source.
type Options struct {
	From string
	To   string
}

// Fetcher yields a playable local audio file for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) (string, error)
}

// Option configures the CLI fetcher.
type Option func(*CLI)

// WithDownloader overrides the download binary.
func WithDownloader(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.downloader = binary
		}
	}
}

// WithTranscoder overrides the trim/transcode binary.
func WithTranscoder(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.transcoder = binary
		}
	}
}

// CLI fetches audio by shelling out to yt-dlp and ffmpeg.
type CLI struct {
	downloader string
	transcoder string
	stagingDir string
}

// NewCLI constructs a CLI fetcher staging files under stagingDir.
func NewCLI(stagingDir string, opts ...Option) *CLI {
	cli := &CLI{
		downloader: defaultDownloader,
		transcoder: defaultTranscoder,
		stagingDir: stagingDir,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Fetch downloads the URL's audio into the staging directory, trimming it
// when From or To is set, and returns the local file path. The staging
// directory is guarded with an advisory lock so concurrent fetches from
// separate processes do not collide.
func (c *CLI) Fetch(ctx context.Context, url string, opts Options) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", errors.New("url required")
	}
	stagingDir := strings.TrimSpace(c.stagingDir)
	if stagingDir == "" {
		return "", errors.New("staging directory required")
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	lock := flock.New(filepath.Join(stagingDir, ".acquire.lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return "", errors.New("staging directory is locked by another acquisition")
	}
	defer func() {
		_ = lock.Unlock()
	}()

	stem := uuid.New().String()
	downloaded := filepath.Join(stagingDir, stem+".mp3")
	if err := c.download(ctx, url, filepath.Join(stagingDir, stem+".%(ext)s")); err != nil {
		return "", err
	}
	if err := checkOutput(downloaded); err != nil {
		return "", err
	}

	if opts.From == "" && opts.To == "" {
		return downloaded, nil
	}
	trimmed := filepath.Join(stagingDir, stem+"-trimmed.mp3")
	if err := c.trim(ctx, downloaded, trimmed, opts); err != nil {
		return "", err
	}
	if err := checkOutput(trimmed); err != nil {
		return "", err
	}
	_ = os.Remove(downloaded)
	return trimmed, nil
}

func (c *CLI) download(ctx context.Context, url, outputTemplate string) error {
	args := []string{
		"--no-playlist",
		"--extract-audio",
		"--audio-format", "mp3",
		"--output", outputTemplate,
		url,
	}
	cmd := commandContext(ctx, c.downloader, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %v: %s", ErrAcquisitionFailed, c.downloader, err, outputTail(output))
	}
	return nil
}

func (c *CLI) trim(ctx context.Context, input, output string, opts Options) error {
	args := []string{"-y", "-i", input}
	if opts.From != "" {
		args = append(args, "-ss", opts.From)
	}
	if opts.To != "" {
		args = append(args, "-to", opts.To)
	}
	args = append(args, "-acodec", "copy", output)
	cmd := commandContext(ctx, c.transcoder, args...)
	combined, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %v: %s", ErrAcquisitionFailed, c.transcoder, err, outputTail(combined))
	}
	return nil
}

// checkOutput guards against tools that exit zero without producing a file.
func checkOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: expected output %s missing", ErrAcquisitionFailed, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: output %s is empty", ErrAcquisitionFailed, path)
	}
	return nil
}

func outputTail(output []byte) string {
	text := strings.TrimSpace(string(output))
	const limit = 512
	if len(text) > limit {
		text = "..." + text[len(text)-limit:]
	}
	return text
}

var _ Fetcher = (*CLI)(nil)
