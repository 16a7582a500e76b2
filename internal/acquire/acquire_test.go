package acquire

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestHelperProcess stands in for yt-dlp/ffmpeg. It creates the file named by
// ACQUIRE_HELPER_OUTPUT unless ACQUIRE_HELPER_MODE=fail.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("ACQUIRE_HELPER_MODE") == "fail" {
		fmt.Fprintln(os.Stderr, "helper: simulated tool failure")
		os.Exit(3)
	}
	if output := os.Getenv("ACQUIRE_HELPER_OUTPUT"); output != "" {
		if err := os.WriteFile(output, []byte("audio"), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	os.Exit(0)
}

// stubCommand routes the exec seam to the helper process. The output path is
// derived from the captured args the same way the real tools would derive it.
func stubCommand(t *testing.T, captured *[][]string, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append(*captured, append([]string{name}, args...))
		}
		output := ""
		for i, arg := range args {
			if arg == "--output" && i+1 < len(args) {
				output = strings.ReplaceAll(args[i+1], "%(ext)s", "mp3")
			}
		}
		if output == "" && len(args) > 0 {
			if last := args[len(args)-1]; strings.HasSuffix(last, ".mp3") {
				output = last
			}
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"ACQUIRE_HELPER_MODE="+mode,
			"ACQUIRE_HELPER_OUTPUT="+output,
		)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestNewCLIAppliesOptions(t *testing.T) {
	cli := NewCLI("/tmp/stage", WithDownloader("/opt/yt-dlp"), WithTranscoder("/opt/ffmpeg"))
	if cli.downloader != "/opt/yt-dlp" || cli.transcoder != "/opt/ffmpeg" {
		t.Fatalf("options not applied: %#v", cli)
	}
}

func TestFetchRequiresURL(t *testing.T) {
	cli := NewCLI(t.TempDir())
	if _, err := cli.Fetch(context.Background(), "  ", Options{}); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestFetchRequiresStagingDir(t *testing.T) {
	cli := NewCLI("")
	if _, err := cli.Fetch(context.Background(), "https://example.com/a", Options{}); err == nil {
		t.Fatal("expected error for missing staging dir")
	}
}

func TestFetchDownloadsAudio(t *testing.T) {
	var captured [][]string
	stubCommand(t, &captured, "success")

	cli := NewCLI(t.TempDir())
	path, err := cli.Fetch(context.Background(), "https://example.com/watch?v=abc", Options{})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty output file at %s: %v", path, err)
	}
	if len(captured) != 1 {
		t.Fatalf("expected a single tool invocation, got %d", len(captured))
	}
	args := captured[0]
	if args[0] != "yt-dlp" {
		t.Fatalf("expected yt-dlp invocation, got %v", args)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "--extract-audio") || !strings.Contains(joined, "https://example.com/watch?v=abc") {
		t.Fatalf("unexpected downloader args %v", args)
	}
}

func TestFetchTrimsWhenRangeSet(t *testing.T) {
	var captured [][]string
	stubCommand(t, &captured, "success")

	cli := NewCLI(t.TempDir())
	path, err := cli.Fetch(context.Background(), "https://example.com/a", Options{From: "0:30", To: "1:45"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.HasSuffix(path, "-trimmed.mp3") {
		t.Fatalf("expected trimmed output path, got %s", path)
	}
	if len(captured) != 2 {
		t.Fatalf("expected download then trim, got %d invocations", len(captured))
	}
	trim := strings.Join(captured[1], " ")
	if captured[1][0] != "ffmpeg" || !strings.Contains(trim, "-ss 0:30") || !strings.Contains(trim, "-to 1:45") {
		t.Fatalf("unexpected trim args %v", captured[1])
	}
	downloaded := strings.TrimSuffix(path, "-trimmed.mp3") + ".mp3"
	if _, err := os.Stat(downloaded); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected untrimmed intermediate to be removed, stat err=%v", err)
	}
}

func TestFetchToolFailure(t *testing.T) {
	stubCommand(t, nil, "fail")

	cli := NewCLI(t.TempDir())
	_, err := cli.Fetch(context.Background(), "https://example.com/a", Options{})
	if !errors.Is(err, ErrAcquisitionFailed) {
		t.Fatalf("expected ErrAcquisitionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "simulated tool failure") {
		t.Fatalf("expected tool stderr in error, got %v", err)
	}
}

func TestFetchMissingOutputFails(t *testing.T) {
	// Helper exits zero but writes nothing when no output path is resolved.
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "ACQUIRE_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() { commandContext = original })

	cli := NewCLI(t.TempDir())
	if _, err := cli.Fetch(context.Background(), "https://example.com/a", Options{}); !errors.Is(err, ErrAcquisitionFailed) {
		t.Fatalf("expected ErrAcquisitionFailed for missing output, got %v", err)
	}
}

func TestFetchLockFileDoesNotLeakIntoOutput(t *testing.T) {
	var captured [][]string
	stubCommand(t, &captured, "success")

	stagingDir := t.TempDir()
	cli := NewCLI(stagingDir)
	path, err := cli.Fetch(context.Background(), "https://example.com/a", Options{})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if filepath.Base(path) == ".acquire.lock" {
		t.Fatal("lock file must not be returned as output")
	}
	if _, err := os.Stat(filepath.Join(stagingDir, ".acquire.lock")); err != nil {
		t.Fatalf("expected lock file in staging dir: %v", err)
	}
}
