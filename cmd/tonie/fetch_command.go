package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"toniecloud/internal/acquire"
	"toniecloud/internal/config"
	"toniecloud/internal/fileutil"
	"toniecloud/internal/toniecloud"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var from string
	var to string
	var output string
	var uploadTo string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download audio from a URL, optionally trimming and uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fetcher := acquire.NewCLI(cfg.Acquire.StagingDir,
				acquire.WithDownloader(cfg.Acquire.Downloader),
				acquire.WithTranscoder(cfg.Acquire.Transcoder),
			)

			logger := ctx.ensureLogger()
			logger.Info("fetching audio", "url", args[0], "from", from, "to", to)
			path, err := fetcher.Fetch(cmd.Context(), args[0], acquire.Options{From: from, To: to})
			if err != nil {
				logger.Error("fetch failed", "url", args[0], "error", err)
				_ = ctx.notifier().NotifyError(cmd.Context(), err, "fetch")
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				target, err := config.ExpandPath(output)
				if err != nil {
					return err
				}
				if err := fileutil.MoveFile(path, target); err != nil {
					return fmt.Errorf("move fetched audio: %w", err)
				}
				path = target
			}
			fmt.Fprintf(out, "Fetched %s\n", path)

			if uploadTo == "" {
				return nil
			}
			client, err := ctx.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			tonie, err := findTonie(cmd.Context(), ctx, client, uploadTo)
			if err != nil {
				return err
			}
			title := filepath.Base(path)
			if err := client.AddChapter(cmd.Context(), tonie, path, title, toniecloud.UploadOptions{}); err != nil {
				logger.Error("chapter upload failed", "tonie", tonie.Name, "file", path, "error", err)
				_ = ctx.notifier().NotifyError(cmd.Context(), err, "upload")
				return err
			}
			logger.Info("chapter uploaded", "tonie", tonie.Name, "title", title)
			_ = ctx.notifier().NotifyChapterUploaded(cmd.Context(), tonie.Name, title)
			fmt.Fprintf(out, "Uploaded %s to %s\n", title, tonie.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Trim start position (e.g. 90, 1:30)")
	cmd.Flags().StringVar(&to, "to", "", "Trim end position (e.g. 3:00)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Move the fetched file to this path")
	cmd.Flags().StringVar(&uploadTo, "upload", "", "Upload the fetched audio to this Creative Tonie")
	return cmd
}
