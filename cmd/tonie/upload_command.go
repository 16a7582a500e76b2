package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"toniecloud/internal/fileutil"
	"toniecloud/internal/toniecloud"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var title string
	var origin string

	cmd := &cobra.Command{
		Use:   "upload <tonie> <file>",
		Short: "Upload an audio file as a new chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[1]
			if err := fileutil.NonEmptyFile(path); err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			client, err := ctx.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			tonie, err := findTonie(cmd.Context(), ctx, client, args[0])
			if err != nil {
				return err
			}

			opts := toniecloud.UploadOptions{Origin: origin}
			if isatty.IsTerminal(os.Stdout.Fd()) {
				bar := progressbar.DefaultBytes(info.Size(), "uploading")
				opts.Progress = func(p toniecloud.UploadProgress) {
					_ = bar.Set64(p.Written)
				}
			}

			logger := ctx.ensureLogger()
			if err := client.AddChapter(cmd.Context(), tonie, path, title, opts); err != nil {
				logger.Error("chapter upload failed", "tonie", tonie.Name, "file", path, "error", err)
				_ = ctx.notifier().NotifyError(cmd.Context(), err, "upload")
				return err
			}

			chapterTitle := title
			if chapterTitle == "" {
				chapterTitle = info.Name()
			}
			logger.Info("chapter uploaded", "tonie", tonie.Name, "title", chapterTitle, "bytes", info.Size())
			_ = ctx.notifier().NotifyChapterUploaded(cmd.Context(), tonie.Name, chapterTitle)
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s) to %s\n",
				chapterTitle, humanize.Bytes(uint64(info.Size())), tonie.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Chapter title (defaults to the file name)")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin tag recorded with the chapter")
	return cmd
}
