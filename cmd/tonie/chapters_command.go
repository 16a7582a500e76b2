package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters <tonie>",
		Short: "List the chapters on a Creative Tonie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			tonie, err := findTonie(cmd.Context(), ctx, client, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tonie.Chapters) == 0 {
				fmt.Fprintf(out, "%s has no chapters\n", tonie.Name)
				return nil
			}

			rows := make([][]string, 0, len(tonie.Chapters))
			for i, chapter := range tonie.Chapters {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					chapter.Title,
					formatSeconds(chapter.Seconds),
					yesNo(chapter.Transcoding),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "Length", "Transcoding"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%s free on %s\n", formatSeconds(tonie.SecondsRemaining), tonie.Name)
			return nil
		},
	}
}
