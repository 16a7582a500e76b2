package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"toniecloud/internal/prompt"
	"toniecloud/internal/toniecloud"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var usePattern bool
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "remove <tonie> <query>",
		Short: "Remove chapters whose title matches a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var matcher toniecloud.Matcher
			if usePattern {
				re, err := regexp.Compile(args[1])
				if err != nil {
					return fmt.Errorf("compile pattern: %w", err)
				}
				matcher = toniecloud.MatchPattern(re)
			} else {
				matcher = toniecloud.MatchSubstring(args[1])
			}

			client, err := ctx.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			tonie, err := findTonie(cmd.Context(), ctx, client, args[0])
			if err != nil {
				return err
			}
			if assumeYes {
				client = client.WithPrompter(&prompt.Script{Accept: true})
			}

			logger := ctx.ensureLogger()
			removed, err := client.RemoveChapters(cmd.Context(), tonie, matcher)
			out := cmd.OutOrStdout()
			for _, chapter := range removed {
				fmt.Fprintf(out, "Removed %q\n", chapter.Title)
			}
			if err != nil {
				logger.Error("chapter removal failed", "tonie", tonie.Name, "matcher", matcher.String(), "error", err)
				_ = ctx.notifier().NotifyError(cmd.Context(), err, "remove")
				return err
			}
			if len(removed) == 0 {
				fmt.Fprintf(out, "No chapters matching %s removed from %s\n", matcher.String(), tonie.Name)
				return nil
			}
			logger.Info("chapters removed", "tonie", tonie.Name, "count", len(removed))
			_ = ctx.notifier().NotifyChaptersRemoved(cmd.Context(), tonie.Name, len(removed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&usePattern, "pattern", "p", false, "Treat the query as a regular expression")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
