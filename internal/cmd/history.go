package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/reversi-client/internal"
)

// reversi history
func History(load loader) *cobra.Command {
	history := &cobra.Command{
		Use:   "history",
		Short: "Lists recently finished games",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger := load(cmd)
			limit, _ := cmd.Flags().GetInt64("limit")
			remove, _ := cmd.Flags().GetString("delete")

			return application.RunApp(cmd.Context(), logger, conf, func(ctx context.Context, app *application.App) error {
				records, err := app.History()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				if remove != "" {
					if err = records.DeleteByID(ctx, remove); err != nil {
						return err
					}

					fmt.Fprintf(out, "Deleted %s.\n", remove)

					return nil
				}

				games, err := records.Recent(ctx, limit)
				if err != nil {
					return err
				}

				if len(games) == 0 {
					fmt.Fprintln(out, "No finished games yet.")
					return nil
				}

				for _, game := range games {
					fmt.Fprintf(out, "%s  %-6s %2dx%-2d  %-5s  %2d:%-2d  %3d moves  %s\n",
						game.FinishedAt.Format(time.DateTime),
						game.Mode,
						game.Size, game.Size,
						game.Winner,
						game.Score.Black, game.Score.White,
						len(game.History),
						game.ID,
					)
				}

				return nil
			})
		},
	}

	history.Flags().Int64P("limit", "n", 10, "Number of games to show")
	history.Flags().String("delete", "", "Remove the game with this id from the history")

	return history
}
