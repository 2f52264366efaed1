package cmd

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/reversi-client/internal"
	"github.com/rocketscienceinc/reversi-client/internal/console"
)

// reversi online
func Online(load loader) *cobra.Command {
	online := &cobra.Command{
		Use:   "online",
		Short: "Play against someone through the relay",
		Long: heredoc.Doc(`online connects to the relay configured under relay.url.

			With --create a new room is opened and you play Black once an
			opponent joins. With --join you take the White seat of an open
			room. Without either flag the open rooms are listed and the
			"create", "join" and "rooms" commands are available at the prompt.
		`),
		Example: heredoc.Doc(`
			$ reversi online
			$ reversi online --create --size 10
			$ reversi online --join room-3
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger := load(cmd)

			options, err := gameOptions(cmd, conf.Game.BoardSize, conf.Game.Difficulty)
			if err != nil {
				return err
			}

			create, _ := cmd.Flags().GetBool("create")
			join, _ := cmd.Flags().GetString("join")

			return application.RunApp(cmd.Context(), logger, conf, func(ctx context.Context, app *application.App) error {
				if err = app.Controller.NewGame(ctx, options); err != nil {
					return err
				}

				term := console.New(logger, os.Stdin, cmd.OutOrStdout(), app.Controller)

				var lobby string
				switch {
				case create:
					lobby = "create"
				case join != "":
					lobby = "join " + join
				default:
					lobby = "rooms"
				}

				if err = term.Execute(ctx, lobby); err != nil {
					return err
				}

				return term.Run(ctx)
			})
		},
	}

	online.Flags().Bool("create", false, "Open a new room")
	online.Flags().String("join", "", "Join the room with this id")
	online.Flags().IntP("size", "s", 0, "Board size of a created room (default from config)")
	online.Flags().StringP("difficulty", "d", "", "Difficulty used for hints (default from config)")
	online.MarkFlagsMutuallyExclusive("create", "join")

	return online
}
