package cmd

import (
	"context"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/reversi-client/internal"
	"github.com/rocketscienceinc/reversi-client/internal/console"
	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/session"
)

// reversi play
func Play(load loader) *cobra.Command {
	play := &cobra.Command{
		Use:   "play",
		Short: "Play a local game",
		Long: heredoc.Doc(`play starts a game on this machine. Both sides can be
			humans (hvh), a human with Black against the engine (hvai)
			or the engine against itself (aivai).

			Moves are typed as "ROW COL", counted from zero at the top
			left corner. Legal squares are marked with * on the board.
		`),
		Example: heredoc.Doc(`
			$ reversi play
			$ reversi play --mode hvai --difficulty hard
			$ reversi play --mode aivai --size 6
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger := load(cmd)

			options, err := gameOptions(cmd, conf.Game.BoardSize, conf.Game.Difficulty)
			if err != nil {
				return err
			}

			return application.RunApp(cmd.Context(), logger, conf, func(ctx context.Context, app *application.App) error {
				if err = app.Controller.NewGame(ctx, options); err != nil {
					return err
				}

				return console.New(logger, os.Stdin, cmd.OutOrStdout(), app.Controller).Run(ctx)
			})
		},
	}

	play.Flags().StringP("mode", "m", string(entity.ModeHvH), "Game mode: hvh, hvai or aivai")
	play.Flags().IntP("size", "s", 0, "Board size: 6, 8, 10 or 12 (default from config)")
	play.Flags().StringP("difficulty", "d", "", "Engine difficulty: easy, medium, hard or expert (default from config)")

	return play
}

// gameOptions - reads --mode, --size and --difficulty, falling back to the configured defaults.
func gameOptions(cmd *cobra.Command, size int, difficulty string) (session.Options, error) {
	modeFlag, _ := cmd.Flags().GetString("mode")
	if modeFlag == "" {
		modeFlag = string(entity.ModeOnline)
	}

	mode, err := entity.ParseMode(modeFlag)
	if err != nil {
		return session.Options{}, err
	}

	if flagSize, _ := cmd.Flags().GetInt("size"); flagSize != 0 {
		size = flagSize
	}

	if flagDifficulty, _ := cmd.Flags().GetString("difficulty"); flagDifficulty != "" {
		difficulty = flagDifficulty
	}

	level, err := entity.ParseDifficulty(difficulty)
	if err != nil {
		return session.Options{}, err
	}

	options := session.Options{Mode: mode, Size: size, Difficulty: level}

	return options, options.Validate()
}
