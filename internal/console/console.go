// Package console is the line-driven front end: it prints the board after every change
// and turns typed commands into session intents.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/rocketscienceinc/reversi-client/internal/entity"
	"github.com/rocketscienceinc/reversi-client/internal/state"
)

var errQuit = errors.New("quit")

type controller interface {
	Play(ctx context.Context, row, col int) error
	AutoPlay(ctx context.Context) error
	Hint(ctx context.Context) (*entity.Move, error)
	Analyze(ctx context.Context) ([]entity.RankedMove, error)
	Reset(ctx context.Context) error
	Snapshot() entity.GameSession
	Subscribe(fn state.Listener) func()

	CreateRoom(ctx context.Context, size int) (*entity.Room, error)
	JoinRoom(ctx context.Context, id string) (*entity.Room, error)
	ListOpenRooms(ctx context.Context) ([]entity.OpenRoom, error)
	LeaveRoom(ctx context.Context) error
}

type Console struct {
	logger *slog.Logger

	in         io.Reader
	out        io.Writer
	controller controller
	spinner    *spinner.Spinner

	mu      sync.Mutex
	lastKey string
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, controller controller) *Console {
	spin := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(out))
	spin.Suffix = " thinking..."

	return &Console{
		logger:     logger.With("component", "console"),
		in:         in,
		out:        out,
		controller: controller,
		spinner:    spin,
	}
}

// Run - prints the current game and executes commands until quit, end of input or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribe := that.controller.Subscribe(that.onEvent)
	defer unsubscribe()
	defer that.spinner.Stop()

	that.render(that.controller.Snapshot())
	that.println(`type "help" for commands`)

	if err := that.controller.AutoPlay(ctx); err != nil {
		that.println("! " + err.Error())
	}

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			err := that.Execute(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}

			if err != nil {
				that.println("! " + err.Error())
			}
		}
	}
}

// Execute - runs one command line.
func (that *Console) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		that.help()
		return nil
	case "hint":
		move, err := that.controller.Hint(ctx)
		if err != nil {
			return err
		}

		that.println("hint: " + move.String())

		return nil
	case "analyze":
		return that.analyze(ctx)
	case "reset":
		if err := that.controller.Reset(ctx); err != nil {
			return err
		}

		return that.controller.AutoPlay(ctx)
	case "rooms":
		return that.rooms(ctx)
	case "create":
		return that.create(ctx, args)
	case "join":
		if len(args) != 1 {
			return fmt.Errorf("usage: join ROOM_ID")
		}

		_, err := that.controller.JoinRoom(ctx, args[0])

		return err
	case "leave":
		return that.controller.LeaveRoom(ctx)
	default:
		return that.move(ctx, fields)
	}
}

func (that *Console) move(ctx context.Context, fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("unknown command %q", strings.Join(fields, " "))
	}

	row, rowErr := strconv.Atoi(fields[0])
	col, colErr := strconv.Atoi(fields[1])
	if rowErr != nil || colErr != nil {
		return fmt.Errorf("unknown command %q", strings.Join(fields, " "))
	}

	if err := that.controller.Play(ctx, row, col); err != nil {
		return err
	}

	return that.controller.AutoPlay(ctx)
}

func (that *Console) analyze(ctx context.Context) error {
	ranked, err := that.controller.Analyze(ctx)
	if err != nil {
		return err
	}

	for i, entry := range ranked {
		that.println(fmt.Sprintf("%2d. %s  %.1f  %s", i+1, entry.Move, entry.Score, entry.Evaluation))
	}

	return nil
}

func (that *Console) rooms(ctx context.Context) error {
	rooms, err := that.controller.ListOpenRooms(ctx)
	if err != nil {
		return err
	}

	if len(rooms) == 0 {
		that.println("no open rooms")
		return nil
	}

	for _, room := range rooms {
		that.println(fmt.Sprintf("%s  %dx%d", room.ID, room.Size, room.Size))
	}

	return nil
}

func (that *Console) create(ctx context.Context, args []string) error {
	size := that.controller.Snapshot().Size
	if len(args) == 1 {
		var err error
		if size, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("usage: create [SIZE]")
		}
	}

	room, err := that.controller.CreateRoom(ctx, size)
	if err != nil {
		return err
	}

	that.println(fmt.Sprintf("room %s created, waiting for an opponent", room.ID))

	return nil
}

func (that *Console) help() {
	that.println(strings.Join([]string{
		"ROW COL      play a move, e.g. 2 3",
		"hint         ask the engine for a suggestion",
		"analyze      rank the moves of the side to move",
		"reset        start over with the same settings",
		"rooms        list open online rooms",
		"create [N]   host an online room",
		"join ID      join an online room",
		"leave        leave the online room",
		"quit         exit",
	}, "\n"))
}

// onEvent - runs on the store's publishing goroutine; must not call back into the controller.
func (that *Console) onEvent(event state.Event) {
	if event.Err != nil {
		that.println("! " + event.Err.Error())
	}

	if event.Session.Thinking {
		that.spinner.Start()
		return
	}

	that.spinner.Stop()
	that.render(event.Session)
}

func (that *Console) render(game entity.GameSession) {
	if game.ID == "" {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	key := renderKey(game)
	if key == that.lastKey {
		return
	}

	that.lastKey = key
	RenderBoard(that.out, game)
}

func (that *Console) println(line string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, _ = fmt.Fprintln(that.out, line)
}
