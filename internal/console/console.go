package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/boardgames-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgames-backend/internal/game"
	"github.com/rocketscienceinc/boardgames-backend/internal/usecase"
	"github.com/rocketscienceinc/boardgames-backend/internal/weiqi"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
)

type sessions interface {
	Create(ctx context.Context, conf game.Config) (*usecase.Snapshot, error)
	Play(ctx context.Context, id string, action game.Action) (*usecase.Outcome, error)
	Pass(ctx context.Context, id string) (*usecase.Outcome, error)
	Score(ctx context.Context, id string) (game.Score, error)
	View(ctx context.Context, id string) (*usecase.Snapshot, error)
	LegalTargets(ctx context.Context, id string, from game.Coord) ([]game.Coord, error)
	PieceAt(ctx context.Context, id string, at game.Coord) (game.PieceInfo, error)
	Reset(ctx context.Context, id string) (*usecase.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type statsSource interface {
	Lines() ([]string, error)
}

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

// Console drives sessions from a line-oriented text protocol. Each input line is a command name followed by
// its arguments; each answer starts with ok, rejected, error or a data keyword.
type Console struct {
	logger   *slog.Logger
	sessions sessions
	stats    statsSource
	out      io.Writer
	current  string
	commands map[string]command
}

func New(logger *slog.Logger, sessions sessions, stats statsSource, out io.Writer) *Console {
	that := &Console{
		logger:   logger.With("component", "console"),
		sessions: sessions,
		stats:    stats,
		out:      out,
	}

	that.commands = map[string]command{
		"new":     {"new go [size] | new xiangqi", that.newCommand},
		"use":     {"use <session-id>", that.useCommand},
		"play":    {"play <row> <col>", that.playCommand},
		"move":    {"move <row> <col> <row> <col>", that.moveCommand},
		"pass":    {"pass", that.passCommand},
		"score":   {"score", that.scoreCommand},
		"show":    {"show", that.showCommand},
		"history": {"history", that.historyCommand},
		"targets": {"targets <row> <col>", that.targetsCommand},
		"piece":   {"piece <row> <col>", that.pieceCommand},
		"reset":   {"reset", that.resetCommand},
		"delete":  {"delete", that.deleteCommand},
		"stats":   {"stats", that.statsCommand},
		"help":    {"help", that.helpCommand},
	}

	return that
}

// Run reads commands from in until quit, end of input or ctx is done.
func (that *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}

				return nil
			}

			if strings.TrimSpace(line) == "quit" {
				return nil
			}

			that.Execute(ctx, line)
		}
	}
}

// Execute runs a single command line and writes its answer.
func (that *Console) Execute(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	cmd, ok := that.commands[fields[0]]
	if !ok {
		that.printf("error %s: %s", ErrUnknownCommand, fields[0])

		return
	}

	if err := cmd.run(ctx, fields[1:]); err != nil {
		that.logger.Debug("command failed", "command", fields[0], "error", err)
		that.printf("error %s", err)
	}
}

func (that *Console) printf(format string, args ...any) {
	fmt.Fprintf(that.out, format+"\n", args...)
}

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", ErrBadArguments, n, len(args))
	}

	values := make([]int, n)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrBadArguments, arg)
		}
		values[i] = v
	}

	return values, nil
}

func (that *Console) session() (string, error) {
	if that.current == "" {
		return "", apperror.ErrNoActiveSession
	}

	return that.current, nil
}

func (that *Console) newCommand(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: new go [size] | new xiangqi", ErrBadArguments)
	}

	kind, ok := game.ParseKind(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownGame, args[0])
	}

	conf := game.Config{Kind: kind}
	if len(args) == 2 {
		if kind != game.KindGo {
			return fmt.Errorf("%w: only go takes a size", ErrBadArguments)
		}

		size, err := ints(args[1:], 1)
		if err != nil {
			return err
		}
		conf.BoardSize = size[0]
	}

	snap, err := that.sessions.Create(ctx, conf)
	if err != nil {
		return err
	}

	that.current = snap.ID
	that.printf("session %s %s", snap.ID, snap.Config.Kind)

	return nil
}

func (that *Console) useCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: use <session-id>", ErrBadArguments)
	}

	snap, err := that.sessions.View(ctx, args[0])
	if err != nil {
		return err
	}

	that.current = snap.ID
	that.printf("ok")

	return nil
}

func (that *Console) submit(ctx context.Context, action game.Action) error {
	id, err := that.session()
	if err != nil {
		return err
	}

	out, err := that.sessions.Play(ctx, id, action)
	if err != nil {
		return err
	}

	that.printResult(out.Result)

	return nil
}

func (that *Console) printResult(res game.Result) {
	switch {
	case !res.Accepted && res.Reason != "":
		that.printf("rejected %s", res.Reason)
	case !res.Accepted:
		that.printf("rejected")
	case res.GameEnded:
		that.printf("ok game-over")
	default:
		that.printf("ok")
	}
}

func (that *Console) playCommand(ctx context.Context, args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}

	return that.submit(ctx, game.Place(v[0], v[1]))
}

func (that *Console) moveCommand(ctx context.Context, args []string) error {
	v, err := ints(args, 4)
	if err != nil {
		return err
	}

	return that.submit(ctx, game.Move(v[0], v[1], v[2], v[3]))
}

func (that *Console) passCommand(ctx context.Context, _ []string) error {
	return that.submit(ctx, game.Pass())
}

func (that *Console) scoreCommand(ctx context.Context, _ []string) error {
	id, err := that.session()
	if err != nil {
		return err
	}

	score, err := that.sessions.Score(ctx, id)
	if err != nil {
		return err
	}

	that.printPoints("black", score.Black)
	that.printPoints("white", score.White)
	that.printf("winner %s", score.Winner)

	return nil
}

func (that *Console) printPoints(side string, p weiqi.Points) {
	that.printf("score %s %d stones %d prisoners %d territory %d", side, p.Total(), p.Stones, p.Prisoners, p.Territory)
}

func (that *Console) showCommand(ctx context.Context, _ []string) error {
	id, err := that.session()
	if err != nil {
		return err
	}

	snap, err := that.sessions.View(ctx, id)
	if err != nil {
		return err
	}

	that.printf("%s", snap.View)

	return nil
}

func (that *Console) historyCommand(ctx context.Context, _ []string) error {
	id, err := that.session()
	if err != nil {
		return err
	}

	snap, err := that.sessions.View(ctx, id)
	if err != nil {
		return err
	}

	for _, m := range snap.View.History {
		that.printf("%s", m)
	}
	that.printf("ok")

	return nil
}

func (that *Console) targetsCommand(ctx context.Context, args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}

	id, err := that.session()
	if err != nil {
		return err
	}

	targets, err := that.sessions.LegalTargets(ctx, id, game.Coord{Row: v[0], Col: v[1]})
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(targets)+1)
	parts = append(parts, "targets")
	for _, t := range targets {
		parts = append(parts, t.String())
	}
	that.printf("%s", strings.Join(parts, " "))

	return nil
}

func (that *Console) pieceCommand(ctx context.Context, args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}

	id, err := that.session()
	if err != nil {
		return err
	}

	info, err := that.sessions.PieceAt(ctx, id, game.Coord{Row: v[0], Col: v[1]})
	if err != nil {
		return err
	}

	that.printf("piece %s", info)

	return nil
}

func (that *Console) resetCommand(ctx context.Context, _ []string) error {
	id, err := that.session()
	if err != nil {
		return err
	}

	if _, err = that.sessions.Reset(ctx, id); err != nil {
		return err
	}
	that.printf("ok")

	return nil
}

func (that *Console) deleteCommand(ctx context.Context, _ []string) error {
	id, err := that.session()
	if err != nil {
		return err
	}

	if err = that.sessions.Delete(ctx, id); err != nil {
		return err
	}

	that.current = ""
	that.printf("ok")

	return nil
}

func (that *Console) statsCommand(context.Context, []string) error {
	lines, err := that.stats.Lines()
	if err != nil {
		return err
	}

	for _, line := range lines {
		that.printf("stat %s", line)
	}
	that.printf("ok")

	return nil
}

func (that *Console) helpCommand(context.Context, []string) error {
	names := make([]string, 0, len(that.commands))
	for name := range that.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		that.printf("help %s", that.commands[name].usage)
	}
	that.printf("help quit")

	return nil
}
