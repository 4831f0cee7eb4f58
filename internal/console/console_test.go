package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames-backend/internal/game"
	"github.com/rocketscienceinc/boardgames-backend/internal/metrics"
	"github.com/rocketscienceinc/boardgames-backend/internal/repository"
	"github.com/rocketscienceinc/boardgames-backend/internal/usecase"
)

func newConsole() (*Console, *usecase.SessionManager, *bytes.Buffer) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	stats := metrics.New()
	manager := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(), stats, 19)

	var out bytes.Buffer

	return New(logger, manager, stats, &out), manager, &out
}

func run(t *testing.T, c *Console, script ...string) {
	t.Helper()

	err := c.Run(context.Background(), strings.NewReader(strings.Join(script, "\n")+"\n"))
	require.NoError(t, err)
}

func outputLines(out *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestConsole_GoSession(t *testing.T) {
	// Given: a console over an in-memory store
	c, _, out := newConsole()

	// When: a short 9x9 game is played out
	run(t, c,
		"new go 9",
		"play 0 1",
		"play 0 0",
		"play 1 0",
		"play 1 0",
		"pass",
		"pass",
		"score",
		"quit",
		"play 5 5",
	)

	// Then: every command is answered in order and nothing after quit runs
	lines := outputLines(out)
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "session "))
	assert.True(t, strings.HasSuffix(lines[0], " go"))
	assert.Equal(t, []string{
		"ok",
		"ok",
		"ok",
		"rejected Occupied",
		"ok",
		"ok game-over",
		"score black 82 stones 2 prisoners 1 territory 79",
		"score white 0 stones 0 prisoners 0 territory 0",
		"winner black",
	}, lines[1:])
}

func TestConsole_XiangqiSession(t *testing.T) {
	c, _, out := newConsole()

	run(t, c,
		"new xiangqi",
		"move 7 1 7 4",
		"move 7 4 3 4",
		"pass",
		"targets 0 4",
		"score",
		"history",
	)

	lines := outputLines(out)
	require.Len(t, lines, 8)
	assert.True(t, strings.HasSuffix(lines[0], " xiangqi"))
	assert.Equal(t, "ok", lines[1])
	assert.Equal(t, "rejected", lines[2])
	assert.Equal(t, "rejected Unsupported", lines[3])
	assert.Equal(t, "targets (1,4)", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "error "))
	assert.Equal(t, "1. red Cannon (7,1)-(7,4)", lines[6])
	assert.Equal(t, "ok", lines[7])
}

func TestConsole_Piece(t *testing.T) {
	// Given: a new xiangqi session
	c, _, out := newConsole()

	// When: a few squares are inspected
	run(t, c,
		"new xiangqi",
		"piece 9 4",
		"piece 3 0",
		"piece 4 4",
		"piece 1",
		"new go 9",
		"piece 0 0",
	)

	// Then: occupied squares carry the piece names
	lines := outputLines(out)
	require.Len(t, lines, 7)
	assert.Equal(t, "piece red General 帥 shuài", lines[1])
	assert.Equal(t, "piece black Soldier 卒 zú", lines[2])
	assert.Equal(t, "piece empty", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "error bad arguments"))
	assert.Equal(t, "error session "+strings.Fields(lines[5])[1]+": action is not supported by this game: pieces in go", lines[6])
}

func TestConsole_UseAndShow(t *testing.T) {
	// Given: a session created outside the console
	c, manager, out := newConsole()

	snap, err := manager.Create(context.Background(), game.Config{Kind: game.KindGo, BoardSize: 9})
	require.NoError(t, err)
	_, err = manager.Play(context.Background(), snap.ID, game.Place(0, 0))
	require.NoError(t, err)

	// When: the console switches to it and shows the board
	run(t, c, "use "+snap.ID, "show")

	// Then: the board is printed row by row
	lines := outputLines(out)
	require.Len(t, lines, 11)
	assert.Equal(t, "ok", lines[0])
	assert.Equal(t, "X........", lines[1])
	assert.Equal(t, "status in_progress to-move white", lines[10])
}

func TestConsole_ResetAndDelete(t *testing.T) {
	c, _, out := newConsole()

	run(t, c, "new go", "play 3 3", "reset", "show", "delete", "show")

	lines := outputLines(out)
	require.Len(t, lines, 2+1+19+1+1+1)
	assert.Equal(t, "ok", lines[1])
	assert.Equal(t, "ok", lines[2])
	assert.Equal(t, "...................", lines[3+3])
	assert.Equal(t, "ok", lines[len(lines)-2])
	assert.Equal(t, "error no active session", lines[len(lines)-1])
}

func TestConsole_Errors(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		prefix string
	}{
		{name: "No session", line: "play 1 1", prefix: "error no active session"},
		{name: "Unknown command", line: "castle", prefix: "error unknown command: castle"},
		{name: "Bad number", line: "play x 1", prefix: "error bad arguments"},
		{name: "Missing numbers", line: "move 1 2", prefix: "error bad arguments"},
		{name: "Unknown game", line: "new chess", prefix: "error unknown game kind"},
		{name: "Size for xiangqi", line: "new xiangqi 9", prefix: "error bad arguments"},
		{name: "Invalid size", line: "new go 7", prefix: "error failed to create game: invalid board size"},
		{name: "Unknown session", line: "use 1234", prefix: "error session not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, out := newConsole()

			c.Execute(context.Background(), tc.line)

			assert.True(t, strings.HasPrefix(out.String(), tc.prefix), out.String())
		})
	}
}

func TestConsole_Help(t *testing.T) {
	c, _, out := newConsole()

	c.Execute(context.Background(), "help")

	lines := outputLines(out)
	assert.Len(t, lines, 15)
	assert.Contains(t, lines, "help move <row> <col> <row> <col>")
	assert.Equal(t, "help quit", lines[len(lines)-1])
}

func TestConsole_Stats(t *testing.T) {
	c, _, out := newConsole()

	run(t, c, "new go 9", "play 0 0", "play 0 0", "stats")

	lines := outputLines(out)
	assert.Contains(t, lines, "stat boardgames_actions_total{kind=go,outcome=accepted} 1")
	assert.Contains(t, lines, "stat boardgames_actions_total{kind=go,outcome=rejected_occupied} 1")
	assert.Contains(t, lines, "stat boardgames_sessions_created_total{kind=go} 1")
	assert.Contains(t, lines, "stat boardgames_live_sessions 1")
	assert.Equal(t, "ok", lines[len(lines)-1])
}

func TestConsole_RunStopsOnCancel(t *testing.T) {
	c, _, _ := newConsole()

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Run(ctx, pr))
}
