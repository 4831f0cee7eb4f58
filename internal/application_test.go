package application

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames-backend/internal/apperror"
	"github.com/rocketscienceinc/boardgames-backend/internal/config"
	"github.com/rocketscienceinc/boardgames-backend/testing/suite"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		LogLevel: "info",
		Storage:  config.Storage{Driver: driver},
		Games:    config.Games{DefaultGoSize: 9},
	}
}

func TestRunApp(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Runs the console until end of input", func(t *testing.T) {
		var out bytes.Buffer

		err := RunApp(context.Background(), logger, testConfig(config.DriverMemory),
			strings.NewReader("new go\nplay 4 4\n"), &out)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "ok", lines[1])
	})

	t.Run("Unknown driver", func(t *testing.T) {
		err := RunApp(context.Background(), logger, testConfig("etcd"), strings.NewReader(""), io.Discard)
		require.ErrorIs(t, err, apperror.ErrUnknownStoreDriver)
	})
}

func TestShowSession_Redis(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a session played through the console against redis
	conf := testConfig(config.DriverRedis)
	conf.Redis = st.Redis

	var out bytes.Buffer
	err := RunApp(ctx, st.Logger, conf, strings.NewReader("new xiangqi\nmove 7 1 7 4\n"), &out)
	require.NoError(t, err)

	fields := strings.Fields(strings.SplitN(out.String(), "\n", 2)[0])
	require.Len(t, fields, 3)
	id := fields[1]

	// When: it is shown by a fresh process
	var shown bytes.Buffer
	require.NoError(t, ShowSession(ctx, st.Logger, conf, id, &shown))

	// Then: the replayed position has the cannon on the centre file
	var snap struct {
		ID   string `json:"id"`
		View struct {
			Cells  [][]string `json:"cells"`
			ToMove string     `json:"to_move"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(shown.Bytes(), &snap))
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, "C", snap.View.Cells[7][4])
	assert.Equal(t, "black", snap.View.ToMove)
}
