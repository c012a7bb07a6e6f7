package ui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywatch/internal/shared"
)

type blockingScanner struct{}

func (blockingScanner) Scan(ctx context.Context, mode shared.DetectionMode, onProgress shared.ProgressFunc) shared.ScanResult {
	<-ctx.Done()
	return shared.ScanResult{Mode: mode}
}

func TestLoopReturnsWhenContextCancelled(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	defer s.Fini()

	app := NewAppState()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- loop(ctx, app, s, blockingScanner{}, newGate(&killer{}))
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop kept running after cancellation")
	}
}
