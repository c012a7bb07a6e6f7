package remedy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"keywatch/internal/shared"
)

type killRecorder struct {
	calls []int
	err   error
}

func (k *killRecorder) kill(pid int) error {
	k.calls = append(k.calls, pid)
	return k.err
}

func newTestGate(k *killRecorder) (*Gate, *time.Time) {
	cfg := shared.DefaultConfig()
	cfg.ConfirmTimeout = 10 * time.Second
	cfg.ExcludedPIDs = []int{0, 4, 999}

	g := NewGate(k.kill, cfg, nil)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }
	return g, &clock
}

func TestArmDoesNotKill(t *testing.T) {
	k := &killRecorder{}
	g, _ := newTestGate(k)

	req := g.Arm(1234, "agent.exe")

	assert.Empty(t, k.calls)
	assert.Contains(t, req.Prompt(), "PID 1234")
}

func TestConfirmKills(t *testing.T) {
	k := &killRecorder{}
	g, _ := newTestGate(k)

	out := g.Confirm(g.Arm(1234, "agent.exe"))

	assert.True(t, out.OK)
	assert.Equal(t, "Ended PID 1234 (agent.exe)", out.Reason)
	assert.Equal(t, []int{1234}, k.calls)
}

func TestConfirmOnlyOnce(t *testing.T) {
	k := &killRecorder{}
	g, _ := newTestGate(k)

	req := g.Arm(1234, "agent.exe")
	assert.True(t, g.Confirm(req).OK)

	again := g.Confirm(req)
	assert.False(t, again.OK)
	assert.Equal(t, ErrNotArmed.Error(), again.Reason)
	assert.Equal(t, []int{1234}, k.calls)
}

func TestConfirmFailureIsReported(t *testing.T) {
	k := &killRecorder{err: errors.New("access denied")}
	g, _ := newTestGate(k)

	out := g.Confirm(g.Arm(77, "svc.exe"))

	assert.False(t, out.OK)
	assert.Equal(t, "Could not terminate PID 77: access denied", out.Reason)
}

func TestEngineRetriesOnFreshRequest(t *testing.T) {
	k := &killRecorder{}
	g, _ := newTestGate(k)

	assert.True(t, g.Confirm(g.Arm(55, "a.exe")).OK)

	k.err = errors.New("process exited")
	out := g.Confirm(g.Arm(55, "a.exe"))
	assert.False(t, out.OK)
	assert.Equal(t, []int{55, 55}, k.calls)
}

func TestConfirmExpired(t *testing.T) {
	k := &killRecorder{}
	g, clock := newTestGate(k)

	req := g.Arm(1234, "agent.exe")
	*clock = clock.Add(11 * time.Second)

	out := g.Confirm(req)
	assert.False(t, out.OK)
	assert.Equal(t, ErrExpired.Error(), out.Reason)
	assert.Empty(t, k.calls)
}

func TestCancelAndStaleRequests(t *testing.T) {
	k := &killRecorder{}
	g, _ := newTestGate(k)

	req := g.Arm(10, "x.exe")
	g.Cancel(req)
	assert.False(t, g.Confirm(req).OK)

	stale := g.Arm(11, "y.exe")
	fresh := g.Arm(11, "y.exe")
	assert.False(t, g.Confirm(stale).OK)
	assert.True(t, g.Confirm(fresh).OK)

	assert.False(t, g.Confirm(Request{PID: 12}).OK, "never armed")
	assert.Equal(t, []int{11}, k.calls)
}

func TestProtectedPIDsAreRefused(t *testing.T) {
	k := &killRecorder{}
	g, _ := newTestGate(k)

	for _, pid := range []int{0, 4, 999} {
		out := g.Confirm(g.Arm(pid, "system"))
		assert.False(t, out.OK)
		assert.Contains(t, out.Reason, "protected process")
	}
	assert.Empty(t, k.calls)
}
