// Package remedy gates process termination behind an explicit, separate
// confirmation step.
package remedy

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"keywatch/internal/shared"
)

var (
	ErrNotArmed = errors.New("termination was not requested")
	ErrExpired  = errors.New("confirmation expired")
)

// KillFunc stops the process with the given PID.
type KillFunc func(pid int) error

// Request is a pending termination awaiting confirmation.
type Request struct {
	PID      int
	Name     string
	Deadline time.Time
	seq      uint64
}

// Prompt is the confirmation text shown before anything is killed.
func (r Request) Prompt() string {
	return fmt.Sprintf("Are you sure you want to end PID %d? This may break your system or unsaved work!", r.PID)
}

// Outcome reports what happened to a confirmed request. Reason is meant for
// direct display.
type Outcome struct {
	PID    int
	Name   string
	OK     bool
	Reason string
}

type Gate struct {
	kill      KillFunc
	timeout   time.Duration
	protected map[int]struct{}
	log       hclog.Logger
	now       func() time.Time

	mu      sync.Mutex
	seq     uint64
	pending map[int]uint64
}

func NewGate(kill KillFunc, cfg shared.Config, log hclog.Logger) *Gate {
	return &Gate{
		kill:      kill,
		timeout:   cfg.ConfirmTimeout,
		protected: cfg.ExcludedSet(),
		log:       shared.OrNull(log).Named("remedy"),
		now:       time.Now,
		pending:   make(map[int]uint64),
	}
}

// Arm records the intent to terminate pid. Nothing is killed until Confirm
// is called with the returned request. Arming again replaces the previous
// request for the same PID.
func (g *Gate) Arm(pid int, name string) Request {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	g.pending[pid] = g.seq

	req := Request{PID: pid, Name: name, seq: g.seq}
	if g.timeout > 0 {
		req.Deadline = g.now().Add(g.timeout)
	}
	return req
}

// Cancel drops a pending request without killing anything.
func (g *Gate) Cancel(req Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending[req.PID] == req.seq {
		delete(g.pending, req.PID)
	}
}

// Confirm carries out a pending request. Each request can be confirmed
// once; confirming a later request for the same PID tries again.
func (g *Gate) Confirm(req Request) Outcome {
	out := Outcome{PID: req.PID, Name: req.Name}

	if err := g.take(req); err != nil {
		out.Reason = err.Error()
		return out
	}

	if shared.IsExcluded(g.protected, req.PID) {
		out.Reason = fmt.Sprintf("Could not terminate PID %d: protected process", req.PID)
		g.log.Warn("refused to terminate protected process", "pid", req.PID, "name", req.Name)
		return out
	}

	if err := g.kill(req.PID); err != nil {
		out.Reason = fmt.Sprintf("Could not terminate PID %d: %v", req.PID, err)
		g.log.Warn("termination failed", "pid", req.PID, "name", req.Name, "error", err)
		return out
	}

	out.OK = true
	out.Reason = fmt.Sprintf("Ended PID %d", req.PID)
	if req.Name != "" {
		out.Reason += " (" + req.Name + ")"
	}
	g.log.Info("process terminated", "pid", req.PID, "name", req.Name)
	return out
}

func (g *Gate) take(req Request) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seq, ok := g.pending[req.PID]
	if !ok || seq != req.seq {
		return ErrNotArmed
	}
	delete(g.pending, req.PID)

	if !req.Deadline.IsZero() && g.now().After(req.Deadline) {
		return ErrExpired
	}
	return nil
}
