// Package gate implements the confirm/cancel interstitial required before destructive operations.
package gate

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrAlreadyOpen = goerr.New("confirmation is already pending")
	ErrNotOpen     = goerr.New("no confirmation is pending")
)

// State of a Gate
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Gate holds at most one pending subject. It moves Closed -> Open on Open and back to
// Closed on Confirm or Cancel. Only Confirm hands the subject back to the caller.
type Gate[S any] struct {
	mu       sync.Mutex
	state    State
	subject  S
	decision chan bool
}

// New returns a closed Gate
func New[S any]() *Gate[S] {
	return &Gate[S]{}
}

// Open records subject as pending
func (g *Gate[S]) Open(subject S) error {
	_, err := g.open(subject)
	return err
}

// open returns the channel that receives the decision for subject. The channel is
// buffered so close never blocks on a missing receiver.
func (g *Gate[S]) open(subject S) (chan bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Open {
		return nil, goerr.Wrap(ErrAlreadyOpen, "cannot open gate")
	}
	g.state = Open
	g.subject = subject
	g.decision = make(chan bool, 1)
	return g.decision, nil
}

// Confirm closes the gate and returns the pending subject
func (g *Gate[S]) Confirm() (S, error) {
	return g.close(true)
}

// Cancel closes the gate and discards the pending subject
func (g *Gate[S]) Cancel() error {
	_, err := g.close(false)
	return err
}

func (g *Gate[S]) close(decision bool) (S, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var zero S
	if g.state != Open {
		return zero, goerr.Wrap(ErrNotOpen, "cannot close gate")
	}

	subject := g.subject
	g.decision <- decision
	g.state = Closed
	g.subject = zero
	g.decision = nil
	return subject, nil
}

// State returns the current state
func (g *Gate[S]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subject returns the pending subject, if any
func (g *Gate[S]) Subject() (S, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.subject, g.state == Open
}

// Request opens the gate for subject and blocks until it is confirmed (true) or
// cancelled (false). When ctx ends first the gate is cancelled and ctx.Err() returned.
func (g *Gate[S]) Request(ctx context.Context, subject S) (bool, error) {
	decision, err := g.open(subject)
	if err != nil {
		return false, err
	}

	select {
	case d := <-decision:
		return d, nil
	case <-ctx.Done():
		// Cancel fails only when a decision is already buffered
		if err := g.Cancel(); err != nil {
			return <-decision, nil
		}
		return false, ctx.Err()
	}
}
