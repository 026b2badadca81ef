package espn

import (
	"context"
	"errors"
)

// Mode tells the two client variants apart.
type Mode int

const (
	ModeSync Mode = iota
	ModeAsync
)

// String returns the string representation of the mode
func (m Mode) String() string {
	if m == ModeAsync {
		return "async"
	}
	return "sync"
}

// Session is the part of a client the scoped helpers need.
type Session interface {
	Mode() Mode
	Open() error
	Close() error
}

// Use opens a sync client, runs fn and closes the client. Passing an
// AsyncClient fails with ErrUsage before anything is opened.
func Use(s Session, fn func() error) error {
	if s.Mode() != ModeSync {
		return usageError("%s client cannot be used with Use, use UseAsync", s.Mode())
	}
	if err := s.Open(); err != nil {
		return err
	}
	return errors.Join(fn(), s.Close())
}

// UseAsync opens an async client, runs fn, waits for the calls it started
// and closes the client. Passing a Client fails with ErrUsage before
// anything is opened.
func UseAsync(ctx context.Context, s Session, fn func(ctx context.Context) error) error {
	if s.Mode() != ModeAsync {
		return usageError("%s client cannot be used with UseAsync, use Use", s.Mode())
	}
	if err := s.Open(); err != nil {
		return err
	}

	err := fn(ctx)
	if d, ok := s.(interface{ Drain(context.Context) error }); ok {
		if derr := d.Drain(ctx); derr != nil {
			err = errors.Join(err, derr)
		}
	}
	return errors.Join(err, s.Close())
}
