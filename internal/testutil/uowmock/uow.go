package uowmock

import (
	"context"
	"errors"
	"sync/atomic"

	"oalass-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed uow.UnitOfWork. An unset WithinTxFn returns errUnimplemented.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error

	calls atomic.Int32
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) Reset() {
	m.WithinTxFn = nil
	m.calls.Store(0)
}

// Calls reports how many transactions were opened.
func (m *UoW) Calls() int { return int(m.calls.Load()) }

// Passthrough runs fn against repos as if inside a committed transaction.
func Passthrough(repos uow.Repos) *UoW {
	return New().WithWithinTx(func(_ context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	})
}

// Failing never runs the body and returns err, as if BEGIN failed.
func Failing(err error) *UoW {
	return New().WithWithinTx(func(context.Context, func(uow.Repos) error) error { return err })
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	m.calls.Add(1)
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
