package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/newsdesk/pkg/apperr"
	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/authz"
	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

// Clock supplies the time of an operation.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// Engine executes operations against a store.
type Engine struct {
	store    store.Store
	gate     authz.Gate
	owner    identity.Principal
	fee      uint64
	capacity int
	clock    Clock
	log      zerolog.Logger
	audit    audit.Sink
	locks    lockSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithFixedFee sets the amount credited on publish and escrowed per campaign.
func WithFixedFee(fee uint64) Option {
	return func(e *Engine) { e.fee = fee }
}

// WithCapacity sets the registry capacity.
func WithCapacity(n int) Option {
	return func(e *Engine) { e.capacity = n }
}

// WithLogger sets the process logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithAudit sets where audit events go.
func WithAudit(s audit.Sink) Option {
	return func(e *Engine) { e.audit = s }
}

// New returns an Engine for the platform owned by owner.
func New(s store.Store, owner identity.Principal, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		gate:     authz.NewGate(owner),
		owner:    owner,
		fee:      ledger.FixedFee,
		capacity: registry.MaxReporterCount,
		clock:    SystemClock,
		log:      zerolog.Nop(),
		audit:    audit.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Owner returns the platform owner.
func (e *Engine) Owner() identity.Principal {
	return e.owner
}

// FixedFee returns the configured fixed fee.
func (e *Engine) FixedFee() uint64 {
	return e.fee
}

// run executes fn in one transaction while holding grants. The clock is read
// once and handed to fn.
func (e *Engine) run(ctx context.Context, op string, caller identity.Principal, grants []grant, fn func(tx store.Tx, now time.Time) error) error {
	release := e.locks.acquire(grants...)
	defer release()

	now := e.clock.Now()
	err := e.store.Atomic(ctx, func(tx store.Tx) error {
		return fn(tx, now)
	})
	if err != nil {
		err = classify(op, err)
		lvl := zerolog.InfoLevel
		if apperr.KindOf(err) == apperr.KindInternal {
			lvl = zerolog.ErrorLevel
		}
		e.log.WithLevel(lvl).
			Str("op", op).
			Str("caller", caller.String()).
			Stringer("kind", apperr.KindOf(err)).
			Err(err).
			Msg("operation rejected")
		return err
	}
	e.log.Debug().Str("op", op).Str("caller", caller.String()).Msg("operation committed")
	return nil
}

// classify maps component errors onto the apperr taxonomy.
func classify(op string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}

	kind := apperr.KindInternal
	switch {
	case errors.Is(err, authz.ErrForbidden):
		kind = apperr.KindAuthorization
	case errors.Is(err, registry.ErrCapacityExceeded):
		kind = apperr.KindCapacity
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, store.ErrNotFound):
		kind = apperr.KindNotFound
	case errors.Is(err, registry.ErrAlreadyExists), errors.Is(err, store.ErrAlreadyExists):
		kind = apperr.KindConflict
	case errors.Is(err, registry.ErrInvalidRole), errors.Is(err, ledger.ErrEscrowAccount):
		kind = apperr.KindInvalid
	case errors.Is(err, news.ErrNotApproved), errors.Is(err, news.ErrPublished), errors.Is(err, campaign.ErrSettled):
		kind = apperr.KindState
	case errors.Is(err, ledger.ErrInvalidAmount):
		kind = apperr.KindInvalidAmount
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrNothingToPay), errors.Is(err, ledger.ErrOverflow):
		kind = apperr.KindFunds
	}
	return apperr.E(kind, op, err)
}

func clientIP(ctx context.Context) string {
	id, _ := identity.Get(ctx)
	return id.ClientIP()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return apperr.Message(err)
}
