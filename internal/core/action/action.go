package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
)

const (
	genericMessage = "something went wrong, please try again"
	invalidMessage = "invalid input"
	timeoutMessage = "the operation timed out, please try again"
)

// Func is the domain handler an Action wraps.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Action validates input, invokes a handler and normalises every
// outcome (including panics) into a Result. Zero-value timeout means
// the handler runs unbounded; WithTimeout races it against a deadline.
type Action[In, Out any] struct {
	validate *validator.Validate
	handler  Func[In, Out]
	timeout  time.Duration
	log      zerolog.Logger
}

// New builds an Action around handler using v for schema validation.
func New[In, Out any](v *validator.Validate, handler Func[In, Out]) *Action[In, Out] {
	return &Action[In, Out]{validate: v, handler: handler, log: zerolog.Nop()}
}

// WithTimeout bounds the handler's wall-clock time. Exceeding it yields
// a distinct timeout failure instead of hanging the caller.
func (a *Action[In, Out]) WithTimeout(d time.Duration) *Action[In, Out] {
	a.timeout = d
	return a
}

// WithLogger sets the logger used for unexpected handler errors.
func (a *Action[In, Out]) WithLogger(log zerolog.Logger) *Action[In, Out] {
	a.log = log
	return a
}

// Run executes the full pipeline: validate, invoke, normalise.
// Invalid input short-circuits before the handler runs.
func (a *Action[In, Out]) Run(ctx context.Context, in In) Result[Out] {
	if err := a.validate.Struct(in); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return Invalid[Out](invalidMessage, FieldErrors(ve))
		}
		return Failure[Out](invalidMessage)
	}

	out, err := a.invoke(ctx, in)
	if err != nil {
		return a.failure(err)
	}
	return Success(out)
}

// invoke calls the handler with panic containment and the optional
// deadline applied.
func (a *Action[In, Out]) invoke(ctx context.Context, in In) (Out, error) {
	if a.timeout <= 0 {
		return a.call(ctx, in)
	}

	tctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type outcome struct {
		out Out
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		out, err := a.call(tctx, in)
		done <- outcome{out: out, err: err}
	}()

	select {
	case o := <-done:
		return o.out, o.err
	case <-tctx.Done():
		var zero Out
		// Only the deadline itself is a timeout; parent cancellation
		// (client disconnect) must not claim the operation ran too long.
		if errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return zero, domain.ErrTimeout
		}
		return zero, tctx.Err()
	}
}

func (a *Action[In, Out]) call(ctx context.Context, in In) (out Out, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return a.handler(ctx, in)
}

func (a *Action[In, Out]) failure(err error) Result[Out] {
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		return Invalid[Out](invalidMessage, ve.Fields)
	}
	if errors.Is(err, domain.ErrTimeout) {
		return Failure[Out](timeoutMessage)
	}
	if msg, ok := domain.SafeMessage(err); ok {
		return Failure[Out](msg)
	}

	// Unclassified: log the real cause, hide it from the client.
	a.log.Error().Err(err).Msg("action handler failed")
	return Failure[Out](genericMessage)
}
