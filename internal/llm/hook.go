package llm

import "context"

// Hook observes generation calls. Implementations must be safe for
// concurrent use: the report and image calls run in parallel.
type Hook interface {
	Before(ctx context.Context, label string)
	After(ctx context.Context, label string, err error)
}

// HookFunc adapts a single function; it is called with err == nil and
// done == false before the call, and done == true after it.
type HookFunc func(ctx context.Context, label string, done bool, err error)

func (f HookFunc) Before(ctx context.Context, label string)          { f(ctx, label, false, nil) }
func (f HookFunc) After(ctx context.Context, label string, err error) { f(ctx, label, true, err) }

type ctxKeyHook struct{}

// WithHook attaches a Hook to ctx for the WithHooks middleware.
func WithHook(ctx context.Context, hook Hook) context.Context {
	return context.WithValue(ctx, ctxKeyHook{}, hook)
}

// HookFrom returns the hook stored in the context.
func HookFrom(ctx context.Context) Hook {
	if h, ok := ctx.Value(ctxKeyHook{}).(Hook); ok {
		return h
	}
	return nil
}
