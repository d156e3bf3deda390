// Package llm holds the middleware stack applied around an llmclient.Client
// and a deterministic fake for offline runs.
package llm

import (
	"context"
	"time"

	llmclient "questio/internal/llmClient"
	"questio/internal/logger"
)

// Middleware decorates a Client to inject cross-cutting concerns
// (rate limiting, logging, tracing, hooks).
type Middleware func(llmclient.Client) llmclient.Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.Client, mws ...Middleware) llmclient.Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// -------- Rate Limiting --------

// RateLimit limits request rate using the rpsLimiter. Image and JSON calls
// share one bucket. If rps <= 0, the limiter is disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next llmclient.Client) llmclient.Client {
		return &rateLimited{Client: next, rl: newRPSLimiter(rps, burst)}
	}
}

type rateLimited struct {
	llmclient.Client
	rl *rpsLimiter
}

func (c *rateLimited) Close() error {
	c.rl.Stop()
	return c.Client.Close()
}

func (c *rateLimited) GenerateJSON(ctx context.Context, req llmclient.Request) (llmclient.Response, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return llmclient.Response{}, err
	}
	return c.Client.GenerateJSON(ctx, req)
}

func (c *rateLimited) GenerateImage(ctx context.Context, req llmclient.ImageRequest) (*llmclient.Image, error) {
	if err := c.rl.Acquire(ctx); err != nil {
		return nil, err
	}
	return c.Client.GenerateImage(ctx, req)
}

// -------- Logging --------

// WithLogging logs request size, latency and errors per call label.
func WithLogging(log *logger.Logger) Middleware {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next llmclient.Client) llmclient.Client {
		return &logging{Client: next, log: log.With("client", next.Name())}
	}
}

type logging struct {
	llmclient.Client
	log *logger.Logger
}

func (l *logging) GenerateJSON(ctx context.Context, req llmclient.Request) (llmclient.Response, error) {
	start := time.Now()
	l.log.Debug("llm request", "label", req.Label, "model", req.Model, "bytes", len(req.Prompt), "grounding", req.Grounding)
	resp, err := l.Client.GenerateJSON(ctx, req)
	if err != nil {
		l.failed("llm error", err)("label", req.Label, "model", req.Model, "elapsed", time.Since(start), "error", err)
		return resp, err
	}
	l.log.Info("llm response", "label", req.Label, "model", req.Model, "elapsed", time.Since(start),
		"bytes", len(resp.Text), "grounding_sources", len(resp.Grounding))
	return resp, nil
}

func (l *logging) GenerateImage(ctx context.Context, req llmclient.ImageRequest) (*llmclient.Image, error) {
	start := time.Now()
	l.log.Debug("llm image request", "label", req.Label, "bytes", len(req.Prompt))
	img, err := l.Client.GenerateImage(ctx, req)
	if err != nil {
		l.failed("llm image error", err)("label", req.Label, "elapsed", time.Since(start), "error", err)
		return img, err
	}
	if img == nil {
		l.log.Info("llm image response", "label", req.Label, "elapsed", time.Since(start), "image", false)
		return nil, nil
	}
	l.log.Info("llm image response", "label", req.Label, "elapsed", time.Since(start), "mime", img.MIMEType, "bytes", len(img.Data))
	return img, nil
}

// failed picks the log level for a failed call. Permanent errors are logged
// as errors since retrying or waiting will not fix them.
func (l *logging) failed(msg string, err error) func(kv ...any) {
	if llmclient.IsPermanent(err) {
		return func(kv ...any) { l.log.Error(msg, kv...) }
	}
	return func(kv ...any) { l.log.Warn(msg, kv...) }
}

// -------- Hooks --------

// WithHooks calls HookFrom(ctx).Before/After around every generation call.
// If no hook is present in the context, it is a no-op.
func WithHooks() Middleware {
	return func(next llmclient.Client) llmclient.Client {
		return &hooked{Client: next}
	}
}

type hooked struct{ llmclient.Client }

func (h *hooked) GenerateJSON(ctx context.Context, req llmclient.Request) (llmclient.Response, error) {
	hook := HookFrom(ctx)
	if hook != nil {
		hook.Before(ctx, req.Label)
	}
	resp, err := h.Client.GenerateJSON(ctx, req)
	if hook != nil {
		hook.After(ctx, req.Label, err)
	}
	return resp, err
}

func (h *hooked) GenerateImage(ctx context.Context, req llmclient.ImageRequest) (*llmclient.Image, error) {
	hook := HookFrom(ctx)
	if hook != nil {
		hook.Before(ctx, req.Label)
	}
	img, err := h.Client.GenerateImage(ctx, req)
	if hook != nil {
		hook.After(ctx, req.Label, err)
	}
	return img, err
}
