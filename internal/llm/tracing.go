package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	llmclient "questio/internal/llmClient"
)

const tracerName = "questio/internal/llm"

// WithTracing opens one span per generation call on the global tracer
// provider. With no provider installed the spans are no-ops.
func WithTracing() Middleware {
	return func(next llmclient.Client) llmclient.Client {
		return &traced{Client: next, tracer: otel.Tracer(tracerName)}
	}
}

type traced struct {
	llmclient.Client
	tracer trace.Tracer
}

func (t *traced) GenerateJSON(ctx context.Context, req llmclient.Request) (llmclient.Response, error) {
	ctx, span := t.tracer.Start(ctx, "llm.generate_json",
		trace.WithAttributes(
			attribute.String("llm.label", req.Label),
			attribute.String("llm.model_class", string(req.Model)),
			attribute.Bool("llm.grounding", req.Grounding),
			attribute.Int("llm.prompt_bytes", len(req.Prompt)),
		))
	defer span.End()

	resp, err := t.Client.GenerateJSON(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp, err
	}
	span.SetAttributes(
		attribute.Int("llm.response_bytes", len(resp.Text)),
		attribute.Int("llm.grounding_sources", len(resp.Grounding)),
	)
	return resp, nil
}

func (t *traced) GenerateImage(ctx context.Context, req llmclient.ImageRequest) (*llmclient.Image, error) {
	ctx, span := t.tracer.Start(ctx, "llm.generate_image",
		trace.WithAttributes(
			attribute.String("llm.label", req.Label),
			attribute.Int("llm.prompt_bytes", len(req.Prompt)),
		))
	defer span.End()

	img, err := t.Client.GenerateImage(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return img, err
	}
	if img != nil {
		span.SetAttributes(attribute.String("llm.image_mime", img.MIMEType))
	}
	return img, nil
}
