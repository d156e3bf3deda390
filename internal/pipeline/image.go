package pipeline

import (
	"context"
	"errors"

	llmclient "questio/internal/llmClient"
	"questio/internal/prompt"
	"questio/internal/types"
)

// GeneratePersonaImage returns nil when the model fails or answers without
// an image. Callers treat the image as optional.
func (o *Orchestrator) GeneratePersonaImage(ctx context.Context, a types.Answers, persona string) *types.PersonaImage {
	img, err := o.LLM.GenerateImage(ctx, llmclient.ImageRequest{
		Prompt: prompt.Image(a, persona),
		Label:  LabelImage,
	})
	switch {
	case errors.Is(err, llmclient.ErrNoImage):
		o.Log.Info("persona image: no image part in response")
		return nil
	case err != nil:
		o.Log.Warn("persona image failed", "error", err)
		return nil
	case img == nil || len(img.Data) == 0:
		return nil
	}
	return &types.PersonaImage{MIMEType: img.MIMEType, Data: img.Data}
}
