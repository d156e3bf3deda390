package llmclient

import "strings"

// ModelClass selects a model by cost/latency profile rather than by name.
type ModelClass string

const (
	ModelFast  ModelClass = "fast"
	ModelDeep  ModelClass = "deep"
	ModelImage ModelClass = "image"
)

const (
	DefaultFastModel  = "gemini-3-flash-preview"
	DefaultDeepModel  = "gemini-3-pro-preview"
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Models maps each class to a concrete model name.
type Models struct {
	Fast  string
	Deep  string
	Image string
}

// DefaultModels returns the stock model names.
func DefaultModels() Models {
	return Models{Fast: DefaultFastModel, Deep: DefaultDeepModel, Image: DefaultImageModel}
}

// Resolve returns the model name for class. Blank entries and unknown
// classes fall back to the fast model.
func (m Models) Resolve(class ModelClass) string {
	def := DefaultModels()
	pick := func(v, fallback string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return fallback
	}
	switch class {
	case ModelDeep:
		return pick(m.Deep, def.Deep)
	case ModelImage:
		return pick(m.Image, def.Image)
	default:
		return pick(m.Fast, def.Fast)
	}
}
