package llmclient

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

var (
	ErrInvalidJSON = errors.New("invalid json from LLM")
	ErrNoImage     = errors.New("no image part in LLM response")
)

// PermanentError marks a rejected request: a client-side API error or a
// blocked prompt. Sending the same request again will not help.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err wraps a PermanentError.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// Client is the generation capability. One method per call shape.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, req Request) (Response, error)
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)
	Close() error
}

// Request is a schema-constrained JSON generation call.
type Request struct {
	Model     ModelClass
	Prompt    string
	Schema    *genai.Schema
	Grounding bool
	// Label names the call in logs and traces.
	Label string
}

// Response carries the model's JSON text and any grounding sources in the
// order the service returned them.
type Response struct {
	Text      string
	Grounding []GroundingSource
}

// GroundingSource kinds.
const (
	SourceWeb       = "web"
	SourceRetrieved = "retrieved"
	SourceMaps      = "maps"
)

// GroundingSource is one chunk of grounding metadata.
type GroundingSource struct {
	Kind  string
	URI   string
	Title string
}

// ImageRequest asks the image model for a single illustration.
type ImageRequest struct {
	Prompt string
	Label  string
}

// Image is raw image bytes as returned inline by the model.
type Image struct {
	MIMEType string
	Data     []byte
}
