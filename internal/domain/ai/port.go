package ai

import "context"

// Payload is an image encoded for transmission to a vision model.
type Payload struct {
	DataURI   string
	MediaType string
}

// Client port: sends one image to a vision model and returns the raw,
// unparsed reply text.
type Client interface {
	Analyze(ctx context.Context, img Payload, filename string) (string, error)
	Model() string
}

// Preparer port: turns raw upload bytes into a bounded Payload.
type Preparer interface {
	Prepare(raw []byte) (Payload, error)
}
