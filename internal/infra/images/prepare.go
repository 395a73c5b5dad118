// Package images normalizes uploaded photos into a bounded payload for the
// vision model: fit into 1024x1024 without enlarging, re-encode as JPEG at
// fixed quality, embed as a base64 data URI.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/struckmeier-elektro/baulog/internal/domain/ai"
)

const (
	maxDimension = 1024
	jpegQuality  = 85
)

// ErrUndecodable is returned when the upload bytes are not a raster image.
// This is fatal to the upload request; no analysis is meaningful.
var ErrUndecodable = errors.New("bild konnte nicht verarbeitet werden")

type Preparer struct{}

func NewPreparer() *Preparer { return &Preparer{} }

func (Preparer) Prepare(raw []byte) (ai.Payload, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return ai.Payload{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return ai.Payload{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	return ai.Payload{
		DataURI:   "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		MediaType: "image/jpeg",
	}, nil
}
