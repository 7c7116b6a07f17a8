package video

import "errors"

var (
	// ErrInvalidURL means no supported provider/id could be extracted.
	ErrInvalidURL = errors.New("invalid video URL")
	// ErrMissingEmbedData means a descriptor lacks provider, id or embed URL.
	ErrMissingEmbedData = errors.New("missing embed data")
)

// Validate reports ErrMissingEmbedData when d cannot be embedded.
func (d Descriptor) Validate() error {
	if !d.HasVideo() || d.EmbedURL == "" {
		return ErrMissingEmbedData
	}
	return nil
}
