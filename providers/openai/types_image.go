package openai

import (
	"encoding/json"
	"errors"
)

// ImageSize is the side length of generated images.
type ImageSize string

const (
	ImageSize256  ImageSize = "256x256"
	ImageSize512  ImageSize = "512x512"
	ImageSize1024 ImageSize = "1024x1024"
)

// ImageResponseFormat selects how generated images are returned.
type ImageResponseFormat string

const (
	ImageResponseFormatURL     ImageResponseFormat = "url"
	ImageResponseFormatB64JSON ImageResponseFormat = "b64_json"
)

// ErrInvalidImage is the decode cause when an image carries neither or both
// of url and b64_json.
var ErrInvalidImage = errors.New("image must have exactly one of url or b64_json")

// ImageRequest is the body of POST /v1/images/generations.
type ImageRequest struct {
	Prompt         string              `json:"prompt"`
	N              *int                `json:"n,omitempty"`
	Size           ImageSize           `json:"size,omitempty"`
	ResponseFormat ImageResponseFormat `json:"response_format,omitempty"`
	User           string              `json:"user,omitempty"`
}

// ImageEditRequest is the form of POST /v1/images/edits.
type ImageEditRequest struct {
	Image          FileResource
	Mask           *FileResource
	Prompt         string
	N              *int
	Size           ImageSize
	ResponseFormat ImageResponseFormat
	User           string
}

// ImageVariationRequest is the form of POST /v1/images/variations.
type ImageVariationRequest struct {
	Image          FileResource
	N              *int
	Size           ImageSize
	ResponseFormat ImageResponseFormat
	User           string
}

// Image is one generated image: either a URL or base64-encoded data.
type Image struct {
	URL     string
	B64JSON string
}

// IsURL reports whether the image was returned as a URL.
func (i Image) IsURL() bool {
	return i.URL != ""
}

// UnmarshalJSON requires exactly one of url and b64_json.
func (i *Image) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL     *string `json:"url"`
		B64JSON *string `json:"b64_json"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.URL != nil && raw.B64JSON == nil:
		*i = Image{URL: *raw.URL}
	case raw.URL == nil && raw.B64JSON != nil:
		*i = Image{B64JSON: *raw.B64JSON}
	default:
		return ErrInvalidImage
	}
	return nil
}

// MarshalJSON emits whichever of url and b64_json is set.
func (i Image) MarshalJSON() ([]byte, error) {
	if i.IsURL() {
		return json.Marshal(map[string]string{"url": i.URL})
	}
	return json.Marshal(map[string]string{"b64_json": i.B64JSON})
}

// ImageResponse is the response of every image endpoint.
type ImageResponse struct {
	Created int64   `json:"created"`
	Data    []Image `json:"data"`
}
