package genai

import (
	"context"
	"encoding/base64"
	"fmt"
)

// Vertical-format, single-image request shape for every scene still.
const (
	imageAspectRatio = "9:16"
	imageSize        = "1K"
)

type imageRequest struct {
	Instances  []imageInstance `json:"instances"`
	Parameters imageParameters `json:"parameters"`
}

type imageInstance struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	SampleCount     int    `json:"sampleCount"`
	AspectRatio     string `json:"aspectRatio"`
	SampleImageSize string `json:"sampleImageSize"`
}

type imageResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// GenerateImage requests one still image for the prompt and returns its raw
// bytes. A single call, no retries; the caller owns the retry policy.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	req := imageRequest{
		Instances: []imageInstance{{Prompt: prompt}},
		Parameters: imageParameters{
			SampleCount:     1,
			AspectRatio:     imageAspectRatio,
			SampleImageSize: imageSize,
		},
	}

	var resp imageResponse
	endpoint := fmt.Sprintf("/models/%s:predict", c.imageModel)
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("image response contained no predictions")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}

	return data, nil
}
