package genai

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

const (
	videoAspectRatio = "9:16"
	videoResolution  = "720p"
)

// Operation is the handle for an in-flight image-to-video job. It is polled
// until Done; a started operation cannot be cancelled.
type Operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    *OperationError    `json:"error"`
	Response *OperationResponse `json:"response"`
}

// OperationError is the terminal error envelope of a failed operation.
type OperationError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// OperationResponse is the terminal payload of a completed operation.
type OperationResponse struct {
	GenerateVideoResponse GenerateVideoResponse `json:"generateVideoResponse"`
}

type GenerateVideoResponse struct {
	GeneratedSamples []GeneratedSample `json:"generatedSamples"`
}

type GeneratedSample struct {
	Video VideoRef `json:"video"`
}

// VideoRef is a downloadable reference to a generated video.
type VideoRef struct {
	URI string `json:"uri"`
}

// VideoURI returns the download reference once the operation completed.
func (op *Operation) VideoURI() (string, error) {
	if op.Error != nil {
		return "", &APIError{
			StatusCode: op.Error.Code,
			Status:     op.Error.Status,
			Message:    op.Error.Message,
		}
	}
	if op.Response == nil || len(op.Response.GenerateVideoResponse.GeneratedSamples) == 0 {
		return "", fmt.Errorf("video operation completed without samples")
	}
	return op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI, nil
}

type videoRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters videoParameters `json:"parameters"`
}

type videoInstance struct {
	Prompt string     `json:"prompt"`
	Image  videoImage `json:"image"`
}

type videoImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type videoParameters struct {
	AspectRatio string `json:"aspectRatio"`
	Resolution  string `json:"resolution"`
}

// StartVideo submits a long-running image-to-video job and returns its handle.
func (c *Client) StartVideo(ctx context.Context, prompt string, image []byte, mimeType string) (*Operation, error) {
	req := videoRequest{
		Instances: []videoInstance{{
			Prompt: prompt,
			Image: videoImage{
				BytesBase64Encoded: base64.StdEncoding.EncodeToString(image),
				MimeType:           mimeType,
			},
		}},
		Parameters: videoParameters{
			AspectRatio: videoAspectRatio,
			Resolution:  videoResolution,
		},
	}

	var op Operation
	endpoint := fmt.Sprintf("/models/%s:predictLongRunning", c.videoModel)
	if err := c.post(ctx, endpoint, req, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("video operation response missing name")
	}

	return &op, nil
}

// PollVideo re-queries the operation's status.
func (c *Client) PollVideo(ctx context.Context, op *Operation) (*Operation, error) {
	var updated Operation
	if err := c.get(ctx, "/"+op.Name, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DownloadVideo fetches the finished video bytes from its download reference.
func (c *Client) DownloadVideo(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "video download rejected"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read video payload: %w", err)
	}

	return data, nil
}
