package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Options{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		ImageModel: "imagen-test",
		VideoModel: "veo-test",
	})
	return client, srv
}

func TestClientTimeout(t *testing.T) {
	c := NewClient(Options{Timeout: 45 * time.Second})
	if c.httpClient.Timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", c.httpClient.Timeout)
	}

	c = NewClient(Options{})
	if c.httpClient.Timeout != 120*time.Second {
		t.Errorf("default timeout = %v, want 120s", c.httpClient.Timeout)
	}
}

func TestGenerateImage(t *testing.T) {
	want := []byte("fake-png-bytes")

	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/imagen-test:predict" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Error("missing api key header")
		}

		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Parameters.SampleCount != 1 || req.Parameters.AspectRatio != "9:16" {
			t.Errorf("unexpected parameters: %+v", req.Parameters)
		}

		fmt.Fprintf(w, `{"predictions":[{"bytesBase64Encoded":%q,"mimeType":"image/png"}]}`,
			base64.StdEncoding.EncodeToString(want))
	}))
	defer srv.Close()

	got, err := client.GenerateImage(context.Background(), "a painterly scene")
	if err != nil {
		t.Fatalf("GenerateImage() error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGenerateImageQuotaError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	_, err := client.GenerateImage(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsQuota(err) {
		t.Errorf("expected quota classification, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "quota exceeded" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestGenerateImageEmptyPredictions(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"predictions":[]}`)
	}))
	defer srv.Close()

	if _, err := client.GenerateImage(context.Background(), "prompt"); err == nil {
		t.Error("expected error for empty predictions")
	}
}

func TestVideoOperationLifecycle(t *testing.T) {
	videoBytes := []byte("fake-mp4")
	polls := 0
	var videoURI string

	mux := http.NewServeMux()
	mux.HandleFunc("/models/veo-test:predictLongRunning", func(w http.ResponseWriter, r *http.Request) {
		var req videoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Instances) != 1 || req.Instances[0].Image.MimeType != "image/png" {
			t.Errorf("unexpected instances: %+v", req.Instances)
		}
		if req.Parameters.Resolution != "720p" {
			t.Errorf("unexpected resolution %q", req.Parameters.Resolution)
		}
		fmt.Fprint(w, `{"name":"operations/op-1"}`)
	})
	mux.HandleFunc("/operations/op-1", func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls < 2 {
			fmt.Fprint(w, `{"name":"operations/op-1","done":false}`)
			return
		}
		fmt.Fprintf(w, `{"name":"operations/op-1","done":true,"response":{"generateVideoResponse":{"generatedSamples":[{"video":{"uri":%q}}]}}}`, videoURI)
	})
	mux.HandleFunc("/download", func(w http.ResponseWriter, r *http.Request) {
		w.Write(videoBytes)
	})

	client, srv := newTestClient(mux)
	defer srv.Close()
	videoURI = srv.URL + "/download"

	ctx := context.Background()

	op, err := client.StartVideo(ctx, "gentle motion", []byte("img"), "image/png")
	if err != nil {
		t.Fatalf("StartVideo() error: %v", err)
	}
	if op.Name != "operations/op-1" || op.Done {
		t.Fatalf("unexpected operation %+v", op)
	}

	for !op.Done {
		if op, err = client.PollVideo(ctx, op); err != nil {
			t.Fatalf("PollVideo() error: %v", err)
		}
	}
	if polls != 2 {
		t.Errorf("expected 2 polls, got %d", polls)
	}

	uri, err := op.VideoURI()
	if err != nil {
		t.Fatalf("VideoURI() error: %v", err)
	}

	data, err := client.DownloadVideo(ctx, uri)
	if err != nil {
		t.Fatalf("DownloadVideo() error: %v", err)
	}
	if string(data) != string(videoBytes) {
		t.Errorf("got %q, want %q", data, videoBytes)
	}
}

func TestVideoURIOperationError(t *testing.T) {
	op := &Operation{
		Name: "operations/op-2",
		Done: true,
		Error: &OperationError{
			Code:    429,
			Status:  "RESOURCE_EXHAUSTED",
			Message: "too many requests",
		},
	}

	_, err := op.VideoURI()
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsQuota(err) {
		t.Errorf("expected quota classification, got %v", err)
	}
}

func TestVideoURINoSamples(t *testing.T) {
	op := &Operation{Name: "operations/op-3", Done: true, Response: &OperationResponse{}}
	if _, err := op.VideoURI(); err == nil {
		t.Error("expected error for empty samples")
	}
}
