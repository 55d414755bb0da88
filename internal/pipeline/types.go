package pipeline

import (
	"context"

	"github.com/keagan/vangen/internal/ffmpeg"
	"github.com/keagan/vangen/internal/genai"
)

// ImageGenerator produces one still image per prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// VideoGenerator runs pollable long-running image-to-video jobs.
type VideoGenerator interface {
	StartVideo(ctx context.Context, prompt string, image []byte, mimeType string) (*genai.Operation, error)
	PollVideo(ctx context.Context, op *genai.Operation) (*genai.Operation, error)
	DownloadVideo(ctx context.Context, uri string) ([]byte, error)
}

// MediaTransformer covers the external media-tool invocations the pipeline
// needs: pan/zoom synthesis, caption burn, concat, and a duration probe.
type MediaTransformer interface {
	KenBurns(ctx context.Context, image, output string, opts ffmpeg.KenBurnsOptions) error
	DrawCaption(ctx context.Context, input, output, text string) error
	Concat(ctx context.Context, inputs []string, output string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// Status is a scene's terminal disposition.
type Status string

const (
	// StatusDone means the scene contributed a clip to the final video.
	StatusDone Status = "done"
	// StatusAbandoned means the scene hit an unrecoverable stage failure.
	StatusAbandoned Status = "abandoned"
)

// SceneOutcome records how one scene resolved.
type SceneOutcome struct {
	ID           int
	Status       Status
	Contribution string
	// Captioned is false when the overlay failed and the raw clip was used.
	Captioned bool
}

// RunState is the mutable per-run state the orchestrator threads through
// scene processing. AnimationEnabled is monotonic: once cleared by a terminal
// animation failure it stays cleared for the rest of the run.
type RunState struct {
	AnimationEnabled bool
}

// Result summarizes a run.
type Result struct {
	Scenes    []SceneOutcome
	FinalPath string
	Duration  float64
	// Produced is false when no scene reached done and assembly was skipped.
	Produced bool
}

// Contributed counts the scenes that made it into the final video.
func (r *Result) Contributed() int {
	n := 0
	for _, sc := range r.Scenes {
		if sc.Status == StatusDone {
			n++
		}
	}
	return n
}

// Options configures a Pipeline.
type Options struct {
	OutputDir string
	// AnimationEnabled is the run's starting animation flag.
	AnimationEnabled bool
	PollInterval     int
	ProgressEvery    int
	Fallback         ffmpeg.KenBurnsOptions
}
