package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/keagan/vangen/internal/genai"
	"github.com/keagan/vangen/internal/retry"
	"github.com/keagan/vangen/internal/scenes"
	"github.com/keagan/vangen/pkg/util"
)

// Pipeline drives the per-scene stages in order — still image, animation (or
// Ken Burns fallback), caption — then assembles the contributions into the
// final video. Scenes are processed strictly sequentially.
type Pipeline struct {
	logger zerolog.Logger
	opts   Options
	images ImageGenerator
	videos VideoGenerator
	media  MediaTransformer

	imageRetry *retry.Doer
	animRetry  *retry.Doer
	sleep      func(time.Duration)
}

// New creates a pipeline instance.
func New(logger zerolog.Logger, opts Options, images ImageGenerator, videos VideoGenerator, media MediaTransformer) *Pipeline {
	logger = logger.With().Str("component", "pipeline").Logger()

	return &Pipeline{
		logger:     logger,
		opts:       opts,
		images:     images,
		videos:     videos,
		media:      media,
		imageRetry: retry.New(logger, retry.ImageProfile(), classify),
		animRetry:  retry.New(logger, retry.AnimationProfile(), classify),
		sleep:      time.Sleep,
	}
}

// classify maps remote errors onto backoff classes.
func classify(err error) retry.Class {
	switch {
	case genai.IsQuota(err):
		return retry.ClassQuota
	case genai.IsUnavailable(err):
		return retry.ClassUnavailable
	default:
		return retry.ClassOther
	}
}

// Artifact paths are pure functions of scene id and stage; their existence is
// the resumability signal for re-runs.
func (p *Pipeline) imagePath(id int) string {
	return filepath.Join(p.opts.OutputDir, fmt.Sprintf("scene_%d_raw.png", id))
}

func (p *Pipeline) rawVideoPath(id int) string {
	return filepath.Join(p.opts.OutputDir, fmt.Sprintf("scene_%d_raw.mp4", id))
}

func (p *Pipeline) scenePath(id int) string {
	return filepath.Join(p.opts.OutputDir, fmt.Sprintf("scene_%d.mp4", id))
}

func (p *Pipeline) finalPath() string {
	return filepath.Join(p.opts.OutputDir, "final_video.mp4")
}

// Run processes every scene and assembles the final video. A run with zero
// successful scenes skips assembly and reports nothing produced; an assembly
// failure is returned as an error but leaves per-scene clips intact.
func (p *Pipeline) Run(ctx context.Context, sceneList []scenes.Scene) (*Result, error) {
	if err := util.EnsureDir(p.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	state := &RunState{AnimationEnabled: p.opts.AnimationEnabled}
	result := &Result{}
	var contributions []string

	for _, sc := range sceneList {
		p.logger.Info().
			Int("scene", sc.ID).
			Str("objective", sc.Objective).
			Msg("processing scene")

		outcome := p.processScene(ctx, sc, state)
		result.Scenes = append(result.Scenes, outcome)
		if outcome.Status == StatusDone {
			contributions = append(contributions, outcome.Contribution)
		}
	}

	if len(contributions) == 0 {
		p.logger.Warn().Msg("no scenes were successfully generated")
		return result, nil
	}

	p.logger.Info().Int("scenes", len(contributions)).Msg("assembling final video")

	final := p.finalPath()
	if err := p.media.Concat(ctx, contributions, final); err != nil {
		return result, fmt.Errorf("final assembly failed: %w", err)
	}
	result.FinalPath = final
	result.Produced = true

	if duration, err := p.media.ProbeDuration(ctx, final); err == nil {
		result.Duration = duration
	} else {
		p.logger.Warn().Err(err).Msg("could not probe final duration")
	}

	p.logger.Info().
		Str("output", final).
		Str("duration", util.FormatSeconds(result.Duration)).
		Msg("final video ready")

	return result, nil
}

// processScene resolves one scene to done or abandoned, mutating the run
// state when a terminal animation failure disables the model for the rest of
// the run.
func (p *Pipeline) processScene(ctx context.Context, sc scenes.Scene, state *RunState) SceneOutcome {
	logger := p.logger.With().Int("scene", sc.ID).Logger()

	imagePath := p.imagePath(sc.ID)
	rawVideo := p.rawVideoPath(sc.ID)
	captioned := p.scenePath(sc.ID)

	// Stage 1: still image. No fallback beneath this stage — it is the
	// mandatory input for everything downstream.
	if util.FileExists(imagePath) {
		logger.Info().Str("image", imagePath).Msg("image exists, skipping generation")
	} else if err := p.generateImage(ctx, sc, imagePath); err != nil {
		logger.Error().Err(err).Msg("image generation failed, abandoning scene")
		return SceneOutcome{ID: sc.ID, Status: StatusAbandoned}
	}

	// Stage 2: clip. Model animation while the run still allows it, Ken Burns
	// otherwise.
	if util.FileExists(rawVideo) {
		logger.Info().Str("clip", rawVideo).Msg("clip exists, skipping animation")
	} else {
		if state.AnimationEnabled {
			if err := p.animateScene(ctx, logger, sc, imagePath, rawVideo); err != nil {
				logger.Warn().Err(err).Msg("animation failed, disabling model for remaining scenes")
				state.AnimationEnabled = false
			}
		}
		if !util.FileExists(rawVideo) {
			logger.Info().Str("motion", string(sc.Camera)).Msg("using ken burns motion")
			if err := p.fallbackScene(ctx, sc, imagePath, rawVideo); err != nil {
				logger.Error().Err(err).Msg("ken burns synthesis failed, abandoning scene")
				return SceneOutcome{ID: sc.ID, Status: StatusAbandoned}
			}
		}
	}

	// Stage 3: caption. Failure degrades to the uncaptioned clip.
	if err := p.captionScene(ctx, sc, rawVideo, captioned); err != nil {
		logger.Warn().Err(err).Msg("caption overlay failed, using uncaptioned clip")
		return SceneOutcome{ID: sc.ID, Status: StatusDone, Contribution: rawVideo}
	}

	logger.Info().Msg("scene complete")
	return SceneOutcome{ID: sc.ID, Status: StatusDone, Contribution: captioned, Captioned: true}
}

func (p *Pipeline) generateImage(ctx context.Context, sc scenes.Scene, output string) error {
	return p.imageRetry.Do(ctx, "generate image", func(ctx context.Context) error {
		data, err := p.images.GenerateImage(ctx, sc.Prompt)
		if err != nil {
			return err
		}
		return util.WriteFileAtomic(output, data, 0644)
	})
}

// animateScene submits the image-to-video job and polls the operation handle
// at a fixed interval until completion, then downloads and persists the clip.
func (p *Pipeline) animateScene(ctx context.Context, logger zerolog.Logger, sc scenes.Scene, imagePath, output string) error {
	prompt := scenes.AnimationPrompt(sc.Camera)
	interval := time.Duration(p.opts.PollInterval) * time.Second

	return p.animRetry.Do(ctx, "animate scene", func(ctx context.Context) error {
		image, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("failed to read source image: %w", err)
		}

		start := time.Now()
		op, err := p.videos.StartVideo(ctx, prompt, image, "image/png")
		if err != nil {
			return err
		}

		polls := 0
		for !op.Done {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.sleep(interval)
			polls++
			if p.opts.ProgressEvery > 0 && polls%p.opts.ProgressEvery == 0 {
				logger.Info().
					Str("elapsed", util.FormatDuration(time.Since(start))).
					Msg("still generating")
			}
			if op, err = p.videos.PollVideo(ctx, op); err != nil {
				return err
			}
		}

		uri, err := op.VideoURI()
		if err != nil {
			return err
		}
		data, err := p.videos.DownloadVideo(ctx, uri)
		if err != nil {
			return err
		}

		logger.Info().
			Str("elapsed", util.FormatSeconds(time.Since(start).Seconds())).
			Msg("animation generated")

		return util.WriteFileAtomic(output, data, 0644)
	})
}

// fallbackScene renders to a temp sibling and renames so a crash mid-render
// can't leave a partial clip at the resumable path.
func (p *Pipeline) fallbackScene(ctx context.Context, sc scenes.Scene, imagePath, output string) error {
	opts := p.opts.Fallback
	opts.Motion = string(sc.Camera)

	tmp := util.TempSibling(output)
	if err := p.media.KenBurns(ctx, imagePath, tmp, opts); err != nil {
		util.CleanupFiles(tmp)
		return err
	}
	return os.Rename(tmp, output)
}

func (p *Pipeline) captionScene(ctx context.Context, sc scenes.Scene, input, output string) error {
	tmp := util.TempSibling(output)
	if err := p.media.DrawCaption(ctx, input, tmp, sc.Caption); err != nil {
		util.CleanupFiles(tmp)
		return err
	}
	return os.Rename(tmp, output)
}
