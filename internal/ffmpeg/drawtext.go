package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DrawCaption burns caption text into a clip and strips its audio track. The
// text is centered horizontally and sits at a fixed fraction of the frame
// height, with outline and drop shadow so it stays legible against any
// background. A caption failure is expected to be non-fatal: the caller keeps
// the uncaptioned input as that scene's contribution.
func (e *Executor) DrawCaption(ctx context.Context, input, output, text string) error {
	if input == "" {
		return fmt.Errorf("input path is required")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}

	font := findFont(e.caption.FontCandidates, e.caption.FontFallback)

	e.logger.Info().
		Str("input", input).
		Str("output", output).
		Str("font", font).
		Msg("burning caption")

	args := []string{
		"-i", input,
		"-vf", e.drawtextFilter(font, text),
		"-c:v", DefaultVideoCodec,
		"-an",
		"-preset", e.preset,
		output,
	}

	runOpts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("caption output")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("caption overlay failed: %w", err)
	}

	e.logger.Info().Str("output", output).Msg("caption burned")
	return nil
}

// drawtextFilter assembles the drawtext expression for the configured style.
func (e *Executor) drawtextFilter(font, text string) string {
	return fmt.Sprintf(
		"drawtext=fontfile='%s':"+
			"text='%s':"+
			"fontsize=%d:"+
			"fontcolor=white:"+
			"borderw=%d:"+
			"bordercolor=black@0.7:"+
			"shadowcolor=black@0.9:"+
			"shadowx=3:shadowy=3:"+
			"x=(w-text_w)/2:"+
			"y=h*%.2f:"+
			"line_spacing=%d",
		font,
		escapeDrawtext(text),
		e.caption.FontSize,
		e.caption.BorderWidth,
		e.caption.YFraction,
		e.caption.LineSpacing,
	)
}

// escapeDrawtext escapes text for embedding inside a single-quoted drawtext
// value: backslash, single quote, colon, percent.
func escapeDrawtext(text string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `'\''`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(text)
}

// findFont returns the first existing candidate font file, else the fallback
// font name for ffmpeg to resolve itself.
func findFont(candidates []string, fallback string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return fallback
}
