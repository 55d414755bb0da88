package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Concat merges the ordered clips into one output by stream copy. The concat
// demuxer reads a transient manifest written next to the output; the manifest
// is removed afterwards.
func (e *Executor) Concat(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files provided")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}

	e.logger.Info().
		Int("inputs", len(inputs)).
		Str("output", output).
		Msg("concatenating clips")

	manifest, err := writeConcatManifest(filepath.Dir(output), inputs)
	if err != nil {
		return fmt.Errorf("failed to create concat manifest: %w", err)
	}
	defer os.Remove(manifest)

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}

	runOpts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("concat output")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("concat failed: %w", err)
	}

	e.logger.Info().Str("output", output).Msg("concat complete")
	return nil
}

// writeConcatManifest generates the file list for the ffmpeg concat demuxer
func writeConcatManifest(dir string, inputs []string) (string, error) {
	manifest := filepath.Join(dir, "concat.txt")

	f, err := os.Create(manifest)
	if err != nil {
		return "", err
	}

	for _, input := range inputs {
		absPath, err := filepath.Abs(input)
		if err != nil {
			f.Close()
			os.Remove(manifest)
			return "", err
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", absPath); err != nil {
			f.Close()
			os.Remove(manifest)
			return "", err
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(manifest)
		return "", err
	}

	return manifest, nil
}
