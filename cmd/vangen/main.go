package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/keagan/vangen/internal/config"
	"github.com/keagan/vangen/internal/ffmpeg"
	"github.com/keagan/vangen/internal/genai"
	"github.com/keagan/vangen/internal/logging"
	"github.com/keagan/vangen/internal/pipeline"
	"github.com/keagan/vangen/internal/scenes"
	"github.com/keagan/vangen/pkg/util"
)

var (
	cfgFile string
	verbose bool

	outputDir  string
	scenesFile string
	noAnimate  bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vangen",
	Short: "vangen - painterly motivational short generator",
	Long:  "Generates a vertical motivational video: a model-painted still per scene, animated into a clip (Ken Burns fallback), captioned, and concatenated.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logging
		logging.Init(verbose)

		// Load config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Store config in context
		ctx := config.WithConfig(cmd.Context(), cfg)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./vangen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "artifact directory (default from config)")
	generateCmd.Flags().StringVar(&scenesFile, "scenes", "", "YAML scene file (default: built-in scene set)")
	generateCmd.Flags().BoolVar(&noAnimate, "no-animate", false, "skip the animation model, render every scene with ken burns")

	scenesCmd.Flags().StringVar(&scenesFile, "scenes", "", "YAML scene file (default: built-in scene set)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scenesCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the full video",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		if scenesFile != "" {
			cfg.ScenesFile = scenesFile
		}
		if noAnimate {
			cfg.Animation.Enabled = false
		}

		sceneList, err := loadScenes(cfg)
		if err != nil {
			return err
		}

		apiKey, err := genai.ResolveAPIKey()
		if err != nil {
			return err
		}

		client := genai.NewClient(genai.Options{
			BaseURL:    cfg.API.BaseURL,
			APIKey:     apiKey,
			ImageModel: cfg.API.ImageModel,
			VideoModel: cfg.API.VideoModel,
			Timeout:    time.Duration(cfg.API.TimeoutSec) * time.Second,
		})

		exec, err := ffmpeg.New(log.Logger, ffmpeg.Options{
			Threads: cfg.FFmpeg.Threads,
			Preset:  cfg.FFmpeg.Preset,
			Caption: ffmpeg.CaptionStyle{
				FontSize:       cfg.Caption.FontSize,
				YFraction:      cfg.Caption.YFraction,
				LineSpacing:    cfg.Caption.LineSpacing,
				BorderWidth:    cfg.Caption.BorderWidth,
				FontCandidates: cfg.Caption.FontCandidates,
				FontFallback:   cfg.Caption.FontFallback,
			},
		})
		if err != nil {
			return err
		}

		pipe := pipeline.New(log.Logger, pipeline.Options{
			OutputDir:        cfg.OutputDir,
			AnimationEnabled: cfg.Animation.Enabled,
			PollInterval:     cfg.Animation.PollIntervalSec,
			ProgressEvery:    cfg.Animation.ProgressEvery,
			Fallback: ffmpeg.KenBurnsOptions{
				Duration: cfg.Fallback.Duration,
				FPS:      cfg.Fallback.FPS,
				Width:    cfg.Fallback.Width,
				Height:   cfg.Fallback.Height,
			},
		}, client, client, exec)

		result, err := pipe.Run(cmd.Context(), sceneList)
		if err != nil {
			return err
		}

		logger := logging.WithComponent("cli")
		if !result.Produced {
			logger.Warn().Msg("no output produced")
			return nil
		}

		logger.Info().
			Str("output", result.FinalPath).
			Str("duration", util.FormatSeconds(result.Duration)).
			Int("scenes", result.Contributed()).
			Msg("generation complete")

		return nil
	},
}

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the scene set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if scenesFile != "" {
			cfg.ScenesFile = scenesFile
		}

		sceneList, err := loadScenes(cfg)
		if err != nil {
			return err
		}

		for _, sc := range sceneList {
			fmt.Printf("%d. [%s] %s\n   %s\n",
				sc.ID, sc.Camera, sc.Objective,
				strings.ReplaceAll(sc.Caption, "\n", " | "))
		}
		return nil
	},
}

func loadScenes(cfg *config.Config) ([]scenes.Scene, error) {
	if cfg.ScenesFile != "" {
		return scenes.Load(cfg.ScenesFile)
	}
	return scenes.Default(), nil
}
