package ffmpeg

// Progress represents ffmpeg progress data
type Progress struct {
	Frame int
	FPS   float64
	Time  string
	Speed string
}

// ProgressFunc is a callback for progress updates during ffmpeg operations.
// Called periodically with progress information as the operation executes.
type ProgressFunc func(*Progress)

// RunOptions configures ffmpeg execution
type RunOptions struct {
	Args            []string
	ProgressHandler ProgressFunc
	LogHandler      func(line string)
}

// Default encoding settings
const (
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
)

// CaptionStyle configures the burned-in caption rendering.
type CaptionStyle struct {
	FontSize       int
	YFraction      float64
	LineSpacing    int
	BorderWidth    int
	FontCandidates []string
	FontFallback   string
}

// KenBurnsOptions configures the deterministic pan/zoom synthesis.
type KenBurnsOptions struct {
	// Motion is a named camera preset; unrecognized names use the zoom-in law.
	Motion   string
	Duration float64
	FPS      int
	Width    int
	Height   int
}
