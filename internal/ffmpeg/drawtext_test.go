package ffmpeg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEscapeDrawtext(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"backslash", `a\b`, `a\\b`},
		{"single quote", "you're", `you'\''re`},
		{"colon", "note: this", `note\: this`},
		{"percent", "100%", `100\%`},
		{"multi-line untouched", "line one\nline two", "line one\nline two"},
		{"combined", `it's 50%: a\b`, `it'\''s 50\%\: a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeDrawtext(tt.in); got != tt.want {
				t.Errorf("escapeDrawtext(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindFont(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "serif.ttf")
	if err := os.WriteFile(existing, []byte("font"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"first existing wins", []string{filepath.Join(dir, "missing.ttf"), existing}, existing},
		{"none exist", []string{filepath.Join(dir, "a.ttf"), filepath.Join(dir, "b.ttf")}, "Times"},
		{"empty candidates", nil, "Times"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findFont(tt.candidates, "Times"); got != tt.want {
				t.Errorf("findFont() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDrawtextFilter(t *testing.T) {
	e := &Executor{
		caption: CaptionStyle{
			FontSize:    42,
			YFraction:   0.25,
			LineSpacing: 12,
			BorderWidth: 2,
		},
	}

	filter := e.drawtextFilter("/fonts/serif.ttf", "you're growing")

	for _, want := range []string{
		"drawtext=fontfile='/fonts/serif.ttf'",
		`text='you'\''re growing'`,
		"fontsize=42",
		"borderw=2",
		"shadowx=3:shadowy=3",
		"x=(w-text_w)/2",
		"y=h*0.25",
		"line_spacing=12",
	} {
		if !strings.Contains(filter, want) {
			t.Errorf("filter missing %q:\n%s", want, filter)
		}
	}
}

func TestDrawCaptionValidation(t *testing.T) {
	e := &Executor{}

	if err := e.DrawCaption(testContext(t), "", "out.mp4", "text"); err == nil {
		t.Error("expected error for empty input path")
	}
	if err := e.DrawCaption(testContext(t), "in.mp4", "", "text"); err == nil {
		t.Error("expected error for empty output path")
	}
}
