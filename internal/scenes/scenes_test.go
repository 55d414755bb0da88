package scenes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScenes(t *testing.T) {
	list := Default()

	if len(list) != 4 {
		t.Fatalf("expected 4 scenes, got %d", len(list))
	}
	if err := Validate(list); err != nil {
		t.Errorf("built-in scenes invalid: %v", err)
	}

	cameras := map[Camera]bool{}
	for i, sc := range list {
		if sc.ID != i+1 {
			t.Errorf("scene %d has id %d", i, sc.ID)
		}
		if !strings.Contains(sc.Prompt, "Van Gogh") {
			t.Errorf("scene %d prompt missing style suffix", sc.ID)
		}
		cameras[sc.Camera] = true
	}
	if len(cameras) != 4 {
		t.Errorf("expected 4 distinct camera presets, got %d", len(cameras))
	}
}

func TestAnimationPromptIncludesCamera(t *testing.T) {
	prompt := AnimationPrompt(CameraFollow)
	if !strings.Contains(prompt, string(CameraFollow)) {
		t.Errorf("animation prompt missing camera preset: %q", prompt)
	}
}

func TestValidate(t *testing.T) {
	valid := Scene{ID: 1, Caption: "c", Camera: CameraZoomIn, Prompt: "p"}

	tests := []struct {
		name    string
		list    []Scene
		wantErr bool
	}{
		{"valid", []Scene{valid}, false},
		{"zero id", []Scene{{Caption: "c", Camera: CameraZoomIn, Prompt: "p"}}, true},
		{"negative id", []Scene{{ID: -1, Caption: "c", Camera: CameraZoomIn, Prompt: "p"}}, true},
		{"missing caption", []Scene{{ID: 1, Camera: CameraZoomIn, Prompt: "p"}}, true},
		{"missing prompt", []Scene{{ID: 1, Caption: "c", Camera: CameraZoomIn}}, true},
		{"duplicate ids", []Scene{valid, valid}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.list)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	content := `
- id: 1
  caption: "first line\nsecond line"
  objective: "test scene"
  camera: "slow zoom-in"
  prompt: "a prompt"
- id: 2
  caption: "another"
  camera: "upward tilt"
  prompt: "another prompt"
`
	path := filepath.Join(t.TempDir(), "scenes.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(list))
	}
	if list[0].Caption != "first line\nsecond line" {
		t.Errorf("multi-line caption not preserved: %q", list[0].Caption)
	}
	if list[1].Camera != CameraTiltUp {
		t.Errorf("unexpected camera %q", list[1].Camera)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"duplicate ids", "- {id: 1, caption: c, camera: slow follow, prompt: p}\n- {id: 1, caption: d, camera: slow follow, prompt: q}"},
		{"missing prompt", "- {id: 1, caption: c, camera: slow follow}"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenes.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
