package scenes

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Camera names a motion preset applied to a scene, either by the animation
// model (as prompt intent) or by the Ken Burns fallback (as a motion law).
type Camera string

const (
	CameraZoomIn Camera = "slow zoom-in"
	CameraDrift  Camera = "slow outside-in drift"
	CameraFollow Camera = "slow follow"
	CameraTiltUp Camera = "upward tilt"
)

// Scene is one unit of the narrative: its image prompt, the caption burned
// onto the clip, and the camera motion. Scenes are immutable once loaded;
// ordering is slice order.
type Scene struct {
	ID        int    `yaml:"id" validate:"required,gt=0"`
	Caption   string `yaml:"caption" validate:"required"`
	Objective string `yaml:"objective"`
	Camera    Camera `yaml:"camera" validate:"required"`
	Prompt    string `yaml:"prompt" validate:"required"`
}

// StylePrompt is appended to every image prompt to hold the visual style
// consistent across scenes.
const StylePrompt = `Traditional oil painting in Van Gogh post-impressionist style.
Thick impasto brushstrokes with visible paint texture and canvas grain. Hand-painted aesthetic with organic imperfections.
Rich color mixing on canvas - warm golden ochre and amber contrasting with Prussian blue and teal.
Expressive brushwork like Starry Night. Natural color transitions, not digitally smooth.
Dramatic chiaroscuro lighting. Emotional depth. Museum quality fine art. 9:16 vertical composition.
NOT digital art, NOT 3D render, NOT photorealistic. Pure traditional painting aesthetic.`

// AnimationPrompt builds the motion-intent prompt sent to the video model.
func AnimationPrompt(camera Camera) string {
	return fmt.Sprintf(`Gentle living painting animation like a Van Gogh artwork coming to life.
%s. Subtle organic movement - brushstrokes seem to flow, colors breathe and shift naturally.
Clouds drift with painted texture, light dances like in impressionist art. Maintain thick impasto oil painting look throughout.
Movement should feel hand-animated, artistic, dreamlike. NOT realistic motion. 8 seconds of peaceful contemplation.`, camera)
}

// Default returns the built-in scene set.
func Default() []Scene {
	return []Scene{
		{
			ID:        1,
			Caption:   "You are growing in ways\nyour eyes can't see yet.",
			Objective: "Painterly mirror scene as she ties her hair.",
			Camera:    CameraZoomIn,
			Prompt: `A young woman with long dark hair tying her hair in front of an ornate vintage mirror in a warmly lit bedroom.
Morning golden sunlight streaming through curtains creating dramatic rays. Her silhouette reflected in mirror.
Warm amber and ochre tones contrasting with deep blue shadows. Visible brushstroke textures on walls and fabrics.
` + StylePrompt,
		},
		{
			ID:        2,
			Caption:   "Grace writes the parts of you\ndiscipline never could.",
			Objective: "Painterly café window shot with her writing gently.",
			Camera:    CameraDrift,
			Prompt: `View through a rain-streaked café window at night. A young woman sits inside writing in a journal,
illuminated by warm interior lamplight. Steam rising from coffee cup. Cool blue night outside contrasts with warm amber interior.
Wet cobblestone street reflects lights. Bold brushstroke textures on glass and reflections.
` + StylePrompt,
		},
		{
			ID:        3,
			Caption:   "Every quiet yes becomes a doorway\nto who you're becoming.",
			Objective: "Painterly golden street walk, silhouette soft.",
			Camera:    CameraFollow,
			Prompt: `A young woman walking alone on a tree-lined European street at golden hour sunset.
Her silhouette backlit by intense orange sun creating long dramatic shadows on cobblestones.
Autumn trees with swirling Van Gogh-style leaves in amber and gold. Deep blue sky above.
Mediterranean architecture with warm stone buildings. Bold impasto brushwork throughout.
` + StylePrompt,
		},
		{
			ID:        4,
			Caption:   "You are not behind —\nyour bloom is simply deliberate.",
			Objective: "Painterly mountain sunrise.",
			Camera:    CameraTiltUp,
			Prompt: `Majestic mountain landscape at sunrise with dramatic clouds. Snow-capped peaks catching first golden light.
Layers of mountains in atmospheric perspective. Swirling Van Gogh sky with bold brushstrokes in orange, pink, and deep blue.
Pine tree silhouettes in foreground. Mist in valleys. Expansive vista with emotional intensity.
` + StylePrompt,
		},
	}
}

// Load reads a scene set from a YAML file and validates it.
func Load(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenes file: %w", err)
	}

	var list []Scene
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse scenes file: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("scenes file %s contains no scenes", path)
	}

	if err := Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Validate checks scene fields and ID uniqueness.
func Validate(list []Scene) error {
	validate := validator.New()
	seen := make(map[int]bool, len(list))

	for i, s := range list {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("scene %d invalid: %w", i+1, err)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate scene id %d", s.ID)
		}
		seen[s.ID] = true
	}

	return nil
}
