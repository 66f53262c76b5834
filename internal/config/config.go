package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "August Graham"

	// Frames per second assumed by the frame clock.
	TicksPerSecond = 60

	// Particle field world layout.
	FieldWorldWidth        = 80.0
	FieldBrightnessCutoff  = 0.1
	FieldFadeStart         = 5.0 / 6.0
	FieldFadeExponent      = 1.5
	FieldMinOpacity        = 0.01
	FieldBaseSpacing       = 8.0
	FieldCameraZ           = 100.0
	FieldCameraFOV         = 45.0
	ColorConvergeThreshold = 1e-3

	// Billboard menu layout.
	MenuCameraZ          = 50.0
	MenuCameraFOV        = 45.0
	BillboardStartY      = 12.0
	BillboardSpacing     = 8.0
	BillboardPadding     = 1.5
	HorizontalSpacing    = 12.0
	TopCornerRadius      = 1.0
	RotationEase         = 0.1
	DetailRevealMargin   = 10.0
	DetailTextSize       = 1.5
	DetailExtraPadding   = 4.0
	ShapeCornerSegments  = 8
	PointerSentinel      = -10000.0
	ChimeSampleRate      = 44100
	ChimeDurationSeconds = 0.12
)

// RowSpacings holds the gap below each row; rows past the end use BillboardSpacing.
var RowSpacings = []float64{6, 10}

// DefaultPalette is the set of colours the particle field cycles through.
var DefaultPalette = []string{
	"#ff0000",
	"#00ff00",
	"#00ffff",
	"#ff1493",
	"#ffd700",
	"#ff8c00",
	"#9400d3",
}

// Settings is every tunable read by the particle field and the billboard
// menu. Values are taken as-is: nothing here is validated or clamped.
type Settings struct {
	// Particle appearance
	ParticleSize    float64 `toml:"particle_size"`
	ParticleOpacity float64 `toml:"particle_opacity"`
	ParticleDensity float64 `toml:"particle_density"`
	ReturnRate      float64 `toml:"return_rate"`

	// Pointer interaction
	MouseRepulsion       bool    `toml:"mouse_repulsion"`
	MouseRepulsionRadius float64 `toml:"mouse_repulsion_radius"`
	MouseRepulsionForce  float64 `toml:"mouse_repulsion_force"`
	MouseScaling         bool    `toml:"mouse_scaling"`
	MouseScaleRadius     float64 `toml:"mouse_scale_radius"`
	MouseScaleFactor     float64 `toml:"mouse_scale_factor"`

	// Animation
	ColorTransitionSpeed float64  `toml:"color_transition_speed"`
	ColorCycleSeconds    float64  `toml:"color_cycle_seconds"`
	Palette              []string `toml:"palette"`
	RevealSeconds        float64  `toml:"reveal_seconds"`
	RotationSpeed        float64  `toml:"rotation_speed"`
	RotationRange        float64  `toml:"rotation_range"`
	FloatSpeed           float64  `toml:"float_speed"`
	FloatAmplitude       float64  `toml:"float_amplitude"`

	// Camera zoom (desktop = landscape, mobile = portrait)
	DesktopZoom float64 `toml:"desktop_zoom"`
	MobileZoom  float64 `toml:"mobile_zoom"`

	// Global
	ShowBorders bool `toml:"show_borders"`

	// About Me billboard
	AboutMeExpandedHeight  float64 `toml:"about_me_expanded_height"`
	AboutMeCollapsedRadius float64 `toml:"about_me_collapsed_radius"`
	AboutMeExpandedRadius  float64 `toml:"about_me_expanded_radius"`
	AboutMeAnimationSpeed  float64 `toml:"about_me_animation_speed"`
}

// Default returns the settings the page ships with.
func Default() Settings {
	return Settings{
		ParticleSize:    0.3,
		ParticleOpacity: 0.8,
		ParticleDensity: 1.0,
		ReturnRate:      0.1,

		MouseRepulsion:       true,
		MouseRepulsionRadius: 6,
		MouseRepulsionForce:  0.1,
		MouseScaling:         true,
		MouseScaleRadius:     5,
		MouseScaleFactor:     1.5,

		ColorTransitionSpeed: 0.05,
		Palette:              append([]string(nil), DefaultPalette...),
		RevealSeconds:        1.5,
		RotationSpeed:        0.003,
		RotationRange:        0.1,
		FloatSpeed:           0.0007,
		FloatAmplitude:       0.5,

		DesktopZoom: 2,
		MobileZoom:  1,

		ShowBorders: true,

		AboutMeExpandedHeight:  25,
		AboutMeCollapsedRadius: 0.01,
		AboutMeExpandedRadius:  1,
		AboutMeAnimationSpeed:  0.15,
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Default(), errors.Wrapf(err, "decode settings %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), errors.Errorf("unknown settings key %q in %s", undecoded[0].String(), path)
	}
	return s, nil
}

// Zoom picks the camera zoom factor for a window of the given size.
func (s Settings) Zoom(windowWidth, windowHeight int) float64 {
	if windowHeight <= 0 {
		if windowWidth > 0 {
			return s.DesktopZoom
		}
		return s.MobileZoom
	}
	if float64(windowWidth)/float64(windowHeight) > 1 {
		return s.DesktopZoom
	}
	return s.MobileZoom
}

// Clone returns a copy that shares no slices with s.
func (s Settings) Clone() Settings {
	s.Palette = append([]string(nil), s.Palette...)
	return s
}
