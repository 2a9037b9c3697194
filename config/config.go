// package config holds the user-facing application settings: window
// resolution from a fixed 16:9 table, screen mode, and an optional render
// frame cap. Settings persist as TOML and default sensibly when the file has
// never been written.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Resolution is one of the supported 16:9 window resolutions.
type Resolution string

const (
	ResolutionW640H360   Resolution = "640x360"
	ResolutionW960H540   Resolution = "960x540"
	ResolutionW1280H720  Resolution = "1280x720"
	ResolutionW1440H810  Resolution = "1440x810"
	ResolutionW1600H900  Resolution = "1600x900"
	ResolutionW1920H1080 Resolution = "1920x1080"
)

// resolutionSizes maps each supported resolution to its pixel dimensions.
var resolutionSizes = map[Resolution][2]int{
	ResolutionW640H360:   {640, 360},
	ResolutionW960H540:   {960, 540},
	ResolutionW1280H720:  {1280, 720},
	ResolutionW1440H810:  {1440, 810},
	ResolutionW1600H900:  {1600, 900},
	ResolutionW1920H1080: {1920, 1080},
}

// Size returns the pixel dimensions of the resolution.
//
// Returns:
//   - int: width in pixels
//   - int: height in pixels
//   - bool: false if the resolution is not in the supported table
func (r Resolution) Size() (int, int, bool) {
	size, ok := resolutionSizes[r]
	return size[0], size[1], ok
}

// ScreenMode selects windowed or fullscreen presentation.
type ScreenMode string

const (
	ScreenModeWindowed   ScreenMode = "windowed"
	ScreenModeFullScreen ScreenMode = "fullscreen"
)

// Settings is the persisted user configuration.
type Settings struct {
	// Resolution is the window size, one of the supported 16:9 entries.
	Resolution Resolution `toml:"resolution"`

	// ScreenMode selects windowed or fullscreen presentation.
	ScreenMode ScreenMode `toml:"screen_mode"`

	// FrameCap is the maximum render frames per second; 0 means uncapped.
	FrameCap float64 `toml:"frame_cap"`
}

// DefaultSettings returns the settings used when no file exists yet.
//
// Returns:
//   - Settings: 1280x720 windowed, uncapped frame rate
func DefaultSettings() Settings {
	return Settings{
		Resolution: ResolutionW1280H720,
		ScreenMode: ScreenModeWindowed,
		FrameCap:   0,
	}
}

// Validate checks the settings against the supported tables.
//
// Returns:
//   - error: an error naming the first invalid field, if any
func (s Settings) Validate() error {
	if _, _, ok := s.Resolution.Size(); !ok {
		return fmt.Errorf("unsupported resolution %q", s.Resolution)
	}
	switch s.ScreenMode {
	case ScreenModeWindowed, ScreenModeFullScreen:
	default:
		return fmt.Errorf("unsupported screen mode %q", s.ScreenMode)
	}
	if s.FrameCap < 0 {
		return fmt.Errorf("frame cap must be >= 0, got %v", s.FrameCap)
	}
	return nil
}

// Unmarshal parses TOML settings and validates them.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Settings: the parsed settings
//   - error: an error if parsing or validation fails
func Unmarshal(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Marshal serializes the settings as TOML.
//
// Returns:
//   - []byte: the TOML document
//   - error: an error if serialization fails
func (s Settings) Marshal() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serialize settings: %w", err)
	}
	return data, nil
}

// LoadFile reads settings from a TOML file. A missing file is not an error;
// it returns the defaults so first runs work without any setup.
//
// Parameters:
//   - path: the settings file path
//
// Returns:
//   - Settings: the loaded or default settings
//   - error: an error if the file exists but cannot be parsed
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Unmarshal(data)
}

// SaveFile writes the settings to a TOML file.
//
// Parameters:
//   - path: the settings file path
//
// Returns:
//   - error: an error if validation or the write fails
func (s Settings) SaveFile(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
