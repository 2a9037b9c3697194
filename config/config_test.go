package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Resolution != ResolutionW1280H720 {
		t.Errorf("default resolution = %q, want %q", s.Resolution, ResolutionW1280H720)
	}
	if s.ScreenMode != ScreenModeWindowed {
		t.Errorf("default screen mode = %q, want %q", s.ScreenMode, ScreenModeWindowed)
	}
	if s.FrameCap != 0 {
		t.Errorf("default frame cap = %v, want 0", s.FrameCap)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestResolutionSizes(t *testing.T) {
	cases := []struct {
		res    Resolution
		width  int
		height int
	}{
		{ResolutionW640H360, 640, 360},
		{ResolutionW960H540, 960, 540},
		{ResolutionW1280H720, 1280, 720},
		{ResolutionW1440H810, 1440, 810},
		{ResolutionW1600H900, 1600, 900},
		{ResolutionW1920H1080, 1920, 1080},
	}
	for _, tc := range cases {
		w, h, ok := tc.res.Size()
		if !ok {
			t.Errorf("%q: not in table", tc.res)
			continue
		}
		if w != tc.width || h != tc.height {
			t.Errorf("%q: got %dx%d, want %dx%d", tc.res, w, h, tc.width, tc.height)
		}
	}

	if _, _, ok := Resolution("800x600").Size(); ok {
		t.Error("4:3 resolution should not be in the table")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	original := Settings{
		Resolution: ResolutionW1920H1080,
		ScreenMode: ScreenModeFullScreen,
		FrameCap:   144,
	}

	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got != original {
		t.Errorf("round trip changed settings: got %+v, want %+v", got, original)
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{name: "unsupported resolution", input: `resolution = "800x600"`},
		{name: "unsupported screen mode", input: `screen_mode = "borderless"`},
		{name: "negative frame cap", input: `frame_cap = -30.0`},
		{name: "malformed toml", input: `resolution = `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tc.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUnmarshalFillsDefaults(t *testing.T) {
	got, err := Unmarshal([]byte(`frame_cap = 60.0`))
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got.Resolution != ResolutionW1280H720 {
		t.Errorf("resolution = %q, want default %q", got.Resolution, ResolutionW1280H720)
	}
	if got.FrameCap != 60 {
		t.Errorf("frame cap = %v, want 60", got.FrameCap)
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	got, err := LoadFile(filepath.Join(t.TempDir(), "user.settings"))
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.settings")
	s := Settings{Resolution: ResolutionW1600H900, ScreenMode: ScreenModeWindowed, FrameCap: 30}

	if err := s.SaveFile(path); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if got != s {
		t.Errorf("got %+v, want %+v", got, s)
	}

	bad := Settings{Resolution: "640x480", ScreenMode: ScreenModeWindowed}
	if err := bad.SaveFile(path); err == nil {
		t.Error("expected error saving invalid settings")
	}
}
