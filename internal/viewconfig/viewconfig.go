package viewconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the path to the viewer config file, relative to the process working directory.
const DefaultPath = "config/viewer.yaml"

// Prefs holds viewer preferences. Persisted across runs; window title and size come from the caller.
type Prefs struct {
	Background   [3]float32 `yaml:"background"`
	MeshColor    [3]float32 `yaml:"mesh_color"`
	LightDir     [3]float32 `yaml:"light_dir"`
	Ambient      float32    `yaml:"ambient"`
	PointSize    float32    `yaml:"point_size"`
	GridVisible  bool       `yaml:"grid_visible"`
	ShowFPS      bool       `yaml:"show_fps"`
	ShowMemAlloc bool       `yaml:"show_memalloc"`
	ShowBackFace bool       `yaml:"show_back_face"`
	TargetFPS    int32      `yaml:"target_fps"`
	FovyDeg      float32    `yaml:"fovy"`
}

// Default returns default preferences: white background, gray meshes, grid off, overlays off.
func Default() Prefs {
	return Prefs{
		Background:  [3]float32{1, 1, 1},
		MeshColor:   [3]float32{0.7, 0.7, 0.7},
		LightDir:    [3]float32{0.5, 1, 0.8},
		Ambient:     0.25,
		PointSize:   1,
		GridVisible: false,
		TargetFPS:   60,
		FovyDeg:     60,
	}
}

// Load reads preferences from path. A missing file yields Default() and no error.
// Fields absent from the file keep their default values. An unreadable or invalid file
// yields Default() together with the error so the caller can log it.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("viewconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("viewconfig: %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("viewconfig: %s: %w", path, err)
	}
	return p, nil
}

// Ensure loads preferences from path. When the file does not exist yet it is created with
// Default() so the user has a file to edit; created reports that.
func Ensure(path string) (p Prefs, created bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		p = Default()
		if err := Save(path, p); err != nil {
			return p, false, fmt.Errorf("viewconfig: create %s: %w", path, err)
		}
		return p, true, nil
	}
	p, err = Load(path)
	return p, false, err
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the viewer cannot work with.
func (p Prefs) Validate() error {
	if p.PointSize <= 0 {
		return fmt.Errorf("point_size must be positive, got %v", p.PointSize)
	}
	if p.FovyDeg <= 0 || p.FovyDeg >= 180 {
		return fmt.Errorf("fovy must be in (0, 180), got %v", p.FovyDeg)
	}
	if p.Ambient < 0 || p.Ambient > 1 {
		return fmt.Errorf("ambient must be in [0, 1], got %v", p.Ambient)
	}
	if p.TargetFPS < 0 {
		return fmt.Errorf("target_fps must not be negative, got %d", p.TargetFPS)
	}
	return nil
}
