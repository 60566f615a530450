package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/word-orbit/camera"
)

// Config is the runtime configuration, loaded from an optional yaml file
// Scene and camera tuning constants live in the parameter package; only
// values that vary per deployment belong here
type Config struct {
	ServerURL string       `yaml:"server_url"`
	Model     string       `yaml:"model"`
	CachePath string       `yaml:"cache_path"`
	BatchSize int          `yaml:"batch_size"`
	LogPath   string       `yaml:"log_path"`
	Camera    CameraConfig `yaml:"camera"`
}

// CameraConfig overrides individual camera tuning values
// Zero fields keep the parameter-package defaults
type CameraConfig struct {
	DollyStep        float64 `yaml:"dolly_step"`
	MinOrbitDistance float64 `yaml:"min_orbit_distance"`
	FOVDegrees       float64 `yaml:"fov_degrees"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		ServerURL: "http://localhost:5801",
		Model:     "GoogleNews",
		BatchSize: 20,
		LogPath:   "word-orbit.log",
	}
}

// Load reads path over the defaults. A missing file is not an error
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Tuning folds the overrides into the default camera tuning
func (c CameraConfig) Tuning() camera.Tuning {
	t := camera.DefaultTuning()
	if c.DollyStep > 0 {
		t.DollyStep = c.DollyStep
	}
	if c.MinOrbitDistance > 0 {
		t.MinOrbitDistance = c.MinOrbitDistance
	}
	if c.FOVDegrees > 0 {
		t.FOV = c.FOVDegrees * math.Pi / 180
	}
	return t
}
