package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"aura/internal/orb"
	"aura/internal/vis"
)

// fileSettings reads orb settings from the viper config. Consumed once at
// startup; runtime changes go through the engine setters.
type fileSettings struct {
	v *viper.Viper
}

func (s fileSettings) OrbSettings() (orb.Settings, error) {
	return orb.Settings{
		ColorPreset:    s.v.GetString("color_preset"),
		OrbStyle:       s.v.GetString("orb_style"),
		AnimationSpeed: s.v.GetFloat64("animation_speed"),
		ParticleCount:  s.v.GetInt("particle_count"),
	}, nil
}

func loadSettings() (fileSettings, error) {
	v := viper.New()
	v.SetConfigName("aura")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "aura"))
	}
	v.SetEnvPrefix("AURA")
	v.AutomaticEnv()

	v.SetDefault("color_preset", orb.PresetAurora.Name)
	v.SetDefault("orb_style", orb.StyleGlow)
	v.SetDefault("animation_speed", 1.0)
	v.SetDefault("particle_count", orb.DefaultParticles)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fileSettings{}, fmt.Errorf("read config: %w", err)
		}
		// No config file: defaults and AURA_* env vars apply.
	}
	return fileSettings{v: v}, nil
}

func main() {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "aura: %v\n", err)
		os.Exit(1)
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("AURA_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	if err := vis.RunDesktop(vis.Options{Seed: seed, Settings: settings}); err != nil {
		fmt.Fprintf(os.Stderr, "aura: %v\n", err)
		os.Exit(1)
	}
}
