package config

import "github.com/ropelab/ropesim/internal/geom"

// Presets are complete configurations keyed by scene then variant. Every
// entry passes [Config.Validate] on its own; nothing is filled in later.
var Presets = map[string]map[string]*Config{
	"rope": {
		"slack": {
			Scene: "rope", Mode: "verlet", Dt: DefaultDt, Ticks: 600, Iterations: 12, FPS: 60,
			Restitution: -1, PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Particles: 24, Spacing: 4, Mass: 1, Radius: 1, Damping: 0.99, Strength: 0.9},
		},
		"taut": {
			Scene: "rope", Mode: "verlet", Dt: DefaultDt, Ticks: 600, Iterations: 24, FPS: 60,
			Restitution: -1, PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Particles: 16, Spacing: 5, Mass: 1, Radius: 1, Damping: 0.96, Strength: 1},
		},
		"flail": {
			Scene: "rope", Mode: "verlet", Dt: DefaultDt, Ticks: 900, Iterations: 8, FPS: 60,
			Restitution: -0.6, PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Particles: 32, Spacing: 3, Mass: 1, Radius: 1, Damping: 0.995, Strength: 0.8},
		},
	},
	"web": {
		"drop": {
			Scene: "web", Mode: "euler", Dt: DefaultDt, Ticks: 600, Iterations: 6, FPS: 60,
			Gravity: geom.V(0, -9.8), Restitution: -0.4,
			PositionGain: 1, VelocityGain: 2, CorrectPositions: true,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Width: 12, Height: 9, Spacing: 6, Mass: 1, Radius: 1, Damping: 0.99, Strength: 0.9},
		},
		"trampoline": {
			Scene: "web", Mode: "euler", Dt: DefaultDt, Ticks: 900, Iterations: 10, FPS: 60,
			Gravity: geom.V(0, -9.8), Restitution: -1,
			PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Width: 16, Height: 6, Spacing: 5, Mass: 1, Radius: 1, Damping: 0.995, Strength: 0.7},
		},
	},
	"burst": {
		"fountain": {
			Scene: "burst", Mode: "euler", Dt: DefaultDt, Ticks: 900, Iterations: 0, FPS: 60,
			Gravity: geom.V(0, -24), Restitution: -0.8, Seed: 7,
			PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Particles: 48, Mass: 1, Radius: 1.5, Damping: 1, Strength: 1},
		},
		"rain": {
			Scene: "burst", Mode: "euler", Dt: DefaultDt, Ticks: 900, Iterations: 0, FPS: 60,
			Gravity: geom.V(0, -16), Restitution: -1, Seed: 11,
			PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Particles: 64, Mass: 1, Radius: 1, Damping: 1, Strength: 1},
		},
	},
	"pendulum": {
		"swing": {
			Scene: "pendulum", Mode: "euler", Dt: DefaultDt, Ticks: 900, Iterations: 16, FPS: 60,
			Gravity: geom.V(0, -9.8), Restitution: -1,
			PositionGain: 1, VelocityGain: 2, CorrectPositions: true,
			Setup: SceneConfig{Spacing: 30, Mass: 1, Radius: 2, Damping: 0.999, Strength: 1},
		},
		"heavy": {
			Scene: "pendulum", Mode: "euler", Dt: DefaultDt, Ticks: 900, Iterations: 16, FPS: 60,
			Gravity: geom.V(0, -9.8), Restitution: -1,
			PositionGain: 1, VelocityGain: 2, CorrectPositions: true,
			Setup: SceneConfig{Spacing: 30, Mass: 9, Radius: 3, Damping: 0.999, Strength: 1},
		},
	},
	"body": {
		"spin": {
			Scene: "body", Mode: "verlet", Dt: DefaultDt, Ticks: 600, Iterations: 1, FPS: 60,
			Restitution: -1, PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Radius: 25, Mass: 1, Damping: 1, Strength: 1},
		},
		"drift": {
			Scene: "body", Mode: "verlet", Dt: DefaultDt, Ticks: 900, Iterations: 1, FPS: 60,
			Restitution: -1, PositionGain: 1, VelocityGain: 2,
			Bounds: BoundsConfig{Enabled: true, Min: geom.V(-80, -60), Max: geom.V(80, 60)},
			Setup:  SceneConfig{Radius: 12, Mass: 2, Damping: 1, Strength: 1},
		},
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
