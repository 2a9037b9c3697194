package scene

import (
	"github.com/lumen2d/lumen/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is composed each frame.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLights adds initial lights to the scene. Lights with a non-positive
// constant attenuation term are skipped; AddLight is the checked path.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.PointLight) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l.Constant() <= 0 {
				continue
			}
			s.lights.add(l)
		}
	}
}

// WithMarshalWorkers sets the number of worker goroutines used during the
// batch marshal phase of ComposeFrame. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of marshal workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMarshalWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.marshalWorkers = n
	}
}
