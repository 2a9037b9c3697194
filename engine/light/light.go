// package light provides the point-light arena shared by the lit render
// pipelines. Lights influence sprite and tile fragments through additive
// distance-attenuated accumulation; text and UI are never lit.
package light

import "math"

// lightImpl is the implementation of the PointLight interface.
type lightImpl struct {
	color     [3]float32
	position  [3]float32
	constant  float32
	linear    float32
	quadratic float32
	priority  float32
	enabled   bool
}

// PointLight defines the interface for a point light in the scene.
//
// A point light emits in all directions from a world-space position and
// attenuates with distance as 1/(constant + linear*d + quadratic*d^2). Lights
// are managed by the scene composer and marshaled into the fixed GPU light
// block each frame via the gpu_types helpers.
type PointLight interface {
	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Constant returns the constant attenuation coefficient. Always positive
	// for lights accepted by the scene composer.
	//
	// Returns:
	//   - float32: the constant coefficient
	Constant() float32

	// Linear returns the linear attenuation coefficient.
	//
	// Returns:
	//   - float32: the linear coefficient
	Linear() float32

	// Quadratic returns the quadratic attenuation coefficient.
	//
	// Returns:
	//   - float32: the quadratic coefficient
	Quadratic() float32

	// Priority returns the truncation priority. When more than MaxLights
	// lights are enabled, higher-priority lights keep their arena slots.
	//
	// Returns:
	//   - float32: the priority value
	Priority() float32

	// Enabled returns whether this light is active for rendering. Disabled
	// lights are skipped when building the light block.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Attenuation evaluates the attenuation factor at a given distance. This
	// is the CPU reference for the WGSL attenuate function and is also used by
	// the scene's light prioritization.
	//
	// Parameters:
	//   - distance: world-space distance from the light
	//
	// Returns:
	//   - float32: the attenuation factor
	Attenuation(distance float32) float32

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetAttenuation sets the three attenuation coefficients.
	//
	// Parameters:
	//   - constant: constant coefficient (must be > 0 to pass scene validation)
	//   - linear: linear coefficient
	//   - quadratic: quadratic coefficient
	SetAttenuation(constant, linear, quadratic float32)

	// SetPriority sets the truncation priority.
	//
	// Parameters:
	//   - priority: the priority value
	SetPriority(priority float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ PointLight = &lightImpl{}

// NewPointLight creates a point light with sensible defaults (white, origin,
// constant 1, enabled) and any provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - PointLight: a new PointLight instance
func NewPointLight(opts ...LightBuilderOption) PointLight {
	l := &lightImpl{
		color:     [3]float32{1, 1, 1},
		position:  [3]float32{0, 0, 0},
		constant:  1,
		linear:    0.09,
		quadratic: 0.032,
		priority:  0,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Constant() float32 {
	return l.constant
}

func (l *lightImpl) Linear() float32 {
	return l.linear
}

func (l *lightImpl) Quadratic() float32 {
	return l.quadratic
}

func (l *lightImpl) Priority() float32 {
	return l.priority
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Attenuation(distance float32) float32 {
	return 1.0 / (l.constant + l.linear*distance + l.quadratic*distance*distance)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetAttenuation(constant, linear, quadratic float32) {
	l.constant = constant
	l.linear = linear
	l.quadratic = quadratic
}

func (l *lightImpl) SetPriority(priority float32) {
	l.priority = priority
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// Accumulate is the CPU reference for the lit pipelines' fragment math: it adds
// each enabled light's attenuated color to the base color. Output is unclamped;
// tone-mapping, if any, is downstream.
//
// Parameters:
//   - base: the unlit fragment RGB
//   - fragX, fragY, fragZ: the world-space fragment position
//   - lights: the lights to accumulate (disabled lights are skipped)
//
// Returns:
//   - [3]float32: base plus the summed light contributions
func Accumulate(base [3]float32, fragX, fragY, fragZ float32, lights []PointLight) [3]float32 {
	acc := base
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		p := l.Position()
		dx := p[0] - fragX
		dy := p[1] - fragY
		dz := p[2] - fragZ
		d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		att := l.Attenuation(d)
		c := l.Color()
		acc[0] += c[0] * att
		acc[1] += c[1] * att
		acc[2] += c[2] * att
	}
	return acc
}
