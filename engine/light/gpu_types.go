package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"sort"
	"unsafe"
)

// MaxLights is the fixed capacity of the GPU light block. The CPU-side light
// list is unbounded; this cap controls only how many lights the GPU evaluates
// per frame. When more lights are enabled than fit, the block builder keeps
// the highest-priority ones.
const MaxLights = 64

// GPUPointLightSource is the canonical WGSL definition of the PointLight struct.
// Matches GPUPointLight layout exactly (48 bytes, std140 aligned).
//
//go:embed assets/point_light.wgsl
var GPUPointLightSource string

// GPUPointLight is the GPU-aligned representation of a single point light.
// Matches the WGSL PointLight struct layout exactly (see GPUPointLightSource).
// Size: 48 bytes (std140 / WGSL aligned).
type GPUPointLight struct {
	Color    [3]float32 // offset  0: RGB color
	_pad0    float32    // offset 12: padding, vec3 aligns to 16
	Position [3]float32 // offset 16: world-space position
	_pad1    float32    // offset 28: padding, vec3 aligns to 16

	// Attenuation coefficients: contribution = 1 / (constant + linear*d + quadratic*d^2).
	// Constant must be > 0 so a fragment at distance zero does not divide by zero;
	// the scene composer enforces this before upload.
	Constant  float32 // offset 32
	Linear    float32 // offset 36
	Quadratic float32 // offset 40
	_pad2     float32 // offset 44: padding to 48 bytes
}

// Size returns the size of the GPUPointLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUPointLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPointLight struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUPointLight) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.marshalInto(buf)
	return buf
}

func (g *GPUPointLight) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[12:], 0) // _pad0
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[24:], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[28:], 0) // _pad1
	binary.LittleEndian.PutUint32(buf[32:], math.Float32bits(g.Constant))
	binary.LittleEndian.PutUint32(buf[36:], math.Float32bits(g.Linear))
	binary.LittleEndian.PutUint32(buf[40:], math.Float32bits(g.Quadratic))
	binary.LittleEndian.PutUint32(buf[44:], 0) // _pad2
}

// GPULightBlockSource is the canonical WGSL definition of the LightBlock struct
// plus the attenuation and accumulation functions every lit pipeline shares.
// Matches GPULightBlock layout exactly (3088 bytes, std140 aligned).
//
//go:embed assets/light_block.wgsl
var GPULightBlockSource string

// GPULightBlock is the GPU-aligned uniform block holding the fixed light arena:
// a 64-entry array plus the active count. Entries beyond Count are never
// sampled and their contents are irrelevant. Shared read-only by the sprite and
// tile pipelines; uploaded exactly once per frame.
// Matches the WGSL LightBlock struct layout exactly (see GPULightBlockSource).
// Size: 3088 bytes (64*48 + 16, std140 aligned).
type GPULightBlock struct {
	Lights [MaxLights]GPUPointLight // offset    0: the light arena
	Count  uint32                   // offset 3072: number of active entries
	_pad0  uint32                   // offset 3076: padding to 16-byte alignment
	_pad1  uint32                   // offset 3080
	_pad2  uint32                   // offset 3084
}

// Size returns the size of the GPULightBlock struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (3088)
func (g *GPULightBlock) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightBlock struct into a byte buffer suitable for
// GPU upload. The whole arena is written, including inactive entries, so the
// upload size is constant every frame.
//
// Returns:
//   - []byte: 3088-byte buffer ready for GPU upload
func (g *GPULightBlock) Marshal() []byte {
	buf := make([]byte, g.Size())
	lightSize := (&GPUPointLight{}).Size()
	for i := range g.Lights {
		g.Lights[i].marshalInto(buf[i*lightSize:])
	}
	base := MaxLights * lightSize
	binary.LittleEndian.PutUint32(buf[base:], g.Count)
	binary.LittleEndian.PutUint32(buf[base+4:], 0)  // _pad0
	binary.LittleEndian.PutUint32(buf[base+8:], 0)  // _pad1
	binary.LittleEndian.PutUint32(buf[base+12:], 0) // _pad2
	return buf
}

// ToGPUPointLight converts a PointLight interface value into the GPU-aligned
// struct suitable for writing into the light block.
//
// Parameters:
//   - l: the PointLight to convert
//
// Returns:
//   - GPUPointLight: the GPU-aligned representation
func ToGPUPointLight(l PointLight) GPUPointLight {
	return GPUPointLight{
		Color:     l.Color(),
		Position:  l.Position(),
		Constant:  l.Constant(),
		Linear:    l.Linear(),
		Quadratic: l.Quadratic(),
	}
}

// BuildLightBlock fills a light block from the scene's light list. Disabled
// lights are skipped. When more than MaxLights lights are enabled, the
// highest-priority lights win; ties keep their relative order so the selection
// is deterministic frame to frame.
//
// Parameters:
//   - lights: the full slice of lights to consider
//
// Returns:
//   - *GPULightBlock: the populated block ready to Marshal
func BuildLightBlock(lights []PointLight) *GPULightBlock {
	enabled := make([]PointLight, 0, len(lights))
	for _, l := range lights {
		if l.Enabled() {
			enabled = append(enabled, l)
		}
	}
	if len(enabled) > MaxLights {
		sort.SliceStable(enabled, func(i, j int) bool {
			return enabled[i].Priority() > enabled[j].Priority()
		})
		enabled = enabled[:MaxLights]
	}

	block := &GPULightBlock{Count: uint32(len(enabled))}
	for i, l := range enabled {
		block.Lights[i] = ToGPUPointLight(l)
	}
	return block
}
