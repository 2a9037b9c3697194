// pre_processor.go implements the WGSL include pre-processor. Pipeline shaders
// share the camera, viewport, light, anchor and corner-table WGSL blocks
// through //#include directives resolved against a registry of embedded
// sources, so the five pipelines can never drift apart on the shared math.
package shader

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/lumen2d/lumen/engine/camera"
	"github.com/lumen2d/lumen/engine/light"
)

// includePrefix marks a pre-processor directive. The directive must be the
// only content on its line: //#include <name>.
const includePrefix = "//#include"

//go:embed assets/quad.wgsl
var quadSource string

//go:embed assets/anchor.wgsl
var anchorSource string

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps include names to their embedded WGSL source text.
	registry map[string]string
}

// PreProcessor processes raw WGSL shader source code containing //#include
// directives, replacing each with the registered WGSL block. Repeated includes
// of the same name expand only once per Process call, so a shader may include
// "viewport" for itself even when "anchor" already pulls it in.
type PreProcessor interface {
	// Process expands all //#include directives in the source.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the processed WGSL source with directives replaced
	//   - error: an error if a directive is malformed or names an unknown include
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every shared WGSL block
// registered: the camera/viewport uniforms, the point-light block with its
// accumulation functions, the anchor resolver and the unit-quad corner table.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			"camera_uniform": camera.GPUCameraUniformSource,
			"viewport":       camera.GPUViewportSource,
			"point_light":    light.GPUPointLightSource,
			"light_block":    light.GPULightBlockSource,
			"quad":           quadSource,
			"anchor":         anchorSource,
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	var out strings.Builder
	seen := make(map[string]bool)

	for lineNo, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includePrefix) {
			out.WriteString(line)
			out.WriteString("\n")
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(trimmed, includePrefix))
		if name == "" || strings.ContainsAny(name, " \t") {
			return "", fmt.Errorf("line %d: malformed include directive %q", lineNo+1, trimmed)
		}
		block, ok := p.registry[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", lineNo+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out.WriteString(block)
		if !strings.HasSuffix(block, "\n") {
			out.WriteString("\n")
		}
	}

	// Split always yields one trailing element for the final line; drop the
	// newline we appended for it so Process is stable under re-processing.
	result := out.String()
	if !strings.HasSuffix(source, "\n") {
		result = strings.TrimSuffix(result, "\n")
	}
	return result, nil
}
