package shader

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface. It holds the processed
// WGSL source and the module descriptor used for pipeline creation.
type shader struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
	module        *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a pre-processed WGSL shader module holding
// both the vertex and fragment stages of one pipeline.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL source after include expansion.
	//
	// Returns:
	//   - string: the processed WGSL source code
	Source() string

	// VertexEntryPoint returns the vertex stage entry point name.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point name.
	//
	// Returns:
	//   - string: the entry point name (e.g. "fs_main")
	FragmentEntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader creates a Shader from raw WGSL source, expanding //#include
// directives and locating the stage entry points. The entry points default to
// the first @vertex and @fragment functions in the processed source; shaders
// with multiple fragment entry points select one with WithFragmentEntryPoint.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and labels
//   - source: the raw WGSL source, typically a //go:embed string
//   - opts: variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the built shader
//   - error: an error if pre-processing fails or an entry point is missing
func NewShader(key, source string, opts ...ShaderBuilderOption) (Shader, error) {
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:           key,
		source:        processed,
		vertexEntry:   parseEntryPoint(processed, "@vertex"),
		fragmentEntry: parseEntryPoint(processed, "@fragment"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.vertexEntry == "" {
		return nil, fmt.Errorf("shader %s: no @vertex entry point", key)
	}
	if s.fragmentEntry == "" {
		return nil, fmt.Errorf("shader %s: no @fragment entry point", key)
	}
	if !strings.Contains(processed, "fn "+s.fragmentEntry) {
		return nil, fmt.Errorf("shader %s: fragment entry point %q not found in source", key, s.fragmentEntry)
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: processed,
		},
	}
	return s, nil
}

// ShaderBuilderOption is a function that configures a shader during construction.
type ShaderBuilderOption func(*shader)

// WithFragmentEntryPoint is an option builder that overrides the fragment
// stage entry point, for modules that compile more than one fragment function.
//
// Parameters:
//   - name: the fragment function name
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry point option
func WithFragmentEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.fragmentEntry = name
	}
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// parseEntryPoint finds the first function following the given stage
// attribute. Tolerates attributes between the stage marker and the fn keyword.
func parseEntryPoint(source, attribute string) string {
	idx := strings.Index(source, attribute)
	if idx < 0 {
		return ""
	}
	rest := source[idx:]
	fnIdx := strings.Index(rest, "fn ")
	if fnIdx < 0 {
		return ""
	}
	rest = rest[fnIdx+3:]
	end := strings.IndexAny(rest, "( \t\n")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
