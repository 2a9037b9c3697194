package assets

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AssetType classifies how an asset file behaves on disk.
type AssetType int

const (
	// AssetTypeStatic means the file's contents never change.
	AssetTypeStatic AssetType = iota
	// AssetTypeDynamic means the file's contents can change while running.
	AssetTypeDynamic
	// AssetTypeOptional means the file may not exist yet and may be created.
	AssetTypeOptional
)

// String returns the manifest spelling of the asset type.
//
// Returns:
//   - string: "Static", "Dynamic", or "Optional"
func (t AssetType) String() string {
	switch t {
	case AssetTypeStatic:
		return "Static"
	case AssetTypeDynamic:
		return "Dynamic"
	case AssetTypeOptional:
		return "Optional"
	default:
		return fmt.Sprintf("AssetType(%d)", int(t))
	}
}

// Readable reports whether the asset may be read.
//
// Returns:
//   - bool: true for all asset types
func (t AssetType) Readable() bool {
	return true
}

// Writable reports whether the asset may be overwritten.
//
// Returns:
//   - bool: true for Dynamic and Optional assets
func (t AssetType) Writable() bool {
	return t == AssetTypeDynamic || t == AssetTypeOptional
}

// Creatable reports whether the asset may be created if missing.
//
// Returns:
//   - bool: true only for Optional assets
func (t AssetType) Creatable() bool {
	return t == AssetTypeOptional
}

// ParseManifest reads a line-oriented asset manifest. Each entry is one line
// of the form "<path> <type>" where type is Static, Dynamic, or Optional.
// A '#' starts a comment that runs to the end of the line; blank lines are
// skipped. A line with only one field, more than two fields, an unknown type,
// or a path that already appeared is an error naming the offending line.
//
// Parameters:
//   - r: the manifest text
//
// Returns:
//   - map[string]AssetType: entries keyed by path
//   - error: the first syntax error, if any
func ParseManifest(r io.Reader) (map[string]AssetType, error) {
	list := make(map[string]AssetType)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		text := scanner.Text()
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}

		fields := strings.Fields(text)
		switch len(fields) {
		case 0:
			continue
		case 2:
		default:
			return nil, fmt.Errorf("invalid syntax (line %d)", line)
		}

		var t AssetType
		switch fields[1] {
		case "Static":
			t = AssetTypeStatic
		case "Dynamic":
			t = AssetTypeDynamic
		case "Optional":
			t = AssetTypeOptional
		default:
			return nil, fmt.Errorf("invalid type %q (line %d)", fields[1], line)
		}

		path := fields[0]
		if _, exists := list[path]; exists {
			return nil, fmt.Errorf("duplicate path %q (line %d)", path, line)
		}
		list[path] = t
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return list, nil
}
