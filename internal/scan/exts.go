package scan

import (
	"path/filepath"
	"sort"
	"strings"
)

// Extensions recognized as model files. The set is fixed; matching is
// case-insensitive and by exact suffix.
var modelExtensions = map[string]bool{
	".safetensors": true,
	".ckpt":        true,
	".pth":         true,
	".pt":          true,
	".onnx":        true,
	".bin":         true,
	".gguf":        true,
}

// RecognizedPath reports whether the path carries a recognized model file extension
func RecognizedPath(path string) bool {
	return modelExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the recognized extension set as a sorted slice for display
func Extensions() []string {
	exts := make([]string, 0, len(modelExtensions))
	for ext := range modelExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
