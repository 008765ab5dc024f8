package scan

import "testing"

func TestRecognizedPath(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/models/sd15.safetensors", true},
		{"/models/SD15.SAFETENSORS", true},
		{"model.ckpt", true},
		{"weights.pth", true},
		{"weights.pt", true},
		{"net.onnx", true},
		{"pytorch_model.bin", true},
		{"llama.gguf", true},
		{"llama.GGUF", true},
		{"readme.txt", false},
		{"archive.zip", false},
		{"noextension", false},
		{"trailingdot.", false},
		{"/models/nested/dir.ckpt/inner.txt", false},
	}

	for _, test := range tests {
		result := RecognizedPath(test.path)
		if result != test.expected {
			t.Errorf("RecognizedPath(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()

	if len(exts) != 7 {
		t.Fatalf("Expected 7 extensions, got %d", len(exts))
	}

	// Sorted for stable display
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Errorf("Extensions not sorted: %s before %s", exts[i-1], exts[i])
		}
	}

	for _, ext := range exts {
		if !RecognizedPath("file" + ext) {
			t.Errorf("Extension %s from Extensions() is not recognized", ext)
		}
	}
}
