package main

import "testing"

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"resume.pdf", "application/pdf"},
		{"scan.PNG", "image/png"},
		{"photo.jpeg", "image/jpeg"},
		{"photo.jpg", "image/jpeg"},
		{"scan.tiff", "image/tiff"},
		{"resume.txt", "text/plain"},
		{"resume", "text/plain"},
	}

	for _, tt := range tests {
		if got := mimeTypeFor(tt.path); got != tt.want {
			t.Errorf("mimeTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
