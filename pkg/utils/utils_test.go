package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"song.MP3", true},
		{"album/track.flac", true},
		{"track.opus", true},
		{"track.ogg", true},
		{"cover.jpg", false},
		{"lyrics.lrc", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsAudioFile(tt.path); got != tt.want {
			t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLrcPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"song.mp3", "song.lrc"},
		{filepath.Join("a", "b", "track.flac"), filepath.Join("a", "b", "track.lrc")},
		{"track.v2.opus", "track.v2.lrc"},
		{"noext", "noext.lrc"},
	}

	for _, tt := range tests {
		if got := LrcPath(tt.path); got != tt.want {
			t.Errorf("LrcPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.lrc")

	if err := WriteText(path, "[00:01.00]hi"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[00:01.00]hi" {
		t.Errorf("content = %q", data)
	}

	// Overwrites existing content.
	if err := WriteText(path, "[00:02.00]bye"); err != nil {
		t.Fatalf("WriteText overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "[00:02.00]bye" {
		t.Errorf("content after overwrite = %q", data)
	}
}

func TestWriteTextEmptyPath(t *testing.T) {
	if err := WriteText("", "x"); err == nil {
		t.Fatal("expected error for empty path")
	}
}
