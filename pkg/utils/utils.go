package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported audio file extensions
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".opus": true,
	".wav":  true,
	".aac":  true,
	".ogg":  true,
}

// IsAudioFile reports whether the path has a supported audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// LrcPath returns the sibling .lrc path for an audio file, replacing
// its extension ("album/track.mp3" becomes "album/track.lrc").
func LrcPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return audioPath[:len(audioPath)-len(ext)] + ".lrc"
}

// WriteText writes UTF-8 text to a file, creating or overwriting it.
func WriteText(path, text string) error {
	if path == "" {
		return fmt.Errorf("destination path cannot be empty")
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
