package metadata

import (
	"fmt"
	"strings"

	"go.senan.xyz/taglib"
)

// TrackInfo holds the tag fields lyrics resolution needs. Album and
// Duration are nil when the file carries no such information.
type TrackInfo struct {
	Title    string
	Artists  []string
	Album    *string
	Duration *float64 // seconds
}

// ArtistName joins all artist tags into the display form LRCLIB expects.
func (t TrackInfo) ArtistName() string {
	return strings.Join(t.Artists, ", ")
}

// ReadTrack reads the tags and audio properties of an audio file. A file
// whose tags cannot be read is an error; missing individual fields are
// not. Duration comes from the stream properties, not a tag, and is
// omitted when unavailable.
func ReadTrack(path string) (TrackInfo, error) {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return TrackInfo{}, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	info := TrackInfo{
		Title:   firstTag(tags, taglib.Title),
		Artists: nonEmpty(tags[taglib.Artist]),
	}

	if album := firstTag(tags, taglib.Album); album != "" {
		info.Album = &album
	}

	if props, err := taglib.ReadProperties(path); err == nil && props.Length > 0 {
		secs := props.Length.Seconds()
		info.Duration = &secs
	}

	return info, nil
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
