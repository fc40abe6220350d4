// Package release reconciles raw slskd folder listings into release
// candidates and ranks them by desirability.
package release

import (
	"strings"

	"github.com/cratedig/cratedig/internal/slskd"
)

// Candidate is one remote folder resolved into a release. Built once by
// Reconcile and immutable afterwards.
type Candidate struct {
	Artist string
	Album  string
	Year   string

	Codec      string
	BitRate    int // kbps
	BitDepth   int
	SampleRate int

	TotalSize     int64
	TotalDuration int // seconds

	// Retrieval handle for the download layer.
	Username  string
	Directory string
	Files     []slskd.File

	// Peer attributes feeding the ranker.
	TotalFiles     int // all files in the folder, locked included
	AudioFiles     int
	LockedFiles    int
	HasFreeSlot    bool
	QueueLength    int
	UploadSpeed    int // bytes per second
	CollectionSize int // peer's total shared file count

	Score int
}

// losslessExtensions maps lossless audio extensions to codec names.
var losslessExtensions = map[string]string{
	"flac": "FLAC",
	"wav":  "WAV",
	"aiff": "AIFF",
	"aif":  "AIFF",
	"alac": "ALAC",
	"ape":  "APE",
	"wv":   "WavPack",
	"tta":  "TTA",
}

// lossyExtensions maps lossy audio extensions to codec names.
var lossyExtensions = map[string]string{
	"mp3":  "MP3",
	"m4a":  "AAC",
	"aac":  "AAC",
	"ogg":  "OGG",
	"opus": "Opus",
	"wma":  "WMA",
	"mpc":  "Musepack",
}

// audioCodec returns the codec name for a file, or "" for non-audio.
func audioCodec(f slskd.File) string {
	ext := fileExtension(f)
	if name, ok := losslessExtensions[ext]; ok {
		return name
	}
	if name, ok := lossyExtensions[ext]; ok {
		return name
	}
	return ""
}

// isLossyCodec reports whether the codec name belongs to a lossy format.
func isLossyCodec(codec string) bool {
	for _, name := range lossyExtensions {
		if name == codec {
			return true
		}
	}
	return false
}

// fileExtension returns the lowercase extension without dot, falling
// back to the filename when the Extension field is empty.
func fileExtension(f slskd.File) string {
	ext := strings.ToLower(strings.TrimPrefix(f.Extension, "."))
	if ext != "" {
		return ext
	}
	if idx := strings.LastIndex(f.Filename, "."); idx != -1 {
		return strings.ToLower(f.Filename[idx+1:])
	}
	return ""
}

// parentDirectory extracts the parent directory from a path. Handles
// both Unix (/) and Windows (\) separators since slskd returns paths
// from peers on any OS.
func parentDirectory(path string) string {
	lastSlash := strings.LastIndex(path, "/")
	lastBackslash := strings.LastIndex(path, "\\")

	lastSep := max(lastSlash, lastBackslash)
	if lastSep <= 0 {
		return "."
	}
	return path[:lastSep]
}
