package release

import (
	"testing"

	"github.com/cratedig/cratedig/internal/slskd"
)

func flacFile(dir, name string, bitRate int) slskd.File {
	return slskd.File{
		Filename:  dir + "\\" + name,
		Extension: ".flac",
		Size:      30_000_000,
		BitRate:   bitRate,
		Length:    240,
	}
}

func TestReconcileTrustsMatchingQuery(t *testing.T) {
	dir := `@@share\Pink Floyd - The Wall (1979) [FLAC]`
	responses := []slskd.SearchResponse{
		{
			Username:    "goodpeer",
			FileCount:   12000,
			HasFreeSlot: true,
			UploadSpeed: 500000,
			Files: []slskd.File{
				flacFile(dir, "01 - In the Flesh.flac", 1040),
				flacFile(dir, "02 - The Thin Ice.flac", 1040),
				flacFile(dir, "03 - Another Brick in the Wall.flac", 990),
			},
		},
	}

	got := Reconcile(responses, QueryRef{Artist: "Pink Floyd", Album: "The Wall"})
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d candidates, want 1", len(got))
	}

	c := got[0]
	if c.Artist != "Pink Floyd" || c.Album != "The Wall" {
		t.Errorf("resolved %q / %q, want query-supplied values", c.Artist, c.Album)
	}
	if c.Year != "1979" {
		t.Errorf("year = %q, want 1979", c.Year)
	}
	if c.Codec != "FLAC" {
		t.Errorf("codec = %q, want FLAC", c.Codec)
	}
	if c.BitRate != 1040 {
		t.Errorf("bitrate = %d, want most frequent 1040", c.BitRate)
	}
	if c.AudioFiles != 3 || c.TotalFiles != 3 {
		t.Errorf("file counts = %d/%d, want 3/3", c.AudioFiles, c.TotalFiles)
	}
	if len(c.Files) != 3 {
		t.Errorf("retrieval subset = %d files, want 3", len(c.Files))
	}
}

func TestReconcilePrefersFolderOnMismatch(t *testing.T) {
	dir := `music\Aphex Twin - Drukqs (2001)`
	responses := []slskd.SearchResponse{
		{
			Username: "otherpeer",
			Files: []slskd.File{
				flacFile(dir, "01.flac", 900),
			},
		},
	}

	got := Reconcile(responses, QueryRef{Artist: "Pink Floyd", Album: "The Wall"})
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d candidates, want 1", len(got))
	}
	if got[0].Artist != "Aphex Twin" || got[0].Album != "Drukqs" {
		t.Errorf("resolved %q / %q, want folder-parsed values", got[0].Artist, got[0].Album)
	}
}

func TestReconcileVolumeNumberGuard(t *testing.T) {
	dir := `music\Various - Now That's What I Call Music Vol. 4`
	responses := []slskd.SearchResponse{
		{
			Username: "peer",
			Files:    []slskd.File{flacFile(dir, "01.flac", 0)},
		},
	}

	ref := QueryRef{
		Album:        "Now That's What I Call Music Vol. 3",
		VolumeNumber: 3,
	}
	got := Reconcile(responses, ref)
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d candidates, want 1", len(got))
	}
	// Base titles are near-identical but the numbering disagrees, so the
	// folder value must win.
	if got[0].Album != "Now That's What I Call Music Vol. 4" {
		t.Errorf("album = %q, want folder-parsed Vol. 4 title", got[0].Album)
	}
}

func TestReconcileSkipsNonAudioDirs(t *testing.T) {
	responses := []slskd.SearchResponse{
		{
			Username: "peer",
			Files: []slskd.File{
				{Filename: `share\scans\front.jpg`, Extension: ".jpg"},
				{Filename: `share\scans\back.jpg`, Extension: ".jpg"},
			},
		},
	}

	if got := Reconcile(responses, QueryRef{Artist: "x", Album: "y"}); len(got) != 0 {
		t.Errorf("Reconcile returned %d candidates for image-only dir, want 0", len(got))
	}
}

func TestReconcileLockedFiles(t *testing.T) {
	dir := `share\Album`
	responses := []slskd.SearchResponse{
		{
			Username:    "peer",
			Files:       []slskd.File{flacFile(dir, "01.flac", 900)},
			LockedFiles: []slskd.File{flacFile(dir, "02.flac", 900)},
		},
	}

	got := Reconcile(responses, QueryRef{})
	if len(got) != 1 {
		t.Fatalf("Reconcile returned %d candidates, want 1", len(got))
	}
	c := got[0]
	if c.TotalFiles != 2 || c.LockedFiles != 1 {
		t.Errorf("counts = total %d locked %d, want 2/1", c.TotalFiles, c.LockedFiles)
	}
	if len(c.Files) != 1 {
		t.Errorf("retrieval subset includes locked files: %d, want 1", len(c.Files))
	}
}

func TestEstimateBitRate(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		duration int
		codec    string
		want     int
	}{
		{"lossy snaps to standard step", 4_000_000, 100, "MP3", 320},
		{"lossy rounds down to 192", 2_500_000, 100, "MP3", 192},
		{"lossless keeps raw estimate", 13_000_000, 100, "FLAC", 1040},
		{"zero duration", 1000, 0, "MP3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := estimateBitRate(tt.size, tt.duration, tt.codec); got != tt.want {
				t.Errorf("estimateBitRate = %d, want %d", got, tt.want)
			}
		})
	}
}
