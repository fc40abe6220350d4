package release

import (
	"github.com/cratedig/cratedig/internal/slskd"
	"github.com/cratedig/cratedig/internal/textnorm"
)

// Fuzzy thresholds for trusting query-supplied metadata over the
// folder-parsed values. Calibration constants, tuned empirically.
const (
	artistTokenThreshold   = 90
	artistPartialThreshold = 85
	albumTokenThreshold    = 85
	albumPartialThreshold  = 80
	combinedThreshold      = 85
)

// QueryRef carries the search-side metadata a folder listing is
// reconciled against.
type QueryRef struct {
	Artist         string // empty for various-artists searches
	Album          string
	Year           string
	VolumeNumber   int // non-zero when the query album carries a volume phrase
	ExpectedTracks int
}

// dirEntry is a single directory from one peer's search response.
type dirEntry struct {
	Username       string
	Directory      string
	Files          []slskd.File
	HasFreeSlot    bool
	QueueLength    int
	UploadSpeed    int
	CollectionSize int
}

// Reconcile merges raw peer responses with the query that produced
// them, yielding one candidate per remote directory. Scores are not
// assigned here; see CalculatePriority.
func Reconcile(responses []slskd.SearchResponse, ref QueryRef) []Candidate {
	allDirs := groupResponses(responses)

	candidates := make([]Candidate, 0, len(allDirs))
	for _, d := range allDirs {
		c := reconcileDir(d, ref)
		if c.AudioFiles == 0 {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// groupResponses flattens responses into per-directory entries. Locked
// files are folded in so availability can be judged per folder.
func groupResponses(responses []slskd.SearchResponse) []dirEntry {
	var out []dirEntry
	for i := range responses {
		resp := &responses[i]

		files := make([]slskd.File, 0, len(resp.Files)+len(resp.LockedFiles))
		files = append(files, resp.Files...)
		for _, f := range resp.LockedFiles {
			f.IsLocked = true
			files = append(files, f)
		}

		groups := make(map[string][]slskd.File)
		var order []string
		for _, f := range files {
			dir := parentDirectory(f.Filename)
			if _, seen := groups[dir]; !seen {
				order = append(order, dir)
			}
			groups[dir] = append(groups[dir], f)
		}

		for _, dir := range order {
			out = append(out, dirEntry{
				Username:       resp.Username,
				Directory:      dir,
				Files:          groups[dir],
				HasFreeSlot:    resp.HasFreeSlot,
				QueueLength:    resp.QueueLength,
				UploadSpeed:    resp.UploadSpeed,
				CollectionSize: resp.FileCount,
			})
		}
	}
	return out
}

// reconcileDir resolves final artist/album/year for one directory and
// aggregates the per-file audio attributes.
func reconcileDir(d dirEntry, ref QueryRef) Candidate {
	parsed := ParseFolderName(d.Directory)
	folderName := lastPathSegment(d.Directory)

	c := Candidate{
		Username:       d.Username,
		Directory:      d.Directory,
		HasFreeSlot:    d.HasFreeSlot,
		QueueLength:    d.QueueLength,
		UploadSpeed:    d.UploadSpeed,
		CollectionSize: d.CollectionSize,
	}

	artistMatched := queryArtistMatches(folderName, parsed, ref)
	albumMatched := queryAlbumMatches(folderName, parsed, ref)
	if !artistMatched && !albumMatched && ref.Artist != "" && ref.Album != "" {
		// Combined fallback: the folder name covers "artist album" as a
		// whole even though neither field matched on its own.
		if textnorm.PartialRatio(ref.Artist+" "+ref.Album, folderName) > combinedThreshold {
			artistMatched = true
			albumMatched = true
		}
	}

	c.Artist = pick(artistMatched, ref.Artist, parsed.Artist)
	c.Album = pick(albumMatched, ref.Album, parsed.Album)
	c.Year = pick(ref.Year != "" && parsed.Year == ref.Year, ref.Year, parsed.Year)

	aggregateFiles(&c, d.Files)
	return c
}

// queryArtistMatches decides whether the query artist is recognizable
// in the folder.
func queryArtistMatches(folderName string, parsed Folder, ref QueryRef) bool {
	if ref.Artist == "" {
		return false
	}
	if parsed.Artist != "" && textnorm.TokenSetRatio(ref.Artist, parsed.Artist) > artistTokenThreshold {
		return true
	}
	if textnorm.TokenSetRatio(ref.Artist, folderName) > artistTokenThreshold {
		return true
	}
	return textnorm.PartialRatio(ref.Artist, folderName) > artistPartialThreshold
}

// queryAlbumMatches decides whether the query album is recognizable in
// the folder. Volume-bearing queries additionally require the numbering
// to agree: "Vol. 3" must never reconcile against a "Vol. 4" folder no
// matter how similar the base titles are.
func queryAlbumMatches(folderName string, parsed Folder, ref QueryRef) bool {
	if ref.Album == "" {
		return false
	}
	if ref.VolumeNumber > 0 {
		folderVolume := textnorm.VolumeNumber(parsed.Album)
		if folderVolume == 0 {
			folderVolume = textnorm.VolumeNumber(folderName)
		}
		if folderVolume != 0 && folderVolume != ref.VolumeNumber {
			return false
		}
	}
	if parsed.Album != "" && textnorm.TokenSetRatio(ref.Album, parsed.Album) > albumTokenThreshold {
		return true
	}
	if textnorm.TokenSetRatio(ref.Album, folderName) > albumTokenThreshold {
		return true
	}
	return textnorm.PartialRatio(ref.Album, folderName) > albumPartialThreshold
}

// pick prefers the query value when it matched, then the folder value,
// then whichever is non-empty.
func pick(matched bool, query, folder string) string {
	if matched && query != "" {
		return query
	}
	if folder != "" {
		return folder
	}
	return query
}

// aggregateFiles fills the candidate's audio attributes from its file
// group: codec from the most frequent audio extension, bitrate / bit
// depth / sample rate from the most frequent non-zero value, and an
// estimated bitrate from size and duration when none is reported.
func aggregateFiles(c *Candidate, files []slskd.File) {
	codecCounts := make(map[string]int)
	bitRateCounts := make(map[int]int)
	bitDepthCounts := make(map[int]int)
	sampleRateCounts := make(map[int]int)

	for _, f := range files {
		c.TotalFiles++
		if f.IsLocked {
			c.LockedFiles++
		}

		codec := audioCodec(f)
		if codec == "" {
			continue
		}
		c.AudioFiles++
		c.TotalSize += f.Size
		c.TotalDuration += f.Length
		codecCounts[codec]++
		if f.BitRate > 0 {
			bitRateCounts[f.BitRate]++
		}
		if f.BitDepth > 0 {
			bitDepthCounts[f.BitDepth]++
		}
		if f.SampleRate > 0 {
			sampleRateCounts[f.SampleRate]++
		}

		if !f.IsLocked {
			c.Files = append(c.Files, f)
		}
	}

	c.Codec = mostFrequent(codecCounts)
	c.BitRate = mostFrequentInt(bitRateCounts)
	c.BitDepth = mostFrequentInt(bitDepthCounts)
	c.SampleRate = mostFrequentInt(sampleRateCounts)

	if c.BitRate == 0 && c.TotalDuration > 0 {
		c.BitRate = estimateBitRate(c.TotalSize, c.TotalDuration, c.Codec)
	}
}

// standardBitRates are the usual lossy encoder steps, in kbps.
var standardBitRates = []int{32, 64, 96, 112, 128, 160, 192, 224, 256, 320}

// estimateBitRate derives kbps from total byte size and duration,
// snapping to the closest standard step for lossy codecs.
func estimateBitRate(size int64, durationSec int, codec string) int {
	if durationSec <= 0 {
		return 0
	}
	kbps := int(size * 8 / int64(durationSec) / 1000)
	if kbps <= 0 {
		return 0
	}
	if !isLossyCodec(codec) {
		return kbps
	}

	best := standardBitRates[0]
	for _, step := range standardBitRates {
		if abs(kbps-step) < abs(kbps-best) {
			best = step
		}
	}
	return best
}

func mostFrequent(counts map[string]int) string {
	var maxCount int
	var maxKey string
	for key, count := range counts {
		if count > maxCount {
			maxCount = count
			maxKey = key
		}
	}
	return maxKey
}

func mostFrequentInt(counts map[int]int) int {
	var maxCount, maxKey int
	for key, count := range counts {
		if count > maxCount {
			maxCount = count
			maxKey = key
		}
	}
	return maxKey
}

func lastPathSegment(dir string) string {
	segments := splitPath(dir)
	if len(segments) == 0 {
		return dir
	}
	return segments[len(segments)-1]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
