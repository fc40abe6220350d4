package release

import (
	"math"
	"sort"
)

// Scoring weights. Empirically tuned calibration values; the total is
// bounded to [0, MaxScore].
const (
	MaxScore = 10000

	maxTrackScore      = 2500
	maxAvailability    = 2000
	maxSpeedScore      = 1800
	maxQueueScore      = 1500
	freeSlotBonus      = 800
	maxCollectionBonus = 300

	queueDecayBase = 0.94
	queueDecayCap  = 40

	// Gaussian widths for the track-count fit: a folder missing tracks
	// falls off harder than one with extras.
	missingTrackSigma = 2.0
	extraTrackSigma   = 5.0

	// Reference points for the log-scaled terms.
	speedCeilingKBps      = 100000.0 // ~100 MB/s, saturates the speed term
	collectionCeilingFile = 50000.0
)

// CalculatePriority computes the desirability score for a candidate.
// Zero means "do not bother": the folder is fully or mostly locked, or
// covers too few of the expected tracks.
func CalculatePriority(c *Candidate, expectedTracks int) int {
	if c.TotalFiles == 0 || c.LockedFiles >= c.TotalFiles {
		return 0
	}

	available := c.TotalFiles - c.LockedFiles
	if available*2 <= c.TotalFiles {
		return 0
	}
	if expectedTracks > 0 && c.AudioFiles*2 <= expectedTracks {
		return 0
	}

	score := trackFitScore(c.AudioFiles, expectedTracks)

	ratio := float64(available) / float64(c.TotalFiles)
	score += ratio * ratio * maxAvailability

	score += speedScore(c.UploadSpeed)

	queue := c.QueueLength
	if queue > queueDecayCap {
		queue = queueDecayCap
	}
	score += maxQueueScore * math.Pow(queueDecayBase, float64(queue))

	if c.HasFreeSlot {
		score += freeSlotBonus
	}

	score += collectionBonus(c.CollectionSize)

	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return int(math.Round(score))
}

// trackFitScore rewards folders whose audio file count matches the
// expected track count, with Gaussian falloff. Unknown expectations get
// a neutral half weight.
func trackFitScore(audioFiles, expectedTracks int) float64 {
	if expectedTracks <= 0 {
		return maxTrackScore / 2
	}
	diff := float64(audioFiles - expectedTracks)
	sigma := extraTrackSigma
	if diff < 0 {
		sigma = missingTrackSigma
	}
	return maxTrackScore * math.Exp(-(diff*diff)/(2*sigma*sigma))
}

// speedScore log-scales the peer's reported upload speed.
func speedScore(bytesPerSec int) float64 {
	if bytesPerSec <= 0 {
		return 0
	}
	kbps := float64(bytesPerSec) / 1024
	scaled := math.Log1p(kbps) / math.Log1p(speedCeilingKBps)
	if scaled > 1 {
		scaled = 1
	}
	return scaled * maxSpeedScore
}

// collectionBonus gives a small preference to peers with large shares;
// they tend to be well-organized libraries rather than stray folders.
func collectionBonus(files int) float64 {
	if files <= 0 {
		return 0
	}
	scaled := math.Log1p(float64(files)) / math.Log1p(collectionCeilingFile)
	if scaled > 1 {
		scaled = 1
	}
	return scaled * maxCollectionBonus
}

// Rank scores every candidate and sorts descending. Ties break on
// upload speed, then on username for stable output.
func Rank(candidates []Candidate, expectedTracks int) []Candidate {
	for i := range candidates {
		candidates[i].Score = CalculatePriority(&candidates[i], expectedTracks)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].UploadSpeed != candidates[j].UploadSpeed {
			return candidates[i].UploadSpeed > candidates[j].UploadSpeed
		}
		return candidates[i].Username < candidates[j].Username
	})
	return candidates
}
