package release

import "testing"

func TestCalculatePriorityZeroCases(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
	}{
		{"empty folder", Candidate{}},
		{"fully locked", Candidate{TotalFiles: 10, LockedFiles: 10, AudioFiles: 10}},
		{"half locked", Candidate{TotalFiles: 10, LockedFiles: 5, AudioFiles: 10}},
		{"too few tracks", Candidate{TotalFiles: 6, AudioFiles: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePriority(&tt.c, 12); got != 0 {
				t.Errorf("CalculatePriority = %d, want 0", got)
			}
		})
	}
}

// Exact track match with full availability and an empty queue earns the
// full track-fit, availability and queue terms. Calibration check, not a
// derived invariant.
func TestCalculatePriorityExactMatch(t *testing.T) {
	c := Candidate{
		TotalFiles: 12,
		AudioFiles: 12,
	}
	got := CalculatePriority(&c, 12)
	want := maxTrackScore + maxAvailability + maxQueueScore // 6000
	if got != want {
		t.Errorf("CalculatePriority = %d, want %d", got, want)
	}
}

func TestCalculatePriorityMonotonicInAvailability(t *testing.T) {
	prev := -1
	for locked := 4; locked >= 0; locked-- {
		c := Candidate{
			TotalFiles:  12,
			AudioFiles:  12,
			LockedFiles: locked,
		}
		got := CalculatePriority(&c, 12)
		if got < prev {
			t.Errorf("score decreased as availability rose: locked=%d score=%d prev=%d", locked, got, prev)
		}
		prev = got
	}
}

func TestCalculatePriorityBounded(t *testing.T) {
	c := Candidate{
		TotalFiles:     12,
		AudioFiles:     12,
		HasFreeSlot:    true,
		UploadSpeed:    1 << 40,
		CollectionSize: 1 << 30,
	}
	got := CalculatePriority(&c, 12)
	if got < 0 || got > MaxScore {
		t.Fatalf("score %d out of [0, %d]", got, MaxScore)
	}
	// All terms maxed: 2500+2000+1800+1500+800+300.
	if got != 8900 {
		t.Errorf("fully maxed score = %d, want 8900", got)
	}
}

func TestTrackFitScore(t *testing.T) {
	exact := trackFitScore(12, 12)
	missing := trackFitScore(10, 12)
	extra := trackFitScore(14, 12)

	if exact != maxTrackScore {
		t.Errorf("exact fit = %f, want %d", exact, maxTrackScore)
	}
	// Missing tracks fall off harder than extras at the same distance.
	if missing >= extra {
		t.Errorf("missing (%f) should score below extra (%f)", missing, extra)
	}
	if unknown := trackFitScore(12, 0); unknown != maxTrackScore/2 {
		t.Errorf("unknown expectation = %f, want neutral %d", unknown, maxTrackScore/2)
	}
}

func TestRankOrdersDescending(t *testing.T) {
	candidates := []Candidate{
		{Username: "slow", TotalFiles: 12, AudioFiles: 12, UploadSpeed: 1000},
		{Username: "locked", TotalFiles: 12, AudioFiles: 12, LockedFiles: 12},
		{Username: "fast", TotalFiles: 12, AudioFiles: 12, UploadSpeed: 900000, HasFreeSlot: true},
	}

	ranked := Rank(candidates, 12)
	if ranked[0].Username != "fast" || ranked[1].Username != "slow" || ranked[2].Username != "locked" {
		t.Errorf("order = %s, %s, %s", ranked[0].Username, ranked[1].Username, ranked[2].Username)
	}
	if ranked[2].Score != 0 {
		t.Errorf("fully locked candidate score = %d, want 0", ranked[2].Score)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("not sorted descending at %d", i)
		}
	}
}
