// Package slskd provides a client for the slskd API.
package slskd

import "strings"

// SearchOptions tunes a search request.
type SearchOptions struct {
	FileLimit       int  `json:"fileLimit,omitempty"`
	ResponseLimit   int  `json:"responseLimit,omitempty"`
	FilterResponses bool `json:"filterResponses"`
	TimeoutMS       int  `json:"searchTimeout,omitempty"`
}

// Search represents a search record on slskd.
type Search struct {
	ID            string `json:"id"`
	SearchText    string `json:"searchText"`
	Token         int    `json:"token"`
	State         string `json:"state"` // InProgress, Completed, etc.
	FileCount     int    `json:"fileCount"`
	ResponseCount int    `json:"responseCount"`
}

// SearchResponse represents one peer's response to a search.
type SearchResponse struct {
	Username    string `json:"username"`
	FileCount   int    `json:"fileCount"`
	LockedCount int    `json:"lockedFileCount"`
	HasFreeSlot bool   `json:"hasFreeUploadSlot"`
	QueueLength int    `json:"queueLength"`
	UploadSpeed int    `json:"uploadSpeed"` // bytes per second
	Files       []File `json:"files"`
	LockedFiles []File `json:"lockedFiles"`
}

// File represents a file in search results.
type File struct {
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	Code       int    `json:"code"`
	Extension  string `json:"extension"`
	BitRate    int    `json:"bitRate"`
	BitDepth   int    `json:"bitDepth"`
	SampleRate int    `json:"sampleRate"`
	Length     int    `json:"length"` // duration in seconds
	IsLocked   bool   `json:"isLocked"`
}

// SearchState represents the state of a search.
type SearchState string

const (
	SearchStateNone       SearchState = "None"
	SearchStateRequested  SearchState = "Requested"
	SearchStateInProgress SearchState = "InProgress"
	SearchStateCompleted  SearchState = "Completed"
	SearchStateTimedOut   SearchState = "TimedOut"
	SearchStateCancelled  SearchState = "Cancelled"
	SearchStateErrored    SearchState = "Errored"
)

// IsComplete returns true if the search is in a terminal state.
// States can be compound (e.g., "Completed, ResponseLimitReached").
func (s SearchState) IsComplete() bool {
	state := string(s)
	return strings.Contains(state, "Completed") ||
		strings.Contains(state, "TimedOut") ||
		strings.Contains(state, "Cancelled") ||
		strings.Contains(state, "Errored")
}
