// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Configuration
	OpConfigLoad Op = "load configuration"

	// Search operations
	OpSearchStart   Op = "start search"
	OpSearchPoll    Op = "poll search status"
	OpSearchFetch   Op = "fetch search results"
	OpSearchCancel  Op = "cancel search"
	OpSearchExecute Op = "run search"

	// Download operations
	OpDownloadQueue Op = "queue download"

	// Metadata operations
	OpMetadataLookup Op = "look up release metadata"

	// History operations
	OpHistoryOpen Op = "open search history"
	OpHistorySave Op = "record search history"
	OpHistoryList Op = "list search history"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
