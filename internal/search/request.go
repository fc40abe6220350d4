package search

// ReleaseType tags what kind of release is being searched for.
type ReleaseType string

const (
	ReleaseTypeAlbum  ReleaseType = "Album"
	ReleaseTypeEP     ReleaseType = "EP"
	ReleaseTypeSingle ReleaseType = "Single"
)

// Request is the caller's search input. The zero value of optional
// fields means "unknown".
type Request struct {
	Artist      string
	Album       string
	Year        int
	TrackCount  int
	ReleaseType ReleaseType
	Aliases     []string // alternate artist names, most trusted first
	Tracks      []string // known track titles
	Interactive bool
}

// Query is the value a strategy produces: one concrete search to issue
// against the backend. Immutable; consumed exactly once by the
// executor.
type Query struct {
	Artist          string
	Album           string
	Text            string
	Interactive     bool
	ExpandDirectory bool
	ExpectedTracks  int
}
