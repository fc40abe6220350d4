package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cratedig/cratedig/internal/config"
	"github.com/cratedig/cratedig/internal/errmsg"
	"github.com/cratedig/cratedig/internal/history"
	"github.com/cratedig/cratedig/internal/musicbrainz"
	"github.com/cratedig/cratedig/internal/release"
	"github.com/cratedig/cratedig/internal/search"
	"github.com/cratedig/cratedig/internal/slskd"
)

func init() {
	cmdRoot.AddCommand(cmdSearch())
}

func cmdSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "search",
		Short:        "Search for an album and rank the results",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artist, _ := cmd.Flags().GetString("artist")
			album, _ := cmd.Flags().GetString("album")
			year, _ := cmd.Flags().GetInt("year")
			trackCount, _ := cmd.Flags().GetInt("tracks")
			releaseType, _ := cmd.Flags().GetString("type")
			noEnrich, _ := cmd.Flags().GetBool("no-enrich")
			download, _ := cmd.Flags().GetBool("download")
			limit, _ := cmd.Flags().GetInt("limit")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			}
			if !cfg.HasSlskdConfig() {
				return errors.New("slskd is not configured; set slskd.url and slskd.apikey in config.toml")
			}

			req := search.Request{
				Artist:      artist,
				Album:       album,
				Year:        year,
				TrackCount:  trackCount,
				ReleaseType: parseReleaseType(releaseType),
			}

			if !noEnrich && cfg.MusicBrainzEnabled() {
				enrichRequest(ctx, cfg, &req)
			}

			client := slskd.NewClient(cfg.Slskd.URL, cfg.Slskd.APIKey, log)
			searcher := search.NewSearcher(client, cfg.SearchSettings(), log)

			candidates, stats, err := searcher.SearchWithStats(ctx, req)
			if err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpSearchExecute, req.Artist+" "+req.Album, err))
			}
			entryID := recordHistory(ctx, cfg, req, stats, candidates)

			if len(candidates) == 0 {
				fmt.Println("No results.")
				return nil
			}

			if limit > 0 && len(candidates) > limit {
				candidates = candidates[:limit]
			}
			printCandidates(candidates)

			if download {
				best := candidates[0]
				if err := client.Download(ctx, best.Username, best.Files); err != nil {
					return errors.New(errmsg.FormatWith(errmsg.OpDownloadQueue, best.Username, err))
				}
				fmt.Printf("Queued %d files from %s\n", len(best.Files), best.Username)
				markDownloaded(ctx, cfg, entryID)
			}

			return nil
		},
	}

	cmd.Flags().String("artist", "", "artist name (empty for various-artists releases)")
	cmd.Flags().String("album", "", "album title")
	cmd.Flags().Int("year", 0, "release year")
	cmd.Flags().Int("tracks", 0, "expected track count")
	cmd.Flags().String("type", "album", "release type: album, ep or single")
	cmd.Flags().Bool("no-enrich", false, "skip MusicBrainz metadata enrichment")
	cmd.Flags().Bool("download", false, "queue the best candidate for download")
	cmd.Flags().Int("limit", 10, "maximum candidates to display")
	_ = cmd.MarkFlagRequired("album")

	return cmd
}

// enrichRequest fills gaps in the request from MusicBrainz. Lookup
// failures leave the request as the user typed it.
func enrichRequest(ctx context.Context, cfg *config.Config, req *search.Request) {
	mb := musicbrainz.NewClient()
	albumsOnly := cfg.MusicBrainz.AlbumsOnly == nil || *cfg.MusicBrainz.AlbumsOnly

	info, err := mb.Resolve(ctx, req.Artist, req.Album, albumsOnly)
	if err != nil {
		log.Warn().Err(err).Msg(string(errmsg.OpMetadataLookup))
		return
	}

	if req.Artist == "" && info.Artist != "" {
		req.Artist = info.Artist
	}
	if req.Year == 0 {
		req.Year = info.Year
	}
	if req.TrackCount == 0 {
		req.TrackCount = info.TrackCount
	}
	if req.ReleaseType == search.ReleaseTypeAlbum && info.ReleaseType != "" {
		req.ReleaseType = parseReleaseType(info.ReleaseType)
	}
	req.Tracks = info.Tracks
	req.Aliases = info.Aliases

	log.Debug().Str("artist", req.Artist).Str("album", req.Album).Int("year", req.Year).
		Int("tracks", req.TrackCount).Msg("request enriched from MusicBrainz")
}

func parseReleaseType(s string) search.ReleaseType {
	switch strings.ToLower(s) {
	case "ep":
		return search.ReleaseTypeEP
	case "single":
		return search.ReleaseTypeSingle
	default:
		return search.ReleaseTypeAlbum
	}
}

func printCandidates(candidates []release.Candidate) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tUSER\tALBUM\tCODEC\tFILES\tSIZE\tSPEED\tQUEUE")
	for _, c := range candidates {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s/s\t%d\n",
			c.Score,
			c.Username,
			candidateTitle(c),
			codecLabel(c),
			c.AudioFiles,
			humanize.IBytes(uint64(c.TotalSize)),
			humanize.IBytes(uint64(c.UploadSpeed)),
			c.QueueLength,
		)
	}
	w.Flush()
}

func candidateTitle(c release.Candidate) string {
	title := c.Album
	if c.Artist != "" {
		title = c.Artist + " - " + title
	}
	if c.Year != "" {
		title += " (" + c.Year + ")"
	}
	return title
}

func codecLabel(c release.Candidate) string {
	if c.Codec == "" {
		return "?"
	}
	label := strings.ToUpper(c.Codec)
	if c.BitRate > 0 {
		label = fmt.Sprintf("%s %d", label, c.BitRate)
	}
	return label
}

// recordHistory persists the outcome; failures are logged, never fatal.
func recordHistory(ctx context.Context, cfg *config.Config, req search.Request, stats search.Stats, candidates []release.Candidate) int64 {
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Warn().Err(err).Msg(string(errmsg.OpHistoryOpen))
		return 0
	}
	defer store.Close()

	entry := history.Entry{
		Artist:         req.Artist,
		Album:          req.Album,
		Year:           req.Year,
		QueryCount:     stats.QueriesIssued,
		CandidateCount: len(candidates),
	}
	if len(candidates) > 0 {
		entry.BestUsername = candidates[0].Username
		entry.BestDirectory = candidates[0].Directory
		entry.BestScore = candidates[0].Score
	}

	id, err := store.Record(ctx, entry)
	if err != nil {
		log.Warn().Err(err).Msg(string(errmsg.OpHistorySave))
		return 0
	}
	return id
}

func markDownloaded(ctx context.Context, cfg *config.Config, entryID int64) {
	if entryID == 0 {
		return
	}
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return
	}
	defer store.Close()
	if err := store.MarkDownloaded(ctx, entryID); err != nil {
		log.Warn().Err(err).Msg(string(errmsg.OpHistorySave))
	}
}
