package slskd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", zerolog.Nop())
}

func TestStartSearch(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v0/searches" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("X-API-Key = %q", got)
		}

		var body struct {
			SearchText      string `json:"searchText"`
			FileLimit       int    `json:"fileLimit"`
			FilterResponses bool   `json:"filterResponses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.SearchText != "radiohead ok computer" {
			t.Errorf("searchText = %q", body.SearchText)
		}
		if body.FileLimit != 10000 {
			t.Errorf("fileLimit = %d", body.FileLimit)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Search{ID: "abc-123", State: "InProgress"})
	})

	id, err := c.StartSearch(context.Background(), "radiohead ok computer", SearchOptions{FileLimit: 10000})
	if err != nil {
		t.Fatalf("StartSearch: %v", err)
	}
	if id != "abc-123" {
		t.Errorf("id = %q", id)
	}
}

func TestGetStatus(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/searches/abc-123" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Search{
			ID: "abc-123", State: "Completed, ResponseLimitReached", FileCount: 420,
		})
	})

	status, err := c.GetStatus(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.FileCount != 420 {
		t.Errorf("FileCount = %d", status.FileCount)
	}
	if !SearchState(status.State).IsComplete() {
		t.Error("compound completed state should be terminal")
	}
}

func TestGetResults(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/searches/abc-123/responses" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]SearchResponse{
			{
				Username:    "alice",
				FileCount:   2,
				HasFreeSlot: true,
				Files: []File{
					{Filename: "music\\a.flac", Size: 30000000},
					{Filename: "music\\b.flac", Size: 28000000},
				},
			},
		})
	})

	results, err := c.GetResults(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(results) != 1 || results[0].Username != "alice" || len(results[0].Files) != 2 {
		t.Errorf("results = %+v", results)
	}
}

func TestNotFoundMapping(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized} {
		c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := c.GetStatus(context.Background(), "gone")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("status %d: err = %v, want ErrNotFound", status, err)
		}
	}
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})
	_, err := c.GetStatus(context.Background(), "x")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want a hard failure", err)
	}
}

func TestCancelSearchToleratesMissing(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
	})
	if err := c.CancelSearch(context.Background(), "gone"); err != nil {
		t.Fatalf("CancelSearch should tolerate 404: %v", err)
	}
}

func TestDownload(t *testing.T) {
	files := []File{{Filename: "music\\a flac.flac", Size: 30000000}}

	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/transfers/downloads/peer one" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var got []File
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(got) != 1 || got[0].Filename != files[0].Filename {
			t.Errorf("body = %+v", got)
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.Download(context.Background(), "peer one", files); err != nil {
		t.Fatalf("Download: %v", err)
	}
}
