package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "github.com/krackeddevs/sprint-runner/internal/games/runner"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(NewServer(DefaultConfig(), store, nil).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("GET %s Content-Type = %q", url, ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func seedRuns(t *testing.T, store *storage.Store, scores ...int) []storage.RunRecord {
	t.Helper()
	var saved []storage.RunRecord
	for i, score := range scores {
		r, err := store.SaveRun(storage.RunRecord{
			GameID:          "sprint",
			Player:          "dev",
			Score:           score,
			SprintDay:       i + 1,
			FeaturesShipped: i,
			Cause:           "Bug",
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		saved = append(saved, r)
	}
	return saved
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]string
	if code := getJSON(t, ts.URL+"/api/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestGames(t *testing.T) {
	ts, store := newTestServer(t)
	seedRuns(t, store, 40, 90)

	var games []gameInfo
	if code := getJSON(t, ts.URL+"/api/games", &games); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	var found bool
	for _, g := range games {
		if g.ID == "sprint" {
			found = true
			if g.Title != "Sprint Runner" {
				t.Errorf("title = %q", g.Title)
			}
			if g.HighScore != 90 {
				t.Errorf("high score = %d, expected 90", g.HighScore)
			}
		}
	}
	if !found {
		t.Errorf("sprint missing from %+v", games)
	}
}

func TestGameRuns(t *testing.T) {
	ts, store := newTestServer(t)
	seedRuns(t, store, 10, 50, 30, 70)

	tests := []struct {
		name   string
		query  string
		status int
		scores []int
	}{
		{"default limit", "", http.StatusOK, []int{70, 50, 30, 10}},
		{"limited", "?limit=2", http.StatusOK, []int{70, 50}},
		{"capped", "?limit=1000", http.StatusOK, []int{70, 50, 30, 10}},
		{"zero", "?limit=0", http.StatusBadRequest, nil},
		{"garbage", "?limit=abc", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body runsResponse
			code := getJSON(t, ts.URL+"/api/games/sprint/runs"+tt.query, &body)
			if code != tt.status {
				t.Fatalf("status = %d, expected %d", code, tt.status)
			}
			if tt.status != http.StatusOK {
				return
			}
			if len(body.Runs) != len(tt.scores) {
				t.Fatalf("got %d runs, expected %d", len(body.Runs), len(tt.scores))
			}
			for i, want := range tt.scores {
				if body.Runs[i].Score != want {
					t.Errorf("run %d score = %d, expected %d", i, body.Runs[i].Score, want)
				}
			}
		})
	}
}

func TestEmptyRunsIsArray(t *testing.T) {
	ts, _ := newTestServer(t)

	var raw map[string]json.RawMessage
	if code := getJSON(t, ts.URL+"/api/games/sprint/runs", &raw); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if string(raw["runs"]) != "[]" {
		t.Errorf("runs = %s, expected []", raw["runs"])
	}
}

func TestUnknownGame(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{"/api/games/pong/runs", "/api/games/pong/stats"} {
		var body map[string]string
		if code := getJSON(t, ts.URL+path, &body); code != http.StatusNotFound {
			t.Errorf("%s status = %d, expected 404", path, code)
		}
		if body["error"] == "" {
			t.Errorf("%s returned no error message", path)
		}
	}
}

func TestGameStats(t *testing.T) {
	ts, store := newTestServer(t)
	seedRuns(t, store, 20, 60)

	var stats storage.GameStats
	if code := getJSON(t, ts.URL+"/api/games/sprint/stats", &stats); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if stats.RunsCount != 2 || stats.HighScore != 60 || stats.BestDay != 2 || stats.TopCause != "Bug" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRunByID(t *testing.T) {
	ts, store := newTestServer(t)
	saved := seedRuns(t, store, 33)

	var record storage.RunRecord
	if code := getJSON(t, ts.URL+"/api/runs/"+saved[0].RunID, &record); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if record.RunID != saved[0].RunID || record.Score != 33 {
		t.Errorf("record = %+v", record)
	}

	if code := getJSON(t, ts.URL+"/api/runs/00000000-0000-0000-0000-000000000000", nil); code != http.StatusNotFound {
		t.Errorf("missing run status = %d, expected 404", code)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := newTestServer(t)

	if code := getJSON(t, ts.URL+"/api/nope", nil); code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", code)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", defaultLimit, false},
		{"5", 5, false},
		{"101", maxLimit, false},
		{"-1", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLimit(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLimit(%q) = %d, %v", tt.in, got, err)
		}
	}
}
