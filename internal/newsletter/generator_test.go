package newsletter

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/newsletter-forge/pkg/testutil"
)

// fakeSnapshots keeps snapshots in memory
type fakeSnapshots map[string][]byte

func (f fakeSnapshots) Save(url string, body []byte) error {
	f[url] = bytes.Clone(body)
	return nil
}

func (f fakeSnapshots) Load(url string) ([]byte, bool, error) {
	body, ok := f[url]
	return body, ok, nil
}

func feedServer(t *testing.T, fixture string) *httptest.Server {
	t.Helper()
	body := readTestdata(t, fixture)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testOptions(feedURL, dir string) Options {
	return Options{
		FeedURL:     feedURL,
		OutputDir:   dir,
		SiteURL:     "https://155pod.com",
		ArchiveFeed: true,
	}
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func readDir(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read output dir: %v", err)
	}
	files := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", e.Name(), err)
		}
		files[e.Name()] = data
	}
	return files
}

func TestGenerator_Run(t *testing.T) {
	server := feedServer(t, "feed.xml")
	dir := filepath.Join(t.TempDir(), "newsletter")

	result, err := NewGenerator(testOptions(server.URL, dir)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.CompareGoldenSlice(t, "testdata/generate_written.golden.json", baseNames(result.Written))

	if len(result.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", result.Skipped)
	}

	files := readDir(t, dir)
	if len(files) != len(result.Written) {
		t.Errorf("output dir has %d files, want %d", len(files), len(result.Written))
	}
	if !bytes.Contains(files[IndexName], []byte("/newsletter/2024-03-10-episode-1-first-post.html")) {
		t.Error("index does not link the first post")
	}
}

func TestGenerator_RunIdempotent(t *testing.T) {
	server := feedServer(t, "feed.xml")
	dir := t.TempDir()
	gen := NewGenerator(testOptions(server.URL, dir))

	if _, err := gen.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	first := readDir(t, dir)

	if _, err := gen.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	second := readDir(t, dir)

	if len(first) != len(second) {
		t.Fatalf("file count changed: %d then %d", len(first), len(second))
	}
	for name, data := range first {
		if !bytes.Equal(data, second[name]) {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestGenerator_RunSkipsMalformed(t *testing.T) {
	server := feedServer(t, "malformed_feed.xml")
	dir := t.TempDir()

	result, err := NewGenerator(testOptions(server.URL, dir)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	const broken = "2024-03-17-episode-2-second-verse.html"

	if len(result.Skipped) != 1 || result.Skipped[0].Path != broken {
		t.Fatalf("Skipped = %v, want only %s", result.Skipped, broken)
	}
	var malformed *MalformedContentError
	if !errors.As(result.Skipped[0].Err, &malformed) {
		t.Errorf("skip reason = %v, want *MalformedContentError", result.Skipped[0].Err)
	}

	if _, err := os.Stat(filepath.Join(dir, broken)); !os.IsNotExist(err) {
		t.Errorf("malformed post was written (stat err = %v)", err)
	}

	files := readDir(t, dir)
	for _, name := range []string{"2024-03-10-episode-1-first-post.html", "2024-03-24-episode-3-third-time-s-the-charm.html", IndexName} {
		if _, ok := files[name]; !ok {
			t.Errorf("%s was not written", name)
		}
	}
}

func TestGenerator_RunStrict(t *testing.T) {
	server := feedServer(t, "malformed_feed.xml")
	dir := t.TempDir()
	opts := testOptions(server.URL, dir)
	opts.Strict = true

	_, err := NewGenerator(opts).Run(context.Background())

	var malformed *MalformedContentError
	if !errors.As(err, &malformed) {
		t.Fatalf("Run() error = %v, want *MalformedContentError", err)
	}
	if _, err := os.Stat(filepath.Join(dir, IndexName)); !os.IsNotExist(err) {
		t.Error("index written after strict abort")
	}
}

func TestGenerator_RunFatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			check: func(t *testing.T, err error) {
				var netErr *NetworkError
				if !errors.As(err, &netErr) || netErr.StatusCode != http.StatusInternalServerError {
					t.Errorf("Run() error = %v, want *NetworkError with status 500", err)
				}
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("definitely not a feed"))
			},
			check: func(t *testing.T, err error) {
				var parseErr *FeedParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("Run() error = %v, want *FeedParseError", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			dir := filepath.Join(t.TempDir(), "newsletter")
			snapshots := fakeSnapshots{}
			opts := testOptions(server.URL, dir)
			opts.Snapshots = snapshots

			result, err := NewGenerator(opts).Run(context.Background())
			tt.check(t, err)

			if result != nil {
				t.Errorf("Result = %+v, want nil", result)
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Error("output directory created despite fatal error")
			}
			if _, ok := snapshots[server.URL]; ok {
				t.Error("failed run stored a snapshot")
			}
		})
	}
}

func TestGenerator_Offline(t *testing.T) {
	server := feedServer(t, "feed.xml")
	snapshots := fakeSnapshots{}

	online := testOptions(server.URL, t.TempDir())
	online.Snapshots = snapshots
	if _, err := NewGenerator(online).Run(context.Background()); err != nil {
		t.Fatalf("online Run() error = %v", err)
	}
	if _, ok := snapshots[server.URL]; !ok {
		t.Fatal("online run did not store a snapshot")
	}

	server.Close()

	offline := testOptions(server.URL, t.TempDir())
	offline.Snapshots = snapshots
	offline.Offline = true
	result, err := NewGenerator(offline).Run(context.Background())
	if err != nil {
		t.Fatalf("offline Run() error = %v", err)
	}
	testutil.CompareGoldenSlice(t, "testdata/generate_written.golden.json", baseNames(result.Written))
}

func TestGenerator_OfflineWithoutSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		snapshots Snapshots
	}{
		{"no store", nil},
		{"empty store", fakeSnapshots{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions("https://example.com/feed.xml", t.TempDir())
			opts.Offline = true
			opts.Snapshots = tt.snapshots

			_, err := NewGenerator(opts).Run(context.Background())

			var netErr *NetworkError
			if !errors.As(err, &netErr) {
				t.Errorf("Run() error = %v, want *NetworkError", err)
			}
		})
	}
}
