package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhapartex/random-wiki/internal/presenter"
)

const testExtract = "Lorem ipsum dolor sit amet, consectetur adipiscing elit."

// fakeWikipedia answers with one fixed article, or with the not-found
// sentinel when missing is set
func fakeWikipedia(t *testing.T, missing bool) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("list") == "random" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"query": map[string]any{"random": []map[string]any{{"title": "Test Page"}}},
			})
			return
		}

		page := map[string]any{"title": r.URL.Query().Get("titles"), "extract": testExtract}
		pageID := "12"
		if missing {
			pageID = "-1"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": map[string]any{"pages": map[string]any{pageID: page}},
		})
	}))
	t.Cleanup(server.Close)

	t.Setenv("WIKIPEDIA_API_URL", server.URL+"/{lang}/w/api.php")
	t.Setenv("FETCH_LANGUAGES", "en,ko")
	t.Setenv("FETCH_LANGUAGE", "en")
	t.Setenv("FETCH_MIN_LENGTH", "10")
	t.Setenv("FETCH_MAX_LENGTH", "20")
	t.Setenv("FETCH_MAX_RETRIES", "2")
	t.Setenv("LOG_FORMAT", "json")
}

func setupFetchTest(t *testing.T) {
	t.Helper()

	verbose = false
	defaults := map[string]string{
		"lang": "", "min": "0", "max": "0", "retries": "0", "no-truncate": "false",
		"out": "", "new-view": "false", "open": "false", "remote": "", "insecure": "false", "timeout": "0s",
	}
	for name, value := range defaults {
		require.NoError(t, fetchCmd.Flags().Set(name, value))
		fetchCmd.Flags().Lookup(name).Changed = false
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFetch_Stdout(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	stdout, stderr, err := execute(t, "fetch")
	require.NoError(t, err)

	assert.Equal(t, testExtract[:20]+"\n", stdout)
	assert.Contains(t, stderr, "Source: https://en.wikipedia.org/wiki/Test_Page")
	assert.NotContains(t, stderr, "attempt finished", "diagnostics stay hidden on success")
}

func TestFetch_FlagsOverrideConfig(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	stdout, stderr, err := execute(t, "fetch", "--lang", "ko", "--min", "1", "--max", "5", "--verbose")
	require.NoError(t, err)

	assert.Equal(t, testExtract[:5]+"\n", stdout)
	assert.Contains(t, stderr, "https://ko.wikipedia.org/wiki/Test_Page")
	assert.Contains(t, stderr, "attempt finished")
}

func TestFetch_ExplicitZeroMin(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	// FETCH_MIN_LENGTH is 10, so --max 5 only validates if --min 0 is kept
	stdout, _, err := execute(t, "fetch", "--min", "0", "--max", "5")
	require.NoError(t, err)

	assert.Equal(t, testExtract[:5]+"\n", stdout)
}

func TestFetch_InsecureWarningIsVisible(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	_, stderr, err := execute(t, "fetch", "--insecure")
	require.NoError(t, err)

	assert.Contains(t, stderr, "TLS certificate verification is disabled")
}

func TestFetch_InsecureWithRemote(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	_, _, err := execute(t, "fetch", "--insecure", "--remote", "localhost:50051")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--insecure cannot be combined with --remote")
}

func TestFetch_ToFile(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)
	path := filepath.Join(t.TempDir(), "article.txt")

	stdout, _, err := execute(t, "fetch", "--out", path, "--no-truncate")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testExtract, string(got))
}

func TestFetch_ExhaustedShowsDiagnostics(t *testing.T) {
	fakeWikipedia(t, true)
	setupFetchTest(t)

	stdout, stderr, err := execute(t, "fetch")

	var fetchErr *presenter.FetchFailedError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 2, fetchErr.Attempts)
	assert.Contains(t, fetchErr.Message, "page not found")
	assert.Empty(t, stdout)
	assert.Equal(t, 2, strings.Count(stderr, "attempt finished"))
}

func TestFetch_UnsupportedLanguage(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	_, _, err := execute(t, "fetch", "--lang", "fr")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestLanguages(t *testing.T) {
	fakeWikipedia(t, false)
	setupFetchTest(t)

	stdout, _, err := execute(t, "languages")
	require.NoError(t, err)
	assert.Equal(t, "* en\n  ko\n", stdout)
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "wikitext 1.2.3\n", stdout)
}
