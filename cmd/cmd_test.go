package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSite(t *testing.T) *httptest.Server {
	today := time.Now().UTC()
	dates := today.AddDate(0, 0, -1).Format("2. 1. 2006") + " - " + today.AddDate(0, 0, 1).Format("2. 1. 2006")

	pages := map[string]string{
		"/hypermarkte/": `<html><body><ul id="left-category-shops">
			<li><a href="/lidl/">Lidl</a></li>
			<li><a href="/globus/">Globus</a></li>
		</ul></body></html>`,
		"/lidl/": `<html><body><div class="page-body">
			<div class="brochure-thumb">
				<img data-src="https://img.example/lidl/1.jpg">
				<div class="letak-description"><strong>Prospekt</strong><small>` + dates + `</small></div>
			</div>
			<div class="brochure-thumb">
				<div class="letak-description"><strong>Alt</strong><small>1. 1. 2020 - 7. 1. 2020</small></div>
			</div>
		</div></body></html>`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeTestConfig(t *testing.T, dir, baseURL string) string {
	path := filepath.Join(dir, "flyerpipe.json5")
	content := `{
		// test site
		base_url: "` + baseURL + `/",
		timezone: "UTC",
		timeout_seconds: 5,
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootWritesValidFlyers(t *testing.T) {
	srv := newTestSite(t)
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, srv.URL)
	outPath := filepath.Join(dir, "assets", "flyers.json")
	reportPath := filepath.Join(dir, "report.md")

	out, err := execute(t,
		"--config", configPath,
		"--output", outPath,
		"--report", reportPath,
		"--log-file", "")
	require.NoError(t, err)
	require.Contains(t, out, "Lidl: 1 flyers")
	require.NotContains(t, out, "Globus:")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var flyers []map[string]string
	require.NoError(t, json.Unmarshal(data, &flyers))
	require.Len(t, flyers, 1)
	require.Equal(t, "Prospekt", flyers[0]["title"])
	require.Equal(t, "Lidl", flyers[0]["shop_name"])
	require.Equal(t, "https://img.example/lidl/1.jpg", flyers[0]["thumbnail"])

	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(report), "## Lidl")
}

func TestRootWritesEmptyArrayWhenCategoryUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, srv.URL)
	outPath := filepath.Join(dir, "flyers.json")

	_, err := execute(t,
		"--config", configPath,
		"--output", outPath,
		"--report", "",
		"--log-file", "")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}

func TestRootRejectsUnknownReportFormat(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "http://127.0.0.1:1")

	_, err := execute(t,
		"--config", configPath,
		"--output", filepath.Join(dir, "flyers.json"),
		"--report", filepath.Join(dir, "report.docx"),
		"--log-file", "")
	require.ErrorContains(t, err, "unsupported report format")
	require.NoFileExists(t, filepath.Join(dir, "flyers.json"))
}

func TestShopsListsDirectory(t *testing.T) {
	srv := newTestSite(t)
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, srv.URL)

	out, err := execute(t, "shops", "--config", configPath, "--log-file", "")
	require.NoError(t, err)
	require.Contains(t, out, "Lidl")
	require.Contains(t, out, "/globus/")
	require.Contains(t, out, "2 shops")
}

func TestSelectReportRenderer(t *testing.T) {
	r, err := selectReportRenderer("out/Report.PDF")
	require.NoError(t, err)
	require.Equal(t, ".pdf", r.Extension())

	r, err = selectReportRenderer("report.md")
	require.NoError(t, err)
	require.Equal(t, ".md", r.Extension())

	_, err = selectReportRenderer("report.txt")
	require.Error(t, err)
}
