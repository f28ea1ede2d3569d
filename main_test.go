package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"fscrape/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeDoe = `<html><body>
<h1 itemprop="name"><span class="fn">Jane Doe</span></h1>
<span class="item height"><strong>5'11"</strong><br>180.34 cm</span>
<span class="card"><span class="result">Wins</span><span class="counter">10</span></span>
<span class="sub_line">Jan / 02 / 2015</span>
</body></html>`

func testConfig() *config.Config {
	return &config.Config{
		Site:     config.DefaultSite,
		Output:   config.DefaultOutput,
		LogLevel: "error",
		Start:    1,
		Timeout:  5 * time.Second,
	}
}

// profileServer serves Jane Doe as fighter 1 and a 404 page for every other id.
func profileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fighter/x-1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("<html><body><h1>Not found</h1></body></html>"))
			return
		}
		_, _ = w.Write([]byte(janeDoe))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		delay      time.Duration
		render     bool
		waitFor    string
		waitTarget string
		wantErr    string
	}{
		{name: "defaults", start: 1, waitFor: "load"},
		{name: "bounded range", start: 5, end: 5, waitFor: "load"},
		{name: "start below one", start: 0, wantErr: "--start"},
		{name: "end before start", start: 10, end: 9, wantErr: "--end (9) is before --start (10)"},
		{name: "negative delay", start: 1, delay: -time.Second, wantErr: "--delay"},
		{name: "render with element wait", start: 1, render: true, waitFor: "element", waitTarget: ".sub_line"},
		{name: "render with unknown wait", start: 1, render: true, waitFor: "forever", wantErr: "forever"},
		{name: "wait ignored without render", start: 1, waitFor: "forever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, delay = tt.start, tt.end, tt.delay
			render, waitFor, waitTarget = tt.render, tt.waitFor, tt.waitTarget

			err := validateFlags()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShowInfersFormatFromOutputFile(t *testing.T) {
	srv := profileServer(t)
	path := filepath.Join(t.TempDir(), "x.json")

	root := newRootCmd(testConfig(), false)
	root.SetArgs([]string{"show", "1", "--host", srv.URL, "-o", path})
	require.NoError(t, root.Execute())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Jane Doe", decoded["name"])
	assert.Equal(t, float64(1), decoded["id"])
	assert.Equal(t, 180.34, decoded["height_cm"])
	assert.Nil(t, decoded["birth_date"])
}

func TestRunWritesCSV(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantRow string
	}{
		{
			name:    "absent fields as None",
			wantRow: "1,Jane Doe,None,None,180.34,None,None,None,10,0,0,2015-01-02T00:00:00",
		},
		{
			name:    "absent fields empty",
			args:    []string{"--missing", ""},
			wantRow: "1,Jane Doe,,,180.34,,,,10,0,0,2015-01-02T00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := profileServer(t)
			path := filepath.Join(t.TempDir(), "fighters.csv")

			root := newRootCmd(testConfig(), false)
			root.SetArgs(append([]string{"--host", srv.URL, "--end", "3", "-o", path}, tt.args...))
			require.NoError(t, root.Execute())

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSuffix(string(raw), "\r\n"), "\r\n")
			require.Len(t, lines, 2, "ids 2 and 3 have no fighter")
			assert.Equal(t, "ID,Name,Date of Birth,Weight (KG),Height (CM),Locality,Nationality,Association,Wins,Losses,Draws,Last Fight", lines[0])
			assert.Equal(t, tt.wantRow, lines[1])
		})
	}
}

func TestRunRejectsInvalidRange(t *testing.T) {
	root := newRootCmd(testConfig(), false)
	root.SetArgs([]string{"--start", "4", "--end", "2", "-o", filepath.Join(t.TempDir(), "out.csv")})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--end (2) is before --start (4)")
}

func TestInterruptContextCancelsOnSignal(t *testing.T) {
	ctx, stop := interruptContext(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by SIGINT")
	}
}
