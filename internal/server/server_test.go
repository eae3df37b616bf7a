package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/radwaste/internal/dashboard"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/scenario"
	"github.com/san-kum/radwaste/internal/storage"
)

func dataFS(skip ...string) fstest.MapFS {
	fsys := fstest.MapFS{
		"initial_cond.csv":   {Data: []byte(",Moles\nCm245,12.5\nPu241,0.3\nAm241,4\n")},
		"decay_cte_data.csv": {Data: []byte(",Cte\nCm245,8.2e-05\nPu241,0.0484\nTl205,0\n")},
	}
	files, _ := scenario.NewFiles(scenario.DefaultPattern)
	for _, k := range scenario.All() {
		name, _ := files.Name(k)
		sentinel := k.Onset.Years() + k.Completion.Years()/1_000_000
		data := fmt.Sprintf(",a,b,c,d\n1,%d,1,0,0\n1000,0.5,0.5,0.2,0.2\n", sentinel)
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	for _, name := range skip {
		delete(fsys, name)
	}
	return fsys
}

func newTestServer(t *testing.T, skip ...string) *httptest.Server {
	t.Helper()
	files, err := scenario.NewFiles(scenario.DefaultPattern)
	require.NoError(t, err)
	d := dashboard.New(storage.New(dataFS(skip...)), nuclide.DefaultSources(), files)
	ts := httptest.NewServer(New(d, files).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/render?sort=moles&onset=2000&completion=5M&log=yes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Selections struct {
			Sort       string `json:"sort"`
			Onset      string `json:"onset"`
			Completion string `json:"completion"`
			YScale     string `json:"y_scale"`
		} `json:"selections"`
		ScenarioFile string `json:"scenario_file"`
		Reference    []struct {
			ID string `json:"id"`
		} `json:"reference"`
		Inside struct {
			Columns []string    `json:"columns"`
			Values  [][]float64 `json:"values"`
		} `json:"inside"`
		Outside struct {
			Columns []string `json:"columns"`
		} `json:"outside"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	assert.Equal(t, "moles", got.Selections.Sort)
	assert.Equal(t, "2k", got.Selections.Onset)
	assert.Equal(t, "5M", got.Selections.Completion)
	assert.Equal(t, "log", got.Selections.YScale)
	assert.Equal(t, "Answer_tc2k_tl5M.csv", got.ScenarioFile)
	assert.Equal(t, []string{"a", "b"}, got.Inside.Columns)
	assert.Equal(t, []string{"c", "d"}, got.Outside.Columns)
	assert.Equal(t, 2005.0, got.Inside.Values[0][0])
	require.Len(t, got.Reference, 4)
	assert.Equal(t, "Pu241", got.Reference[0].ID)
}

func TestRender_Defaults(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/render")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"scenario_file": "Answer_tc1k_tl1M.csv"`)
}

func TestRender_Labels(t *testing.T) {
	ts := newTestServer(t)

	q := url.Values{
		"sort":       {"Decay Cte Order"},
		"onset":      {"2000 years"},
		"completion": {"10 Million years"},
		"log":        {"Yes, please"},
	}
	resp, body := get(t, ts, "/api/render?"+q.Encode())
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"scenario_file": "Answer_tc2k_tl10M.csv"`)
	assert.Contains(t, body, `"sort": "cte"`)
	assert.Contains(t, body, `"y_scale": "log"`)
}

func TestRender_OutOfRange(t *testing.T) {
	ts := newTestServer(t)

	for _, q := range []string{"onset=4000", "completion=3M", "sort=size", "log=maybe"} {
		resp, body := get(t, ts, "/api/render?"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Contains(t, body, "selection out of range", q)
	}
}

func TestRender_MissingScenarioFile(t *testing.T) {
	ts := newTestServer(t, "Answer_tc3k_tl10M.csv")

	resp, body := get(t, ts, "/api/render?onset=3k&completion=10M")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "Answer_tc3k_tl10M.csv")

	resp, _ = get(t, ts, "/api/render?onset=3k&completion=5M")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReference(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/reference?sort=cte")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Label   string `json:"label"`
		Records []struct {
			ID  string   `json:"id"`
			Cte *float64 `json:"cte"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Decay Cte Order", got.Label)

	ids := make([]string, len(got.Records))
	for i, r := range got.Records {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"Tl205", "Cm245", "Pu241", "Am241"}, ids)
	assert.Nil(t, got.Records[3].Cte)
}

func TestScenarios(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/api/scenarios")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []scenarioEntry
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 16)
	assert.Equal(t, "tc1k_tl1M", got[0].Key)
	assert.Equal(t, "Answer_tc5k_tl10M.csv", got[15].File)
}

func TestPage(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/?onset=5k&log=yes")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	assert.Contains(t, body, "Initial Conditions &amp; Nuclear Data")
	assert.Contains(t, body, "Concentration Glass Matrix")
	assert.Contains(t, body, "Concentration Outside of Matrix")
	assert.Contains(t, body, `<option value="5k" selected>5000 years</option>`)
	assert.Contains(t, body, `<option value="yes" selected>Yes, please</option>`)
	assert.Equal(t, 3, strings.Count(body, "<svg"))
	assert.NotContains(t, body, "<?xml")

	// inside and outside summaries, not the reference chart
	assert.Equal(t, 2, strings.Count(body, `<table class="stats">`))
	assert.Contains(t, body, "<td>b</td><td>1</td><td>1</td><td>0.5</td>")
	assert.Contains(t, body, "<td>d</td><td>0.2</td>")

	assert.Contains(t, body, `<table class="half-lives">`)
	assert.Contains(t, body, "<td>Cm245</td><td>α</td><td>8423 yrs</td>")
	assert.Contains(t, body, "<td>Tl205</td><td>-</td><td>stable</td>")
}

func TestPage_ErrorShowsNoCharts(t *testing.T) {
	ts := newTestServer(t, "decay_cte_data.csv")

	resp, body := get(t, ts, "/")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, `class="error"`)
	assert.NotContains(t, body, "<svg")
}

func TestChartSVG(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/charts/inside.svg?completion=2M")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "Concentration Glass Matrix")

	resp, _ = get(t, ts, "/charts/other.svg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthzAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)

	get(t, ts, "/api/render")
	resp, body = get(t, ts, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "radwaste_requests_total")
}

func TestGzip(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")
	tr := &http.Transport{DisableCompression: true}
	resp, err := (&http.Client{Transport: tr}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}
