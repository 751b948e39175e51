package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xtding233/pcg32-backend/internal/pcg"
)

func getJSON(t *testing.T, srv *httptest.Server, path string, wantCode int, v interface{}) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		t.Fatalf("%s: status %d, want %d", path, resp.StatusCode, wantCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("%s: decode: %v", path, err)
	}
}

func TestHTTPSeed(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(testEngine(t)))
	defer srv.Close()

	var got stateResp
	getJSON(t, srv, "/seed?phrase=mystery+soup", http.StatusOK, &got)
	if got.State != pcg.FromPhrase(testPhrase).String() {
		t.Fatalf("state %s", got.State)
	}
	getJSON(t, srv, "/seed", http.StatusOK, &got)
	if _, err := pcg.ParseState(got.State); err != nil {
		t.Fatal(err)
	}
}

func TestHTTPSeedEntropyFailure(t *testing.T) {
	e := testEngine(t)
	e.seed = brokenEntropy
	srv := httptest.NewServer(NewHTTPHandler(e))
	defer srv.Close()

	var got errResp
	getJSON(t, srv, "/seed", http.StatusServiceUnavailable, &got)
	if got.Err == "" {
		t.Fatalf("missing error message")
	}
}

func TestHTTPNextThreading(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(testEngine(t)))
	defer srv.Close()

	var first uintsResp
	getJSON(t, srv, "/next?state="+stateOne, http.StatusOK, &first)
	if len(first.Values) != 1 || first.Values[0] != 0 || first.State != stateTwo {
		t.Fatalf("first: %+v", first)
	}
	var second uintsResp
	getJSON(t, srv, "/next?state="+first.State, http.StatusOK, &second)
	if second.Values[0] != goldenU1 {
		t.Fatalf("second: %+v", second)
	}
}

func TestHTTPNextFloat(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(testEngine(t)))
	defer srv.Close()

	var got floatsResp
	getJSON(t, srv, "/next_float?n=2&state="+stateOne, http.StatusOK, &got)
	if len(got.Values) != 2 {
		t.Fatalf("values %v", got.Values)
	}
	if math.Float32bits(got.Values[0]) != goldenF0 || math.Float32bits(got.Values[1]) != goldenF1 {
		t.Fatalf("values %v", got.Values)
	}
	if got.State != floatsTwo {
		t.Fatalf("state %s", got.State)
	}
}

func TestHTTPBelowDrawStats(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(testEngine(t)))
	defer srv.Close()

	var below belowResp
	getJSON(t, srv, "/below?bound=6&state="+stateOne, http.StatusOK, &below)
	if below.Value != 4 {
		t.Fatalf("below %+v", below)
	}

	var draw drawResp
	getJSON(t, srv, "/draw?p=0.1&state="+stateOne, http.StatusOK, &draw)
	if !draw.Hit {
		t.Fatalf("draw %+v", draw)
	}

	var stats statsResp
	getJSON(t, srv, "/stats?n=1000&state="+stateOne, http.StatusOK, &stats)
	if stats.Stats.N != 1000 || stats.Stats.Max >= 1 || stats.Stats.Min < 0 {
		t.Fatalf("stats %+v", stats.Stats)
	}
}

func TestHTTPBadRequests(t *testing.T) {
	srv := httptest.NewServer(NewHTTPHandler(testEngine(t)))
	defer srv.Close()

	for _, path := range []string{
		"/next",
		"/next?state=nothex",
		"/next?n=abc&state=" + stateOne,
		"/next?n=9&state=" + stateOne,
		"/next_float?n=-1&state=" + stateOne,
		"/below?bound=0&state=" + stateOne,
		"/below?state=" + stateOne,
		"/draw?state=" + stateOne,
		"/draw?p=2&state=" + stateOne,
		"/stats?n=5000&state=" + stateOne,
	} {
		var got errResp
		getJSON(t, srv, path, http.StatusBadRequest, &got)
		if got.Err == "" {
			t.Fatalf("%s: missing error message", path)
		}
	}
}
