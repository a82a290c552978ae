package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolveEndpoint(t *testing.T) {
	got := ResolveEndpoint("https://gateway.example/api/{api-key}/subgraphs/id/abc", "secret")
	want := "https://gateway.example/api/secret/subgraphs/id/abc"
	if got != want {
		t.Fatalf("endpoint mismatch: %q != %q", got, want)
	}

	// No placeholder means nothing to substitute.
	plain := "http://127.0.0.1:8000/subgraphs/honeyswap"
	if ResolveEndpoint(plain, "secret") != plain {
		t.Fatalf("endpoint without placeholder must pass through")
	}
}

func TestPairsPageRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method mismatch: %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type mismatch: %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("accept mismatch: %q", got)
		}

		var req struct {
			Query     string           `json:"query"`
			Variables map[string]int64 `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.Contains(req.Query, "orderBy: createdAtTimestamp") {
			t.Errorf("query missing ordering: %s", req.Query)
		}
		if !strings.Contains(req.Query, "first: 1000") {
			t.Errorf("query missing page size: %s", req.Query)
		}
		if req.Variables["cursor"] != 1599155241 {
			t.Errorf("cursor mismatch: %d", req.Variables["cursor"])
		}

		w.Write([]byte(`{"data": {"pairs": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	pairs, err := client.PairsPage(context.Background(), 1599155241)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expected empty page, got %d", len(pairs))
	}
}

func TestPairsPageSourceReportedErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "boom"}, {"message": "indexing halted"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.PairsPage(context.Background(), 0)
	if !errors.Is(err, ErrSourceReported) {
		t.Fatalf("expected source-reported error, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("aggregate error must carry the first message: %v", err)
	}
}

func TestPairsPageMissingData(t *testing.T) {
	for _, body := range []string{`{}`, `{"data": {}}`, `{"data": null}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		client := NewClient(server.URL, nil)
		_, err := client.PairsPage(context.Background(), 0)
		server.Close()

		if !errors.Is(err, ErrBadShape) {
			t.Fatalf("expected shape error for body %s, got %v", body, err)
		}
	}
}

func TestPairsPageMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"pairs": [{"createdAtTimestamp": "not a number"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.PairsPage(context.Background(), 0)
	if !errors.Is(err, ErrBadShape) {
		t.Fatalf("expected shape error, got %v", err)
	}
}

func TestPairsPageTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.PairsPage(context.Background(), 0)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected status error, got %v", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Fatalf("status mismatch: %d", statusErr.Code)
	}
}

func TestPairsPageDecodesPairs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"pairs": [
			{"id": "0xabc", "createdAtTimestamp": "1599155241", "txCount": "7",
			 "token0": {"id": "0xe91d", "symbol": "WXDAI", "name": "Wrapped XDAI"},
			 "token1": {"id": "0x7185", "symbol": "HNY", "name": "Honey"}}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	pairs, err := client.PairsPage(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected one pair, got %d", len(pairs))
	}
	if pairs[0].ID != "0xabc" || pairs[0].CreatedAt != 1599155241 {
		t.Fatalf("pair mismatch: %+v", pairs[0])
	}
	if pairs[0].Token0.Symbol != "WXDAI" || pairs[0].Token1.Symbol != "HNY" {
		t.Fatalf("token mismatch: %+v", pairs[0])
	}
}
