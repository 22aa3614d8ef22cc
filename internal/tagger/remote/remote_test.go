package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hejijunhao/glossa/internal/model"
	"github.com/hejijunhao/glossa/internal/tagger"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	tag := func(text string) []model.Token {
		var toks []model.Token
		for _, w := range strings.Fields(text) {
			toks = append(toks, model.Token{Text: w, POS: "NOUN", Tag: "NN"})
		}
		return toks
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/tag", func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(tagResponse{Tokens: tag(req.Text)})
	})
	mux.HandleFunc("/tag/batch", func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		json.NewDecoder(r.Body).Decode(&req)
		var resp batchResponse
		for _, text := range req.Texts {
			resp.Documents = append(resp.Documents, tagResponse{Tokens: tag(text)})
		}
		json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestTag(t *testing.T) {
	srv := fakeService(t)
	tg, err := New(srv.URL, "")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := tg.Tag(context.Background(), "cats dogs")
	if err != nil {
		t.Fatalf("Tag() error: %v", err)
	}
	want := []model.Token{
		{Text: "cats", POS: "NOUN", Tag: "NN"},
		{Text: "dogs", POS: "NOUN", Tag: "NN"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tag() mismatch (-want +got):\n%s", diff)
	}
}

func TestTagBatch(t *testing.T) {
	srv := fakeService(t)
	tg, _ := New(srv.URL, "")

	got, err := tg.TagBatch(context.Background(), []string{"a b", "c"})
	if err != nil {
		t.Fatalf("TagBatch() error: %v", err)
	}
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 1 {
		t.Fatalf("unexpected shape: %v", got)
	}
	if got[1][0].Text != "c" {
		t.Errorf("got[1][0] = %+v", got[1][0])
	}

	empty, err := tg.TagBatch(context.Background(), nil)
	if err != nil || empty != nil {
		t.Errorf("TagBatch(nil) = %v, %v", empty, err)
	}
}

func TestTagBatchCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[]}`))
	}))
	defer srv.Close()

	tg, _ := New(srv.URL, "")
	if _, err := tg.TagBatch(context.Background(), []string{"x"}); err == nil {
		t.Fatal("expected error for mismatched document count")
	}
}

func TestTagServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tg, _ := New(srv.URL, "bad-key")
	_, err := tg.Tag(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("error = %v, want HTTP 401", err)
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New("", "key"); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestRegisteredProvider(t *testing.T) {
	ctor, err := tagger.Get("remote")
	if err != nil {
		t.Fatalf("remote provider not registered: %v", err)
	}
	if _, err := ctor(tagger.Config{}); err == nil {
		t.Error("expected error constructing remote tagger without endpoint")
	}
	tg, err := ctor(tagger.Config{Endpoint: "http://localhost:1"})
	if err != nil {
		t.Fatalf("constructor error: %v", err)
	}
	if err := tg.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
