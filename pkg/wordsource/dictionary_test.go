package wordsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchDictionary_ParsesNewlineSeparatedWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cat\ndog\n\nbat\n"))
	}))
	defer srv.Close()

	words, err := FetchDictionary(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words (blank line skipped), got %v", words)
	}
}

func TestFetchDictionary_RetriesOn503ThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("cat\n"))
	}))
	defer srv.Close()

	words, err := FetchDictionary(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0] != "cat" {
		t.Errorf("expected [cat] after retry, got %v", words)
	}
	if attempts != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", attempts)
	}
}

func TestFetchDictionary_DoesNotRetryOn404(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchDictionary(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
	if attempts != 1 {
		t.Errorf("expected no retries on a non-retryable status, got %d attempts", attempts)
	}
}
