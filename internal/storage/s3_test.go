package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestArchive(t *testing.T) {
	var gotPath, gotBody, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewS3Storage(S3Config{
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Bucket:          "metrics",
		Region:          "us-east-1",
		Prefix:          "snapshots",
	})

	at := time.Date(2025, time.March, 5, 23, 30, 0, 0, time.UTC)
	key, err := s.Archive(context.Background(), at, map[string]int{"combined": 13})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if !strings.HasPrefix(key, "snapshots/2025/03/05/") || !strings.HasSuffix(key, ".json") {
		t.Errorf("Unexpected key %s", key)
	}
	if gotPath != "/metrics/"+key {
		t.Errorf("Expected path-style request to /metrics/%s, got %s", key, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	if !strings.Contains(gotBody, `{"combined":13}`) {
		t.Errorf("Unexpected body %q", gotBody)
	}
}

func TestKeyForUsesUTCDate(t *testing.T) {
	s := &S3Storage{prefix: "metrics"}
	at := time.Date(2025, time.March, 6, 0, 30, 0, 0, time.FixedZone("CET", 3600))

	if key := s.keyFor(at); !strings.HasPrefix(key, "metrics/2025/03/05/") {
		t.Errorf("Expected UTC date in key, got %s", key)
	}
}
