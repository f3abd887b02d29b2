package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/components-2.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version": "367.0.0", "components": []}`))
	}))
	defer server.Close()

	client := NewReleaseClient(server.URL)
	got, err := client.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if got != "367.0.0" {
		t.Errorf("LatestVersion() = %q, want 367.0.0", got)
	}
}

func TestLatestVersion_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "missing version",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"components": []}`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			if _, err := NewReleaseClient(server.URL).LatestVersion(context.Background()); err == nil {
				t.Error("LatestVersion() should fail")
			}
		})
	}
}

func TestArchiveName(t *testing.T) {
	testCases := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"linux", "amd64", "google-cloud-sdk-367.0.0-linux-x86_64.tar.gz", false},
		{"darwin", "arm64", "google-cloud-sdk-367.0.0-darwin-arm.tar.gz", false},
		{"linux", "386", "google-cloud-sdk-367.0.0-linux-x86.tar.gz", false},
		{"windows", "amd64", "", true},
		{"linux", "riscv64", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.goos+"/"+tc.goarch, func(t *testing.T) {
			got, err := archiveName("367.0.0", tc.goos, tc.goarch)
			if (err != nil) != tc.wantErr {
				t.Fatalf("archiveName() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("archiveName() = %q, want %q", got, tc.want)
			}
		})
	}
}
