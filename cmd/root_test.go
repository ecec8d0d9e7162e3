// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration and exit codes

package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/igvshop/igv-admin/internal/client"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("IGV_API_URL")
	os.Unsetenv("IGV_API_ROOT")
	os.Unsetenv("IGV_AUTH_URL")
	apiURL, apiRoot = "", "" // Reset flags

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.APIRoot != "http://localhost:5000" {
		t.Errorf("expected default API root, got %s", cfg.APIRoot)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("IGV_API_URL", "http://shop.example.com/api")
	apiURL = "" // Reset flag

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://shop.example.com/api" {
		t.Errorf("expected env URL, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("IGV_API_URL", "http://shop.example.com/api")
	os.Unsetenv("IGV_AUTH_URL")
	apiURL = "http://flag.example.com/api"
	apiRoot = "http://flag.example.com"
	defer func() { apiURL, apiRoot = "", "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag.example.com/api" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
	if cfg.AuthURL != "http://flag.example.com" {
		t.Errorf("expected auth URL to follow --api-root, got %s", cfg.AuthURL)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestFail_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), exitError},
		{"not found", &client.RequestError{Op: "fetch order", Kind: client.KindStatus, StatusCode: 404, Status: "404 Not Found"}, exitNotFound},
		{"server error", &client.RequestError{Op: "fetch order", Kind: client.KindStatus, StatusCode: 500, Status: "500 Internal Server Error"}, exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := fail(&buf, tt.err); got != tt.want {
				t.Errorf("expected exit code %d, got %d", tt.want, got)
			}
			if !strings.HasPrefix(buf.String(), "Error: ") {
				t.Errorf("expected error output, got %q", buf.String())
			}
		})
	}
}
