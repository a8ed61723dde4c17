package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestArticleIDCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"encode", []string{"article-id", "https://example.com/a"}, "aHR0cHM6Ly9leGFtcGxlLmNvbS9h"},
		{"decode", []string{"article-id", "--decode", "aHR0cHM6Ly9leGFtcGxlLmNvbS9h"}, "https://example.com/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decodeID = false

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServeRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("NEWS_API_KEY", "")

	rootCmd.SetArgs([]string{"serve"})

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "API_KEY is required") {
		t.Errorf("Execute() error = %v", err)
	}
}
