// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/pvidak/paperdigest/internal/mendeley"
	"github.com/pvidak/paperdigest/pkg/types"
)

// doiFlagsCmd builds a command carrying the DOI input flags so each test
// gets isolated flag state.
func doiFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "check"}
	cmd.Flags().StringSlice("dois", nil, "")
	cmd.Flags().String("file", "", "")
	cmd.Flags().String("from-markdown", "", "")
	return cmd
}

func TestCollectDOIs(t *testing.T) {
	dir := t.TempDir()

	listFile := filepath.Join(dir, "dois.txt")
	listContent := "# reading backlog\n10.1038/from-file\n\n  10.1016/also-from-file  \n"
	if err := os.WriteFile(listFile, []byte(listContent), 0o644); err != nil {
		t.Fatal(err)
	}

	mdFile := filepath.Join(dir, "notes.md")
	mdContent := "Key papers:\n" +
		"- [10.1126/linktext](https://example.org/a.pdf)\n" +
		"- see https://doi.org/10.1038/urlform for background\n" +
		"- DOI: 10.1371/prefixed, still unread\n"
	if err := os.WriteFile(mdFile, []byte(mdContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := doiFlagsCmd()
	if err := cmd.Flags().Set("dois", "10.1021/from-flag"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("file", listFile); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("from-markdown", mdFile); err != nil {
		t.Fatal(err)
	}

	got, err := collectDOIs(cmd, []string{"10.1002/from-arg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"10.1002/from-arg",
		"10.1021/from-flag",
		"10.1038/from-file",
		"10.1016/also-from-file",
		"10.1126/linktext",
		"10.1038/urlform",
		"10.1371/prefixed",
	}
	for _, doi := range want {
		if !contains(got, doi) {
			t.Errorf("missing %q in %v", doi, got)
		}
	}
	if contains(got, "# reading backlog") {
		t.Errorf("comment line collected: %v", got)
	}
}

func TestCollectDOIsMissingMarkdownFile(t *testing.T) {
	cmd := doiFlagsCmd()
	if err := cmd.Flags().Set("from-markdown", filepath.Join(t.TempDir(), "absent.md")); err != nil {
		t.Fatal(err)
	}

	if _, err := collectDOIs(cmd, nil); err == nil {
		t.Fatal("expected error for missing markdown file")
	}
}

func TestSecretDefault(t *testing.T) {
	loadedSecrets = map[string]string{"mendeley-client-id": "from-secrets"}
	defer func() { loadedSecrets = nil }()

	if got := secretDefault("mendeley-client-id", "from-config"); got != "from-config" {
		t.Errorf("override should win, got %q", got)
	}
	if got := secretDefault("mendeley-client-id", ""); got != "from-secrets" {
		t.Errorf("secret fallback = %q, want %q", got, "from-secrets")
	}
	if got := secretDefault("unknown-key", ""); got != "" {
		t.Errorf("unknown key = %q, want empty", got)
	}
}

func TestObtainTokenReauthorizesOnRefreshFailure(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token.json")

	// A token without a refresh token cannot be refreshed; the stale file
	// must be dropped and the authorization flow entered instead of
	// erroring out.
	stale := &mendeley.Token{AccessToken: "expired-access"}
	if err := mendeley.SaveToken(tokenFile, stale); err != nil {
		t.Fatal(err)
	}

	client := mendeley.NewClient(types.MendeleyConfig{
		HTTPConfig: types.HTTPConfig{Timeout: time.Second},
		ClientID:   "id",
	})

	_, err := obtainToken(context.Background(), client, tokenFile, strings.NewReader("not-a-redirect-url\n"))
	if err == nil {
		t.Fatal("expected error from the pasted non-redirect URL")
	}
	if !strings.Contains(err.Error(), "code") {
		t.Errorf("error should come from the authorization flow, got: %v", err)
	}

	if _, statErr := os.Stat(tokenFile); !os.IsNotExist(statErr) {
		t.Errorf("stale token file should be removed, stat err = %v", statErr)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
