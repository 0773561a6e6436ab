// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pvidak/paperdigest/internal/library"
	"github.com/pvidak/paperdigest/internal/mendeley"
	"github.com/pvidak/paperdigest/internal/report"
	"github.com/pvidak/paperdigest/internal/secrets"
	"github.com/pvidak/paperdigest/internal/sections"
	"github.com/pvidak/paperdigest/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [dois...]",
	Short: "Check DOIs against your Mendeley library",
	Long: `Check looks up DOIs in your Mendeley library and reports which papers
you already have. DOIs come from arguments, --dois, --file (one DOI per
line; # starts a comment), or --from-markdown, which harvests every DOI
cited in a Markdown document (doi.org links, DOI link text, and DOI:
mentions).

The first run walks you through Mendeley's OAuth flow and saves the token
for later runs. The fetched library is cached locally; use --refresh to
refetch it from the API.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	dois, err := collectDOIs(cmd, args)
	if err != nil {
		return err
	}
	if len(dois) == 0 {
		return fmt.Errorf("no DOIs to check: pass them as arguments, --dois, --file, or --from-markdown")
	}

	cfg := mendeleyConfig(cmd)
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return fmt.Errorf("Mendeley credentials missing: put them in .secrets/%s and .secrets/%s",
			secrets.KeyMendeleyClientID, secrets.KeyMendeleyClientSecret)
	}

	ctx := context.Background()
	client := mendeley.NewClient(cfg)

	refresh, _ := cmd.Flags().GetBool("refresh")
	docs, err := libraryDocs(ctx, client, cfg, refresh)
	if err != nil {
		return err
	}

	checkReport := mendeley.CheckDOIs(dois, docs)
	printCheckReport(checkReport)

	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		if err := report.WriteCheckJSON(outPath, checkReport); err != nil {
			return err
		}
		fmt.Printf("\nReport saved to %s\n", outPath)
	}
	return nil
}

// collectDOIs merges DOIs from arguments, the --dois flag, --file, and
// --from-markdown.
func collectDOIs(cmd *cobra.Command, args []string) ([]string, error) {
	dois := append([]string{}, args...)

	flagDOIs, _ := cmd.Flags().GetStringSlice("dois")
	dois = append(dois, flagDOIs...)

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading DOI file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			dois = append(dois, line)
		}
	}

	if path, _ := cmd.Flags().GetString("from-markdown"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading markdown document: %w", err)
		}
		harvested := sections.HarvestDOIs(string(data))
		fmt.Printf("Harvested %d DOIs from %s.\n", len(harvested), path)
		dois = append(dois, harvested...)
	}
	return dois, nil
}

// libraryDocs returns the user's library, from the local cache when
// possible, refetching from the API when the cache is empty or refresh
// is set.
func libraryDocs(ctx context.Context, client *mendeley.Client, cfg types.MendeleyConfig, refresh bool) (map[string]types.LibraryDocument, error) {
	store, err := library.NewStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if !refresh {
		docs, err := store.All(ctx)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			fmt.Printf("Using cached library (%d documents with DOIs). Use --refresh to refetch.\n", len(docs))
			return docs, nil
		}
	}

	tok, err := obtainToken(ctx, client, cfg.TokenFile, os.Stdin)
	if err != nil {
		return nil, err
	}

	fmt.Println("Fetching Mendeley library...")
	lib, err := client.FetchLibrary(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Fetched %d documents (%d with DOIs).\n", lib.TotalDocuments, len(lib.Docs))

	if err := store.ReplaceAll(ctx, lib.Docs); err != nil {
		fmt.Fprintf(os.Stderr, "warning: library cache update failed: %v\n", err)
	}
	return lib.Docs, nil
}

// obtainToken loads and refreshes a saved token. When there is no saved
// token, or the saved one can no longer be refreshed, it runs the
// interactive authorization flow, reading the redirect URL from in.
func obtainToken(ctx context.Context, client *mendeley.Client, tokenFile string, in io.Reader) (*mendeley.Token, error) {
	if tok, err := mendeley.LoadToken(tokenFile); err == nil {
		fresh, err := client.Refresh(ctx, tok)
		if err == nil {
			if err := mendeley.SaveToken(tokenFile, fresh); err != nil {
				return nil, err
			}
			return fresh, nil
		}
		// A stale refresh token cannot be recovered; drop it and
		// re-authorize.
		fmt.Fprintf(os.Stderr, "warning: token refresh failed (%v), re-authorizing\n", err)
		os.Remove(tokenFile)
	}

	fmt.Println("No usable token. Open this URL in your browser and approve access:")
	fmt.Println()
	fmt.Println("  " + client.AuthorizeURL())
	fmt.Println()
	fmt.Print("Paste the full redirect URL here: ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading redirect URL: %w", err)
	}

	code, err := mendeley.ExtractCode(line)
	if err != nil {
		return nil, err
	}

	tok, err := client.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := mendeley.SaveToken(tokenFile, tok); err != nil {
		return nil, err
	}
	fmt.Printf("Token saved to %s.\n", tokenFile)
	return tok, nil
}

func printCheckReport(r types.CheckReport) {
	fmt.Printf("\nChecked %d DOIs: %d in library, %d missing.\n",
		r.Summary.TotalChecked, r.Summary.FoundInLibrary, r.Summary.NotInLibrary)

	if len(r.InLibrary) > 0 {
		fmt.Println("\nIn your library:")
		for _, doc := range r.InLibrary {
			if doc.Year > 0 {
				fmt.Printf("  %s  %s (%d)\n", doc.DOI, doc.Title, doc.Year)
			} else {
				fmt.Printf("  %s  %s\n", doc.DOI, doc.Title)
			}
		}
	}
	if len(r.NotInLibrary) > 0 {
		fmt.Println("\nNot in your library:")
		for _, doi := range r.NotInLibrary {
			fmt.Printf("  %s\n", doi)
		}
	}
}

func mendeleyConfig(cmd *cobra.Command) types.MendeleyConfig {
	tokenFile, _ := cmd.Flags().GetString("token-file")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")

	return types.MendeleyConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "paperdigest/" + version,
		},
		ClientID:     secretDefault(secrets.KeyMendeleyClientID, viper.GetString("mendeley.client_id")),
		ClientSecret: secretDefault(secrets.KeyMendeleyClientSecret, viper.GetString("mendeley.client_secret")),
		RedirectURI:  viper.GetString("mendeley.redirect_uri"),
		TokenFile:    tokenFile,
		PageLimit:    viper.GetInt("mendeley.page_limit"),
		CacheDir:     cacheDir,
	}
}

func init() {
	checkCmd.Flags().StringSlice("dois", nil, "DOIs to check (comma-separated or repeated)")
	checkCmd.Flags().String("file", "", "file with one DOI per line")
	checkCmd.Flags().String("from-markdown", "", "harvest DOIs cited in a Markdown document")
	checkCmd.Flags().String("output", "", "write the JSON report to this path")
	checkCmd.Flags().Bool("refresh", false, "refetch the library from the Mendeley API")
	checkCmd.Flags().String("token-file", ".mendeley-token.json", "where the OAuth token is stored")
	checkCmd.Flags().String("cache-dir", ".cache", "directory for the local library cache")

	rootCmd.AddCommand(checkCmd)
}
