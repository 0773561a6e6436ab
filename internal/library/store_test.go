// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"testing"
	"time"

	"github.com/pvidak/paperdigest/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	docs := map[string]types.LibraryDocument{
		"10.1038/nature12345": {
			DOI:        "10.1038/nature12345",
			Title:      "Graphene at scale",
			Year:       2021,
			MendeleyID: "doc-1",
			Authors: []types.LibraryAuthor{
				{FirstName: "Ana", LastName: "Weiss"},
				{FirstName: "Luc", LastName: "Moreau"},
			},
			FetchedAt: fetched,
		},
		"10.1126/science.abc123": {
			DOI:        "10.1126/Science.ABC123",
			Title:      "Untitled",
			Year:       2023,
			MendeleyID: "doc-3",
			FetchedAt:  fetched,
		},
	}

	if err := s.ReplaceAll(ctx, docs); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d documents, want 2", len(got))
	}

	doc, ok := got["10.1038/nature12345"]
	if !ok {
		t.Fatal("10.1038/nature12345 missing from cache")
	}
	if doc.Title != "Graphene at scale" || doc.Year != 2021 || doc.MendeleyID != "doc-1" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if len(doc.Authors) != 2 || doc.Authors[1].LastName != "Moreau" {
		t.Errorf("unexpected authors: %+v", doc.Authors)
	}
	if !doc.FetchedAt.Equal(fetched) {
		t.Errorf("FetchedAt = %v, want %v", doc.FetchedAt, fetched)
	}

	// Mixed-case DOI is keyed lowercase but retains its original casing.
	if mixed := got["10.1126/science.abc123"]; mixed.DOI != "10.1126/Science.ABC123" {
		t.Errorf("original DOI casing lost: %q", mixed.DOI)
	}
}

func TestReplaceAllOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := map[string]types.LibraryDocument{
		"10.1/a": {DOI: "10.1/a", Title: "Old A"},
		"10.1/b": {DOI: "10.1/b", Title: "Old B"},
	}
	if err := s.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	second := map[string]types.LibraryDocument{
		"10.1/c": {DOI: "10.1/c", Title: "New C"},
	}
	if err := s.ReplaceAll(ctx, second); err != nil {
		t.Fatalf("ReplaceAll (second): %v", err)
	}

	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d documents after replace, want 1", len(got))
	}
	if _, ok := got["10.1/c"]; !ok {
		t.Error("10.1/c missing after replace")
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestAllEmptyCache(t *testing.T) {
	s := openTestStore(t)

	got, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d documents from empty cache, want 0", len(got))
	}
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	docs := map[string]types.LibraryDocument{
		"10.5/persist": {DOI: "10.5/persist", Title: "Persisted"},
	}
	if err := s.ReplaceAll(ctx, docs); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore (reopen): %v", err)
	}
	defer reopened.Close()

	got, err := reopened.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if got["10.5/persist"].Title != "Persisted" {
		t.Errorf("document not persisted across reopen: %+v", got)
	}
}
