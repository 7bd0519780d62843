package exercise

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Exercises enumerates every exercise document as slug/title pairs sorted by title.
func (s *Store) Exercises(ctx context.Context) ([]IndexEntry, error) {
	entries := []IndexEntry{}
	err := s.walk(ctx, func(slug string, rec *Record) error {
		entries = append(entries, IndexEntry{Slug: slug, Title: rec.Metadata.Title})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Byte-wise title order with a slug tie-break keeps index.json stable across runs.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Title != entries[j].Title {
			return entries[i].Title < entries[j].Title
		}
		return entries[i].Slug < entries[j].Slug
	})
	return entries, nil
}

// RebuildIndex regenerates index.json from the exercise documents on disk.
func (s *Store) RebuildIndex(ctx context.Context) ([]IndexEntry, error) {
	entries, err := s.Exercises(ctx)
	if err != nil {
		return nil, err
	}

	data, err := encodeJSON(entries)
	if err != nil {
		return nil, fmt.Errorf("encode index: %w", err)
	}
	if err := s.manager.WriteFile(s.manager.IndexPath(), data); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}
	s.logger.Debug("rebuilt index", zap.Int("exercises", len(entries)))
	return entries, nil
}
