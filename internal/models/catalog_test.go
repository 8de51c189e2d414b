package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadChallengeCatalog(t *testing.T) {
	path := writeCatalog(t, `
challenges:
  - slug: sample-puzzle
    type: logic_puzzle
    difficulty: beginner
    title: "Sample"
    prompt: "Pick one."
    correct_answer:
      value: "a"
    xp_reward: 10
  - slug: sample-swap
    type: bias_swap
    difficulty: advanced
    title: "Swap"
    prompt: "Tag it."
    correct_answer:
      tags: [framing, loaded-language]
    inactive: true
`)

	catalog, err := LoadChallengeCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Challenges, 2)

	first := catalog.Challenges[0]
	assert.Equal(t, "sample-puzzle", first.Slug)
	assert.Equal(t, "logic_puzzle", first.Type)
	assert.Equal(t, "a", first.CorrectAnswer["value"])
	assert.False(t, first.Inactive)

	second := catalog.Challenges[1]
	assert.True(t, second.Inactive)
	tags, ok := second.CorrectAnswer["tags"].([]interface{})
	require.True(t, ok)
	assert.Len(t, tags, 2)
}

func TestLoadChallengeCatalogMissingFile(t *testing.T) {
	_, err := LoadChallengeCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadChallengeCatalogBadYAML(t *testing.T) {
	path := writeCatalog(t, "challenges: [}")
	_, err := LoadChallengeCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestLoadContentCatalog(t *testing.T) {
	path := writeCatalog(t, `
items:
  - headline: "Budget Approved"
    source: "Civic Ledger"
    url: "https://civicledger.example/budget"
    topics: [local-politics, economy]
    bias_rating: -1.5
    published_at: "2026-08-15"
`)

	catalog, err := LoadContentCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Items, 1)

	item := catalog.Items[0]
	assert.Equal(t, "Budget Approved", item.Headline)
	assert.Equal(t, []string{"local-politics", "economy"}, item.Topics)
	assert.Equal(t, -1.5, item.BiasRating)
	assert.Equal(t, "2026-08-15", item.PublishedAt)
}
