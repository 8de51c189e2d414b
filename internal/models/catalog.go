package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChallengeSpec matches one entry of the challenges catalog file.
type ChallengeSpec struct {
	Slug                 string                 `yaml:"slug"`
	Type                 string                 `yaml:"type"`
	Difficulty           string                 `yaml:"difficulty"`
	Title                string                 `yaml:"title"`
	Prompt               string                 `yaml:"prompt"`
	Explanation          string                 `yaml:"explanation"`
	CorrectAnswer        map[string]interface{} `yaml:"correct_answer"`
	XPReward             int                    `yaml:"xp_reward"`
	EstimatedTimeMinutes int                    `yaml:"estimated_time_minutes"`
	Inactive             bool                   `yaml:"inactive,omitempty"`
}

// ChallengeCatalog holds all authored challenges.
type ChallengeCatalog struct {
	Challenges []ChallengeSpec `yaml:"challenges"`
}

// LoadChallengeCatalog reads and parses the challenges catalog file.
func LoadChallengeCatalog(path string) (*ChallengeCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read challenge catalog: %w", err)
	}

	var catalog ChallengeCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge catalog YAML: %w", err)
	}

	return &catalog, nil
}

// ContentSpec matches one entry of the content catalog file.
type ContentSpec struct {
	Headline    string   `yaml:"headline"`
	Source      string   `yaml:"source"`
	URL         string   `yaml:"url"`
	Summary     string   `yaml:"summary,omitempty"`
	Topics      []string `yaml:"topics,omitempty"`
	BiasRating  float64  `yaml:"bias_rating"`
	PublishedAt string   `yaml:"published_at"` // YYYY-MM-DD
	Inactive    bool     `yaml:"inactive,omitempty"`
}

// ContentCatalog holds the seeded reading feed.
type ContentCatalog struct {
	Items []ContentSpec `yaml:"items"`
}

// LoadContentCatalog reads and parses the content catalog file.
func LoadContentCatalog(path string) (*ContentCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content catalog: %w", err)
	}

	var catalog ContentCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content catalog YAML: %w", err)
	}

	return &catalog, nil
}
