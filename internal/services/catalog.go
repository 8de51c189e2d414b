package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
)

const (
	defaultXPReward          = 10
	defaultEstimatedTimeMins = 5
)

// CatalogService loads the authored YAML catalogs into the database. Rows
// are upserted by their natural key (challenge slug, content URL), so
// seeding is safe to repeat and edits to the files flow through on the next
// run.
type CatalogService struct {
	log *zap.Logger
}

func NewCatalogService(log *zap.Logger) *CatalogService {
	return &CatalogService{log: log}
}

// SeedChallenges upserts every challenge in the catalog file and returns
// how many it processed. A single invalid entry aborts the run so a typo
// never half-seeds the pool.
func (s *CatalogService) SeedChallenges(ctx context.Context, path string) (int, error) {
	catalog, err := models.LoadChallengeCatalog(path)
	if err != nil {
		return 0, err
	}

	for i, spec := range catalog.Challenges {
		ch, err := challengeFromSpec(spec)
		if err != nil {
			return 0, fmt.Errorf("challenge %d (%q): %w", i, spec.Slug, err)
		}
		if err := repository.UpsertChallengeBySlug(ctx, ch); err != nil {
			return 0, fmt.Errorf("upsert challenge %q: %w", spec.Slug, err)
		}
	}

	s.log.Info("Challenge catalog seeded",
		zap.String("path", path),
		zap.Int("count", len(catalog.Challenges)),
	)
	return len(catalog.Challenges), nil
}

// SeedContent upserts every content item in the catalog file.
func (s *CatalogService) SeedContent(ctx context.Context, path string) (int, error) {
	catalog, err := models.LoadContentCatalog(path)
	if err != nil {
		return 0, err
	}

	for i, spec := range catalog.Items {
		item, err := contentFromSpec(spec)
		if err != nil {
			return 0, fmt.Errorf("content item %d (%q): %w", i, spec.URL, err)
		}
		if err := repository.UpsertContentByURL(ctx, item); err != nil {
			return 0, fmt.Errorf("upsert content %q: %w", spec.URL, err)
		}
	}

	s.log.Info("Content catalog seeded",
		zap.String("path", path),
		zap.Int("count", len(catalog.Items)),
	)
	return len(catalog.Items), nil
}

func challengeFromSpec(spec models.ChallengeSpec) (*models.Challenge, error) {
	if spec.Slug == "" {
		return nil, fmt.Errorf("missing slug")
	}
	typ := models.ChallengeType(spec.Type)
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown challenge type %q", spec.Type)
	}
	diff := models.Difficulty(spec.Difficulty)
	if !diff.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", spec.Difficulty)
	}
	if spec.Title == "" || spec.Prompt == "" {
		return nil, fmt.Errorf("missing title or prompt")
	}
	if err := validateCorrectAnswer(typ, spec.CorrectAnswer); err != nil {
		return nil, err
	}

	answer, err := json.Marshal(spec.CorrectAnswer)
	if err != nil {
		return nil, fmt.Errorf("encode correct answer: %w", err)
	}

	xp := spec.XPReward
	if xp <= 0 {
		xp = defaultXPReward
	}
	mins := spec.EstimatedTimeMinutes
	if mins <= 0 {
		mins = defaultEstimatedTimeMins
	}

	return &models.Challenge{
		Slug:                 spec.Slug,
		Type:                 typ,
		Difficulty:           diff,
		Title:                spec.Title,
		Prompt:               spec.Prompt,
		Explanation:          spec.Explanation,
		CorrectAnswer:        datatypes.JSON(answer),
		XPReward:             xp,
		EstimatedTimeMinutes: mins,
		IsActive:             !spec.Inactive,
	}, nil
}

// validateCorrectAnswer rejects grading payloads the evaluator could not
// use: structured types need a value, bias swaps need a tag list, free-text
// keyword criteria must be a string list when present.
func validateCorrectAnswer(typ models.ChallengeType, answer map[string]interface{}) error {
	switch {
	case typ.Structured():
		v, ok := answer["value"].(string)
		if !ok || v == "" {
			return fmt.Errorf("%s challenges need a correct_answer.value string", typ)
		}
	case typ == models.TypeBiasSwap:
		tags, ok := answer["tags"].([]interface{})
		if !ok || len(tags) == 0 {
			return fmt.Errorf("bias_swap challenges need a non-empty correct_answer.tags list")
		}
		for _, t := range tags {
			if _, ok := t.(string); !ok {
				return fmt.Errorf("correct_answer.tags must contain only strings")
			}
		}
	default:
		if kws, present := answer["keywords"]; present {
			list, ok := kws.([]interface{})
			if !ok {
				return fmt.Errorf("correct_answer.keywords must be a list of strings")
			}
			for _, kw := range list {
				if _, ok := kw.(string); !ok {
					return fmt.Errorf("correct_answer.keywords must contain only strings")
				}
			}
		}
	}
	return nil
}

func contentFromSpec(spec models.ContentSpec) (*models.ContentItem, error) {
	if spec.URL == "" {
		return nil, fmt.Errorf("missing url")
	}
	if spec.Headline == "" || spec.Source == "" {
		return nil, fmt.Errorf("missing headline or source")
	}
	if spec.BiasRating < -3 || spec.BiasRating > 3 {
		return nil, fmt.Errorf("bias rating %.1f outside [-3, 3]", spec.BiasRating)
	}
	published, err := time.Parse("2006-01-02", spec.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse published_at %q: %w", spec.PublishedAt, err)
	}

	return &models.ContentItem{
		Headline:    spec.Headline,
		Source:      spec.Source,
		URL:         spec.URL,
		Summary:     spec.Summary,
		Topics:      spec.Topics,
		BiasRating:  spec.BiasRating,
		PublishedAt: published,
		IsActive:    !spec.Inactive,
	}, nil
}
