package services

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
)

func validChallengeSpec() models.ChallengeSpec {
	return models.ChallengeSpec{
		Slug:                 "logic-test",
		Type:                 "logic_puzzle",
		Difficulty:           "intermediate",
		Title:                "A Puzzle",
		Prompt:               "Which option names the flaw?",
		Explanation:          "Option b names it.",
		CorrectAnswer:        map[string]interface{}{"value": "b"},
		XPReward:             15,
		EstimatedTimeMinutes: 4,
	}
}

func TestChallengeFromSpec(t *testing.T) {
	ch, err := challengeFromSpec(validChallengeSpec())
	require.NoError(t, err)

	assert.Equal(t, "logic-test", ch.Slug)
	assert.Equal(t, models.TypeLogicPuzzle, ch.Type)
	assert.Equal(t, models.DifficultyIntermediate, ch.Difficulty)
	assert.Equal(t, 15, ch.XPReward)
	assert.Equal(t, 4, ch.EstimatedTimeMinutes)
	assert.True(t, ch.IsActive)

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(ch.CorrectAnswer, &stored))
	assert.Equal(t, "b", stored["value"])
}

func TestChallengeFromSpecDefaults(t *testing.T) {
	spec := validChallengeSpec()
	spec.XPReward = 0
	spec.EstimatedTimeMinutes = 0

	ch, err := challengeFromSpec(spec)
	require.NoError(t, err)
	assert.Equal(t, defaultXPReward, ch.XPReward)
	assert.Equal(t, defaultEstimatedTimeMins, ch.EstimatedTimeMinutes)
}

func TestChallengeFromSpecInactive(t *testing.T) {
	spec := validChallengeSpec()
	spec.Inactive = true

	ch, err := challengeFromSpec(spec)
	require.NoError(t, err)
	assert.False(t, ch.IsActive)
}

func TestChallengeFromSpecRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ChallengeSpec)
	}{
		{"missing slug", func(s *models.ChallengeSpec) { s.Slug = "" }},
		{"unknown type", func(s *models.ChallengeSpec) { s.Type = "trivia" }},
		{"unknown difficulty", func(s *models.ChallengeSpec) { s.Difficulty = "expert" }},
		{"missing title", func(s *models.ChallengeSpec) { s.Title = "" }},
		{"missing prompt", func(s *models.ChallengeSpec) { s.Prompt = "" }},
		{"structured without value", func(s *models.ChallengeSpec) {
			s.CorrectAnswer = map[string]interface{}{}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := validChallengeSpec()
			tc.mutate(&spec)
			_, err := challengeFromSpec(spec)
			assert.Error(t, err)
		})
	}
}

func TestValidateCorrectAnswer(t *testing.T) {
	tests := []struct {
		name    string
		typ     models.ChallengeType
		answer  map[string]interface{}
		wantErr bool
	}{
		{"value present", models.TypeLogicPuzzle, map[string]interface{}{"value": "a"}, false},
		{"value empty", models.TypeDataLiteracy, map[string]interface{}{"value": ""}, true},
		{"value wrong type", models.TypeLogicPuzzle, map[string]interface{}{"value": 2}, true},
		{"tags present", models.TypeBiasSwap, map[string]interface{}{"tags": []interface{}{"framing"}}, false},
		{"tags empty", models.TypeBiasSwap, map[string]interface{}{"tags": []interface{}{}}, true},
		{"tags missing", models.TypeBiasSwap, map[string]interface{}{}, true},
		{"tag not a string", models.TypeBiasSwap, map[string]interface{}{"tags": []interface{}{"framing", 3}}, true},
		{"free text without criteria", models.TypeEthicalDilemma, map[string]interface{}{}, false},
		{"free text with keywords", models.TypeCounterArgument, map[string]interface{}{
			"keywords":    []interface{}{"supply", "incentive"},
			"minKeywords": 2,
		}, false},
		{"keywords not a list", models.TypeSynthesis, map[string]interface{}{"keywords": "supply"}, true},
		{"keyword not a string", models.TypeSynthesis, map[string]interface{}{
			"keywords": []interface{}{"supply", 4},
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateCorrectAnswer(tc.typ, tc.answer)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func validContentSpec() models.ContentSpec {
	return models.ContentSpec{
		Headline:    "Council Approves Budget",
		Source:      "Civic Ledger",
		URL:         "https://civicledger.example/budget",
		Summary:     "The vote was 6-3.",
		Topics:      []string{"local-politics"},
		BiasRating:  0,
		PublishedAt: "2026-08-15",
	}
}

func TestContentFromSpec(t *testing.T) {
	item, err := contentFromSpec(validContentSpec())
	require.NoError(t, err)

	assert.Equal(t, "Council Approves Budget", item.Headline)
	assert.Equal(t, []string{"local-politics"}, []string(item.Topics))
	assert.True(t, item.IsActive)
	assert.Equal(t, 2026, item.PublishedAt.Year())
}

func TestContentFromSpecBiasBounds(t *testing.T) {
	for _, rating := range []float64{-3, -1.5, 0, 3} {
		spec := validContentSpec()
		spec.BiasRating = rating
		_, err := contentFromSpec(spec)
		assert.NoError(t, err, "rating %v", rating)
	}
	for _, rating := range []float64{-3.5, 3.1} {
		spec := validContentSpec()
		spec.BiasRating = rating
		_, err := contentFromSpec(spec)
		assert.Error(t, err, "rating %v", rating)
	}
}

func TestContentFromSpecRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ContentSpec)
	}{
		{"missing url", func(s *models.ContentSpec) { s.URL = "" }},
		{"missing headline", func(s *models.ContentSpec) { s.Headline = "" }},
		{"missing source", func(s *models.ContentSpec) { s.Source = "" }},
		{"bad date", func(s *models.ContentSpec) { s.PublishedAt = "15-08-2026" }},
		{"empty date", func(s *models.ContentSpec) { s.PublishedAt = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := validContentSpec()
			tc.mutate(&spec)
			_, err := contentFromSpec(spec)
			assert.Error(t, err)
		})
	}
}

// The shipped catalog files must convert cleanly, so a bad edit fails here
// before it fails at seed time.
func TestShippedCatalogsAreValid(t *testing.T) {
	challenges, err := models.LoadChallengeCatalog(filepath.Join("..", "..", "config", "challenges.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, challenges.Challenges)

	types := map[models.ChallengeType]bool{}
	for i, spec := range challenges.Challenges {
		ch, err := challengeFromSpec(spec)
		require.NoError(t, err, "challenge %d (%s)", i, spec.Slug)
		types[ch.Type] = true
	}
	for _, typ := range models.ChallengeTypes {
		assert.True(t, types[typ], "catalog is missing type %s", typ)
	}

	content, err := models.LoadContentCatalog(filepath.Join("..", "..", "config", "content.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, content.Items)

	var minRating, maxRating float64
	for i, spec := range content.Items {
		item, err := contentFromSpec(spec)
		require.NoError(t, err, "content %d (%s)", i, spec.URL)
		if item.BiasRating < minRating {
			minRating = item.BiasRating
		}
		if item.BiasRating > maxRating {
			maxRating = item.BiasRating
		}
	}
	assert.LessOrEqual(t, minRating, -2.0, "feed should reach the left end of the scale")
	assert.GreaterOrEqual(t, maxRating, 2.0, "feed should reach the right end of the scale")
}
