// Package evaluator grades a single answer against its challenge. Each
// challenge type has its own correctness policy, selected by a closed switch
// over the type tag. Grading is pure; callers own persistence and streak
// updates.
package evaluator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/stats"
)

// ErrMalformedAnswer marks an answer payload that does not decode into the
// shape the challenge type expects. Nothing is persisted when it is returned.
var ErrMalformedAnswer = errors.New("malformed answer payload")

// Config holds the grading knobs. The bias swap threshold and the weights on
// speed and partial credit are tuning constants carried over from product
// experiments; they are configurable rather than hardcoded.
type Config struct {
	// BiasSwapThreshold is the Jaccard similarity a tag selection must
	// exceed to count as correct.
	BiasSwapThreshold float64
	// MinWordCount grades free text with no keyword criteria: answers at or
	// above this many words pass.
	MinWordCount int
	// DefaultMinKeywords applies when keyword criteria omit minKeywords.
	DefaultMinKeywords int
	// PartialCreditRatio scales the XP of an incorrect submission.
	PartialCreditRatio float64
	// SpeedBonusRatio scales the XP of a correct submission faster than the
	// bonus window.
	SpeedBonusRatio float64
	// SpeedBonusWindow is the fraction of the estimated time under which the
	// speed bonus applies.
	SpeedBonusWindow float64
}

// DefaultConfig returns the production grading parameters.
func DefaultConfig() Config {
	return Config{
		BiasSwapThreshold:  0.7,
		MinWordCount:       50,
		DefaultMinKeywords: 1,
		PartialCreditRatio: 0.3,
		SpeedBonusRatio:    1.2,
		SpeedBonusWindow:   0.5,
	}
}

// Evaluator grades answers and assigns XP and feedback.
type Evaluator struct {
	cfg Config
}

// New returns an Evaluator with the given config.
func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Answer payload shapes, one per grading family.
type valueAnswer struct {
	Value string `json:"value"`
}

type tagAnswer struct {
	Tags []string `json:"tags"`
}

type textAnswer struct {
	Text string `json:"text"`
}

// keywordCriteria is the free-text grading payload stored on a challenge.
// Empty keywords fall back to the minimum-length heuristic.
type keywordCriteria struct {
	Keywords    []string `json:"keywords"`
	MinKeywords int      `json:"minKeywords"`
}

// CheckAnswer reports whether answer is correct for the challenge. A payload
// that does not decode into the type's expected shape returns
// ErrMalformedAnswer; weak but well-formed answers are simply incorrect.
func (e *Evaluator) CheckAnswer(ch *models.Challenge, answer json.RawMessage) (bool, error) {
	if emptyJSON(answer) {
		return false, fmt.Errorf("%w: empty answer", ErrMalformedAnswer)
	}

	switch ch.Type {
	case models.TypeLogicPuzzle, models.TypeDataLiteracy:
		return e.checkValue(ch, answer)
	case models.TypeBiasSwap:
		return e.checkBiasSwap(ch, answer)
	case models.TypeCounterArgument, models.TypeSynthesis, models.TypeEthicalDilemma:
		return e.checkFreeText(ch, answer)
	}
	return false, fmt.Errorf("challenge %d has unknown type %q", ch.ID, ch.Type)
}

// checkValue compares structured answers by exact equality.
func (e *Evaluator) checkValue(ch *models.Challenge, answer json.RawMessage) (bool, error) {
	var got valueAnswer
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}
	if got.Value == "" {
		return false, fmt.Errorf("%w: missing value", ErrMalformedAnswer)
	}

	var want valueAnswer
	if err := json.Unmarshal(ch.CorrectAnswer, &want); err != nil {
		return false, fmt.Errorf("challenge %d: decode correct answer: %w", ch.ID, err)
	}
	return got.Value == want.Value, nil
}

// checkBiasSwap compares indicator tag sets by Jaccard similarity. An empty
// union scores 0, so a blank selection is incorrect rather than an error.
func (e *Evaluator) checkBiasSwap(ch *models.Challenge, answer json.RawMessage) (bool, error) {
	var got tagAnswer
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}

	var want tagAnswer
	if err := json.Unmarshal(ch.CorrectAnswer, &want); err != nil {
		return false, fmt.Errorf("challenge %d: decode correct answer: %w", ch.ID, err)
	}
	return stats.Jaccard(got.Tags, want.Tags) > e.cfg.BiasSwapThreshold, nil
}

// checkFreeText grades prose. With keyword criteria on the challenge the
// answer must contain at least minKeywords of them (case-insensitive);
// without criteria a minimum word count stands in. Both are low-confidence
// heuristics and never produce an error for weak prose.
func (e *Evaluator) checkFreeText(ch *models.Challenge, answer json.RawMessage) (bool, error) {
	var got textAnswer
	if err := json.Unmarshal(answer, &got); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedAnswer, err)
	}

	var criteria keywordCriteria
	if len(ch.CorrectAnswer) > 0 {
		if err := json.Unmarshal(ch.CorrectAnswer, &criteria); err != nil {
			return false, fmt.Errorf("challenge %d: decode correct answer: %w", ch.ID, err)
		}
	}

	if len(criteria.Keywords) == 0 {
		return wordCount(got.Text) >= e.cfg.MinWordCount, nil
	}

	min := criteria.MinKeywords
	if min <= 0 {
		min = e.cfg.DefaultMinKeywords
	}
	text := strings.ToLower(got.Text)
	matches := 0
	for _, kw := range criteria.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return matches >= min, nil
}

// XP computes the reward for a graded submission. Incorrect answers earn
// partial credit for engagement; correct answers inside the speed window
// earn a bonus.
func (e *Evaluator) XP(ch *models.Challenge, correct bool, timeSpentSeconds int) int {
	base := float64(ch.XPReward)
	if !correct {
		return int(math.Floor(base * e.cfg.PartialCreditRatio))
	}
	window := e.cfg.SpeedBonusWindow * float64(ch.EstimatedTimeMinutes) * 60
	if float64(timeSpentSeconds) < window {
		return int(math.Floor(base * e.cfg.SpeedBonusRatio))
	}
	return ch.XPReward
}

// Feedback returns the text shown after grading. Success gets the authored
// explanation; failure gets the explanation plus a type-specific hint.
// Deterministic, no randomness.
func (e *Evaluator) Feedback(ch *models.Challenge, correct bool) string {
	if correct {
		return ch.Explanation
	}
	hint := typeHint(ch.Type)
	if ch.Explanation == "" {
		return hint
	}
	return ch.Explanation + " " + hint
}

func typeHint(t models.ChallengeType) string {
	switch t {
	case models.TypeBiasSwap:
		return "Hint: identify loaded or one-sided language before picking your tags."
	case models.TypeLogicPuzzle:
		return "Hint: look for logical flaws in each premise before settling on an answer."
	case models.TypeDataLiteracy:
		return "Hint: check what the numbers actually measure before drawing a conclusion."
	case models.TypeCounterArgument:
		return "Hint: address the strongest version of the opposing view, not the weakest."
	case models.TypeSynthesis:
		return "Hint: connect the competing perspectives instead of listing them."
	case models.TypeEthicalDilemma:
		return "Hint: name the tradeoff explicitly before committing to a position."
	}
	return "Hint: review the prompt and try again."
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func emptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
