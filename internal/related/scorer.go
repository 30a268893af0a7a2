// Package related scores papers for relatedness against a target paper
// using author overlap, lexical overlap, and recency proximity.
package related

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"scholarbot/internal/paper"
)

// DefaultMaxResults is used when the caller does not request a limit.
const DefaultMaxResults = 5

// recencyWindowYears is the year distance at which the recency
// component reaches zero.
const recencyWindowYears = 20

// Reason thresholds: a component only produces a human-readable reason
// when it contributes meaningfully.
const (
	authorReasonThreshold  = 0.0 // Any shared author is worth reporting
	lexicalReasonThreshold = 0.3
	recencyReasonThreshold = 0.5
	maxReasons             = 3
)

// Weights are the relative contributions of the scoring components.
// They are heuristics, exposed as configuration rather than constants.
type Weights struct {
	Author  float64 `yaml:"author"`
	Lexical float64 `yaml:"lexical"`
	Recency float64 `yaml:"recency"`
}

// DefaultWeights returns the standard component weights.
func DefaultWeights() Weights {
	return Weights{Author: 0.35, Lexical: 0.45, Recency: 0.20}
}

// Result is one ranked relatedness match.
type Result struct {
	Paper   *paper.Paper
	Score   int // Integer percentage, round-half-up
	Reasons []string
}

// Scorer ranks candidate papers against a target.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights. Zero weights fall
// back to the defaults.
func NewScorer(w Weights) *Scorer {
	if w.Author == 0 && w.Lexical == 0 && w.Recency == 0 {
		w = DefaultWeights()
	}
	return &Scorer{weights: w}
}

// FindRelated ranks candidates by relatedness to target. The target
// itself is excluded, results are sorted by descending score with
// registry order breaking ties, and at most maxResults entries are
// returned. Candidates that score zero are dropped.
func (s *Scorer) FindRelated(target *paper.Paper, candidates []*paper.Paper, maxResults int) []Result {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	targetAuthors := authorSet(target.Authors)
	targetTokens, targetOrder := tokenize(target.Title + " " + target.Abstract)

	var results []Result
	for _, c := range candidates {
		if c.Index == target.Index {
			continue
		}

		authorScore, shared := authorOverlap(targetAuthors, c.Authors)
		lexScore, keywords := lexicalOverlap(targetTokens, targetOrder, c)
		recScore := recencyProximity(target, c)

		total := s.weights.Author*authorScore +
			s.weights.Lexical*lexScore +
			s.weights.Recency*recScore
		percent := int(math.Floor(total*100 + 0.5))
		if percent <= 0 {
			continue
		}

		results = append(results, Result{
			Paper:   c,
			Score:   percent,
			Reasons: s.reasons(authorScore, shared, lexScore, keywords, recScore, target, c),
		})
	}

	// Stable sort keeps registry order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// reason pairs a message with its weighted contribution for ordering.
type reason struct {
	text   string
	weight float64
}

func (s *Scorer) reasons(authorScore float64, shared []string, lexScore float64, keywords []string, recScore float64, target, c *paper.Paper) []string {
	var candidates []reason

	if authorScore > authorReasonThreshold && len(shared) > 0 {
		noun := "author"
		if len(shared) > 1 {
			noun = "authors"
		}
		candidates = append(candidates, reason{
			text:   fmt.Sprintf("shared %s: %s", noun, strings.Join(shared, ", ")),
			weight: s.weights.Author * authorScore,
		})
	}
	if lexScore > lexicalReasonThreshold && len(keywords) > 0 {
		candidates = append(candidates, reason{
			text:   fmt.Sprintf("overlapping topics: %s", strings.Join(keywords, ", ")),
			weight: s.weights.Lexical * lexScore,
		})
	}
	if recScore > recencyReasonThreshold && target.HasYear() && c.HasYear() {
		candidates = append(candidates, reason{
			text:   fmt.Sprintf("published close in time (%d and %d)", target.Year, c.Year),
			weight: s.weights.Recency * recScore,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})
	if len(candidates) > maxReasons {
		candidates = candidates[:maxReasons]
	}

	out := make([]string, len(candidates))
	for i, r := range candidates {
		out[i] = r.text
	}
	return out
}

// authorSet normalizes author names for overlap comparison.
func authorSet(authors []string) map[string]string {
	set := make(map[string]string, len(authors))
	for _, a := range authors {
		key := strings.ToLower(strings.Join(strings.Fields(a), " "))
		if key != "" {
			set[key] = strings.TrimSpace(a)
		}
	}
	return set
}

// authorOverlap returns |shared| / |union| and the shared author names
// in the candidate's listed order.
func authorOverlap(target map[string]string, candidateAuthors []string) (float64, []string) {
	candidate := authorSet(candidateAuthors)
	if len(target) == 0 || len(candidate) == 0 {
		return 0, nil
	}

	var shared []string
	for _, a := range candidateAuthors {
		key := strings.ToLower(strings.Join(strings.Fields(a), " "))
		if _, ok := target[key]; ok {
			shared = append(shared, strings.TrimSpace(a))
		}
	}

	union := len(target)
	for key := range candidate {
		if _, ok := target[key]; !ok {
			union++
		}
	}
	if union == 0 {
		return 0, nil
	}
	return float64(len(shared)) / float64(union), shared
}

// lexicalOverlap returns the token-set Jaccard similarity between the
// target tokens and the candidate's title+abstract, plus up to three
// shared keywords in the target's token order.
func lexicalOverlap(targetTokens map[string]bool, targetOrder []string, c *paper.Paper) (float64, []string) {
	candTokens, _ := tokenize(c.Title + " " + c.Abstract)
	if len(targetTokens) == 0 || len(candTokens) == 0 {
		return 0, nil
	}

	var keywords []string
	intersection := 0
	for _, tok := range targetOrder {
		if candTokens[tok] {
			intersection++
			if len(keywords) < maxReasons {
				keywords = append(keywords, tok)
			}
		}
	}

	union := len(targetTokens)
	for tok := range candTokens {
		if !targetTokens[tok] {
			union++
		}
	}
	return float64(intersection) / float64(union), keywords
}

// recencyProximity maps year distance onto [0,1], linear within the
// recency window. Unknown years contribute zero.
func recencyProximity(a, b *paper.Paper) float64 {
	if !a.HasYear() || !b.HasYear() {
		return 0
	}
	dist := math.Abs(float64(a.Year - b.Year))
	if dist >= recencyWindowYears {
		return 0
	}
	return 1 - dist/recencyWindowYears
}
