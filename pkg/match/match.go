// Package match resolves user-typed item tokens against a catalog of
// canonical item names. Matching is tiered: an exact hit always wins, then
// abbreviation expansion, then prefix completion, and only as a last resort
// a similarity score. The tiers trade recall for predictability; a fuzzy
// score can never override a more specific tier.
package match

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

type Kind string

const (
	KindExact        Kind = "exact"
	KindAbbreviation Kind = "abbreviation"
	KindPrefix       Kind = "prefix"
	KindFuzzy        Kind = "fuzzy"
)

var kindWeight = map[Kind]int{
	KindExact:        4,
	KindAbbreviation: 3,
	KindPrefix:       2,
	KindFuzzy:        1,
}

type Config struct {
	// Threshold is the minimum similarity score (0-1) the fuzzy tier accepts.
	Threshold float64
	// Abbreviations maps a token's trailing segment to its expansion,
	// e.g. "b" -> "block" so "iron_b" resolves as "iron_block".
	Abbreviations map[string]string
}

func DefaultConfig() Config {
	return Config{
		Threshold: 0.6,
		Abbreviations: map[string]string{
			"b": "block",
			"i": "ingot",
			"n": "nugget",
			"g": "gem",
			"d": "dust",
			"p": "plate",
		},
	}
}

type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Similarity is a symmetric, normalized score in [0, 1]; 1.0 only for
// identical strings (case-insensitive). It is the sequence-matcher ratio
// computed over runes.
func Similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitRunes(strings.ToLower(a)), splitRunes(strings.ToLower(b)))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// ExpandAbbreviation rewrites the trailing "_<suffix>" segment of a token
// when the suffix is a known abbreviation; otherwise the token is returned
// unchanged.
func (r *Resolver) ExpandAbbreviation(token string) string {
	parts := strings.Split(token, "_")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if expansion, ok := r.cfg.Abbreviations[last]; ok {
			parts[len(parts)-1] = expansion
			return strings.Join(parts, "_")
		}
	}
	return token
}

// Resolve finds the single best catalog entry for a token. The returned
// bool is false when no tier produced a match; that is a normal outcome,
// not an error.
func (r *Resolver) Resolve(token string, catalog []string) (string, Kind, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", "", false
	}

	for _, entry := range catalog {
		if strings.ToLower(entry) == token {
			return entry, KindExact, true
		}
	}

	if expanded := r.ExpandAbbreviation(token); expanded != token {
		for _, entry := range catalog {
			if strings.ToLower(entry) == expanded {
				return entry, KindAbbreviation, true
			}
		}
	}

	// prefix tier: shortest completion is the most specific one
	best := ""
	bestKind := Kind("")
	for _, entry := range catalog {
		lower := strings.ToLower(entry)
		if strings.HasPrefix(lower, token) {
			if best == "" || len(lower) < len(strings.ToLower(best)) {
				best = entry
				bestKind = KindPrefix
			}
		}
	}
	if bestKind == KindPrefix {
		return best, KindPrefix, true
	}

	bestScore := 0.0
	for _, entry := range catalog {
		score := Similarity(token, entry)
		if score > bestScore && score >= r.cfg.Threshold {
			bestScore = score
			best = entry
		}
	}
	if best != "" {
		return best, KindFuzzy, true
	}

	return "", "", false
}

type Match struct {
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	Score float64 `json:"score"`
}

// FilterCatalog scores every catalog entry against the token and returns
// the matches ordered best-first: by tier weight, then by score. Callers
// may truncate the result. An empty token matches the whole catalog in its
// original order.
func (r *Resolver) FilterCatalog(token string, catalog []string) []Match {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		matches := make([]Match, len(catalog))
		for i, entry := range catalog {
			matches[i] = Match{Name: entry}
		}
		return matches
	}

	expanded := r.ExpandAbbreviation(token)

	var matches []Match
	for _, entry := range catalog {
		lower := strings.ToLower(entry)
		switch {
		case lower == token:
			matches = append(matches, Match{Name: entry, Kind: KindExact, Score: 1.0})
		case strings.HasPrefix(lower, token):
			matches = append(matches, Match{Name: entry, Kind: KindPrefix, Score: 0.8})
		case expanded != token && lower == expanded:
			matches = append(matches, Match{Name: entry, Kind: KindAbbreviation, Score: 0.9})
		default:
			if score := Similarity(token, lower); score >= r.cfg.Threshold {
				matches = append(matches, Match{Name: entry, Kind: KindFuzzy, Score: score})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if kindWeight[matches[i].Kind] != kindWeight[matches[j].Kind] {
			return kindWeight[matches[i].Kind] > kindWeight[matches[j].Kind]
		}
		return matches[i].Score > matches[j].Score
	})

	return matches
}
