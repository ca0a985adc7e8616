package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed stations.json
var defaultStations []byte

// loadStations builds the station catalog. Explicit names win over a file,
// and a file wins over the bundled catalog.
func loadStations(names []string, path string) ([]string, error) {
	if len(names) > 0 {
		return dedupeStations(names), nil
	}

	data := defaultStations
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stations file %s: %w", path, err)
		}
	}

	var catalog []string
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse stations: %w", err)
	}
	catalog = dedupeStations(catalog)
	if len(catalog) == 0 {
		return nil, fmt.Errorf("station catalog is empty")
	}
	return catalog, nil
}

func dedupeStations(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// ResolveStation picks the catalog entry the utterance most likely names.
//
// An entry is a candidate when either lowercase string contains the other.
// If nothing qualifies, entries containing the utterance as an in-order
// subsequence of characters ("cntrl" for "central") are tried instead.
// Candidates are scored by the number of distinct characters they share with
// the utterance; the first entry with the best score wins.
func ResolveStation(utterance string, catalog []string) (string, bool) {
	u := strings.ToLower(strings.TrimSpace(utterance))
	if u == "" {
		return "", false
	}

	if best, ok := bestStation(u, catalog, func(station string) bool {
		return strings.Contains(station, u) || strings.Contains(u, station)
	}); ok {
		return best, true
	}
	return bestStation(u, catalog, func(station string) bool {
		return isSubsequence(strings.ReplaceAll(u, " ", ""), station)
	})
}

func bestStation(u string, catalog []string, candidate func(station string) bool) (string, bool) {
	best, bestScore := "", 0
	for _, station := range catalog {
		s := strings.ToLower(station)
		if !candidate(s) {
			continue
		}
		if score := charOverlap(u, s); score > bestScore {
			best, bestScore = station, score
		}
	}
	return best, bestScore > 0
}

// charOverlap is the size of the intersection of the two character sets.
func charOverlap(a, b string) int {
	set := make(map[rune]bool)
	for _, r := range a {
		set[r] = true
	}
	n := 0
	for _, r := range b {
		if set[r] {
			n++
			delete(set, r)
		}
	}
	return n
}

func isSubsequence(sub, s string) bool {
	if sub == "" {
		return false
	}
	rs := []rune(sub)
	i := 0
	for _, r := range s {
		if r == rs[i] {
			i++
			if i == len(rs) {
				return true
			}
		}
	}
	return false
}

// stationExamples returns up to n catalog names, leaving out exclude.
func stationExamples(catalog []string, n int, exclude string) string {
	names := remove(catalog, exclude)
	if len(names) > n {
		names = names[:n]
	}
	return strings.Join(names, ", ")
}
