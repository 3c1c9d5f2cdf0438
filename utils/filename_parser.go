package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxVariants is the highest numeric suffix probed for a base image (_1.._12)
const MaxVariants = 12

// variantRegex matches <stem>[_<digits>]<.ext>, capturing stem and extension
var variantRegex = regexp.MustCompile(`^(.*?)(?:_(\d+))?(\.[a-zA-Z0-9]+)$`)

// ParseBase splits an image reference into its base name and extension.
// An existing numeric suffix (_n) is stripped from the base:
//
//	cuadro_3.jpg -> cuadro, .jpg
//	cuadro.jpg   -> cuadro, .jpg
//
// When the pattern does not match it falls back to the last '.', and when
// there is no '.' at all the whole string is the base.
func ParseBase(path string) (base string, ext string) {
	if m := variantRegex.FindStringSubmatch(path); m != nil {
		return m[1], m[3]
	}

	if lastDot := strings.LastIndex(path, "."); lastDot > -1 {
		return path[:lastDot], path[lastDot:]
	}

	return path, ""
}

// GenerateCandidates returns base_1ext .. base_<maxVariants>ext in ascending order
func GenerateCandidates(base, ext string, maxVariants int) []string {
	if maxVariants < 1 {
		return nil
	}
	candidates := make([]string, 0, maxVariants)
	for i := 1; i <= maxVariants; i++ {
		candidates = append(candidates, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
	return candidates
}

// ExcludeExisting drops every candidate already present in list (exact, case-sensitive)
func ExcludeExisting(candidates []string, list []string) []string {
	existing := make(map[string]bool, len(list))
	for _, item := range list {
		existing[item] = true
	}

	var filtered []string
	for _, c := range candidates {
		if !existing[c] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Unique removes empty entries and duplicates, keeping first occurrences in order
func Unique(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// SplitImageList parses a comma separated data-images attribute
func SplitImageList(attr string) []string {
	var list []string
	for _, part := range strings.Split(attr, ",") {
		if s := strings.TrimSpace(part); s != "" {
			list = append(list, s)
		}
	}
	return list
}
