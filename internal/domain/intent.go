package domain

import (
	"sort"
	"strings"
)

// Intent is the per-query resolution of a question into a target crop and,
// optionally, a target section. Empty fields mean "not resolved". Never
// persisted.
type Intent struct {
	Crop    string
	Section string
}

// sectionRule maps one section to the question keywords that select it.
type sectionRule struct {
	Section  string
	Keywords []string
}

// sectionRules is scanned in declared order; the first rule with a matching
// keyword wins. The order is part of the contract — reordering changes which
// section a question like "water and soil" resolves to.
var sectionRules = []sectionRule{
	{"Climate", []string{"climate", "temperature", "temp", "rainfall", "weather"}},
	{"Plant protection", []string{"disease", "pest"}},
	{"Fertilizer", []string{"fertilizer", "manure"}},
	{"Irrigation", []string{"irrigation", "water"}},
	{"Soil", []string{"soil", "ph"}},
}

// ResolveSection scans the question for a section keyword and returns the
// matching section name, or "" when no keyword matches.
func ResolveSection(question string) string {
	q := strings.ToLower(question)
	for _, rule := range sectionRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				return rule.Section
			}
		}
	}
	return ""
}

// CropVocabulary returns the distinct crop names across chunks, ordered
// longest-first and then alphabetically. The order makes substring matching
// deterministic and lets "sweet potato" win over "potato".
func CropVocabulary(chunks []Chunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	var crops []string
	for _, c := range chunks {
		if _, ok := seen[c.Crop]; ok {
			continue
		}
		seen[c.Crop] = struct{}{}
		crops = append(crops, c.Crop)
	}
	sort.Slice(crops, func(i, j int) bool {
		if len(crops[i]) != len(crops[j]) {
			return len(crops[i]) > len(crops[j])
		}
		return crops[i] < crops[j]
	})
	return crops
}

// ResolveCrop returns the first vocabulary crop appearing as a substring of
// the question, or "" when none does. vocabulary must already be in
// CropVocabulary order.
func ResolveCrop(question string, vocabulary []string) string {
	q := strings.ToLower(question)
	for _, crop := range vocabulary {
		if strings.Contains(q, crop) {
			return crop
		}
	}
	return ""
}
