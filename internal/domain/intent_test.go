package domain

import (
	"reflect"
	"testing"
)

func TestResolveSection(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"climate keyword", "what is the best temperature for wheat", "Climate"},
		{"pest keyword", "how to control pest attacks on cotton", "Plant protection"},
		{"fertilizer keyword", "which manure should I apply", "Fertilizer"},
		{"irrigation keyword", "how much water does rice need", "Irrigation"},
		{"soil keyword", "what is the soil ph for rice", "Soil"},
		{"no keyword", "when should I harvest mango", ""},
		{"case insensitive", "RAINFALL requirements for maize", "Climate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSection(tt.question); got != tt.want {
				t.Errorf("ResolveSection(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestResolveSection_RuleOrder(t *testing.T) {
	// "water" (Irrigation) appears after "soil" in the question text, but
	// rule order decides: Irrigation is declared before Soil.
	got := ResolveSection("soil and water management")
	if got != "Irrigation" {
		t.Errorf("expected rule order to pick Irrigation, got %q", got)
	}
}

func TestCropVocabulary_LongestFirst(t *testing.T) {
	chunks := []Chunk{
		{Crop: "potato", Section: "Soil", Content: "x"},
		{Crop: "sweet potato", Section: "Soil", Content: "y"},
		{Crop: "potato", Section: "Climate", Content: "z"},
		{Crop: "rice", Section: "Soil", Content: "w"},
	}
	got := CropVocabulary(chunks)
	want := []string{"sweet potato", "potato", "rice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CropVocabulary = %v, want %v", got, want)
	}
}

func TestResolveCrop(t *testing.T) {
	vocab := []string{"sweet potato", "potato", "rice"}

	if got := ResolveCrop("how do I grow sweet potato", vocab); got != "sweet potato" {
		t.Errorf("expected longest match to win, got %q", got)
	}
	if got := ResolveCrop("what is the soil ph for rice", vocab); got != "rice" {
		t.Errorf("expected rice, got %q", got)
	}
	if got := ResolveCrop("how do I grow bananas", vocab); got != "" {
		t.Errorf("expected no match, got %q", got)
	}
}

func TestCanonicalText(t *testing.T) {
	c := Chunk{Crop: "wheat", Section: "Climate", Content: "Cool weather suits wheat."}
	want := "Crop: wheat\nSection: Climate\nCool weather suits wheat."
	if got := c.CanonicalText(); got != want {
		t.Errorf("CanonicalText = %q, want %q", got, want)
	}
}
