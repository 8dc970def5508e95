package answer

import (
	"fmt"
	"strings"

	"github.com/agroguide/agroguide/internal/domain"
)

// systemPrompt constrains generation to the retrieved context and forces the
// advisory register: short practical sentences plus exactly one follow-up.
const systemPrompt = `You are an agricultural advisor for small farmers.
Answer using ONLY the context provided. If the context does not cover the
question, say so plainly. Give practical advice in short sentences. End your
answer with exactly one clarifying follow-up question.`

// userPrompt assembles the grounding context and the farmer's question.
func userPrompt(question string, hits []domain.ScoredChunk) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	for _, h := range hits {
		fmt.Fprintf(&b, "[%s - %s]\n%s\n\n", h.Chunk.Crop, h.Chunk.Section, h.Chunk.Content)
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}
