package prompt

import (
	"strings"

	"medbot/internal/domain"
)

// systemInstruction is the fixed instruction prepended to every request.
const systemInstruction = `You are an assistant for medical question-answering tasks.
Use the following pieces of retrieved context to answer the question.
If you don't know the answer, say that you don't know and suggest the user
ask about medical diseases instead. Use three sentences maximum and keep
the answer concise. No preamble, just the answer.`

// Assembler concatenates the fixed system instruction, the retrieved
// chunks in similarity-rank order, and the user question into a prompt.
type Assembler struct{}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Build produces the prompt for one request. The retrieved texts keep the
// order they were ranked in; the question is passed through verbatim as
// the user message.
func (a *Assembler) Build(results []domain.SearchResult, question string) domain.Prompt {
	var sb strings.Builder
	sb.WriteString(systemInstruction)
	sb.WriteString("\n\nContext:\n")
	if len(results) == 0 {
		sb.WriteString("(no relevant context found)\n")
	}
	for _, r := range results {
		sb.WriteString(r.Chunk.Text)
		sb.WriteString("\n\n")
	}
	return domain.Prompt{
		System: sb.String(),
		User:   question,
	}
}
