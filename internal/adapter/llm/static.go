package llm

import "fmt"

// StaticGenerator is the offline fallback: instead of calling a model
// it echoes the grounding context back in a readable form. Useful for
// demos and tests where no API key is configured.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) Generate(systemPrompt, userPrompt string) (string, error) {
	return fmt.Sprintf("Based on the indexed sources:\n\n%s", userPrompt), nil
}

func (g *StaticGenerator) ModelName() string {
	return "static"
}
