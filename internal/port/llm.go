package port

// Generator produces the final natural-language answer from a prompt.
type Generator interface {
	// Generate generates text from a system prompt and a user prompt.
	Generate(systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
