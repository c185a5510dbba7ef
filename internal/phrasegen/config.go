package phrasegen

// Config controls prompts and post-processing for generation and
// translation.
type Config struct {
	// Level is the CEFR proficiency level phrases are pitched at.
	Level string

	// BaseLanguage is the language translations are produced in.
	BaseLanguage string

	// MaxWords drops generated phrases longer than this many words.
	// Zero disables the check.
	MaxWords int

	// MaxTokens is the token budget for a generation response.
	MaxTokens int

	// TranslateMaxTokens is the token budget for a translation response.
	TranslateMaxTokens int

	// Temperature controls generation randomness. Translation always
	// runs at the provider default.
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		Level:              "A2",
		BaseLanguage:       "English",
		MaxWords:           8,
		MaxTokens:          1024,
		TranslateMaxTokens: 128,
		Temperature:        0.9,
	}
}
