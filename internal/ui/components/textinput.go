package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// PhraseInput wraps bubbles/textinput for typing a new phrase and an
// optional translation separated by "=".
type PhraseInput struct {
	Model textinput.Model
}

// NewPhraseInput creates a focused input.
func NewPhraseInput(placeholder string, charLimit int) PhraseInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return PhraseInput{Model: ti}
}

// Focus focuses the input and returns the cursor blink command.
func (p *PhraseInput) Focus() tea.Cmd {
	return p.Model.Focus()
}

// Update forwards msg to the underlying text input.
func (p PhraseInput) Update(msg tea.Msg) (PhraseInput, tea.Cmd) {
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

func (p PhraseInput) View() string {
	return p.Model.View()
}

// Reset clears the typed value.
func (p *PhraseInput) Reset() {
	p.Model.Reset()
}

// Value returns the raw typed value.
func (p PhraseInput) Value() string {
	return p.Model.Value()
}

// Parse splits the value into phrase text and translation. "hola = hello"
// yields ("hola", "hello"); without "=" the translation is empty.
func (p PhraseInput) Parse() (text, translation string) {
	return SplitPhrase(p.Model.Value())
}

// SplitPhrase splits "text = translation" at the first "=".
func SplitPhrase(s string) (text, translation string) {
	text, translation, _ = strings.Cut(s, "=")
	return strings.TrimSpace(text), strings.TrimSpace(translation)
}
