package explainer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const textPromptTemplate = `
Please provide a comprehensive explanation for the word '{{.Word}}'.

Requirements:
1. Provide a clear definition in {{.NativeLanguage}}
2. Create a memorable mnemonic device using {{.LearningStyle}} approach
3. Include a practical example sentence

Format the response as:
Definition: [definition]
Mnemonic: [mnemonic]
Example: [example]
`

const jsonPromptTemplate = `
Please provide a comprehensive explanation for the word '{{.Word}}'.

Requirements:
1. Provide a clear definition in {{.NativeLanguage}}
2. Create a memorable mnemonic device using {{.LearningStyle}} approach
3. Include a practical example sentence

Respond with a single JSON object and nothing else:
{"definition": "[definition]", "mnemonic": "[mnemonic]", "example": "[example]"}
`

// PromptData contains data available to prompt templates
type PromptData struct {
	Word           string
	NativeLanguage string
	LearningStyle  string
}

// PromptBuilder renders the instruction sent to the model. Templates can be
// overridden per learning style from a directory, with fallback:
//  1. {baseDir}/{learningStyle}.md
//  2. {baseDir}/default.md
//  3. built-in template
//
// In JSON mode the same lookup happens under {baseDir}/json/.
type PromptBuilder struct {
	baseDir  string
	jsonMode bool
}

// NewPromptBuilder creates a prompt builder. An empty baseDir uses only the built-in templates.
func NewPromptBuilder(baseDir string, jsonMode bool) *PromptBuilder {
	return &PromptBuilder{baseDir: baseDir, jsonMode: jsonMode}
}

// Build renders the prompt. Inputs are embedded verbatim and not validated.
func (b *PromptBuilder) Build(word, nativeLanguage, learningStyle string) (string, error) {
	content, err := b.load(learningStyle)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("prompt").Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}
	var sb strings.Builder
	data := PromptData{
		Word:           word,
		NativeLanguage: nativeLanguage,
		LearningStyle:  learningStyle,
	}
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute prompt template: %w", err)
	}
	return sb.String(), nil
}

func (b *PromptBuilder) load(learningStyle string) (string, error) {
	builtin := textPromptTemplate
	dir := b.baseDir
	if b.jsonMode {
		builtin = jsonPromptTemplate
		if dir != "" {
			dir = filepath.Join(dir, "json")
		}
	}
	if dir == "" {
		return builtin, nil
	}

	var candidates []string
	// Styles are free text; only ones that form a plain file name are looked up
	if name := learningStyle + ".md"; learningStyle != "" && filepath.IsLocal(name) && filepath.Base(name) == name {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	candidates = append(candidates, filepath.Join(dir, "default.md"))

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read prompt %s: %w", path, err)
		}
	}
	return builtin, nil
}
