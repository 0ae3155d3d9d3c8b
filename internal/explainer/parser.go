package explainer

import (
	"errors"
	"strings"

	"word-explainer/internal/types"

	"github.com/tidwall/gjson"
)

// Section prefixes the model is asked to use, matched case-sensitively.
const (
	PrefixDefinition = "Definition:"
	PrefixMnemonic   = "Mnemonic:"
	PrefixExample    = "Example:"
)

// ParseResponse splits a free-text reply into its labeled sections.
//
// Each line is trimmed. A line starting with a section prefix opens that
// section with the rest of the line as its value; any other non-empty line is
// appended, space separated, to the section opened last. Lines before the
// first prefix are dropped. Sections that never appear stay empty, so a reply
// that ignores the format degrades to empty fields rather than an error.
func ParseResponse(reply string) Sections {
	var s Sections
	var current *string

	for _, line := range strings.Split(strings.TrimSpace(reply), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, PrefixDefinition):
			current = &s.Definition
			*current = strings.TrimSpace(strings.TrimPrefix(line, PrefixDefinition))
		case strings.HasPrefix(line, PrefixMnemonic):
			current = &s.Mnemonic
			*current = strings.TrimSpace(strings.TrimPrefix(line, PrefixMnemonic))
		case strings.HasPrefix(line, PrefixExample):
			current = &s.Example
			*current = strings.TrimSpace(strings.TrimPrefix(line, PrefixExample))
		case current != nil && line != "":
			*current += " " + line
		}
	}

	return s
}

// ParseJSONResponse decodes a reply requested in JSON mode. Unlike
// ParseResponse it fails when the reply is not a JSON object.
func ParseJSONResponse(reply string) (Sections, error) {
	cleaned := types.CleanJSONFromMarkdown(reply)
	if !gjson.Valid(cleaned) {
		return Sections{}, types.Classify(types.KindMalformedResponse, errors.New("reply is not valid JSON"))
	}

	res := gjson.Parse(cleaned)
	if !res.IsObject() {
		return Sections{}, types.Classify(types.KindMalformedResponse, errors.New("reply is not a JSON object"))
	}

	return Sections{
		Definition: strings.TrimSpace(res.Get("definition").String()),
		Mnemonic:   strings.TrimSpace(res.Get("mnemonic").String()),
		Example:    strings.TrimSpace(res.Get("example").String()),
	}, nil
}
