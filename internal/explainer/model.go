package explainer

// Explanation is the result of one explanation request: the three parsed
// sections plus the request parameters echoed back. Fields are empty when the
// reply had no matching section.
type Explanation struct {
	Word           string `json:"word"`
	Definition     string `json:"definition"`
	Mnemonic       string `json:"mnemonic"`
	Example        string `json:"example"`
	NativeLanguage string `json:"native_language"`
	LearningStyle  string `json:"learning_style"`
}

// Sections holds the labeled parts of a model reply.
type Sections struct {
	Definition string
	Mnemonic   string
	Example    string
}
