package domain

import "fmt"

// DefaultLanguage is the language a new session starts with when none is given.
const DefaultLanguage = "ko"

// Language describes a supported study language.
type Language struct {
	// Code is the short registry key, e.g. "ko".
	Code string `json:"code"`
	// Name is the display name of the language.
	Name string `json:"name"`
	// SpeechCode is the BCP-47 tag passed to speech synthesis.
	SpeechCode string `json:"speech_code"`
	// ScriptLabel names the writing system shown on the card front.
	ScriptLabel string `json:"script_label"`
	// Persona describes the teacher voice used in enrichment prompts.
	Persona string `json:"-"`
}

var languages = []Language{
	{Code: "ko", Name: "Korean", SpeechCode: "ko-KR", ScriptLabel: "Hangul", Persona: "a veteran Korean language teacher"},
	{Code: "th", Name: "Thai", SpeechCode: "th-TH", ScriptLabel: "Thai script", Persona: "a veteran Thai language teacher"},
	{Code: "ja", Name: "Japanese", SpeechCode: "ja-JP", ScriptLabel: "Japanese", Persona: "a veteran Japanese language teacher"},
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage returns the language registered under code.
func LookupLanguage(code string) (Language, error) {
	for _, l := range languages {
		if l.Code == code {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}
