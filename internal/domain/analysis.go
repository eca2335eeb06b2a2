package domain

// AnalysisPlaceholder fills any enrichment field the provider left out.
const AnalysisPlaceholder = "unavailable"

// Analysis is the LLM-generated enrichment for one word.
type Analysis struct {
	Root       string `json:"root"`
	Mnemonic   string `json:"mnemonic"`
	Scenario   string `json:"scenario"`
	ScenarioCN string `json:"scenario_cn"`
}

// WithPlaceholders returns a copy in which every empty field holds
// AnalysisPlaceholder.
func (a Analysis) WithPlaceholders() Analysis {
	for _, f := range []*string{&a.Root, &a.Mnemonic, &a.Scenario, &a.ScenarioCN} {
		if *f == "" {
			*f = AnalysisPlaceholder
		}
	}
	return a
}
