package config

// DefaultPatternName is the catalog entry that applies no prefix prompt.
const DefaultPatternName = "No pattern"

// Pattern is a canned prefix prompt that a chat frame can select by name
type Pattern struct {
	Name   string
	Prompt string
}

// PatternCatalog holds the selectable patterns for chat sessions
type PatternCatalog struct {
	Patterns []Pattern
}

// DefaultPatternCatalog returns the built-in pattern set
func DefaultPatternCatalog() *PatternCatalog {
	return &PatternCatalog{
		Patterns: []Pattern{
			{Name: DefaultPatternName, Prompt: ""},
			{Name: "Plan Day", Prompt: "Based on the provided notes, create a detailed plan for my day."},
			{Name: "Analyse My Day", Prompt: "Based on the provided notes, analyze my day and give me feedback."},
			{Name: "Summarize Notes", Prompt: "Summarize the key points from the provided notes in a few sentences."},
			{Name: "Identify People", Prompt: "List all the people mentioned in the provided notes."},
			{Name: "Extract Actions", Prompt: "Extract all action items or tasks from the provided notes."},
		},
	}
}

// Names returns the pattern names with the default entry first, then the
// remaining entries in catalog order.
func (x *PatternCatalog) Names() []string {
	names := []string{DefaultPatternName}
	for _, p := range x.Patterns {
		if p.Name != DefaultPatternName {
			names = append(names, p.Name)
		}
	}
	return names
}

// Prompt returns the prefix prompt for a pattern name. Unknown names yield
// an empty prefix.
func (x *PatternCatalog) Prompt(name string) string {
	for _, p := range x.Patterns {
		if p.Name == name {
			return p.Prompt
		}
	}
	return ""
}
