package generator

import (
	"strings"

	"prompt_runner/prompts"
)

// notProvided stands in for an empty media description or metadata summary.
const notProvided = "Not provided."

// disclaimer closes every prompt; observations must stay non-conclusory.
var disclaimer = []string{
	"Important:",
	"Do NOT determine authenticity or state certainty.",
	"Use neutral, descriptive language only.",
	"Clearly list limitations.",
}

// BuildPrompt renders a definition and the two free-text inputs into the text sent to the model.
// The output is deterministic and carries no trailing newline.
func BuildPrompt(def prompts.Definition, mediaDescription, metadataSummary string) string {
	lines := []string{
		def.Role,
		"",
		def.Instructions,
		"",
		"Media Description:",
		orNotProvided(mediaDescription),
		"",
		"Metadata Summary:",
		orNotProvided(metadataSummary),
		"",
		"Focus Areas:",
	}
	for _, area := range def.FocusAreas {
		lines = append(lines, "- "+area)
	}

	lines = append(lines, "", "Output Format:")
	for _, section := range def.OutputFormat.Sections {
		lines = append(lines, "- "+section)
	}

	lines = append(lines, "")
	lines = append(lines, disclaimer...)
	return strings.Join(lines, "\n")
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
