package core

import (
	"fmt"
	"strings"

	"symptom-checker/pkg"
)

// Section markers the model is told to emit and the parser looks for.
const (
	SummaryMarker = "Summary:"
	CausesMarker  = "Possible Causes:"
	AdviceMarker  = "Advice:"
)

const notProvided = "Not provided"

// promptTemplate takes symptoms, age and gender, in that order.
const promptTemplate = `
Symptoms: %s
Age: %s
Gender: %s

You are a medical assistant. Based on the symptoms, provide:
1. A simple summary of what these symptoms could mean.
2. Possible causes (list).
3. Advice on what to do next (list).

Format your response like this:

` + SummaryMarker + `
...

` + CausesMarker + `
- ...
- ...

` + AdviceMarker + `
- ...
- ...

Only reply in this format, nothing else.
`

// BuildPrompt renders the instruction sent to the completion provider.
// Age and gender are substituted verbatim, or as "Not provided" when blank.
func BuildPrompt(q pkg.SymptomQuery) string {
	return fmt.Sprintf(promptTemplate, q.Symptoms, orNotProvided(q.Age), orNotProvided(q.Gender))
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}
