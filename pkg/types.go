package pkg

// SymptomQuery is a single submission from the symptom form.  Symptoms is
// required; Age and Gender are free text and may be empty.
type SymptomQuery struct {
	Symptoms string `json:"symptoms"`
	Age      string `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Analysis is the structured form of a completion reply.  Causes and Advice
// keep the order in which the model listed them.
type Analysis struct {
	Summary string   `json:"summary" yaml:"summary"`
	Causes  []string `json:"causes" yaml:"causes"`
	Advice  []string `json:"advice" yaml:"advice"`
}

// Outcome is what a session slot holds between the POST and the following
// GET.  Exactly one of Result and Error is set.
type Outcome struct {
	Result *Analysis `json:"result,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Failed reports whether the outcome carries an error message.
func (o Outcome) Failed() bool { return o.Result == nil }
