package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"symptom-checker/pkg"
)

type fakeClient struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestSymptomService_Analyze(t *testing.T) {
	client := &fakeClient{reply: "Summary:\nFlu-like.\nPossible Causes:\n- Cold\n- Flu\nAdvice:\n- Rest\n- Hydrate"}
	svc := NewSymptomService(client, zaptest.NewLogger(t))

	got, err := svc.Analyze(context.Background(), pkg.SymptomQuery{Symptoms: "  fever, chills  ", Age: " 40 "})
	require.NoError(t, err)
	assert.Equal(t, &pkg.Analysis{
		Summary: "Flu-like.",
		Causes:  []string{"Cold", "Flu"},
		Advice:  []string{"Rest", "Hydrate"},
	}, got)

	require.Equal(t, 1, client.calls)
	assert.Contains(t, client.prompts[0], "Symptoms: fever, chills\n")
	assert.Contains(t, client.prompts[0], "Age: 40\n")
	assert.Contains(t, client.prompts[0], "Gender: Not provided\n")
}

func TestSymptomService_MissingInput(t *testing.T) {
	for _, symptoms := range []string{"", "   ", "\n\t"} {
		client := &fakeClient{reply: "Summary: x"}
		svc := NewSymptomService(client, nil)

		got, err := svc.Analyze(context.Background(), pkg.SymptomQuery{Symptoms: symptoms, Age: "30"})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrMissingInput)
		assert.Equal(t, MissingInputMessage, UserMessage(err, "Groq"))
		assert.Zero(t, client.calls, "provider must not be called")
	}
}

func TestSymptomService_EmptyResponse(t *testing.T) {
	for _, reply := range []string{"", "   ", "\n\n\t "} {
		svc := NewSymptomService(&fakeClient{reply: reply}, zaptest.NewLogger(t))

		got, err := svc.Analyze(context.Background(), pkg.SymptomQuery{Symptoms: "cough"})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrEmptyResponse)
		assert.Equal(t,
			"No response from Groq API. Please check your API key, prompt, or try again.",
			UserMessage(err, "Groq"))
	}
}

func TestSymptomService_ProviderError(t *testing.T) {
	cause := errors.New("error, status code: 401, message: Invalid API Key")
	client := &fakeClient{err: cause}
	svc := NewSymptomService(client, zaptest.NewLogger(t))

	got, err := svc.Analyze(context.Background(), pkg.SymptomQuery{Symptoms: "cough"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Equal(t, 1, client.calls, "no retry")
}

func TestSymptomService_ParseFailure(t *testing.T) {
	raw := "Summary:\n\xc3\x28"
	svc := NewSymptomService(&fakeClient{reply: raw}, zaptest.NewLogger(t))

	got, err := svc.Analyze(context.Background(), pkg.SymptomQuery{Symptoms: "cough"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrParseFailure)

	msg := UserMessage(err, "Groq")
	assert.Contains(t, msg, "Error parsing response: ")
	assert.Contains(t, msg, "Raw response: "+raw)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil, "Groq"))
	assert.Equal(t,
		"No response from the completion API. Please check your API key, prompt, or try again.",
		UserMessage(ErrEmptyResponse, ""))
	assert.Equal(t, "boom", UserMessage(errors.New("boom"), "Groq"))
}
