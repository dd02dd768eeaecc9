package survey

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeResponse(t *testing.T) *Response {
	t.Helper()
	answers := make(map[string]json.RawMessage, len(Questions))
	for i, q := range Questions {
		key := "question" + strconv.Itoa(i)
		switch q.Type {
		case TypeBoolean:
			answers[key] = json.RawMessage(`"yes"`)
		case TypeScale:
			answers[key] = json.RawMessage(`50`)
		case TypeNumber:
			answers[key] = json.RawMessage(`100`)
		case TypeMultipleChoice:
			b, err := json.Marshal(q.Options[0])
			require.NoError(t, err)
			answers[key] = b
		}
	}
	return &Response{Answers: answers}
}

func TestValidateAcceptsCompleteResponse(t *testing.T) {
	assert.NoError(t, completeResponse(t).Validate())
}

func TestValidateRejectsMissingAnswer(t *testing.T) {
	r := completeResponse(t)
	delete(r.Answers, "question0")

	assert.Error(t, r.Validate())
}

func TestValidateScaleBounds(t *testing.T) {
	r := completeResponse(t)

	r.Answers["question1"] = json.RawMessage(`101`)
	assert.Error(t, r.Validate())

	r.Answers["question1"] = json.RawMessage(`[50]`)
	assert.Error(t, r.Validate(), "scale answers are a single integer, not an array")

	r.Answers["question1"] = json.RawMessage(`0`)
	assert.NoError(t, r.Validate())
}

func TestValidateBooleanAndChoice(t *testing.T) {
	r := completeResponse(t)

	r.Answers["question0"] = json.RawMessage(`"maybe"`)
	assert.Error(t, r.Validate())
	r.Answers["question0"] = json.RawMessage(`"no"`)
	require.NoError(t, r.Validate())

	r.Answers["question3"] = json.RawMessage(`"decades"`)
	assert.Error(t, r.Validate())
}

func TestValidateNumberRejectsNegative(t *testing.T) {
	r := completeResponse(t)
	r.Answers["question11"] = json.RawMessage(`-1`)

	assert.Error(t, r.Validate())
}
