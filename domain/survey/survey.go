package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// QuestionType discriminates how an answer is validated.
type QuestionType string

const (
	TypeBoolean        QuestionType = "boolean"
	TypeScale          QuestionType = "scale"
	TypeNumber         QuestionType = "number"
	TypeMultipleChoice QuestionType = "multiple_choice"
)

// Question is one entry of the fixed onboarding survey.
type Question struct {
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
}

// Questions is the survey shown to prospective auditors and sellers.
var Questions = []Question{
	{Question: "Do you believe applications should be reviewed before being deployed to production?", Type: TypeBoolean},
	{Question: "How important is it to you if a project is certified by a third party as bug-free?", Type: TypeScale},
	{Question: "How important is it to you if a project is certified as being protected against major attacks?", Type: TypeScale},
	{Question: "How long have you been coding?", Type: TypeMultipleChoice, Options: []string{"1-3 years", "3-5 years", "5+ years"}},
	{Question: "How often do you make major changes (git commits) that are deployed to production?", Type: TypeScale},
	{Question: "Is security a concern for you when developing applications?", Type: TypeBoolean},
	{Question: "Is reliability (bug handling) a concern for you when developing applications?", Type: TypeBoolean},
	{Question: "Do you consider asking colleagues to review your code?", Type: TypeBoolean},
	{Question: "Do you prefer having a human review your code or an automated algorithm check it?", Type: TypeMultipleChoice, Options: []string{"Human", "Automated"}},
	{Question: "How many developers do you think should review code before it is deployed?", Type: TypeMultipleChoice, Options: []string{"1", "2-5", "5 or more"}},
	{Question: "Would it bother you if you didn’t know who verified your app?", Type: TypeBoolean},
	{Question: "What is the maximum amount you are willing to spend to improve the security and reliability of your code?", Type: TypeNumber},
	{Question: "Are you willing to review code during your free time for free?", Type: TypeBoolean},
	{Question: "Are you willing to review code during your free time in exchange for money?", Type: TypeBoolean},
	{Question: "Have you ever participated in a bug bounty contest?", Type: TypeBoolean},
}

// Response holds the raw answers keyed "question0".."questionN", as the
// survey form submits them.
type Response struct {
	Answers map[string]json.RawMessage
}

// UnmarshalJSON accepts the flat answers object the form posts.
func (r *Response) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Answers)
}

// MarshalJSON writes the flat answers object back out.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Answers)
}

// Validate checks every answer against its question. Scale answers are a
// single integer between 0 and 100 inclusive; number answers a
// non-negative integer; boolean answers "yes" or "no"; multiple choice
// answers one of the question's options. Missing or extra answers fail.
func (r *Response) Validate() error {
	if len(r.Answers) != len(Questions) {
		return fmt.Errorf("expected %d answers, got %d", len(Questions), len(r.Answers))
	}
	for i, q := range Questions {
		key := "question" + strconv.Itoa(i)
		raw, ok := r.Answers[key]
		if !ok {
			return fmt.Errorf("missing answer for %s", key)
		}
		if err := validateAnswer(q, raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func validateAnswer(q Question, raw json.RawMessage) error {
	switch q.Type {
	case TypeBoolean:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("expected a yes/no answer")
		}
		if s != "yes" && s != "no" {
			return fmt.Errorf("answer must be yes or no")
		}
	case TypeScale:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("expected an integer between 0 and 100")
		}
		if n < 0 || n > 100 {
			return fmt.Errorf("answer must be between 0 and 100")
		}
	case TypeNumber:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("expected a non-negative integer")
		}
		if n < 0 {
			return fmt.Errorf("answer cannot be negative")
		}
	case TypeMultipleChoice:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("expected one of the listed options")
		}
		for _, opt := range q.Options {
			if s == opt {
				return nil
			}
		}
		return fmt.Errorf("answer must be one of the listed options")
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}
