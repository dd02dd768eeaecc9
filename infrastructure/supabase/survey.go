package supabase

import (
	"context"
	"encoding/json"
	"time"

	"appprove-backend/domain/survey"
	appErrors "appprove-backend/pkg/errors"

	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const surveyTable = "survey_responses"

type surveyRow struct {
	UserID      string          `json:"user_id"`
	Answers     json.RawMessage `json:"answers"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// SurveyRepository implements ports.SurveyRepository on Supabase. A
// second submission for the same user upserts, keeping one row per
// respondent.
type SurveyRepository struct {
	client *supabase.Client
	logger *zap.Logger
}

// NewSurveyRepository creates a Supabase-backed survey repository.
func NewSurveyRepository(client *supabase.Client, logger *zap.Logger) *SurveyRepository {
	return &SurveyRepository{client: client, logger: logger}
}

func (r *SurveyRepository) SaveResponse(ctx context.Context, userID string, resp *survey.Response) error {
	answers, err := json.Marshal(resp.Answers)
	if err != nil {
		return appErrors.NewInternalError("failed to encode survey answers").WithCause(err)
	}

	row := surveyRow{
		UserID:      userID,
		Answers:     answers,
		SubmittedAt: time.Now().UTC(),
	}
	if _, _, err := r.client.From(surveyTable).
		Insert(row, true, "user_id", "", "").
		Execute(); err != nil {
		return appErrors.NewRemoteWriteError("failed to save survey response", err)
	}

	r.logger.Info("Survey response saved", zap.String("userId", userID))
	return nil
}
