package supabase

import (
	"context"
	"strings"

	"appprove-backend/domain/keyword"
	appErrors "appprove-backend/pkg/errors"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const keywordsTable = "keywords"

type keywordRow struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// KeywordCatalog implements ports.KeywordCatalog on Supabase. The table
// carries a unique constraint on value, so duplicate registration is
// rejected remotely rather than deduplicated here.
type KeywordCatalog struct {
	client *supabase.Client
	logger *zap.Logger
}

// NewKeywordCatalog creates a Supabase-backed keyword catalog.
func NewKeywordCatalog(client *supabase.Client, logger *zap.Logger) *KeywordCatalog {
	return &KeywordCatalog{client: client, logger: logger}
}

func (c *KeywordCatalog) List(ctx context.Context) ([]keyword.Keyword, error) {
	var rows []keywordRow
	if _, err := c.client.From(keywordsTable).
		Select("value,label", "", false).
		Order("label", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows); err != nil {
		return nil, appErrors.NewExternalError("failed to list keywords", err)
	}

	keywords := make([]keyword.Keyword, 0, len(rows))
	for _, row := range rows {
		keywords = append(keywords, keyword.Keyword{Value: row.Value, Label: row.Label})
	}
	return keywords, nil
}

func (c *KeywordCatalog) Register(ctx context.Context, label string) (keyword.Keyword, error) {
	k, err := keyword.New(label)
	if err != nil {
		return keyword.Keyword{}, appErrors.NewValidationError(err.Error(), nil)
	}

	row := keywordRow{Value: k.Value, Label: k.Label}
	if _, _, err := c.client.From(keywordsTable).
		Insert(row, false, "", "", "").
		Execute(); err != nil {
		if isDuplicateKey(err) {
			return keyword.Keyword{}, appErrors.NewConflictError("keyword already registered")
		}
		return keyword.Keyword{}, appErrors.NewRemoteWriteError("failed to register keyword", err)
	}

	c.logger.Info("Keyword registered", zap.String("value", k.Value))
	return k, nil
}

// isDuplicateKey recognises a PostgREST unique-violation response
// (Postgres error 23505).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
