// Package supabase implements the remote marketplace store over the
// Supabase PostgREST API.
package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// NewClient creates a Supabase client authenticated with the service
// role key. Server-side code always uses the service role; per-request
// user tokens only flow through the auth middleware.
func NewClient(url, serviceKey string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return client, nil
}
