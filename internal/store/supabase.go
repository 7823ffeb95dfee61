package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	custom_errors "hackathon-importer/internal/errors"
)

// SupabaseStore inserts rows through Supabase's PostgREST endpoint.
type SupabaseStore struct {
	baseURL    string
	key        string
	table      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSupabaseStore creates a store for table at the Supabase project baseURL.
func NewSupabaseStore(baseURL, key, table string, timeout time.Duration, logger *slog.Logger) *SupabaseStore {
	return &SupabaseStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        key,
		table:      table,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Insert posts row and returns the number of rows PostgREST echoes back.
func (s *SupabaseStore) Insert(ctx context.Context, row Row) (int, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return 0, fmt.Errorf("marshal row: %w", err)
	}

	endpoint := s.baseURL + "/rest/v1/" + url.PathEscape(s.table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read supabase response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return 0, &custom_errors.ErrStore{Store: "supabase", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return 0, fmt.Errorf("decode supabase response: %w", err)
	}
	s.logger.Debug("Supabase insert", "table", s.table, "rows", len(rows))
	return len(rows), nil
}
