package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"foundermatch/internal/config"
	"foundermatch/internal/ports"
)

// ErrUnauthorized signals a missing or invalid bearer token.
var ErrUnauthorized = errors.New("invalid or expired token")

// Verifier checks bearer tokens against the auth provider and role
// membership through a privileged database function. Client claims are
// never trusted.
type Verifier struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	db         *sql.DB
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier wires the auth provider endpoint and the privileged DB handle.
func NewVerifier(cfg config.AuthConfig, db *sql.DB) *Verifier {
	return &Verifier{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		client:     &http.Client{Timeout: 10 * time.Second},
		db:         db,
	}
}

// VerifyToken resolves the token to a user id via the provider's user
// endpoint. Any non-200 answer is treated as unauthorized.
func (v *Verifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if v.baseURL == "" || v.serviceKey == "" {
		return "", fmt.Errorf("auth verifier misconfigured")
	}
	if token == "" {
		return "", ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.serviceKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrUnauthorized
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode user response: %w", err)
	}
	if parsed.ID == "" {
		return "", ErrUnauthorized
	}

	return parsed.ID, nil
}

// HasRole asks the database's has_role function whether the user holds the
// given role. Runs with the service connection, bypassing row-level policies.
func (v *Verifier) HasRole(ctx context.Context, userID, role string) (bool, error) {
	if v.db == nil {
		return false, fmt.Errorf("auth verifier has no database handle")
	}

	var member bool
	err := v.db.QueryRowContext(ctx, "SELECT has_role($1, $2)", userID, role).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("check role %s: %w", role, err)
	}

	return member, nil
}
