package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"pcfit/routines-service/internal/domain"
)

// UsersService fetches user profiles from the external users collaborator.
type UsersService interface {
	// GetProfile returns the profile behind the bearer token, or nil when
	// the collaborator is unreachable or answers non-200.
	GetProfile(ctx context.Context, token string) (*domain.UserProfile, error)
}

// httpUsersClient implements UsersService over plain HTTP.
type httpUsersClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUsersClient creates a users service client with a bounded timeout.
func NewUsersClient(baseURL string, timeout time.Duration) UsersService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpUsersClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// profileEnvelope mirrors the collaborator's response shape:
// { "user": { experience, goal, equipment, sex } }
type profileEnvelope struct {
	User domain.UserProfile `json:"user"`
}

func (c *httpUsersClient) GetProfile(ctx context.Context, token string) (*domain.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/profile/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("ERROR: users service unreachable: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ERROR: users service returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("users service returned status %d", resp.StatusCode)
	}

	var envelope profileEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}
