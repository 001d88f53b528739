package clients

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CatalogExercise is one entry of the external exercise catalog. Display
// variants carry the human-readable (accented) labels.
type CatalogExercise struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	MuscleGroup        string `json:"muscle_group"`
	MuscleGroupDisplay string `json:"muscle_group_display"`
	Difficulty         string `json:"difficulty"`
	DifficultyDisplay  string `json:"difficulty_display"`
	Equipment          string `json:"equipment"`
	EquipmentDisplay   string `json:"equipment_display"`
	ImageURL           string `json:"image_url"`
}

// MuscleGroupKey returns the normalized muscle group, preferring the
// machine field over the display label.
func (e CatalogExercise) MuscleGroupKey() string {
	if e.MuscleGroup != "" {
		return Normalize(e.MuscleGroup)
	}
	return Normalize(e.MuscleGroupDisplay)
}

// DifficultyKey returns the normalized difficulty.
func (e CatalogExercise) DifficultyKey() string {
	if e.Difficulty != "" {
		return Normalize(e.Difficulty)
	}
	return Normalize(e.DifficultyDisplay)
}

// EquipmentKey returns the normalized equipment label.
func (e CatalogExercise) EquipmentKey() string {
	if e.Equipment != "" {
		return Normalize(e.Equipment)
	}
	return Normalize(e.EquipmentDisplay)
}

// ExerciseCatalog queries the external exercises collaborator. All
// methods degrade to an empty result on network errors or non-200
// responses; a catalog gap must never fail routine generation upstream.
type ExerciseCatalog interface {
	ByMuscleGroup(ctx context.Context, token, muscleGroup string) []CatalogExercise
	All(ctx context.Context, token string) []CatalogExercise
	// FetchFiltered runs the full fallback chain: muscle-group endpoint
	// first, then /all/ with local normalized filtering, then a local
	// difficulty filter when difficulty is non-empty.
	FetchFiltered(ctx context.Context, token, muscleGroup, difficulty string) []CatalogExercise
}

// httpExercisesClient implements ExerciseCatalog over plain HTTP.
type httpExercisesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewExercisesClient creates an exercises service client with a bounded timeout.
func NewExercisesClient(baseURL string, timeout time.Duration) ExerciseCatalog {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpExercisesClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *httpExercisesClient) get(ctx context.Context, token, path string, params url.Values) []CatalogExercise {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("WARN: exercises service unreachable (%s): %v", path, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("WARN: exercises service returned status %d for %s", resp.StatusCode, path)
		return nil
	}

	var items []CatalogExercise
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		log.Printf("WARN: failed to decode exercises response for %s: %v", path, err)
		return nil
	}
	return items
}

func (c *httpExercisesClient) ByMuscleGroup(ctx context.Context, token, muscleGroup string) []CatalogExercise {
	params := url.Values{"muscle_group": {muscleGroup}}
	return c.get(ctx, token, "/exercises/muscle-group/", params)
}

func (c *httpExercisesClient) All(ctx context.Context, token string) []CatalogExercise {
	return c.get(ctx, token, "/exercises/all/", nil)
}

func (c *httpExercisesClient) FetchFiltered(ctx context.Context, token, muscleGroup, difficulty string) []CatalogExercise {
	// 1) dedicated muscle-group endpoint
	items := c.ByMuscleGroup(ctx, token, muscleGroup)

	// 2) fall back to the full catalog, filtering locally
	if len(items) == 0 {
		all := c.All(ctx, token)
		target := Normalize(muscleGroup)
		for _, item := range all {
			if item.MuscleGroupKey() == target {
				items = append(items, item)
			}
		}
	}

	// 3) difficulty filter, when requested
	if difficulty != "" && len(items) > 0 {
		target := Normalize(difficulty)
		filtered := items[:0:0]
		for _, item := range items {
			if item.DifficultyKey() == target {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return items
}
