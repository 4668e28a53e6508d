package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophrecipes/internal/client/models"
	"github.com/dmitrijs2005/gophrecipes/internal/common"
)

const (
	searchPath      = "/recipes/complexSearch"
	informationPath = "/recipes/%d/information"
	randomPath      = "/recipes/random"

	// maxErrorBody bounds how much of a failed response ends up in the error.
	maxErrorBody = 512
)

type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient builds a client for baseURL (no trailing path). A nil
// httpClient gets a fresh one with the given timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *HTTPClient) SearchRecipes(ctx context.Context, q models.RemoteSearchQuery) (*models.RemoteSearchResult, error) {
	size := q.PageSize
	if size <= 0 {
		size = common.DefaultPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", q.Query)
	if q.Diet != "" {
		params.Set("diet", q.Diet)
	}
	if len(q.Intolerances) > 0 {
		params.Set("intolerances", strings.Join(q.Intolerances, ","))
	}
	params.Set("number", strconv.Itoa(size))
	params.Set("offset", strconv.Itoa((page-1)*size))
	params.Set("addRecipeInformation", "true")

	var res models.RemoteSearchResult
	if err := c.get(ctx, searchPath, params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetRecipeByID(ctx context.Context, id int64) (*models.ExternalRecipe, error) {
	params := url.Values{}
	params.Set("includeNutrition", "true")

	var r models.ExternalRecipe
	if err := c.get(ctx, fmt.Sprintf(informationPath, id), params, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) GetRandomRecipes(ctx context.Context, tags []string, number int) ([]models.ExternalRecipe, error) {
	if number <= 0 {
		number = 3
	}

	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	if len(tags) > 0 {
		params.Set("include-tags", strings.Join(tags, ","))
	}

	var res struct {
		Recipes []models.ExternalRecipe `json:"recipes"`
	}
	if err := c.get(ctx, randomPath, params, &res); err != nil {
		return nil, err
	}
	return res.Recipes, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, dst any) error {
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRemoteFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL, api key included.
		return fmt.Errorf("%w: GET %s: %w", common.ErrRemoteFetchFailed, path, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: %s; body: %s", common.ErrRemoteFetchFailed, path, resp.Status, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: GET %s: decode: %w", common.ErrRemoteFetchFailed, path, err)
	}
	return nil
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
