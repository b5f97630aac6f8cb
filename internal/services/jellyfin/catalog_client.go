package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cleanarr/internal/catalog"
	"cleanarr/internal/services"
)

// HTTPDoer describes the HTTP client used by the Jellyfin client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CatalogClient lists collections through the Jellyfin HTTP API.
type CatalogClient struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
}

// NewCatalogClient constructs an HTTP-backed Jellyfin client.
func NewCatalogClient(baseURL, apiKey string, client HTTPDoer) *CatalogClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  client,
	}
}

type virtualFolder struct {
	Name   string `json:"Name"`
	ItemID string `json:"ItemId"`
}

type itemsResponse struct {
	Items []struct {
		Name string `json:"Name"`
	} `json:"Items"`
}

// Ping checks that the server is reachable.
func (c *CatalogClient) Ping(ctx context.Context) error {
	var info struct {
		ServerName string `json:"ServerName"`
	}
	return c.getJSON(ctx, "/System/Info/Public", &info)
}

// Collections returns the BoxSet items below the named library.
func (c *CatalogClient) Collections(ctx context.Context, library string) ([]catalog.Collection, error) {
	parentID, err := c.libraryID(ctx, library)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("IncludeItemTypes", "BoxSet")
	query.Set("Recursive", "true")
	query.Set("ParentId", parentID)

	var resp itemsResponse
	if err := c.getJSON(ctx, "/Items?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	collections := make([]catalog.Collection, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Name == "" {
			continue
		}
		collections = append(collections, catalog.Collection{Title: item.Name})
	}
	return collections, nil
}

func (c *CatalogClient) libraryID(ctx context.Context, library string) (string, error) {
	var folders []virtualFolder
	if err := c.getJSON(ctx, "/Library/VirtualFolders", &folders); err != nil {
		return "", err
	}
	want := strings.ToLower(strings.TrimSpace(library))
	for _, folder := range folders {
		if strings.ToLower(folder.Name) == want && folder.ItemID != "" {
			return folder.ItemID, nil
		}
	}
	return "", services.Wrap(services.ErrLibraryNotFound, "jellyfin", "collections", fmt.Sprintf("library %q not found", library), nil)
}

func (c *CatalogClient) getJSON(ctx context.Context, path string, target any) error {
	if c.baseURL == "" {
		return services.Wrap(services.ErrConfiguration, "jellyfin", "request", "jellyfin url is not set", nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "jellyfin", "build request", path, err)
	}
	req.Header.Set("X-Emby-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrCatalogUnreachable, "jellyfin", "GET "+path, "", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(services.ErrCatalogUnreachable, "jellyfin", "GET "+path,
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return services.Wrap(services.ErrCatalogUnreachable, "jellyfin", "decode "+path, "", err)
	}
	return nil
}
