package plex

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"cleanarr/internal/catalog"
	"cleanarr/internal/services"
)

const userAgent = "cleanarr/0.1.0"

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// CatalogClient lists collections through the Plex HTTP API.
type CatalogClient struct {
	baseURL string
	token   string
	client  HTTPDoer

	mu       sync.Mutex
	sections map[string]string
}

// NewCatalogClient constructs a client for the server at baseURL. A nil
// client falls back to http.DefaultClient.
func NewCatalogClient(baseURL, token string, client HTTPDoer) *CatalogClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &CatalogClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		client:  client,
	}
}

type directory struct {
	Key   string `xml:"key,attr"`
	Title string `xml:"title,attr"`
	Smart string `xml:"smart,attr"`
}

type mediaContainer struct {
	Directories []directory `xml:"Directory"`
}

// Ping verifies the server answers with the configured token.
func (c *CatalogClient) Ping(ctx context.Context) error {
	resp, err := c.get(ctx, "/")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Collections returns every collection in the named library, smart ones included.
func (c *CatalogClient) Collections(ctx context.Context, library string) ([]catalog.Collection, error) {
	sections, err := c.ensureSections(ctx)
	if err != nil {
		return nil, err
	}
	key, ok := sections[strings.ToLower(strings.TrimSpace(library))]
	if !ok {
		return nil, services.Wrap(services.ErrLibraryNotFound, "plex", "collections", fmt.Sprintf("library %q not found", library), nil)
	}

	var container mediaContainer
	if err := c.getXML(ctx, "/library/sections/"+url.PathEscape(key)+"/collections", &container); err != nil {
		return nil, err
	}

	collections := make([]catalog.Collection, 0, len(container.Directories))
	for _, dir := range container.Directories {
		if dir.Title == "" {
			continue
		}
		collections = append(collections, catalog.Collection{
			Title: dir.Title,
			Smart: isTruthy(dir.Smart),
		})
	}
	return collections, nil
}

func (c *CatalogClient) ensureSections(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sections != nil {
		return c.sections, nil
	}

	var container mediaContainer
	if err := c.getXML(ctx, "/library/sections", &container); err != nil {
		return nil, err
	}

	sections := make(map[string]string, len(container.Directories))
	for _, dir := range container.Directories {
		if dir.Key == "" || dir.Title == "" {
			continue
		}
		sections[strings.ToLower(dir.Title)] = dir.Key
	}
	c.sections = sections
	return sections, nil
}

func (c *CatalogClient) getXML(ctx context.Context, path string, target any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := xml.NewDecoder(resp.Body).Decode(target); err != nil {
		return services.Wrap(services.ErrCatalogUnreachable, "plex", "decode "+path, "", err)
	}
	return nil
}

func (c *CatalogClient) get(ctx context.Context, path string) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "plex", "request", "plex url is not set", nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "plex", "build request", path, err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrCatalogUnreachable, "plex", "GET "+path, "", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, services.Wrap(services.ErrCatalogUnreachable, "plex", "GET "+path,
			fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	return resp, nil
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true":
		return true
	default:
		return false
	}
}
