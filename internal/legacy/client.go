package legacy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Client reads from the Component2020 bridge, the small HTTP service that
// fronts the legacy desktop application's data store. Endpoints are
// GET {base}/api/v1/connections/{connection}/{entity}, with an "after"
// query parameter for delta reads.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a bridge client authenticating with OAuth2 client
// credentials. tokenURL may be empty for bridges that run without auth.
func NewClient(baseURL, tokenURL, clientID, clientSecret string) *Client {
	httpClient := &http.Client{Timeout: 60 * time.Second}
	if tokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = cc.Client(ctx)
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) get(ctx context.Context, connectionID, entity string, lastKey *int64, out interface{}) error {
	u := fmt.Sprintf("%s/api/v1/connections/%s/%s", c.baseURL, url.PathEscape(connectionID), entity)
	if lastKey != nil {
		u += "?after=" + strconv.FormatInt(*lastKey, 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bridge returned status %d for %s: %s", resp.StatusCode, entity, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", entity, err)
	}
	return nil
}

func (c *Client) ReadBodyTypesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]BodyTypeRow, error) {
	var rows []BodyTypeRow
	err := c.get(ctx, connectionID, "body-types", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadCurrenciesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]CurrencyRow, error) {
	var rows []CurrencyRow
	err := c.get(ctx, connectionID, "currencies", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadUnitsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]UnitRow, error) {
	var rows []UnitRow
	err := c.get(ctx, connectionID, "units", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadParameterSetsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]ParameterSetRow, error) {
	var rows []ParameterSetRow
	err := c.get(ctx, connectionID, "parameter-sets", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadStatusesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]StatusRow, error) {
	var rows []StatusRow
	err := c.get(ctx, connectionID, "statuses", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadCounterpartiesDelta(ctx context.Context, connectionID string, lastKey *int64) ([]CounterpartyRow, error) {
	var rows []CounterpartyRow
	err := c.get(ctx, connectionID, "counterparties", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadPersonsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]PersonRow, error) {
	var rows []PersonRow
	err := c.get(ctx, connectionID, "persons", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadUsersDelta(ctx context.Context, connectionID string, lastKey *int64) ([]UserRow, error) {
	var rows []UserRow
	err := c.get(ctx, connectionID, "users", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadItemsDelta(ctx context.Context, connectionID string, lastKey *int64) ([]ItemRow, error) {
	var rows []ItemRow
	err := c.get(ctx, connectionID, "items", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadOrdersDelta(ctx context.Context, connectionID string, lastKey *int64) ([]OrderRow, error) {
	var rows []OrderRow
	err := c.get(ctx, connectionID, "orders", lastKey, &rows)
	return rows, err
}

func (c *Client) ReadItemGroups(ctx context.Context, connectionID string) ([]ItemGroupRow, error) {
	var rows []ItemGroupRow
	err := c.get(ctx, connectionID, "item-groups", nil, &rows)
	return rows, err
}

func (c *Client) ReadBoms(ctx context.Context, connectionID string) ([]BomRow, error) {
	var rows []BomRow
	err := c.get(ctx, connectionID, "boms", nil, &rows)
	return rows, err
}

func (c *Client) ReadComplects(ctx context.Context, connectionID string) ([]ComplectRow, error) {
	var rows []ComplectRow
	err := c.get(ctx, connectionID, "complects", nil, &rows)
	return rows, err
}

func (c *Client) ReadRoles(ctx context.Context, connectionID string) ([]RoleRow, error) {
	var rows []RoleRow
	err := c.get(ctx, connectionID, "roles", nil, &rows)
	return rows, err
}
