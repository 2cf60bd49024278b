// Package aave reads chains, markets and user transaction history from the
// lending protocol's public GraphQL API.
package aave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"lendingScope/internal/model"
)

// DefaultEndpoint is the public GraphQL endpoint.
const DefaultEndpoint = "https://api.v3.aave.com/graphql"

// Client is a GraphQL client for the lending API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client. An empty endpoint selects DefaultEndpoint and a
// non-positive timeout selects 30s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type graphqlRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Chains lists every network the protocol is deployed on.
func (c *Client) Chains(ctx context.Context) ([]model.Chain, error) {
	data, err := c.doQuery(ctx, "Chains", chainsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("aave: fetch chains: %w", err)
	}

	var result struct {
		Chains []model.Chain `json:"chains"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("aave: decode chains: %w", err)
	}
	return result.Chains, nil
}

// Markets lists the markets deployed on the given networks.
func (c *Client) Markets(ctx context.Context, chainIDs []uint64) ([]model.Market, error) {
	variables := map[string]any{
		"request": map[string]any{"chainIds": chainIDs},
	}
	data, err := c.doQuery(ctx, "Markets", marketsQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("aave: fetch markets: %w", err)
	}

	var result struct {
		Markets []model.Market `json:"markets"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("aave: decode markets: %w", err)
	}
	return result.Markets, nil
}

// UserTransactionHistory returns the first page of a wallet's transactions on
// one market.
func (c *Client) UserTransactionHistory(ctx context.Context, req model.HistoryRequest) ([]model.RawTransaction, error) {
	if !common.IsHexAddress(req.Market) {
		return nil, fmt.Errorf("aave: invalid market address: %q", req.Market)
	}
	if !common.IsHexAddress(req.User) {
		return nil, fmt.Errorf("aave: invalid user address: %q", req.User)
	}

	variables := map[string]any{
		"request": map[string]any{
			"market":  common.HexToAddress(req.Market).Hex(),
			"user":    common.HexToAddress(req.User).Hex(),
			"chainId": req.ChainID,
		},
	}
	data, err := c.doQuery(ctx, "UserTransactionHistory", historyQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("aave: fetch history: %w", err)
	}
	return decodeHistory(data)
}

func decodeHistory(data []byte) ([]model.RawTransaction, error) {
	var result struct {
		UserTransactionHistory struct {
			Items []model.RawTransaction `json:"items"`
		} `json:"userTransactionHistory"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("aave: decode history: %w", err)
	}
	return result.UserTransactionHistory.Items, nil
}

// doQuery executes a GraphQL operation and returns the raw "data" field.
func (c *Client) doQuery(ctx context.Context, operation, query string, variables map[string]any) (json.RawMessage, error) {
	reqBody := graphqlRequest{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("graphql error: %s", gqlResp.Errors[0].Message)
	}

	return gqlResp.Data, nil
}
