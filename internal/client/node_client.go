package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/zolagonano/ssh-mgmt-toolkit/internal/creds"
	"github.com/zolagonano/ssh-mgmt-toolkit/internal/models"
)

const (
	nodeInfoPath = "/api/node_info"
	hwStatsPath  = "/api/stats/hw_stats"
	netStatsPath = "/api/stats/net_stats"
	useraddPath  = "/api/cmd/useradd"
)

// NodeClient talks to the node agents over their HTTP API.
type NodeClient struct {
	creds      *creds.Generator
	httpClient *http.Client
}

// NewNodeClient creates a node client sharing one credential generator with
// the rest of the control plane.
func NewNodeClient(gen *creds.Generator) *NodeClient {
	return &NodeClient{
		creds:      gen,
		httpClient: &http.Client{},
	}
}

// envelope mirrors the agent's response shape.
type envelope struct {
	Ok  json.RawMessage `json:"Ok"`
	Err json.RawMessage `json:"Err"`
}

// Info fetches the node's identity block. The agent serves this without
// authentication.
func (c *NodeClient) Info(ctx context.Context, node *models.Node) (json.RawMessage, error) {
	return c.get(ctx, node.Address+nodeInfoPath, "")
}

// HwStats fetches load, memory, disk and uptime figures from the node.
func (c *NodeClient) HwStats(ctx context.Context, node *models.Node) (json.RawMessage, error) {
	return c.get(ctx, node.Address+hwStatsPath, node.Token)
}

// NetStats fetches per-interface traffic counters from the node.
func (c *NodeClient) NetStats(ctx context.Context, node *models.Node) (json.RawMessage, error) {
	return c.get(ctx, node.Address+netStatsPath, node.Token)
}

// UserAdd provisions a shell account on the node for the given sell. The
// credentials are derived from the service tier and the sell ID, so retrying
// the same sell targets the same account.
func (c *NodeClient) UserAdd(ctx context.Context, node *models.Node, service *models.Service, sellID int32, days *int64) (*models.SSHUser, error) {
	accountDays := int64(30)
	if days != nil {
		accountDays = *days
	}

	req := &models.InputSSHUser{
		Username: c.creds.Username(service.MaxLogins, sellID),
		Password: c.creds.RandomPassword(),
		ExpDate:  creds.AddToTime(accountDays),
		Group:    c.creds.Group(service.MaxLogins),
	}

	log.Printf("[NodeClient] Creating account %s on node %d", req.Username, node.ID)

	raw, err := c.post(ctx, node.Address+useraddPath, node.Token, req)
	if err != nil {
		return nil, err
	}

	var user models.SSHUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, &TransportError{Code: 900, Msg: "unexpected error", Raw: err.Error()}
	}
	return &user, nil
}

func (c *NodeClient) get(ctx context.Context, url, bearer string) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.do(httpReq)
}

func (c *NodeClient) post(ctx context.Context, url, bearer string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}

	return c.do(httpReq)
}

// do sends the request and unwraps the agent's {"Ok"/"Err"} envelope. An Err
// payload comes back as a *NodeError so callers can relay it verbatim.
func (c *NodeClient) do(httpReq *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &TransportError{Code: 900, Msg: "unexpected error",
			Raw: fmt.Sprintf("decode response: %v (body: %s)", err, string(respBody))}
	}

	if env.Err != nil {
		return nil, &NodeError{Payload: env.Err}
	}
	return env.Ok, nil
}
