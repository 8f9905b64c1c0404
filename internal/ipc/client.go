package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/deurzen/wzrd/internal/runtimepath"
)

// Client handles IPC communication with the running window manager
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// NewClientAt creates an IPC client talking to an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to wzrd: %w (is it running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("wzrd error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the window manager
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// GetStatus retrieves the current status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetWorkspaces retrieves per-workspace information
func (c *Client) GetWorkspaces() (*WorkspacesData, error) {
	req := &Request{
		Command: CommandGetWorkspaces,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data WorkspacesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse workspaces data: %w", err)
	}

	return &data, nil
}

// ActivateWorkspace switches to the named or numbered workspace
func (c *Client) ActivateWorkspace(workspace string) error {
	payload, err := json.Marshal(ActivateWorkspacePayload{
		Workspace: workspace,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal workspace payload: %w", err)
	}

	req := &Request{
		Command: CommandActivateWorkspace,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// SetLayout sets the layout on the active workspace
func (c *Client) SetLayout(layout string) error {
	payload, err := json.Marshal(SetLayoutPayload{
		Layout: layout,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal layout payload: %w", err)
	}

	req := &Request{
		Command: CommandSetLayout,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// JumpClient focuses the first client whose property matches the pattern
func (c *Client) JumpClient(property, match, pattern string) error {
	payload, err := json.Marshal(JumpClientPayload{
		Property: property,
		Match:    match,
		Pattern:  pattern,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal jump payload: %w", err)
	}

	req := &Request{
		Command: CommandJumpClient,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// Ping checks if the window manager is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
