package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload            CommandType = "RELOAD"
	CommandGetStatus         CommandType = "GET_STATUS"
	CommandGetWorkspaces     CommandType = "GET_WORKSPACES"
	CommandActivateWorkspace CommandType = "ACTIVATE_WORKSPACE"
	CommandSetLayout         CommandType = "SET_LAYOUT"
	CommandJumpClient        CommandType = "JUMP_CLIENT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveWorkspace string `json:"active_workspace"`
	WorkspaceIndex  int    `json:"workspace_index"`
	ActiveLayout    string `json:"active_layout"`
	ClientCount     int    `json:"client_count"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

// WorkspaceInfo represents information about a single workspace
type WorkspaceInfo struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Layout      string `json:"layout"`
	ClientCount int    `json:"client_count"`
	Active      bool   `json:"active"`
}

// WorkspacesData represents the data returned by GET_WORKSPACES
type WorkspacesData struct {
	Workspaces []WorkspaceInfo `json:"workspaces"`
}

// ActivateWorkspacePayload represents the payload for ACTIVATE_WORKSPACE
type ActivateWorkspacePayload struct {
	Workspace string `json:"workspace"` // name or 1-based number
}

// SetLayoutPayload represents the payload for SET_LAYOUT
type SetLayoutPayload struct {
	Layout string `json:"layout"`
}

// JumpClientPayload represents the payload for JUMP_CLIENT
type JumpClientPayload struct {
	Property string `json:"property"` // "name", "class" or "instance"
	Match    string `json:"match"`    // "equals" or "contains"
	Pattern  string `json:"pattern"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
