// Package mcp exposes the local chat history over the Model Context
// Protocol so other assistants can consult past conversations.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neilberkman/biodish/internal/core/models"
	"github.com/neilberkman/biodish/internal/core/store"
)

// ListSessionsArgs defines arguments for the list_recent_sessions tool
type ListSessionsArgs struct {
	Limit int `json:"limit,omitempty"`
}

// GetSessionArgs defines arguments for the get_session tool
type GetSessionArgs struct {
	SessionID string `json:"session_id"`
}

// SearchSessionsArgs defines arguments for the search_sessions tool
type SearchSessionsArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SessionSummary is a session in the list view
type SessionSummary struct {
	SessionID    string `json:"session_id"`
	Title        string `json:"title"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
}

// MessageDetail is a single message in a session
type MessageDetail struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	IsError   bool   `json:"is_error,omitempty"`
}

// SessionDetail is a full session
type SessionDetail struct {
	SessionID string          `json:"session_id"`
	Title     string          `json:"title"`
	UpdatedAt string          `json:"updated_at"`
	Messages  []MessageDetail `json:"messages"`
}

// StartServer serves MCP over stdio until the client disconnects.
func StartServer(st *store.SessionStore) error {
	s := server.NewMCPServer(
		"BioDish",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_recent_sessions",
		mcp.WithDescription("List recent BioDish chat sessions, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 20)")),
	)
	s.AddTool(listTool, makeListSessionsHandler(st))

	getTool := mcp.NewTool("get_session",
		mcp.WithDescription("Retrieve the full conversation of one BioDish chat session"),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id to retrieve")),
	)
	s.AddTool(getTool, makeGetSessionHandler(st))

	searchTool := mcp.NewTool("search_sessions",
		mcp.WithDescription("Search BioDish chat sessions for a query string across message content"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term to match against message content")),
		mcp.WithNumber("limit",
			mcp.Description("Max sessions to return (default: 10)")),
	)
	s.AddTool(searchTool, makeSearchSessionsHandler(st))

	return server.ServeStdio(s)
}

func decodeArgs(request mcp.CallToolRequest, out interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, out)
}

func makeListSessionsHandler(st *store.SessionStore) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = 20
		}

		var out []SessionSummary
		for _, sess := range st.Sessions() {
			if len(out) >= limit {
				break
			}
			out = append(out, summarize(sess))
		}
		return jsonResult(out)
	}
}

func makeGetSessionHandler(st *store.SessionStore) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetSessionArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		sess, ok := st.Session(args.SessionID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("session %q not found", args.SessionID)), nil
		}

		detail := SessionDetail{
			SessionID: sess.ID,
			Title:     sess.Title,
			UpdatedAt: sess.LastUpdated.Format("2006-01-02 15:04:05"),
		}
		for _, m := range sess.Messages {
			detail.Messages = append(detail.Messages, MessageDetail{
				Role:      string(m.Role),
				Text:      m.Text,
				Timestamp: m.Timestamp.Format("2006-01-02 15:04:05"),
				IsError:   m.IsError,
			})
		}
		return jsonResult(detail)
	}
}

func makeSearchSessionsHandler(st *store.SessionStore) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchSessionsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Query) == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		limit := args.Limit
		if limit <= 0 {
			limit = 10
		}

		needle := strings.ToLower(args.Query)
		var out []SessionSummary
		for _, sess := range st.Sessions() {
			if len(out) >= limit {
				break
			}
			if sessionMatches(sess, needle) {
				out = append(out, summarize(sess))
			}
		}
		return jsonResult(out)
	}
}

func sessionMatches(sess models.ChatSession, needle string) bool {
	if strings.Contains(strings.ToLower(sess.Title), needle) {
		return true
	}
	for _, m := range sess.Messages {
		if strings.Contains(strings.ToLower(m.Text), needle) {
			return true
		}
	}
	return false
}

func summarize(sess models.ChatSession) SessionSummary {
	return SessionSummary{
		SessionID:    sess.ID,
		Title:        sess.Title,
		UpdatedAt:    sess.LastUpdated.Format("2006-01-02 15:04:05"),
		MessageCount: len(sess.Messages),
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
