package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/dispatch/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// stringArg returns a trimmed string argument, or "" when absent.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// limitArg returns a positive limit argument (JSON numbers come as float64).
func limitArg(args map[string]any) int {
	if v, ok := args["limit"].(float64); ok && v > 0 {
		return int(v)
	}
	return 0
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func storeError(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}

// handleServiceCallList lists service calls matching the optional filters.
func (s *Server) handleServiceCallList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	q := store.Query{
		Where: map[string]string{
			"date":     stringArg(args, "date"),
			"customer": stringArg(args, "customer"),
			"operator": stringArg(args, "operator"),
			"status":   stringArg(args, "status"),
		},
		OrderBy: "date",
		Desc:    true,
		Limit:   limitArg(args),
	}

	calls, err := s.store.ListServiceCalls(ctx, q)
	if err != nil {
		return storeError("list service calls", err), nil
	}
	if len(calls) == 0 {
		return mcp.NewToolResultText("No service calls found."), nil
	}
	return jsonResult(calls)
}

// handleServiceCallGet returns one service call.
func (s *Server) handleServiceCallGet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request.GetArguments(), "id")
	if id == "" {
		return mcp.NewToolResultError("missing 'id' parameter"), nil
	}

	call, err := s.store.GetServiceCall(ctx, id)
	if err != nil {
		return storeError("get service call", err), nil
	}
	return jsonResult(call)
}

// handleServiceCallStatus moves a service call to a new status.
func (s *Server) handleServiceCallStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id := stringArg(args, "id")
	status := stringArg(args, "status")
	if id == "" || status == "" {
		return mcp.NewToolResultError("'id' and 'status' are required"), nil
	}

	if err := s.store.SetServiceCallStatus(ctx, id, status); err != nil {
		return storeError("update status", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Service call %s is now %s", id, status)), nil
}

// handleCertificateList lists delivery certificates.
func (s *Server) handleCertificateList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	q := store.Query{
		Where: map[string]string{
			"customer":      stringArg(args, "customer"),
			"serviceCallId": stringArg(args, "serviceCallId"),
		},
		OrderBy: "date",
		Desc:    true,
		Limit:   limitArg(args),
	}

	certs, err := s.store.ListCertificates(ctx, q)
	if err != nil {
		return storeError("list certificates", err), nil
	}
	if len(certs) == 0 {
		return mcp.NewToolResultText("No certificates found."), nil
	}
	return jsonResult(certs)
}

// handleDisputeThread returns a dispute with its messages.
func (s *Server) handleDisputeThread(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request.GetArguments(), "disputeId")
	if id == "" {
		return mcp.NewToolResultError("missing 'disputeId' parameter"), nil
	}

	dispute, err := s.store.GetDispute(ctx, id)
	if err != nil {
		return storeError("get dispute", err), nil
	}
	thread, err := s.store.Thread(ctx, id)
	if err != nil {
		return storeError("load thread", err), nil
	}

	return jsonResult(struct {
		Dispute  *store.Dispute          `json:"dispute"`
		Messages []*store.DisputeMessage `json:"messages"`
	}{dispute, thread})
}

// handleDisputeMessageAdd posts a message to a dispute thread.
func (s *Server) handleDisputeMessageAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id := stringArg(args, "disputeId")
	body := stringArg(args, "body")
	if id == "" || body == "" {
		return mcp.NewToolResultError("'disputeId' and 'body' are required"), nil
	}

	msg, err := s.store.AddDisputeMessage(ctx, id, body)
	if err != nil {
		return storeError("add message", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Posted message %s to dispute %s", msg.ID, id)), nil
}
