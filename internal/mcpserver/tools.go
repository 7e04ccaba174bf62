package mcpserver

import (
	"github.com/mark3labs/dispatch/internal/draft"
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the schedule and dispute tools with the MCP server.
func (s *Server) registerTools() error {
	s.mcpServer.AddTool(
		mcp.NewTool("service-call-list",
			mcp.WithDescription("List service calls, newest date first. All filters are optional exact matches."),
			mcp.WithString("date", mcp.Description("Date in YYYY-MM-DD format")),
			mcp.WithString("customer", mcp.Description("Customer name")),
			mcp.WithString("operator", mcp.Description("Assigned operator name")),
			mcp.WithString("status", mcp.Enum(draft.Statuses...)),
			mcp.WithNumber("limit", mcp.Description("Maximum number of calls to return")),
		),
		s.handleServiceCallList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("service-call-get",
			mcp.WithDescription("Get one service call by id"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Service call id")),
		),
		s.handleServiceCallGet,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("service-call-status",
			mcp.WithDescription("Change the status of a service call"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Service call id")),
			mcp.WithString("status", mcp.Required(), mcp.Enum(draft.Statuses...)),
		),
		s.handleServiceCallStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("certificate-list",
			mcp.WithDescription("List delivery certificates. All filters are optional exact matches."),
			mcp.WithString("customer", mcp.Description("Customer name")),
			mcp.WithString("serviceCallId", mcp.Description("Source service call id")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of certificates to return")),
		),
		s.handleCertificateList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("dispute-thread",
			mcp.WithDescription("Show a dispute and its messages"),
			mcp.WithString("disputeId", mcp.Required(), mcp.Description("Dispute id")),
		),
		s.handleDisputeThread,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("dispute-message-add",
			mcp.WithDescription("Post a message to an open dispute"),
			mcp.WithString("disputeId", mcp.Required(), mcp.Description("Dispute id")),
			mcp.WithString("body", mcp.Required(), mcp.Description("Message text")),
		),
		s.handleDisputeMessageAdd,
	)

	return nil
}
