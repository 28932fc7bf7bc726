package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pokemcp/pokemcp/core/config"
	domainHealth "github.com/pokemcp/pokemcp/domains/health"
)

const serviceDescription = "Pokemon data service using Model Context Protocol"

// ServiceInfo is the payload returned by the get_service_info tool.
type ServiceInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	Environment  string `json:"environment"`
	CacheBackend string `json:"cache_backend"`
	Uptime       string `json:"uptime"`
}

type ServiceHandler struct {
	cfg           *config.Config
	healthService domainHealth.IHealthUsecase
}

func InitMcpService(cfg *config.Config, healthService domainHealth.IHealthUsecase) *ServiceHandler {
	return &ServiceHandler{cfg: cfg, healthService: healthService}
}

func (h *ServiceHandler) AddServiceTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(h.toolGetServiceInfo(), h.handleGetServiceInfo)
	mcpServer.AddResource(h.resourceAbout(), h.handleAboutResource)
	mcpServer.AddResource(h.resourceStatus(), h.handleStatusResource)
	mcpServer.AddPrompt(h.promptHelp(), h.handleHelpPrompt)
}

func (h *ServiceHandler) toolGetServiceInfo() mcp.Tool {
	return mcp.NewTool(
		"get_service_info",
		mcp.WithDescription("Get basic service information."),
		mcp.WithTitleAnnotation("Get Service Info"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (h *ServiceHandler) handleGetServiceInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report := h.healthService.Check(ctx)

	info := ServiceInfo{
		Name:         "MCP Pokemon",
		Version:      h.cfg.App.Version,
		Status:       "running",
		Description:  serviceDescription,
		Environment:  h.cfg.App.Environment,
		CacheBackend: h.cfg.Cache.Backend,
		Uptime:       report.Uptime,
	}

	fallback := fmt.Sprintf("%s %s (%s)", info.Name, info.Version, info.Status)
	return mcp.NewToolResultStructured(info, fallback), nil
}

func (h *ServiceHandler) resourceAbout() mcp.Resource {
	return mcp.NewResource(
		"about://service",
		"About",
		mcp.WithResourceDescription("What this service is and what it exposes."),
		mcp.WithMIMEType("text/plain"),
	)
}

func (h *ServiceHandler) handleAboutResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     serviceDescription,
		},
	}, nil
}

func (h *ServiceHandler) resourceStatus() mcp.Resource {
	return mcp.NewResource(
		"status://health",
		"Health",
		mcp.WithResourceDescription("Live service status."),
		mcp.WithMIMEType("text/plain"),
	)
}

func (h *ServiceHandler) handleStatusResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	report := h.healthService.Check(ctx)

	text := "MCP Pokemon service is running"
	if report.Status != domainHealth.StatusOk {
		lines := []string{fmt.Sprintf("MCP Pokemon service is %s", strings.ToLower(string(report.Status)))}
		for _, check := range report.Checks {
			if check.Status != domainHealth.StatusOk && check.Message != "" {
				lines = append(lines, fmt.Sprintf("%s: %s", check.Name, check.Message))
			}
		}
		text = strings.Join(lines, "\n")
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

func (h *ServiceHandler) promptHelp() mcp.Prompt {
	return mcp.NewPrompt(
		"pokedex_help",
		mcp.WithPromptDescription("Create a help prompt for the service."),
	)
}

func (h *ServiceHandler) handleHelpPrompt(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := `Welcome to the MCP Pokemon service!

This service provides Pokemon information through the Model Context Protocol.
You can:
- Use resources to access Pokemon data
- Use tools to query and analyze Pokemon information
- Use prompts to get help and guidance

How can I assist you with Pokemon information today?`

	return mcp.NewGetPromptResult(
		"Help for the MCP Pokemon service",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleAssistant, mcp.NewTextContent(text)),
		},
	), nil
}
