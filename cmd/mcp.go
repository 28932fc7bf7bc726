package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	uiMcp "github.com/pokemcp/pokemcp/ui/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Pokemon MCP server",
	Long:  `Start a Pokemon MCP (Model Context Protocol) server over SSE or stdio. This allows AI agents to query Pokemon data through a standardized protocol.`,
	Run:   mcpServer,
}

func init() {
	mcpCmd.Flags().String("port", "", "Port for the SSE MCP server")
	mcpCmd.Flags().String("host", "", "Host for the SSE MCP server")
	mcpCmd.Flags().String("transport", "", "Transport to serve on: sse or stdio")
	_ = viper.BindPFlag("mcp_port", mcpCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("mcp_host", mcpCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("mcp_transport", mcpCmd.Flags().Lookup("transport"))

	rootCmd.AddCommand(mcpCmd)
}

func mcpServer(_ *cobra.Command, _ []string) {
	app, err := loadApp()
	if err != nil {
		logrus.Fatalf("[MCP] Failed to initialize: %v", err)
	}
	defer app.Close()

	cfg := app.Config
	if v := viper.GetString("mcp_port"); v != "" {
		cfg.MCP.Port = v
	}
	if v := viper.GetString("mcp_host"); v != "" {
		cfg.MCP.Host = v
	}
	if v := viper.GetString("mcp_transport"); v != "" {
		cfg.MCP.Transport = v
	}

	// Create MCP server with capabilities
	mcpServer := server.NewMCPServer(
		"MCP Pokemon",
		cfg.App.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	pokemonHandler := uiMcp.InitMcpPokemon(app.PokemonUsecase)
	pokemonHandler.AddPokemonTools(mcpServer)

	serviceHandler := uiMcp.InitMcpService(cfg, app.HealthUsecase)
	serviceHandler.AddServiceTools(mcpServer)

	if cfg.MCP.Transport == "stdio" {
		logrus.Info("Starting Pokemon MCP server on stdio")
		if err := server.ServeStdio(mcpServer); err != nil && !errors.Is(err, context.Canceled) {
			logrus.Fatalf("Failed to serve stdio: %v", err)
		}
		logrus.Info("Closing MCP server. Bye Pokeworld!")
		return
	}

	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s:%s", cfg.MCP.Host, cfg.MCP.Port)),
		server.WithKeepAlive(true),
	)

	addr := fmt.Sprintf("%s:%s", cfg.MCP.Host, cfg.MCP.Port)
	logrus.Printf("Starting Pokemon MCP SSE server on %s", addr)
	logrus.Printf("SSE endpoint: http://%s/sse", addr)
	logrus.Printf("Message endpoint: http://%s/message", addr)

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[MCP] Reception of termination signal, shutting down gracefully...")
		if err := sseServer.Shutdown(context.Background()); err != nil {
			logrus.Errorf("[MCP] Error during SSE shutdown: %v", err)
		}
	}()

	if err := sseServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("Failed to start SSE server: %v", err)
	}

	logrus.Info("Closing MCP server. Bye Pokeworld!")
}
