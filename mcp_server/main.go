package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ocr-translate-api/cmd/configs"
	"ocr-translate-api/pkg/dependency_injection"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server with SSE and stdio transports
type MCPServer struct {
	mcpServer *server.MCPServer
	sseServer *server.SSEServer
}

// NewMCPServer registers the OCR/translation tools
func NewMCPServer(tools *Tools) *MCPServer {
	mcpServer := server.NewMCPServer(
		"OCR Translate MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	mcpServer.AddTool(TranslateTextTool, tools.HandleTranslateText)
	mcpServer.AddTool(GetJobTool, tools.HandleGetJob)

	return &MCPServer{
		mcpServer: mcpServer,
	}
}

// StartSSE starts the SSE server on the specified address
func (s *MCPServer) StartSSE(addr string) error {
	s.sseServer = server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://%s", addr)),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAliveInterval(30*time.Second),
	)

	log.Printf("Starting MCP SSE server on %s", addr)
	log.Printf("SSE endpoint: %s/sse", addr)
	log.Printf("Message endpoint: %s/message", addr)

	return s.sseServer.Start(addr)
}

// StartStdio starts the server in stdio mode (for CLI tools)
func (s *MCPServer) StartStdio() error {
	log.Println("Starting MCP server in stdio mode")
	return server.ServeStdio(s.mcpServer)
}

// Shutdown stops the SSE server if one is running
func (s *MCPServer) Shutdown(ctx context.Context) error {
	if s.sseServer == nil {
		return nil
	}
	return s.sseServer.Shutdown(ctx)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := configs.LoadConfig()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := dependency_injection.NewContainer(startCtx, cfg)
	cancelStart()
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer container.Close()

	srv := NewMCPServer(NewTools(container.Services.Translation, container.Services.Image))

	if cfg.MCPTransport == "stdio" {
		if err := srv.StartStdio(); err != nil {
			log.Printf("MCP stdio server stopped: %v", err)
		}
		return
	}

	go func() {
		if err := srv.StartSSE(cfg.MCPAddr); err != nil {
			log.Fatalf("Failed to start MCP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down MCP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("MCP server forced to shutdown:", err)
	}
}
