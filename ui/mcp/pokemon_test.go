package mcp

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pokemcp/pokemcp/core/config"
	domainHealth "github.com/pokemcp/pokemcp/domains/health"
	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
)

type fakePokemonService struct {
	lastGet     domainPokemon.GetRequest
	lastList    domainPokemon.ListRequest
	lastCompare domainPokemon.CompareRequest
	lastSprite  domainPokemon.SpriteRequest

	pokemon   domainPokemon.PokemonResponse
	page      domainPokemon.PageResponse
	compared  domainPokemon.ComparisonResponse
	species   domainPokemon.SpeciesResponse
	evolution domainPokemon.EvolutionResponse
	typeInfo  domainPokemon.TypeResponse
	sprite    domainPokemon.SpriteResponse
}

func (f *fakePokemonService) GetPokemon(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.PokemonResponse, error) {
	f.lastGet = request
	return f.pokemon, nil
}

func (f *fakePokemonService) ListPokemon(ctx context.Context, request domainPokemon.ListRequest) (domainPokemon.PageResponse, error) {
	f.lastList = request
	return f.page, nil
}

func (f *fakePokemonService) ComparePokemon(ctx context.Context, request domainPokemon.CompareRequest) (domainPokemon.ComparisonResponse, error) {
	f.lastCompare = request
	return f.compared, nil
}

func (f *fakePokemonService) DescribeSpecies(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.SpeciesResponse, error) {
	f.lastGet = request
	return f.species, nil
}

func (f *fakePokemonService) GetEvolutionChain(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.EvolutionResponse, error) {
	f.lastGet = request
	return f.evolution, nil
}

func (f *fakePokemonService) GetTypeEffectiveness(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.TypeResponse, error) {
	f.lastGet = request
	return f.typeInfo, nil
}

func (f *fakePokemonService) GetSprite(ctx context.Context, request domainPokemon.SpriteRequest) (domainPokemon.SpriteResponse, error) {
	f.lastSprite = request
	return f.sprite, nil
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatalf("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func TestHandleGetPokemonRequiresName(t *testing.T) {
	handler := InitMcpPokemon(&fakePokemonService{})

	if _, err := handler.handleGetPokemon(context.Background(), toolRequest(nil)); err == nil {
		t.Fatal("expected an error for a missing name argument")
	}
}

func TestHandleGetPokemonStructured(t *testing.T) {
	service := &fakePokemonService{
		pokemon: domainPokemon.PokemonResponse{ID: 25, Name: "Pikachu", TotalBaseStats: 320},
	}
	handler := InitMcpPokemon(service)

	result, err := handler.handleGetPokemon(context.Background(), toolRequest(map[string]any{"name": "pikachu"}))
	if err != nil {
		t.Fatalf("handleGetPokemon() error: %v", err)
	}

	if service.lastGet.Identifier != "pikachu" {
		t.Fatalf("expected identifier 'pikachu', got %q", service.lastGet.Identifier)
	}
	if result.StructuredContent == nil {
		t.Fatal("expected structured content")
	}
	if got := textOf(t, result); got != "Pikachu (#25) with 320 total base stats" {
		t.Fatalf("unexpected fallback text %q", got)
	}
}

func TestHandleListPokemonDefaults(t *testing.T) {
	service := &fakePokemonService{
		page: domainPokemon.PageResponse{Count: 1302, Limit: 20, Names: []string{"bulbasaur"}},
	}
	handler := InitMcpPokemon(service)

	if _, err := handler.handleListPokemon(context.Background(), toolRequest(nil)); err != nil {
		t.Fatalf("handleListPokemon() error: %v", err)
	}

	if service.lastList.Offset != 0 || service.lastList.Limit != 20 {
		t.Fatalf("expected default pagination 0/20, got %+v", service.lastList)
	}
}

func TestHandleListPokemonForwardsArguments(t *testing.T) {
	service := &fakePokemonService{}
	handler := InitMcpPokemon(service)

	args := map[string]any{"offset": float64(60), "limit": float64(10)}
	if _, err := handler.handleListPokemon(context.Background(), toolRequest(args)); err != nil {
		t.Fatalf("handleListPokemon() error: %v", err)
	}

	if service.lastList.Offset != 60 || service.lastList.Limit != 10 {
		t.Fatalf("expected pagination 60/10, got %+v", service.lastList)
	}
}

func TestHandleComparePokemonReturnsText(t *testing.T) {
	service := &fakePokemonService{
		compared: domainPokemon.ComparisonResponse{
			Winner: "Pikachu",
			Result: "Comparing Pikachu vs Eevee:\n\nPikachu would likely win!",
		},
	}
	handler := InitMcpPokemon(service)

	args := map[string]any{"pokemon1": "pikachu", "pokemon2": "eevee"}
	result, err := handler.handleComparePokemon(context.Background(), toolRequest(args))
	if err != nil {
		t.Fatalf("handleComparePokemon() error: %v", err)
	}

	if service.lastCompare.First != "pikachu" || service.lastCompare.Second != "eevee" {
		t.Fatalf("unexpected compare request: %+v", service.lastCompare)
	}
	if got := textOf(t, result); got != service.compared.Result {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestHandleEvolutionChainReturnsRenderedTree(t *testing.T) {
	rendered := "Charmander\n    └─> Charmeleon (reaching level 16)\n        └─> Charizard (reaching level 36)"
	service := &fakePokemonService{
		evolution: domainPokemon.EvolutionResponse{Species: "Charmander", ChainID: 2, Rendered: rendered},
	}
	handler := InitMcpPokemon(service)

	result, err := handler.handleGetEvolutionChain(context.Background(), toolRequest(map[string]any{"name": "charmander"}))
	if err != nil {
		t.Fatalf("handleGetEvolutionChain() error: %v", err)
	}

	if got := textOf(t, result); got != rendered {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestHandleGetSpriteReturnsImageContent(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	service := &fakePokemonService{
		sprite: domainPokemon.SpriteResponse{Name: "Pikachu", MIMEType: "image/png", Data: payload, Width: 96, Height: 96},
	}
	handler := InitMcpPokemon(service)

	args := map[string]any{"name": "pikachu", "max_size": float64(128), "shiny": true}
	result, err := handler.handleGetSprite(context.Background(), toolRequest(args))
	if err != nil {
		t.Fatalf("handleGetSprite() error: %v", err)
	}

	if service.lastSprite.MaxSize != 128 || !service.lastSprite.Shiny {
		t.Fatalf("unexpected sprite request: %+v", service.lastSprite)
	}

	if len(result.Content) < 2 {
		t.Fatalf("expected text and image content, got %d items", len(result.Content))
	}
	img, ok := result.Content[1].(mcp.ImageContent)
	if !ok {
		t.Fatalf("expected ImageContent, got %T", result.Content[1])
	}
	if img.MIMEType != "image/png" {
		t.Fatalf("unexpected mime type %q", img.MIMEType)
	}
	if img.Data != base64.StdEncoding.EncodeToString(payload) {
		t.Fatal("image data does not round-trip through base64")
	}
}

type fakeHealthService struct {
	report domainHealth.Report
}

func (f *fakeHealthService) Check(ctx context.Context) domainHealth.Report {
	return f.report
}

func serviceTestConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "pokemcp", Version: "0.1.0", Environment: "test"},
		Cache: config.CacheConfig{Backend: "memory"},
	}
}

func TestHandleGetServiceInfo(t *testing.T) {
	health := &fakeHealthService{report: domainHealth.Report{Status: domainHealth.StatusOk, Uptime: "5m0s"}}
	handler := InitMcpService(serviceTestConfig(), health)

	result, err := handler.handleGetServiceInfo(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatalf("handleGetServiceInfo() error: %v", err)
	}

	info, ok := result.StructuredContent.(ServiceInfo)
	if !ok {
		t.Fatalf("expected ServiceInfo structured content, got %T", result.StructuredContent)
	}
	if info.Name != "MCP Pokemon" || info.Version != "0.1.0" || info.Status != "running" {
		t.Fatalf("unexpected service info: %+v", info)
	}
	if info.CacheBackend != "memory" || info.Uptime != "5m0s" {
		t.Fatalf("unexpected service info: %+v", info)
	}
}

func TestStatusResourceWhenHealthy(t *testing.T) {
	health := &fakeHealthService{report: domainHealth.Report{Status: domainHealth.StatusOk}}
	handler := InitMcpService(serviceTestConfig(), health)

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "status://health"

	contents, err := handler.handleStatusResource(context.Background(), request)
	if err != nil {
		t.Fatalf("handleStatusResource() error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	if text.Text != "MCP Pokemon service is running" {
		t.Fatalf("unexpected status text %q", text.Text)
	}
	if text.URI != "status://health" {
		t.Fatalf("unexpected URI %q", text.URI)
	}
}

func TestStatusResourceWhenDegraded(t *testing.T) {
	health := &fakeHealthService{report: domainHealth.Report{
		Status: domainHealth.StatusDegraded,
		Checks: []domainHealth.HealthCheck{
			{Name: "cache", Status: domainHealth.StatusDegraded, Message: "valkey unreachable"},
		},
	}}
	handler := InitMcpService(serviceTestConfig(), health)

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "status://health"

	contents, err := handler.handleStatusResource(context.Background(), request)
	if err != nil {
		t.Fatalf("handleStatusResource() error: %v", err)
	}

	text := contents[0].(mcp.TextResourceContents).Text
	if !strings.Contains(text, "degraded") || !strings.Contains(text, "valkey unreachable") {
		t.Fatalf("unexpected status text %q", text)
	}
}

func TestAboutResource(t *testing.T) {
	handler := InitMcpService(serviceTestConfig(), &fakeHealthService{})

	request := mcp.ReadResourceRequest{}
	request.Params.URI = "about://service"

	contents, err := handler.handleAboutResource(context.Background(), request)
	if err != nil {
		t.Fatalf("handleAboutResource() error: %v", err)
	}

	text := contents[0].(mcp.TextResourceContents).Text
	if text != serviceDescription {
		t.Fatalf("unexpected about text %q", text)
	}
}

func TestHelpPrompt(t *testing.T) {
	handler := InitMcpService(serviceTestConfig(), &fakeHealthService{})

	result, err := handler.handleHelpPrompt(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("handleHelpPrompt() error: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected one prompt message, got %d", len(result.Messages))
	}

	content, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Messages[0].Content)
	}
	if !strings.HasPrefix(content.Text, "Welcome to the MCP Pokemon service!") {
		t.Fatalf("unexpected prompt text %q", content.Text)
	}
	if result.Messages[0].Role != mcp.RoleAssistant {
		t.Fatalf("unexpected role %q", result.Messages[0].Role)
	}
}
