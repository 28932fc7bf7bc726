package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
)

type PokemonHandler struct {
	service domainPokemon.IPokemonUsecase
}

func InitMcpPokemon(service domainPokemon.IPokemonUsecase) *PokemonHandler {
	return &PokemonHandler{service: service}
}

func (h *PokemonHandler) AddPokemonTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(h.toolGetPokemon(), h.handleGetPokemon)
	mcpServer.AddTool(h.toolListPokemon(), h.handleListPokemon)
	mcpServer.AddTool(h.toolComparePokemon(), h.handleComparePokemon)
	mcpServer.AddTool(h.toolGetSpecies(), h.handleGetSpecies)
	mcpServer.AddTool(h.toolGetEvolutionChain(), h.handleGetEvolutionChain)
	mcpServer.AddTool(h.toolGetTypeEffectiveness(), h.handleGetTypeEffectiveness)
	mcpServer.AddTool(h.toolGetSprite(), h.handleGetSprite)
}

func (h *PokemonHandler) toolGetPokemon() mcp.Tool {
	return mcp.NewTool(
		"get_pokemon",
		mcp.WithDescription("Get detailed information about a Pokemon by name or Pokedex number."),
		mcp.WithTitleAnnotation("Get Pokemon"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("name",
			mcp.Description("Name or ID of the Pokemon, for example 'pikachu' or '25'."),
			mcp.Required(),
		),
	)
}

func (h *PokemonHandler) handleGetPokemon(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return nil, err
	}

	resp, err := h.service.GetPokemon(ctx, domainPokemon.GetRequest{Identifier: name})
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%s (#%d) with %d total base stats", resp.Name, resp.ID, resp.TotalBaseStats)
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PokemonHandler) toolListPokemon() mcp.Tool {
	return mcp.NewTool(
		"list_pokemon",
		mcp.WithDescription("List Pokemon with pagination."),
		mcp.WithTitleAnnotation("List Pokemon"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("offset",
			mcp.Description("The offset for pagination."),
			mcp.DefaultNumber(0),
		),
		mcp.WithNumber("limit",
			mcp.Description("The limit for pagination."),
			mcp.DefaultNumber(20),
		),
	)
}

func (h *PokemonHandler) handleListPokemon(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := domainPokemon.ListRequest{
		Offset: request.GetInt("offset", 0),
		Limit:  request.GetInt("limit", 20),
	}

	resp, err := h.service.ListPokemon(ctx, req)
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("Found %d of %d Pokemon", len(resp.Names), resp.Count)
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PokemonHandler) toolComparePokemon() mcp.Tool {
	return mcp.NewTool(
		"compare_pokemon",
		mcp.WithDescription("Compare two Pokemon and determine which would win in a battle."),
		mcp.WithTitleAnnotation("Compare Pokemon"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("pokemon1",
			mcp.Description("Name or ID of the first Pokemon."),
			mcp.Required(),
		),
		mcp.WithString("pokemon2",
			mcp.Description("Name or ID of the second Pokemon."),
			mcp.Required(),
		),
	)
}

func (h *PokemonHandler) handleComparePokemon(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	first, err := request.RequireString("pokemon1")
	if err != nil {
		return nil, err
	}

	second, err := request.RequireString("pokemon2")
	if err != nil {
		return nil, err
	}

	resp, err := h.service.ComparePokemon(ctx, domainPokemon.CompareRequest{First: first, Second: second})
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(resp.Result), nil
}

func (h *PokemonHandler) toolGetSpecies() mcp.Tool {
	return mcp.NewTool(
		"get_pokemon_species",
		mcp.WithDescription("Get species details for a Pokemon, including genus, habitat and Pokedex description."),
		mcp.WithTitleAnnotation("Get Pokemon Species"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("name",
			mcp.Description("Name or ID of the Pokemon species."),
			mcp.Required(),
		),
	)
}

func (h *PokemonHandler) handleGetSpecies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return nil, err
	}

	resp, err := h.service.DescribeSpecies(ctx, domainPokemon.GetRequest{Identifier: name})
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%s, the %s", resp.Name, resp.Genus)
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PokemonHandler) toolGetEvolutionChain() mcp.Tool {
	return mcp.NewTool(
		"get_evolution_chain",
		mcp.WithDescription("Render the full evolution chain of a Pokemon as an indented tree with evolution conditions."),
		mcp.WithTitleAnnotation("Get Evolution Chain"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("name",
			mcp.Description("Name or ID of any Pokemon in the chain."),
			mcp.Required(),
		),
	)
}

func (h *PokemonHandler) handleGetEvolutionChain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return nil, err
	}

	resp, err := h.service.GetEvolutionChain(ctx, domainPokemon.GetRequest{Identifier: name})
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(resp.Rendered), nil
}

func (h *PokemonHandler) toolGetTypeEffectiveness() mcp.Tool {
	return mcp.NewTool(
		"get_type_effectiveness",
		mcp.WithDescription("Get damage relations for a Pokemon type."),
		mcp.WithTitleAnnotation("Get Type Effectiveness"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("type",
			mcp.Description("Name or ID of the type, for example 'fire'."),
			mcp.Required(),
		),
	)
}

func (h *PokemonHandler) handleGetTypeEffectiveness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeName, err := request.RequireString("type")
	if err != nil {
		return nil, err
	}

	resp, err := h.service.GetTypeEffectiveness(ctx, domainPokemon.GetRequest{Identifier: typeName})
	if err != nil {
		return nil, err
	}

	fallback := fmt.Sprintf("%s deals double damage to %d types", resp.Name, len(resp.DoubleDamageTo))
	return mcp.NewToolResultStructured(resp, fallback), nil
}

func (h *PokemonHandler) toolGetSprite() mcp.Tool {
	return mcp.NewTool(
		"get_pokemon_sprite",
		mcp.WithDescription("Fetch the sprite of a Pokemon as a PNG image, resized to fit the requested bounds."),
		mcp.WithTitleAnnotation("Get Pokemon Sprite"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("name",
			mcp.Description("Name or ID of the Pokemon."),
			mcp.Required(),
		),
		mcp.WithNumber("max_size",
			mcp.Description("Longest edge of the returned image in pixels."),
			mcp.DefaultNumber(256),
		),
		mcp.WithBoolean("shiny",
			mcp.Description("Return the shiny variant when available."),
			mcp.DefaultBool(false),
		),
	)
}

func (h *PokemonHandler) handleGetSprite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return nil, err
	}

	req := domainPokemon.SpriteRequest{
		Identifier: name,
		MaxSize:    request.GetInt("max_size", 0),
		Shiny:      request.GetBool("shiny", false),
	}

	resp, err := h.service.GetSprite(ctx, req)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Sprite of %s (%dx%d)", resp.Name, resp.Width, resp.Height)
	encoded := base64.StdEncoding.EncodeToString(resp.Data)
	return mcp.NewToolResultImage(text, encoded, resp.MIMEType), nil
}
