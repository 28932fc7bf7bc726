package pokemon

import "context"

type IPokemonUsecase interface {
	GetPokemon(ctx context.Context, request GetRequest) (PokemonResponse, error)
	ListPokemon(ctx context.Context, request ListRequest) (PageResponse, error)
	ComparePokemon(ctx context.Context, request CompareRequest) (ComparisonResponse, error)
	DescribeSpecies(ctx context.Context, request GetRequest) (SpeciesResponse, error)
	GetEvolutionChain(ctx context.Context, request GetRequest) (EvolutionResponse, error)
	GetTypeEffectiveness(ctx context.Context, request GetRequest) (TypeResponse, error)
	GetSprite(ctx context.Context, request SpriteRequest) (SpriteResponse, error)
}

type GetRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
}

type ListRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type CompareRequest struct {
	First  string `json:"pokemon1" form:"pokemon1"`
	Second string `json:"pokemon2" form:"pokemon2"`
}

type SpriteRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	MaxSize    int    `json:"max_size" form:"max_size"` // longest edge in pixels
	Shiny      bool   `json:"shiny" form:"shiny"`
}

type StatLine struct {
	Name   string `json:"name"`
	Base   int    `json:"base"`
	Effort int    `json:"effort,omitempty"`
}

type PokemonResponse struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Height         int        `json:"height"`
	Weight         int        `json:"weight"`
	BaseExperience int        `json:"base_experience"`
	Types          []string   `json:"types"`
	Abilities      []string   `json:"abilities"`
	Stats          []StatLine `json:"stats"`
	TotalBaseStats int        `json:"total_base_stats"`
	SpriteURL      string     `json:"sprite_url,omitempty"`
}

type PageResponse struct {
	Count   int      `json:"count"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
	Names   []string `json:"names"`
	HasNext bool     `json:"has_next"`
}

type ComparisonResponse struct {
	First  PokemonResponse `json:"first"`
	Second PokemonResponse `json:"second"`
	Winner string          `json:"winner,omitempty"` // empty on a tie
	Result string          `json:"result"`
}

type SpeciesResponse struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Genus         string `json:"genus,omitempty"`
	Description   string `json:"description,omitempty"`
	Color         string `json:"color,omitempty"`
	Habitat       string `json:"habitat,omitempty"`
	Shape         string `json:"shape,omitempty"`
	Generation    string `json:"generation,omitempty"`
	GrowthRate    string `json:"growth_rate,omitempty"`
	CaptureRate   int    `json:"capture_rate"`
	BaseHappiness int    `json:"base_happiness"`
	IsBaby        bool   `json:"is_baby"`
	IsLegendary   bool   `json:"is_legendary"`
	IsMythical    bool   `json:"is_mythical"`
	EvolvesFrom   string `json:"evolves_from,omitempty"`
}

type EvolutionResponse struct {
	Species  string   `json:"species"`
	ChainID  int      `json:"chain_id"`
	Lines    []string `json:"lines"`
	Rendered string   `json:"rendered"`
}

type TypeResponse struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	DoubleDamageTo   []string `json:"double_damage_to"`
	HalfDamageTo     []string `json:"half_damage_to"`
	NoDamageTo       []string `json:"no_damage_to"`
	DoubleDamageFrom []string `json:"double_damage_from"`
	HalfDamageFrom   []string `json:"half_damage_from"`
	NoDamageFrom     []string `json:"no_damage_from"`
}

type SpriteResponse struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
	MIMEType  string `json:"mime_type"`
	Data      []byte `json:"data"` // PNG bytes, base64 in JSON
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
