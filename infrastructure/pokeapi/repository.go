package pokeapi

import (
	"context"
	"net/url"
	"strconv"

	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
)

// Repository talks straight to the upstream API with no caching. Wrap it in
// a CachedRepository for production use.
type Repository struct {
	client *Client
}

func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) GetPokemon(ctx context.Context, identifier string) (*domainPokemon.Pokemon, error) {
	var out domainPokemon.Pokemon
	if err := r.client.FetchJSON(ctx, "/pokemon/"+url.PathEscape(identifier), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) ListPokemon(ctx context.Context, offset, limit int) (*domainPokemon.ResourcePage, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var out domainPokemon.ResourcePage
	if err := r.client.FetchJSON(ctx, "/pokemon", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) GetSpecies(ctx context.Context, identifier string) (*domainPokemon.Species, error) {
	var out domainPokemon.Species
	if err := r.client.FetchJSON(ctx, "/pokemon-species/"+url.PathEscape(identifier), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) GetEvolutionChain(ctx context.Context, id int) (*domainPokemon.EvolutionChain, error) {
	var out domainPokemon.EvolutionChain
	if err := r.client.FetchJSON(ctx, "/evolution-chain/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) GetType(ctx context.Context, identifier string) (*domainPokemon.Type, error) {
	var out domainPokemon.Type
	if err := r.client.FetchJSON(ctx, "/type/"+url.PathEscape(identifier), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository) GetSpriteImage(ctx context.Context, spriteURL string) ([]byte, error) {
	return r.client.FetchBytes(ctx, spriteURL)
}
