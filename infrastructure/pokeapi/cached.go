package pokeapi

import (
	"context"
	"time"

	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
	"github.com/pokemcp/pokemcp/pkg/cache"
)

// CachedRepository decorates another repository with read-through caching.
// Every lookup is memoized under a prefix naming the operation, so distinct
// operations never share entries even for equal arguments. Upstream errors
// pass through uncached; cache failures degrade to plain fetches.
type CachedRepository struct {
	inner    domainPokemon.Repository
	provider cache.Provider
	ttl      time.Duration
}

// NewCachedRepository wraps inner. A ttl of zero caches entries forever.
func NewCachedRepository(inner domainPokemon.Repository, provider cache.Provider, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		inner:    inner,
		provider: provider,
		ttl:      ttl,
	}
}

func (r *CachedRepository) GetPokemon(ctx context.Context, identifier string) (*domainPokemon.Pokemon, error) {
	key := cache.Key("get_pokemon", identifier)
	return cache.Fetch(ctx, r.provider, key, r.ttl, func(ctx context.Context) (*domainPokemon.Pokemon, error) {
		return r.inner.GetPokemon(ctx, identifier)
	})
}

func (r *CachedRepository) ListPokemon(ctx context.Context, offset, limit int) (*domainPokemon.ResourcePage, error) {
	key := cache.Key("list_pokemon", cache.NamedArgs{"offset": offset, "limit": limit})
	return cache.Fetch(ctx, r.provider, key, r.ttl, func(ctx context.Context) (*domainPokemon.ResourcePage, error) {
		return r.inner.ListPokemon(ctx, offset, limit)
	})
}

func (r *CachedRepository) GetSpecies(ctx context.Context, identifier string) (*domainPokemon.Species, error) {
	key := cache.Key("get_species", identifier)
	return cache.Fetch(ctx, r.provider, key, r.ttl, func(ctx context.Context) (*domainPokemon.Species, error) {
		return r.inner.GetSpecies(ctx, identifier)
	})
}

func (r *CachedRepository) GetEvolutionChain(ctx context.Context, id int) (*domainPokemon.EvolutionChain, error) {
	key := cache.Key("get_evolution_chain", id)
	return cache.Fetch(ctx, r.provider, key, r.ttl, func(ctx context.Context) (*domainPokemon.EvolutionChain, error) {
		return r.inner.GetEvolutionChain(ctx, id)
	})
}

func (r *CachedRepository) GetType(ctx context.Context, identifier string) (*domainPokemon.Type, error) {
	key := cache.Key("get_type", identifier)
	return cache.Fetch(ctx, r.provider, key, r.ttl, func(ctx context.Context) (*domainPokemon.Type, error) {
		return r.inner.GetType(ctx, identifier)
	})
}

func (r *CachedRepository) GetSpriteImage(ctx context.Context, spriteURL string) ([]byte, error) {
	key := cache.Key("get_sprite", spriteURL)
	return cache.Fetch(ctx, r.provider, key, r.ttl, func(ctx context.Context) ([]byte, error) {
		return r.inner.GetSpriteImage(ctx, spriteURL)
	})
}
