package pokemon

import "context"

// Repository fetches Pokemon resources. Implementations decide where the
// data comes from: the upstream API, a cache in front of it, or a fake in
// tests.
type Repository interface {
	GetPokemon(ctx context.Context, identifier string) (*Pokemon, error)
	ListPokemon(ctx context.Context, offset, limit int) (*ResourcePage, error)
	GetSpecies(ctx context.Context, identifier string) (*Species, error)
	GetEvolutionChain(ctx context.Context, id int) (*EvolutionChain, error)
	GetType(ctx context.Context, identifier string) (*Type, error)
	GetSpriteImage(ctx context.Context, url string) ([]byte, error)
}
