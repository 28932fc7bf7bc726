package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
	"github.com/pokemcp/pokemcp/infrastructure/pokeapi"
	pkgError "github.com/pokemcp/pokemcp/pkg/error"
)

type fakeRepo struct {
	pokemon map[string]*domainPokemon.Pokemon
	species map[string]*domainPokemon.Species
	chains  map[int]*domainPokemon.EvolutionChain
	types   map[string]*domainPokemon.Type
	sprites map[string][]byte
	err     error

	lastIdentifier string
	lastOffset     int
	lastLimit      int
}

func (f *fakeRepo) GetPokemon(ctx context.Context, identifier string) (*domainPokemon.Pokemon, error) {
	f.lastIdentifier = identifier
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.pokemon[identifier]; ok {
		return p, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (f *fakeRepo) ListPokemon(ctx context.Context, offset, limit int) (*domainPokemon.ResourcePage, error) {
	f.lastOffset = offset
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	next := "https://pokeapi.co/api/v2/pokemon?offset=20&limit=20"
	return &domainPokemon.ResourcePage{
		Count: 1302,
		Next:  &next,
		Results: []domainPokemon.NamedResource{
			{Name: "bulbasaur"},
			{Name: "ivysaur"},
		},
	}, nil
}

func (f *fakeRepo) GetSpecies(ctx context.Context, identifier string) (*domainPokemon.Species, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.species[identifier]; ok {
		return s, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (f *fakeRepo) GetEvolutionChain(ctx context.Context, id int) (*domainPokemon.EvolutionChain, error) {
	if c, ok := f.chains[id]; ok {
		return c, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (f *fakeRepo) GetType(ctx context.Context, identifier string) (*domainPokemon.Type, error) {
	if typ, ok := f.types[identifier]; ok {
		return typ, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (f *fakeRepo) GetSpriteImage(ctx context.Context, url string) ([]byte, error) {
	if raw, ok := f.sprites[url]; ok {
		return raw, nil
	}
	return nil, pokeapi.ErrNotFound
}

func strPtr(s string) *string { return &s }

func fakePokemon(name string, types []string, statTotal int) *domainPokemon.Pokemon {
	p := &domainPokemon.Pokemon{
		ID:     1,
		Name:   name,
		Height: 4,
		Weight: 60,
		Stats: []domainPokemon.StatValue{
			{BaseStat: statTotal, Stat: domainPokemon.NamedResource{Name: "hp"}},
		},
		Sprites: domainPokemon.SpriteSet{FrontDefault: strPtr("https://sprites.example/" + name + ".png")},
	}
	for i, t := range types {
		p.Types = append(p.Types, domainPokemon.TypeSlot{Slot: i + 1, Type: domainPokemon.NamedResource{Name: t}})
	}
	return p
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestGetPokemonNormalizesIdentifier(t *testing.T) {
	repo := &fakeRepo{pokemon: map[string]*domainPokemon.Pokemon{
		"pikachu": fakePokemon("pikachu", []string{"electric"}, 320),
	}}
	service := NewPokemonService(repo)

	response, err := service.GetPokemon(context.Background(), domainPokemon.GetRequest{Identifier: "  Pikachu "})

	require.NoError(t, err)
	assert.Equal(t, "pikachu", repo.lastIdentifier)
	assert.Equal(t, "pikachu", response.Name)
	assert.Equal(t, []string{"electric"}, response.Types)
	assert.Equal(t, 320, response.TotalBaseStats)
	assert.Equal(t, "https://sprites.example/pikachu.png", response.SpriteURL)
}

func TestGetPokemonRequiresIdentifier(t *testing.T) {
	service := NewPokemonService(&fakeRepo{})

	_, err := service.GetPokemon(context.Background(), domainPokemon.GetRequest{})
	assert.IsType(t, pkgError.ValidationError(""), err)
}

func TestGetPokemonNotFound(t *testing.T) {
	service := NewPokemonService(&fakeRepo{})

	_, err := service.GetPokemon(context.Background(), domainPokemon.GetRequest{Identifier: "missingno"})

	require.IsType(t, pkgError.NotFoundError(""), err)
	assert.Contains(t, err.Error(), "missingno")
}

func TestGetPokemonMapsRateLimit(t *testing.T) {
	service := NewPokemonService(&fakeRepo{err: pokeapi.ErrRateLimited})

	_, err := service.GetPokemon(context.Background(), domainPokemon.GetRequest{Identifier: "pikachu"})
	assert.IsType(t, pkgError.RateLimitedError(""), err)
}

func TestGetPokemonMapsConnectionFailure(t *testing.T) {
	service := NewPokemonService(&fakeRepo{err: &pokeapi.ConnectionError{Err: fmt.Errorf("dial tcp: refused")}})

	_, err := service.GetPokemon(context.Background(), domainPokemon.GetRequest{Identifier: "pikachu"})
	assert.IsType(t, pkgError.UpstreamError(""), err)
}

func TestListPokemonAppliesDefaultLimit(t *testing.T) {
	repo := &fakeRepo{}
	service := NewPokemonService(repo)

	response, err := service.ListPokemon(context.Background(), domainPokemon.ListRequest{Offset: 40})

	require.NoError(t, err)
	assert.Equal(t, 40, repo.lastOffset)
	assert.Equal(t, DefaultListLimit, repo.lastLimit)
	assert.Equal(t, []string{"bulbasaur", "ivysaur"}, response.Names)
	assert.True(t, response.HasNext)
}

func TestListPokemonRejectsNegativeOffset(t *testing.T) {
	service := NewPokemonService(&fakeRepo{})

	_, err := service.ListPokemon(context.Background(), domainPokemon.ListRequest{Offset: -5, Limit: 20})
	assert.IsType(t, pkgError.ValidationError(""), err)
}

func TestComparePokemonWinnerText(t *testing.T) {
	repo := &fakeRepo{pokemon: map[string]*domainPokemon.Pokemon{
		"pikachu": fakePokemon("pikachu", []string{"electric"}, 320),
		"eevee":   fakePokemon("eevee", []string{"normal"}, 325),
	}}
	service := NewPokemonService(repo)

	response, err := service.ComparePokemon(context.Background(), domainPokemon.CompareRequest{First: "pikachu", Second: "eevee"})

	require.NoError(t, err)
	assert.Equal(t, "Eevee", response.Winner)

	expected := "Comparing Pikachu vs Eevee:\n" +
		"\nPikachu:\n" +
		"- Types: electric\n" +
		"- Total base stats: 320\n" +
		"\nEevee:\n" +
		"- Types: normal\n" +
		"- Total base stats: 325\n" +
		"\nEevee would likely win with 325 total base stats vs 320!"
	assert.Equal(t, expected, response.Result)
}

func TestComparePokemonTie(t *testing.T) {
	repo := &fakeRepo{pokemon: map[string]*domainPokemon.Pokemon{
		"plusle": fakePokemon("plusle", []string{"electric"}, 405),
		"minun":  fakePokemon("minun", []string{"electric"}, 405),
	}}
	service := NewPokemonService(repo)

	response, err := service.ComparePokemon(context.Background(), domainPokemon.CompareRequest{First: "plusle", Second: "minun"})

	require.NoError(t, err)
	assert.Empty(t, response.Winner)
	assert.Contains(t, response.Result, "It's a tie! Both Pokemon have 405 total base stats.")
}

func TestDescribeSpeciesPicksEnglishEntries(t *testing.T) {
	repo := &fakeRepo{species: map[string]*domainPokemon.Species{
		"eevee": {
			ID:   133,
			Name: "eevee",
			Genera: []domainPokemon.Genus{
				{Genus: "Evoli", Language: domainPokemon.NamedResource{Name: "de"}},
				{Genus: "Evolution Pokemon", Language: domainPokemon.NamedResource{Name: "en"}},
			},
			FlavorTextEntries: []domainPokemon.FlavorText{
				{FlavorText: "Sein Erbgut ist instabil.", Language: domainPokemon.NamedResource{Name: "de"}},
				{FlavorText: "Its genetic code is\nirregular.\fIt may mutate.", Language: domainPokemon.NamedResource{Name: "en"}},
			},
			Color:      domainPokemon.NamedResource{Name: "brown"},
			Habitat:    &domainPokemon.NamedResource{Name: "urban"},
			Generation: domainPokemon.NamedResource{Name: "generation-i"},
		},
	}}
	service := NewPokemonService(repo)

	response, err := service.DescribeSpecies(context.Background(), domainPokemon.GetRequest{Identifier: "eevee"})

	require.NoError(t, err)
	assert.Equal(t, "Evolution Pokemon", response.Genus)
	assert.Equal(t, "Its genetic code is irregular. It may mutate.", response.Description)
	assert.Equal(t, "urban", response.Habitat)
}

func TestGetEvolutionChainRendersTree(t *testing.T) {
	level := 16
	repo := &fakeRepo{
		species: map[string]*domainPokemon.Species{
			"charmander": {
				ID:             4,
				Name:           "charmander",
				EvolutionChain: domainPokemon.APIResource{URL: "https://pokeapi.co/api/v2/evolution-chain/2/"},
			},
		},
		chains: map[int]*domainPokemon.EvolutionChain{
			2: {
				ID: 2,
				Chain: domainPokemon.ChainLink{
					Species: domainPokemon.NamedResource{Name: "charmander"},
					EvolvesTo: []domainPokemon.ChainLink{{
						Species: domainPokemon.NamedResource{Name: "charmeleon"},
						EvolutionDetails: []domainPokemon.EvolutionDetail{{
							Trigger:  domainPokemon.NamedResource{Name: "level-up"},
							MinLevel: &level,
						}},
					}},
				},
			},
		},
	}
	service := NewPokemonService(repo)

	response, err := service.GetEvolutionChain(context.Background(), domainPokemon.GetRequest{Identifier: "Charmander"})

	require.NoError(t, err)
	assert.Equal(t, "Charmander", response.Species)
	assert.Equal(t, 2, response.ChainID)
	require.Len(t, response.Lines, 2)
	assert.Equal(t, "Charmander", response.Lines[0])
	assert.Equal(t, "    └─> Charmeleon (reaching level 16)", response.Lines[1])
	assert.Equal(t, "Charmander\n    └─> Charmeleon (reaching level 16)", response.Rendered)
}

func TestGetEvolutionChainRejectsMalformedChainURL(t *testing.T) {
	repo := &fakeRepo{species: map[string]*domainPokemon.Species{
		"oddish": {
			Name:           "oddish",
			EvolutionChain: domainPokemon.APIResource{URL: "https://pokeapi.co/api/v2/evolution-chain/not-a-number/"},
		},
	}}
	service := NewPokemonService(repo)

	_, err := service.GetEvolutionChain(context.Background(), domainPokemon.GetRequest{Identifier: "oddish"})
	assert.IsType(t, pkgError.UpstreamError(""), err)
}

func TestGetTypeEffectiveness(t *testing.T) {
	repo := &fakeRepo{types: map[string]*domainPokemon.Type{
		"electric": {
			ID:   13,
			Name: "electric",
			DamageRelations: domainPokemon.TypeRelations{
				DoubleDamageTo: []domainPokemon.NamedResource{{Name: "water"}, {Name: "flying"}},
				NoDamageTo:     []domainPokemon.NamedResource{{Name: "ground"}},
				HalfDamageFrom: []domainPokemon.NamedResource{{Name: "steel"}},
			},
		},
	}}
	service := NewPokemonService(repo)

	response, err := service.GetTypeEffectiveness(context.Background(), domainPokemon.GetRequest{Identifier: "Electric"})

	require.NoError(t, err)
	assert.Equal(t, []string{"water", "flying"}, response.DoubleDamageTo)
	assert.Equal(t, []string{"ground"}, response.NoDamageTo)
	assert.Equal(t, []string{"steel"}, response.HalfDamageFrom)
}

func TestGetSpriteResizesLargeImages(t *testing.T) {
	const url = "https://sprites.example/artwork/25.png"
	p := fakePokemon("pikachu", []string{"electric"}, 320)
	p.Sprites.Other = &domainPokemon.OtherSprites{
		OfficialArtwork: domainPokemon.ArtworkSprites{FrontDefault: strPtr(url)},
	}

	repo := &fakeRepo{
		pokemon: map[string]*domainPokemon.Pokemon{"pikachu": p},
		sprites: map[string][]byte{url: makePNG(t, 800, 600)},
	}
	service := NewPokemonService(repo)

	response, err := service.GetSprite(context.Background(), domainPokemon.SpriteRequest{Identifier: "pikachu", MaxSize: 256})

	require.NoError(t, err)
	assert.Equal(t, url, response.SourceURL, "official artwork wins over the default sprite")
	assert.Equal(t, "image/png", response.MIMEType)
	assert.Equal(t, 256, response.Width)
	assert.Equal(t, 192, response.Height)
	assert.NotEmpty(t, response.Data)
}

func TestGetSpriteKeepsSmallImages(t *testing.T) {
	p := fakePokemon("pikachu", []string{"electric"}, 320)
	repo := &fakeRepo{
		pokemon: map[string]*domainPokemon.Pokemon{"pikachu": p},
		sprites: map[string][]byte{*p.Sprites.FrontDefault: makePNG(t, 96, 96)},
	}
	service := NewPokemonService(repo)

	response, err := service.GetSprite(context.Background(), domainPokemon.SpriteRequest{Identifier: "pikachu"})

	require.NoError(t, err)
	assert.Equal(t, 96, response.Width)
	assert.Equal(t, 96, response.Height)
}

func TestGetSpriteShinyVariant(t *testing.T) {
	const shinyURL = "https://sprites.example/shiny/25.png"
	p := fakePokemon("pikachu", []string{"electric"}, 320)
	p.Sprites.FrontShiny = strPtr(shinyURL)

	repo := &fakeRepo{
		pokemon: map[string]*domainPokemon.Pokemon{"pikachu": p},
		sprites: map[string][]byte{shinyURL: makePNG(t, 96, 96)},
	}
	service := NewPokemonService(repo)

	response, err := service.GetSprite(context.Background(), domainPokemon.SpriteRequest{Identifier: "pikachu", Shiny: true})

	require.NoError(t, err)
	assert.Equal(t, shinyURL, response.SourceURL)
}

func TestGetSpriteMissing(t *testing.T) {
	p := fakePokemon("pikachu", []string{"electric"}, 320)
	p.Sprites.FrontDefault = nil

	repo := &fakeRepo{pokemon: map[string]*domainPokemon.Pokemon{"pikachu": p}}
	service := NewPokemonService(repo)

	_, err := service.GetSprite(context.Background(), domainPokemon.SpriteRequest{Identifier: "pikachu"})
	assert.IsType(t, pkgError.NotFoundError(""), err)
}

func TestGetSpriteRejectsNonImagePayload(t *testing.T) {
	p := fakePokemon("pikachu", []string{"electric"}, 320)
	repo := &fakeRepo{
		pokemon: map[string]*domainPokemon.Pokemon{"pikachu": p},
		sprites: map[string][]byte{*p.Sprites.FrontDefault: []byte("<html>not a sprite</html>")},
	}
	service := NewPokemonService(repo)

	_, err := service.GetSprite(context.Background(), domainPokemon.SpriteRequest{Identifier: "pikachu"})
	assert.IsType(t, pkgError.UpstreamError(""), err)
}
