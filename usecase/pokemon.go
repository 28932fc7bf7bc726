package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
	"github.com/pokemcp/pokemcp/infrastructure/pokeapi"
	pkgError "github.com/pokemcp/pokemcp/pkg/error"
	"github.com/pokemcp/pokemcp/pkg/utils"
	"github.com/pokemcp/pokemcp/validations"
)

const (
	DefaultListLimit     = 20
	DefaultSpriteMaxSize = 256
)

type pokemonService struct {
	repo domainPokemon.Repository
}

func NewPokemonService(repo domainPokemon.Repository) domainPokemon.IPokemonUsecase {
	return &pokemonService{repo: repo}
}

func (s *pokemonService) GetPokemon(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.PokemonResponse, error) {
	if err := validations.ValidateGetPokemon(ctx, request); err != nil {
		return domainPokemon.PokemonResponse{}, err
	}

	identifier := utils.NormalizeIdentifier(request.Identifier)
	p, err := s.repo.GetPokemon(ctx, identifier)
	if err != nil {
		return domainPokemon.PokemonResponse{}, mapUpstreamError(err, fmt.Sprintf("pokemon %q", identifier))
	}

	return toPokemonResponse(p), nil
}

func (s *pokemonService) ListPokemon(ctx context.Context, request domainPokemon.ListRequest) (domainPokemon.PageResponse, error) {
	if request.Limit == 0 {
		request.Limit = DefaultListLimit
	}
	if err := validations.ValidateListPokemon(ctx, request); err != nil {
		return domainPokemon.PageResponse{}, err
	}

	page, err := s.repo.ListPokemon(ctx, request.Offset, request.Limit)
	if err != nil {
		return domainPokemon.PageResponse{}, mapUpstreamError(err, "pokemon list")
	}

	return domainPokemon.PageResponse{
		Count:   page.Count,
		Offset:  request.Offset,
		Limit:   request.Limit,
		Names:   resourceNames(page.Results),
		HasNext: page.Next != nil,
	}, nil
}

func (s *pokemonService) ComparePokemon(ctx context.Context, request domainPokemon.CompareRequest) (domainPokemon.ComparisonResponse, error) {
	if err := validations.ValidateComparePokemon(ctx, request); err != nil {
		return domainPokemon.ComparisonResponse{}, err
	}

	first, err := s.GetPokemon(ctx, domainPokemon.GetRequest{Identifier: request.First})
	if err != nil {
		return domainPokemon.ComparisonResponse{}, err
	}
	second, err := s.GetPokemon(ctx, domainPokemon.GetRequest{Identifier: request.Second})
	if err != nil {
		return domainPokemon.ComparisonResponse{}, err
	}

	firstName := utils.TitleWords(first.Name)
	secondName := utils.TitleWords(second.Name)

	lines := []string{
		fmt.Sprintf("Comparing %s vs %s:", firstName, secondName),
		fmt.Sprintf("\n%s:", firstName),
		fmt.Sprintf("- Types: %s", strings.Join(first.Types, ", ")),
		fmt.Sprintf("- Total base stats: %d", first.TotalBaseStats),
		fmt.Sprintf("\n%s:", secondName),
		fmt.Sprintf("- Types: %s", strings.Join(second.Types, ", ")),
		fmt.Sprintf("- Total base stats: %d", second.TotalBaseStats),
	}

	response := domainPokemon.ComparisonResponse{First: first, Second: second}
	switch {
	case first.TotalBaseStats > second.TotalBaseStats:
		response.Winner = firstName
		lines = append(lines, fmt.Sprintf("\n%s would likely win with %d total base stats vs %d!", firstName, first.TotalBaseStats, second.TotalBaseStats))
	case second.TotalBaseStats > first.TotalBaseStats:
		response.Winner = secondName
		lines = append(lines, fmt.Sprintf("\n%s would likely win with %d total base stats vs %d!", secondName, second.TotalBaseStats, first.TotalBaseStats))
	default:
		lines = append(lines, fmt.Sprintf("\nIt's a tie! Both Pokemon have %d total base stats.", first.TotalBaseStats))
	}

	response.Result = strings.Join(lines, "\n")
	return response, nil
}

func (s *pokemonService) DescribeSpecies(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.SpeciesResponse, error) {
	if err := validations.ValidateGetPokemon(ctx, request); err != nil {
		return domainPokemon.SpeciesResponse{}, err
	}

	identifier := utils.NormalizeIdentifier(request.Identifier)
	species, err := s.repo.GetSpecies(ctx, identifier)
	if err != nil {
		return domainPokemon.SpeciesResponse{}, mapUpstreamError(err, fmt.Sprintf("species %q", identifier))
	}

	response := domainPokemon.SpeciesResponse{
		ID:            species.ID,
		Name:          species.Name,
		Genus:         englishGenus(species.Genera),
		Description:   englishFlavorText(species.FlavorTextEntries),
		Color:         species.Color.Name,
		Generation:    species.Generation.Name,
		GrowthRate:    species.GrowthRate.Name,
		CaptureRate:   species.CaptureRate,
		BaseHappiness: species.BaseHappiness,
		IsBaby:        species.IsBaby,
		IsLegendary:   species.IsLegendary,
		IsMythical:    species.IsMythical,
	}
	if species.Habitat != nil {
		response.Habitat = species.Habitat.Name
	}
	if species.Shape != nil {
		response.Shape = species.Shape.Name
	}
	if species.EvolvesFromSpecies != nil {
		response.EvolvesFrom = species.EvolvesFromSpecies.Name
	}

	return response, nil
}

func (s *pokemonService) GetEvolutionChain(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.EvolutionResponse, error) {
	if err := validations.ValidateGetPokemon(ctx, request); err != nil {
		return domainPokemon.EvolutionResponse{}, err
	}

	identifier := utils.NormalizeIdentifier(request.Identifier)
	species, err := s.repo.GetSpecies(ctx, identifier)
	if err != nil {
		return domainPokemon.EvolutionResponse{}, mapUpstreamError(err, fmt.Sprintf("species %q", identifier))
	}

	chainID, err := chainIDFromURL(species.EvolutionChain.URL)
	if err != nil {
		logrus.Warnf("[POKEMON] species %s carries an unusable evolution chain URL %q: %v", species.Name, species.EvolutionChain.URL, err)
		return domainPokemon.EvolutionResponse{}, pkgError.UpstreamError("species carries a malformed evolution chain reference")
	}

	chain, err := s.repo.GetEvolutionChain(ctx, chainID)
	if err != nil {
		return domainPokemon.EvolutionResponse{}, mapUpstreamError(err, fmt.Sprintf("evolution chain %d", chainID))
	}

	lines := domainPokemon.RenderChain(chain.Chain)
	return domainPokemon.EvolutionResponse{
		Species:  utils.TitleWords(species.Name),
		ChainID:  chain.ID,
		Lines:    lines,
		Rendered: strings.Join(lines, "\n"),
	}, nil
}

func (s *pokemonService) GetTypeEffectiveness(ctx context.Context, request domainPokemon.GetRequest) (domainPokemon.TypeResponse, error) {
	if err := validations.ValidateGetPokemon(ctx, request); err != nil {
		return domainPokemon.TypeResponse{}, err
	}

	identifier := utils.NormalizeIdentifier(request.Identifier)
	typ, err := s.repo.GetType(ctx, identifier)
	if err != nil {
		return domainPokemon.TypeResponse{}, mapUpstreamError(err, fmt.Sprintf("type %q", identifier))
	}

	return domainPokemon.TypeResponse{
		ID:               typ.ID,
		Name:             typ.Name,
		DoubleDamageTo:   resourceNames(typ.DamageRelations.DoubleDamageTo),
		HalfDamageTo:     resourceNames(typ.DamageRelations.HalfDamageTo),
		NoDamageTo:       resourceNames(typ.DamageRelations.NoDamageTo),
		DoubleDamageFrom: resourceNames(typ.DamageRelations.DoubleDamageFrom),
		HalfDamageFrom:   resourceNames(typ.DamageRelations.HalfDamageFrom),
		NoDamageFrom:     resourceNames(typ.DamageRelations.NoDamageFrom),
	}, nil
}

func (s *pokemonService) GetSprite(ctx context.Context, request domainPokemon.SpriteRequest) (domainPokemon.SpriteResponse, error) {
	if request.MaxSize == 0 {
		request.MaxSize = DefaultSpriteMaxSize
	}
	if err := validations.ValidateGetSprite(ctx, request); err != nil {
		return domainPokemon.SpriteResponse{}, err
	}

	identifier := utils.NormalizeIdentifier(request.Identifier)
	p, err := s.repo.GetPokemon(ctx, identifier)
	if err != nil {
		return domainPokemon.SpriteResponse{}, mapUpstreamError(err, fmt.Sprintf("pokemon %q", identifier))
	}

	sourceURL := pickSpriteURL(p.Sprites, request.Shiny)
	if sourceURL == "" {
		return domainPokemon.SpriteResponse{}, pkgError.NotFoundError(fmt.Sprintf("no sprite available for %q", identifier))
	}

	raw, err := s.repo.GetSpriteImage(ctx, sourceURL)
	if err != nil {
		return domainPokemon.SpriteResponse{}, mapUpstreamError(err, fmt.Sprintf("sprite for %q", identifier))
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return domainPokemon.SpriteResponse{}, pkgError.UpstreamError("sprite payload is not a decodable image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > request.MaxSize || bounds.Dy() > request.MaxSize {
		img = imaging.Fit(img, request.MaxSize, request.MaxSize, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return domainPokemon.SpriteResponse{}, pkgError.InternalServerError("failed to encode sprite: " + err.Error())
	}

	return domainPokemon.SpriteResponse{
		Name:      p.Name,
		SourceURL: sourceURL,
		MIMEType:  "image/png",
		Data:      buf.Bytes(),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

func toPokemonResponse(p *domainPokemon.Pokemon) domainPokemon.PokemonResponse {
	response := domainPokemon.PokemonResponse{
		ID:             p.ID,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		SpriteURL:      derefOrEmpty(p.Sprites.FrontDefault),
	}

	for _, slot := range p.Types {
		response.Types = append(response.Types, slot.Type.Name)
	}
	for _, slot := range p.Abilities {
		response.Abilities = append(response.Abilities, slot.Ability.Name)
	}
	for _, stat := range p.Stats {
		response.Stats = append(response.Stats, domainPokemon.StatLine{
			Name:   stat.Stat.Name,
			Base:   stat.BaseStat,
			Effort: stat.Effort,
		})
		response.TotalBaseStats += stat.BaseStat
	}

	return response
}

func pickSpriteURL(sprites domainPokemon.SpriteSet, shiny bool) string {
	if shiny {
		return derefOrEmpty(sprites.FrontShiny)
	}
	if sprites.Other != nil {
		if url := derefOrEmpty(sprites.Other.OfficialArtwork.FrontDefault); url != "" {
			return url
		}
	}
	return derefOrEmpty(sprites.FrontDefault)
}

// chainIDFromURL pulls the numeric resource ID out of an upstream URL like
// https://pokeapi.co/api/v2/evolution-chain/67/.
func chainIDFromURL(rawURL string) (int, error) {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0, fmt.Errorf("no id segment in %q", rawURL)
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("non numeric id segment in %q", rawURL)
	}
	return id, nil
}

func englishGenus(genera []domainPokemon.Genus) string {
	for _, g := range genera {
		if g.Language.Name == "en" {
			return g.Genus
		}
	}
	return ""
}

// englishFlavorText returns the first English flavor text with the control
// characters the games embed replaced by plain spaces.
func englishFlavorText(entries []domainPokemon.FlavorText) string {
	replacer := strings.NewReplacer("\n", " ", "\f", " ")
	for _, entry := range entries {
		if entry.Language.Name == "en" {
			return replacer.Replace(entry.FlavorText)
		}
	}
	return ""
}

func resourceNames(list []domainPokemon.NamedResource) []string {
	names := make([]string, 0, len(list))
	for _, r := range list {
		names = append(names, r.Name)
	}
	return names
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapUpstreamError(err error, resource string) error {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		return pkgError.NotFoundError(resource + " not found")
	case errors.Is(err, pokeapi.ErrRateLimited):
		return pkgError.RateLimitedError("upstream rate limit exceeded, try again later")
	}

	var connErr *pokeapi.ConnectionError
	var respErr *pokeapi.ResponseError
	if errors.As(err, &connErr) || errors.As(err, &respErr) {
		return pkgError.UpstreamError("upstream request failed: " + err.Error())
	}

	return err
}
