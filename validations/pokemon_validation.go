package validations

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
	pkgError "github.com/pokemcp/pokemcp/pkg/error"
)

func ValidateGetPokemon(ctx context.Context, request domainPokemon.GetRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Identifier, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateListPokemon(ctx context.Context, request domainPokemon.ListRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Offset, validation.Min(0)),
		validation.Field(&request.Limit, validation.Required, validation.Min(1), validation.Max(100)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateComparePokemon(ctx context.Context, request domainPokemon.CompareRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.First, validation.Required),
		validation.Field(&request.Second, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateGetSprite(ctx context.Context, request domainPokemon.SpriteRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Identifier, validation.Required),
		validation.Field(&request.MaxSize, validation.Min(16), validation.Max(1024)),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
