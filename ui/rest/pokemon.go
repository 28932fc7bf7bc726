package rest

import (
	"github.com/gofiber/fiber/v2"
	domainPokemon "github.com/pokemcp/pokemcp/domains/pokemon"
	"github.com/pokemcp/pokemcp/pkg/utils"
)

type Pokemon struct {
	Service domainPokemon.IPokemonUsecase
}

func InitRestPokemon(app fiber.Router, service domainPokemon.IPokemonUsecase) Pokemon {
	rest := Pokemon{Service: service}

	app.Get("/pokemon", rest.ListPokemon)
	// compare is registered before :identifier so fiber does not capture
	// "compare" as a Pokemon name
	app.Get("/pokemon/compare", rest.ComparePokemon)
	app.Get("/pokemon/:identifier", rest.GetPokemon)
	app.Get("/pokemon/:identifier/species", rest.GetSpecies)
	app.Get("/pokemon/:identifier/evolution", rest.GetEvolutionChain)
	app.Get("/pokemon/:identifier/sprite", rest.GetSprite)
	app.Get("/types/:identifier", rest.GetTypeEffectiveness)

	return rest
}

func (controller *Pokemon) GetPokemon(c *fiber.Ctx) error {
	request := domainPokemon.GetRequest{Identifier: c.Params("identifier")}

	response, err := controller.Service.GetPokemon(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Pokemon retrieved",
		Results: response,
	})
}

func (controller *Pokemon) ListPokemon(c *fiber.Ctx) error {
	request := domainPokemon.ListRequest{
		Offset: c.QueryInt("offset", 0),
		Limit:  c.QueryInt("limit", 0),
	}

	response, err := controller.Service.ListPokemon(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Pokemon list retrieved",
		Results: response,
	})
}

func (controller *Pokemon) ComparePokemon(c *fiber.Ctx) error {
	request := domainPokemon.CompareRequest{
		First:  c.Query("pokemon1"),
		Second: c.Query("pokemon2"),
	}

	response, err := controller.Service.ComparePokemon(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Comparison completed",
		Results: response,
	})
}

func (controller *Pokemon) GetSpecies(c *fiber.Ctx) error {
	request := domainPokemon.GetRequest{Identifier: c.Params("identifier")}

	response, err := controller.Service.DescribeSpecies(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Species retrieved",
		Results: response,
	})
}

func (controller *Pokemon) GetEvolutionChain(c *fiber.Ctx) error {
	request := domainPokemon.GetRequest{Identifier: c.Params("identifier")}

	response, err := controller.Service.GetEvolutionChain(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Evolution chain retrieved",
		Results: response,
	})
}

func (controller *Pokemon) GetSprite(c *fiber.Ctx) error {
	request := domainPokemon.SpriteRequest{
		Identifier: c.Params("identifier"),
		MaxSize:    c.QueryInt("max_size", 0),
		Shiny:      c.QueryBool("shiny", false),
	}

	response, err := controller.Service.GetSprite(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	c.Set(fiber.HeaderContentType, response.MIMEType)
	return c.Send(response.Data)
}

func (controller *Pokemon) GetTypeEffectiveness(c *fiber.Ctx) error {
	request := domainPokemon.GetRequest{Identifier: c.Params("identifier")}

	response, err := controller.Service.GetTypeEffectiveness(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Type effectiveness retrieved",
		Results: response,
	})
}
