package pokemon

// NamedResource points at another PokeAPI resource by name.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIResource points at another PokeAPI resource by URL only.
type APIResource struct {
	URL string `json:"url"`
}

// ResourcePage is one page of a paginated resource listing.
type ResourcePage struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type StatValue struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// SpriteSet holds the subset of sprite URLs this service works with. The
// upstream payload carries many more, all optional.
type SpriteSet struct {
	FrontDefault *string       `json:"front_default"`
	FrontShiny   *string       `json:"front_shiny"`
	BackDefault  *string       `json:"back_default"`
	BackShiny    *string       `json:"back_shiny"`
	Other        *OtherSprites `json:"other,omitempty"`
}

type OtherSprites struct {
	OfficialArtwork ArtworkSprites `json:"official-artwork"`
}

type ArtworkSprites struct {
	FrontDefault *string `json:"front_default"`
}

// Pokemon is a single Pokemon as served by the upstream API, reduced to the
// fields this service exposes.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	BaseExperience int           `json:"base_experience"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	Order          int           `json:"order"`
	IsDefault      bool          `json:"is_default"`
	Abilities      []AbilitySlot `json:"abilities"`
	Sprites        SpriteSet     `json:"sprites"`
	Stats          []StatValue   `json:"stats"`
	Types          []TypeSlot    `json:"types"`
	Species        NamedResource `json:"species"`
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

// Species is a Pokemon species. Habitat, Shape and EvolvesFromSpecies are
// null upstream for some species, hence the pointers.
type Species struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	Order              int            `json:"order"`
	IsBaby             bool           `json:"is_baby"`
	IsLegendary        bool           `json:"is_legendary"`
	IsMythical         bool           `json:"is_mythical"`
	CaptureRate        int            `json:"capture_rate"`
	BaseHappiness      int            `json:"base_happiness"`
	Color              NamedResource  `json:"color"`
	Habitat            *NamedResource `json:"habitat"`
	Shape              *NamedResource `json:"shape"`
	Generation         NamedResource  `json:"generation"`
	GrowthRate         NamedResource  `json:"growth_rate"`
	EvolvesFromSpecies *NamedResource `json:"evolves_from_species"`
	EvolutionChain     APIResource    `json:"evolution_chain"`
	FlavorTextEntries  []FlavorText   `json:"flavor_text_entries"`
	Genera             []Genus        `json:"genera"`
}

// TypeRelations are the damage multipliers of one type against others.
type TypeRelations struct {
	NoDamageTo       []NamedResource `json:"no_damage_to"`
	HalfDamageTo     []NamedResource `json:"half_damage_to"`
	DoubleDamageTo   []NamedResource `json:"double_damage_to"`
	NoDamageFrom     []NamedResource `json:"no_damage_from"`
	HalfDamageFrom   []NamedResource `json:"half_damage_from"`
	DoubleDamageFrom []NamedResource `json:"double_damage_from"`
}

type Type struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	DamageRelations TypeRelations `json:"damage_relations"`
	Generation      NamedResource `json:"generation"`
}

// EvolutionDetail describes one way a species evolves. Every requirement
// field is optional upstream; pointers distinguish absent from zero.
type EvolutionDetail struct {
	Item                  *NamedResource `json:"item"`
	Trigger               NamedResource  `json:"trigger"`
	Gender                *int           `json:"gender"`
	HeldItem              *NamedResource `json:"held_item"`
	KnownMove             *NamedResource `json:"known_move"`
	KnownMoveType         *NamedResource `json:"known_move_type"`
	Location              *NamedResource `json:"location"`
	MinLevel              *int           `json:"min_level"`
	MinHappiness          *int           `json:"min_happiness"`
	MinBeauty             *int           `json:"min_beauty"`
	MinAffection          *int           `json:"min_affection"`
	NeedsOverworldRain    bool           `json:"needs_overworld_rain"`
	PartySpecies          *NamedResource `json:"party_species"`
	PartyType             *NamedResource `json:"party_type"`
	RelativePhysicalStats *int           `json:"relative_physical_stats"`
	TimeOfDay             string         `json:"time_of_day"`
	TradeSpecies          *NamedResource `json:"trade_species"`
	TurnUpsideDown        bool           `json:"turn_upside_down"`
}

// ChainLink is one node of an evolution tree. EvolvesTo holds the species
// this one evolves into, each with the details of how.
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionChain is a full evolution tree rooted at the base species.
type EvolutionChain struct {
	ID              int            `json:"id"`
	BabyTriggerItem *NamedResource `json:"baby_trigger_item"`
	Chain           ChainLink      `json:"chain"`
}
