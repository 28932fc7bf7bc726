package pokemon

import (
	"fmt"
	"strings"

	"github.com/pokemcp/pokemcp/pkg/utils"
)

// Conditions renders the requirements of one evolution step as a human
// readable clause, e.g. "reaching level 16" or "holding kings-rock during
// night". Fields are evaluated in a fixed order so the clause is
// deterministic. When no requirement field is set the trigger alone decides
// the clause, and an unknown trigger yields an empty string.
func (d EvolutionDetail) Conditions() string {
	var parts []string

	if d.MinLevel != nil {
		parts = append(parts, fmt.Sprintf("reaching level %d", *d.MinLevel))
	}
	if d.MinHappiness != nil {
		parts = append(parts, fmt.Sprintf("happiness of at least %d", *d.MinHappiness))
	}
	if d.MinAffection != nil {
		parts = append(parts, fmt.Sprintf("affection of at least %d", *d.MinAffection))
	}
	if d.Item != nil {
		parts = append(parts, "using "+d.Item.Name)
	}
	if d.HeldItem != nil {
		parts = append(parts, "holding "+d.HeldItem.Name)
	}
	if d.KnownMove != nil {
		parts = append(parts, "knowing the move "+d.KnownMove.Name)
	}
	if d.KnownMoveType != nil {
		parts = append(parts, "knowing a "+d.KnownMoveType.Name+"-type move")
	}
	if d.Location != nil {
		parts = append(parts, "at "+d.Location.Name)
	}
	if d.NeedsOverworldRain {
		parts = append(parts, "while it's raining")
	}
	if d.PartySpecies != nil {
		parts = append(parts, "with a "+d.PartySpecies.Name+" in the party")
	}
	if d.PartyType != nil {
		parts = append(parts, "with a "+d.PartyType.Name+"-type Pokemon in the party")
	}
	if d.TradeSpecies != nil {
		parts = append(parts, "by trading with "+d.TradeSpecies.Name)
	}
	if d.TimeOfDay != "" {
		parts = append(parts, "during "+d.TimeOfDay)
	}
	if d.RelativePhysicalStats != nil {
		switch {
		case *d.RelativePhysicalStats > 0:
			parts = append(parts, "when Attack > Defense")
		case *d.RelativePhysicalStats < 0:
			parts = append(parts, "when Attack < Defense")
		default:
			parts = append(parts, "when Attack = Defense")
		}
	}

	if len(parts) == 0 {
		switch d.Trigger.Name {
		case "trade":
			return "by trading"
		case "level-up":
			return "by leveling up"
		default:
			return ""
		}
	}

	return strings.Join(parts, " ")
}

// RenderChain flattens an evolution tree into display lines, depth first in
// pre-order. The root is the bare species name; every descendant is
// indented four spaces per depth level behind a connector glyph, annotated
// with the conditions of its first evolution detail when one exists. The
// number of lines always equals the number of nodes in the tree.
//
// Alternative evolution methods beyond the first detail entry of an edge
// are not rendered.
func RenderChain(root ChainLink) []string {
	lines := []string{utils.TitleWords(root.Species.Name)}

	var walk func(link ChainLink, depth int)
	walk = func(link ChainLink, depth int) {
		for _, child := range link.EvolvesTo {
			line := strings.Repeat("    ", depth) + "└─> " + utils.TitleWords(child.Species.Name)
			if len(child.EvolutionDetails) > 0 {
				if conditions := child.EvolutionDetails[0].Conditions(); conditions != "" {
					line += " (" + conditions + ")"
				}
			}
			lines = append(lines, line)
			walk(child, depth+1)
		}
	}
	walk(root, 1)

	return lines
}
