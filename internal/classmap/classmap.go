// Package classmap normalizes free-form EverQuest class tokens.
//
// /who output renders a player's class as a level-dependent title
// ("Phantasmist", "Warlord") or an abbreviation, while downstream guild
// tools expect the base class name. The alias table maps lower-cased
// tokens to canonical class names.
package classmap

import "strings"

// aliases maps lower-cased class tokens to canonical class names.
// Covers the sixteen base classes, their level titles, and common
// abbreviations.
var aliases = map[string]string{
	// Base classes
	"warrior":       "Warrior",
	"paladin":       "Paladin",
	"ranger":        "Ranger",
	"shadow knight": "Shadow Knight",
	"monk":          "Monk",
	"bard":          "Bard",
	"rogue":         "Rogue",
	"shaman":        "Shaman",
	"necromancer":   "Necromancer",
	"wizard":        "Wizard",
	"magician":      "Magician",
	"enchanter":     "Enchanter",
	"druid":         "Druid",
	"cleric":        "Cleric",
	"beastlord":     "Beastlord",
	"berserker":     "Berserker",

	// Enchanter titles
	"phantasmist":   "Enchanter",
	"illusionist":   "Enchanter",
	"beguiler":      "Enchanter",
	"arch convoker": "Enchanter",
	"coercer":       "Enchanter",

	// Magician titles
	"conjurer":     "Magician",
	"elementalist": "Magician",
	"arch mage":    "Magician",

	// Wizard titles
	"warlock":  "Wizard",
	"sorcerer": "Wizard",
	"arcanist": "Wizard",

	// Warrior titles
	"myrmidon": "Warrior",
	"champion": "Warrior",
	"overlord": "Warrior",
	"warlord":  "Warrior",

	// Monk titles
	"master":       "Monk",
	"grandmaster":  "Monk",
	"transcendent": "Monk",

	// Cleric/Paladin titles
	"templar":  "Paladin",
	"crusader": "Paladin",
	"knight":   "Paladin",
	"cavalier": "Paladin",

	// Shadow Knight titles
	"heretic":    "Shadow Knight",
	"reaver":     "Shadow Knight",
	"blackguard": "Shadow Knight",

	// Abbreviations
	"sk":           "Shadow Knight",
	"shadowknight": "Shadow Knight",
	"enc":          "Enchanter",
	"mag":          "Magician",
	"wiz":          "Wizard",
	"nec":          "Necromancer",
	"war":          "Warrior",
	"pal":          "Paladin",
	"ran":          "Ranger",
	"rog":          "Rogue",
	"mnk":          "Monk",
	"shm":          "Shaman",
	"dru":          "Druid",
	"cle":          "Cleric",
	"bst":          "Beastlord",
	"ber":          "Berserker",

	// Bard titles
	"minstrel":   "Bard",
	"troubadour": "Bard",

	"unknown": "Unknown",
}

// Normalize maps a free-form class token to its canonical class name.
// Lookup is case-insensitive. Unrecognized tokens are returned unchanged
// (original casing preserved) so novel titles stay visible instead of
// being silently dropped. Total function: never fails.
func Normalize(raw string) string {
	if canonical, ok := aliases[strings.ToLower(raw)]; ok {
		return canonical
	}
	return raw
}
