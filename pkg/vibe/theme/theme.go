// Package theme holds the ordered table of named themes used by local
// palette generation.
package theme

import "strings"

// DefaultName is used when a prompt matches no theme.
const DefaultName = "minimal"

// Theme is a named seed palette plus the extra words that select it.
type Theme struct {
	Name     string
	Synonyms []string
	Seeds    []string
}

// Table order decides which theme wins when a prompt matches several.
var table = []Theme{
	{Name: "ocean", Synonyms: []string{"blue", "water", "sea"},
		Seeds: []string{"#1A535C", "#4ECDC4", "#F7FFF7", "#006E90", "#2EC4B6"}},
	{Name: "sunset", Synonyms: []string{"orange", "warm", "evening"},
		Seeds: []string{"#FF9F1C", "#FFBF69", "#FFFFFF", "#CBF3F0", "#2EC4B6"}},
	{Name: "forest", Synonyms: []string{"green", "nature", "trees"},
		Seeds: []string{"#2D3047", "#93B7BE", "#E0CA3C", "#A37B45", "#3A5311"}},
	{Name: "pastel", Synonyms: []string{"soft", "light", "gentle"},
		Seeds: []string{"#FFC8DD", "#FFAFCC", "#BDE0FE", "#A2D2FF", "#CDB4DB"}},
	{Name: "neon", Synonyms: []string{"bright", "vibrant", "night"},
		Seeds: []string{"#FF0099", "#00FFFF", "#00FF00", "#FFFF00", "#FF00FF"}},
	{Name: "vintage", Synonyms: []string{"retro", "old", "classic"},
		Seeds: []string{"#8B5E34", "#EAD2AC", "#CDC6AE", "#906E4D", "#5B4B49"}},
	{Name: "minimal",
		Seeds: []string{"#FFFFFF", "#F5F5F5", "#EBEBEB", "#CCCCCC", "#333333"}},
	{Name: "cyberpunk",
		Seeds: []string{"#FF00FF", "#00FFFF", "#F9FC5B", "#6EF971", "#4820DF"}},
	{Name: "autumn",
		Seeds: []string{"#D55E00", "#F0E442", "#CC9966", "#CC6633", "#AA5500"}},
	{Name: "winter",
		Seeds: []string{"#DEEFF5", "#B0E0E6", "#6495ED", "#4682B4", "#4F6D7A"}},
	{Name: "spring",
		Seeds: []string{"#D8E2DC", "#FFE5D9", "#FFCAD4", "#F4ACB7", "#9D8189"}},
	{Name: "summer",
		Seeds: []string{"#F8FD89", "#FFC0CB", "#FF7F50", "#87CEEB", "#00FF00"}},
}

// All returns a copy of the theme table in match order.
func All() []Theme {
	out := make([]Theme, len(table))
	copy(out, table)
	return out
}

// Lookup returns the theme with the given name.
func Lookup(name string) (Theme, bool) {
	for _, t := range table {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Match picks the first theme whose name or one of whose synonyms occurs in
// the prompt, case-insensitively. Matching is plain substring containment,
// so "bold" selects vintage through "old". Prompts matching nothing get the
// minimal theme.
func Match(prompt string) Theme {
	lower := strings.ToLower(prompt)
	for _, t := range table {
		if t.matches(lower) {
			return t
		}
	}
	def, _ := Lookup(DefaultName)
	return def
}

func (t Theme) matches(lower string) bool {
	if strings.Contains(lower, t.Name) {
		return true
	}
	for _, s := range t.Synonyms {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
