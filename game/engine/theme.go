package engine

// TileTheme is how a tile value is presented
type TileTheme struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Theme maps tile values to their presentation
type Theme map[int]TileTheme

// DefaultTheme is the eco tile progression
var DefaultTheme = Theme{
	2:    {Emoji: "🌿", Name: "Compost Bin", Color: "#eee4da"},
	4:    {Emoji: "🪴", Name: "Urban Garden", Color: "#ede0c8"},
	8:    {Emoji: "💡", Name: "LED Lightbulb", Color: "#f2b179"},
	16:   {Emoji: "🚲", Name: "Bike Share Program", Color: "#f59563"},
	32:   {Emoji: "🌞", Name: "Rooftop Solar", Color: "#f67c5f"},
	64:   {Emoji: "🌬️", Name: "Wind Turbine", Color: "#f65e3b"},
	128:  {Emoji: "🌊", Name: "Tidal Energy", Color: "#edcf72"},
	256:  {Emoji: "🏙️", Name: "Green Smart City", Color: "#edcc61"},
	512:  {Emoji: "🌍", Name: "Planet in Balance", Color: "#edc850"},
	1024: {Emoji: "🛸", Name: "Utopian Eco Future", Color: "#edc53f"},
}

// beyondTheme is used for values the theme does not list
var beyondTheme = TileTheme{Emoji: "✨", Name: "Beyond Utopia", Color: "#edc22e"}

// Lookup returns the presentation for value, falling back to the default
// theme and then to a generic entry for values past the table.
func (t Theme) Lookup(value int) TileTheme {
	if tt, ok := t[value]; ok {
		return tt
	}
	if tt, ok := DefaultTheme[value]; ok {
		return tt
	}
	return beyondTheme
}
