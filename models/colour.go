package models

// Colour is a named packed RGB value offered as a choice on the colour option.
type Colour struct {
	Name  string
	Value int64
}

// MaxColourChoices is the most choices Discord accepts on a single option.
const MaxColourChoices = 25

// Palette is sorted by name with byte ordering, so "Black" leads the
// lower-case names.
var Palette = []Colour{
	{Name: "Black", Value: 0x000000},
	{Name: "blue", Value: 0x3498db},
	{Name: "brand_green", Value: 0x57f287},
	{Name: "brand_red", Value: 0xed4245},
	{Name: "dark_blue", Value: 0x206694},
	{Name: "dark_gold", Value: 0xc27c0e},
	{Name: "dark_gray", Value: 0x607d8b},
	{Name: "dark_green", Value: 0x1f8b4c},
	{Name: "dark_grey", Value: 0x607d8b},
	{Name: "dark_magenta", Value: 0xad1457},
	{Name: "dark_orange", Value: 0xa84300},
	{Name: "dark_red", Value: 0x992d22},
	{Name: "dark_teal", Value: 0x11806a},
	{Name: "dark_theme", Value: 0x313338},
	{Name: "fuchsia", Value: 0xeb459e},
	{Name: "gold", Value: 0xf1c40f},
	{Name: "green", Value: 0x2ecc71},
	{Name: "light_gray", Value: 0x979c9f},
	{Name: "light_grey", Value: 0x979c9f},
	{Name: "magenta", Value: 0xe91e63},
	{Name: "orange", Value: 0xe67e22},
	{Name: "pink", Value: 0xeb459f},
	{Name: "red", Value: 0xe74c3c},
	{Name: "teal", Value: 0x1abc9c},
	{Name: "yellow", Value: 0xfee75c},
}

// ColourName returns the palette name for value, or "" when it is not one of
// the offered choices.
func ColourName(value int64) string {
	for _, colour := range Palette {
		if colour.Value == value {
			return colour.Name
		}
	}
	return ""
}
