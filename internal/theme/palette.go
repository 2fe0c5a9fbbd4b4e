package theme

import "strconv"

// GroupPalette is the ordered set of group colors handed out by the
// allocator. Index i corresponds to the named color cat<i+1>.
var GroupPalette = []string{
	"#FFC928", // cat1
	"#D072A7",
	"#CFE8B9",
	"#682D6E",
	"#F4EAB0",
	"#5D91A8",
	"#EB7A2D",
	"#2E5B4D",
	"#D4B2D0",
	"#C9C176", // cat10
	"#AF6175",
	"#A8CB79",
	"#F79B93",
	"#8B4B2F",
	"#78A16B",
	"#9C76B7",
	"#E9B7CE",
	"#FBD6B4",
	"#9AA9D8",
	"#F9D7DD", // cat20
	"#B5643F",
	"#3A599E",
	"#E4DAF4",
	"#9F3B49",
	"#D8AB31",
	"#697A3F",
	"#C6D9EB",
	"#8F5A85",
	"#B35E6B",
	"#A27B2B", // cat30
}

// Palette returns a copy of GroupPalette.
func Palette() []string {
	return append([]string(nil), GroupPalette...)
}

// ColorName returns the catN name of a palette color, or "" when hex is not
// part of the palette.
func ColorName(hex string) string {
	for i, c := range GroupPalette {
		if c == hex {
			return "cat" + strconv.Itoa(i+1)
		}
	}
	return ""
}
