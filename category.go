package catlog

import (
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Category is a named diagnostic channel. The set of identifiers is closed
// and owned by whoever authors the configuration; the logger only looks
// identifiers up.
type Category string

const (
	// Reserved identifiers, present in every generated category set.
	CAT_NONE    Category = "None"
	CAT_WARNING Category = "Warning"
	CAT_ERROR   Category = "Error"

	// Sample identifiers shipped with DefaultConfig.
	CAT_SYSTEM    Category = "System"
	CAT_NETWORK   Category = "Network"
	CAT_UI        Category = "UI"
	CAT_GAMEPLAY  Category = "Gameplay"
	CAT_ANALYTICS Category = "Analytics"
	CAT_OTHER     Category = "Other"
)

// Color is an RGB triple. In TOML it is written as "#RRGGBB".
type Color struct {
	R, G, B uint8
}

// Hex returns the color as upper-case "#RRGGBB".
func (c Color) Hex() string {
	return "#" + strings.ToUpper(hex.EncodeToString([]byte{c.R, c.G, c.B}))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts "#RRGGBB", "#RGB" and the same without "#", in any
// case. Anything else decodes to DefaultColor without an error; use
// ParseColor to find out.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		parsed = DefaultColor
	}
	*c = parsed
	return nil
}

// ParseColor is the strict form of UnmarshalText.
func ParseColor(text string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(text), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return Color{}, errors.New(_ERROR_MESSAGE_BAD_COLOR + " `" + text + "`")
	}
	return Color{raw[0], raw[1], raw[2]}, nil
}

// CategoryDescriptor binds one category to its gate and decoration.
type CategoryDescriptor struct {
	Category Category `toml:"category"`
	Enabled  bool     `toml:"enabled"`
	Color    Color    `toml:"color"`
	Emoji    string   `toml:"emoji"` // at most MAX_EMOJI_CLUSTERS are shown, empty means DEFAULT_EMOJI
}

// NewDescriptor returns an enabled descriptor with default decoration.
func NewDescriptor(category Category) CategoryDescriptor {
	return CategoryDescriptor{Category: category, Enabled: true, Color: DefaultColor, Emoji: DEFAULT_EMOJI}
}

// Config is the category table attached to a logger. It is read-only once
// attached: the logger builds a lookup index on first use and never sees
// later edits of Categories.
type Config struct {
	EnableAllLogs bool                 `toml:"enable_all_logs"`
	EditorOnly    bool                 `toml:"editor_only"`
	Categories    []CategoryDescriptor `toml:"categories"`

	once   sync.Once
	index  map[Category]int
	issues []error // tolerated while loading, reported by Validate
}

// NewConfig creates a config from the provided descriptors. Duplicate
// identifiers are kept; lookups see only the first one.
func NewConfig(enableAll, editorOnly bool, categories ...CategoryDescriptor) *Config {
	return &Config{
		EnableAllLogs: enableAll,
		EditorOnly:    editorOnly,
		Categories:    categories,
	}
}

// DefaultConfig returns the sample table: all logs on, editor-only on, the
// reserved identifiers plus a handful of common ones.
func DefaultConfig() *Config {
	return NewConfig(true, true,
		CategoryDescriptor{CAT_NONE, true, Color{0xFF, 0xFF, 0xFF}, "📝"},
		CategoryDescriptor{CAT_WARNING, true, Color{0xFF, 0xFF, 0x00}, "⚠️"},
		CategoryDescriptor{CAT_ERROR, true, Color{0xFF, 0x00, 0x00}, "❌"},
		CategoryDescriptor{CAT_SYSTEM, true, Color{0x00, 0xFF, 0xFF}, "⚙️"},
		CategoryDescriptor{CAT_NETWORK, true, Color{0x00, 0xFF, 0x00}, "🌐"},
		CategoryDescriptor{CAT_UI, true, Color{0xFF, 0x00, 0xFF}, "🖼️"},
		CategoryDescriptor{CAT_GAMEPLAY, true, Color{0xFF, 0x80, 0x00}, "🎮"},
		CategoryDescriptor{CAT_ANALYTICS, true, Color{0x80, 0x00, 0xFF}, "📊"},
		CategoryDescriptor{CAT_OTHER, true, Color{0xFF, 0xFF, 0xFF}, "📝"},
	)
}

func (c *Config) buildIndex() {
	c.index = make(map[Category]int, len(c.Categories))
	for i, d := range c.Categories {
		if _, dup := c.index[d.Category]; !dup {
			c.index[d.Category] = i
		}
	}
}

// descriptor returns the first descriptor of the category or nil.
func (c *Config) descriptor(category Category) *CategoryDescriptor {
	if c == nil {
		return nil
	}
	c.once.Do(c.buildIndex)
	if i, ok := c.index[category]; ok && i < len(c.Categories) {
		return &c.Categories[i]
	}
	return nil
}

// IsCategoryEnabled reports the descriptor's flag. Categories missing from a
// non-nil config are disabled; a nil config enables everything.
func (c *Config) IsCategoryEnabled(category Category) bool {
	if c == nil {
		return true
	}
	if d := c.descriptor(category); d != nil {
		return d.Enabled
	}
	return false
}

// CategoryExists reports whether the config has a descriptor for category.
func (c *Config) CategoryExists(category Category) bool {
	return c.descriptor(category) != nil
}

// AllCategories lists the identifiers in table order.
func (c *Config) AllCategories() []Category {
	if c == nil {
		return []Category{}
	}
	res := make([]Category, 0, len(c.Categories))
	for _, d := range c.Categories {
		res = append(res, d.Category)
	}
	return res
}

// Decorators returns the emoji and "#RRGGBB" color of a category. Unknown
// categories and a nil config get DEFAULT_EMOJI and DefaultColor.
func (c *Config) Decorators(category Category) (emoji, colorHex string) {
	d := c.descriptor(category)
	if d == nil {
		return DEFAULT_EMOJI, DefaultColor.Hex()
	}
	return normalizeEmoji(d.Emoji), d.Color.Hex()
}

// allows applies the gate in its fixed order: global flag, category flag,
// editor-only context. A nil config lets everything through.
func (c *Config) allows(category Category, probe Probe) bool {
	if c == nil {
		return true
	}
	if !c.EnableAllLogs {
		return false
	}
	if !c.IsCategoryEnabled(category) {
		return false
	}
	if c.EditorOnly && (probe == nil || !probe.Interactive()) {
		return false
	}
	return true
}

// normalizeEmoji composes the string (NFC) and keeps at most
// MAX_EMOJI_CLUSTERS grapheme clusters, so flags and ZWJ sequences count as
// one visible character each.
func normalizeEmoji(emoji string) string {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return DEFAULT_EMOJI
	}
	emoji = norm.NFC.String(emoji)
	rest := emoji
	state := -1
	cut := 0
	for n := 0; n < MAX_EMOJI_CLUSTERS && len(rest) > 0; n++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cut += len(cluster)
	}
	return emoji[:cut]
}
