package chat

import "strings"

// commandMarker prefixes every invocation token.
const commandMarker = "/"

// Category groups commands for the menu surface.
type Category string

const (
	CategoryGeneral Category = "Umum"
	CategoryInfo    Category = "Informasi"
	CategoryTools   Category = "Alat"
	CategoryAI      Category = "AI"
)

// Invocation tokens for the built-in commands.
const (
	TokenPing   = "/ping"
	TokenIP     = "/ip"
	TokenAI     = "/ai"
	TokenTikTok = "/tiktok"
)

// Command is a static catalog entry. The catalog is defined at process
// start and never mutated.
type Command struct {
	Name          string
	Description   string
	Token         string
	RequiresParam bool
	Category      Category
}

// DefaultCommands returns the built-in command catalog.
func DefaultCommands() []Command {
	return []Command{
		{
			Name:        "/ping",
			Description: "Cek koneksi ke bot.",
			Token:       TokenPing,
			Category:    CategoryGeneral,
		},
		{
			Name:        "/ip",
			Description: "Tampilkan alamat IP publik Anda.",
			Token:       TokenIP,
			Category:    CategoryInfo,
		},
		{
			Name:          "/ai [pertanyaan]",
			Description:   "Ajukan pertanyaan ke AI.",
			Token:         TokenAI,
			RequiresParam: true,
			Category:      CategoryAI,
		},
		{
			Name:          "/tiktok [url]",
			Description:   "Unduh video TikTok tanpa watermark.",
			Token:         TokenTikTok,
			RequiresParam: true,
			Category:      CategoryTools,
		},
	}
}

// Registry is the static command catalog with token lookup and a discovery
// filter for menu surfaces.
type Registry struct {
	commands []Command
	byToken  map[string]Command
}

// NewRegistry builds a registry from a fixed command list.
func NewRegistry(commands []Command) *Registry {
	r := &Registry{
		commands: commands,
		byToken:  make(map[string]Command, len(commands)),
	}
	for _, c := range commands {
		r.byToken[strings.ToLower(c.Token)] = c
	}
	return r
}

// Lookup finds a command by its invocation token. Matching is
// case-insensitive and exact; callers pass only the first whitespace
// delimited word of the input.
func (r *Registry) Lookup(token string) (Command, bool) {
	c, ok := r.byToken[strings.ToLower(token)]
	return c, ok
}

// Commands returns the catalog in declaration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// FilterByText returns commands whose name or description contains query,
// case-insensitive, in declaration order. Used only for menu display, never
// for dispatch decisions.
func (r *Registry) FilterByText(query string) []Command {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.Commands()
	}
	var out []Command
	for _, c := range r.commands {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			out = append(out, c)
		}
	}
	return out
}

// CommandCategory is a named group of commands for menu rendering.
type CommandCategory struct {
	Name     Category
	Commands []Command
}

// Categories groups the catalog by category, skipping empty groups.
func (r *Registry) Categories() []CommandCategory {
	order := []Category{CategoryGeneral, CategoryInfo, CategoryTools, CategoryAI}
	var out []CommandCategory
	for _, name := range order {
		var group []Command
		for _, c := range r.commands {
			if c.Category == name {
				group = append(group, c)
			}
		}
		if len(group) > 0 {
			out = append(out, CommandCategory{Name: name, Commands: group})
		}
	}
	return out
}
