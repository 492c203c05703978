package deck

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Line is one distinct card of a deck with its number of copies.
type Line struct {
	CardID int    `json:"cardId" yaml:"id"`
	Name   string `json:"name" yaml:"name,omitempty"`
	Count  int    `json:"count" yaml:"count"`
}

// Tally groups the deck's card ids in order of first appearance.
// names resolves ids to card names; unresolved ids keep an empty name.
func Tally(d UserDeck, names map[int]string) []Line {
	pos := make(map[int]int, len(d.CardIDs))
	var lines []Line
	for _, id := range d.CardIDs {
		if i, ok := pos[id]; ok {
			lines[i].Count++
			continue
		}
		pos[id] = len(lines)
		lines = append(lines, Line{CardID: id, Name: names[id], Count: 1})
	}
	return lines
}

// ExportText renders the deck as "# name" followed by one "Nx<id> <name>" line per card.
func ExportText(d UserDeck, names map[int]string) string {
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	for _, l := range Tally(d, names) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%dx%d %s", l.Count, l.CardID, l.Name)))
	}
	return strings.Join(lines, "\n")
}

type yamlDeck struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Cards       []Line   `yaml:"cards"`
}

// ExportYAML renders the deck as a YAML document.
func ExportYAML(d UserDeck, names map[int]string) (string, error) {
	out, err := yaml.Marshal(yamlDeck{
		Name:        d.Name,
		Description: d.Description,
		Tags:        d.Tags,
		Cards:       Tally(d, names),
	})
	if err != nil {
		return "", fmt.Errorf("marshal deck %d: %w", d.ID, err)
	}
	return string(out), nil
}

// Export renders the deck in format.
func Export(d UserDeck, names map[int]string, format string) (string, error) {
	switch format {
	case FormatText, "":
		return ExportText(d, names), nil
	case FormatYAML:
		return ExportYAML(d, names)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
