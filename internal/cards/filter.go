package cards

import "strings"

type FilterOptions struct {
	// FreeWords are whitespace separated terms; every term must appear in the
	// name, description or keywords (case-insensitive).
	FreeWords  string     `json:"q" form:"q"`
	Categories []Category `json:"categories" form:"category"`
	Keywords   []string   `json:"keywords" form:"keyword"`
}

// Empty reports whether no criteria are set.
func (o FilterOptions) Empty() bool {
	return strings.TrimSpace(o.FreeWords) == "" && len(o.Categories) == 0 && len(o.Keywords) == 0
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

func Filter(cards []Card, opt FilterOptions) []Card {
	out := []Card{}
	terms := strings.Fields(strings.ToLower(opt.FreeWords))
	for _, c := range cards {
		if len(opt.Categories) > 0 {
			matched := false
			for _, cat := range opt.Categories {
				if c.Category.OrOther() == cat.OrOther() {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(opt.Keywords) > 0 {
			if !containsAny(c.Keywords, opt.Keywords) {
				continue
			}
		}
		if len(terms) > 0 {
			name := strings.ToLower(c.Name)
			desc := strings.ToLower(c.Description)
			kws := strings.ToLower(strings.Join(c.Keywords, " "))
			ok := true
			for _, k := range terms {
				if !strings.Contains(name, k) &&
					!strings.Contains(desc, k) &&
					!strings.Contains(kws, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
