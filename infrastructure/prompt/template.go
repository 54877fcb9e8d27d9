package prompt

import (
	"fmt"
	"os"
	"strings"
)

// Template - a prompt or report template with {{NAME}} placeholders.
// Substitution is plain string replacement; unknown placeholders are left
// untouched so stage-1 prompts can be rendered in two phases (static data
// first, the uploaded-media list only after uploads complete).
type Template struct {
	text string
}

func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", path, err)
	}
	return &Template{text: string(data)}, nil
}

func FromString(text string) *Template {
	return &Template{text: text}
}

// Render substitutes every {{KEY}} placeholder present in subs.
func (t *Template) Render(subs map[string]string) string {
	return Apply(t.text, subs)
}

// Apply performs placeholder substitution on already-rendered text. Used for
// the post-upload phase of stage-1 prompts.
func Apply(text string, subs map[string]string) string {
	pairs := make([]string, 0, len(subs)*2)
	for key, value := range subs {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
