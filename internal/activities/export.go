package activities

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"ehpadacademy/internal/types"
)

// Markdown renders one sheet as a printable markdown document.
func Markdown(a *types.Activity) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", a.Title)
	fmt.Fprintf(&sb, "**Catégorie :** %s  \n", a.Category)
	fmt.Fprintf(&sb, "**Durée :** %s  \n", a.Duration)
	fmt.Fprintf(&sb, "**Participants :** %s  \n", a.Participants)
	fmt.Fprintf(&sb, "**Difficulté :** %s  \n", a.Difficulty)
	fmt.Fprintf(&sb, "**Publié par :** %s\n\n", a.Author)
	fmt.Fprintf(&sb, "%s\n", a.Description)

	if len(a.Objectives) > 0 {
		sb.WriteString("\n## 🎯 Objectifs\n\n")
		for _, obj := range a.Objectives {
			fmt.Fprintf(&sb, "- %s\n", obj)
		}
	}
	if len(a.Material) > 0 {
		sb.WriteString("\n## 🛠️ Matériel Nécessaire\n\n")
		for _, mat := range a.Material {
			fmt.Fprintf(&sb, "- %s\n", mat)
		}
	}
	return sb.String()
}

// Render returns the sheet rendered for terminal display at the given
// width. Rendering failures fall back to the raw markdown.
func Render(a *types.Activity, width int) string {
	md := Markdown(a)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
