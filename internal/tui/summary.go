package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disiqueira/gotree/v3"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

// Renderer formats build reports for humans.
type Renderer struct {
	styled bool
}

// NewRenderer creates a Renderer. Styles are applied only in ModeStyled.
func NewRenderer(mode Mode) Renderer {
	return Renderer{styled: mode == ModeStyled}
}

func (r Renderer) apply(style lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return style.Render(text)
}

// BuildSummary renders one line per library followed by diagnostics.
func (r Renderer) BuildSummary(report clientlibs.BuildReport) string {
	var b strings.Builder

	for _, lib := range report.Libraries {
		fmt.Fprintf(&b, "%s %s %s %s, %s (%s)\n",
			r.apply(SuccessStyle, SymbolCheck),
			r.apply(LibraryStyle, lib.Name),
			SymbolArrowRight,
			lib.FullDir,
			lib.MinDir,
			memberCounts(lib))
		if len(lib.Unresolved) > 0 {
			fmt.Fprintf(&b, "  %s unresolved: %s\n",
				r.apply(WarningStyle, SymbolWarning),
				strings.Join(lib.Unresolved, ", "))
		}
	}

	b.WriteString(r.Diagnostics(report.Diagnostics))

	status := fmt.Sprintf("Built %d %s", len(report.Libraries), pluralize(len(report.Libraries), "library", "libraries"))
	if report.HasDiagnostics() {
		status += fmt.Sprintf(", %d %s", len(report.Diagnostics), pluralize(len(report.Diagnostics), "diagnostic", "diagnostics"))
		b.WriteString(r.apply(WarningStyle, status))
	} else {
		b.WriteString(r.apply(TitleStyle, status))
	}
	b.WriteString("\n")
	return b.String()
}

// Diagnostics renders one line per skipped or degraded item.
func (r Renderer) Diagnostics(diags []clientlibs.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%s %s\n", r.apply(ErrorStyle, SymbolCross), d.Error())
	}
	return b.String()
}

// PlanTree renders the resolved libraries as a tree: one node per
// library, one child per bundle listing its files in bundle order.
func (r Renderer) PlanTree(rootLabel string, report clientlibs.BuildReport) string {
	tree := gotree.New(r.apply(TitleStyle, rootLabel))

	for _, lib := range report.Libraries {
		node := tree.Add(r.apply(LibraryStyle, lib.Name) + " " + r.apply(MutedStyle, lib.ID))
		addBundle(node, clientlibs.StyleBundleFile, lib.Includes[clientlibs.AssetStyle.Extension()], lib.Styles)
		addBundle(node, clientlibs.ScriptBundleFile, lib.Includes[clientlibs.AssetScript.Extension()], lib.Scripts)
		if len(lib.Unresolved) > 0 {
			deps := node.Add(r.apply(WarningStyle, clientlibs.DependsFile))
			for _, ref := range lib.Unresolved {
				deps.Add(ref)
			}
		}
	}
	return tree.Print()
}

func addBundle(node gotree.Tree, bundle string, includes, members []string) {
	if len(members) == 0 {
		return
	}
	b := node.Add(bundle)
	for _, inc := range includes {
		b.Add("(include) " + inc)
	}
	for i, m := range members {
		b.Add(fmt.Sprintf("%d. %s", i+1, m))
	}
}

func memberCounts(lib clientlibs.LibraryReport) string {
	var parts []string
	if n := len(lib.Styles); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, pluralize(n, "style", "styles")))
	}
	if n := len(lib.Scripts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, pluralize(n, "script", "scripts")))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
