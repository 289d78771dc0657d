package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Dark    bool
	Width   int
	Header  string
	Stats   StatsData
	List    string
	Details string
	Input   string
	Status  string
	IsError bool
	Footer  string
}

// Palette holds every style the app draws with for one color scheme.
type Palette struct {
	Header    lipgloss.Style
	Panel     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Footer    lipgloss.Style
	Cursor    lipgloss.Style
	Done      lipgloss.Style
	Overdue   lipgloss.Style
	Muted     lipgloss.Style
	Priority  map[string]lipgloss.Style
	Remaining lipgloss.Style
}

var (
	lightPalette = newPalette(palette{
		accent: "25", text: "235", muted: "245", ok: "28", bad: "124", border: "250",
		low: "30", medium: "136", high: "160",
	})
	darkPalette = newPalette(palette{
		accent: "12", text: "252", muted: "8", ok: "10", bad: "9", border: "240",
		low: "14", medium: "11", high: "9",
	})
)

type palette struct {
	accent, text, muted, ok, bad, border string
	low, medium, high                    string
}

func newPalette(c palette) Palette {
	return Palette{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.accent)),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(c.border)).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.ok)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.bad)),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.muted)),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.accent)),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(c.muted)),
		Overdue:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.bad)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.muted)),
		Remaining: lipgloss.NewStyle().Foreground(lipgloss.Color(c.text)),
		Priority: map[string]lipgloss.Style{
			"low":    lipgloss.NewStyle().Foreground(lipgloss.Color(c.low)),
			"medium": lipgloss.NewStyle().Foreground(lipgloss.Color(c.medium)),
			"high":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.high)),
		},
	}
}

func PaletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

func RenderApp(data AppData) string {
	p := PaletteFor(data.Dark)
	width := data.Width
	if width < 40 {
		width = 40
	}
	inner := width - 4

	body := []string{RenderStats(p, data.Stats), "", data.List}
	if data.Input != "" {
		body = append(body, "", data.Input)
	}
	lines := []string{
		p.Header.Render(data.Header),
		p.Panel.Width(inner).Render(strings.Join(body, "\n")),
	}
	if strings.TrimSpace(data.Details) != "" {
		lines = append(lines, p.Panel.Width(inner).Render(data.Details))
	}
	if data.Status != "" {
		if data.IsError {
			lines = append(lines, p.Error.Render("status: error: "+data.Status))
		} else {
			lines = append(lines, p.Status.Render("status: "+data.Status))
		}
	}
	if data.Footer != "" {
		lines = append(lines, p.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown falls back to the raw text when glamour cannot render it.
func RenderMarkdown(md string, dark bool, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
