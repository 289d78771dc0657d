package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasklist/internal/model"
	"golang.org/x/term"
)

// TerminalPreference treats a configured scheme as the system preference.
// Without one it asks the terminal for its background color, which is only
// possible when stdout is a terminal.
func TerminalPreference(override string) Preference {
	return func() (model.Theme, bool) {
		if strings.TrimSpace(override) != "" {
			th, err := model.ParseTheme(override)
			return th, err == nil
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return "", false
		}
		if lipgloss.HasDarkBackground() {
			return model.ThemeDark, true
		}
		return model.ThemeLight, true
	}
}
