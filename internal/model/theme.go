package model

import (
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, raw)
	}
	return t, nil
}
