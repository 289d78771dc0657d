package theme

import (
	"context"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

type memoryThemeStore struct {
	value model.Theme
	saved []model.Theme
}

func (m *memoryThemeStore) LoadTheme() (model.Theme, bool) {
	return m.value, m.value != ""
}

func (m *memoryThemeStore) SaveTheme(th model.Theme) bool {
	m.value = th
	m.saved = append(m.saved, th)
	return true
}

func prefers(th model.Theme) Preference {
	return func() (model.Theme, bool) { return th, true }
}

func unknownPreference() (model.Theme, bool) { return "", false }

func TestInitialResolutionOrder(t *testing.T) {
	cases := []struct {
		name      string
		persisted model.Theme
		pref      Preference
		want      model.Theme
	}{
		{name: "persisted wins", persisted: model.ThemeLight, pref: prefers(model.ThemeDark), want: model.ThemeLight},
		{name: "system preference", pref: prefers(model.ThemeDark), want: model.ThemeDark},
		{name: "preference not queryable", pref: unknownPreference, want: model.ThemeLight},
		{name: "no preference", want: model.ThemeLight},
		{name: "invalid preference ignored", pref: prefers(model.Theme("sepia")), want: model.ThemeLight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memoryThemeStore{value: tc.persisted}
			s := New(store, tc.pref)
			if got := s.Current(); got != tc.want {
				t.Fatalf("Current() = %q, want %q", got, tc.want)
			}
			if len(store.saved) != 0 {
				t.Fatalf("resolution should not persist, saved %v", store.saved)
			}
		})
	}
}

func TestDarkPreferenceThenToggle(t *testing.T) {
	backend := storage.NewMemoryBackend()
	store := storage.NewStore(backend)
	s := New(store, prefers(model.ThemeDark))
	if s.Current() != model.ThemeDark {
		t.Fatalf("expected dark, got %q", s.Current())
	}

	if got := s.Toggle(); got != model.ThemeLight {
		t.Fatalf("Toggle() = %q, want light", got)
	}
	raw, ok, _ := backend.Get(context.Background(), storage.KeyTheme)
	if !ok || raw != "light" {
		t.Fatalf("expected persisted \"light\", got %q ok=%v", raw, ok)
	}
	if reloaded := New(store, prefers(model.ThemeDark)); reloaded.Current() != model.ThemeLight {
		t.Fatalf("reload should use persisted light, got %q", reloaded.Current())
	}
}

func TestTogglePersistsEveryTime(t *testing.T) {
	store := &memoryThemeStore{}
	s := New(store, nil)
	s.Toggle()
	s.Toggle()
	s.Toggle()
	want := []model.Theme{model.ThemeDark, model.ThemeLight, model.ThemeDark}
	if len(store.saved) != len(want) {
		t.Fatalf("saved %v, want %v", store.saved, want)
	}
	for i := range want {
		if store.saved[i] != want[i] {
			t.Fatalf("saved %v, want %v", store.saved, want)
		}
	}
}

func TestListeners(t *testing.T) {
	s := New(nil, nil)
	var got []model.Theme
	unsubscribe := s.Subscribe(func(th model.Theme) { got = append(got, th) })
	s.Toggle()
	unsubscribe()
	s.Toggle()
	if len(got) != 1 || got[0] != model.ThemeDark {
		t.Fatalf("unexpected notifications: %v", got)
	}
}

func TestTerminalPreferenceOverride(t *testing.T) {
	if th, ok := TerminalPreference("dark")(); !ok || th != model.ThemeDark {
		t.Fatalf("override dark = %q, %v", th, ok)
	}
	if th, ok := TerminalPreference(" LIGHT ")(); !ok || th != model.ThemeLight {
		t.Fatalf("override light = %q, %v", th, ok)
	}
	if _, ok := TerminalPreference("sepia")(); ok {
		t.Fatal("invalid override should not be reported")
	}
}
