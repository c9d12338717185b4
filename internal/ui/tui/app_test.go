package tui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/usecase"
)

func loadedModel(t *testing.T) model {
	t.Helper()
	return loadedModelWithLogger(t, nil)
}

func loadedModelWithLogger(t *testing.T, log *slog.Logger) model {
	t.Helper()
	b := domain.NewTableBuilder(domain.DuplicateLastWins)
	if err := b.Add("2675BP", "NL333"); err != nil {
		t.Fatal(err)
	}
	prepared := usecase.PreparedTable{
		Settings: domain.Settings{DefaultYear: "2021", DefaultCountry: "NL"},
		Path:     "pc_NL.csv",
		Table:    b.Build("pc_NL.csv"),
	}

	m := newModel(Deps{Level: 3, Logger: log})
	next, _ := m.Update(tableLoadedMsg{prepared: prepared})
	return next.(model)
}

func typeText(m model, s string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(model)
}

func press(m model, k tea.KeyType) model {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(model)
}

func TestModel_LiveLookupAndLevels(t *testing.T) {
	m := typeText(loadedModel(t), "2675 bp")

	if m.current == nil || !m.current.Found || m.current.Region != "NL333" {
		t.Fatalf("unexpected lookup %+v", m.current)
	}

	m = press(m, tea.KeyLeft)
	if m.level != domain.Level2 || m.current.Region != "NL33" {
		t.Fatalf("left: level=%d current=%+v", m.level, m.current)
	}

	for i := 0; i < 5; i++ {
		m = press(m, tea.KeyLeft)
	}
	if m.level != domain.LevelCountry || m.current.Region != "NL" {
		t.Fatalf("left clamp: level=%d current=%+v", m.level, m.current)
	}

	for i := 0; i < 5; i++ {
		m = press(m, tea.KeyRight)
	}
	if m.level != domain.MaxLevel {
		t.Fatalf("right clamp: level=%d", m.level)
	}
}

func TestModel_EnterKeepsHistory(t *testing.T) {
	m := typeText(loadedModel(t), "2675BP")
	m = press(m, tea.KeyEnter)

	if len(m.history) != 1 || m.history[0].Region != "NL333" {
		t.Fatalf("unexpected history %+v", m.history)
	}
	if m.input.Value() != "" || m.current != nil {
		t.Fatalf("input not reset: %q %+v", m.input.Value(), m.current)
	}

	m = typeText(m, "1234AB")
	m = press(m, tea.KeyEnter)
	if len(m.history) != 2 || m.history[0].Found {
		t.Fatalf("miss should be newest entry: %+v", m.history)
	}
	if !strings.Contains(m.View(), "no region") {
		t.Fatal("expected miss in view")
	}
}

func TestModel_UnusualCharactersAreMisses(t *testing.T) {
	m := typeText(loadedModel(t), "12#4")
	if m.current == nil || m.current.Found {
		t.Fatalf("expected a miss, got %+v", m.current)
	}
	if m.toast != "" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestModel_OnlyEnterLogsMisses(t *testing.T) {
	var buf bytes.Buffer
	m := loadedModelWithLogger(t, slog.New(slog.NewJSONHandler(&buf, nil)))

	for _, r := range "9999Z" {
		m = typeText(m, string(r))
	}
	m = press(m, tea.KeyLeft)
	if strings.Contains(buf.String(), "lookup.miss") {
		t.Fatalf("live preview must not log misses, got %s", buf.String())
	}

	m = typeText(m, "Z")
	_ = press(m, tea.KeyEnter)
	if got := strings.Count(buf.String(), "lookup.miss"); got != 1 {
		t.Fatalf("expected exactly one logged miss, got %d: %s", got, buf.String())
	}
}

func TestModel_LoadFailure(t *testing.T) {
	m := newModel(Deps{})
	next, _ := m.Update(tableLoadedMsg{err: &domain.OpError{
		Op:   "usecase.prepare_table",
		Kind: domain.KindNotFound,
		Err:  domain.ErrNotFound,
	}})
	m = next.(model)

	if m.scr != screenFailed {
		t.Fatalf("expected failed screen, got %d", m.scr)
	}
	if !strings.Contains(m.View(), "Reference table unavailable") {
		t.Fatalf("unexpected view:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestCmdPrepareTable_NoSource(t *testing.T) {
	msg := cmdPrepareTable(Deps{})()
	loaded, ok := msg.(tableLoadedMsg)
	if !ok || loaded.err == nil {
		t.Fatalf("expected error message, got %#v", msg)
	}
}

func TestPushHistory_Bounded(t *testing.T) {
	var h []domain.Lookup
	for i := 0; i < historySize+3; i++ {
		h = pushHistory(h, domain.Lookup{PostalCode: string(rune('A' + i))})
	}
	if len(h) != historySize {
		t.Fatalf("len = %d", len(h))
	}
	if h[0].PostalCode != string(rune('A'+historySize+2)) {
		t.Fatalf("newest first expected, got %q", h[0].PostalCode)
	}
}

func TestSafeModel_DelegatesUpdate(t *testing.T) {
	s := wrapSafe(loadedModel(t), nil)
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2675BP")})

	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if sm.m.current == nil || sm.m.current.Region != "NL333" {
		t.Fatalf("unexpected lookup %+v", sm.m.current)
	}
}
