package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tldrviz/pkg/model"
)

func pickerEntries() []model.EntryPointClassification {
	action := "runs 'app build'"
	return []model.EntryPointClassification{
		{File: "src/cli.ts", Function: "build", IsUserFacing: true, Type: model.EntryCLICommand, Description: "Builds", UserAction: &action, Confidence: 0.9},
		{File: "src/util.ts", Function: "init", Type: model.EntryInternal, Confidence: 0.5},
		{File: "src/api.ts", Function: "serve", IsUserFacing: true, Type: model.EntryAPIEndpoint, Confidence: 0.8},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m EntryListModel, keys ...string) EntryListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(EntryListModel)
	}
	return m
}

func TestEntryListNavigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantCursor int
		wantPick   string
	}{
		{"enter picks first", []string{"enter"}, 0, "build"},
		{"down then enter", []string{"down", "enter"}, 1, "init"},
		{"vim keys", []string{"j", "j", "k"}, 1, ""},
		{"clamped at bottom", []string{"down", "down", "down", "down"}, 2, ""},
		{"clamped at top", []string{"up"}, 0, ""},
		{"quit picks nothing", []string{"down", "q"}, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewEntryListModel(pickerEntries()), tt.keys...)
			if m.Cursor != tt.wantCursor {
				t.Errorf("Cursor = %d, want %d", m.Cursor, tt.wantCursor)
			}
			got := ""
			if m.Selected != nil {
				got = m.Selected.Function
			}
			if got != tt.wantPick {
				t.Errorf("Selected = %q, want %q", got, tt.wantPick)
			}
		})
	}
}

func TestEntryListScrolls(t *testing.T) {
	m := NewEntryListModel(pickerEntries())
	m.Height = 2
	m = press(m, "down", "down")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m = press(m, "up", "up")
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset)
	}
}

func TestEntryListView(t *testing.T) {
	view := NewEntryListModel(pickerEntries()).View()
	for _, want := range []string{"Select Entry Point", "build", "cli-command", "runs 'app build'", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	empty := NewEntryListModel(nil)
	if next, _ := empty.Update(key("enter")); next.(EntryListModel).Selected != nil {
		t.Error("enter on an empty list should select nothing")
	}
	if !strings.Contains(empty.View(), "[0/0]") {
		t.Errorf("empty view = %q", empty.View())
	}
}
