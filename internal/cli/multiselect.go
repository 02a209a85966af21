package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/GainsNetwork/GNS-ethereum/internal/domain"
)

// contractItem represents a selectable contract in the multi-select
type contractItem struct {
	deployed deployedItem
	selected bool
}

// multiSelectModel is the bubbletea model for multi-select
type multiSelectModel struct {
	items    []contractItem
	cursor   int
	selected map[int]bool
	title    string
	done     bool
	quit     bool
}

// initialModel creates the initial model for multi-select
func initialMultiSelectModel(deployed []deployedItem, title string) multiSelectModel {
	items := make([]contractItem, len(deployed))
	selected := make(map[int]bool)
	for i, d := range deployed {
		items[i] = contractItem{deployed: d, selected: false}
		selected[i] = false
	}
	return multiSelectModel{
		items:    items,
		cursor:   0,
		selected: selected,
		title:    title,
		done:     false,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "a":
			// Toggle all
			all := !m.allSelected()
			for i := range m.items {
				m.selected[i] = all
				m.items[i].selected = all
			}
		case " ":
			// Toggle selection
			m.selected[m.cursor] = !m.selected[m.cursor]
			m.items[m.cursor].selected = m.selected[m.cursor]
		case "enter":
			// Check if at least one item is selected
			hasSelection := false
			for _, selected := range m.selected {
				if selected {
					hasSelection = true
					break
				}
			}
			if hasSelection {
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := " "
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		} else {
			checkbox = color.New(color.FgWhite).Sprint("○")
		}

		name := color.New(color.Bold).Sprintf("%-24s", item.deployed.artifact.ContractName)
		address := color.New(color.FgWhite).Sprint(item.deployed.address)

		b.WriteString(fmt.Sprintf("%s %s %s %s\n", cursor, checkbox, name, address))
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// allSelected reports whether every item is selected
func (m multiSelectModel) allSelected() bool {
	for i := range m.items {
		if !m.selected[i] {
			return false
		}
	}
	return true
}

// SelectContracts shows a multi-select interface and returns selected contract indices
func SelectContracts(deployed []deployedItem, title string) ([]int, error) {
	if len(deployed) == 0 {
		return nil, fmt.Errorf("no contracts to select")
	}

	model := initialMultiSelectModel(deployed, title)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := finalModel.(multiSelectModel)
	if m.quit || !m.done {
		return nil, domain.ErrCancelled
	}

	// Collect selected indices in list order
	var selectedIndices []int
	for i := range m.items {
		if m.selected[i] {
			selectedIndices = append(selectedIndices, i)
		}
	}

	if len(selectedIndices) == 0 {
		return nil, fmt.Errorf("no contracts selected")
	}

	return selectedIndices, nil
}
