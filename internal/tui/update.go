package tui

import tea "github.com/charmbracelet/bubbletea"

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(msg.Width-len(m.prompt.Prompt)-2, 10)
		return m, nil

	case dayLoadedMsg:
		// A reply for a day we already moved away from.
		if msg.date != m.dateKey() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.log.Error("load day", msg.err)
			return m, nil
		}
		m.err = nil
		m.day = msg.day
		m.settings = msg.settings
		m.log.Log("DAY_LOADED", map[string]any{
			"date":     msg.date,
			"bookings": msg.day.Len(),
		})
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Error("copy day", msg.err)
			return m, nil
		}
		m.err = nil
		m.status = "Copied " + m.dateKey() + " to clipboard"
		return m, nil
	}

	return m, nil
}
