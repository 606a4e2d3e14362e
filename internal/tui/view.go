package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/larpcal/internal/tui/view"
	"github.com/javiermolinar/larpcal/internal/venue"
)

const headerH = 2

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footerH := m.footerHeight()
	gridH := max(m.height-headerH-footerH, 0)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderGrid(gridH),
		m.renderFooter(footerH),
	)
}

func (m Model) renderHeader() string {
	state := view.HeaderViewState{
		Venue: m.config.Venue.Name,
		Date:  m.date,
		Today: m.date.Equal(m.today()),
	}
	kind, _ := m.settings.DayKind(m.dateKey())
	switch kind {
	case venue.DayHoliday:
		state.Kind = view.KindHoliday
	case venue.DaySaturday, venue.DaySunday:
		state.Kind = view.KindWeekend
	}

	title, tag := view.HeaderParts(state)
	line := m.styles.TitleStyle.Render(title)
	if tag != "" {
		style := m.styles.WeekendStyle
		switch {
		case state.Kind == view.KindHoliday:
			style = m.styles.HolidayStyle
		case state.Today:
			style = m.styles.TodayStyle
		}
		line += " " + style.Render(tag)
	}
	return view.PlaceBox(m.width, headerH, lipgloss.Top, line, m.styles.colorBg)
}

func (m Model) renderGrid(gridH int) string {
	if m.loading && m.day == nil {
		return view.PlaceBox(m.width, gridH, lipgloss.Top, m.styles.StatusStyle.Render("Loading "+m.dateKey()+"..."), m.styles.colorBg)
	}

	rooms := gridRooms(m.day, m.settings)
	if len(rooms) == 0 {
		msg := "No rooms yet. Add one with: larpcal room add <id> <name>"
		return view.PlaceBox(m.width, gridH, lipgloss.Top, m.styles.StatusStyle.Render(msg), m.styles.colorBg)
	}

	names := make([]string, len(rooms))
	headerStyles := []lipgloss.Style{m.styles.HeaderStyle}
	colW := view.ColumnWidth(m.width, slotColWidth, len(rooms))
	for i, id := range rooms {
		names[i] = view.FitLines(m.settings.RoomName(id), colW)
		headerStyles = append(headerStyles, m.styles.HeaderStyle)
	}

	return view.RenderTable(view.TableViewState{
		InnerW:       m.width,
		GridH:        gridH,
		Headers:      view.SlotHeaders(names),
		HeaderStyles: headerStyles,
		Content:      m.tableContent(rooms, colW),
		BorderStyle:  m.styles.BorderStyle,
		VAlign:       lipgloss.Top,
		Bg:           m.styles.colorBg,
	})
}

func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return 6
	}
	return 3
}

func (m Model) renderFooter(footerH int) string {
	state := view.FooterViewState{
		InnerW:   m.width,
		FooterH:  footerH,
		HelpLine: m.help.View(m.keys),
		VAlign:   lipgloss.Bottom,
		Bg:       m.styles.colorBg,
	}
	if m.prompting {
		state.PromptLine = m.prompt.View()
	}
	switch {
	case m.err != nil:
		state.StatusLine = m.styles.ErrorStyle.Render("error: " + m.err.Error())
	case m.status != "":
		state.StatusLine = m.styles.StatusStyle.Render(m.status)
	default:
		state.StatusLine = m.styles.StatusStyle.Render(m.summaryLine())
	}
	return view.RenderFooter(state)
}

// summaryLine counts the day's bookings and those short of staff.
func (m Model) summaryLine() string {
	if m.day == nil {
		return ""
	}
	pending := 0
	for _, b := range m.day.Bookings() {
		if b.HasPendingStaff(m.detector()) {
			pending++
		}
	}
	var sb strings.Builder
	switch m.day.Len() {
	case 0:
		sb.WriteString("No bookings")
	case 1:
		sb.WriteString("1 booking")
	default:
		sb.WriteString(strconv.Itoa(m.day.Len()) + " bookings")
	}
	if pending > 0 {
		sb.WriteString(", " + strconv.Itoa(pending) + " need staff")
	}
	return sb.String()
}
