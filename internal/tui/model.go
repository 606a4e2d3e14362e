package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/larpcal/internal/booking"
	"github.com/javiermolinar/larpcal/internal/config"
	"github.com/javiermolinar/larpcal/internal/dateutil"
	"github.com/javiermolinar/larpcal/internal/debuglog"
	"github.com/javiermolinar/larpcal/internal/scheduler"
	"github.com/javiermolinar/larpcal/internal/venue"
)

// Options configures the day view.
type Options struct {
	Desk   *scheduler.Desk
	Store  venue.Store // reference lists; nil shows room IDs only
	Config *config.Config
	Logger *debuglog.Logger
	Now    func() time.Time
}

// Model is the bubbletea model of the day view.
type Model struct {
	desk   *scheduler.Desk
	store  venue.Store
	config *config.Config
	log    *debuglog.Logger
	now    func() time.Time

	styles *Styles
	keys   keyMap
	help   help.Model
	prompt textinput.Model

	date     time.Time
	day      *booking.Day
	settings *venue.Settings
	loading  bool

	prompting bool
	status    string
	err       error

	width  int
	height int
}

// New creates the day view model, starting on today.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	styles := stylesFor(cfg.UI.Theme)

	prompt := textinput.New()
	prompt.Prompt = "Go to: "
	prompt.Placeholder = "YYYY-MM-DD, tomorrow, saturday, next-friday"
	prompt.PromptStyle = styles.PromptStyle
	prompt.CharLimit = 32

	h := help.New()
	h.Styles.ShortKey = styles.PromptStyle
	h.Styles.FullKey = styles.PromptStyle
	h.Styles.ShortDesc = styles.StatusStyle
	h.Styles.FullDesc = styles.StatusStyle

	return Model{
		desk:     opts.Desk,
		store:    opts.Store,
		config:   cfg,
		log:      opts.Logger,
		now:      now,
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     h,
		prompt:   prompt,
		date:     dateutil.TruncateToDay(now()),
		settings: &venue.Settings{},
		loading:  true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Run starts the day view and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	m.log.Log("TUI_START", map[string]any{"date": m.dateKey()})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.log.Log("TUI_END", nil)
	return err
}

func (m Model) today() time.Time {
	return dateutil.TruncateToDay(m.now())
}

func (m Model) dateKey() string {
	return dateutil.FormatDate(m.date)
}

func (m Model) detector() *booking.Detector {
	if m.desk == nil {
		return nil
	}
	return m.desk.Detector()
}

// goTo switches to date and starts loading it.
func (m Model) goTo(date time.Time) (tea.Model, tea.Cmd) {
	m.date = localDay(date, m.now().Location())
	m.day = nil
	m.loading = true
	m.err = nil
	m.status = ""
	return m, m.load()
}

func (m Model) load() tea.Cmd {
	return loadDay(m.desk, m.store, m.dateKey())
}

// shiftMonth moves date by n months, clamping the day to the target
// month's length so 31 Jan goes to 28 or 29 Feb.
func shiftMonth(date time.Time, n int) time.Time {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(date.Day(), last)-1)
}

// localDay returns midnight of date's calendar day in loc.
func localDay(date time.Time, loc *time.Location) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, loc)
}

func parseGoTo(input string, now time.Time) (time.Time, error) {
	return dateutil.ParseRelativeDate(input, now)
}

func (m Model) logKeyPress(msg tea.KeyMsg) {
	m.log.Log("KEY", map[string]any{
		"key":       msg.String(),
		"date":      m.dateKey(),
		"prompting": m.prompting,
	})
}
