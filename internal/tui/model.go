// Package tui hosts two scatter charts over the same records in a
// bubbletea program: the full dataset and a reduced sample of it.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"goscatter/internal/config"
	"goscatter/internal/dataset"
	"goscatter/internal/resize"
	"goscatter/internal/scatter"
)

// Chart names.
const (
	ChartOriginal = "original"
	ChartReduced  = "reduced"
)

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	cfg    config.Config
	logger *log.Logger
	hub    *resize.Hub
	relay  *Relay

	keys        keyMap
	help        help.Model
	showSidebar bool
	helpVisible bool

	status string
	err    error

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	records []dataset.Record
	charts  []*scatter.Chart
	panels  []*panel
	focus   int
	notes   *selectionNotes

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverChart int
	hoverCol   int
	hoverRow   int
	hoverPrice float64
	hoverScore float64

	// selected records table
	showTable bool
	tbl       table.Model
}

// Options wire a model to its program.
type Options struct {
	Config config.Config
	Logger *log.Logger
	// Relay delivers debounced chart work; Run connects it to the program.
	Relay *Relay
	Hub   *resize.Hub
}

func New(opts Options) Model {
	if opts.Config.Chart.Height == 0 {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Relay == nil {
		opts.Relay = &Relay{}
	}
	if opts.Hub == nil {
		opts.Hub = resize.NewHub()
	}
	m := Model{
		cfg:         opts.Config,
		logger:      opts.Logger,
		hub:         opts.Hub,
		relay:       opts.Relay,
		keys:        keys,
		help:        help.New(),
		helpVisible: true,
		status:      "goscatter ready",
		notes:       &selectionNotes{},
	}
	m.cwd = opts.Config.Data.Dir
	if m.cwd == "" || m.cwd == "." {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = `Paste a JSON array of {"price", "scores", "sold"} records. Enter to plot; Esc to cancel.`
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// selected records table
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's records at launch.
func NewWithPath(path string, opts Options) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

// NewWithRecords starts with records already loaded.
func NewWithRecords(records []dataset.Record, opts Options) Model {
	m := New(opts)
	m.setRecords(records, "records")
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Charts returns the live charts, original first.
func (m Model) Charts() []*scatter.Chart { return m.charts }

// Status returns the status line.
func (m Model) Status() string { return m.status }

// Err returns the load error shown instead of the charts, if any.
func (m Model) Err() error { return m.err }
