package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"goscatter/internal/dataset"
	"goscatter/internal/errors"
	"goscatter/internal/scatter"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".json" || ext == ".csv" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no .json or .csv files in " + m.cwd
	}
}

// loadPath replaces the charts with ones over the records in p.
func (m *Model) loadPath(p string) {
	m.selPath = p
	records, issues, err := dataset.Load(p, dataset.DecodeOptions{Strict: m.cfg.Data.Strict})
	if err != nil {
		m.fail(err)
		return
	}
	m.logIssues(issues)
	m.setRecords(records, filepath.Base(p))
	if len(issues) > 0 {
		m.status += fmt.Sprintf("  skipped=%d", len(issues))
	}
}

// pasteRecords plots records decoded from pasted JSON.
func (m *Model) pasteRecords(text string) {
	records, issues, err := dataset.Decode(strings.NewReader(text), dataset.DecodeOptions{Strict: m.cfg.Data.Strict})
	if err != nil {
		m.fail(err)
		return
	}
	m.selPath = ""
	m.logIssues(issues)
	m.setRecords(records, "pasted JSON")
	if len(issues) > 0 {
		m.status += fmt.Sprintf("  skipped=%d", len(issues))
	}
}

func (m *Model) logIssues(issues []dataset.Issue) {
	for _, is := range issues {
		m.logger.Warn("skipped malformed record", "index", is.Index, "reason", is.Reason)
	}
}

// setRecords destroys the current charts and builds the original and
// reduced charts over records.
func (m *Model) setRecords(records []dataset.Record, source string) {
	m.destroyCharts()
	m.err = nil
	m.records = records
	m.inspectPopup = ""

	sets := []struct {
		name    string
		records []dataset.Record
	}{
		{ChartOriginal, records},
		{ChartReduced, dataset.EveryNth(records, m.cfg.Data.ReduceEvery)},
	}
	width := m.layout().mainW
	for _, s := range sets {
		p := &panel{width: width, ratio: 2, props: m.cfg.Properties()}
		c, err := scatter.New(p, s.records, m.selectionHandler(s.name),
			scatter.WithConfig(m.cfg.Scatter()),
			scatter.WithHub(m.hub),
			scatter.WithSend(m.relay.Send),
			scatter.WithLogger(m.logger),
			scatter.WithName(s.name),
		)
		if err != nil {
			m.fail(err)
			return
		}
		m.charts = append(m.charts, c)
		m.panels = append(m.panels, p)
	}
	m.focus = 0

	sold := len(m.charts[0].Processed().Points)
	m.status = fmt.Sprintf("loaded: %s  records=%d sold=%d", source, len(records), sold)
	m.logger.Info("loaded records", "source", source, "records", len(records), "sold", sold)
	if m.showTable {
		m.refreshTable()
	}
}

// selectionHandler is the shared selection callback, labelled per chart.
func (m *Model) selectionHandler(name string) func(*scatter.Selection) {
	notes, logger := m.notes, m.logger
	return func(sel *scatter.Selection) {
		if sel == nil {
			logger.Info("selection cleared", "chart", name)
		} else {
			logger.Info("selection changed", "chart", name, "min", sel.Min, "max", sel.Max)
		}
		notes.record(name, sel)
	}
}

// fail replaces the charts with a visible error.
func (m *Model) fail(err error) {
	m.destroyCharts()
	m.records = nil
	m.err = err
	m.status = "load error: " + errors.UserMessage(err)
	m.logger.Error("load failed", "err", err)
}

func (m *Model) destroyCharts() {
	for _, c := range m.charts {
		c.Destroy()
	}
	m.charts, m.panels = nil, nil
	m.notes.reset()
	m.hovering = false
}
