package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"goscatter/internal/scatter"
)

// panel is the container a chart is mounted in.
type panel struct {
	width int
	ratio float64
	props map[string]string
}

func (p *panel) Width() int                  { return p.width }
func (p *panel) PixelRatio() float64         { return p.ratio }
func (p *panel) Property(name string) string { return p.props[name] }

// Relay forwards messages to a program once one is attached. Messages sent
// before that are dropped.
type Relay struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// NewRelay returns a relay calling send.
func NewRelay(send func(tea.Msg)) *Relay { return &Relay{send: send} }

// Attach routes messages to p.
func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = p.Send
}

func (r *Relay) Send(msg tea.Msg) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// selectionNotes collects selection changes reported by the charts while a
// message is being handled.
type selectionNotes struct {
	pending []string
}

func (n *selectionNotes) record(chart string, sel *scatter.Selection) {
	n.pending = append(n.pending, chart+": "+formatSelection(sel))
}

func (n *selectionNotes) drain() []string {
	out := n.pending
	n.pending = nil
	return out
}

func (n *selectionNotes) reset() {
	n.pending = nil
}

func formatSelection(sel *scatter.Selection) string {
	if sel == nil {
		return "selection cleared"
	}
	return fmt.Sprintf("selection [%.2f, %.2f]", sel.Min, sel.Max)
}
