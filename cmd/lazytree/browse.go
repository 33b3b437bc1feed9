package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	charmlog "charm.land/log/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	lazylog "go.jacobcolvin.com/lazytree/log"
	"go.jacobcolvin.com/lazytree/scan"
	"go.jacobcolvin.com/lazytree/tree"
)

func newBrowseCommand(tracePaths *string) *cobra.Command {
	var showLog bool

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively walk a document's tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}

			root, closeFn, err := openDocument(file, *tracePaths)
			if err != nil {
				return err
			}
			defer closeFn()

			m := newBrowseModel(root)
			m.showLog = showLog

			// Best-effort initial size so the first frame is already
			// correctly sized; a later tea.WindowSizeMsg keeps it in sync.
			if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
				m.width, m.height = w, h
			}

			p := tea.NewProgram(m)

			_, err = p.Run()

			m.publisher.Close()

			return err
		},
	}

	cmd.Flags().BoolVar(&showLog, "log-pane", false, "show a live log pane alongside the tree")

	return cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// maxLogLines bounds the tail kept for the log pane; older lines are
// dropped as new ones arrive.
const maxLogLines = 8

// browseEntry is one navigable child of the currently displayed node.
type browseEntry struct {
	label string
	child tree.Handle
}

// logLineMsg carries one log entry from the browse model's log publisher to
// its bubbletea update loop.
type logLineMsg string

// listenForLogs returns a command that blocks on sub's channel and delivers
// its next entry as a [logLineMsg]. The model re-issues this command after
// every delivered line to keep listening; a closed subscription yields no
// further messages.
func listenForLogs(sub *lazylog.Subscription) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-sub.C()
		if !ok {
			return nil
		}

		return logLineMsg(strings.TrimRight(string(b), "\n"))
	}
}

// browseModel is a read-only explorer over a [tree.Handle] tree: it never
// calls any copy-on-write edit operation, only navigation and terminal
// reads. Every navigation step is logged through a [charmlog.Logger] backed
// by a [lazylog.Publisher], so a "--log-pane" run can render the tail of
// that log alongside the tree instead of it corrupting the terminal.
type browseModel struct {
	stack   []tree.Handle // stack[len-1] is the currently displayed node.
	entries []browseEntry
	cursor  int
	err     error
	width   int
	height  int

	showLog   bool
	publisher *lazylog.Publisher
	logSub    *lazylog.Subscription
	logger    *charmlog.Logger
	logLines  []string
}

func newBrowseModel(root tree.Handle) *browseModel {
	publisher := lazylog.NewPublisher()

	m := &browseModel{
		stack:     []tree.Handle{root},
		publisher: publisher,
		logSub:    publisher.Subscribe(),
		logger:    charmlog.New(publisher),
	}
	m.refresh()

	return m
}

func (m *browseModel) current() tree.Handle {
	return m.stack[len(m.stack)-1]
}

// refresh recomputes entries for the node currently on top of the stack,
// logging the outcome through m.logger.
func (m *browseModel) refresh() {
	m.entries = nil
	m.cursor = 0
	m.err = nil

	h := m.current()
	p := h.Path().WithDollar()

	kind, err := h.Type()
	if err != nil {
		m.err = err
		m.logger.Error("resolve type", "path", p, "err", err)

		return
	}

	switch kind {
	case scan.Object:
		keys, err := h.Keys()
		if err != nil {
			m.err = err
			m.logger.Error("list keys", "path", p, "err", err)

			return
		}

		for _, k := range keys {
			m.entries = append(m.entries, browseEntry{label: k, child: h.Member(k)})
		}
	case scan.Array:
		size, err := h.Size()
		if err != nil {
			m.err = err
			m.logger.Error("list size", "path", p, "err", err)

			return
		}

		for i := range size {
			m.entries = append(m.entries, browseEntry{label: "[" + strconv.Itoa(i) + "]", child: h.Element(i)})
		}
	}

	m.logger.Info("entered", "path", p, "kind", kind.String(), "children", len(m.entries))
}

func (m *browseModel) Init() tea.Cmd {
	return listenForLogs(m.logSub)
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case logLineMsg:
		m.logLines = append(m.logLines, string(msg))
		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}

		return m, listenForLogs(m.logSub)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "L":
			m.showLog = !m.showLog

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}

		case "enter", "right", "l":
			if m.cursor < len(m.entries) {
				m.stack = append(m.stack, m.entries[m.cursor].child)
				m.refresh()
			}

		case "backspace", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.refresh()
			}
		}
	}

	return m, nil
}

func (m *browseModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true

	return v
}

// render builds the frame's text content. Split out from [browseModel.View]
// so tests can assert on it without depending on [tea.View]'s internals.
func (m *browseModel) render() string {
	var b strings.Builder

	fmt.Fprintln(&b, headerStyle.Render(m.current().Path().WithDollar()))

	if m.err != nil {
		fmt.Fprintln(&b, errorStyle.Render(m.err.Error()))
		m.renderLogPane(&b)

		return b.String()
	}

	if len(m.entries) == 0 {
		decl, err := m.current().Declaration()
		if err != nil {
			decl = err.Error()
		}

		fmt.Fprintln(&b, dimStyle.Render(decl))
	}

	for i, e := range m.entries {
		line := e.label
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}

		fmt.Fprintln(&b, line)
	}

	fmt.Fprintln(&b, dimStyle.Render("↑/↓ move  enter descend  backspace up  L log pane  q quit"))
	m.renderLogPane(&b)

	return b.String()
}

// renderLogPane appends the tail of the navigation log to b when the log
// pane is toggled on.
func (m *browseModel) renderLogPane(b *strings.Builder) {
	if !m.showLog {
		return
	}

	fmt.Fprintln(b, dimStyle.Render("── log ──"))

	for _, line := range m.logLines {
		fmt.Fprintln(b, logStyle.Render(line))
	}
}
