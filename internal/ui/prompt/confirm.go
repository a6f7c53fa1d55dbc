package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/rebump/internal/ui/styles"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type keyMap struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N", "enter"), key.WithHelp("n/enter", "no")),
	Cancel: key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("esc", "cancel")),
}

type confirmModel struct {
	prompt    string
	confirmed bool
	done      bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		m.confirmed = true
	case key.Matches(keyMsg, keys.No):
		m.confirmed = false
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s ", m.prompt, styles.MutedStyle.Render("[y/N]"))
}

// Options controls where a prompt reads and writes.
type Options struct {
	In  io.Reader // defaults to os.Stdin
	Out io.Writer // defaults to os.Stderr
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stderr
	}
	return o
}

// Confirm asks a yes/no question. The default answer is "no".
//
// When In is a terminal the question is a single-key bubbletea prompt;
// otherwise one line is read and only "y" or "yes" (any case) confirms.
func Confirm(question string, opts Options) (ConfirmResult, error) {
	opts = opts.withDefaults()
	if isTerminal(opts.In) {
		return confirmTUI(question, opts)
	}
	return confirmLine(question, opts)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func confirmTUI(question string, opts Options) (ConfirmResult, error) {
	p := tea.NewProgram(confirmModel{prompt: question},
		tea.WithInput(opts.In),
		tea.WithOutput(opts.Out),
	)
	finalModel, err := p.Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	m := finalModel.(confirmModel)
	if m.done && !m.cancelled {
		answer := "no"
		if m.confirmed {
			answer = "yes"
		}
		fmt.Fprintf(opts.Out, "%s %s\n", question, answer)
	}
	return ConfirmResult{Confirmed: m.confirmed, Cancelled: m.cancelled}, nil
}

func confirmLine(question string, opts Options) (ConfirmResult, error) {
	fmt.Fprintf(opts.Out, "%s (yes/no): ", question)

	line, err := bufio.NewReader(opts.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return ConfirmResult{}, fmt.Errorf("failed to read answer: %w", err)
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(opts.Out)
		return ConfirmResult{Cancelled: true}, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return ConfirmResult{Confirmed: true}, nil
	}
	return ConfirmResult{}, nil
}
