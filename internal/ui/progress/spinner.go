// Package progress shows transient progress on the terminal.
//
// Progress is drawn only when the output is an interactive terminal, so
// redirected or captured output stays line-oriented.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/rebump/internal/ui/styles"
)

// Interactive reports whether w is a terminal that can host a spinner.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// messageUpdate is sent to update the spinner message
type messageUpdate string

// Spinner wraps a Bubbletea spinner for simple non-interactive use
type Spinner struct {
	out       io.Writer
	program   *tea.Program
	msgChan   chan string
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	lastMsg   string
}

// spinnerModel is the internal Bubbletea model
type spinnerModel struct {
	spinner spinner.Model
	message string
	msgChan chan string
	quit    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForMessage())
}

func (m spinnerModel) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return tea.Quit()
		}
		return messageUpdate(msg)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quit {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case messageUpdate:
		m.message = string(msg)
		return m, m.waitForMessage()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			return m, tea.Quit
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.quit || m.message == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), styles.MutedStyle.Render(m.message))
}

// NewSpinner creates a spinner drawing to out with the given message.
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:     out,
		msgChan: make(chan string, 10),
		done:    make(chan struct{}),
		lastMsg: message,
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.InfoStyle

	model := spinnerModel{
		spinner: sp,
		message: s.lastMsg,
		msgChan: s.msgChan,
	}

	// stdin belongs to the caller; the spinner never reads keys from it.
	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(s.out), tea.WithInput(nil))
	s.isRunning = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// UpdateMessage changes the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		s.lastMsg = message
		return
	}

	// Drop the update when the channel is full; the next one replaces it anyway.
	select {
	case s.msgChan <- message:
	default:
	}
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.msgChan)
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
	}

	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(s.out, "\r\033[K")
}
