package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const sshIdleTimeout = 30 * time.Minute

// NewSSHServer serves the TUI to every interactive SSH session. The host key is created
// at hostKeyPath when missing.
func NewSSHServer(addr, hostKeyPath string, svc Services) (*ssh.Server, error) {
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(sshIdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(svc)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return srv, nil
}

func sessionHandler(svc Services) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		session := svc
		session.Username = s.User()
		m := NewAppModel(session)
		if pty, _, ok := s.Pty(); ok {
			m.SetSize(pty.Window.Width, pty.Window.Height)
		}
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
