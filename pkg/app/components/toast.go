package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/readshelf/readshelf/pkg/app/styles"
)

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
	NoticeInfo
)

// Notice is a non-blocking user-facing message. Screens pass notices
// along when navigating so the destination can show them.
type Notice struct {
	Kind NoticeKind
	Text string
}

// ToastClearMsg dismisses a shown notice once its time is up.
type ToastClearMsg struct {
	Seq int
}

// Toast displays one notice at a time and auto-dismisses it. A newer
// notice supersedes the pending dismissal of the old one.
type Toast struct {
	notice *Notice
	seq    int
}

func NewToast() *Toast { return &Toast{} }

func (t *Toast) Show(n Notice) tea.Cmd {
	t.seq++
	t.notice = &n
	seq := t.seq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ToastClearMsg{Seq: seq}
	})
}

func (t *Toast) Update(msg tea.Msg) {
	if clear, ok := msg.(ToastClearMsg); ok && clear.Seq == t.seq {
		t.notice = nil
	}
}

func (t *Toast) View() string {
	if t.notice == nil {
		return ""
	}
	switch t.notice.Kind {
	case NoticeError:
		return styles.ErrorStyle.Render("✗ " + t.notice.Text)
	case NoticeSuccess:
		return styles.SuccessStyle.Render("✓ " + t.notice.Text)
	default:
		return styles.InfoStyle.Render("• " + t.notice.Text)
	}
}
