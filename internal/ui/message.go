package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgBookChanged MsgKind = iota
	MsgNoticeExpired
)

const noticeTTL = 4 * time.Second

// bookChange is the payload of [MsgBookChanged].
type bookChange struct {
	action string
	book   models.Book
	err    error
}

// bookChangedMsg is the constructor for [MsgBookChanged]
func bookChangedMsg(action string, book models.Book, err error) Msg {
	return Msg{kind: MsgBookChanged, data: bookChange{action: action, book: book, err: err}}
}

// noticeExpiredMsg is the constructor for [MsgNoticeExpired]; seq identifies the notice it clears.
func noticeExpiredMsg(seq int) Msg {
	return Msg{kind: MsgNoticeExpired, data: seq}
}

// expireNotice schedules [MsgNoticeExpired] for the notice with seq.
func expireNotice(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg(seq) })
}
