package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/oshokin/alarm-reminder/internal/clock"
	"github.com/oshokin/alarm-reminder/internal/domain/reminder"
	"github.com/oshokin/alarm-reminder/internal/service/alert"
	"github.com/oshokin/alarm-reminder/internal/service/notify"
	"github.com/oshokin/alarm-reminder/internal/service/scheduler"
)

// eventBuffer bounds queued scheduler events.
const eventBuffer = 16

type (
	// countdownMsg carries a countdown refresh.
	countdownMsg scheduler.Countdown
	// firedMsg carries the target of a fired reminder.
	firedMsg time.Time
	// noticeMsg carries an inline notification that stays until dismissed.
	noticeMsg string
)

// Config wires the presenter.
type Config struct {
	// Clock and Timers drive the scheduler.
	Clock  clock.Clock
	Timers clock.TimerService
	// Layout is tried first when parsing the input field.
	Layout string
	// Notify configures desktop notifications. Fallback is replaced by the inline notice.
	Notify notify.Options
	// Player plays the tone, nil when muted.
	Player alert.TonePlayer
}

// Model is the Bubble Tea model of the reminder form.
type Model struct {
	ctx   context.Context //nolint:containedctx // Bubble Tea models outlive any single call.
	sched *scheduler.Scheduler
	// events carries fired and notice messages, never dropped.
	events chan tea.Msg
	// countdowns holds only the latest countdown refresh.
	countdowns chan tea.Msg
	layout     string
	input      textinput.Model
	styles     styles

	// target is the instant armed from this form, zero when none.
	target time.Time
	// period identifies the armed period whose refreshes are shown.
	period       uuid.UUID
	status       string
	statusErr    bool
	countdown    string
	clearEnabled bool
	// notice is the inline notification; any key dismisses it.
	notice   string
	quitting bool
}

// NewModel builds the form and its scheduler.
func NewModel(ctx context.Context, cfg Config) *Model {
	m := &Model{
		ctx:        ctx,
		events:     make(chan tea.Msg, eventBuffer),
		countdowns: make(chan tea.Msg, 1),
		layout:     cfg.Layout,
		styles:     defaultStyles(),
	}

	if m.layout == "" {
		m.layout = reminder.DefaultInputLayout
	}

	notifyOptions := cfg.Notify
	notifyOptions.Fallback = func(message string) {
		m.send(noticeMsg(message))
	}

	notifier := notify.New(notifyOptions)
	alerter := alert.New(notifier, cfg.Player)

	m.sched = scheduler.New(
		cfg.Clock,
		cfg.Timers,
		scheduler.WithPermission(notifier),
		scheduler.WithOnCountdown(func(c scheduler.Countdown) {
			// Runs under the scheduler lock: never block.
			m.replaceCountdown(countdownMsg(c))
		}),
		scheduler.WithOnFire(func(target time.Time) {
			alerter.Fire(ctx, target)
			m.send(firedMsg(target))
		}),
	)

	ti := textinput.New()
	ti.Placeholder = m.layout
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	m.input = ti

	return m
}

// Init starts the cursor blink and the event listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

// Update handles keys and scheduler events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case countdownMsg:
		if m.clearEnabled && msg.PeriodID == m.period {
			m.countdown = "Time left: " + reminder.FormatDuration(msg.Remaining)
		}

		return m, m.listen()
	case firedMsg:
		target := time.Time(msg)
		if target.Equal(m.target) {
			m.status = "⏰ Time reached: " + reminder.FormatTarget(target)
			m.statusErr = false
			m.countdown = ""
			m.clearEnabled = false
			m.target = time.Time{}
			m.period = uuid.Nil
		}

		return m, m.listen()
	case noticeMsg:
		m.notice = string(msg)

		return m, m.listen()
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-4, 16)

		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}

		return m.quit()
	}

	// The inline notice blocks the form until dismissed.
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		m.set()
		return m, nil
	case tea.KeyCtrlX:
		m.clear()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// set arms the reminder from the input field.
func (m *Model) set() {
	target, err := m.sched.ArmRaw(m.ctx, m.input.Value(), m.layout)
	if err != nil {
		m.status = reminder.RejectionMessage(err)
		m.statusErr = true

		return
	}

	m.target = target
	m.period, _ = m.sched.Period()
	m.status = "Reminder set for " + reminder.FormatTarget(target)
	m.statusErr = false
	m.clearEnabled = true
}

// clear cancels the pending reminder.
func (m *Model) clear() {
	if !m.clearEnabled {
		return
	}

	m.sched.Cancel()

	m.target = time.Time{}
	m.period = uuid.Nil
	m.status = "Reminder cleared."
	m.statusErr = false
	m.countdown = ""
	m.clearEnabled = false
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.sched.Cancel()
	m.quitting = true

	return m, tea.Quit
}

// View renders the form.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Alarm reminder"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("Remind me at:"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	clearHelp := "ctrl+x clear"
	if m.clearEnabled {
		clearHelp = m.styles.Help.Render(clearHelp)
	} else {
		clearHelp = m.styles.Disabled.Render(clearHelp)
	}

	b.WriteString(m.styles.Help.Render("enter set • "))
	b.WriteString(clearHelp)
	b.WriteString(m.styles.Help.Render(" • esc quit"))
	b.WriteString("\n\n")

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}

		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	if m.countdown != "" {
		b.WriteString(m.styles.Countdown.Render(m.countdown))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice + "\n\n" + m.styles.Help.Render("press any key to dismiss")))
		b.WriteString("\n")
	}

	return b.String()
}

// listen waits for the next scheduler event.
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case msg := <-m.countdowns:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

// replaceCountdown keeps the newest refresh, dropping an unread older one.
func (m *Model) replaceCountdown(msg tea.Msg) {
	select {
	case <-m.countdowns:
	default:
	}

	select {
	case m.countdowns <- msg:
	default:
	}
}

// send queues an event unless the presenter is gone.
func (m *Model) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	}
}
