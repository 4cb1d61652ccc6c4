package ui

import (
	"io"
	"math/rand/v2"
	"time"

	"grimoire/internal/intro"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 80

// frameInterval paces redraws and the CRT effect timers.
const frameInterval = 50 * time.Millisecond

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Options configures an IntroModel.
type Options struct {
	// Intro configures the hosted sequencer. Clock and Presenter are
	// supplied by the model.
	Intro intro.Options

	Theme   string
	Effects bool
	// Width fixes the frame width in columns. Zero follows the terminal.
	Width int
	// Sound rings the terminal bell on Bell when the sequence completes.
	Sound bool
	Bell  io.Writer
	// Seed feeds the cosmetic effects stream. Zero picks one from the clock.
	Seed uint64

	Logger *zap.Logger
	Now    func() time.Time
}

// Result summarises a finished session.
type Result struct {
	Skipped   bool
	Quit      bool
	Completed bool
	FinalBeat intro.Beat
	Pass      int
	Fail      int
	Elapsed   time.Duration
}

// session is the mutable state shared by every copy of the model.
type session struct {
	seq   *intro.Sequencer
	clock *teaClock
	tw    *Typewriter
	crt   *CRT
	log   *zap.Logger

	wall  func() time.Time
	start time.Time
	now   time.Duration

	materialize time.Duration
	portraitAt  time.Duration

	sound bool
	bell  io.Writer

	pass, fail int
	handoff    bool
	quit       bool
}

func (s *session) elapsed() time.Duration {
	return s.now
}

func (s *session) observe(e intro.Event) {
	switch e.Kind {
	case intro.EventBeat:
		s.tw.Reset()
		s.log.Info("beat", zap.Stringer("beat", e.State.Beat), zap.Duration("at", s.now))
		if e.State.Beat == intro.Complete && s.sound && s.bell != nil {
			io.WriteString(s.bell, "\a")
		}
	case intro.EventSkip:
		s.log.Info("intro skipped by user", zap.Duration("at", s.now))
	case intro.EventComplete:
		s.handoff = true
	}
}

// IntroModel is the bubbletea host of the intro sequence. Timers become
// tea.Tick commands and come back as messages, so the sequencer is only
// touched from Update.
type IntroModel struct {
	s *session

	styles   Styles
	effects  bool
	progress progress.Model
	prompt   textinput.Model
	spinner  spinner.Model

	width      int
	height     int
	fixedWidth bool
}

// NewIntroModel builds the model and its sequencer. The sequence starts in
// Init.
func NewIntroModel(opts Options) IntroModel {
	wall := opts.Now
	if wall == nil {
		wall = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(wall().UnixNano())
	}

	s := &session{
		tw:         NewTypewriter(),
		crt:        NewCRT(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		log:        log,
		wall:       wall,
		start:      wall(),
		portraitAt: -1,
		sound:      opts.Sound,
		bell:       opts.Bell,
	}
	s.clock = newTeaClock(s.elapsed)

	iopts := opts.Intro
	timing := intro.DefaultTiming()
	if iopts.Timing != nil {
		timing = *iopts.Timing
	}
	s.materialize = timing.Materialize
	iopts.Clock = s.clock
	iopts.Presenter = portraitPresenter{
		clock:    s.clock,
		duration: timing.Materialize,
		now:      s.elapsed,
		began:    &s.portraitAt,
	}
	if iopts.Logger == nil {
		iopts.Logger = log
	}
	userObserver := iopts.Observer
	iopts.Observer = func(e intro.Event) {
		s.observe(e)
		if userObserver != nil {
			userObserver(e)
		}
	}
	s.seq = intro.New(iopts)

	styles := NewStyles(ThemeByName(opts.Theme))

	bar := progress.New(
		progress.WithSolidFill(string(styles.Theme.Phosphor)),
		progress.WithoutPercentage(),
		progress.WithWidth(40),
	)

	ti := textinput.New()
	ti.Prompt = s.seq.Content().Lines.Prompt + " "
	ti.Placeholder = "cast your first spell..."
	ti.PromptStyle = styles.Bright
	ti.PlaceholderStyle = styles.Dim
	ti.Cursor.Style = styles.Cursor
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Spinner

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	return IntroModel{
		s:          s,
		styles:     styles,
		effects:    opts.Effects,
		progress:   bar,
		prompt:     ti,
		spinner:    sp,
		width:      width,
		fixedWidth: opts.Width > 0,
	}
}

// Sequencer exposes the hosted sequencer for inspection.
func (m IntroModel) Sequencer() *intro.Sequencer {
	return m.s.seq
}

// Init starts the sequence.
func (m IntroModel) Init() tea.Cmd {
	m.s.seq.Start()
	return tea.Batch(
		m.s.clock.drain(),
		frameTick(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update handles messages.
func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "s":
			if m.s.seq.State().Beat != intro.Complete {
				m.s.seq.Skip()
			}
		case "q", "ctrl+c":
			m.s.quit = true
			m.s.log.Info("intro quit", zap.Stringer("state", m.s.seq.State()))
			return m, tea.Quit
		case "enter":
			if m.s.handoff {
				return m, tea.Quit
			}
		}

	case fireMsg:
		if m.s.clock.take(msg.id) {
			m.s.seq.Fire(msg.id)
			m.tally()
		}

	case frameMsg:
		m.s.now = time.Time(msg).Sub(m.s.start)
		if m.effects {
			m.s.crt.Tick(m.s.now, m.s.seq.Ambient())
		}
		cmds = append(cmds, frameTick())

	case tea.WindowSizeMsg:
		m.height = msg.Height
		if !m.fixedWidth {
			m.width = msg.Width
		}
		m.progress.Width = max(10, min(m.width-24, 60))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.s.clock.drain())
	return m, tea.Batch(cmds...)
}

// tally keeps the last calibration counts, which outlive the beat.
func (m IntroModel) tally() {
	if v := m.s.seq.View(); v.Calibration != nil {
		m.s.pass, m.s.fail = v.Calibration.Pass, v.Calibration.Fail
	}
}

// Result reports how the session ended.
func (m IntroModel) Result() Result {
	return Result{
		Skipped:   m.s.seq.Skipped(),
		Quit:      m.s.quit,
		Completed: m.s.seq.Done(),
		FinalBeat: m.s.seq.State().Beat,
		Pass:      m.s.pass,
		Fail:      m.s.fail,
		Elapsed:   m.s.wall().Sub(m.s.start),
	}
}
