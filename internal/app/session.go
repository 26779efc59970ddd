package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/layerkeys/internal/dispatcher/handler"
	"github.com/dshills/layerkeys/internal/document"
	"github.com/dshills/layerkeys/internal/input"
	"github.com/dshills/layerkeys/internal/input/key"
)

// DefaultBakeDelay is how long the terminal session pretends a bake runs.
const DefaultBakeDelay = 750 * time.Millisecond

const launcherRows = 10

// bakeCompleter is implemented by hosts that finish bakes on request.
type bakeCompleter interface {
	CompleteBakes() int
}

// interrupt payloads posted to the event loop
type (
	redrawEvent   struct{}
	bakeDoneEvent struct{}
	stopEvent     struct{}
)

// SessionOptions configures a terminal session.
type SessionOptions struct {
	// BakeDelay is the simulated bake duration. Zero means DefaultBakeDelay.
	BakeDelay time.Duration
}

// Session drives an App from a tcell screen.
type Session struct {
	app    *App
	screen tcell.Screen
	opts   SessionOptions
	logger *zap.Logger

	status string
	failed bool

	// launcher state; the launcher lists actions matching query
	launching bool
	query     []rune
	cursor    int

	onReady func()
}

// NewSession creates a session. The screen must not be initialized yet.
func NewSession(app *App, screen tcell.Screen, opts SessionOptions) *Session {
	if opts.BakeDelay <= 0 {
		opts.BakeDelay = DefaultBakeDelay
	}
	return &Session{
		app:    app,
		screen: screen,
		opts:   opts,
		logger: app.Logger().Named("session"),
		status: "Ready. / opens the launcher, Esc or Ctrl+Q quits.",
	}
}

// Redraw asks the event loop to repaint. Safe from any goroutine.
func (s *Session) Redraw() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(redrawEvent{}))
}

// Run initializes the screen and processes events until the user quits or
// ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if err := s.screen.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer s.screen.Fini()

	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(stopEvent{}))
	})
	defer stop()

	s.draw()
	if s.onReady != nil {
		s.onReady()
	}
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			if err := s.handleKey(e); errors.Is(err, ErrQuit) {
				return nil
			}
		case *tcell.EventInterrupt:
			switch e.Data().(type) {
			case stopEvent:
				return ctx.Err()
			case bakeDoneEvent:
				s.completeBakes()
			}
		}
		s.draw()
	}
}

func (s *Session) handleKey(ev *tcell.EventKey) error {
	chord, ok := convertKey(ev)
	if !ok {
		return nil
	}
	if s.launching {
		s.handleLauncherKey(chord)
		return nil
	}
	switch {
	case chord.Key == key.KeyEscape && chord.Modifiers == key.ModNone:
		return ErrQuit
	case chord.Key == key.KeyRune && chord.Rune == 'q' && chord.Modifiers == key.ModCtrl:
		return ErrQuit
	case chord.Key == key.KeyRune && chord.Rune == '/' && chord.Modifiers == key.ModNone:
		s.launching = true
		s.query = s.query[:0]
		s.cursor = 0
		return nil
	}

	result := s.app.HandleChord(chord)
	s.report(chord.String(), result)
	return nil
}

func (s *Session) handleLauncherKey(chord key.Chord) {
	matches := s.app.Search(string(s.query), launcherRows)
	switch chord.Key {
	case key.KeyEscape:
		s.launching = false
	case key.KeyEnter:
		s.launching = false
		if s.cursor < len(matches) {
			action := matches[s.cursor].Entry.Action
			s.report(action, s.app.DispatchName(action, input.SourceMenu))
		}
	case key.KeyBackspace:
		if len(s.query) > 0 {
			s.query = s.query[:len(s.query)-1]
			s.cursor = 0
		}
	case key.KeyUp:
		s.cursor = max(s.cursor-1, 0)
	case key.KeyDown:
		s.cursor = min(s.cursor+1, max(len(matches)-1, 0))
	case key.KeySpace:
		s.query = append(s.query, ' ')
		s.cursor = 0
	case key.KeyRune:
		if chord.Modifiers&^key.ModShift == 0 {
			s.query = append(s.query, chord.Rune)
			s.cursor = 0
		}
	}
}

func (s *Session) report(what string, result handler.Result) {
	s.failed = result.IsError()
	switch {
	case result.IsError():
		s.status = fmt.Sprintf("%s: %v", what, result.Error)
	case result.Message != "":
		s.status = fmt.Sprintf("%s: %s", what, result.Message)
	default:
		s.status = fmt.Sprintf("%s: %s", what, result.Status)
	}
	if result.Status == handler.StatusAsync {
		time.AfterFunc(s.opts.BakeDelay, func() {
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(bakeDoneEvent{}))
		})
	}
}

func (s *Session) completeBakes() {
	bc, ok := s.app.Host().(bakeCompleter)
	if !ok {
		return
	}
	if n := bc.CompleteBakes(); n > 0 {
		s.logger.Info("bake finished", zap.Int("requests", n))
		s.status = "Bake finished."
		s.failed = false
	}
}

var (
	styleDefault  = tcell.StyleDefault
	styleHeader   = tcell.StyleDefault.Bold(true).Reverse(true)
	styleSelected = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	styleHidden   = tcell.StyleDefault.Dim(true)
	styleCategory = tcell.StyleDefault.Bold(true).Underline(true)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (s *Session) draw() {
	s.screen.Clear()
	width, height := s.screen.Size()
	host := s.app.Host()

	header := " layerkeys"
	if info, err := host.TextureSet(); err == nil {
		header += fmt.Sprintf(" | %s %s", info.Name, info.Resolution)
	} else {
		header += " | no document"
	}
	if m, ok := host.(interface{ UIMode() document.UIMode }); ok {
		header += " | mode: " + m.UIMode().String()
	}
	s.fill(0, width, styleHeader)
	s.put(0, 0, width, header, styleHeader)

	menuX := width / 2
	s.drawStack(1, 2, menuX-2, height-3)
	if s.launching {
		s.drawLauncher(menuX, 2, width-menuX-1, height-3)
	} else {
		s.drawMenu(menuX, 2, width-menuX-1, height-3)
	}

	style := styleDefault
	if s.failed {
		style = styleError
	}
	s.put(0, height-1, width, s.status, style)
	s.screen.Show()
}

func (s *Session) drawStack(x, y, w, h int) {
	s.put(x, y, w, "Layers", styleCategory)
	host := s.app.Host()
	layers, err := host.Layers()
	if err != nil {
		s.put(x, y+1, w, err.Error(), styleError)
		return
	}
	if len(layers) == 0 {
		s.put(x, y+1, w, "(empty)", styleHidden)
		return
	}
	selected, _, _ := host.Selection()
	for i, l := range layers {
		if i+1 >= h {
			break
		}
		style := styleDefault
		marker := "  "
		if l.ID == selected {
			style = styleSelected
			marker = "> "
		} else if !l.Visible {
			style = styleHidden
		}
		s.put(x, y+1+i, w, marker+layerLine(l), style)
	}
}

func layerLine(l document.Layer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %s", l.Kind, l.Name)
	if !l.Channels.IsEmpty() {
		fmt.Fprintf(&b, " %s", l.Channels)
	}
	if l.HasMask() {
		fmt.Fprintf(&b, " mask:%s", l.MaskState())
	}
	if !l.Visible {
		b.WriteString(" (hidden)")
	}
	return b.String()
}

func (s *Session) drawMenu(x, y, w, h int) {
	row := y
	for _, cat := range s.app.Menu() {
		if row-y >= h {
			return
		}
		s.put(x, row, w, cat.Name, styleCategory)
		row++
		for _, e := range cat.Entries {
			if row-y >= h {
				return
			}
			s.put(x+2, row, w-2, e.Label, styleDefault)
			row++
		}
	}
}

func (s *Session) drawLauncher(x, y, w, h int) {
	s.put(x, y, w, "Launch: "+string(s.query)+"_", styleCategory)
	matches := s.app.Search(string(s.query), min(launcherRows, h-1))
	if len(matches) == 0 {
		s.put(x+2, y+1, w-2, "no matching action", styleHidden)
		return
	}
	for i, m := range matches {
		style := styleDefault
		if i == s.cursor {
			style = styleSelected
		}
		s.put(x+2, y+1+i, w-2, m.Entry.Label, style)
	}
}

func (s *Session) put(x, y, w int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= w {
			return
		}
		s.screen.SetContent(x+col, y, r, nil, style)
		col++
	}
}

func (s *Session) fill(y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}

// convertKey converts a tcell key event into a chord. Legacy terminals
// deliver Ctrl+letter as a control code, and Ctrl+M, Ctrl+I and Ctrl+H
// share codes with Enter, Tab and Backspace; those are read as letters only
// when the terminal reports the Ctrl modifier.
func convertKey(ev *tcell.EventKey) (key.Chord, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch k {
	case tcell.KeyRune:
		return key.NewRune(ev.Rune(), mods), true
	case tcell.KeyBacktab:
		return key.NewSpecial(key.KeyTab, mods.With(key.ModShift)), true
	case tcell.KeyCtrlSpace:
		return key.NewSpecial(key.KeySpace, mods.With(key.ModCtrl)), true
	case tcell.KeyEnter, tcell.KeyTab, tcell.KeyBackspace:
		if mods.Has(key.ModCtrl) {
			return ctrlLetter(k, mods), true
		}
		return key.NewSpecial(specialKeys[k], mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return ctrlLetter(k, mods), true
	}

	special, ok := specialKeys[k]
	if !ok {
		return key.Chord{}, false
	}
	return key.NewSpecial(special, mods), true
}

func ctrlLetter(k tcell.Key, mods key.Modifier) key.Chord {
	r := 'a' + rune(k-tcell.KeyCtrlA)
	return key.NewRune(r, mods.With(key.ModCtrl))
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
