package ui

import (
	"fmt"
	"strings"

	"grimoire/internal/content"
	"grimoire/internal/intro"

	"github.com/charmbracelet/lipgloss"
)

// View renders the CRT screen.
func (m IntroModel) View() string {
	v := m.s.seq.View()
	inner := max(m.width-8, 20)

	var lines []string
	if !v.Ambient.Powered && v.State.Beat != intro.Complete {
		lines = []string{"", "", WarmupLine(inner, m.styles)}
	} else {
		lines = strings.Split(m.renderBeat(v, inner), "\n")
		if m.effects {
			lines = m.s.crt.Apply(lines, inner, m.s.now, v.Ambient, m.s.seq.Content().Glyphs, m.styles)
		}
	}

	screen := m.styles.Screen.Width(inner + 4).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, screen, m.footer(v))
}

func (m IntroModel) footer(v intro.View) string {
	switch {
	case m.s.handoff:
		return m.styles.Footer.Render("[ENTER] open the grimoire   [Q] quit")
	case v.State.Beat == intro.Complete:
		return m.styles.Footer.Render("[Q] quit")
	default:
		return m.styles.Footer.Render("[ESC] skip   [Q] quit")
	}
}

func (m IntroModel) renderBeat(v intro.View, width int) string {
	switch {
	case v.Boot != nil:
		return m.renderBoot(v.Boot, width)
	case v.Dialogue != nil:
		return m.renderDialogue(v.Dialogue)
	case v.Profile != nil:
		return m.renderProfile(v.Profile)
	case v.Load != nil:
		return m.renderLoad(v.Load)
	case v.Calibration != nil:
		return m.renderCalibration(v.Calibration)
	case v.Final != nil:
		return m.renderFinal(v.Final)
	case v.Complete != nil:
		return m.renderComplete(v.Complete)
	}
	return ""
}

// typed draws a typed line with its speaker tag and cursor.
func (m IntroModel) typed(line intro.TypedLine, style lipgloss.Style, speaker string) string {
	text, done := m.s.tw.Visible(line, m.s.now)

	var b strings.Builder
	switch {
	case line.Speaker != "":
		b.WriteString(m.styles.Speaker.Render(line.Speaker + ":"))
		b.WriteString(" ")
	case line.Continued && speaker != "":
		b.WriteString(strings.Repeat(" ", len(speaker)+2))
	}
	b.WriteString(style.Render(text))
	if line.Cursor && (!done || cursorOn(m.s.now)) {
		b.WriteString(m.styles.Cursor.Render("█"))
	}
	return b.String()
}

// dialogue draws a block of lines; continued lines indent under the last
// speaker.
func (m IntroModel) dialogue(lines []intro.TypedLine) []string {
	out := make([]string, 0, len(lines))
	speaker := ""
	for _, l := range lines {
		if l.Speaker != "" {
			speaker = l.Speaker
		}
		out = append(out, m.typed(l, m.styles.Body, speaker))
	}
	return out
}

func (m IntroModel) renderBoot(bv *intro.BootView, width int) string {
	if bv.Burst {
		rows := make([]string, 6)
		for i := range rows {
			rows[i] = m.styles.Static.Render(content.StaticLine(m.s.crt.rng, width))
		}
		return strings.Join(rows, "\n")
	}

	rows := make([]string, 0, len(bv.Messages))
	for i, msg := range bv.Messages {
		var style lipgloss.Style
		switch msg.Kind {
		case content.BootLoading:
			style = m.styles.Loading
		case content.BootSuccess:
			style = m.styles.Success
		case content.BootBlank:
			rows = append(rows, "")
			continue
		default:
			style = m.styles.Info
		}
		line := m.typed(msg.TypedLine, style, "")
		if msg.Kind == content.BootLoading && i == len(bv.Messages)-1 {
			line = m.spinner.View() + " " + line
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m IntroModel) renderDialogue(dv *intro.DialogueView) string {
	var frame string
	switch {
	case dv.PortraitReady:
		frame = PortraitFrame(m.s.seq.Content().Portrait, m.s.materialize, m.s.materialize)
	case dv.Materializing && m.s.portraitAt >= 0:
		frame = PortraitFrame(m.s.seq.Content().Portrait, m.s.now-m.s.portraitAt, m.s.materialize)
	}

	parts := []string{m.styles.Portrait.Render(frame), ""}
	if dv.Line != nil {
		parts = append(parts, m.typed(*dv.Line, m.styles.Body, ""))
	}
	return strings.Join(parts, "\n")
}

func (m IntroModel) renderProfile(pv *intro.ProfileView) string {
	var rows []string
	if pv.Header != nil {
		rows = append(rows, m.typed(*pv.Header, m.styles.Bright, ""), "")
	}
	for _, c := range pv.Checks {
		rows = append(rows, fmt.Sprintf("%s %s", m.checkLabel(c.Status), m.styles.Body.Render(c.Display)))
	}
	if pv.ShowProgress {
		rows = append(rows, "", m.progress.ViewAs(pv.Progress))
	}
	return strings.Join(rows, "\n")
}

func (m IntroModel) checkLabel(s intro.CheckStatus) string {
	switch s {
	case intro.CheckOK:
		return m.styles.Pass.Render(s.Label())
	case intro.CheckWarn:
		return m.styles.Warning.Render(s.Label())
	case intro.CheckChecking:
		return m.styles.Bright.Render(s.Label())
	default:
		return m.styles.Pending.Render(s.Label())
	}
}

func (m IntroModel) renderLoad(lv *intro.LoadView) string {
	var rows []string
	if lv.Panel {
		body := []string{m.styles.PanelTitle.Render(lv.Title), ""}
		body = append(body, lv.Status...)
		rows = append(rows, m.styles.Panel.Render(strings.Join(body, "\n")), "")
	}
	if lv.Message != nil {
		rows = append(rows, m.spinner.View()+" "+m.typed(*lv.Message, m.styles.Loading, ""))
	}
	if lv.FollowUp != nil {
		rows = append(rows, "", m.typed(*lv.FollowUp, m.styles.Body, ""))
	}
	return strings.Join(rows, "\n")
}

func (m IntroModel) renderCalibration(cv *intro.CalibrationView) string {
	var rows []string
	if cv.Header != nil {
		rows = append(rows, m.typed(*cv.Header, m.styles.Bright, ""), "")
	}
	for _, r := range cv.Runes {
		rows = append(rows, fmt.Sprintf("%s  %-16s %s",
			m.styles.Rune.Render(r.Glyph), r.Display, m.runeLabel(r.Status)))
	}
	if len(cv.Runes) > 0 {
		rows = append(rows, m.styles.RenderDivider(m.progress.Width),
			m.progress.ViewAs(cv.Progress),
			m.styles.Dim.Render(fmt.Sprintf("aligned %d  failed %d  (%d/%d)", cv.Pass, cv.Fail, cv.Completed, len(cv.Runes))))
	}
	if len(cv.Dialogue) > 0 {
		rows = append(rows, "")
		rows = append(rows, m.dialogue(cv.Dialogue)...)
	}
	return strings.Join(rows, "\n")
}

func (m IntroModel) runeLabel(s intro.RuneStatus) string {
	switch s {
	case intro.RunePass:
		return m.styles.Pass.Render(s.Label())
	case intro.RuneFail:
		return m.styles.Fail.Render(s.Label())
	case intro.RuneTesting:
		return m.styles.Bright.Render(s.Label())
	default:
		return m.styles.Pending.Render(s.Label())
	}
}

func (m IntroModel) renderFinal(fv *intro.FinalView) string {
	rows := m.dialogue(fv.Message)
	if fv.ShowPrompt {
		rows = append(rows, "", m.prompt.View())
	}
	if fv.Banner != nil {
		rows = append(rows, m.styles.Banner.Render(m.typed(*fv.Banner, m.styles.Bright, "")))
	}
	return strings.Join(rows, "\n")
}

func (m IntroModel) renderComplete(cv *intro.CompleteView) string {
	return m.styles.Banner.Render(m.typed(cv.Banner, m.styles.Bright, ""))
}
