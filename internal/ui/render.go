package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/internal/viewmodel"
)

// mapsLink builds a directions link to the school's coordinates.
func mapsLink(lat, long float64) string {
	return "maps://?saddr=&daddr=" + strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(long, 'f', -1, 64)
}

// phoneLink builds a dialable link, or "" when there is no number.
func phoneLink(phone string) string {
	phone = strings.Join(strings.Fields(phone), "")
	if phone == "" {
		return ""
	}
	return "tel:" + phone
}

// visibleRange returns the slice bounds that keep cursor on screen.
func visibleRange(total, cursor, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func (m Model) renderHeader(title string) string {
	var status string
	switch {
	case m.reach == nil:
	case !m.reach.IsReachable():
		status = m.styles.Offline.Render("● offline")
	case m.reach.IsReachableOnCellular():
		status = m.styles.Online.Render("● online (metered)")
	default:
		status = m.styles.Online.Render("● online")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Title.Render(title), "  ", status)
}

func (m Model) renderList(st viewmodel.SchoolListState) string {
	var b strings.Builder
	b.WriteString(m.renderHeader("NYC High Schools"))
	b.WriteString("\n\n")

	switch {
	case st.IsFetchingData && len(st.Schools) == 0:
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Loading schools..."))
	case len(st.Schools) == 0:
		b.WriteString(m.styles.Muted.Render("No schools loaded."))
	default:
		start, end := visibleRange(len(st.Schools), m.cursor, m.listHeight())
		for i := start; i < end; i++ {
			line := st.Schools[i].Name
			if line == "" {
				line = st.Schools[i].DBN
			}
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(m.styles.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if st.IsFetchingData {
			b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Refreshing..."))
		}
	}

	if st.ShouldShowErrorState {
		b.WriteString("\n\n")
		b.WriteString(m.renderAlert(st.ErrorState, "[r] Retry  [esc] Dismiss"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("↑/↓ move • enter details • r reload • q quit"))
	return b.String()
}

// renderDetails renders the scrollable content of the detail screen.
func renderDetails(s styles, st viewmodel.SchoolDetailsState, width int) string {
	school := st.School
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}

	sections := []string{
		s.Subtitle.Render(school.Name),
		s.Label.Render("Address"),
		wrap.Render(s.Text.Render(school.Address)),
		s.Link.Render(mapsLink(school.Latitude, school.Longitude)),
	}

	if school.OverviewParagraph != "" {
		sections = append(sections, "", s.Label.Render("Overview"), wrap.Render(s.Text.Render(school.OverviewParagraph)))
	}

	sections = append(sections, "", s.Label.Render("Contact"))
	if link := phoneLink(school.PhoneNumber); link != "" {
		sections = append(sections, s.Text.Render(school.PhoneNumber)+"  "+s.Link.Render(link))
	} else {
		sections = append(sections, s.Muted.Render("No phone number"))
	}

	sections = append(sections, "")
	sections = append(sections, renderScores(s, st)...)
	return strings.Join(sections, "\n")
}

func renderScores(s styles, st viewmodel.SchoolDetailsState) []string {
	switch {
	case st.SATScores != nil:
		sc := st.SATScores
		return []string{
			s.Label.Render("SAT Scores"),
			fmt.Sprintf("Test takers:      %d", sc.NumOfTestTakers),
			fmt.Sprintf("Critical reading: %d", sc.CriticalReadingAvgScore),
			fmt.Sprintf("Math:             %d", sc.MathAvgScore),
			fmt.Sprintf("Writing:          %d", sc.WritingAvgScore),
		}
	case st.IsFetchingData:
		return []string{s.Label.Render("SAT Scores: ") + s.Muted.Render("Loading...")}
	default:
		return []string{s.Label.Render("SAT Scores: ") + s.Muted.Render("Unavailable")}
	}
}

func (m Model) renderDetailScreen(st viewmodel.SchoolDetailsState) string {
	var b strings.Builder
	b.WriteString(m.renderHeader(schoolTitle(st.School)))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())

	if st.ShouldShowErrorState {
		b.WriteString("\n\n")
		b.WriteString(m.renderAlert(st.ErrorState, "[esc] OK"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("↑/↓ scroll • esc back • q quit"))
	return b.String()
}

func (m Model) renderAlert(state viewmodel.ErrorState, actions string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.AlertTitle.Render("Error"),
		m.styles.Text.Render(state.Message()),
		"",
		m.styles.Help.Render(actions),
	)
	return m.styles.Alert.Render(body)
}

func schoolTitle(s domain.School) string {
	if s.Name != "" {
		return s.Name
	}
	return s.DBN
}
