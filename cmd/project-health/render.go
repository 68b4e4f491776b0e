package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = cellStyle.Foreground(lipgloss.Color("#9CA3AF"))
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
	newMarker   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Render("●")
)

const maxTitleSize = 50

func renderDashboard(d *domain.DashboardData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Outgoing pull requests of %s", d.Login)))
	b.WriteString("\n")
	b.WriteString(renderPullRequests(d.OutgoingPRs))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Incoming pull requests"))
	b.WriteString("\n")
	b.WriteString(renderPullRequests(d.IncomingPRs))
	return b.String()
}

func renderPullRequests(prs []domain.PullRequest) string {
	if len(prs) == 0 {
		return mutedStyle.Render("nothing here")
	}

	rows := make([][]string, 0, len(prs))
	for _, pr := range prs {
		marker := ""
		if pr.HasNewActivity {
			marker = newMarker
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%s/%s#%d", pr.Ref.Owner, pr.Ref.Repo, pr.Ref.Number),
			truncate(pr.Title, maxTitleSize),
			pr.Author,
			describeStatus(pr.Status),
			describeLatestEvent(pr.Events),
		})
	}

	actionable := make([]bool, len(prs))
	for i, pr := range prs {
		actionable[i] = pr.Status.Actionable()
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("", "PR", "TITLE", "AUTHOR", "STATUS", "LATEST").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(actionable) && !actionable[row]:
				return mutedStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func describeStatus(s domain.Status) string {
	if s.Kind == domain.StatusWaitingReview && len(s.Reviewers) > 0 {
		return fmt.Sprintf("%s (%s)", s.Kind, strings.Join(s.Reviewers, ", "))
	}
	return string(s.Kind)
}

func describeLatestEvent(events []domain.Event) string {
	if len(events) == 0 {
		return ""
	}
	e := events[len(events)-1]

	var what string
	switch ev := e.(type) {
	case domain.OutgoingReviewEvent:
		what = fmt.Sprintf("%d review(s)", len(ev.Reviews))
	case domain.MyReviewEvent:
		what = "you " + strings.ToLower(strings.ReplaceAll(string(ev.Review.State), "_", " "))
	case domain.NewCommitsEvent:
		what = fmt.Sprintf("%d new commit(s) +%d -%d", ev.Count, ev.Additions, ev.Deletions)
	case domain.MentionedEvent:
		what = "mentioned you"
	default:
		panic(domain.UnknownEventError(e))
	}

	if e.Time() <= 0 {
		return what
	}
	return fmt.Sprintf("%s, %s", what, time.UnixMilli(e.Time()).UTC().Format("Jan 2 15:04"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
