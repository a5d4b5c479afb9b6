package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/versiondb-watch/internal/application"
	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	Now time.Time
	// Latest caps the versions listed per channel; zero lists all of them.
	Latest int
}

func resultsView(results []application.CheckResult, opts Options, s styles) string {
	lines := []string{
		s.title.Render("Update check"),
		s.header.Render(fmt.Sprintf("targets: %d", len(results))),
	}

	if len(results) == 0 {
		lines = append(lines, s.empty.Render("No targets checked."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, result := range results {
		lines = append(lines, s.section.Render(resultBlock(result, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func resultBlock(result application.CheckResult, s styles) string {
	parts := []string{
		s.channel.Render(fmt.Sprintf("%s (%s)", result.Target.IdentityName(), result.Target.Channel)),
		metaLine("matched:", fmt.Sprintf("%d records", result.Matched), s),
	}

	parts = append(parts, outcomeLine(result, s))
	if result.Novel && !result.DryRun {
		parts = append(parts, publishLine(result, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func outcomeLine(result application.CheckResult, s styles) string {
	switch {
	case result.Err != nil:
		return s.failure.Render("failed: " + result.Err.Error())
	case result.Novel && result.DryRun:
		return s.novel.Render("new version "+result.NewVersion) + " " + s.warning.Render("[dry run]")
	case result.Novel:
		return s.novel.Render("new version " + result.NewVersion)
	default:
		return s.detail.Render("up to date")
	}
}

func publishLine(result application.CheckResult, s styles) string {
	switch {
	case result.PublishErr != nil:
		return s.failure.Render("publish failed: " + result.PublishErr.Error())
	case !result.Published:
		return s.warning.Render("not published")
	}

	line := metaLine("commit:", shortCommit(result.CommitID), s)
	if result.Notified {
		line += " " + s.metaText.Render("(notified)")
	}
	return line
}

func versionsView(groups []application.ChannelVersions, opts Options, s styles) string {
	total := 0
	for _, group := range groups {
		total += len(group.Entries)
	}

	lines := []string{
		s.title.Render("Recorded versions"),
		s.header.Render(fmt.Sprintf("versions: %d", total)),
	}

	if total == 0 {
		lines = append(lines, s.empty.Render("No versions recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, group := range groups {
		lines = append(lines, s.section.Render(channelBlock(group, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func channelBlock(group application.ChannelVersions, opts Options, s styles) string {
	entries := group.Entries
	hidden := 0
	if opts.Latest > 0 && len(entries) > opts.Latest {
		hidden = len(entries) - opts.Latest
		entries = entries[hidden:]
	}

	parts := []string{s.channel.Render(fmt.Sprintf("%s (%d)", group.Channel, len(group.Entries)))}
	if hidden > 0 {
		parts = append(parts, s.empty.Render(fmt.Sprintf("... %d older", hidden)))
	}

	width := 0
	for _, entry := range entries {
		width = max(width, len(entry.Version))
	}
	for _, entry := range entries {
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.version.Render(fmt.Sprintf("%-*s", width, entry.Version)),
			"  ",
			s.metaText.Render(entry.UpdateID),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func historyView(entries []ports.JournalEntry, opts Options, s styles) string {
	lines := []string{
		s.title.Render("Check history"),
		s.header.Render(fmt.Sprintf("checks: %d", len(entries))),
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No checks recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range entries {
		lines = append(lines, historyLine(entry, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func historyLine(entry ports.JournalEntry, opts Options, s styles) string {
	when := s.metaText.Render(formatAge(entry.StartedAt, opts.Now))
	target := s.metaKey.Render(fmt.Sprintf("%s/%s", domain.IdentityName(entry.Target), entry.Channel))

	var outcome string
	switch entry.Outcome {
	case ports.OutcomeFailed:
		outcome = s.failure.Render("failed: " + entry.Error)
	case ports.OutcomeNewVersion:
		outcome = s.novel.Render("new " + entry.Version)
		if !entry.Published {
			outcome += " " + s.warning.Render("[unpublished]")
		}
	default:
		outcome = s.detail.Render("up to date")
	}

	return strings.Join([]string{when, target, outcome}, " ")
}

func metaLine(key, value string, s styles) string {
	return s.metaKey.Render(key) + " " + s.detail.Render(value)
}

func shortCommit(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func formatAge(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(math.Floor(elapsed.Minutes())), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(math.Floor(elapsed.Hours())), "hour") + " ago"
	default:
		return at.Format("15:04 on 02 Jan")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
