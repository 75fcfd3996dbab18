// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/people-finder/internal/profile"
	"github.com/jonathan/people-finder/internal/search"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer renders search results and profiles as text boxes.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResults outputs one card per search result followed by the page summary.
func (p *Printer) PrintResults(resp *search.Response) {
	if resp == nil {
		return
	}
	if len(resp.Results) == 0 {
		p.printBox("SEARCH RESULTS", "No results")
		return
	}

	var sb strings.Builder
	for i, r := range resp.Results {
		sb.WriteString(fmt.Sprintf("#%d  %s", i+1, r.Name))
		if r.Verified != nil && *r.Verified {
			sb.WriteString(" ✓")
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    %s\n", r.Headline))
		sb.WriteString(fmt.Sprintf("    %s\n", r.Location))
		if len(r.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(r.Skills, ", ")))
		}
		if r.Username != nil {
			sb.WriteString(fmt.Sprintf("    @%s\n", *r.Username))
		}
		if i < len(resp.Results)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d results (page %d, limit %d)", resp.Meta.Total, resp.Meta.Page, resp.Meta.Limit))

	p.printBox("SEARCH RESULTS", sb.String())
}

// PrintProfile outputs the profile page: header, skills and recent history.
func (p *Printer) PrintProfile(prof *profile.Profile) {
	if prof == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", prof.Name))
	if prof.Username != "" {
		sb.WriteString(fmt.Sprintf("Username:  @%s\n", prof.Username))
	}
	sb.WriteString(fmt.Sprintf("Headline:  %s\n", prof.Headline))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", prof.Location))
	if prof.Completion != nil {
		sb.WriteString(fmt.Sprintf("Complete:  %.0f%%\n", *prof.Completion*100))
	}

	if prof.Summary != nil {
		if summary := plainText(*prof.Summary); summary != "" {
			sb.WriteString("\n")
			sb.WriteString(wrap(summary, boxWidth-4))
			sb.WriteString("\n")
		}
	}

	if len(prof.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		writeList(&sb, prof.Skills, func(s string) string { return s })
	}

	if len(prof.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		writeList(&sb, prof.Experience, func(e profile.Experience) string {
			line := e.Title
			if e.Company != "" {
				line += " @ " + e.Company
			}
			if e.Current {
				line += " (current)"
			}
			return line
		})
	}

	if len(prof.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		writeList(&sb, prof.Education, func(e profile.Education) string {
			return strings.TrimSpace(e.Degree + " " + e.Institution)
		})
	}

	if len(prof.Languages) > 0 {
		sb.WriteString("\nLanguages:\n")
		writeList(&sb, prof.Languages, func(l profile.Language) string {
			return l.Language + " (" + l.Proficiency + ")"
		})
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList[T any](sb *strings.Builder, items []T, label func(T) string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", label(items[i])))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
