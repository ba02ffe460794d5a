package game

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bluetrivia/bluetrivia/internal/models"
)

// postBudget is the character limit for one post on the feed
const postBudget = 280

var medals = []string{"🥇", "🥈", "🥉"}

// composeRoundPost formats the question announcement
func composeRoundPost(num int, questionText string, window time.Duration) string {
	return fmt.Sprintf("🎬 Round %d!\n%s\nReply with your guess — you have %s!",
		num, questionText, formatWindow(window))
}

// composeTimeUp formats the transient end-of-collection notice
func composeTimeUp(num int) string {
	return fmt.Sprintf("⏰ Time's up for round %d! Counting the guesses now...", num)
}

// composeSkipNotice formats the insufficient-participation notice
func composeSkipNotice(num int) string {
	return fmt.Sprintf("😴 Round %d got no guesses, so we're skipping it. Next one coming soon!", num)
}

// composeRecoveryNotice names a round discarded by the startup sweep
func composeRecoveryNotice(num int) string {
	return fmt.Sprintf("⚠️ Round %d was interrupted and has been discarded. A fresh round is on the way!", num)
}

// composeResults builds the results summary within the post budget.
// Sections are appended in priority order; once one no longer fits, it
// and everything after it are dropped. The headline always fits.
func composeResults(num, percent int, answer string, attempts int, topCorrect []models.Response, tournament *models.Tournament, nextWait time.Duration) string {
	sections := []string{
		fmt.Sprintf("🏁 Round %d results! %d%% guessed it.", num, percent),
		answerSection(answer, attempts),
		medalSection(topCorrect),
		tournamentSection(tournament),
		fmt.Sprintf("Next round in %s!", formatWindow(nextWait)),
	}

	var b strings.Builder
	used := 0
	for i, section := range sections {
		if section == "" {
			continue
		}
		cost := utf8.RuneCountInString(section)
		if i > 0 {
			cost++ // newline separator
		}
		if i > 0 && used+cost > postBudget {
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(section)
		used += cost
	}
	return b.String()
}

func answerSection(answer string, attempts int) string {
	guesses := "guesses"
	if attempts == 1 {
		guesses = "guess"
	}
	return fmt.Sprintf("The answer was \"%s\" (%d %s).", answer, attempts, guesses)
}

func medalSection(topCorrect []models.Response) string {
	if len(topCorrect) == 0 {
		return ""
	}
	parts := make([]string, 0, len(medals))
	for i, resp := range topCorrect {
		if i >= len(medals) {
			break
		}
		parts = append(parts, fmt.Sprintf("%s @%s", medals[i], resp.Handle))
	}
	return strings.Join(parts, " ")
}

func tournamentSection(t *models.Tournament) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("🏆 %s standings updated!", t.Name)
}

// formatWindow renders a duration the way a person would say it
func formatWindow(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	case d >= time.Minute:
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	default:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
}
