package controllers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/zarkopopovski/embed-bot/models"
)

const createdAtLayout = "2006-01-02 15:04:05"

// maxContentLength is Discord's limit on message content, in characters.
const maxContentLength = 2000

// moreReserve leaves room for the trailing "...and N more" line.
const moreReserve = 32

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// buildEmbed renders template fields the way Discord displays them. Blocks
// whose fields are all absent are left out.
func buildEmbed(fields models.EmbedFields) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       deref(fields.Title),
		Description: deref(fields.Description),
	}

	if fields.Colour != nil {
		embed.Color = int(*fields.Colour)
	}

	if fields.FooterText != nil || fields.FooterIconURL != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    deref(fields.FooterText),
			IconURL: deref(fields.FooterIconURL),
		}
	}

	if fields.AuthorName != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    *fields.AuthorName,
			URL:     deref(fields.AuthorNameURL),
			IconURL: deref(fields.AuthorIconURL),
		}
	}

	if fields.ImageURL != nil {
		embed.Image = &discordgo.MessageEmbedImage{URL: *fields.ImageURL}
	}

	if fields.ThumbnailImageURL != nil {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: *fields.ThumbnailImageURL}
	}

	return embed
}

// formatSummaries lists one summary per line. When the list would not fit in
// one message it stops early and ends with a count of the omitted rows.
func formatSummaries(summaries []models.TemplateSummary) string {
	if len(summaries) == 0 {
		return msgNoMessages
	}

	lines := make([]string, 0, len(summaries))
	total := 0
	for _, summary := range summaries {
		title := "Untitled"
		if summary.Title != nil {
			title = *summary.Title
		}
		line := fmt.Sprintf("%d - %s (Created at: %s)", summary.ID, title, summary.CreatedAt.Format(createdAtLayout))
		lines = append(lines, line)
		total += utf8.RuneCountInString(line) + 1
	}

	if total-1 <= maxContentLength {
		return strings.Join(lines, "\n")
	}

	kept := make([]string, 0, len(lines))
	used := 0
	for _, line := range lines {
		size := utf8.RuneCountInString(line) + 1
		if used+size > maxContentLength-moreReserve {
			break
		}
		kept = append(kept, line)
		used += size
	}

	kept = append(kept, fmt.Sprintf("...and %d more", len(lines)-len(kept)))

	return strings.Join(kept, "\n")
}
