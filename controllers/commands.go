package controllers

import (
	"github.com/bwmarrin/discordgo"

	"github.com/zarkopopovski/embed-bot/models"
)

const (
	CreateCommand = "create_msg"
	ShowCommand   = "show_msg"
	ListCommand   = "list_msgs"
	DeleteCommand = "delete_msg"
	EditCommand   = "edit_msg"
)

const (
	optionID                = "id"
	optionTitle             = "title"
	optionDescription       = "description"
	optionColour            = "colour"
	optionImageURL          = "image_url"
	optionThumbnailImageURL = "thumbnail_image_url"
	optionAuthorName        = "author_name"
	optionAuthorNameURL     = "author_name_url"
	optionAuthorIconURL     = "author_icon_url"
	optionFooterText        = "footer_text"
	optionFooterIconURL     = "footer_icon_url"
)

func colourChoices() []*discordgo.ApplicationCommandOptionChoice {
	palette := models.Palette
	if len(palette) > models.MaxColourChoices {
		palette = palette[:models.MaxColourChoices]
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(palette))
	for _, colour := range palette {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  colour.Name,
			Value: colour.Value,
		})
	}
	return choices
}

func idOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        optionID,
		Description: description,
		Required:    true,
	}
}

// embedOptions lists the template field options. Discord wants required
// options first, so author_name leads when it is required.
func embedOptions(authorRequired bool) []*discordgo.ApplicationCommandOption {
	authorName := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optionAuthorName,
		Description: "Author name",
		Required:    authorRequired,
	}

	str := func(name, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        name,
			Description: description,
		}
	}

	return []*discordgo.ApplicationCommandOption{
		authorName,
		str(optionTitle, "Embed title"),
		str(optionDescription, "Embed description"),
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        optionColour,
			Description: "Pick a colour:",
			Choices:     colourChoices(),
		},
		str(optionImageURL, "Image URL"),
		str(optionThumbnailImageURL, "Thumbnail image URL"),
		str(optionAuthorNameURL, "Author URL"),
		str(optionAuthorIconURL, "Author icon URL"),
		str(optionFooterText, "Footer text"),
		str(optionFooterIconURL, "Footer icon URL"),
	}
}

// Commands returns the slash commands served by TemplateController.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CreateCommand,
			Description: "Create a custom embed message",
			Options:     embedOptions(true),
		},
		{
			Name:        ShowCommand,
			Description: "Show a saved embed message",
			Options: []*discordgo.ApplicationCommandOption{
				idOption("ID of the message to show"),
			},
		},
		{
			Name:        ListCommand,
			Description: "List saved embed messages",
		},
		{
			Name:        DeleteCommand,
			Description: "Delete a saved embed message",
			Options: []*discordgo.ApplicationCommandOption{
				idOption("ID of the message to delete"),
			},
		},
		{
			Name:        EditCommand,
			Description: "Edit a saved embed message",
			Options: append([]*discordgo.ApplicationCommandOption{
				idOption("ID of the message to edit"),
			}, embedOptions(false)...),
		},
	}
}
