package controllers

import (
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/zarkopopovski/embed-bot/models"
)

var errMissingID = errors.New("missing id option")

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	opts := make(optionMap, len(options))
	for _, opt := range options {
		opts[opt.Name] = opt
	}
	return opts
}

func (opts optionMap) stringValue(name string) *string {
	opt, ok := opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return nil
	}
	value, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	return &value
}

func (opts optionMap) intValue(name string) *int64 {
	opt, ok := opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return nil
	}

	var value int64
	switch v := opt.Value.(type) {
	case float64:
		value = int64(v)
	case int64:
		value = v
	case int:
		value = int64(v)
	default:
		return nil
	}
	return &value
}

func (opts optionMap) id() (int64, error) {
	id := opts.intValue(optionID)
	if id == nil {
		return 0, errMissingID
	}
	return *id, nil
}

// embedFields maps the known embed options onto EmbedFields. Options that
// were not sent stay nil.
func (opts optionMap) embedFields() models.EmbedFields {
	return models.EmbedFields{
		Title:             opts.stringValue(optionTitle),
		Description:       opts.stringValue(optionDescription),
		Colour:            opts.intValue(optionColour),
		ImageURL:          opts.stringValue(optionImageURL),
		ThumbnailImageURL: opts.stringValue(optionThumbnailImageURL),
		AuthorName:        opts.stringValue(optionAuthorName),
		AuthorNameURL:     opts.stringValue(optionAuthorNameURL),
		AuthorIconURL:     opts.stringValue(optionAuthorIconURL),
		FooterText:        opts.stringValue(optionFooterText),
		FooterIconURL:     opts.stringValue(optionFooterIconURL),
	}
}
