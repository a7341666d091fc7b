package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/twinj/uuid"

	"github.com/zarkopopovski/embed-bot/db"
)

const (
	msgCreated       = "Message created with ID: %d"
	msgNotFound      = "Message not found."
	msgNoMessages    = "No messages found."
	msgDeleted       = "Message deleted successfully."
	msgEdited        = "Message edited successfully."
	msgEditNotFound  = "Message not found or no changes were made."
	msgNoChanges     = "No changes were given."
	msgUnknown       = "Unknown command."
	msgSomethingFail = "Something went wrong, please try again later."
)

// InteractionResponder sends the single response an interaction is owed.
// *discordgo.Session satisfies it.
type InteractionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// commandTimeout bounds the store work of one command. Discord drops an
// interaction that is not answered within three seconds.
const commandTimeout = 2500 * time.Millisecond

type commandHandler func(ctx context.Context, log *logrus.Entry, opts optionMap) (*discordgo.InteractionResponseData, error)

type TemplateController struct {
	DBManager *db.DBManager
	Logger    *logrus.Logger
}

func (tController *TemplateController) handlers() map[string]commandHandler {
	return map[string]commandHandler{
		CreateCommand: tController.CreateMessage,
		ShowCommand:   tController.ShowMessage,
		ListCommand:   tController.ListMessages,
		DeleteCommand: tController.DeleteMessage,
		EditCommand:   tController.EditMessage,
	}
}

// HandleInteraction runs the slash command carried by i and answers it
// exactly once. Handler errors are logged and answered with a generic
// failure message.
func (tController *TemplateController) HandleInteraction(s InteractionResponder, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	start := time.Now()
	data := i.ApplicationCommandData()

	logEntry := tController.Logger.WithFields(logrus.Fields{
		"request_id": uuid.NewV4().String(),
		"command":    data.Name,
		"guild_id":   i.GuildID,
		"user_id":    interactionUserID(i),
	})

	var resp *discordgo.InteractionResponseData

	handler, ok := tController.handlers()[data.Name]
	if !ok {
		logEntry.Warn("Unknown command")
		resp = &discordgo.InteractionResponseData{Content: msgUnknown, Flags: discordgo.MessageFlagsEphemeral}
	} else {
		ctx, cancel := commandContext()
		var err error
		resp, err = handler(ctx, logEntry, newOptionMap(data.Options))
		cancel()
		if err != nil {
			logEntry.WithError(err).Error("Command failed")
			resp = &discordgo.InteractionResponseData{Content: msgSomethingFail, Flags: discordgo.MessageFlagsEphemeral}
		}
	}

	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: resp,
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to respond to interaction")
		return
	}

	logEntry.WithField("latency_ms", time.Since(start).Milliseconds()).Info("Command handled")
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (tController *TemplateController) CreateMessage(ctx context.Context, log *logrus.Entry, opts optionMap) (*discordgo.InteractionResponseData, error) {
	fields := opts.embedFields()

	id, err := tController.DBManager.CreateTemplate(ctx, fields)
	if err != nil {
		return nil, err
	}

	// Discord can still reject the preview after the row exists.
	log.WithField("message_id", id).Info("Message created")

	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf(msgCreated, id),
		Embeds:  []*discordgo.MessageEmbed{buildEmbed(fields)},
	}, nil
}

func (tController *TemplateController) ShowMessage(ctx context.Context, _ *logrus.Entry, opts optionMap) (*discordgo.InteractionResponseData, error) {
	id, err := opts.id()
	if err != nil {
		return nil, err
	}

	template, found, err := tController.DBManager.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return &discordgo.InteractionResponseData{Content: msgNotFound}, nil
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{buildEmbed(template.Fields())},
	}, nil
}

func (tController *TemplateController) ListMessages(ctx context.Context, _ *logrus.Entry, _ optionMap) (*discordgo.InteractionResponseData, error) {
	summaries, err := tController.DBManager.ListTemplateSummaries(ctx)
	if err != nil {
		return nil, err
	}

	return &discordgo.InteractionResponseData{Content: formatSummaries(summaries)}, nil
}

func (tController *TemplateController) DeleteMessage(ctx context.Context, _ *logrus.Entry, opts optionMap) (*discordgo.InteractionResponseData, error) {
	id, err := opts.id()
	if err != nil {
		return nil, err
	}

	deleted, err := tController.DBManager.DeleteTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return &discordgo.InteractionResponseData{Content: msgNotFound}, nil
	}

	return &discordgo.InteractionResponseData{Content: msgDeleted}, nil
}

func (tController *TemplateController) EditMessage(ctx context.Context, _ *logrus.Entry, opts optionMap) (*discordgo.InteractionResponseData, error) {
	id, err := opts.id()
	if err != nil {
		return nil, err
	}

	updated, err := tController.DBManager.UpdateTemplate(ctx, id, opts.embedFields())
	if errors.Is(err, db.ErrNoFieldsToUpdate) {
		return &discordgo.InteractionResponseData{Content: msgNoChanges}, nil
	}
	if err != nil {
		return nil, err
	}
	if !updated {
		return &discordgo.InteractionResponseData{Content: msgEditNotFound}, nil
	}

	return &discordgo.InteractionResponseData{Content: msgEdited}, nil
}
