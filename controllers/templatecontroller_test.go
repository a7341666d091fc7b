package controllers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zarkopopovski/embed-bot/db"
)

type fakeResponder struct {
	responses []*discordgo.InteractionResponse
	err       error
}

func (f *fakeResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return f.err
}

func (f *fakeResponder) last(t *testing.T) *discordgo.InteractionResponseData {
	t.Helper()
	require.NotEmpty(t, f.responses)
	return f.responses[len(f.responses)-1].Data
}

func newTestController(t *testing.T) (*TemplateController, *test.Hook) {
	t.Helper()

	dbManager, err := db.NewDBConnection(filepath.Join(t.TempDir(), "embeds.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = dbManager.Close()
	})

	logger, hook := test.NewNullLogger()

	return &TemplateController{DBManager: dbManager, Logger: logger}, hook
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOpt(name string, value int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func command(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "1",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "2"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: options,
		},
	}
}

func TestHandleInteraction_Create(t *testing.T) {
	controller, hook := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command(CreateCommand,
		strOpt(optionAuthorName, "Bot"),
		strOpt(optionTitle, "Welcome"),
		intOpt(optionColour, 0x1abc9c),
		strOpt(optionFooterText, "bye"),
	))

	require.Len(t, responder.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, responder.responses[0].Type)

	data := responder.last(t)
	assert.Equal(t, "Message created with ID: 1", data.Content)
	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "Welcome", data.Embeds[0].Title)
	assert.Equal(t, 0x1abc9c, data.Embeds[0].Color)
	require.NotNil(t, data.Embeds[0].Author)
	assert.Equal(t, "Bot", data.Embeds[0].Author.Name)
	require.NotNil(t, data.Embeds[0].Footer)
	assert.Equal(t, "bye", data.Embeds[0].Footer.Text)
	assert.Nil(t, data.Embeds[0].Image)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, CreateCommand, entry.Data["command"])
	assert.Equal(t, "2", entry.Data["user_id"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestHandleInteraction_ShowAndNotFound(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command(ShowCommand, intOpt(optionID, 1)))
	assert.Equal(t, msgNotFound, responder.last(t).Content)

	controller.HandleInteraction(responder, command(CreateCommand,
		strOpt(optionAuthorName, "Bot"),
		strOpt(optionDescription, "Hi!"),
		strOpt(optionImageURL, "https://example.com/a.png"),
	))

	controller.HandleInteraction(responder, command(ShowCommand, intOpt(optionID, 1)))
	data := responder.last(t)
	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "Hi!", data.Embeds[0].Description)
	require.NotNil(t, data.Embeds[0].Image)
	assert.Equal(t, "https://example.com/a.png", data.Embeds[0].Image.URL)
	assert.Nil(t, data.Embeds[0].Footer)
}

func TestHandleInteraction_List(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command(ListCommand))
	assert.Equal(t, msgNoMessages, responder.last(t).Content)

	controller.HandleInteraction(responder, command(CreateCommand, strOpt(optionAuthorName, "Bot"), strOpt(optionTitle, "one")))
	controller.HandleInteraction(responder, command(CreateCommand, strOpt(optionAuthorName, "Bot")))

	controller.HandleInteraction(responder, command(ListCommand))
	lines := strings.Split(responder.last(t).Content, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1 - one (Created at: "))
	assert.True(t, strings.HasPrefix(lines[1], "2 - Untitled (Created at: "))
	assert.True(t, strings.HasSuffix(lines[1], ")"))
}

func TestHandleInteraction_Delete(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command(DeleteCommand, intOpt(optionID, 1)))
	assert.Equal(t, msgNotFound, responder.last(t).Content)

	controller.HandleInteraction(responder, command(CreateCommand, strOpt(optionAuthorName, "Bot")))
	controller.HandleInteraction(responder, command(DeleteCommand, intOpt(optionID, 1)))
	assert.Equal(t, msgDeleted, responder.last(t).Content)

	controller.HandleInteraction(responder, command(ShowCommand, intOpt(optionID, 1)))
	assert.Equal(t, msgNotFound, responder.last(t).Content)
}

func TestHandleInteraction_Edit(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command(EditCommand, intOpt(optionID, 1), strOpt(optionTitle, "X")))
	assert.Equal(t, msgEditNotFound, responder.last(t).Content)

	controller.HandleInteraction(responder, command(CreateCommand, strOpt(optionAuthorName, "Bot"), strOpt(optionTitle, "Welcome")))

	controller.HandleInteraction(responder, command(EditCommand, intOpt(optionID, 1)))
	assert.Equal(t, msgNoChanges, responder.last(t).Content)

	controller.HandleInteraction(responder, command(EditCommand, intOpt(optionID, 1), strOpt(optionDescription, "Hi!")))
	assert.Equal(t, msgEdited, responder.last(t).Content)

	controller.HandleInteraction(responder, command(ShowCommand, intOpt(optionID, 1)))
	data := responder.last(t)
	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "Welcome", data.Embeds[0].Title)
	assert.Equal(t, "Hi!", data.Embeds[0].Description)
}

func TestHandleInteraction_StorageFailure(t *testing.T) {
	controller, hook := newTestController(t)
	responder := &fakeResponder{}

	require.NoError(t, controller.DBManager.Close())

	controller.HandleInteraction(responder, command(ListCommand))

	require.Len(t, responder.responses, 1)
	data := responder.last(t)
	assert.Equal(t, msgSomethingFail, data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)

	var sawError bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestHandleInteraction_MissingID(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command(ShowCommand))
	assert.Equal(t, msgSomethingFail, responder.last(t).Content)
}

func TestHandleInteraction_UnknownCommand(t *testing.T) {
	controller, hook := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, command("nope"))
	assert.Equal(t, msgUnknown, responder.last(t).Content)
	assert.Equal(t, logrus.WarnLevel, hook.AllEntries()[0].Level)
}

func TestHandleInteraction_IgnoresNonCommands(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	controller.HandleInteraction(responder, &discordgo.Interaction{Type: discordgo.InteractionPing})
	assert.Empty(t, responder.responses)
}

func TestHandleInteraction_RespondError(t *testing.T) {
	controller, hook := newTestController(t)
	responder := &fakeResponder{err: errors.New("gateway gone")}

	controller.HandleInteraction(responder, command(ListCommand))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Failed to respond to interaction", entry.Message)
}

func TestHandleInteraction_ListFitsInOneMessage(t *testing.T) {
	controller, _ := newTestController(t)
	responder := &fakeResponder{}

	const total = 60
	for n := 1; n <= total; n++ {
		controller.HandleInteraction(responder, command(CreateCommand,
			strOpt(optionAuthorName, "Bot"),
			strOpt(optionTitle, fmt.Sprintf("template number %d", n)),
		))
	}

	controller.HandleInteraction(responder, command(ListCommand))
	content := responder.last(t).Content
	assert.LessOrEqual(t, len(content), maxContentLength)

	lines := strings.Split(content, "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "1 - template number 1 (Created at: "))

	shown := len(lines) - 1
	assert.Equal(t, fmt.Sprintf("...and %d more", total-shown), lines[len(lines)-1])
}

func TestHandleInteraction_CreateLogsIDBeforeResponding(t *testing.T) {
	controller, hook := newTestController(t)
	responder := &fakeResponder{err: errors.New("invalid embed image url")}

	controller.HandleInteraction(responder, command(CreateCommand,
		strOpt(optionAuthorName, "Bot"),
		strOpt(optionImageURL, "not a url"),
	))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	created, failed := entries[0], entries[1]
	assert.Equal(t, "Message created", created.Message)
	assert.Equal(t, int64(1), created.Data["message_id"])
	assert.Equal(t, "Failed to respond to interaction", failed.Message)
	assert.Equal(t, created.Data["request_id"], failed.Data["request_id"])

	_, found, err := controller.DBManager.GetTemplate(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCommandContext_HasDeadline(t *testing.T) {
	ctx, cancel := commandContext()
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(commandTimeout), deadline, time.Second)
	assert.Less(t, commandTimeout, 3*time.Second)

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
