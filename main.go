package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/zarkopopovski/embed-bot/config"
	"github.com/zarkopopovski/embed-bot/controllers"
	"github.com/zarkopopovski/embed-bot/db"
)

var activityTypes = map[string]discordgo.ActivityType{
	"game":      discordgo.ActivityTypeGame,
	"listening": discordgo.ActivityTypeListening,
	"watching":  discordgo.ActivityTypeWatching,
	"competing": discordgo.ActivityTypeCompeting,
	"custom":    discordgo.ActivityTypeCustom,
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string
	var databasePath string

	flagSet := pflag.NewFlagSet("embed-bot", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "path to a .env file (ignored when missing)")
	flagSet.StringVar(&databasePath, "database", "", "path to the SQLite database (overrides DATABASE)")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if databasePath != "" {
		cfg.DatabasePath = databasePath
	}

	logger := config.NewLogger(cfg)
	logger.WithFields(logrus.Fields{
		"env_file":        envFile,
		"env_file_loaded": config.EnvFileExists(envFile),
		"database":        cfg.DatabasePath,
		"guild_id":        cfg.GuildID,
	}).Info("Starting embed bot")

	dbHandler, err := db.NewDBConnection(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer dbHandler.Close()

	templateController := &controllers.TemplateController{
		DBManager: dbHandler,
		Logger:    logger,
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.WithField("user", r.User.String()).Info("Connected to gateway")

		if err := s.UpdateStatusComplex(presence(cfg)); err != nil {
			logger.WithError(err).Warn("Failed to update presence")
		}
	})

	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		templateController.HandleInteraction(s, i.Interaction)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer session.Close()

	registered, err := session.ApplicationCommandBulkOverwrite(session.State.User.ID, cfg.GuildID, controllers.Commands())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	logger.WithField("commands", len(registered)).Info("Commands synced to guild")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	thisSignal := <-sigChan

	logger.WithField("signal", thisSignal.String()).Info("Graceful Shutdown")

	return nil
}

func presence(cfg config.Config) discordgo.UpdateStatusData {
	status := discordgo.UpdateStatusData{
		Status: cfg.Status,
	}

	if cfg.Activity == "" {
		return status
	}

	activity := &discordgo.Activity{
		Name: cfg.Activity,
		Type: activityTypes[cfg.ActivityType],
	}
	if activity.Type == discordgo.ActivityTypeCustom {
		activity.Name = "Custom Status"
		activity.State = cfg.Activity
	}

	status.Activities = []*discordgo.Activity{activity}

	return status
}
