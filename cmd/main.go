package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/bot"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/commands"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/config"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/dispatcher"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/engine"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/lockdown"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/logging"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/notifier"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/tickets"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/warnings"
)

const (
	guildCacheSize    = 1024
	dispatchBuffer    = 256
	retentionInterval = time.Hour
	janitorInterval   = 5 * time.Minute
)

func main() {
	fmt.Println("Starting moderation and ticket engine")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.LoadOrDefault("config.json")
	if cfg.Bot.Token == "" {
		fmt.Println("DISCORD_TOKEN is not set")
		os.Exit(1)
	}

	if err := logging.InitGlobalLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		fmt.Printf("Logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseGlobalLogger()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logging.Error("Database open failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	guilds, err := config.NewGuildStore(db, guildCacheSize)
	if err != nil {
		logging.Error("Guild store init failed: %v", err)
		os.Exit(1)
	}

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		logging.Error("Bot init failed: %v", err)
		os.Exit(1)
	}
	session := bot.GetSession()
	client := bot.NewClient(session.GetDiscord())

	disp := dispatcher.New(dispatchBuffer)
	warn := warnings.NewMachine(db, client, cfg.Moderation.MaxWarnings)
	lock := lockdown.New(client, cfg.Moderation.LockdownTime())
	eng := engine.New(cfg, db, guilds, client, disp, warn, lock)
	tm := tickets.NewManager(db, client, guilds, cfg.Tickets.TranscriptLimit)

	session.SetupEventHandlers(eng)

	if err := session.Connect(); err != nil {
		logging.Error("Discord connect failed: %v", err)
		os.Exit(1)
	}
	notifier.SetSession(session.GetDiscord())

	if err := commands.Initialize(session, db, guilds, eng, tm); err != nil {
		logging.Error("Command registration failed: %v", err)
		os.Exit(1)
	}

	stopSweeper := db.StartRetentionSweeper(retentionInterval)
	stopJanitor := eng.StartJanitor(janitorInterval)

	logging.Info("All components started")
	waitForShutdown()

	stopJanitor()
	stopSweeper()
	disp.Stop()
	if err := session.Close(); err != nil {
		logging.Warn("Discord close failed: %v", err)
	}

	logging.Info("Shutdown complete")
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logging.Info("Shutdown signal received")
}
