package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wamashudu/tasktrack/internal/api"
	"github.com/wamashudu/tasktrack/internal/app"
	"github.com/wamashudu/tasktrack/internal/collection"
	"github.com/wamashudu/tasktrack/internal/credential"
	"github.com/wamashudu/tasktrack/internal/logger"
	"github.com/wamashudu/tasktrack/internal/model"
	"github.com/wamashudu/tasktrack/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tasktrack:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	log, closer, err := logger.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	tokens, err := credential.OpenKeyringStore()
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	apiCfg := api.Config{
		BaseURL: cfg.Server.BaseURL,
		Timeout: time.Duration(cfg.Server.TimeoutSec) * time.Second,
		Logger:  log,
	}

	cred := api.NewCredential()
	authClient := api.NewAuthClient(apiCfg, cred)
	taskClient := api.NewTaskClient(apiCfg, cred)

	sess := session.NewManager(authClient, tokens, cred, log)
	taskClient.OnAuthExpired(sess.HandleAuthError)

	coll := collection.NewManager(taskClient, log)

	sess.Restore()

	log.Info().Str("base_url", cfg.Server.BaseURL).Msg("starting")

	p := tea.NewProgram(app.New(*cfg, log, sess, coll), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
