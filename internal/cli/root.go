// Package cli wires configuration, storage and services into the cobra
// command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/config"
	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/service"
	"github.com/rcliao/certimatch/internal/storage"
)

// app is built once per invocation by the root's PersistentPreRunE.
type app struct {
	cfg      *config.Config
	services *service.Services
}

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	var (
		configPath string
		market     string
		a          app
	)

	root := &cobra.Command{
		Use:           "certimatch",
		Short:         "Export certification assistant: document checklist, FAIL triage and playbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if market != "" {
				cfg.DefaultMarket = domain.SafeMarket(domain.ParseMarket(market))
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			slog.SetDefault(logger)

			store, err := storage.Open(cfg.Storage, cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			svcs, err := service.New(store, cat, service.Options{
				TriageLimit:       cfg.TriageLimit,
				PlaybookCacheSize: cfg.PlaybookCacheSize,
				ProgressStep:      cfg.ProgressStep,
				ProgressInterval:  cfg.ProgressInterval,
			})
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.services = svcs
			slog.Debug("configuration loaded", "storage", cfg.Storage, "market", cfg.DefaultMarket)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, &a)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	root.PersistentFlags().StringVar(&market, "market", "", "Target market (EU or US)")

	root.AddCommand(
		serveCmd(&a),
		replCmd(&a),
		checklistCmd(&a),
		triageCmd(&a),
		playbookCmd(&a),
		chatCmd(&a),
		labsCmd(&a),
	)
	return root
}

// currentProject returns the current project, creating a demo project for
// the configured market when none exists.
func (a *app) currentProject() (*domain.Project, error) {
	project, err := a.services.Projects.GetCurrent()
	if err == nil {
		return project, nil
	}
	projects, listErr := a.services.Projects.List()
	if listErr != nil {
		return nil, listErr
	}
	if len(projects) > 0 {
		if err := a.services.Projects.SetCurrent(projects[0].ID); err != nil {
			return nil, err
		}
		return projects[0], nil
	}
	slog.Debug("no project found, creating demo project", "market", a.cfg.DefaultMarket)
	return a.services.Projects.CreateNamed("RT100 자율주행 트랙터", a.cfg.DefaultMarket)
}
