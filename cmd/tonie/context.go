package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"toniecloud/internal/config"
	"toniecloud/internal/logging"
	"toniecloud/internal/notifications"
	"toniecloud/internal/prompt"
	"toniecloud/internal/toniecloud"
)

type commandContext struct {
	configFlag    *string
	householdFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	clientOnce sync.Once
	client     *toniecloud.Client

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, householdFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		householdFlag: householdFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		_ = godotenv.Load()
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureClient() (*toniecloud.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.clientOnce.Do(func() {
		c.client = toniecloud.New(toniecloud.Config{
			BaseURL:  cfg.API.BaseURL,
			TokenURL: cfg.API.TokenURL,
			ClientID: cfg.API.ClientID,
			Origin:   cfg.API.Origin,
			Prompter: prompt.NewTerminal(),
		})
	})
	return c.client, nil
}

// authedClient returns a logged-in client, authenticating with configured
// credentials first and falling back to an interactive prompt.
func (c *commandContext) authedClient(ctx context.Context) (*toniecloud.Client, error) {
	client, err := c.ensureClient()
	if err != nil {
		return nil, err
	}
	if client.Session().Authenticated() {
		return client, nil
	}

	cfg := c.config
	if cfg.Auth.Username != "" && cfg.Auth.Password != "" {
		if err := client.Login(ctx, cfg.Auth.Username, cfg.Auth.Password); err != nil {
			return nil, err
		}
		return client, nil
	}
	if err := client.LoginInteractive(ctx); err != nil {
		if errors.Is(err, toniecloud.ErrNoPrompter) {
			return nil, errors.New("no credentials configured; set auth.username and TONIE_PASSWORD")
		}
		return nil, err
	}
	return client, nil
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = slog.New(slog.DiscardHandler)
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = slog.New(slog.DiscardHandler)
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) notifier() notifications.Service {
	cfg, err := c.ensureConfig()
	if err != nil {
		return notifications.NewService(&config.Config{})
	}
	return notifications.NewService(cfg)
}

// household resolves the --household flag to a Household, or defers to the
// client's current-household selection when the flag is unset.
func (c *commandContext) household(ctx context.Context, client *toniecloud.Client) (toniecloud.Household, error) {
	var wanted string
	if c.householdFlag != nil {
		wanted = strings.TrimSpace(*c.householdFlag)
	}
	if wanted == "" {
		return client.CurrentHousehold(ctx)
	}

	households, err := client.Households(ctx)
	if err != nil {
		return toniecloud.Household{}, err
	}
	for _, h := range households {
		if h.ID == wanted || strings.EqualFold(h.Name, wanted) {
			client.Session().SelectHousehold(h)
			return h, nil
		}
	}
	return toniecloud.Household{}, fmt.Errorf("household %q not found", wanted)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
