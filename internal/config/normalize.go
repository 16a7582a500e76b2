package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAPI()
	c.normalizeAuth()
	c.normalizeAcquire()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Acquire.StagingDir, err = expandPath(c.Acquire.StagingDir); err != nil {
		return fmt.Errorf("acquire.staging_dir: %w", err)
	}
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.API.TokenURL = strings.TrimSpace(c.API.TokenURL)
	c.API.ClientID = strings.TrimSpace(c.API.ClientID)
	c.API.Origin = strings.TrimSpace(c.API.Origin)
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if c.API.TokenURL == "" {
		c.API.TokenURL = defaultTokenURL
	}
	if c.API.ClientID == "" {
		c.API.ClientID = defaultClientID
	}
	if c.API.Origin == "" {
		c.API.Origin = defaultOrigin
	}
}

// normalizeAuth resolves credentials. Environment variables win over the
// config file; the password only ever comes from the environment.
func (c *Config) normalizeAuth() {
	if username := strings.TrimSpace(os.Getenv("TONIE_USERNAME")); username != "" {
		c.Auth.Username = username
	}
	c.Auth.Username = strings.TrimSpace(c.Auth.Username)
	c.Auth.Password = os.Getenv("TONIE_PASSWORD")
}

func (c *Config) normalizeAcquire() {
	c.Acquire.Downloader = strings.TrimSpace(c.Acquire.Downloader)
	c.Acquire.Transcoder = strings.TrimSpace(c.Acquire.Transcoder)
	if c.Acquire.Downloader == "" {
		c.Acquire.Downloader = defaultDownloader
	}
	if c.Acquire.Transcoder == "" {
		c.Acquire.Transcoder = defaultTranscoder
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
