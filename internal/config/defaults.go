package config

const (
	defaultBaseURL              = "https://api.tonie.cloud/v2"
	defaultTokenURL             = "https://login.tonies.com/auth/realms/tonies/protocol/openid-connect/token"
	defaultClientID             = "my-tonies"
	defaultOrigin               = "toniecloud-go"
	defaultStagingDir           = "~/.local/share/tonie/staging"
	defaultDownloader           = "yt-dlp"
	defaultTranscoder           = "ffmpeg"
	defaultLogDir               = "~/.local/share/tonie/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:  defaultBaseURL,
			TokenURL: defaultTokenURL,
			ClientID: defaultClientID,
			Origin:   defaultOrigin,
		},
		Acquire: Acquire{
			StagingDir: defaultStagingDir,
			Downloader: defaultDownloader,
			Transcoder: defaultTranscoder,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Uploads:        true,
			Removals:       true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			LogDir: defaultLogDir,
		},
	}
}
