package config

const (
	defaultConfigPath          = "~/.config/creditscores/config.toml"
	defaultDataDir             = "~/.local/share/creditscores"
	defaultLogDir              = "~/.local/share/creditscores/logs"
	defaultAPIBind             = "127.0.0.1:5000"
	defaultServerURL           = "http://127.0.0.1:5000"
	defaultReadTimeoutSeconds  = 15
	defaultWriteTimeoutSeconds = 30
	defaultClientTimeout       = 10
	defaultNotificationSeconds = 6
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	databaseFileName = "creditscores.db"
	lockFileName     = "creditscored.lock"
)

var defaultCORSOrigins = []string{"http://localhost:3000"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	origins := make([]string, len(defaultCORSOrigins))
	copy(origins, defaultCORSOrigins)
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Server: Server{
			Bind:                defaultAPIBind,
			CORSOrigins:         origins,
			ReadTimeoutSeconds:  defaultReadTimeoutSeconds,
			WriteTimeoutSeconds: defaultWriteTimeoutSeconds,
		},
		Client: Client{
			ServerURL:           defaultServerURL,
			TimeoutSeconds:      defaultClientTimeout,
			NotificationSeconds: defaultNotificationSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
