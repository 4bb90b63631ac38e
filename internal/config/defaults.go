package config

const (
	defaultConfigPath             = "~/.config/emustation/config.toml"
	defaultStateDir               = "~/.local/share/emustation"
	defaultLogDir                 = "~/.local/share/emustation/logs"
	defaultPlatformMapPath        = "~/.config/emustation/platforms.json"
	defaultSteamGridDBBaseURL     = "https://www.steamgriddb.com/api/v2"
	defaultSteamGridDBUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultSteamGridDBTimeout     = 10
	defaultSteamGridDBDownload    = 15
	defaultSteamGridDBConcurrency = 1
	maxSteamGridDBConcurrency     = 16
	defaultLaunchOptions          = "#rom"
	defaultRequireTag             = "[v0]"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// RomPlaceholder is substituted with the quoted ROM path in launch options.
const RomPlaceholder = "#rom"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:        defaultStateDir,
			LogDir:          defaultLogDir,
			PlatformMapPath: defaultPlatformMapPath,
		},
		SteamGridDB: SteamGridDB{
			BaseURL:                defaultSteamGridDBBaseURL,
			UserAgent:              defaultSteamGridDBUserAgent,
			TimeoutSeconds:         defaultSteamGridDBTimeout,
			DownloadTimeoutSeconds: defaultSteamGridDBDownload,
			Concurrency:            defaultSteamGridDBConcurrency,
		},
		Shortcuts: Shortcuts{
			LaunchOptions: defaultLaunchOptions,
			FetchArtwork:  true,
		},
		Scanner: Scanner{
			Extensions: []string{".nsp"},
			RequireTag: defaultRequireTag,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
