package config

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config is the top-level navchart configuration, corresponding to .navchart.yml.
type Config struct {
	Input        string       `yaml:"input" koanf:"input"`
	Sheet        string       `yaml:"sheet" koanf:"sheet"`
	OutputDir    string       `yaml:"output_dir" koanf:"output_dir"`
	SiteTitle    string       `yaml:"site_title" koanf:"site_title"`
	IntroFile    string       `yaml:"intro_file" koanf:"intro_file"`
	SidebarDepth int          `yaml:"sidebar_depth" koanf:"sidebar_depth"`
	Chart        ChartConfig  `yaml:"chart" koanf:"chart"`
	Server       ServerConfig `yaml:"server" koanf:"server"`
	Log          LogConfig    `yaml:"log" koanf:"log"`
}

// ChartConfig holds the org chart options embedded in each section page.
type ChartConfig struct {
	VerticalDepth int    `yaml:"vertical_depth" koanf:"vertical_depth"`
	Depth         int    `yaml:"depth" koanf:"depth"`
	AssetBaseURL  string `yaml:"asset_base_url" koanf:"asset_base_url"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}
