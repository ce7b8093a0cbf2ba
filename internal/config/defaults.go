package config

// DefaultAssetBaseURL serves jQuery OrgChart from a CDN so generated pages need no local assets.
const DefaultAssetBaseURL = "https://cdn.jsdelivr.net/npm/orgchart@3.8.0/dist"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input:        "data/nav.xlsx",
		Sheet:        "Sheet1",
		OutputDir:    "docs",
		SiteTitle:    "Site Navigation",
		SidebarDepth: 2,
		Chart: ChartConfig{
			VerticalDepth: 3,
			Depth:         4,
			AssetBaseURL:  DefaultAssetBaseURL,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}
