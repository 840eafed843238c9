package config

// Config is the top-level crashlens configuration, corresponding to .crashlens.yml.
type Config struct {
	Data              string   `yaml:"data" koanf:"data"`
	DefaultSeverities []string `yaml:"default_severities" koanf:"default_severities"`
	Output            string   `yaml:"output" koanf:"output"`
	Listen            string   `yaml:"listen" koanf:"listen"`
	AllowedOrigins    []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	Title             string   `yaml:"title" koanf:"title"`
	AssetsHost        string   `yaml:"assets_host,omitempty" koanf:"assets_host"` // echarts script host, empty for the CDN default
}
