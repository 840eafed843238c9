package config

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".crashlens.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Data:              "data.json",
		DefaultSeverities: []string{"Severe", "Fatal"},
		Output:            "dashboard.html",
		Listen:            ":8080",
		AllowedOrigins:    []string{"*"},
		Title:             "London road accidents",
	}
}
