package config

func DefaultConfig() *Config {
	return &Config{
		Preview: Preview{
			Engine: "gonum",
			Format: "png",
			Output: "preview.png",
			Series: 4,
			Points: 50,
		},
		Check: Check{
			MaxConcurrent: 4,
		},
		Watch: Watch{
			ReloadsPerSecond: 2,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}
