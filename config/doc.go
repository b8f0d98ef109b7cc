// Package config loads settings from a YAML file, an optional .env file and
// the environment using viper and godotenv.
//
// Keys come from `mapstructure` tags. Every leaf key can be overridden by an
// environment variable named <PREFIX>_<KEY>, with dots replaced by
// underscores, where PREFIX defaults to the upper-cased name:
//
//	type Settings struct {
//	    BaseURL string        `mapstructure:"base_url"`
//	    Timeout time.Duration `mapstructure:"timeout"`
//	}
//
//	var s Settings
//	err := config.Load("ledger-api", &s) // LEDGER_API_BASE_URL, LEDGER_API_TIMEOUT
package config
