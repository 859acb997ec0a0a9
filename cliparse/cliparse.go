package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	GeminiAPIKey  string
	GeminiModel   string
	VoterSalt     string
	MaxBattles    int
	AllowedOrigin string
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("prompt-battle", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.GeminiModel, "model", "", "Gemini model name")
	fs.IntVar(&cfg.MaxBattles, "max-battles", 0, "Battle store capacity")
	fs.StringVar(&cfg.AllowedOrigin, "origin", "", "Allowed CORS origin")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GeminiAPIKey, "api-key", "", "Gemini API key (prefer env)")
	fs.StringVar(&cfg.VoterSalt, "voter-salt", "", "Voter hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3411 // default
		}
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = os.Getenv("GEMINI_MODEL")
	}

	if cfg.MaxBattles == 0 {
		if raw := os.Getenv("MAX_BATTLES"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return Config{}, errors.New("invalid MAX_BATTLES env variable")
			}
			cfg.MaxBattles = n
		}
	}

	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = os.Getenv("ALLOWED_ORIGIN")
	}

	// Secrets - MUST be provided
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		return Config{}, errors.New("GEMINI_API_KEY required")
	}

	if cfg.VoterSalt == "" {
		cfg.VoterSalt = os.Getenv("VOTER_SALT")
	}
	if cfg.VoterSalt == "" {
		return Config{}, errors.New("VOTER_SALT required")
	}

	return cfg, nil
}
