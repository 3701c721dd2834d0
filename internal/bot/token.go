package bot

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvTokenVar is the environment variable holding the bot token.
const EnvTokenVar = "TELEGRAM_BOT_TOKEN"

// ResolveToken finds the bot token: an explicit flag value wins, then
// an explicit env file, then a .env in the working directory.
func ResolveToken(flagToken, envFile string) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err != nil {
			return "", fmt.Errorf("env file %s: %w", envFile, err)
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		if _, err := os.Stat(".env"); err != nil {
			return "", errors.New("provide a Telegram token either as a parameter or in a .env file")
		}
		if err := godotenv.Load(); err != nil {
			return "", fmt.Errorf("failed to load .env: %w", err)
		}
	}

	token := os.Getenv(EnvTokenVar)
	if token == "" {
		return "", fmt.Errorf("could not find %q in env file", EnvTokenVar)
	}
	return token, nil
}
