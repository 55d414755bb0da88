package genai

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const apiKeyEnv = "GEMINI_API_KEY"

// ErrNoCredential is returned when no API key can be located. It is fatal to
// the whole run: no scenes are attempted without a credential.
var ErrNoCredential = fmt.Errorf("%s not set and no .env candidate found", apiKeyEnv)

// ResolveAPIKey finds the API key from the environment, else from the first
// existing file among the candidate .env paths.
func ResolveAPIKey() (string, error) {
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key, nil
	}

	home := os.Getenv("HOME")
	candidates := []string{
		filepath.Join(home, ".config", "vangen", ".env"),
		filepath.Join(home, ".vangen", ".env"),
		".env",
	}

	for _, path := range candidates {
		if key, ok := keyFromEnvFile(path, apiKeyEnv); ok {
			return key, nil
		}
	}

	return "", ErrNoCredential
}

// keyFromEnvFile scans a KEY=value file for the named key. Surrounding quotes
// are stripped; missing files report ok=false rather than an error.
func keyFromEnvFile(path, name string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	prefix := name + "="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		value := strings.TrimPrefix(line, prefix)
		value = strings.Trim(value, `"'`)
		if value != "" {
			return value, true
		}
	}

	return "", false
}
