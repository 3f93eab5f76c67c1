package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env.local and .env from dir. Existing process
// environment variables are never overwritten, and .env.local wins over .env.
func loadEnvFiles(dir string) error {
	var found []string
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return os.ErrNotExist
	}
	return godotenv.Load(found...)
}
