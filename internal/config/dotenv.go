package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv seeds the process environment from optional dotenv files,
// applying .env.local before .env. godotenv.Load never replaces a
// variable the OS environment already defines, so real environment
// settings win over both files. Returns the files that were applied.
func LoadDotEnv() []string {
	var applied []string
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			applied = append(applied, name)
		}
	}
	return applied
}
