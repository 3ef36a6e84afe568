package internal

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

func GenerateId() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// Envs builds the configuration map handed to every Configure. Values from
// the env files (if any exist) are loaded first and the process environment
// is laid on top, so an exported variable always wins over a file.
func Envs(environ []string, envFiles ...string) (map[string]string, error) {
	envs := make(map[string]string)
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		fileEnvs, err := godotenv.Read(envFile)
		if err != nil {
			return nil, errors.Wrapf(err, "error while reading env file %s", envFile)
		}
		for key, value := range fileEnvs {
			envs[key] = value
		}
	}
	for _, env := range environ {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
	return envs, nil
}
