// this package is used for utility to environment variables for getting, setting, etc...
// get_env.go is file to about getting environment

package env

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"os"
)

var ErrMissingEnv = errors.New("required environment variable is not set")

// get environment variable from local & return ErrMissingEnv if not exist
func GetRequired(name string) (env string, err error) {
	if env = os.Getenv(name); env == "" {
		err = fmt.Errorf("%w, please set %s in environment variables", ErrMissingEnv, name)
	}
	return
}

// load variables in dotenv file into process environment, variables already set are not overridden
func LoadFile(path string) (err error) {
	if path == "" {
		return
	}
	if err = godotenv.Load(path); err != nil {
		err = fmt.Errorf("unable to load env file %s, err: %v", path, err)
	}
	return
}
