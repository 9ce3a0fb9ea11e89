package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	AppName      string
	Build        string
	Debug        bool
	TestMode     bool
	DataFile     string
	RosterFile   string
	LogFormat    string // "" for plain lines, or "text" / "json" for structured logs
	RollbarToken string
}

// NewConfig reads the configuration for the environment named by $ENV
// (DEV by default; TEST, QA, PROD).
// Values come, by increasing priority, from defaults, config/schoolms.yaml,
// config/.env.<env> and the environment ("<ENV>_DATAFILE", ...).
func NewConfig(configDir ...string) (*Config, error) {
	dir := "config"
	if len(configDir) > 0 && configDir[0] != "" {
		dir = configDir[0]
	}

	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "School Management System")
	v.SetDefault("build", "dev")
	v.SetDefault("dataFile", "school_data.json")
	v.SetDefault("rosterFile", "school_roster.csv")
	v.SetDefault("logFormat", "")
	v.SetDefault("rollbarToken", "")

	env := strings.ToUpper(CleanString(os.Getenv("ENV")))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	v.SetConfigName("schoolms")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		DataFile:     v.GetString("dataFile"),
		RosterFile:   v.GetString("rosterFile"),
		LogFormat:    CleanString(v.GetString("logFormat"), true /* lower */),
		RollbarToken: v.GetString("rollbarToken"),
	}, nil
}
