package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	DefaultSemesters = []string{"12/1", "12/2", "13/1", "13/2"}
	DefaultSubjects  = []string{
		"Mathematik", "Deutsch", "Englisch", "Geschichte", "Sozialkunde",
		"Biologie", "Chemie", "Physik", "Informatik", "Religion",
		"Ethik", "Sport", "Kunst", "Musik", "Wirtschaft",
	}
)

type (
	Config struct {
		Env                       string
		Debug                     bool
		TestMode                  bool
		AppName                   string
		Build                     string
		SecretKey                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		RollbarToken              string
		Semesters                 []string
		DefaultSubjects           []string
		MaxAttachmentSize         int
		Server                    ServerConfig
		Database                  DatabaseConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		BodyLimit       string
		AllowOrigins    []string
	}

	DatabaseConfig struct {
		URL           string
		Engine        string
		Host          string
		Port          string
		User          string
		Password      string
		Name          string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

func (dbc DatabaseConfig) Address() string {
	return net.JoinHostPort(dbc.Host, dbc.Port)
}

// NewConfig reads the configuration of the current ENV from defaults, config/.env.<env> and the environment.
// Environment variables are prefixed with the ENV name, e.g. DEV_SECRETKEY.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "GradeTracker")
	conf.SetDefault("build", "develop")
	conf.SetDefault("secretKey", "wq7n-ga%c!v0u3l=xrk(5j2+t9z&s6h#e1p@b8d4m$yfo)i_")
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 30*24*time.Hour)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("semesters", DefaultSemesters)
	conf.SetDefault("defaultSubjects", DefaultSubjects)
	conf.SetDefault("maxAttachmentSize", 5_000_000)

	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddress", ":3000")
	conf.SetDefault("serverDebugHost", ":4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("serverBodyLimit", "10M")
	conf.SetDefault("serverAllowOrigins", []string{"*"})

	conf.SetDefault("databaseURL", "")
	conf.SetDefault("dbEngine", "postgres")
	conf.SetDefault("dbHost", "localhost")
	conf.SetDefault("dbPort", "5432")
	conf.SetDefault("dbUser", "gradetracker")
	conf.SetDefault("dbPassword", "gradetracker")
	conf.SetDefault("dbName", "gradetracker")
	conf.SetDefault("dbAdminUser", "postgres")
	conf.SetDefault("dbAdminPassword", "")
	conf.SetDefault("dbDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if root, ok := Getwd(); ok {
		dotEnvPath := filepath.Join(root, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	return &Config{
		Env:                       env,
		Debug:                     conf.GetBool("debug"),
		TestMode:                  conf.GetBool("testMode"),
		AppName:                   conf.GetString("appName"),
		Build:                     conf.GetString("build"),
		SecretKey:                 conf.GetString("secretKey"),
		JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
		JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		RollbarToken:              conf.GetString("rollbarToken"),
		Semesters:                 conf.GetStringSlice("semesters"),
		DefaultSubjects:           conf.GetStringSlice("defaultSubjects"),
		MaxAttachmentSize:         conf.GetInt("maxAttachmentSize"),
		Server: ServerConfig{
			Host:            conf.GetString("serverHost"),
			Address:         conf.GetString("serverAddress"),
			DebugHost:       conf.GetString("serverDebugHost"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
			BodyLimit:       conf.GetString("serverBodyLimit"),
			AllowOrigins:    conf.GetStringSlice("serverAllowOrigins"),
		},
		Database: DatabaseConfig{
			URL:           conf.GetString("databaseURL"),
			Engine:        conf.GetString("dbEngine"),
			Host:          conf.GetString("dbHost"),
			Port:          conf.GetString("dbPort"),
			User:          conf.GetString("dbUser"),
			Password:      conf.GetString("dbPassword"),
			Name:          conf.GetString("dbName"),
			AdminUser:     conf.GetString("dbAdminUser"),
			AdminPassword: conf.GetString("dbAdminPassword"),
			DisableTLS:    conf.GetBool("dbDisableTLS"),
		},
	}
}
