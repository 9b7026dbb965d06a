package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug            bool
	TestMode         bool
	Env              string
	Build            string
	AppName          string
	SecretKey        string
	FrontendBaseURL  string
	DefaultFromEmail mail.Address
	SendgridAPIKey   string
	RollbarToken     string

	Server struct {
		Host                      string
		Addr                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	// Dashboard bounds how many recent records feed each summary.
	// These are recency windows, not architectural limits.
	Dashboard struct {
		RecentLimit      int // recent attendance/marks rows shown
		GradeWindow      int // most-recent marks averaged into AverageGrade
		MarksGroupWindow int // most-recent marks grouped into subject summaries
		MarksGroupLimit  int // grouped rows kept
	}
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("secretKey", "w#r3lv+x@c9$&h2(dz&uoxq7(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("build", "dev")
	conf.SetDefault("frontendBaseURL", "http://localhost:3000")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverDebugHost", "localhost:4000")
	conf.SetDefault("shutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	conf.SetDefault("databaseEngine", "postgres")
	conf.SetDefault("databaseName", "darasa")
	conf.SetDefault("databaseUser", "darasa")
	conf.SetDefault("databasePassword", "")
	conf.SetDefault("databaseAdminUser", "")
	conf.SetDefault("databaseAdminPassword", "")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", "5432")
	conf.SetDefault("databaseDisableTLS", true)

	conf.SetDefault("dashboardRecentLimit", 10)
	conf.SetDefault("dashboardGradeWindow", 10)
	conf.SetDefault("dashboardMarksGroupWindow", 20)
	conf.SetDefault("dashboardMarksGroupLimit", 5)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:           conf.GetBool("debug"),
		TestMode:        env == "TEST",
		Env:             env,
		Build:           conf.GetString("build"),
		AppName:         conf.GetString("appName"),
		SecretKey:       conf.GetString("secretKey"),
		FrontendBaseURL: conf.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		SendgridAPIKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),
	}
	c.Server.Host = conf.GetString("serverHost")
	c.Server.Addr = conf.GetString("serverAddr")
	c.Server.DebugHost = conf.GetString("serverDebugHost")
	c.Server.ShutdownTimeout = conf.GetDuration("shutdownTimeout")
	c.Server.JWTExpirationDelta = conf.GetDuration("jwtExpirationDelta")
	c.Server.JWTRefreshExpirationDelta = conf.GetDuration("jwtRefreshExpirationDelta")

	c.Database.Engine = conf.GetString("databaseEngine")
	c.Database.Name = conf.GetString("databaseName")
	c.Database.User = conf.GetString("databaseUser")
	c.Database.Password = conf.GetString("databasePassword")
	c.Database.AdminUser = conf.GetString("databaseAdminUser")
	c.Database.AdminPassword = conf.GetString("databaseAdminPassword")
	c.Database.Host = conf.GetString("databaseHost")
	c.Database.Port = conf.GetString("databasePort")
	c.Database.DisableTLS = conf.GetBool("databaseDisableTLS")

	c.Dashboard.RecentLimit = conf.GetInt("dashboardRecentLimit")
	c.Dashboard.GradeWindow = conf.GetInt("dashboardGradeWindow")
	c.Dashboard.MarksGroupWindow = conf.GetInt("dashboardMarksGroupWindow")
	c.Dashboard.MarksGroupLimit = conf.GetInt("dashboardMarksGroupLimit")
	return c
}

// DatabaseAddress returns the host:port of the database server.
func (c *Config) DatabaseAddress() string {
	return c.Database.Host + ":" + c.Database.Port
}
