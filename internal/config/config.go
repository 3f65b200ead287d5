package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ProjectID              string
	Region                 string
	LogLevel               string
	Port                   int
	DatabaseURL            string
	DatabasePasswordSecret string
	RedisAddr              string
	RedisPassword          string
	KPICacheTTL            time.Duration
	CORSOrigins            []string
	AuthEnabled            bool
}

func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOGLEVEL", "info")
	v.SetDefault("PORT", 8080)
	v.SetDefault("KPICACHETTL", "60s")
	v.SetDefault("AUTHENABLED", true)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ProjectID:              v.GetString("PROJECTID"),
		Region:                 v.GetString("REGION"),
		LogLevel:               v.GetString("LOGLEVEL"),
		Port:                   v.GetInt("PORT"),
		DatabaseURL:            v.GetString("DATABASEURL"),
		DatabasePasswordSecret: v.GetString("DATABASEPASSWORDSECRET"),
		RedisAddr:              v.GetString("REDISADDR"),
		RedisPassword:          v.GetString("REDISPASSWORD"),
		KPICacheTTL:            v.GetDuration("KPICACHETTL"),
		CORSOrigins:            splitOrigins(v.GetString("CORSORIGINS")),
		AuthEnabled:            v.GetBool("AUTHENABLED"),
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
