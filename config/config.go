package config

import (
	"os"

	"github.com/anyproto/any-sync/app"
	"gopkg.in/yaml.v3"

	"github.com/shopbeat/shopbeat-push-server/api"
	"github.com/shopbeat/shopbeat-push-server/db"
	"github.com/shopbeat/shopbeat-push-server/registry"
	"github.com/shopbeat/shopbeat-push-server/scheduler"
	"github.com/shopbeat/shopbeat-push-server/sender/provider/fcm"
)

const CName = "config"

func NewFromFile(path string) (c *Config, err error) {
	c = &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return
}

type Config struct {
	Mongo     db.Mongo         `yaml:"mongo"`
	FCM       fcm.Config       `yaml:"fcm"`
	Registry  registry.Config  `yaml:"registry"`
	Scheduler scheduler.Config `yaml:"scheduler"`
	API       api.Config       `yaml:"api"`
}

func (c *Config) Init(a *app.App) (err error) {
	return nil
}

func (c *Config) Name() (name string) {
	return CName
}

func (c *Config) GetMongo() db.Mongo {
	return c.Mongo
}

func (c *Config) GetFCM() fcm.Config {
	return c.FCM
}

func (c *Config) GetRegistry() registry.Config {
	return c.Registry
}

func (c *Config) GetScheduler() scheduler.Config {
	return c.Scheduler
}

func (c *Config) GetAPI() api.Config {
	return c.API
}
