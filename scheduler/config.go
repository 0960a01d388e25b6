package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type configSource interface {
	GetScheduler() Config
}

type Config struct {
	Enabled  bool   `yaml:"enabled"`
	Timezone string `yaml:"timezone"`
	At       string `yaml:"at"`
	Title    string `yaml:"title"`
	Body     string `yaml:"body"`
}

const (
	defaultAt    = "17:00"
	defaultTitle = "We are closed"
	defaultBody  = "The shop has closed for today. See you tomorrow!"
)

func (c Config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) fireAt() (hour, minute int, err error) {
	at := c.At
	if at == "" {
		at = defaultAt
	}
	hh, mm, ok := strings.Cut(at, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", at)
	}
	if hour, err = strconv.Atoi(hh); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", at)
	}
	if minute, err = strconv.Atoi(mm); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", at)
	}
	return hour, minute, nil
}

func (c Config) title() string {
	if c.Title == "" {
		return defaultTitle
	}
	return c.Title
}

func (c Config) body() string {
	if c.Body == "" {
		return defaultBody
	}
	return c.Body
}
