package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is everything one seeding run needs.
type Config struct {
	Provider string

	Host     string
	Port     int
	User     string
	Password string
	DBName   string

	Locations int
	Employees int

	AutoCreate bool
	DontClean  bool
	Continuous bool

	// Seed fixes the fake data; zero means random.
	Seed uint64
}

// raw mirrors the resolved option values before validation. Numbers are
// kept as strings so a bad value gets its own message.
type raw struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"dbname"`
	Locations  string `mapstructure:"locations"`
	Employees  string `mapstructure:"employees"`
	Auto       bool   `mapstructure:"auto"`
	DontClean  bool   `mapstructure:"dontclean"`
	Continuous bool   `mapstructure:"continuous"`
	Seed       string `mapstructure:"seed"`
}

type ErrorKind int

const (
	// Invalid is a value that is present but unusable.
	Invalid ErrorKind = iota
	// Missing is a required value nobody supplied.
	Missing
)

type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalid(field, msg string) *Error { return &Error{Kind: Invalid, Field: field, Message: msg} }
func missing(field, msg string) *Error { return &Error{Kind: Missing, Field: field, Message: msg} }

// Load resolves the run configuration from v, which already has flags,
// environment and config file bound.
func Load(v *viper.Viper, provider string) (*Config, error) {
	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return nil, invalid("", fmt.Sprintf("Failed to read configuration: %v", err))
	}

	cfg := &Config{
		Provider:   provider,
		Host:       strings.TrimSpace(r.Host),
		User:       r.User,
		Password:   r.Password,
		DBName:     r.DBName,
		AutoCreate: r.Auto,
		DontClean:  r.DontClean,
		Continuous: r.Continuous,
	}

	var err error
	if cfg.Locations, err = strconv.Atoi(strings.TrimSpace(r.Locations)); err != nil {
		return nil, invalid("locations", "Locations count must be an integer.")
	}
	if cfg.Employees, err = strconv.Atoi(strings.TrimSpace(r.Employees)); err != nil {
		return nil, invalid("employees", "Employee count must be an integer.")
	}

	switch {
	case r.User == "":
		return nil, missing("user", "You have to specify a database user either by environment variable or pass one in with the -u flag.")
	case r.Password == "":
		return nil, missing("password", "You have to specify a database password either by environment variable or pass one in with the -p flag.")
	case r.DBName == "":
		return nil, missing("dbname", "You have to specify a database name either by environment variable or pass one in with the -D flag.")
	case strings.TrimSpace(r.Port) == "":
		return nil, missing("port", "You have to specify a database port either by environment variable or pass one in with the -P flag.")
	}

	if cfg.Port, err = strconv.Atoi(strings.TrimSpace(r.Port)); err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, invalid("port", "Port must be an integer between 1 and 65535.")
	}

	if s := strings.TrimSpace(r.Seed); s != "" {
		if cfg.Seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, invalid("seed", "Seed must be a non-negative integer.")
		}
	}

	return cfg, nil
}
