package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// option is one setting of a seeding run. Every option has a flag and an
// environment variable; numbers are taken as strings and validated later.
type option struct {
	key   string
	short string
	env   string
	def   string
	bool  bool
	usage string
}

var options = []option{
	{key: "host", short: "h", env: "SQL_HOST", def: "127.0.0.1", usage: "Host of the database instance."},
	{key: "port", short: "P", env: "DB_PORT", usage: "Port of the database instance. Defaults to the engine's port."},
	{key: "user", short: "u", env: "DB_USER", usage: "Database user."},
	{key: "password", short: "p", env: "DB_PASS", usage: "The database user's password."},
	{key: "dbname", short: "D", env: "DB_NAME", usage: "Name of the database to fill."},
	{key: "locations", short: "l", env: "LOCATIONS", def: "8", usage: "Number of office locations to create."},
	{key: "employees", short: "e", env: "EMPLOYEES", def: "8", usage: "Number of employees per location."},
	{key: "auto", short: "a", env: "AUTO_CREATE", bool: true, usage: "Create the database without asking if it doesn't exist."},
	{key: "dontclean", short: "n", env: "DONT_CLEAN", bool: true, usage: "Keep existing tables and rows instead of recreating them."},
	{key: "continuous", short: "c", env: "CONTINUOUS", bool: true, usage: "Stream employees slowly instead of inserting as fast as possible."},
	{key: "seed", env: "FAKER_SEED", def: "0", usage: "Seed for reproducible fake data. 0 picks a random seed."},
}

func registerOptions(fs *pflag.FlagSet, defaultPort int) {
	for _, o := range options {
		if o.bool {
			fs.BoolP(o.key, o.short, false, o.usage)
			continue
		}
		def := o.def
		if o.key == "port" {
			def = strconv.Itoa(defaultPort)
		}
		fs.StringP(o.key, o.short, def, o.usage)
	}
}

// bindOptions wires every option's flag and environment variable into v.
func bindOptions(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, o := range options {
		if err := v.BindPFlag(o.key, fs.Lookup(o.key)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", o.key, err)
		}
		if err := v.BindEnv(o.key, o.env); err != nil {
			return fmt.Errorf("failed to bind env %s: %w", o.env, err)
		}
	}
	return nil
}
