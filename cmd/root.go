package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lumos-Labs-HQ/officefaker/internal/config"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "1.0.0"

// app holds what the commands share for one invocation.
type app struct {
	in      io.Reader
	out     io.Writer
	cfgFile string

	newDialect func(provider string) (database.Dialect, error)
	sleep      func(ctx context.Context, d time.Duration) error
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{
		in:         in,
		out:        out,
		newDialect: database.NewDialect,
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "officefaker",
		Short: "Create a simulated office employee data set in MySQL or PostgreSQL",
		Long: `
officefaker fills a database with fake office locations and the employees
working at them. Tables are dropped and recreated on every run unless
--dontclean is passed.

Every option can also be set through an environment variable, a .env file
or an officefaker.yaml config file. Flags win over environment variables,
which win over the config file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadDotEnv(a.out)
		},
	}

	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.out)

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	// -h belongs to --host, so help only gets the long form.
	rootCmd.PersistentFlags().Bool("help", false, "Show this help message and exit.")

	rootCmd.AddCommand(
		newSeedCmd(a, "mysql", "Seed a MySQL database", nil),
		newSeedCmd(a, "postgres", "Seed a PostgreSQL database", []string{"pg", "postgresql"}),
		newInitCmd(a),
	)
	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stdout)
	err := newRootCmd(a).ExecuteContext(ctx)
	return report(a.out, err)
}

// loadDotEnv reads .env.local and then .env. Variables already present in
// the environment are never overridden.
func loadDotEnv(out io.Writer) {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			color.New(color.FgYellow).Fprintf(out, "⚠️  Ignoring %s: %v\n", file, err)
		}
	}
}

// readConfigFile loads --config, or ./officefaker.yaml when present.
func (a *app) readConfigFile(v *viper.Viper) error {
	switch {
	case a.cfgFile != "":
		v.SetConfigFile(a.cfgFile)
	case config.IsInitialized("."):
		v.SetConfigFile(config.FileName)
	default:
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return &config.Error{Kind: config.Invalid, Field: "config", Message: "Failed to read config file: " + err.Error()}
	}
	return nil
}
