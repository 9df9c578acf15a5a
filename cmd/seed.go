package cmd

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/officefaker/internal/config"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/common"
	"github.com/Lumos-Labs-HQ/officefaker/internal/db"
	"github.com/Lumos-Labs-HQ/officefaker/internal/faker"
	"github.com/Lumos-Labs-HQ/officefaker/internal/schema"
	"github.com/Lumos-Labs-HQ/officefaker/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSeedCmd(a *app, provider, short string, aliases []string) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:     provider,
		Aliases: aliases,
		Short:   short,
		Long: fmt.Sprintf(`%s with fake office locations and employees.

Connection failures are retried with a growing wait before giving up. If the
database doesn't exist you are asked whether to create it, unless --auto is set.`, short),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSeed(cmd, provider)
		},
	}

	defaultPort := 0
	if dialect, err := a.newDialect(provider); err == nil {
		defaultPort = dialect.DefaultPort()
	}
	registerOptions(seedCmd.Flags(), defaultPort)
	return seedCmd
}

func (a *app) runSeed(cmd *cobra.Command, provider string) error {
	v := viper.New()
	if err := bindOptions(v, cmd.Flags()); err != nil {
		return err
	}
	if err := a.readConfigFile(v); err != nil {
		return err
	}

	cfg, err := config.Load(v, provider)
	if err != nil {
		return err
	}

	dialect, err := a.newDialect(provider)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	manager := db.New(db.Options{
		Dialect: dialect,
		Params: common.ConnParams{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
		},
		Database:   cfg.DBName,
		AutoCreate: cfg.AutoCreate,
		Confirm:    a.confirm,
		Sleep:      a.sleep,
		Out:        a.out,
	})

	conn, err := manager.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tables := []common.Table{dialect.LocationTable(), dialect.EmployeeTable()}
	provisioner := schema.NewProvisioner(dialect, a.out)
	for _, table := range tables {
		if err := provisioner.Provision(ctx, conn, table, !cfg.DontClean); err != nil {
			return err
		}
	}

	s := seeder.NewSeeder(conn, seeder.Options{
		Dialect: dialect,
		Faker:   faker.NewGenerator(cfg.Seed),
		Stream:  cfg.Continuous,
		Sleep:   a.sleep,
		Out:     a.out,
	})

	cyan := color.New(color.FgCyan)
	cyan.Fprintf(a.out, "🌱 Beginning data creation of %d locations\n", cfg.Locations)
	locStats, err := s.SeedLocations(ctx, cfg.Locations)
	if err != nil {
		return err
	}

	cyan.Fprintln(a.out, "🌱 Finished creating locations and beginning to create employee records")
	empStats, err := s.SeedEmployees(ctx, cfg.Locations, cfg.Employees)
	if err != nil {
		return err
	}
	cyan.Fprintln(a.out, "🌱 Finished creating employee records")

	return a.printSummary(ctx, s, dialect, locStats, empStats)
}

func (a *app) printSummary(ctx context.Context, s *seeder.Seeder, dialect database.Dialect, locStats, empStats seeder.Stats) error {
	if skipped := locStats.Failed + empStats.Failed; skipped > 0 {
		color.New(color.FgYellow).Fprintf(a.out, "⚠️  %d row(s) could not be inserted and were skipped\n", skipped)
	}

	counts, err := s.Summary(ctx, dialect.LocationTable().Name, dialect.EmployeeTable().Name)
	if err != nil {
		// Rows are already committed at this point.
		color.New(color.FgYellow).Fprintf(a.out, "⚠️  Could not count rows: %v\n", err)
		return nil
	}

	green := color.New(color.FgGreen)
	green.Fprintln(a.out, "\n✅ Database seeding completed successfully!")
	for _, c := range counts {
		fmt.Fprintf(a.out, "   %-10s %d rows\n", c.Table, c.Rows)
	}
	return nil
}
