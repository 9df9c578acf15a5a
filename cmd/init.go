package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/officefaker/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		postgresqlFlag bool
		mysqlFlag      bool
		force          bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write an officefaker.yaml config template",
		Long: `Write a config file holding the connection settings and row counts, so
runs don't need long command lines. Use --config to pick another path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if postgresqlFlag && mysqlFlag {
				return fmt.Errorf("please specify only one database type (--postgresql or --mysql)")
			}
			provider := "mysql"
			if postgresqlFlag {
				provider = "postgres"
			}

			dialect, err := a.newDialect(provider)
			if err != nil {
				return err
			}

			path := a.cfgFile
			if path == "" {
				path = config.FileName
			}
			if err := config.WriteTemplate(path, config.Template(dialect.DefaultPort()), force); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(a.out, "✅ Wrote %s for %s\n", path, dialect.Name())
			color.New(color.FgCyan).Fprintln(a.out, "📝 Fill in the password, then run: officefaker "+provider)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Write a template for PostgreSQL")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Write a template for MySQL (default)")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return initCmd
}
