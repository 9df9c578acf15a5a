package database

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/officefaker/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/officefaker/internal/database/postgres"
)

// Providers lists the accepted provider names.
var Providers = []string{"mysql", "postgres", "postgresql", "pg"}

func NewDialect(provider string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres", "pg":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s. Supported providers: %v", provider, Providers)
	}
}
