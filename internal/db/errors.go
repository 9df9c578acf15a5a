package db

import (
	"errors"
	"fmt"
)

// ErrDeclined is returned when the operator refuses to create a missing database.
var ErrDeclined = errors.New("The database doesn't exist and you've chosen to not create it.")

type CreateDatabaseError struct {
	Database string
	Err      error
}

func (e *CreateDatabaseError) Error() string {
	return fmt.Sprintf("Wasn't able to create the database %s: %v", e.Database, e.Err)
}

func (e *CreateDatabaseError) Unwrap() error { return e.Err }

// GiveUpError means the backoff ran out before the server became reachable.
type GiveUpError struct {
	Attempts int
	Err      error
}

func (e *GiveUpError) Error() string {
	return fmt.Sprintf("Giving up on connecting to the database after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GiveUpError) Unwrap() error { return e.Err }

// FatalError wraps a connection failure that retrying cannot fix.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("failed to connect to database: %v", e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }
