package main

import (
	"fmt"

	"github.com/voidshard/jobgate/pkg/auth"
)

const (
	docMigrate     = `Create / update the api key tables`
	docMigrateLong = `Runs database migrations for the postgres credential registry.`
)

type optsMigrate struct {
	optsGeneral
	optsDatabase
}

func (c *optsMigrate) Execute(args []string) error {
	log := c.logger()
	if c.DatabaseURL == "" {
		return fmt.Errorf("--database-url is required")
	}
	err := auth.Migrate(c.postgres())
	if err != nil {
		return err
	}
	log.Info("migrations complete")
	return nil
}
