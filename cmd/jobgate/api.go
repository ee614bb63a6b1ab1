package main

import (
	"github.com/voidshard/jobgate/pkg/api"
	"github.com/voidshard/jobgate/pkg/api/http/server"
	"github.com/voidshard/jobgate/pkg/auth"
	"github.com/voidshard/jobgate/pkg/schema"
)

const (
	docApi     = `Run the API server`
	docApiLong = `Serves the HTTP API; validates job requests against their schemas & enqueues them for workers.`
)

type optsAPI struct {
	optsGeneral
	optsQueue
	optsRegistry
	optsSchema

	Addr string `long:"addr" env:"ADDR" description:"Address to bind to" default:"localhost:5000"`
}

func (c *optsAPI) Execute(args []string) error {
	// The api server only enqueues; jobs are processed by 'worker'
	log := c.logger()

	qu, err := c.queue(log, 0)
	if err != nil {
		return err
	}
	defer qu.Close()

	reg, closeReg, err := c.registry(log)
	if err != nil {
		return err
	}
	defer closeReg()

	svc, err := api.NewAPI(
		schema.NewStore(schema.NewDirSource(c.SchemaDir), log),
		auth.NewGate(reg),
		qu,
		&api.Options{Logger: log},
	)
	if err != nil {
		return err
	}

	s := server.NewServer(c.Addr, c.Debug, log)
	return s.ServeForever(svc)
}
