package main

import (
	"time"

	"github.com/voidshard/jobgate/pkg/worker"
)

const (
	docWorker     = `Run jobgate background worker`
	docWorkerLong = `Processes queued jobs & calls each job's webhook_url when it is done.`
)

type optsWorker struct {
	optsGeneral
	optsQueue

	Concurrency    int           `long:"concurrency" env:"CONCURRENCY" default:"10" description:"Number of jobs to process at once"`
	WebhookTimeout time.Duration `long:"webhook-timeout" env:"WEBHOOK_TIMEOUT" default:"10s" description:"Timeout for webhook calls"`
}

func (c *optsWorker) Execute(args []string) error {
	log := c.logger()

	qu, err := c.queue(log, c.Concurrency)
	if err != nil {
		return err
	}
	defer qu.Close()

	w := worker.New(&worker.Options{Timeout: c.WebhookTimeout, Logger: log})
	err = qu.Register(w.Handle)
	if err != nil {
		return err
	}

	// blocks until we're signalled
	return qu.Run()
}
