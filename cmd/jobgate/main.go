package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	envFile = ".env"
)

func main() {
	// settings in a local .env file are used for anything not already set in the environment
	_ = godotenv.Load(envFile)

	parser := flags.NewParser(nil, flags.Default)
	parser.AddCommand("api", docApi, docApiLong, &optsAPI{})
	parser.AddCommand("worker", docWorker, docWorkerLong, &optsWorker{})
	parser.AddCommand("migrate", docMigrate, docMigrateLong, &optsMigrate{})
	parser.AddCommand("validate", docValidate, docValidateLong, &optsValidate{})
	parser.AddCommand("convert", docConvert, docConvertLong, &optsConvert{})

	if _, err := parser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case *flags.Error:
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			os.Exit(1)
		}
	}
}
