package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/voidshard/jobgate/pkg/schema"
)

const (
	docValidate     = `Validate a payload file against a schema file`
	docValidateLong = `Validates a JSON payload file against a schema file offline, printing every error found.
With --example an example payload built from the schema is printed (& checked) instead.`
)

type optsValidate struct {
	Example bool `long:"example" description:"Print an example payload for the schema rather than validating a payload file"`

	Args struct {
		Schema  string `positional-arg-name:"schema" description:"Schema file"`
		Payload string `positional-arg-name:"payload" description:"Payload file"`
	} `positional-args:"yes"`

	out io.Writer
}

func (c *optsValidate) Execute(args []string) error {
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.Args.Schema == "" {
		return fmt.Errorf("a schema file is required")
	}

	data, err := os.ReadFile(c.Args.Schema)
	if err != nil {
		return err
	}
	doc, err := schema.Parse(data)
	if err != nil {
		return err
	}

	var payload map[string]any
	if c.Example {
		payload = schema.Example(doc)
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		err = enc.Encode(payload)
		if err != nil {
			return err
		}
	} else {
		if c.Args.Payload == "" {
			return fmt.Errorf("a payload file is required")
		}
		payload, err = readPayload(c.Args.Payload)
		if err != nil {
			return err
		}
	}

	result, err := schema.Validate(doc, payload)
	if err != nil {
		return err
	}
	if !result.Valid() {
		for _, e := range result.Errors {
			fmt.Fprintln(c.out, e)
		}
		return fmt.Errorf("payload is invalid: %d error(s)", len(result.Errors))
	}

	if !c.Example {
		fmt.Fprintln(c.out, "payload is valid")
	}
	return nil
}

// readPayload reads a JSON object from a file, keeping numbers as json.Number.
func readPayload(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()

	var payload map[string]any
	err = d.Decode(&payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%s: expected a json object", path)
	}
	return payload, nil
}
