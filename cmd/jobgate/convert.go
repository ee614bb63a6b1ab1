package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/voidshard/jobgate/pkg/schema"
)

const (
	docConvert     = `Convert a form specification into a schema file`
	docConvertLong = `Converts a form specification (JSON) into a schema, written to <schema-dir>/<name>_<type>.json
where <name> is the form spec's file name without extension. Existing files are kept unless --force is given.`
)

var (
	validWord = regexp.MustCompile(`^\w+$`)
)

type optsConvert struct {
	optsSchema

	Force bool `long:"force" description:"Overwrite an existing schema file"`

	Args struct {
		Input string `positional-arg-name:"form-spec" description:"Form specification file"`
		Type  string `positional-arg-name:"type" description:"Schema type (eg. request, response)"`
	} `positional-args:"yes" required:"yes"`

	out io.Writer
}

func (c *optsConvert) Execute(args []string) error {
	if c.out == nil {
		c.out = os.Stdout
	}

	base := strings.TrimSuffix(filepath.Base(c.Args.Input), filepath.Ext(c.Args.Input))
	if !validWord.MatchString(base) {
		return fmt.Errorf("form spec name %q may only contain letters, digits & underscores", base)
	}
	if !validWord.MatchString(c.Args.Type) {
		return fmt.Errorf("type %q may only contain letters, digits & underscores", c.Args.Type)
	}

	data, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return err
	}
	doc, err := schema.FromFormSpec(data)
	if err != nil {
		return err
	}
	out, err := schema.Encode(doc)
	if err != nil {
		return err
	}

	err = os.MkdirAll(c.SchemaDir, 0755)
	if err != nil {
		return err
	}
	path := filepath.Join(c.SchemaDir, fmt.Sprintf("%s_%s.json", base, c.Args.Type))

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0644)
	if os.IsExist(err) {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	} else if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(out, '\n'))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "wrote", path)
	return nil
}
