// Command endpointgen generates the typed operations of the requester API
// client from the endpoint catalogue.
package main

import (
	"os"

	"github.com/bacalhau-project/apiclient/internal/endpointgen"
	"github.com/moby/sys/atomicwriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	var in, out, source string
	flags := pflag.NewFlagSet("endpointgen", pflag.ExitOnError)
	flags.StringVar(&in, "in", "api/requester.toml", "Endpoint catalogue to read")
	flags.StringVar(&out, "out", "client/requester_gen.go", "Go file to write")
	flags.StringVar(&source, "source", "", "Catalogue name written in the generated header (default: value of --in)")
	_ = flags.Parse(os.Args[1:])
	if source == "" {
		source = in
	}

	f, err := endpointgen.Load(in)
	if err != nil {
		logrus.Fatal(err)
	}
	src, err := endpointgen.Render(f, source)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := atomicwriter.WriteFile(out, src, 0o644); err != nil {
		logrus.Fatal(err)
	}
	logrus.WithField("endpoints", len(f.Endpoints)).Infof("wrote %s", out)
}
