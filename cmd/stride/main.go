// Package main provides the stride CLI.
package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/born-ml/stride/internal/codec"
	"github.com/born-ml/stride/internal/worksheet"
)

const version = "v0.1.0"

var errMissingArgument = errors.New("missing argument")

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "stride"
	app.Usage = "Evaluate and inspect strided tensor worksheets"
	app.Version = version
	app.Writer = out

	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		cli.BoolFlag{Name: "no-table", Usage: "Render plain text instead of tables"},
	}

	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:  "version",
			Usage: "Show version",
			Action: func(c *cli.Context) error {
				_, err := io.WriteString(c.App.Writer, "stride "+version+"\n")
				return err
			},
		},
		{
			Name:      "eval",
			Usage:     "Evaluate a worksheet and print its outputs",
			ArgsUsage: "<worksheet.yaml>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "output,o", Usage: "Write the outputs as a bundle to this file"},
				cli.StringFlag{Name: "format,f", Usage: "Bundle format (msgpack or yaml); defaults to the output file extension"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return errMissingArgument
				}
				return runEval(c.App.Writer, c.Args().Get(0), c.String("output"), c.String("format"), c.GlobalBool("no-table"))
			},
		},
		{
			Name:      "inspect",
			Usage:     "Print the tensors stored in a bundle",
			ArgsUsage: "<bundle>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "format,f", Usage: "Bundle format (msgpack or yaml); defaults to the file extension"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					return errMissingArgument
				}
				return runInspect(c.App.Writer, c.Args().Get(0), c.String("format"), c.GlobalBool("no-table"))
			},
		},
	}
	return app
}

func runEval(out io.Writer, path, outputPath, formatName string, plain bool) error {
	ws, err := worksheet.Load(path)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"worksheet": path,
		"steps":     len(ws.Steps),
	}).Debug("Loaded worksheet")

	outs, err := worksheet.Eval(ws, logrus.StandardLogger())
	if err != nil {
		return err
	}
	if err := renderOutputs(out, outs, plain); err != nil {
		return err
	}

	if outputPath == "" {
		return nil
	}
	format, err := resolveFormat(outputPath, formatName)
	if err != nil {
		return err
	}
	if err := writeBundle(outputPath, worksheet.Bundle(outs), format); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": outputPath, "format": format}).Info("Wrote bundle")
	return nil
}

func runInspect(out io.Writer, path, formatName string, plain bool) error {
	format, err := resolveFormat(path, formatName)
	if err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // G304: path comes from the command line.
	if err != nil {
		return errors.Wrap(err, "open bundle")
	}
	defer f.Close()

	b, err := codec.Decode(f, format)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}
	return renderBundle(out, b, plain)
}

func resolveFormat(path, name string) (codec.Format, error) {
	if name == "" {
		return codec.FormatForPath(path), nil
	}
	return codec.ParseFormat(name)
}

func writeBundle(path string, b *codec.Bundle, format codec.Format) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: path comes from the command line.
	if err != nil {
		return errors.Wrap(err, "create bundle")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "close bundle")
		}
	}()
	return codec.Encode(f, b, format)
}
