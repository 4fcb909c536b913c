// ABOUTME: Command-line front end for the codec: encode/decode a JSON value against a JSON5 schema
// ABOUTME: Flag layout and app wiring follow the urfave/cli app-with-subcommands shape
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/binwire/bincode"
	"github.com/binwire/bincode/descriptor"
	"github.com/binwire/bincode/schema"
)

func main() {
	app := &cli.App{
		Name:  "bincodec",
		Usage: "encode and decode values against a schema-registered bincode type",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log schema loading and registry detail to stderr"},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "schema", Aliases: []string{"s"}, Required: true, Usage: "path to a JSON5 schema document"},
		&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Required: true, Usage: "registered type name to encode/decode as"},
		&cli.BoolFlag{Name: "varint", Usage: "use varint-coded lengths, discriminants and integers"},
		&cli.IntFlag{Name: "max-tuple-size", Usage: "override the schema's max_tuple_size"},
	}
}

func loadSchema(c *cli.Context) (*schema.Registry, bincode.Options, error) {
	reg := schema.NewRegistry()
	maxTupleSize, err := schema.LoadFile(reg, c.String("schema"))
	if err != nil {
		return nil, bincode.Options{}, err
	}
	if c.IsSet("max-tuple-size") {
		maxTupleSize = c.Int("max-tuple-size")
	}
	log.Debugf("loaded schema %s (fingerprint %s, max_tuple_size=%d)", c.String("schema"), reg.Fingerprint(), maxTupleSize)
	return reg, bincode.Options{Varint: c.Bool("varint"), MaxTupleSize: maxTupleSize}, nil
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "read a JSON value from stdin, write its wire bytes (hex) to stdout",
		Flags:     commonFlags(),
		ArgsUsage: " ",
		Action: func(c *cli.Context) error {
			reg, opts, err := loadSchema(c)
			if err != nil {
				return err
			}
			dec := json.NewDecoder(os.Stdin)
			dec.UseNumber()
			var raw interface{}
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("read JSON value from stdin: %w", err)
			}
			desc := descriptor.UserRef(c.String("type"))
			value, err := jsonToValue(reg, raw, desc)
			if err != nil {
				return fmt.Errorf("convert JSON to %s: %w", c.String("type"), err)
			}
			out, err := bincode.Encode(reg, value, desc, opts)
			if err != nil {
				return err
			}
			log.Debugf("encoded %s into %d byte(s)", c.String("type"), len(out))
			fmt.Fprintln(os.Stdout, hex.EncodeToString(out))
			fmt.Fprintln(os.Stderr, green("encode ok"))
			return nil
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "read wire bytes (hex) from stdin, write a JSON value to stdout",
		Flags:     commonFlags(),
		ArgsUsage: " ",
		Action: func(c *cli.Context) error {
			reg, opts, err := loadSchema(c)
			if err != nil {
				return err
			}
			var hexInput bytes.Buffer
			if _, err := hexInput.ReadFrom(os.Stdin); err != nil {
				return fmt.Errorf("read hex input from stdin: %w", err)
			}
			data, err := hex.DecodeString(strings.TrimSpace(hexInput.String()))
			if err != nil {
				return fmt.Errorf("decode hex input: %w", err)
			}
			desc := descriptor.UserRef(c.String("type"))
			value, rest, err := bincode.Decode(reg, data, desc, opts)
			if err != nil {
				return err
			}
			if len(rest) > 0 {
				fmt.Fprintln(os.Stderr, yellow(fmt.Sprintf("warning: %d trailing byte(s) ignored", len(rest))))
			}
			out, err := valueToJSON(reg, value, desc)
			if err != nil {
				return fmt.Errorf("convert %s to JSON: %w", c.String("type"), err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}

