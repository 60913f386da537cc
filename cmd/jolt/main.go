// Package main provides the CLI entry point for jolt, a tool that
// converts values between YAML, plain JSON, and the Jolt wire encoding.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/jolt"
	"go.jacobcolvin.com/jolt/joltschema"
	"go.jacobcolvin.com/jolt/joltyaml"
	"go.jacobcolvin.com/jolt/log"
	"go.jacobcolvin.com/jolt/version"
)

func main() {
	logCfg := log.NewConfig()
	encCfg := jolt.NewConfig()

	var inputFormat, outputFormat string

	rootCmd := &cobra.Command{
		Use:   "jolt",
		Short: "Convert values between YAML, JSON, and the Jolt wire encoding",
		Long: `jolt encodes values into the Jolt wire format (self-describing JSON for a
property-graph value system) and decodes Jolt payloads back into plain
representations.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return nil
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	encodeCmd := &cobra.Command{
		Use:   "encode [flags] [file]",
		Short: "Encode a YAML or Jolt/JSON document as Jolt text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			return runEncode(encCfg, inputFormat, data)
		},
	}

	encCfg.RegisterFlags(encodeCmd.Flags())
	encodeCmd.Flags().StringVarP(&inputFormat, "format", "f", "yaml",
		"input format, one of: yaml, jolt")

	decodeCmd := &cobra.Command{
		Use:   "decode [flags] [file]",
		Short: "Decode Jolt text into YAML or canonical Jolt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := readInput(args)
			if err != nil {
				return err
			}

			return runDecode(encCfg, outputFormat, data)
		},
	}

	encCfg.RegisterFlags(decodeCmd.Flags())
	decodeCmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml",
		"output format, one of: yaml, jolt")

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print a JSON Schema for the Jolt wire format",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(joltschema.Wire(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}

			fmt.Println(string(out))

			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("jolt " + version.Short())
		},
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd, schemaCmd, versionCmd)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// readInput reads the single file argument, or stdin when the argument is
// absent or "-".
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

// runEncode parses the input document as a value and prints its Jolt
// encoding. Jolt input re-encodes through the decoder, which
// canonicalizes the text under the configured options.
func runEncode(cfg *jolt.Config, format string, data []byte) error {
	var (
		v   jolt.Value
		err error
	)

	switch format {
	case "yaml":
		v, err = joltyaml.Load(data)
	case "jolt", "json":
		v, err = jolt.Decode(string(data))
	default:
		return fmt.Errorf("unknown input format %q", format)
	}

	if err != nil {
		return err
	}

	text, err := cfg.NewEncoder().Encode(v)
	if err != nil {
		return err
	}

	fmt.Println(text)

	return nil
}

// runDecode decodes Jolt text and prints the value as YAML or as
// canonical Jolt.
func runDecode(cfg *jolt.Config, format string, data []byte) error {
	v, g, err := jolt.DecodeGraph(string(data))
	if err != nil {
		return err
	}

	if g != nil {
		slog.Debug("decoded graph elements alongside root value")
	}

	switch format {
	case "yaml":
		out, dumpErr := joltyaml.Dump(v)
		if dumpErr != nil {
			return dumpErr
		}

		fmt.Print(string(out))

		return nil

	case "jolt", "json":
		text, encErr := cfg.NewEncoder().Encode(v)
		if encErr != nil {
			return encErr
		}

		fmt.Println(text)

		return nil
	}

	return fmt.Errorf("unknown output format %q", format)
}
