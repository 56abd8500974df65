package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"

	"github.com/oy3o/sccodec/format"
	"github.com/oy3o/sccodec/logging"
	"github.com/oy3o/sccodec/schema"
)

// formats are the encodings accepted by --from and --to.
var formats = []string{"wire", "nested", "cbor", "msgpack", "yaml"}

// codecFor returns the codec of the named format for values of t.
// Decoding is bounded by maxDecode bytes.
func codecFor(name string, t *schema.Type, maxDecode int) (format.Codec[any], error) {
	var c format.Codec[any]
	switch name {
	case "wire":
		c = format.Wire{T: t}
	case "nested":
		c = format.WireNested{T: t}
	case "cbor":
		c = format.Literal{T: t, Inner: format.MustCBOR[any](true)}
	case "msgpack":
		c = format.Literal{T: t, Inner: format.Msgpack[any]{}}
	case "yaml":
		c = yamlLiteral{format.Literal{T: t, Inner: format.YAML[any]{}}}
	default:
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(formats, ", "))
	}
	return format.Limit[any]{Inner: c, MaxDecode: maxDecode}, nil
}

// yamlLiteral decodes with schema.ParseLiteral so that unquoted 0x byte
// strings and integers wider than 64 bits keep their text.
type yamlLiteral struct {
	format.Literal
}

func (c yamlLiteral) Decode(b []byte) (any, error) { return schema.ParseLiteral(c.T, string(b)) }

// parseInput reads a command-line payload: text for yaml, hex otherwise.
func parseInput(name, arg string) ([]byte, error) {
	if name == "yaml" {
		return []byte(arg), nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(arg), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}

func printOutput(cmd *cobra.Command, name string, b []byte) {
	if name == "yaml" {
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
}

func newEncodeCmd(a *app) *cobra.Command {
	var (
		nested bool
		digest bool
	)
	cmd := &cobra.Command{
		Use:   "encode <type> <literal>",
		Short: "Encode a YAML literal and print the bytes as hex",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schema.Parse(args[0])
			if err != nil {
				return err
			}
			v, err := schema.ParseLiteral(t, args[1])
			if err != nil {
				return err
			}

			name := "wire"
			if nested {
				name = "nested"
			}
			c, err := codecFor(name, t, a.cfg.Limits.MaxDecode)
			if err != nil {
				return err
			}
			b, err := c.Encode(v)
			if err != nil {
				return err
			}
			a.log.Debug("encoded", logging.Fields{"type": t.String(), "form": name, "bytes": len(b)})

			printOutput(cmd, "wire", b)
			if digest {
				sum := blake3.Sum256(b)
				fmt.Fprintf(cmd.OutOrStdout(), "blake3: %s\n", hex.EncodeToString(sum[:]))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&nested, "nested", false, "use the nested (self-delimiting) encoding")
	cmd.Flags().BoolVar(&digest, "digest", false, "also print the BLAKE3-256 digest of the encoding")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var nested bool
	cmd := &cobra.Command{
		Use:   "decode <type> <hex>",
		Short: "Decode hex bytes and print the value as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from := "wire"
			if nested {
				from = "nested"
			}
			return a.transcode(cmd, args[0], args[1], from, "yaml")
		},
	}
	cmd.Flags().BoolVar(&nested, "nested", false, "input is in the nested (self-delimiting) encoding")
	return cmd
}

func newTranscodeCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "transcode <type> <input>",
		Short: "Convert a value between wire, nested, cbor, msgpack and yaml",
		Long: `Convert a value between encodings. Input and output are hex, except
for yaml which is text.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transcode(cmd, args[0], args[1], from, to)
		},
	}
	cmd.Flags().StringVar(&from, "from", "wire", "input format")
	cmd.Flags().StringVar(&to, "to", "cbor", "output format")
	return cmd
}

func (a *app) transcode(cmd *cobra.Command, typ, input, from, to string) error {
	t, err := schema.Parse(typ)
	if err != nil {
		return err
	}
	src, err := codecFor(from, t, a.cfg.Limits.MaxDecode)
	if err != nil {
		return err
	}
	dst, err := codecFor(to, t, a.cfg.Limits.MaxDecode)
	if err != nil {
		return err
	}
	in, err := parseInput(from, input)
	if err != nil {
		return err
	}
	out, err := format.Transcode(in, src, dst)
	if err != nil {
		return err
	}
	a.log.Debug("transcoded", logging.Fields{"type": t.String(), "from": from, "to": to, "in": len(in), "out": len(out)})
	printOutput(cmd, to, out)
	return nil
}
