package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/0xsequence/fastabi/ethcontract"
	"github.com/0xsequence/fastabi/sonic"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(NewDecodeInputCmd())
	rootCmd.AddCommand(NewDecodeOutputCmd())
}

func NewDecodeInputCmd() *cobra.Command {
	decode := &decode{}
	cmd := &cobra.Command{
		Use:   "decode-input",
		Short: "Decode call data, selector included",
		Example: `  fastabi decode-input --abi ERC20.abi.json --fn transfer --data 0xa9059cbb...
  fastabi decode-input --abi ERC20.abi.json --data 0xa9059cbb... --data 0x70a08231...`,
		Args: cobra.NoArgs,
		RunE: decode.Run,
	}
	addDecodeFlags(cmd)
	cmd.Flags().Lookup("fn").Usage = "function name, overload key or signature, found by selector when empty"
	return cmd
}

func NewDecodeOutputCmd() *cobra.Command {
	decode := &decode{output: true}
	cmd := &cobra.Command{
		Use:   "decode-output",
		Short: "Decode the return data of a function call",
		Args:  cobra.NoArgs,
		RunE:  decode.Run,
	}
	addDecodeFlags(cmd)
	return cmd
}

func addDecodeFlags(cmd *cobra.Command) {
	addSchemaFlags(cmd)
	cmd.Flags().String("fn", "", "function name, overload key or signature")
	cmd.Flags().StringArray("data", nil, "hex data to decode, repeat to decode several payloads")
	cmd.Flags().Bool("tokens", false, "dump the typed token tree instead of json values")
	cmd.Flags().Bool("pretty", false, "indent the json output")
}

type decode struct {
	output bool
}

func (c *decode) Run(cmd *cobra.Command, args []string) error {
	fFn, err := cmd.Flags().GetString("fn")
	if err != nil {
		return err
	}
	fData, err := cmd.Flags().GetStringArray("data")
	if err != nil {
		return err
	}
	fTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return err
	}
	fPretty, err := cmd.Flags().GetBool("pretty")
	if err != nil {
		return err
	}

	if len(fData) == 0 {
		return errors.New("error: please pass --data")
	}
	if c.output && fFn == "" {
		return errors.New("error: please pass --fn")
	}

	coder, err := loadCoder(cmd)
	if err != nil {
		return err
	}

	results := make([]string, len(fData))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, data := range fData {
		g.Go(func() error {
			out, err := c.decode(coder, fFn, data, fTokens, fPretty)
			if err != nil {
				if len(fData) > 1 {
					return fmt.Errorf("data %d: %w", i, err)
				}
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range results {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

func (c *decode) decode(coder *ethcontract.Coder, fn string, data string, tokens, pretty bool) (string, error) {
	prefix := ""
	if fn == "" {
		selector, _, err := ethcoder.SplitCallData(data)
		if err != nil {
			return "", err
		}
		f, err := coder.FunctionBySelector(selector)
		if err != nil {
			return "", err
		}
		fn = f.Signature()
		prefix = fn + " "
	}

	if tokens {
		var (
			toks []ethcoder.Token
			err  error
		)
		if c.output {
			toks, err = coder.DecodeOutputTokens(fn, data)
		} else {
			toks, err = coder.DecodeInputTokens(fn, data)
		}
		if err != nil {
			return "", err
		}
		return prefix + spewConfig.Sdump(toks), nil
	}

	var (
		values []any
		err    error
	)
	if c.output {
		values, err = coder.DecodeOutput(fn, data)
	} else {
		values, err = coder.DecodeInput(fn, data)
	}
	if err != nil {
		return "", err
	}

	var out []byte
	if pretty {
		out, err = sonic.Config.MarshalIndent(values, "", "  ")
	} else {
		out, err = sonic.Config.Marshal(values)
	}
	if err != nil {
		return "", err
	}
	return prefix + string(out), nil
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}
