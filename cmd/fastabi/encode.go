package main

import (
	"errors"
	"fmt"

	"github.com/0xsequence/fastabi/ethcontract"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(NewEncodeCmd())
}

func NewEncodeCmd() *cobra.Command {
	encode := &encode{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode call data for a contract function",
		Example: `  fastabi encode --abi ERC20.abi.json --fn transfer --args '["0x6615e4e985bf0d137196897dfa182dbd7127f54f", "1000"]'
  fastabi encode --artifact ./out --contract Token --fn balanceOf --args '["0x6615e4e985bf0d137196897dfa182dbd7127f54f"]' --output`,
		Args: cobra.NoArgs,
		RunE: encode.Run,
	}

	addSchemaFlags(cmd)
	cmd.Flags().String("fn", "", "function name, overload key or signature (required)")
	cmd.Flags().String("args", "[]", "json array of argument values")
	cmd.Flags().Bool("output", false, "encode return data instead of call data, no selector")
	cmd.Flags().Bool("no-prefix", false, "omit the 0x prefix")

	return cmd
}

type encode struct {
}

func (c *encode) Run(cmd *cobra.Command, args []string) error {
	fFn, err := cmd.Flags().GetString("fn")
	if err != nil {
		return err
	}
	fArgs, err := cmd.Flags().GetString("args")
	if err != nil {
		return err
	}
	fOutput, err := cmd.Flags().GetBool("output")
	if err != nil {
		return err
	}
	fNoPrefix, err := cmd.Flags().GetBool("no-prefix")
	if err != nil {
		return err
	}

	if fFn == "" {
		return errors.New("error: please pass --fn")
	}

	coder, err := loadCoder(cmd)
	if err != nil {
		return err
	}

	var encoded string
	if fOutput {
		values, err := ethcontract.ParseJSONValues([]byte(fArgs))
		if err != nil {
			return err
		}
		encoded, err = coder.EncodeOutput(fFn, values)
		if err != nil {
			return err
		}
	} else {
		encoded, err = coder.EncodeInputJSON(fFn, []byte(fArgs))
		if err != nil {
			return err
		}
	}

	if !fNoPrefix {
		encoded = "0x" + encoded
	}
	fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return nil
}
