package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/0xsequence/fastabi/ethcoder"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(NewFunctionsCmd())
}

func NewFunctionsCmd() *cobra.Command {
	functions := &functions{}
	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the functions of a contract with their selectors",
		Args:  cobra.NoArgs,
		RunE:  functions.Run,
	}

	addSchemaFlags(cmd)
	cmd.Flags().String("filter", "", "only list functions whose name contains this text")

	return cmd
}

type functions struct {
}

func (c *functions) Run(cmd *cobra.Command, args []string) error {
	fFilter, err := cmd.Flags().GetString("filter")
	if err != nil {
		return err
	}

	coder, err := loadCoder(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, fn := range coder.Functions() {
		if fFilter != "" && !strings.Contains(strings.ToLower(fn.Name), strings.ToLower(fFilter)) {
			continue
		}
		selector := fn.Selector()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ethcoder.HexEncode(selector[:]), fn.Key, fn.String(), fn.StateMutability)
	}
	return w.Flush()
}
