package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	VERSION       = "dev"
	GITBRANCH     = "branch"
	GITCOMMIT     = "last commit"
	GITCOMMITDATE = "last change"
)

var rootCmd = &cobra.Command{
	Use:   "fastabi",
	Short: "fastabi - EVM calldata encoder and decoder",
	Long:  banner(),
	Args:  cobra.MinimumNArgs(1),
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "fastabi", version())
		},
	}

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func version() string {
	if GITBRANCH == "master" {
		return fmt.Sprintf("%s (commit:%s %s)", VERSION, GITCOMMIT, GITCOMMITDATE)
	}
	return fmt.Sprintf("%s (commit:%s %s %s)", VERSION, GITCOMMIT, GITCOMMITDATE, GITBRANCH)
}

func banner() string {
	s := ""
	s += `==============================================================` + "\n"
	s += `   __           _        _     _ ` + "\n"
	s += `  / _| __ _ ___| |_ __ _| |__ (_)` + "\n"
	s += ` | |_ / _' / __| __/ _' | '_ \| |` + "\n"
	s += ` |  _| (_| \__ \ || (_| | |_) | |` + "\n"
	s += ` |_|  \__,_|___/\__\__,_|_.__/|_|` + "\n"
	s += "\n"
	s += "================== calldata in, calldata out =================\n"
	return s
}
