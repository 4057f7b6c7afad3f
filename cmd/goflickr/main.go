// Command goflickr is a small command line client for the photo-sharing
// REST API, mostly useful to check credentials and proxies.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Options contains the options you can set from the CLI.
type Options struct {
	APIKey   string
	Endpoint string
	HomeDir  string
	Page     int
	PerPage  int
	Perms    string
	Proxy    string
	Secret   string
	Tags     []string
	Timeout  int64
	UserID   string
	Verbose  bool
}

func main() {
	rootCmd := newRootCommand(&Options{}, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\n     %s %s\n\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// newRootCommand creates the root command. Logs and results go to w.
func newRootCommand(globalOptions *Options, w io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "goflickr",
		Short:         "goflickr calls the photo-sharing REST API",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	flags := rootCmd.PersistentFlags()

	flags.StringVar(
		&globalOptions.APIKey,
		"api-key",
		"",
		"API key to use (overrides the saved one)",
	)

	flags.StringVar(
		&globalOptions.Endpoint,
		"endpoint",
		"",
		"URL of the REST endpoint you want to use",
	)

	flags.StringVar(
		&globalOptions.HomeDir,
		"home",
		"",
		"force specific home directory",
	)

	flags.StringVar(
		&globalOptions.Proxy,
		"proxy",
		"",
		"set proxy URL to communicate with the API (http, https or socks5)",
	)

	flags.StringVar(
		&globalOptions.Secret,
		"secret",
		"",
		"shared secret used to sign requests (overrides the saved one)",
	)

	flags.Int64Var(
		&globalOptions.Timeout,
		"timeout",
		0,
		"maximum runtime in seconds of each call (zero means infinite)",
	)

	flags.BoolVarP(
		&globalOptions.Verbose,
		"verbose",
		"v",
		false,
		"increase verbosity level",
	)

	registerEcho(rootCmd, globalOptions, w)
	registerLogin(rootCmd, globalOptions, w)
	registerPerson(rootCmd, globalOptions, w)
	registerPhoto(rootCmd, globalOptions, w)
	registerSearch(rootCmd, globalOptions, w)
	registerTag(rootCmd, globalOptions, w)
	registerAuth(rootCmd, globalOptions, w)
	return rootCmd
}
