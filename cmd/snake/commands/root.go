package commands

import (
	"fmt"
	"os"

	"github.com/gridsnake/engine/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake plays the classic grid snake game in your terminal",
	Version: version.Version,
	PersistentPreRun: func(*cobra.Command, []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	Args: func(c *cobra.Command, args []string) error {
		return playCmd.Args(c, args)
	},
	RunE: func(c *cobra.Command, args []string) error {
		return playCmd.RunE(c, args)
	},
}

var (
	apiAddr string
	verbose bool
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func addAPIAddrFlag(c *cobra.Command) {
	c.Flags().StringVar(&apiAddr, "addr", "http://localhost:3005", "address of the spectator api")
}
