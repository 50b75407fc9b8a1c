package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expoadmin/applog"
	"expoadmin/dict"
	"expoadmin/form"
	"expoadmin/gcal"
)

const logName = "expoadmin.log"

var (
	dictFile string
	logFile  string
	logger   = applog.Discard()
)

var rootCmd = &cobra.Command{
	Use:           "expoadmin",
	Short:         "Exhibition admin forms in the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := logFile
		if path == "" {
			p, err := gcal.Path(logName)
			if err != nil {
				return err
			}
			path = p
		}
		l, err := applog.New(path)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dictFile, "dict", "", "TOML dictionary file merged over the built-in dictionaries")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (default ~/.config/expoadmin/"+logName+")")
}

// loadDictionaries merges the user's dictionary file, from --dict or the
// config, over the built-in set.
func loadDictionaries(cfg *gcal.Config) (*dict.Set, error) {
	base, err := dict.Default()
	if err != nil {
		return nil, err
	}
	path := dictFile
	if path == "" && cfg != nil {
		path = cfg.DictFile
	}
	if path == "" {
		return base, nil
	}
	user, err := dict.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return base.Merge(user), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, form.ErrCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
