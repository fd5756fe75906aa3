package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/client"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/config"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/chatlog"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/username"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/storage"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
)

// app is the client-side state shared by every subcommand.
type app struct {
	api     *client.Client
	logs    *chatlog.Store
	names   *username.Store
	closeFn func() error
}

func newApp(apiURL string, ls storage.LocalStorage) *app {
	a := &app{
		api:   client.New(apiURL),
		logs:  chatlog.New(ls),
		names: username.New(ls),
	}
	a.logs.EnsureLoaded()
	a.names.EnsureLoaded()
	return a
}

func (a *app) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

var (
	apiURL      string
	storagePath string
	current     *app
)

var rootCmd = &cobra.Command{
	Use:   "calmcounsel",
	Short: "Talk with the calmcounsel counselor from the terminal",
	Long: `calmcounsel keeps a local conversation log, sends it to the calmcounsel API
and stores the counselor's replies next to your own messages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadClient()
		if err != nil {
			return err
		}
		log.Init(cfg.Log.Level, cfg.Log.Format)

		if !cmd.Flags().Changed("api") {
			apiURL = cfg.APIURL
		}
		if !cmd.Flags().Changed("storage") {
			storagePath = cfg.StoragePath
		}

		ls, err := storage.OpenSQLite(storagePath)
		if err != nil {
			return err
		}
		current = newApp(apiURL, ls)
		current.closeFn = ls.Close
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		log.Sync()
		if current == nil {
			return nil
		}
		return current.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "calmcounsel API base URL (default $CALMCOUNSEL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "local storage file (default $CALMCOUNSEL_STORAGE)")

	rootCmd.AddCommand(chatCmd, logCmd, nameCmd, feedbackCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
