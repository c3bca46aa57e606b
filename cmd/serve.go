package cmd

import (
	"context"
	"github.com/leighmacdonald/tracks/api"
	"github.com/leighmacdonald/tracks/config"
	"github.com/leighmacdonald/tracks/library"
	"github.com/leighmacdonald/tracks/store"
	"github.com/leighmacdonald/tracks/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"net/http"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API and serve requests",
	Long:  `Start the API and serve requests`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		storeCfg := config.GetStoreConfig()
		ts, err := store.NewStore(storeCfg)
		if err != nil {
			log.Fatalf("Failed to setup track store (%s): %s", storeCfg.Type, err)
		}
		lib, err2 := library.New(library.Opts{
			Tracks:      ts,
			SeedEnabled: config.GetBool(config.SeedEnabled),
			SeedPath:    util.FindFile(config.GetString(config.SeedPath)),
		})
		if err2 != nil {
			log.Fatalf("Failed to load seed data: %s", err2)
		}

		opts := api.DefaultHTTPOpts()
		opts.ListenAddr = config.GetString(config.APIListen)
		opts.UseTLS = config.GetBool(config.APITLS)
		opts.CertFile = config.GetString(config.APITLSCert)
		opts.KeyFile = config.GetString(config.APITLSKey)
		opts.Handler = api.NewAPIHandler(lib)
		srv := api.NewHTTPServer(opts)

		go func() {
			log.Infof("Listening on %s (store: %s)", opts.ListenAddr, lib.StoreName())
			if err := api.ListenAndServe(srv, opts); err != nil && err != http.ErrServerClosed {
				log.Fatalf("listen: %s", err)
			}
		}()

		util.WaitForSignal(ctx, func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return lib.Close()
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
