package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ehpadacademy/internal/notify"
)

// listenCmd connects the optional notification channel and prints inbound
// messages until interrupted.
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen on the notification channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Notifications.Enabled {
			return fmt.Errorf("notifications are disabled (set notifications.enabled or ACADEMY_NOTIFICATIONS=1)")
		}

		ctx := cmd.Context()
		store, err := initStore(ctx)
		if err != nil {
			return err
		}

		channel := notify.New(cfg.API.BaseURL, logger)
		err = channel.Connect(ctx, store.Token(), func(message map[string]interface{}) {
			fmt.Printf("%v\n", message)
		})
		if err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		defer channel.Close()

		fmt.Printf("Connecté à %s — Ctrl+C pour quitter.\n", notify.URLFromBase(cfg.API.BaseURL))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}
