package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"spellcast/bus"
	"spellcast/channel"
	"spellcast/config"
	"spellcast/room"
)

var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Send one message to the room and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

var (
	sendServer string
	sendName   string
)

func init() {
	sendCmd.Flags().StringVar(&sendServer, "server", "", "Websocket URL of the chat server (overrides config)")
	sendCmd.Flags().StringVar(&sendName, "name", "", "Display name to register as (overrides config)")
	rootCmd.AddCommand(sendCmd)
}

func runSend(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	serverURL := strings.TrimSpace(sendServer)
	if serverURL == "" {
		serverURL = cfg.Server.URL
	}
	name := strings.TrimSpace(sendName)
	if name == "" {
		name = strings.TrimSpace(cfg.User.Name)
	}
	if name == "" {
		return fmt.Errorf("no display name: pass --name or run 'spellcast onboard' first")
	}

	eventBus := bus.NewBus(16)
	defer eventBus.Close()

	ch, err := channel.NewWebSocket(serverURL, eventBus)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ch.Start(ctx); err != nil {
		return fmt.Errorf("connect to %s: %w", serverURL, err)
	}
	defer func() { _ = ch.Stop() }()

	r := room.New(name, ch)
	if err := r.Submit(strings.Join(args, " ")); err != nil {
		return err
	}

	fmt.Println("Message sent.")
	return nil
}
