package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"spellcast/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize spellcast configuration",
	Long:  `Create the spellcast configuration directory and default config file.`,
	RunE:  runOnboard,
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}

func runOnboard(_ *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Config already exists at:", configPath)
		fmt.Println("To reconfigure, edit the file directly or delete it first.")
		return nil
	}

	// --- interactive wizard ---

	cfg := config.DefaultConfig()
	var (
		name      string
		serverURL = cfg.Server.URL
	)

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Display name").
				Description("How the room will see you.").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a name is required")
					}
					return nil
				}).
				Value(&name),
			huh.NewInput().
				Title("Server URL").
				Description("Websocket endpoint of the chat server.").
				Validate(validateServerURL).
				Value(&serverURL),
		),
	).Run()
	if err != nil {
		return err
	}

	// --- apply and save ---

	cfg.User.Name = strings.TrimSpace(name)
	cfg.Server.URL = strings.TrimSpace(serverURL)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("spellcast initialized successfully!")
	fmt.Println()
	fmt.Println("  Config:", configPath)
	fmt.Println("  Name:  ", cfg.User.Name)
	fmt.Println("  Server:", cfg.Server.URL)
	fmt.Println()
	fmt.Println("Run 'spellcast connect' to join the room.")
	return nil
}

func validateServerURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("URL must start with ws:// or wss://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL needs a host")
	}
	return nil
}
