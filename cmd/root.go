package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spellcast",
	Short: "Terminal client for SpellCast chat servers",
	Long: `spellcast is a terminal client for SpellCast chat servers.

It keeps a live roster of everyone in the room, renders the shared
message feed, and speaks the server's JSON frame protocol over a
websocket.

Run 'spellcast onboard' once to pick a display name and server, then
'spellcast connect' to join the room.`,
}

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
