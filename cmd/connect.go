package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"spellcast/bus"
	"spellcast/channel"
	"spellcast/config"
	"spellcast/logger"
	"spellcast/protocol"
	"spellcast/room"
	"spellcast/tui"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Join the chat room",
	Long: `Connect to the configured SpellCast server and join the room.

With a terminal attached this opens the full-screen chat UI. Without
one, or with --plain, it falls back to a line mode that reads outgoing
messages from stdin and prints the room to stdout.

Examples:
  spellcast connect                         # use config.yaml
  spellcast connect --name morgana          # override the display name
  spellcast connect --server ws://host/ws   # override the server
  spellcast connect --plain < script.txt    # line mode, good for pipes`,
	RunE: runConnect,
}

var (
	connectServer string
	connectName   string
	connectPlain  bool
)

func init() {
	connectCmd.Flags().StringVar(&connectServer, "server", "", "Websocket URL of the chat server (overrides config)")
	connectCmd.Flags().StringVar(&connectName, "name", "", "Display name to register as (overrides config)")
	connectCmd.Flags().BoolVar(&connectPlain, "plain", false, "Line mode instead of the full-screen UI")
	rootCmd.AddCommand(connectCmd)
}

func runConnect(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	serverURL := strings.TrimSpace(connectServer)
	if serverURL == "" {
		serverURL = cfg.Server.URL
	}
	name := strings.TrimSpace(connectName)
	if name == "" {
		name = strings.TrimSpace(cfg.User.Name)
	}

	eventBus := bus.NewBus(100)
	defer eventBus.Close()

	ch, err := channel.NewWebSocket(serverURL, eventBus)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := ch.Start(ctx); err != nil {
		return fmt.Errorf("connect to %s: %w", serverURL, err)
	}
	defer func() {
		if err := ch.Stop(); err != nil {
			logger.Error("error stopping channel", "err", err)
		}
	}()

	if connectPlain || !term.IsTerminal(int(os.Stdin.Fd())) {
		return runPlain(ctx, cancel, name, ch, eventBus)
	}
	return runTUI(ctx, name, ch, eventBus)
}

// runTUI owns the terminal. The logger is intercepted into the status
// bar, and bus events are forwarded into the program's update loop.
func runTUI(ctx context.Context, name string, ch channel.Channel, eventBus *bus.Bus) error {
	app := tui.NewApp(name, ch)
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	logger.Intercept(tui.LogWriter{Program: program})
	defer logger.Restore()

	frameSub := eventBus.Subscribe(bus.EventFrameReceived, func(_ context.Context, event *bus.Event) {
		var p bus.FramePayload
		if err := event.ParseData(&p); err != nil {
			logger.Warn("bad frame payload", "err", err)
			return
		}
		program.Send(tui.FrameMsg{Text: p.Text})
	})
	defer eventBus.Unsubscribe(frameSub)

	upSub := eventBus.Subscribe(bus.EventChannelUp, func(_ context.Context, event *bus.Event) {
		var p bus.StatusPayload
		if err := event.ParseData(&p); err != nil {
			return
		}
		program.Send(tui.ChannelUpMsg{Attempt: p.Attempt})
	})
	defer eventBus.Unsubscribe(upSub)

	downSub := eventBus.Subscribe(bus.EventChannelDown, func(_ context.Context, event *bus.Event) {
		var p bus.StatusPayload
		if err := event.ParseData(&p); err != nil {
			return
		}
		program.Send(tui.ChannelDownMsg{Reason: p.Reason})
	})
	defer eventBus.Unsubscribe(downSub)

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// runPlain is the line mode used for pipes and terminals we can't draw
// on. Incoming frames print to stdout; stdin lines go to the room.
func runPlain(ctx context.Context, cancel context.CancelFunc, name string, ch channel.Channel, eventBus *bus.Bus) error {
	if name == "" {
		return fmt.Errorf("no display name: pass --name or run 'spellcast onboard' first")
	}

	r := room.New(name, ch)

	frameSub := eventBus.Subscribe(bus.EventFrameReceived, func(_ context.Context, event *bus.Event) {
		var p bus.FramePayload
		if err := event.ParseData(&p); err != nil {
			return
		}
		if changed, err := r.HandleRaw(p.Text); err != nil || !changed {
			return
		}
		frame, err := protocol.Decode(p.Text)
		if err != nil {
			return
		}
		switch frame.Kind {
		case protocol.KindUsers:
			fmt.Println("-- in room:", strings.Join(frame.Names, ", "))
		case protocol.KindMessage:
			msgs := r.Messages()
			if len(msgs) > 0 {
				last := msgs[len(msgs)-1]
				fmt.Printf("%s: %s\n", last.Sender, last.Body)
			}
		}
	})
	defer eventBus.Unsubscribe(frameSub)

	upSub := eventBus.Subscribe(bus.EventChannelUp, func(_ context.Context, _ *bus.Event) {
		if err := r.Register(); err != nil {
			logger.Warn("re-register failed", "err", err)
		}
	})
	defer eventBus.Unsubscribe(upSub)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	fmt.Printf("connected as %s; type to chat, /quit to leave\n", name)

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				cancel()
				return nil
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if text == "exit" || text == "quit" || text == "/exit" || text == "/quit" {
				fmt.Println("Goodbye!")
				return nil
			}
			if err := r.Submit(line); err != nil {
				logger.Warn("message not sent", "err", err)
			}
		}
	}
}
