// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// hookchat is a terminal client for the AI with Dastgeer webhook backend.
// It signs the user in, then runs a full-screen chat over the backend's
// message, file, image, audio and tool routes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aiwithdastgeer/hookchat/internal/auth"
	"github.com/aiwithdastgeer/hookchat/internal/config"
	"github.com/aiwithdastgeer/hookchat/internal/dispatch"
	"github.com/aiwithdastgeer/hookchat/internal/store"
	"github.com/aiwithdastgeer/hookchat/internal/ui"
	"github.com/aiwithdastgeer/hookchat/internal/webhook"
)

const logName = "hookchat.log"

func main() {
	configPath := flag.String("config", "", "path to the config file")
	logout := flag.Bool("logout", false, "forget the saved login and exit")
	flag.Parse()

	stateDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(stateDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if *logout {
		if err := auth.ClearMarker(stateDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Logged out.")
		return
	}

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Account gate: the chat screen only opens for a signed-in user.
	if !auth.IsLoggedIn(stateDir) {
		flow := auth.NewFlow(auth.NewClient(cfg.Webhooks.AuthBaseURL), stateDir)
		if err := flow.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	client := webhook.NewClientWithConfig(&webhook.ClientConfig{
		BaseURL:   cfg.Webhooks.ChatBaseURL,
		Timeout:   cfg.Timeout(),
		AuthToken: cfg.Webhooks.AuthToken,
	})

	st := store.New()
	disp := dispatch.New(client, st, filepath.Join(stateDir, "media"))

	m := ui.New(st, disp, ui.Options{
		Markdown:     cfg.UI.Markdown,
		SidebarWidth: cfg.UI.SidebarWidth,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Store mutations land on goroutines owned by the dispatcher; Send is
	// safe to call from them.
	disp.OnChange(func(sessionID string) {
		p.Send(ui.SessionChangedMsg{SessionID: sessionID})
	})
	disp.OnNotify(func(n dispatch.Notification) {
		p.Send(ui.NoticeMsg{Text: n.Text, IsErr: n.IsErr})
	})

	// Config edits retarget the chat backend without a restart.
	watcher, err := config.Watch(path, func(c *config.Config) {
		client.SetBaseURL(c.Webhooks.ChatBaseURL)
	})
	if err != nil {
		log.Printf("MAIN: config watch unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running hookchat: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config from an explicit path or the default
// location, returning the path used so the watcher can follow it.
func loadConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.LoadFrom(explicit)
		return cfg, explicit, err
	}
	path, err := config.Path()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load()
	return cfg, path, err
}

// setupLogging sends the standard logger to a file in the state dir; the
// terminal belongs to the UI.
func setupLogging(stateDir string) (func(), error) {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(stateDir, logName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	return func() { f.Close() }, nil
}
