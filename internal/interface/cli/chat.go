package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/neilberkman/biodish/internal/core/chat"
	"github.com/neilberkman/biodish/internal/core/identity"
	"github.com/neilberkman/biodish/internal/core/translate"
	"github.com/neilberkman/biodish/internal/interface/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat (default)",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lang := displayLanguage(cfg)
	st, err := openStore(cfg, lang)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	model, err := newChatModel(ctx, cfg)
	if err != nil {
		return err
	}

	coordinator := chat.New(st, model)
	synchronizer := translate.New(st, model, cfg.TranslateTimeout)
	go synchronizer.Run(ctx)

	who := identity.NewConfigProvider(cfg.Identity.Name, cfg.Identity.Email)

	app := tui.New(tui.Deps{
		Store:        st,
		Coordinator:  coordinator,
		Synchronizer: synchronizer,
		Identity:     who,
		SendTimeout:  cfg.GenerateTimeout,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}
