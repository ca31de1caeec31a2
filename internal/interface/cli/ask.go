package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/neilberkman/biodish/internal/core/chat"
	"github.com/neilberkman/biodish/internal/core/i18n"
	"github.com/neilberkman/biodish/internal/core/llm"
)

var askAttach string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question, streaming the reply to stdout",
	Long: `Ask a single question without opening the TUI. The exchange is stored as a
new session, so it shows up in 'biodish sessions list' and in the chat UI.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askAttach, "attach", "", "Attach a file (lab report PDF or image)")
	rootCmd.AddCommand(askCmd)
}

// teeProvider mirrors every fragment to a writer so the reply streams to
// the terminal while the coordinator fills the session as usual.
type teeProvider struct {
	llm.StreamProvider
	w io.Writer
}

func (t teeProvider) StreamGenerate(ctx context.Context, req llm.GenerateRequest, onFragment func(string) error) error {
	return t.StreamProvider.StreamGenerate(ctx, req, func(fragment string) error {
		fmt.Fprint(t.w, fragment)
		return onFragment(fragment)
	})
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	ctx := cmd.Context()
	if cfg.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.GenerateTimeout)
		defer cancel()
	}

	model, err := newChatModel(ctx, cfg)
	if err != nil {
		return err
	}

	coordinator := chat.New(st, teeProvider{StreamProvider: model, w: os.Stdout})
	if _, err := coordinator.Send(ctx, chat.SendRequest{Text: args[0], AttachmentPath: askAttach}); err != nil {
		return err
	}
	fmt.Println()

	if coordinator.State() == chat.StateFailed {
		return fmt.Errorf("%s", i18n.T(lang.Code).ErrorGeneric)
	}
	return nil
}
