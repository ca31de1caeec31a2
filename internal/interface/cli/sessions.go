package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/neilberkman/biodish/internal/core/models"
)

var sessionsSince string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, newest first",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one session's conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsListCmd.Flags().StringVar(&sessionsSince, "since", "", `Only sessions updated since a date ("yesterday", "last week", "2025-08-01")`)
	sessionsCmd.AddCommand(sessionsListCmd, sessionsShowCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// parseSince turns a natural-language date into a cutoff time.
func parseSince(s string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if r, err := w.Parse(s, time.Now()); err == nil && r != nil {
		return r.Time, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", s)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, displayLanguage(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var cutoff time.Time
	if sessionsSince != "" {
		cutoff, err = parseSince(sessionsSince)
		if err != nil {
			return err
		}
	}

	sessions := st.Sessions()
	shown := 0
	for _, s := range sessions {
		if !cutoff.IsZero() && s.LastUpdated.Before(cutoff) {
			continue
		}
		fmt.Printf("%-36s  %-32s  %3d msgs  %s\n",
			s.ID, truncate(s.Title, 32), len(s.Messages), humanize.Time(s.LastUpdated))
		shown++
	}
	if shown == 0 {
		fmt.Println("No sessions found.")
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
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

	sess, ok := findSession(st.Sessions(), args[0])
	if !ok {
		return fmt.Errorf("session %q not found", args[0])
	}

	fmt.Printf("%s  (%s)\n\n", sess.Title, humanize.Time(sess.LastUpdated))
	for _, m := range sess.Messages {
		label := "assistant"
		if m.Role == models.RoleUser {
			label = "you"
		}
		if m.Attachment != nil {
			fmt.Printf("[%s] (attachment: %s)\n", label, m.Attachment.MimeType)
		}
		fmt.Printf("[%s] %s\n\n", label, m.DisplayText(lang.Code))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, displayLanguage(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sess, ok := findSession(st.Sessions(), args[0])
	if !ok {
		return fmt.Errorf("session %q not found", args[0])
	}
	st.DeleteSession(sess.ID)
	fmt.Printf("Deleted %s (%s)\n", sess.ID, truncate(sess.Title, 40))
	return nil
}

// findSession matches a full id or an unambiguous prefix.
func findSession(sessions []models.ChatSession, id string) (models.ChatSession, bool) {
	var match models.ChatSession
	found := 0
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
		if strings.HasPrefix(s.ID, id) {
			match = s
			found++
		}
	}
	return match, found == 1
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
