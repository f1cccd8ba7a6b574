package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/chatclient"
	"github.com/votuchankinh/thuvien/internal/transcript"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List chat sections on the backend",
	Args:  cobra.NoArgs,
	RunE:  runSections,
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List chat agents on the backend",
	Args:  cobra.NoArgs,
	RunE:  runAgents,
}

var messagesCmd = &cobra.Command{
	Use:   "messages [section-id]",
	Short: "Show the message history of a section",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessages,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the chat backend a question and stream the answer",
	Long: `Sends a question to the chat backend and prints the answer as it streams.
Press Ctrl-C to stop; whatever arrived so far is kept in the local transcript.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past questions from the local transcript",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	sectionsCmd.Flags().Int("offset", chatclient.DefaultOffset, "number of sections to skip")
	sectionsCmd.Flags().Int("limit", chatclient.DefaultSectionLimit, "maximum number of sections")

	agentsCmd.Flags().Int("limit", chatclient.DefaultAgentLimit, "maximum number of agents")
	agentsCmd.Flags().String("language", "", "agent language (default from config)")

	askCmd.Flags().String("session", "", "chat session id (default: a new session)")
	askCmd.Flags().String("agent", "", "agent id to answer")
	askCmd.Flags().String("language", "", "answer language (default from config)")

	historyCmd.Flags().Int("limit", 20, "maximum number of exchanges")
	historyCmd.Flags().String("session", "", "only show exchanges of this session")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(sectionsCmd, agentsCmd, messagesCmd, askCmd, historyCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	client, err := newChatClient(cfg, log)
	if err != nil {
		return err
	}
	offset, _ := cmd.Flags().GetInt("offset")
	limit, _ := cmd.Flags().GetInt("limit")

	sections, err := client.ListSections(cmd.Context(), offset, limit)
	if err != nil {
		return err
	}
	return printJSON(sections)
}

func runAgents(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	client, err := newChatClient(cfg, log)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	lang, _ := cmd.Flags().GetString("language")
	if lang == "" {
		lang = string(cfg.LanguageOrDefault())
	}

	agents, err := client.ListAgents(cmd.Context(), limit, lang)
	if err != nil {
		return err
	}
	return printJSON(agents)
}

func runMessages(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	client, err := newChatClient(cfg, log)
	if err != nil {
		return err
	}

	messages, err := client.ListMessages(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(messages)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	client, err := newChatClient(cfg, log)
	if err != nil {
		return err
	}
	store, database, err := openTranscript(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	session, _ := cmd.Flags().GetString("session")
	if session == "" {
		session = uuid.New().String()
	}
	agent, _ := cmd.Flags().GetString("agent")
	lang, _ := cmd.Flags().GetString("language")
	if lang == "" {
		lang = string(cfg.LanguageOrDefault())
	}
	question := strings.Join(args, " ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Transcript writes must survive Ctrl-C.
	bg := context.WithoutCancel(ctx)
	ex, err := store.Begin(bg, transcript.Exchange{
		SessionID: session,
		AgentID:   agent,
		Language:  lang,
		Question:  question,
	})
	if err != nil {
		return err
	}

	stream, err := client.SendMessage(ctx, chatclient.SendRequest{
		SessionID: session,
		Payload: chatclient.MessagePayload{
			SessionID: session,
			Question:  question,
			AgentID:   agent,
			Language:  lang,
		},
	})
	if err != nil {
		if ferr := store.Finish(bg, ex.ID, "", transcript.StatusFailed, err.Error(), 0); ferr != nil {
			log.Warn("failed to record exchange", zap.Error(ferr))
		}
		return err
	}
	defer stream.Close()

	var answer bytes.Buffer
	_, copyErr := io.Copy(io.MultiWriter(os.Stdout, &answer), stream)
	fmt.Println()

	status := transcript.Outcome(copyErr, stream.Received())
	errMsg := ""
	if copyErr != nil {
		errMsg = copyErr.Error()
	}
	if err := store.Finish(bg, ex.ID, answer.String(), status, errMsg, stream.Received()); err != nil {
		log.Warn("failed to record exchange", zap.Error(err))
	}
	log.Debug("exchange recorded",
		zap.String("id", ex.ID),
		zap.String("session_id", session),
		zap.String("status", string(status)),
	)

	switch status {
	case transcript.StatusComplete:
		fmt.Fprintf(os.Stderr, "session: %s\n", session)
		return nil
	case transcript.StatusAborted:
		fmt.Fprintf(os.Stderr, "aborted after %d bytes (session %s)\n", stream.Received(), session)
		return nil
	default:
		var se *chatclient.StreamError
		if errors.As(copyErr, &se) && se.Received > 0 {
			return fmt.Errorf("answer cut off after %d bytes: %w", se.Received, se.Err)
		}
		return copyErr
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, database, err := openTranscript(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	session, _ := cmd.Flags().GetString("session")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	exchanges, err := store.List(cmd.Context(), transcript.Filter{SessionID: session, Limit: limit})
	if err != nil {
		return err
	}
	if jsonOutput {
		if exchanges == nil {
			exchanges = []transcript.Exchange{}
		}
		return printJSON(exchanges)
	}
	if len(exchanges) == 0 {
		fmt.Println("No exchanges recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSESSION\tSTATUS\tBYTES\tQUESTION")
	for _, ex := range exchanges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			ex.CreatedAt.Local().Format("2006-01-02 15:04"),
			shortID(ex.SessionID),
			ex.Status,
			ex.Bytes,
			truncate(ex.Question, 60),
		)
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-1]) + "…"
}
