package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
	"github.com/farmai/farmai/backend/internal/config"
	"github.com/farmai/farmai/backend/internal/service/ai"
	"github.com/farmai/farmai/backend/internal/service/chat"
)

var (
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var (
	plantName string
	delay     time.Duration
)

func main() {
	root := &cobra.Command{
		Use:   "farmchat",
		Short: "Chat with the FarmAI assistant from the terminal",
		Long: `farmchat runs the scripted farm assistant in-process.

Type a question and press enter. Commands:
  /quick <id>   press a quick reply button
  /photo <url>  attach a photo
  /quit         leave`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc, err := newChatService(ctx, delay)
			if err != nil {
				return err
			}
			return runREPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), svc, plantName)
		},
	}
	root.PersistentFlags().StringVarP(&plantName, "plant", "p", config.DefaultPlantName, "plant the conversation is about")
	root.Flags().DurationVar(&delay, "delay", config.DefaultReplyDelay, "artificial thinking delay before each reply")

	root.AddCommand(askCmd(), quickRepliesCmd(), topicsCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply := advisor.Respond(strings.Join(args, " "), plantName)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
}

func quickRepliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick-replies",
		Short: "List the quick reply buttons",
		RunE: func(cmd *cobra.Command, args []string) error {
			printQuickReplies(cmd.OutOrStdout())
			return nil
		},
	}
}

func topicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the advice topics in match order with their trigger words",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, rule := range advisor.Rules() {
				fmt.Fprintf(out, "%-12s %s\n", rule.Topic, hintStyle.Render(strings.Join(rule.Triggers, ", ")))
			}
			return nil
		},
	}
}

func newChatService(ctx context.Context, delay time.Duration) (*chat.Service, error) {
	aiService, err := ai.NewService(ctx, config.AssistantConfig{HistoryLimit: config.DefaultHistoryLimit})
	if err != nil {
		return nil, err
	}
	return chat.NewService(aiService, chat.WithReplyDelay(delay)), nil
}

func runREPL(ctx context.Context, in io.Reader, out io.Writer, svc *chat.Service, plant string) error {
	session, err := svc.CreateSession(ctx, "", plant)
	if err != nil {
		return err
	}

	transcript, err := svc.LoadTranscript(ctx, session.ID)
	if err != nil {
		return err
	}
	for _, msg := range transcript {
		printAssistant(out, msg.Text)
	}
	fmt.Fprintln(out, hintStyle.Render("Quick replies: /quick care|water|disease|fertilizer|market|weather|sunlight"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, userStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var exchange chat.Exchange
		switch {
		case line == "/quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/quick"):
			exchange, err = svc.SendQuickReply(ctx, session.ID, strings.TrimSpace(strings.TrimPrefix(line, "/quick")))
			if err == nil {
				fmt.Fprintln(out, hintStyle.Render("> "+exchange.Message.Text))
			}
		case strings.HasPrefix(line, "/photo"):
			if _, err = svc.UploadPhoto(ctx, session.ID, strings.TrimSpace(strings.TrimPrefix(line, "/photo"))); err == nil {
				fmt.Fprintln(out, hintStyle.Render("photo attached"))
				continue
			}
		default:
			fmt.Fprintln(out, hintStyle.Render("thinking..."))
			exchange, err = svc.Send(ctx, session.ID, line)
		}

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
			continue
		}
		printAssistant(out, exchange.Reply.Text)
	}
}

func printAssistant(out io.Writer, text string) {
	fmt.Fprintln(out, assistantStyle.Render("assistant>"), text)
}

func printQuickReplies(out io.Writer) {
	for _, reply := range advisor.QuickReplies() {
		fmt.Fprintf(out, "%-12s %s\n", reply.ID, hintStyle.Render(reply.Label))
	}
}
