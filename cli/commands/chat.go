package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petal-labs/chatstream/core"
	"github.com/petal-labs/chatstream/providers/openai"
)

type chatFlags struct {
	prompt      string
	system      string
	temperature float64
	topP        float64
	maxTokens   int
	n           int
	stop        []string
	user        string
	stream      bool
}

func (a *App) newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat completion request",
		Long: `Send a chat completion request and print the reply.

Examples:
  chatstream chat --model gpt-3.5-turbo --prompt "Hello"
  chatstream chat --prompt "Hello" --stream
  chatstream chat --prompt "Hello" --system "Answer in French" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}

	cmd.Flags().StringVar(&a.chat.prompt, "prompt", "", "User message (required)")
	cmd.Flags().StringVar(&a.chat.system, "system", "", "System message")
	cmd.Flags().Float64Var(&a.chat.temperature, "temperature", 0, "Sampling temperature")
	cmd.Flags().Float64Var(&a.chat.topP, "top-p", 0, "Nucleus sampling mass")
	cmd.Flags().IntVar(&a.chat.maxTokens, "max-tokens", 0, "Max tokens in the reply")
	cmd.Flags().IntVar(&a.chat.n, "n", 0, "Number of choices to generate")
	cmd.Flags().StringArrayVar(&a.chat.stop, "stop", nil, "Stop sequence (repeatable)")
	cmd.Flags().StringVar(&a.chat.user, "user", "", "End-user tag")
	cmd.Flags().BoolVar(&a.chat.stream, "stream", false, "Print the reply as it streams in")

	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

// buildHistory turns flags into a request. Only flags the user set are sent.
func (a *App) buildHistory(cmd *cobra.Command) (core.ChatHistory, error) {
	b := core.NewChatHistoryBuilder()
	if a.chat.system != "" {
		b.System(a.chat.system)
	}
	if a.chat.prompt != "" {
		b.User(a.chat.prompt)
	}
	b.Model(a.model)

	flags := cmd.Flags()
	if flags.Changed("temperature") {
		b.Temperature(a.chat.temperature)
	}
	if flags.Changed("top-p") {
		b.TopP(a.chat.topP)
	}
	if flags.Changed("max-tokens") {
		b.MaxTokens(a.chat.maxTokens)
	}
	if flags.Changed("n") {
		b.N(a.chat.n)
	}
	switch len(a.chat.stop) {
	case 0:
	case 1:
		b.Stop(core.Single(a.chat.stop[0]))
	default:
		b.Stop(core.Many(a.chat.stop...))
	}
	if a.chat.user != "" {
		b.UserTag(a.chat.user)
	}

	return b.Build()
}

func (a *App) runChat(cmd *cobra.Command) error {
	history, err := a.buildHistory(cmd)
	if err != nil {
		return a.handleError(err)
	}

	client, err := a.client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if a.chat.stream {
		return a.runStreamingChat(ctx, client, history)
	}
	return a.runSyncChat(ctx, client, history)
}

func (a *App) runSyncChat(ctx context.Context, client *openai.Client, history core.ChatHistory) error {
	resp, err := client.CreateChatCompletion(ctx, history)
	if err != nil {
		return a.handleError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(resp)
	}

	for i, choice := range resp.Choices {
		if len(resp.Choices) > 1 {
			fmt.Fprintf(a.stdout, "[%d] ", i)
		}
		fmt.Fprintln(a.stdout, choice.Message.Content)
	}
	return nil
}

func (a *App) runStreamingChat(ctx context.Context, client *openai.Client, history core.ChatHistory) error {
	stream, err := client.CreateChatCompletionStream(ctx, history)
	if err != nil {
		return a.handleError(err)
	}
	defer stream.Close()

	var acc core.DeltaAccumulator
	for delta, err := range stream.All() {
		if err != nil {
			if core.IsDecode(err) {
				fmt.Fprintf(a.stderr, "warning: skipped malformed event: %v\n", err)
				continue
			}
			if !a.jsonOutput {
				fmt.Fprintln(a.stdout)
			}
			return a.handleError(err)
		}

		if a.jsonOutput {
			acc.Add(delta)
			continue
		}
		for _, choice := range delta.Choices {
			if choice.Index == 0 && choice.Delta.Content != nil {
				fmt.Fprint(a.stdout, *choice.Delta.Content)
			}
		}
	}

	if a.jsonOutput {
		return a.outputJSON(acc.Response())
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
