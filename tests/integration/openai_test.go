//go:build integration

package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/petal-labs/chatstream/core"
	"github.com/petal-labs/chatstream/providers/openai"
)

func TestChatCompletion(t *testing.T) {
	client := newClient(t)

	history, err := core.NewChatHistoryBuilder().
		Model(testModel).
		User("Say 'hello' and nothing else.").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, history)
	if err != nil {
		t.Fatalf("CreateChatCompletion: %v", err)
	}
	if resp.ID == "" {
		t.Error("response id is empty")
	}
	if len(resp.Choices) != 1 {
		t.Fatalf("choices = %d, want 1", len(resp.Choices))
	}
	if resp.Choices[0].Message.Role != core.RoleAssistant {
		t.Errorf("role = %q, want assistant", resp.Choices[0].Message.Role)
	}
	if resp.Usage.TotalTokens == 0 {
		t.Error("usage.total_tokens = 0")
	}
	t.Logf("Response: %s", resp.Choices[0].Message.Content)
}

func TestChatCompletionMaxTokens(t *testing.T) {
	client := newClient(t)

	history, err := core.NewChatHistoryBuilder().
		Model(testModel).
		User("Write a long essay about the history of computing.").
		MaxTokens(5).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, history)
	if err != nil {
		t.Fatalf("CreateChatCompletion: %v", err)
	}
	fr := resp.Choices[0].FinishReason
	if fr == nil || *fr != core.FinishReasonLength {
		t.Errorf("finish_reason = %v, want length", fr)
	}
	if resp.Usage.CompletionTokens > 5 {
		t.Errorf("completion_tokens = %d, want <= 5", resp.Usage.CompletionTokens)
	}
}

func TestChatCompletionStream(t *testing.T) {
	client := newClient(t)

	history, err := core.NewChatHistoryBuilder().
		Model(testModel).
		System("You answer with digits only.").
		User("Count from 1 to 5, separated by spaces.").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stream, err := client.CreateChatCompletionStream(ctx, history)
	if err != nil {
		t.Fatalf("CreateChatCompletionStream: %v", err)
	}
	defer stream.Close()

	var acc core.DeltaAccumulator
	for delta, err := range stream.All() {
		if err != nil {
			t.Fatalf("stream: %v", err)
		}
		acc.Add(delta)
	}

	resp := acc.Response()
	if len(resp.Choices) != 1 {
		t.Fatalf("choices = %d, want 1", len(resp.Choices))
	}
	content := resp.Choices[0].Message.Content
	if !strings.Contains(content, "3") {
		t.Errorf("content = %q, want it to contain 3", content)
	}
	if fr := resp.Choices[0].FinishReason; fr == nil || *fr != core.FinishReasonStop {
		t.Errorf("finish_reason = %v, want stop", fr)
	}
	if stream.Delivered() < 2 {
		t.Errorf("delivered = %d, want several deltas", stream.Delivered())
	}
}

func TestInvalidAPIKey(t *testing.T) {
	skipIfNoAPIKey(t)
	client := openai.New("sk-invalid")

	history, _ := core.NewChatHistoryBuilder().Model(testModel).User("hi").Build()
	_, err := client.CreateChatCompletion(context.Background(), history)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}

	var pe *core.ProviderError
	if errors.As(err, &pe) && pe.RequestID == "" {
		t.Log("no request id on error response")
	}
}

func TestListModels(t *testing.T) {
	client := newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	found := false
	for _, m := range models {
		if m.ID == testModel {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("model %s not listed", testModel)
	}
}
