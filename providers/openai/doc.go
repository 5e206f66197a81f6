// Package openai is the client for the chat completion service and its
// companion endpoints (models, completions, edits, embeddings, moderations,
// images, files, fine-tunes and audio).
//
// A chat request is built once with core.ChatHistoryBuilder and can then be
// sent either way:
//
//	history, err := core.NewChatHistoryBuilder().
//	    System("You are terse.").
//	    User("Hello").
//	    Model("gpt-3.5-turbo").
//	    Build()
//
//	resp, err := client.CreateChatCompletion(ctx, history)
//
//	stream, err := client.CreateChatCompletionStream(ctx, history)
//	for delta, err := range stream.All() {
//	    ...
//	}
package openai
