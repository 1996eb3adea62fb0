package agent

import (
	"codeassist/codeassist/agents/configs"
	"codeassist/codeassist/services/llm"
	"codeassist/codeassist/sources/psql/models"
	"context"
	"fmt"
)

// Request carries everything the assistant needs for one turn.
type Request struct {
	Message     string
	History     []models.Message
	FileContext string
	Username    string
}

// Streamer produces the assistant's reply token by token. The error channel
// carries at most one generation failure; both channels close when done.
type Streamer interface {
	StreamResponse(ctx context.Context, req Request) (<-chan string, <-chan error)
}

// CodeAssistAgent streams replies from an Ollama-served model.
type CodeAssistAgent struct {
	LLM    *llm.OllamaClient
	Model  string
	Config *configs.AgentConfig
}

func NewCodeAssistAgent(client *llm.OllamaClient, model string) *CodeAssistAgent {
	return &CodeAssistAgent{
		LLM:    client,
		Model:  model,
		Config: configs.LoadConfig(),
	}
}

func (a *CodeAssistAgent) StreamResponse(ctx context.Context, req Request) (<-chan string, <-chan error) {
	messages := a.buildMessages(req)
	return a.LLM.RunStream(ctx, llm.ChatRequest{
		Model:    a.Model,
		Messages: messages,
		Stream:   true,
	})
}

// buildMessages lays out the prompt: persona system message (with the file
// context blob appended), the stored history, then the new user message.
// History must not include the incoming message.
func (a *CodeAssistAgent) buildMessages(req Request) []llm.Message {
	system := fmt.Sprintf("You are %s, %s.\n\n%s",
		a.Config.AgentName, a.Config.AgentRole, a.Config.Instructions)
	if req.Username != "" {
		system += fmt.Sprintf("\n\nYou are talking to %s.", req.Username)
	}
	if req.FileContext != "" {
		system += "\n\n" + a.Config.FilePreamble + "\n" + req.FileContext
	}

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, m := range req.History {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: req.Message})
	return messages
}
