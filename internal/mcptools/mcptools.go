// Package mcptools exposes the drill loop as MCP tools so an assistant can
// quiz a learner: fetch the next phrase, record the answer, add phrases and
// read progress.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/imhonza/cranky-language-tutor/internal/leitner"
	"github.com/imhonza/cranky-language-tutor/internal/phrase"
	"github.com/imhonza/cranky-language-tutor/internal/voice"
)

// Tutor is the per-learner scheduler surface the tools use.
type Tutor interface {
	Owner() string
	NextItem(ctx context.Context) (*phrase.Phrase, error)
	Phrase(ctx context.Context, id string) (*phrase.Phrase, error)
	RecordCorrect(ctx context.Context, id string) (leitner.Outcome, error)
	RecordIncorrect(ctx context.Context, id string) error
	AddPhrase(ctx context.Context, text, translation string) (*phrase.Phrase, error)
	Stats(ctx context.Context) (leitner.Stats, error)
	Report() leitner.Report
}

// Resolver returns the tutor for a learner name.
type Resolver func(ctx context.Context, learner string) (Tutor, error)

// PoolResolver adapts a leitner.Pool.
func PoolResolver(pool *leitner.Pool) Resolver {
	return func(ctx context.Context, learner string) (Tutor, error) {
		s, err := pool.Get(ctx, learner)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// learnerParam is shared by every tool.
func learnerParam() mcp.ToolOption {
	return mcp.WithString("learner",
		mcp.Description("Learner name (default: the configured learner)"),
	)
}

// base holds what every tool needs to find its learner.
type base struct {
	resolve        Resolver
	defaultLearner string
}

func (b base) tutor(ctx context.Context, req mcp.CallToolRequest) (Tutor, *mcp.CallToolResult) {
	name := req.GetString("learner", b.defaultLearner)
	if name == "" {
		return nil, mcp.NewToolResultError("'learner' is required")
	}
	t, err := b.resolve(ctx, name)
	if err != nil {
		return nil, errorResult(err)
	}
	return t, nil
}

// errorResult turns a scheduler error into a tool error carrying the
// tutor's line and the underlying cause.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s (%v)", voice.ForError(err), err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// NewServer builds an MCP server with every tool registered.
func NewServer(version string, resolve Resolver, defaultLearner string) *server.MCPServer {
	s := server.NewMCPServer(
		"cranky-tutor",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	b := base{resolve: resolve, defaultLearner: defaultLearner}

	next := &NextPhraseTool{base: b}
	s.AddTool(next.Definition(), next.Handle)

	record := &RecordAnswerTool{base: b}
	s.AddTool(record.Definition(), record.Handle)

	add := &AddPhraseTool{base: b}
	s.AddTool(add.Definition(), add.Handle)

	stats := &StatsTool{base: b}
	s.AddTool(stats.Definition(), stats.Handle)

	return s
}

const instructions = `You are quizzing a language learner with a Leitner box scheduler.
Call next_phrase, show the learner the phrase, let them answer, then call
record_answer with the phrase_id and whether they got it right. Stay grumpy.`
