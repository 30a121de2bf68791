package usecase

import (
	"context"
	_ "embed"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/hemera/pkg/agent/tool"
	"github.com/secmon-lab/hemera/pkg/agent/tool/core"
	"github.com/secmon-lab/hemera/pkg/domain/interfaces"
	"github.com/secmon-lab/hemera/pkg/domain/model"
	"github.com/secmon-lab/hemera/pkg/domain/model/config"
	"github.com/secmon-lab/hemera/pkg/domain/types"
	"github.com/secmon-lab/hemera/pkg/utils/logging"
)

//go:embed prompt/chat_system.md
var chatSystemPrompt string

// defaultLoopLimit caps the tool-calling rounds of a single utterance
const defaultLoopLimit = 8

// ChatUseCase builds and drives the conversational agent behind each chat
// connection.
type ChatUseCase struct {
	llmClient gollem.LLMClient
	notes     interfaces.NoteSource
	sessions  interfaces.SessionRepository
	patterns  *config.PatternCatalog
	loopLimit int
}

// ChatOption configures a ChatUseCase
type ChatOption func(*ChatUseCase)

// WithLoopLimit overrides the maximum number of tool-calling rounds the
// agent may take for one utterance.
func WithLoopLimit(n int) ChatOption {
	return func(uc *ChatUseCase) {
		uc.loopLimit = n
	}
}

// NewChatUseCase creates a new ChatUseCase instance
func NewChatUseCase(llmClient gollem.LLMClient, notes interfaces.NoteSource, sessions interfaces.SessionRepository, patterns *config.PatternCatalog, opts ...ChatOption) *ChatUseCase {
	uc := &ChatUseCase{
		llmClient: llmClient,
		notes:     notes,
		sessions:  sessions,
		patterns:  patterns,
		loopLimit: defaultLoopLimit,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ChatSession is one connection's conversational state. The gollem agent
// keeps the history, so every utterance of the connection must run through
// the same agent; the mutex serializes Execute calls.
type ChatSession struct {
	id    types.SessionID
	agent *gollem.Agent
	tools []string
	mu    sync.Mutex
}

// ID returns the session identifier
func (x *ChatSession) ID() types.SessionID {
	return x.id
}

// ToolNames returns the names of the tools bound to this session
func (x *ChatSession) ToolNames() []string {
	return x.tools
}

// NewSession registers a chat session and builds its agent. The tool set is
// fixed for the session's lifetime: a nil calendar service yields the base
// tools only.
func (uc *ChatUseCase) NewSession(ctx context.Context, cal interfaces.CalendarService) (*ChatSession, error) {
	var tools []tool.Tool
	if cal != nil {
		tools = core.NewWithCalendar(uc.notes, cal)
	} else {
		tools = core.New(uc.notes)
	}

	registry, err := tool.NewRegistry(tools...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build tool registry")
	}

	sess := model.NewSession(time.Now().UTC())
	if err := uc.sessions.Put(ctx, sess); err != nil {
		return nil, goerr.Wrap(err, "failed to register session")
	}

	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(chatSystemPrompt),
		gollem.WithTools(registry.GollemTools()...),
		gollem.WithLoopLimit(uc.loopLimit),
		gollem.WithToolMiddleware(
			func(next gollem.ToolHandler) gollem.ToolHandler {
				return func(ctx context.Context, req *gollem.ToolExecRequest) (*gollem.ToolExecResponse, error) {
					logging.From(ctx).Debug("tool execution", "tool", req.Tool.Name)
					resp, err := next(ctx, req)
					if resp != nil && resp.Error != nil {
						// The error is fed back to the model as an observation;
						// the loop itself continues.
						logging.From(ctx).Debug("tool execution failed",
							"tool", req.Tool.Name,
							"error", resp.Error.Error())
					}
					return resp, err
				}
			},
		),
	)

	logging.From(ctx).Info("chat session started",
		"session", sess.ID,
		"tools", registry.Names())

	return &ChatSession{
		id:    sess.ID,
		agent: agent,
		tools: registry.Names(),
	}, nil
}

// HandleUtterance runs one user turn through the session's agent and
// returns the reply text. Pattern selection resolves to a prefix prompt: an
// empty message sends the prefix alone, a pattern with a message sends the
// prefix and message separated by a blank line, and no pattern sends the
// message as-is.
func (uc *ChatUseCase) HandleUtterance(ctx context.Context, sess *ChatSession, pattern, message string) (string, error) {
	utterance := composeUtterance(uc.patterns.Prompt(pattern), message)

	if err := uc.sessions.Touch(ctx, sess.id, time.Now().UTC()); err != nil {
		logging.From(ctx).Warn("failed to touch session",
			"session", sess.id,
			"error", err.Error())
	}

	ctx = tool.WithUpdate(ctx, func(ctx context.Context, msg string) {
		logging.From(ctx).Debug("tool progress", "message", msg)
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()

	resp, err := sess.agent.Execute(ctx, gollem.Text(utterance))
	if err != nil {
		return "", goerr.Wrap(err, "failed to execute chat agent", goerr.V("session", sess.id))
	}

	return strings.Join(resp.Texts, "\n"), nil
}

// CloseSession removes the session from the registry
func (uc *ChatUseCase) CloseSession(ctx context.Context, sess *ChatSession) {
	if err := uc.sessions.Delete(ctx, sess.id); err != nil {
		logging.From(ctx).Warn("failed to delete session",
			"session", sess.id,
			"error", err.Error())
		return
	}

	logging.From(ctx).Info("chat session closed", "session", sess.id)
}

// PatternNames returns the selectable pattern names, default entry first
func (uc *ChatUseCase) PatternNames() []string {
	return uc.patterns.Names()
}

func composeUtterance(prefix, message string) string {
	if message == "" {
		return prefix
	}
	if prefix != "" {
		return prefix + "\n\n" + message
	}
	return message
}
