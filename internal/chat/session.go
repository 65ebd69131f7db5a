package chat

import (
	"sync"
	"time"

	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/playbook"
	"github.com/rcliao/certimatch/internal/triage"
)

// Reply is what the assistant answers for one turn.
type Reply struct {
	Intent   Intent                   `json:"intent"`
	Text     string                   `json:"text"`
	Options  []domain.RemediationItem `json:"options,omitempty"`
	Playbook *domain.Playbook         `json:"playbook,omitempty"`
}

// Session keeps the conversation history and the pick state between turns.
type Session struct {
	mu       sync.Mutex
	builder  *playbook.Builder
	limit    int
	state    State
	messages []domain.ChatMessage
	now      func() time.Time
}

// NewSession starts a conversation with the greeting. A limit <= 0 uses
// triage.DefaultLimit for the fail-fix list.
func NewSession(builder *playbook.Builder, limit int) *Session {
	if builder == nil {
		builder = playbook.NewBuilder()
	}
	if limit <= 0 {
		limit = triage.DefaultLimit
	}
	s := &Session{
		builder: builder,
		limit:   limit,
		state:   Idle{},
		now:     time.Now,
	}
	s.append(domain.RoleAI, Greeting)
	return s
}

// Ask answers text. items is the remediation list of the context's market;
// it is only read when the fail-fix flow needs it.
func (s *Session) Ask(text string, ctx domain.ChatContext, items []domain.RemediationItem) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.append(domain.RoleUser, text)

	intent, next := Classify(text, ctx.View, s.state)
	reply := Reply{Intent: intent}

	switch intent.Kind {
	case IntentPick:
		pb := s.builder.Build(*intent.Item)
		reply.Playbook = &pb
		reply.Text = playbook.Render(pb)
	case IntentPickOutOfRange:
		reply.Text = OutOfRange(intent.Index, s.pendingCount())
	case IntentReprompt:
		reply.Text = Reprompt(s.pendingCount())
	case IntentScenario:
		if intent.Scenario == ScenarioFailFixFlow {
			reply.Options = triage.TopOpen(items, s.limit)
			reply.Text = TriageList(reply.Options, ctx)
			next = Offer(reply.Options)
			break
		}
		if answer, ok := ScenarioAnswer(intent.Scenario, ctx); ok {
			reply.Text = answer
			break
		}
		reply.Intent = Intent{Kind: IntentFallback}
		reply.Text = FallbackAnswer(ctx)
	default:
		reply.Text = FallbackAnswer(ctx)
	}

	s.state = next
	s.append(domain.RoleAI, reply.Text)
	return reply
}

// Select answers a suggested question directly, bypassing classification.
func (s *Session) Select(key Scenario, ctx domain.ChatContext) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, q := range SuggestedQuestions(ctx.View) {
		if q.Key == key {
			s.append(domain.RoleUser, q.Label)
			break
		}
	}

	reply := Reply{Intent: Intent{Kind: IntentScenario, Scenario: key}}
	if answer, ok := ScenarioAnswer(key, ctx); ok {
		reply.Text = answer
	} else {
		reply.Intent = Intent{Kind: IntentFallback}
		reply.Text = FallbackAnswer(ctx)
	}
	s.append(domain.RoleAI, reply.Text)
	return reply
}

// State returns the current pick state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) pendingCount() int {
	if p, ok := s.state.(AwaitingPick); ok {
		return len(p.Options)
	}
	return 0
}

func (s *Session) append(role domain.ChatRole, text string) {
	s.messages = append(s.messages, domain.ChatMessage{Role: role, Text: text, Timestamp: s.now()})
}
