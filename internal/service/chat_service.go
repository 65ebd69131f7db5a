package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rcliao/certimatch/internal/chat"
	"github.com/rcliao/certimatch/internal/domain"
)

// ChatService keeps assistant sessions and builds each turn's context from
// the current project state.
type ChatService struct {
	mu          sync.Mutex
	sessions    map[string]*chat.Session
	repository  *RepositoryService
	remediation *RemediationService
	playbooks   *PlaybookService
}

func NewChatService(repository *RepositoryService, remediation *RemediationService, playbooks *PlaybookService) *ChatService {
	return &ChatService{
		sessions:    make(map[string]*chat.Session),
		repository:  repository,
		remediation: remediation,
		playbooks:   playbooks,
	}
}

// Start opens a new session and returns its ID.
func (s *ChatService) Start() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.sessions[id] = chat.NewSession(s.playbooks.Builder(), s.remediation.Limit())
	return id
}

func (s *ChatService) Session(id string) (*chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("chat session %s: %w", id, domain.ErrNotFound)
	}
	return session, nil
}

// Context snapshots the state the assistant answers against, plus the
// market's remediation items.
func (s *ChatService) Context(projectID string, view domain.View) (domain.ChatContext, []domain.RemediationItem, error) {
	project, err := s.repository.projects.Resolve(projectID)
	if err != nil {
		return domain.ChatContext{}, nil, err
	}
	market := domain.SafeMarket(project.Market)

	items, err := s.remediation.List(project.ID, market)
	if err != nil {
		return domain.ChatContext{}, nil, err
	}
	files, err := s.repository.List(project.ID)
	if err != nil {
		return domain.ChatContext{}, nil, err
	}
	result, err := s.repository.Checklist(project.ID)
	if err != nil {
		return domain.ChatContext{}, nil, err
	}

	ctx := domain.ChatContext{
		View:              view,
		Market:            market,
		Remediation:       domain.CountRemediation(items),
		UploadedCount:     result.DoneCount,
		RepoUploadedCount: len(files),
	}
	return ctx, items, nil
}

// Ask runs one turn in session sessionID for the given project and screen.
func (s *ChatService) Ask(sessionID, projectID string, view domain.View, text string) (chat.Reply, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return chat.Reply{}, err
	}
	ctx, items, err := s.Context(projectID, view)
	if err != nil {
		return chat.Reply{}, err
	}
	return session.Ask(text, ctx, items), nil
}

// Select answers a suggested question in session sessionID.
func (s *ChatService) Select(sessionID, projectID string, view domain.View, key chat.Scenario) (chat.Reply, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return chat.Reply{}, err
	}
	ctx, _, err := s.Context(projectID, view)
	if err != nil {
		return chat.Reply{}, err
	}
	return session.Select(key, ctx), nil
}
