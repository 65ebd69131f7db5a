package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rcliao/certimatch/internal/chat"
	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/service"
)

var (
	// ErrUnknownMethod is returned by HandleCommand for unregistered methods.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvalidParams wraps parameter decoding and validation failures.
	ErrInvalidParams = errors.New("invalid parameters")
)

type MCPServer struct {
	services *service.Services
}

func NewMCPServer(services *service.Services) *MCPServer {
	return &MCPServer{services: services}
}

type MCPRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type MCPResponse struct {
	Result interface{} `json:"result,omitempty"`
	Error  *MCPError   `json:"error,omitempty"`
}

type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *MCPServer) HandleCommand(method string, params json.RawMessage) (interface{}, error) {
	return s.HandleCommandContext(context.Background(), method, params)
}

// HandleCommandContext dispatches method. ctx bounds the simulated diagnosis
// and submission runs.
func (s *MCPServer) HandleCommandContext(ctx context.Context, method string, params json.RawMessage) (interface{}, error) {
	slog.Debug("handling command", "method", method)

	switch method {
	// Project commands
	case "certimatch.project.create":
		return s.handleProjectCreate(params)
	case "certimatch.project.list":
		return s.services.Projects.List()
	case "certimatch.project.current":
		return s.services.Projects.GetCurrent()
	case "certimatch.project.set_current":
		return s.handleProjectSetCurrent(params)

	// Repository commands
	case "certimatch.file.upload":
		return s.handleFileUpload(params)
	case "certimatch.file.list":
		return s.handleFileList(params)
	case "certimatch.file.remove":
		return s.handleFileRemove(params)
	case "certimatch.checklist":
		return s.handleChecklist(params)

	// Remediation commands
	case "certimatch.remediation.publish":
		return s.handleRemediationPublish(params)
	case "certimatch.remediation.list":
		return s.handleRemediationList(params)
	case "certimatch.remediation.status":
		return s.handleRemediationStatus(params)
	case "certimatch.remediation.triage":
		return s.handleRemediationTriage(params)
	case "certimatch.remediation.search":
		return s.handleRemediationSearch(params)
	case "certimatch.playbook":
		return s.handlePlaybook(params)

	// Assistant
	case "certimatch.chat":
		return s.handleChat(params)

	// Simulated runs
	case "certimatch.diagnosis.run":
		return s.handleDiagnosisRun(ctx, params)
	case "certimatch.submission.readiness":
		return s.handleSubmissionReadiness(params)
	case "certimatch.submission.generate":
		return s.handleSubmissionGenerate(ctx, params)

	case "certimatch.labs.rank":
		return s.handleLabsRank(params)
	case "certimatch.dashboard":
		return s.handleDashboard(params)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func decode(params json.RawMessage, v interface{}) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidParams, field)
	}
	return nil
}

type ProjectParams struct {
	ProjectID string `json:"projectId,omitempty"`
}

type MarketParams struct {
	ProjectID string        `json:"projectId,omitempty"`
	Market    domain.Market `json:"market,omitempty"`
}

// Project handlers
type CreateProjectParams struct {
	Name   string        `json:"name"`
	Market domain.Market `json:"market,omitempty"`
}

func (s *MCPServer) handleProjectCreate(params json.RawMessage) (interface{}, error) {
	var p CreateProjectParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := requireField("name", p.Name); err != nil {
		return nil, err
	}
	return s.services.Projects.CreateNamed(p.Name, domain.ParseMarket(string(p.Market)))
}

type SetCurrentProjectParams struct {
	ID string `json:"id"`
}

func (s *MCPServer) handleProjectSetCurrent(params json.RawMessage) (interface{}, error) {
	var p SetCurrentProjectParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := requireField("id", p.ID); err != nil {
		return nil, err
	}

	if err := s.services.Projects.SetCurrent(p.ID); err != nil {
		return nil, err
	}

	return map[string]string{"status": "success"}, nil
}

// Repository handlers
type UploadFileParams struct {
	ProjectID string `json:"projectId,omitempty"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
}

func (s *MCPServer) handleFileUpload(params json.RawMessage) (interface{}, error) {
	var p UploadFileParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := requireField("name", p.Name); err != nil {
		return nil, err
	}
	return s.services.Repository.Upload(p.ProjectID, p.Name, p.Size)
}

func (s *MCPServer) handleFileList(params json.RawMessage) (interface{}, error) {
	var p ProjectParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Repository.List(p.ProjectID)
}

type RemoveFileParams struct {
	ProjectID string `json:"projectId,omitempty"`
	FileID    string `json:"fileId"`
}

func (s *MCPServer) handleFileRemove(params json.RawMessage) (interface{}, error) {
	var p RemoveFileParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := requireField("fileId", p.FileID); err != nil {
		return nil, err
	}
	if err := s.services.Repository.Remove(p.ProjectID, p.FileID); err != nil {
		return nil, err
	}
	return map[string]string{"status": "success"}, nil
}

func (s *MCPServer) handleChecklist(params json.RawMessage) (interface{}, error) {
	var p ProjectParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Repository.Checklist(p.ProjectID)
}

// Remediation handlers
type PublishParams struct {
	ProjectID string                   `json:"projectId,omitempty"`
	Market    domain.Market            `json:"market,omitempty"`
	Items     []domain.RemediationItem `json:"items"`
}

func (s *MCPServer) handleRemediationPublish(params json.RawMessage) (interface{}, error) {
	var p PublishParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	items, err := s.services.Remediation.Publish(p.ProjectID, p.Market, p.Items)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MCPServer) handleRemediationList(params json.RawMessage) (interface{}, error) {
	var p MarketParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Remediation.List(p.ProjectID, p.Market)
}

type StatusParams struct {
	ProjectID string                   `json:"projectId,omitempty"`
	Market    domain.Market            `json:"market,omitempty"`
	ID        string                   `json:"id"`
	Status    domain.RemediationStatus `json:"status"`
}

func (s *MCPServer) handleRemediationStatus(params json.RawMessage) (interface{}, error) {
	var p StatusParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := requireField("id", p.ID); err != nil {
		return nil, err
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidParams, p.Status)
	}
	return s.services.Remediation.UpdateStatus(p.ProjectID, p.Market, p.ID, p.Status)
}

type TriageParams struct {
	ProjectID string        `json:"projectId,omitempty"`
	Market    domain.Market `json:"market,omitempty"`
	Limit     int           `json:"limit,omitempty"`
}

// TriageResult is the ordered open list of one market.
type TriageResult struct {
	Market domain.Market            `json:"market"`
	Items  []domain.RemediationItem `json:"items"`
}

func (s *MCPServer) handleRemediationTriage(params json.RawMessage) (interface{}, error) {
	var p TriageParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	project, err := s.services.Projects.Resolve(p.ProjectID)
	if err != nil {
		return nil, err
	}
	market := p.Market
	if market == "" {
		market = project.Market
	}
	market = domain.SafeMarket(domain.ParseMarket(string(market)))

	items, err := s.services.Remediation.Triage(project.ID, market, p.Limit)
	if err != nil {
		return nil, err
	}
	return &TriageResult{Market: market, Items: items}, nil
}

type SearchParams struct {
	ProjectID string        `json:"projectId,omitempty"`
	Query     string        `json:"query"`
	Market    domain.Market `json:"market,omitempty"`
	Limit     int           `json:"limit,omitempty"`
	Offset    int           `json:"offset,omitempty"`
}

func (s *MCPServer) handleRemediationSearch(params json.RawMessage) (interface{}, error) {
	var p SearchParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if err := requireField("query", p.Query); err != nil {
		return nil, err
	}

	opts := domain.SearchOptions{
		Market: p.Market,
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	return s.services.Remediation.Search(p.ProjectID, p.Query, opts)
}

type PlaybookParams struct {
	ProjectID string        `json:"projectId,omitempty"`
	Market    domain.Market `json:"market,omitempty"`
	ItemID    string        `json:"itemId,omitempty"`
	Task      string        `json:"task,omitempty"`
}

// handlePlaybook builds from a stored item when itemId is given, else from
// free task text.
func (s *MCPServer) handlePlaybook(params json.RawMessage) (interface{}, error) {
	var p PlaybookParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.ItemID == "" {
		if err := requireField("itemId or task", p.Task); err != nil {
			return nil, err
		}
		return s.services.Playbooks.ForTask(p.Task), nil
	}
	return s.services.Playbooks.ForItem(p.ProjectID, p.Market, p.ItemID)
}

// Assistant handlers
type ChatParams struct {
	SessionID string        `json:"sessionId,omitempty"`
	ProjectID string        `json:"projectId,omitempty"`
	View      domain.View   `json:"view,omitempty"`
	Text      string        `json:"text,omitempty"`
	Select    chat.Scenario `json:"select,omitempty"`
}

type ChatResult struct {
	SessionID string     `json:"sessionId"`
	Reply     chat.Reply `json:"reply"`
}

func (s *MCPServer) handleChat(params json.RawMessage) (interface{}, error) {
	var p ChatParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if p.Select == "" {
		if err := requireField("text", p.Text); err != nil {
			return nil, err
		}
	}
	if p.View == "" {
		p.View = domain.ViewDashboard
	}
	if p.SessionID == "" {
		p.SessionID = s.services.Chat.Start()
	}

	var (
		reply chat.Reply
		err   error
	)
	if p.Select != "" {
		reply, err = s.services.Chat.Select(p.SessionID, p.ProjectID, p.View, p.Select)
	} else {
		reply, err = s.services.Chat.Ask(p.SessionID, p.ProjectID, p.View, p.Text)
	}
	if err != nil {
		return nil, err
	}
	return &ChatResult{SessionID: p.SessionID, Reply: reply}, nil
}

// Simulated run handlers
func (s *MCPServer) handleDiagnosisRun(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p MarketParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Diagnosis.Run(ctx, p.ProjectID, p.Market, nil)
}

type SubmissionParams struct {
	Market   domain.Market `json:"market,omitempty"`
	Uploaded []string      `json:"uploaded"`
}

func (s *MCPServer) handleSubmissionReadiness(params json.RawMessage) (interface{}, error) {
	var p SubmissionParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Submission.Readiness(domain.ParseMarket(string(p.Market)), p.Uploaded), nil
}

func (s *MCPServer) handleSubmissionGenerate(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SubmissionParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Submission.Generate(ctx, domain.ParseMarket(string(p.Market)), p.Uploaded, nil)
}

type LabsParams struct {
	Criterion string `json:"criterion,omitempty"`
}

// LabRanking is the lab list ordered by one criterion.
type LabRanking struct {
	Criterion domain.LabCriterion `json:"criterion"`
	Labs      []domain.Lab        `json:"labs"`
}

func (s *MCPServer) handleLabsRank(params json.RawMessage) (interface{}, error) {
	var p LabsParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	criterion := service.ParseCriterion(p.Criterion)
	return &LabRanking{Criterion: criterion, Labs: s.services.Labs.Rank(criterion)}, nil
}

func (s *MCPServer) handleDashboard(params json.RawMessage) (interface{}, error) {
	var p ProjectParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	return s.services.Dashboard.Generate(p.ProjectID)
}
