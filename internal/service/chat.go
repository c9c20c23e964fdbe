package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"evrental-backend/internal/agent"
	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
	"evrental-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	welcomeText  = "Hi! I'm your EV rental consultant. Ask me about our cars, or let's book you a test drive."
	historyLimit = 40
)

type chatService struct {
	chatRepo     repository.ChatRepository
	txnRepo      repository.TransactionRepository
	vehicleRepo  repository.VehicleRepository
	agentRunner  *agent.Agent
	sessionLocks sync.Map // session id -> *sync.Mutex
}

func NewChatService(
	chatRepo repository.ChatRepository,
	txnRepo repository.TransactionRepository,
	vehicleRepo repository.VehicleRepository,
	agentRunner *agent.Agent,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		txnRepo:     txnRepo,
		vehicleRepo: vehicleRepo,
		agentRunner: agentRunner,
	}
}

func (s *chatService) StartSession(ctx context.Context, userID int32) (*domain.ChatSession, *domain.ChatMessage, error) {
	session := &domain.ChatSession{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	if err := s.chatRepo.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("creating chat session: %w", err)
	}

	welcome := &domain.ChatMessage{
		SessionID: session.ID,
		Role:      domain.RoleAgent,
		Text:      welcomeText,
	}
	if err := s.chatRepo.AppendMessage(ctx, welcome); err != nil {
		return nil, nil, fmt.Errorf("appending welcome message: %w", err)
	}

	logger.Info("chat session started", "session_id", session.ID, "user_id", userID)
	return session, welcome, nil
}

// SendMessage runs one orchestration turn. Concurrent turns for the same
// session serialize on a per-session mutex: the transcript append is the
// shared resource.
func (s *chatService) SendMessage(ctx context.Context, userID int32, sessionID, text string) (*ChatTurn, error) {
	session, err := s.chatRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}

	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	log := logger.WithService("chat").With("session_id", sessionID, "user_id", userID)

	userMsg := &domain.ChatMessage{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Text:      text,
	}
	if err := s.chatRepo.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("appending user message: %w", err)
	}

	history, err := s.chatRepo.ListMessages(ctx, sessionID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("loading transcript: %w", err)
	}

	reply, err := s.agentRunner.Run(ctx, userID, history, text)
	var draftTxn *domain.Transaction
	if err != nil {
		// The gateway failing must not end the session; report the error
		// as a transcript entry and carry on.
		log.Error("agent run failed", "error", err)
		reply = fmt.Sprintf("Sorry, I ran into a problem answering that (%v). Please try again.", err)
	} else if payload := agent.ExtractDraftPayload(reply); payload != nil {
		if payload.Message != "" {
			reply = payload.Message
		}
		draftTxn = s.resolveDraft(ctx, payload.TransactionID, log)
	}

	agentMsg := &domain.ChatMessage{
		SessionID: sessionID,
		Role:      domain.RoleAgent,
		Text:      reply,
	}
	if err := s.chatRepo.AppendMessage(ctx, agentMsg); err != nil {
		return nil, fmt.Errorf("appending agent message: %w", err)
	}
	if err := s.chatRepo.TouchSession(ctx, sessionID); err != nil {
		log.Warn("failed to touch session", "error", err)
	}

	return &ChatTurn{
		UserMessage:      userMsg,
		AgentMessage:     agentMsg,
		DraftTransaction: draftTxn,
	}, nil
}

func (s *chatService) GetTranscript(ctx context.Context, userID int32, sessionID string, limit int32) ([]domain.ChatMessage, error) {
	session, err := s.chatRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	if limit <= 0 {
		limit = historyLimit
	}
	return s.chatRepo.ListMessages(ctx, sessionID, limit)
}

// resolveDraft loads the draft transaction a payload points at for
// presentation. A dangling id degrades to no draft, not an error.
func (s *chatService) resolveDraft(ctx context.Context, txnID int32, log interface{ Warn(string, ...any) }) *domain.Transaction {
	if txnID == 0 {
		return nil
	}
	txn, err := s.txnRepo.GetByID(ctx, txnID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warn("failed to resolve draft transaction", "transaction_id", txnID, "error", err)
		}
		return nil
	}
	if vehicle, err := s.vehicleRepo.GetByID(ctx, txn.VehicleID); err == nil {
		txn.Vehicle = vehicle
	}
	return txn
}

func (s *chatService) lockFor(sessionID string) *sync.Mutex {
	lock, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
