package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/recliiga/internal/domain/chat"
	"github.com/riskibarqy/recliiga/internal/domain/league"
	"github.com/riskibarqy/recliiga/internal/domain/player"
	idgen "github.com/riskibarqy/recliiga/internal/platform/id"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
)

const (
	defaultChatPageSize = 50
	maxChatPageSize     = 200
)

// ChatPosted is the realtime payload for a new chat line.
type ChatPosted struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"league_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

type PostMessageInput struct {
	ActorUserID string
	LeagueID    string
	Body        string
}

// ChatService reads and writes league chat through an explicit message store.
type ChatService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	messages   chat.Repository
	publisher  RealtimePublisher
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewChatService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	messages chat.Repository,
	publisher RealtimePublisher,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ChatService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		messages:   messages,
		publisher:  publisher,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ChatService) PostMessage(ctx context.Context, input PostMessageInput) (chat.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.PostMessage")
	defer span.End()

	actor, err := resolveActor(ctx, s.playerRepo, input.ActorUserID)
	if err != nil {
		return chat.Message{}, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, input.LeagueID, actor.ID)
	if err != nil {
		return chat.Message{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return chat.Message{}, fmt.Errorf("generate message id: %w", err)
	}
	msg := chat.Message{
		ID:         id,
		LeagueID:   lg.ID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		Body:       strings.TrimSpace(input.Body),
		SentAt:     s.now().UTC(),
	}
	if err := msg.Validate(); err != nil {
		return chat.Message{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return chat.Message{}, fmt.Errorf("append chat message: %w", err)
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, RealtimeMessage{
			Channel: ChatChannel(lg.ID),
			Event:   EventChatMessage,
			Payload: ChatPosted(msg),
		})
		if err != nil {
			s.logger.WarnContext(ctx, "publish chat message failed", "league_id", lg.ID, "message_id", msg.ID, "error", err)
		}
	}

	return msg, nil
}

// ListMessages returns newest messages first. limit<=0 uses the default page.
func (s *ChatService) ListMessages(ctx context.Context, actorUserID, leagueID string, limit int) ([]chat.Message, error) {
	actor, err := resolveActor(ctx, s.playerRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	lg, _, err := requireMember(ctx, s.leagueRepo, leagueID, actor.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultChatPageSize
	case limit > maxChatPageSize:
		limit = maxChatPageSize
	}

	items, err := s.messages.ListByLeague(ctx, lg.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return items, nil
}
