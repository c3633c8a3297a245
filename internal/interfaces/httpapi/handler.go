package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/recliiga/internal/domain/user"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

const maxRequestBody = 1 << 20

type Services struct {
	Sessions    *usecase.SessionService
	Players     *usecase.PlayerService
	Leagues     *usecase.LeagueService
	Events      *usecase.EventService
	Drafts      *usecase.DraftService
	Results     *usecase.ResultService
	Leaderboard *usecase.LeaderboardService
	Ratings     *usecase.RatingService
	Chat        *usecase.ChatService
	Reminders   *usecase.ReminderService
}

type Handler struct {
	sessions    *usecase.SessionService
	players     *usecase.PlayerService
	leagues     *usecase.LeagueService
	events      *usecase.EventService
	drafts      *usecase.DraftService
	results     *usecase.ResultService
	leaderboard *usecase.LeaderboardService
	ratings     *usecase.RatingService
	chat        *usecase.ChatService
	reminders   *usecase.ReminderService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		sessions:    services.Sessions,
		players:     services.Players,
		leagues:     services.Leagues,
		events:      services.Events,
		drafts:      services.Drafts,
		results:     services.Results,
		leaderboard: services.Leaderboard,
		ratings:     services.Ratings,
		chat:        services.Chat,
		reminders:   services.Reminders,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body strictly and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func pathID(r *http.Request, name string) string {
	return strings.TrimSpace(r.PathValue(name))
}

func queryLimit(r *http.Request, fallback, ceiling int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	if limit > ceiling {
		limit = ceiling
	}
	return limit, nil
}

// fail logs and writes err. Client errors are logged at warn level.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, kv ...any) {
	args := append(kv, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}
