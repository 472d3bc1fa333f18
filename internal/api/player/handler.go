package player

import (
	"context"
	"net/http"

	"gowarehouse/internal/api/response"
	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// PlayerService define o contrato de registro de jogadores.
type PlayerService interface {
	RegisterPlayer(ctx context.Context, nickname string) (*domain.Player, error)
	ListPlayers(ctx context.Context) ([]*domain.Player, error)
}

// TokenIssuer emite o token de sessão do jogador.
type TokenIssuer interface {
	GenerateToken(nickname string) (string, error)
}

// RegisterRequest é o payload de POST /v1/players.
type RegisterRequest struct {
	Nickname string `json:"nickname"`
}

// RegisterResponse devolve o jogador criado e seu token.
type RegisterResponse struct {
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}

// Handler agrupa os handlers de jogador.
type Handler struct {
	Service PlayerService
	Tokens  TokenIssuer
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc PlayerService, tokens TokenIssuer, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Tokens:  tokens,
		Logger:  log,
	}
}

// RegisterPlayerHandler lida com POST /v1/players.
func (h *Handler) RegisterPlayerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := response.Decode(r, &req); err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	p, err := h.Service.RegisterPlayer(r.Context(), req.Nickname)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	tok, err := h.Tokens.GenerateToken(p.Nickname)
	if err != nil {
		response.Handle(w, r, h.Logger, nil, apperror.NewInternalError("Falha ao gerar token.", err), http.StatusCreated)
		return
	}

	h.Logger.Info("Jogador registrado via API.", map[string]interface{}{"nickname": p.Nickname})
	response.Handle(w, r, h.Logger, RegisterResponse{Nickname: p.Nickname, Token: tok}, nil, http.StatusCreated)
}

// ListPlayersHandler lida com GET /v1/players.
func (h *Handler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	players, err := h.Service.ListPlayers(r.Context())
	response.Handle(w, r, h.Logger, players, err, http.StatusOK)
}
