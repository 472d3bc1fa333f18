package playerrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// PlayerRepository guarda os jogadores em memória. Não há persistência: o
// estado vive enquanto o processo viver.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	logger  logger.Logger
}

// NewPlayerRepository cria e retorna uma nova instância do Repositório de Jogadores.
func NewPlayerRepository(logger logger.Logger) *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]*domain.Player),
		logger:  logger,
	}
}

// Save registra um jogador novo. Apelidos são únicos.
func (r *PlayerRepository) Save(ctx context.Context, player *domain.Player) error {
	if err := ctx.Err(); err != nil {
		return errors.NewInternalError("Contexto encerrado antes de salvar jogador.", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[player.Nickname]; exists {
		r.logger.Info("Apelido já registrado.", map[string]interface{}{"nickname": player.Nickname})
		return errors.NewConflictError(fmt.Sprintf("Jogador %s já existe.", player.Nickname))
	}
	r.players[player.Nickname] = player

	r.logger.Debug("Jogador salvo no repositório.", map[string]interface{}{"nickname": player.Nickname})
	return nil
}

// FindByNickname busca um jogador pelo apelido.
func (r *PlayerRepository) FindByNickname(ctx context.Context, nickname string) (*domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternalError("Contexto encerrado antes de buscar jogador.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[nickname]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Jogador %s não encontrado.", nickname))
	}
	return player, nil
}

// FindAll retorna todos os jogadores ordenados por apelido.
func (r *PlayerRepository) FindAll(ctx context.Context) ([]*domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternalError("Contexto encerrado antes de listar jogadores.", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]*domain.Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Nickname < players[j].Nickname })
	return players, nil
}
