package inventoryservice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// PlayerRepository define o contrato que o Serviço espera da camada de armazenamento de jogadores.
type PlayerRepository interface {
	Save(ctx context.Context, player *domain.Player) error
	FindByNickname(ctx context.Context, nickname string) (*domain.Player, error)
	FindAll(ctx context.Context) ([]*domain.Player, error)
}

// Service orquestra jogadores, armazéns e o catálogo de materiais.
//
// Todas as operações sobre os armazéns de um jogador passam por um mutex daquele
// jogador, o que serializa as transferências que o domínio não torna atômicas.
type Service struct {
	repo      PlayerRepository
	catalog   *domain.Catalog
	observers []domain.WarehouseObserver
	logger    logger.Logger

	locks sync.Map // apelido -> *sync.Mutex
}

// NewService cria o serviço. Os observers informados são registrados em todo armazém aberto.
func NewService(repo PlayerRepository, catalog *domain.Catalog, logger logger.Logger, observers ...domain.WarehouseObserver) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		observers: observers,
		logger:    logger,
	}
}

// RegisterPlayer cria um jogador sem armazéns.
func (s *Service) RegisterPlayer(ctx context.Context, nickname string) (*domain.Player, error) {
	s.logger.Debug("Iniciando registro de jogador no serviço.", map[string]interface{}{"nickname": nickname})

	if err := validateNickname(nickname); err != nil {
		s.logger.Warn("Falha na validação do apelido.", map[string]interface{}{"nickname": nickname, "error": err.Error()})
		return nil, err
	}

	player := domain.NewPlayer(nickname)
	if err := s.repo.Save(ctx, player); err != nil {
		s.logger.Error("Falha ao salvar jogador no repositório.", err)
		return nil, err
	}

	s.logger.Info("Jogador registrado.", map[string]interface{}{"nickname": nickname})
	return player, nil
}

// ListPlayers retorna os jogadores registrados, ordenados por apelido.
func (s *Service) ListPlayers(ctx context.Context) ([]*domain.Player, error) {
	players, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar jogadores.", err)
		return nil, err
	}
	return players, nil
}

// OpenWarehouse cria um armazém vazio para o jogador.
func (s *Service) OpenWarehouse(ctx context.Context, nickname string) (domain.WarehouseView, error) {
	player, unlock, err := s.lockPlayer(ctx, nickname)
	if err != nil {
		return domain.WarehouseView{}, err
	}
	defer unlock()

	w := domain.NewWarehouse(s.logger)
	for _, o := range s.observers {
		w.AddObserver(o)
	}
	player.Warehouses = append(player.Warehouses, w)

	s.logger.Info("Armazém aberto.", map[string]interface{}{"nickname": nickname, "warehouse_id": w.ID().String()})
	return viewOf(w), nil
}

// ListWarehouses retorna todos os armazéns do jogador.
func (s *Service) ListWarehouses(ctx context.Context, nickname string) ([]domain.WarehouseView, error) {
	player, unlock, err := s.lockPlayer(ctx, nickname)
	if err != nil {
		return nil, err
	}
	defer unlock()

	views := make([]domain.WarehouseView, 0, len(player.Warehouses))
	for _, w := range player.Warehouses {
		views = append(views, viewOf(w))
	}
	return views, nil
}

// GetWarehouse retorna um armazém do jogador.
func (s *Service) GetWarehouse(ctx context.Context, nickname, warehouseID string) (domain.WarehouseView, error) {
	player, unlock, err := s.lockPlayer(ctx, nickname)
	if err != nil {
		return domain.WarehouseView{}, err
	}
	defer unlock()

	w, err := s.findWarehouse(player, warehouseID)
	if err != nil {
		return domain.WarehouseView{}, err
	}
	return viewOf(w), nil
}

// AddMaterial adiciona material a um armazém e retorna o novo saldo.
func (s *Service) AddMaterial(ctx context.Context, nickname, warehouseID string, req domain.StockChangeRequest) (domain.StockEntry, error) {
	return s.change(ctx, nickname, warehouseID, req, (*domain.Warehouse).AddMaterial)
}

// RemoveMaterial retira material de um armazém e retorna o novo saldo.
func (s *Service) RemoveMaterial(ctx context.Context, nickname, warehouseID string, req domain.StockChangeRequest) (domain.StockEntry, error) {
	return s.change(ctx, nickname, warehouseID, req, (*domain.Warehouse).RemoveMaterial)
}

func (s *Service) change(ctx context.Context, nickname, warehouseID string, req domain.StockChangeRequest,
	op func(*domain.Warehouse, *domain.Material, int) error) (domain.StockEntry, error) {
	material, err := s.lookupMaterial(req.Material)
	if err != nil {
		return domain.StockEntry{}, err
	}

	player, unlock, err := s.lockPlayer(ctx, nickname)
	if err != nil {
		return domain.StockEntry{}, err
	}
	defer unlock()

	w, err := s.findWarehouse(player, warehouseID)
	if err != nil {
		return domain.StockEntry{}, err
	}

	if err := op(w, &material, req.Quantity); err != nil {
		s.logger.Warn("Operação de estoque rejeitada.", rejectionFields(err, map[string]interface{}{
			"nickname":     nickname,
			"warehouse_id": warehouseID,
			"material":     req.Material,
			"quantity":     req.Quantity,
		}))
		return domain.StockEntry{}, err
	}

	q, _ := w.MaterialCount(&material)
	return domain.StockEntry{Material: material, Quantity: q}, nil
}

// MoveMaterial transfere material entre dois armazéns do jogador.
func (s *Service) MoveMaterial(ctx context.Context, nickname, sourceID string, req domain.MoveRequest) (domain.MoveResult, error) {
	material, err := s.lookupMaterial(req.Material)
	if err != nil {
		return domain.MoveResult{}, err
	}

	player, unlock, err := s.lockPlayer(ctx, nickname)
	if err != nil {
		return domain.MoveResult{}, err
	}
	defer unlock()

	source, err := s.findWarehouse(player, sourceID)
	if err != nil {
		return domain.MoveResult{}, err
	}
	destination, err := s.findWarehouse(player, req.DestinationID)
	if err != nil {
		return domain.MoveResult{}, err
	}

	if err := source.MoveMaterial(destination, &material, req.Quantity); err != nil {
		s.logger.Warn("Transferência rejeitada.", rejectionFields(err, map[string]interface{}{
			"nickname":       nickname,
			"source_id":      sourceID,
			"destination_id": req.DestinationID,
			"material":       req.Material,
			"quantity":       req.Quantity,
		}))
		return domain.MoveResult{}, err
	}

	srcQty, _ := source.MaterialCount(&material)
	dstQty, _ := destination.MaterialCount(&material)
	return domain.MoveResult{
		Source:      domain.StockEntry{Material: material, Quantity: srcQty},
		Destination: domain.StockEntry{Material: material, Quantity: dstQty},
	}, nil
}

// MaterialCount retorna o saldo de um material (0 se nunca adicionado).
func (s *Service) MaterialCount(ctx context.Context, nickname, warehouseID, materialName string) (domain.StockEntry, error) {
	material, err := s.lookupMaterial(materialName)
	if err != nil {
		return domain.StockEntry{}, err
	}

	player, unlock, err := s.lockPlayer(ctx, nickname)
	if err != nil {
		return domain.StockEntry{}, err
	}
	defer unlock()

	w, err := s.findWarehouse(player, warehouseID)
	if err != nil {
		return domain.StockEntry{}, err
	}

	q, err := w.MaterialCount(&material)
	if err != nil {
		return domain.StockEntry{}, err
	}
	return domain.StockEntry{Material: material, Quantity: q}, nil
}

// Materials lista o catálogo.
func (s *Service) Materials() []domain.Material {
	return s.catalog.All()
}

// lockPlayer busca o jogador e adquire seu mutex. O chamador deve chamar unlock.
func (s *Service) lockPlayer(ctx context.Context, nickname string) (*domain.Player, func(), error) {
	player, err := s.repo.FindByNickname(ctx, nickname)
	if err != nil {
		s.logger.Debug("Jogador não encontrado.", map[string]interface{}{"nickname": nickname})
		return nil, nil, err
	}

	v, _ := s.locks.LoadOrStore(nickname, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return player, mu.Unlock, nil
}

func (s *Service) findWarehouse(player *domain.Player, warehouseID string) (*domain.Warehouse, error) {
	id, err := uuid.Parse(warehouseID)
	if err != nil {
		return nil, apperror.NewValidationError("O ID do armazém deve ser um UUID válido.")
	}
	for _, w := range player.Warehouses {
		if w != nil && w.ID() == id {
			return w, nil
		}
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("Armazém %s não encontrado para o jogador %s.", warehouseID, player.Nickname))
}

func (s *Service) lookupMaterial(name string) (domain.Material, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Material{}, apperror.NewValidationError("O nome do material não pode ser vazio.")
	}
	m, ok := s.catalog.Lookup(name)
	if !ok {
		return domain.Material{}, apperror.NewNotFoundError(fmt.Sprintf("Material %s não existe no catálogo.", name))
	}
	return m, nil
}

// validateNickname valida o apelido do jogador.
func validateNickname(nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return apperror.NewValidationError("O apelido não pode ser vazio.")
	}
	if n := utf8.RuneCountInString(nickname); n < 3 || n > 32 {
		return apperror.NewValidationError("O apelido deve ter entre 3 e 32 caracteres.")
	}
	return nil
}

// rejectionFields acrescenta o erro e, quando houver, a razão da rejeição de estoque.
func rejectionFields(err error, fields map[string]interface{}) map[string]interface{} {
	fields["error"] = err.Error()
	if reason, ok := apperror.ReasonOf(err); ok {
		fields["reason"] = string(reason)
	}
	return fields
}

func viewOf(w *domain.Warehouse) domain.WarehouseView {
	stock := w.Stock()
	entries := make([]domain.StockEntry, 0, len(stock))
	for m, q := range stock {
		entries = append(entries, domain.StockEntry{Material: m, Quantity: q})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Material.Name() < entries[j].Material.Name() })
	return domain.WarehouseView{ID: w.ID().String(), Stock: entries}
}
