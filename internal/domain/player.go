package domain

// Player representa um jogador com seu apelido e seus armazéns.
// É apenas um contêiner de dados; não valida nada.
type Player struct {
	Nickname   string       `json:"nickname"`
	Warehouses []*Warehouse `json:"-"`
}

// NewPlayer cria um Player com os armazéns informados.
func NewPlayer(nickname string, warehouses ...*Warehouse) *Player {
	return &Player{Nickname: nickname, Warehouses: warehouses}
}
