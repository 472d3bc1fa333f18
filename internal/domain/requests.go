package domain

// StockChangeRequest é o payload de adição/remoção de material em um armazém.
type StockChangeRequest struct {
	Material string `json:"material"`
	Quantity int    `json:"quantity"`
}

// MoveRequest é o payload de transferência entre dois armazéns do mesmo jogador.
type MoveRequest struct {
	DestinationID string `json:"destination_id"`
	Material      string `json:"material"`
	Quantity      int    `json:"quantity"`
}

// StockEntry é uma linha do estoque de um armazém.
type StockEntry struct {
	Material Material `json:"material"`
	Quantity int      `json:"quantity"`
}

// WarehouseView é a representação de leitura de um armazém.
type WarehouseView struct {
	ID    string       `json:"id"`
	Stock []StockEntry `json:"stock"`
}

// MoveResult traz os saldos de origem e destino após uma transferência.
type MoveResult struct {
	Source      StockEntry `json:"source"`
	Destination StockEntry `json:"destination"`
}
