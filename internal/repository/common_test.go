package repository

import "github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config/db"

func NewTestDB(pool db.PgxPoolInterface) *db.DB {
	return &db.DB{
		Pool: pool,
	}
}
