package model

import (
	"hoodly/shared/model"
)

const (
	CatalogTableName  = "business_services"
	CatalogEntityName = "business_service"

	CatalogFieldID         = "id"
	CatalogFieldBusinessID = "business_id"
	CatalogFieldName       = "name"
	CatalogFieldPrice      = "price"
)

// CatalogService is one service a business offers, e.g. "gutter cleaning".
type CatalogService struct {
	ID          string  `db:"id"`
	BusinessID  string  `db:"business_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	model.Metadata
}
