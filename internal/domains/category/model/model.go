package model

import "lodge/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID   = "id"
	FieldName = "name"
)

type Category struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
