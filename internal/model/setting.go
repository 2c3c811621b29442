package model

import "encoding/json"

// AdminSetting : пара ключ → произвольный JSON, upsert-семантика
type AdminSetting struct {
	Key   string          `db:"key" json:"key"`
	Value json.RawMessage `db:"value" json:"value"`
}
