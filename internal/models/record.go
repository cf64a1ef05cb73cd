package models

import "encoding/json"

type RecordStatus string

const (
	StatusNew       RecordStatus = "New"
	StatusPending   RecordStatus = "Pending"
	StatusCompleted RecordStatus = "Completed"
)

const (
	TypeOrder   = "order"
	TypeInquiry = "inquiry"
)

// Поля записи, которые проставляет сервер.
const (
	FieldID     = "id"
	FieldType   = "type"
	FieldStatus = "status"
	FieldDate   = "date"
)

// Record заказ или обращение. Схемы нет: значения хранятся как сырой JSON,
// поэтому неизвестные поля переживают чтение и запись без изменений.
type Record map[string]json.RawMessage

// String возвращает строковое поле и false, если поля нет или оно не строка.
func (r Record) String(key string) (string, bool) {
	raw, ok := r[key]
	if !ok {
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}

	return value, true
}

// SetString записывает строковое поле.
func (r Record) SetString(key, value string) {
	raw, _ := json.Marshal(value) // строка всегда кодируется
	r[key] = raw
}

func (r Record) ID() string {
	id, _ := r.String(FieldID)
	return id
}

func (r Record) Type() string {
	t, _ := r.String(FieldType)
	return t
}

func (r Record) Status() RecordStatus {
	s, _ := r.String(FieldStatus)
	return RecordStatus(s)
}

func (r Record) Date() string {
	d, _ := r.String(FieldDate)
	return d
}

// Clone копирует запись, чтобы изменения копии не задевали хранилище.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for key, value := range r {
		clone[key] = append(json.RawMessage(nil), value...)
	}
	return clone
}

// Stats счетчики для панели администратора.
type Stats struct {
	Total            int `json:"total"`
	PendingInquiries int `json:"pendingInquiries"`
}

type StatusUpdate struct {
	Status *string `json:"status"`
}

type CreateRecordResponse struct {
	Success bool   `json:"success"`
	Order   Record `json:"order"`
}
