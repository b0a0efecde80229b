package customer

import (
	"context"
	"encoding/json"
	"strings"

	"cardapio/internal/whatsapp"

	"go.uber.org/zap"
)

// StorageKey is the key the profile is persisted under.
const StorageKey = "customer_data"

// Data is the profile used to prefill order messages.
type Data struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	WhatsApp   string `json:"whatsapp"`
}

func (d Data) Customer() whatsapp.Customer {
	return whatsapp.Customer{
		Name:       d.Name,
		Address:    d.Address,
		Number:     d.Number,
		Complement: d.Complement,
		WhatsApp:   d.WhatsApp,
	}
}

// KV is the session document store the profile lives in.
type KV interface {
	Get(ctx context.Context, sessionID string, key string) ([]byte, error)
	Put(ctx context.Context, sessionID string, key string, value []byte) error
}

type Service struct {
	kv     KV
	logger *zap.Logger
}

func NewService(kv KV, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{kv: kv, logger: logger}
}

// Get never fails: unreadable profiles are logged and come back empty.
func (s *Service) Get(ctx context.Context, sessionID string) Data {
	var d Data

	raw, err := s.kv.Get(ctx, sessionID, StorageKey)
	if err != nil {
		s.logger.Warn("read customer data", zap.String("session_id", sessionID), zap.Error(err))
		return d
	}
	if len(raw) == 0 {
		return d
	}

	if err := json.Unmarshal(raw, &d); err != nil {
		s.logger.Warn("decode customer data", zap.String("session_id", sessionID), zap.Error(err))
		return Data{}
	}
	return d
}

// Save stores the profile. The WhatsApp number is reduced to digits when it
// looks like a phone number and kept as typed otherwise.
func (s *Service) Save(ctx context.Context, sessionID string, d Data) (Data, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Address = strings.TrimSpace(d.Address)
	d.Number = strings.TrimSpace(d.Number)
	d.Complement = strings.TrimSpace(d.Complement)
	d.WhatsApp = strings.TrimSpace(d.WhatsApp)

	if digits, err := whatsapp.NormalizeNumber(d.WhatsApp); err == nil {
		d.WhatsApp = digits
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return d, err
	}

	if err := s.kv.Put(ctx, sessionID, StorageKey, raw); err != nil {
		return d, err
	}
	return d, nil
}
