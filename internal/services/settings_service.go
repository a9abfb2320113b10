package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
	"github.com/JoTroup/woocommerce-default-ordering/internal/ordering"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

const maxFieldNameLen = 255

// SettingsInput is the payload administrators submit to change the order list.
type SettingsInput struct {
	OrderField       string   `json:"admin_orderby"`
	CustomOrderField string   `json:"admin_orderby_custom"`
	ExcludedStatuses []string `json:"admin_filterStatus"`
	AppliedToRole    string   `json:"admin_role"`
}

type SettingsService struct {
	Settings  SettingsStore
	Statuses  StatusSource
	Logger    *zap.Logger
	RequestID string
}

func (s SettingsService) Get(ctx context.Context) (ordering.Config, error) {
	cfg, err := s.Settings.Load(ctx)
	if err != nil {
		return ordering.Config{}, domain.InternalError{Msg: "failed to load settings", Err: err}
	}
	if cfg.ExcludedStatuses == nil {
		cfg.ExcludedStatuses = []string{}
	}
	return cfg, nil
}

// Update validates in and stores it. The custom field name is kept even when
// another field is selected so switching back to custom restores it.
func (s SettingsService) Update(ctx context.Context, in SettingsInput) (ordering.Config, error) {
	cfg := ordering.Config{
		OrderField:       utils.TrimOrEmpty(in.OrderField),
		CustomOrderField: utils.TrimOrEmpty(in.CustomOrderField),
		ExcludedStatuses: utils.UniqueTrimmed(in.ExcludedStatuses),
		AppliedToRole:    strings.ToLower(utils.TrimOrEmpty(in.AppliedToRole)),
	}
	if cfg.OrderField == "" {
		cfg.OrderField = ordering.DefaultConfig().OrderField
	}
	if !ordering.IsKnownField(cfg.OrderField) {
		return ordering.Config{}, domain.ValidationError{Field: "admin_orderby", Msg: "unknown order field " + cfg.OrderField}
	}
	if len(cfg.CustomOrderField) > maxFieldNameLen {
		return ordering.Config{}, domain.ValidationError{Field: "admin_orderby_custom", Msg: "too long"}
	}

	if err := s.Settings.Save(ctx, cfg); err != nil {
		return ordering.Config{}, domain.InternalError{Msg: "failed to save settings", Err: err}
	}
	utils.LogEvent(s.Logger, s.RequestID, "settings", "update", "order list settings saved",
		zap.String("orderby", cfg.OrderField),
		zap.Int("excluded_statuses", len(cfg.ExcludedStatuses)),
		zap.String("role", cfg.AppliedToRole),
	)
	return cfg, nil
}

// Reset drops the stored settings.
func (s SettingsService) Reset(ctx context.Context) (ordering.Config, error) {
	if err := s.Settings.Delete(ctx); err != nil {
		return ordering.Config{}, domain.InternalError{Msg: "failed to reset settings", Err: err}
	}
	utils.LogEvent(s.Logger, s.RequestID, "settings", "reset", "order list settings removed")
	cfg := ordering.DefaultConfig()
	cfg.ExcludedStatuses = []string{}
	return cfg, nil
}

func (s SettingsService) Fields() []ordering.FieldChoice {
	return ordering.FieldChoices()
}

func (s SettingsService) KnownStatuses(ctx context.Context) ([]models.OrderStatus, error) {
	out, err := s.Statuses.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load statuses", Err: err}
	}
	return out, nil
}
