package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/JoTroup/woocommerce-default-ordering/internal/domain"
	"github.com/JoTroup/woocommerce-default-ordering/internal/domain/models"
	"github.com/JoTroup/woocommerce-default-ordering/internal/ordering"
	"github.com/JoTroup/woocommerce-default-ordering/internal/repositories"
	"github.com/JoTroup/woocommerce-default-ordering/internal/utils"
)

// Host defaults used when the customization does not apply.
const (
	hostOrderBy   = ordering.FieldDate
	hostDirection = ordering.Desc
)

type SettingsStore interface {
	Load(ctx context.Context) (ordering.Config, error)
	Save(ctx context.Context, cfg ordering.Config) error
	Delete(ctx context.Context) error
}

type StatusSource interface {
	List(ctx context.Context) ([]models.OrderStatus, error)
}

type OrderLister interface {
	List(ctx context.Context, p repositories.ListParams) (repositories.ListResult, error)
}

// ListRequest is the incoming order list request as the admin sent it.
type ListRequest struct {
	Status  string
	Page    int
	PerPage int
}

// OrderList is one page of the order list plus how it was produced.
type OrderList struct {
	Orders     []models.Order         `json:"orders"`
	Pagination domain.Pagination      `json:"pagination"`
	OrderBy    string                 `json:"orderby"`
	Order      ordering.Direction     `json:"order"`
	Statuses   []string               `json:"statuses"`
	Override   ordering.QueryOverride `json:"override"`
}

type OrderListService struct {
	Settings  SettingsStore
	Statuses  StatusSource
	Orders    OrderLister
	Logger    *zap.Logger
	RequestID string
}

func (s OrderListService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// List returns the requested page with the administrator's ordering applied.
func (s OrderListService) List(ctx context.Context, viewer domain.Viewer, req ListRequest) (OrderList, error) {
	if req.Page < 0 {
		return OrderList{}, domain.ValidationError{Field: "page", Msg: "must be positive"}
	}
	if req.PerPage < 0 || req.PerPage > repositories.MaxPerPage {
		return OrderList{}, domain.ValidationError{Field: "per_page", Msg: "must be between 1 and 100"}
	}

	params, ov, err := s.Plan(ctx, viewer, req.Status)
	if err != nil {
		return OrderList{}, err
	}
	params.Page = req.Page
	params.PerPage = req.PerPage
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PerPage == 0 {
		params.PerPage = repositories.DefaultPerPage
	}

	res, err := s.Orders.List(ctx, params)
	if err != nil {
		return OrderList{}, domain.InternalError{Msg: "failed to list orders", Err: err}
	}

	return OrderList{
		Orders: res.Orders,
		Pagination: domain.Pagination{
			Page:    params.Page,
			PerPage: params.PerPage,
			Total:   res.Total,
		},
		OrderBy:  params.OrderBy,
		Order:    params.Direction,
		Statuses: params.Statuses,
		Override: ov,
	}, nil
}

// Plan computes the query parameters for a listing request without running it.
func (s OrderListService) Plan(ctx context.Context, viewer domain.Viewer, statusParam string) (repositories.ListParams, ordering.QueryOverride, error) {
	cfg, err := s.Settings.Load(ctx)
	if errors.Is(err, repositories.ErrCorruptSettings) {
		s.logger().Warn("stored order list settings unreadable, using defaults",
			zap.String("request_id", s.RequestID),
			zap.Error(err),
		)
		cfg, err = ordering.DefaultConfig(), nil
	}
	if err != nil {
		return repositories.ListParams{}, ordering.QueryOverride{}, domain.InternalError{Msg: "failed to load settings", Err: err}
	}
	known, err := s.Statuses.List(ctx)
	if err != nil {
		return repositories.ListParams{}, ordering.QueryOverride{}, domain.InternalError{Msg: "failed to load statuses", Err: err}
	}
	codes := repositories.StatusCodes(known)

	params := repositories.ListParams{OrderBy: hostOrderBy, Direction: hostDirection}
	isDefault := ordering.IsDefaultListing(statusParam)
	if !isDefault {
		requested, err := requestedStatuses(statusParam, codes)
		if err != nil {
			return repositories.ListParams{}, ordering.QueryOverride{}, err
		}
		params.Statuses = requested
	}

	ov := ordering.Customize(cfg, ordering.RequestContext{
		CurrentUserRoles: viewer.Roles,
		IsDefaultListing: isDefault,
		AllKnownStatuses: codes,
	})
	if ov.Applied {
		params.OrderBy = ov.OrderBy
		params.Direction = ov.OrderDirection
		if ov.StatusFilter != nil {
			params.Statuses = ov.StatusFilter
		}
	}

	s.logger().Debug("order list query planned",
		zap.String("request_id", s.RequestID),
		zap.Int64("user_id", viewer.UserID),
		zap.Bool("default_listing", isDefault),
		zap.Bool("applied", ov.Applied),
		zap.String("orderby", params.OrderBy),
		zap.String("order", string(params.Direction)),
		zap.Strings("statuses", params.Statuses),
	)
	return params, ov, nil
}

func requestedStatuses(raw string, known []string) ([]string, error) {
	valid := make(map[string]struct{}, len(known))
	for _, c := range known {
		valid[c] = struct{}{}
	}
	out := utils.UniqueTrimmed(utils.SplitList(raw))
	for _, st := range out {
		if _, ok := valid[st]; !ok {
			return nil, domain.ValidationError{Field: "status", Msg: "unknown status " + strings.TrimSpace(st)}
		}
	}
	return out, nil
}
