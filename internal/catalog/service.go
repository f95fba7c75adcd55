// Package catalog fetches the storefront listings: concepts, terminals,
// menus, stories and marketing content.
package catalog

import (
	"context"
	"net/url"
	"sort"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/cwmarketing/loyalty-go/internal/transport"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

type Service struct {
	api  *transport.Client
	logg *logger.Logger
}

func New(api *transport.Client, logg *logger.Logger) *Service {
	return &Service{api: api, logg: logg}
}

// MenuFilter scopes category and product listings. Zero fields are
// omitted from the query.
type MenuFilter struct {
	ConceptID  string
	GroupID    string
	TerminalID string
	Page       int64
}

func (f MenuFilter) query(api *transport.Client) url.Values {
	q := api.PageQuery(f.Page)
	if f.ConceptID != "" {
		q.Set("conceptId", f.ConceptID)
	}
	if f.GroupID != "" {
		q.Set("groupId", f.GroupID)
	}
	if f.TerminalID != "" {
		q.Set("terminalId", f.TerminalID)
	}
	return q
}

// Concepts lists the company's storefronts, hiding disabled and deleted
// entries and sorting by display order.
func (s *Service) Concepts(ctx context.Context, page int64) ([]models.Concept, error) {
	var resp models.Paged[models.Concept]
	if err := s.api.Get(ctx, "/v1/concepts/", s.api.PageQuery(page), &resp); err != nil {
		return nil, err
	}
	out := make([]models.Concept, 0, len(resp.Data))
	for _, c := range resp.Data {
		if c.IsDisabled || c.IsDeleted {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Service) Terminals(ctx context.Context, page int64) ([]models.Terminal, error) {
	var resp models.Paged[models.Terminal]
	if err := s.api.Get(ctx, "/v1/terminals/", s.api.PageQuery(page), &resp); err != nil {
		return nil, err
	}
	out := resp.Data
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Service) Categories(ctx context.Context, filter MenuFilter) ([]models.Category, error) {
	q := filter.query(s.api)
	q.Set("isDisabled", "false")
	q.Set("isDeleted", "false")

	var resp models.Paged[models.Category]
	if err := s.api.Get(ctx, "/v1/categories/", q, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(resp.Data))
	for _, c := range resp.Data {
		if c.IsDisabled || c.IsDeleted {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Service) Products(ctx context.Context, filter MenuFilter) ([]models.Product, error) {
	var resp models.Paged[models.Product]
	if err := s.api.Get(ctx, "/v1/products/", filter.query(s.api), &resp); err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(resp.Data))
	for _, p := range resp.Data {
		if p.IsDisabled || p.IsDeleted {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// Featured returns the promoted products of a concept. The backend
// answers with featured groups; callers only ever render the first one.
func (s *Service) Featured(ctx context.Context, conceptID string, page int64) ([]models.Product, error) {
	q := s.api.PageQuery(page)
	if conceptID != "" {
		q.Set("conceptId", conceptID)
	}
	var resp models.Paged[models.Featured]
	if err := s.api.Get(ctx, "/v1/featured_products/", q, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	return resp.Data[0].Products, nil
}

// Menu fetches categories, products and featured products concurrently
// and bundles them for a storefront screen.
func (s *Service) Menu(ctx context.Context, filter MenuFilter) (*models.Menu, error) {
	var (
		menu                        models.Menu
		catErr, productErr, featErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		menu.Categories, catErr = s.Categories(gctx, filter)
		return nil
	})
	g.Go(func() error {
		menu.Products, productErr = s.Products(gctx, filter)
		return nil
	})
	g.Go(func() error {
		menu.Featured, featErr = s.Featured(gctx, filter.ConceptID, filter.Page)
		return nil
	})
	_ = g.Wait()

	if err := multierr.Combine(catErr, productErr, featErr); err != nil {
		lctx := s.logg.WithConceptID(ctx, filter.ConceptID)
		s.logg.Error(lctx, "menu fetch failed", err)
		return nil, err
	}
	return &menu, nil
}

// PaymentTypes lists the settlement methods a concept accepts. The
// backend answers with a bare array here, not the paged envelope.
func (s *Service) PaymentTypes(ctx context.Context, conceptID string) ([]models.PaymentType, error) {
	q := url.Values{}
	q.Set("conceptId", conceptID)
	var out []models.PaymentType
	if err := s.api.Get(ctx, "/v1/payments_types/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeliveryTypes lists the fulfillment flavors a concept offers.
func (s *Service) DeliveryTypes(ctx context.Context, conceptID string) ([]models.DeliveryType, error) {
	q := url.Values{}
	q.Set("conceptId", conceptID)
	var out []models.DeliveryType
	if err := s.api.Get(ctx, "/v1/delivery_types/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Stories(ctx context.Context, conceptID string, page int64) ([]models.Story, error) {
	q := s.api.PageQuery(page)
	if conceptID != "" {
		q.Set("conceptId", conceptID)
	}
	var resp models.Paged[models.Story]
	if err := s.api.Get(ctx, "/v1/stories/", q, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Story, 0, len(resp.Data))
	for _, story := range resp.Data {
		if (story.IsDisabled != nil && *story.IsDisabled) || (story.IsDeleted != nil && *story.IsDeleted) {
			continue
		}
		out = append(out, story)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Service) Contents(ctx context.Context, conceptID string, page int64) ([]models.Content, error) {
	q := s.api.PageQuery(page)
	if conceptID != "" {
		q.Set("conceptId", conceptID)
	}
	var resp models.Paged[models.Content]
	if err := s.api.Get(ctx, "/v1/contents/", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *Service) Notifications(ctx context.Context, page int64) ([]models.Notification, error) {
	var resp models.Paged[models.Notification]
	if err := s.api.Get(ctx, "/v1/notifications/", s.api.PageQuery(page), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
