// Package orders covers order history and order submission.
package orders

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/cwmarketing/loyalty-go/internal/transport"
	"github.com/cwmarketing/loyalty-go/pkg/config"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

// deliveryTimeLayout is the exact timestamp shape the ordering backend
// accepts, millisecond part pinned to zero.
const deliveryTimeLayout = "2006-01-02T15:04:05.000Z"

type Service struct {
	api       *transport.Client
	validate  *validator.Validate
	logg      *logger.Logger
	companyID string
	sourceID  string
}

func New(api *transport.Client, cfg config.APIConfig, logg *logger.Logger) *Service {
	return &Service{
		api:       api,
		validate:  validator.New(),
		logg:      logg,
		companyID: cfg.CompanyID,
		sourceID:  cfg.SourceID,
	}
}

// History lists the customer's past orders.
func (s *Service) History(ctx context.Context, page int64) ([]models.UserOrder, error) {
	var resp models.Paged[models.UserOrder]
	if err := s.api.Get(ctx, "/v1/orders/", s.api.PageQuery(page), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *Service) ByID(ctx context.Context, id string) (*models.UserOrder, error) {
	var order models.UserOrder
	if err := s.api.Get(ctx, "/v1/orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Send validates and submits an order assembled from cart lines.
func (s *Service) Send(ctx context.Context, order models.Order) (*models.OrderResponse, error) {
	req := s.buildRequest(order)
	if err := s.validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order incomplete")
	}

	var resp models.OrderResponse
	if err := s.api.Post(ctx, "/v1/orders/order", req, &resp); err != nil {
		return nil, err
	}
	lctx := s.logg.WithConceptID(ctx, order.Concept.ID)
	s.logg.Info(lctx, "order submitted")
	return &resp, nil
}

func (s *Service) buildRequest(order models.Order) models.OrderRequest {
	req := models.OrderRequest{
		ConceptID:       order.Concept.ID,
		CompanyID:       s.companyID,
		DeliveryTypeID:  order.DeliveryType.ID,
		PaymentTypeID:   order.PaymentType.ID,
		SourceID:        s.sourceID,
		WithdrawBonuses: order.WithdrawBonuses,
		Comment:         order.Comment,
		Change:          order.Change,
	}
	if order.PersonsCount != nil {
		req.PersonsCount = *order.PersonsCount
	}
	if order.DeliveryTime != nil {
		formatted := order.DeliveryTime.UTC().Format(deliveryTimeLayout)
		req.DeliveryTime = &formatted
	}

	// Pickup orders reference a terminal; delivery orders carry the
	// address instead. Address wins when both are set.
	if order.Terminal != nil && order.Address == nil {
		req.TerminalID = &order.Terminal.ID
	} else if order.Address != nil {
		req.Address = &models.OrderAddress{
			City:     order.Address.City,
			Street:   order.Address.Street,
			Home:     order.Address.Home,
			Flat:     order.Address.Flat,
			Floor:    order.Address.Floor,
			Entrance: order.Address.Entrance,
		}
	}

	req.Products = make([]models.OrderProduct, 0, len(order.Products))
	for _, line := range order.Products {
		amount := line.Quantity
		if amount <= 0 {
			amount = 1
		}
		wire := models.OrderProduct{
			Code:      line.Code,
			Amount:    amount,
			Modifiers: make([]models.OrderModifier, 0, len(line.OrderModifiers)),
		}
		for _, mod := range line.OrderModifiers {
			wire.Modifiers = append(wire.Modifiers, models.OrderModifier{ID: mod.ID, Amount: amount})
		}
		req.Products = append(req.Products, wire)
	}
	return req
}
