// Package account handles authentication, the customer profile,
// favorites and promocodes.
package account

import (
	"context"
	"regexp"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cwmarketing/loyalty-go/internal/transport"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

// SessionStore persists the authenticated session between runs. The
// local store implements it; tests substitute an in-memory fake.
type SessionStore interface {
	SaveToken(token string) error
	SaveProfile(profile models.Profile) error
}

type Service struct {
	api     *transport.Client
	session SessionStore
	logg    *logger.Logger
}

// New builds the account service. session may be nil when the caller
// opts out of local persistence.
func New(api *transport.Client, session SessionStore, logg *logger.Logger) *Service {
	return &Service{api: api, session: session, logg: logg}
}

var phoneFormatting = regexp.MustCompile(`[+()\s?-]`)

// ParsePhone normalizes a formatted phone string to the backend's
// numeric form: formatting characters stripped, leading country digit
// dropped, zero when the remainder is not a number.
func ParsePhone(phone string) int64 {
	stripped := phoneFormatting.ReplaceAllString(phone, "")
	if stripped == "" {
		return 0
	}
	stripped = stripped[1:]
	parsed, err := strconv.ParseInt(stripped, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// RequestCode asks the backend to text a one-time code to the phone.
func (s *Service) RequestCode(ctx context.Context, phone string) (*models.CodeResponse, error) {
	req := models.AuthRequest{Phone: ParsePhone(phone)}
	var resp models.CodeResponse
	if err := s.api.Post(ctx, "/v1/auth/code", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Auth exchanges phone + one-time code for an access token, arms the
// transport with it and persists the session.
func (s *Service) Auth(ctx context.Context, phone, code string) (*models.AuthResponse, error) {
	req := models.AuthRequest{Phone: ParsePhone(phone), Code: &code}
	var resp models.AuthResponse
	if err := s.api.Post(ctx, "/v1/auth/token", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == nil {
		detail := ""
		if resp.Detail != nil {
			detail = *resp.Detail
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "auth rejected").WithDetails(detail)
	}

	s.api.SetToken(*resp.AccessToken)
	if s.session != nil {
		if err := s.session.SaveToken(*resp.AccessToken); err != nil {
			s.logg.Error(ctx, "persist token", err)
		}
	}
	return &resp, nil
}

// Resume re-arms the transport with a previously stored token.
func (s *Service) Resume(token string) {
	s.api.SetToken(token)
}

func (s *Service) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error) {
	var resp models.SignupResponse
	if err := s.api.Post(ctx, "/v1/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the customer profile and refreshes the local copy.
func (s *Service) Profile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := s.api.Get(ctx, "/v1/me/profile", nil, &profile); err != nil {
		return nil, err
	}
	if s.session != nil {
		if err := s.session.SaveProfile(profile); err != nil {
			s.logg.Error(s.logg.WithCustomerID(ctx, profile.ID), "persist profile", err)
		}
	}
	return &profile, nil
}

func (s *Service) Favorites(ctx context.Context, conceptID string, page int64) ([]models.Product, error) {
	q := s.api.PageQuery(page)
	q.Set("conceptId", conceptID)
	var resp models.Paged[models.Product]
	if err := s.api.Get(ctx, "/v1/favorite/", q, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type favoriteRequest struct {
	ConceptID   string `json:"conceptId"`
	ProductCode string `json:"productCode"`
}

func (s *Service) AddFavorite(ctx context.Context, product models.Product) error {
	req := favoriteRequest{ConceptID: product.ConceptID, ProductCode: product.Code}
	return s.api.Post(ctx, "/v1/favorite/", req, nil)
}

func (s *Service) DeleteFavorite(ctx context.Context, product models.Product) error {
	req := favoriteRequest{ConceptID: product.ConceptID, ProductCode: product.Code}
	return s.api.Delete(ctx, "/v1/favorite/", req, nil)
}

// CheckPromocode resolves a promocode against the current cart lines.
func (s *Service) CheckPromocode(ctx context.Context, code, conceptID string, lines []models.Product) (*models.Promocode, error) {
	req := models.PromocodeRequest{
		Promocode: code,
		ConceptID: conceptID,
		Products:  make([]models.PromocodeProduct, 0, len(lines)),
	}
	for _, line := range lines {
		wire := models.PromocodeProduct{
			Code:      line.Code,
			Amount:    line.Quantity,
			Modifiers: make([]models.PromocodeModifier, 0, len(line.OrderModifiers)),
		}
		for _, mod := range line.OrderModifiers {
			wire.Modifiers = append(wire.Modifiers, models.PromocodeModifier{ID: mod.ID, Amount: line.Quantity})
		}
		req.Products = append(req.Products, wire)
	}

	var resp models.PromocodeResponse
	if err := s.api.Post(ctx, "/v1/promocodes/check", req, &resp); err != nil {
		return nil, err
	}

	result := &models.Promocode{Product: resp.Product, MinOrderSum: resp.MinSum}
	if resp.Err != nil {
		reason := promocodeReason(*resp.Err)
		result.Reason = &reason
	}
	return result, nil
}

func promocodeReason(err string) models.PromocodeFailure {
	switch err {
	case "min_order_sum":
		return models.PromocodeMinOrderSum
	case "outdated":
		return models.PromocodeOutdated
	default:
		return models.PromocodeNotFound
	}
}

// TokenExpiry reads the exp claim from an access token without
// verifying the signature. The SDK never holds the signing key; the
// backend stays authoritative.
func TokenExpiry(token string) (int64, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse token")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "token has no expiry")
	}
	return exp.Unix(), nil
}
