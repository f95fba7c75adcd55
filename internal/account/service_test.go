package account

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cwmarketing/loyalty-go/internal/testutil"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

type fakeSession struct {
	token   string
	profile *models.Profile
}

func (f *fakeSession) SaveToken(token string) error { f.token = token; return nil }

func (f *fakeSession) SaveProfile(p models.Profile) error { f.profile = &p; return nil }

func newService(t *testing.T) (*Service, *fakeSession, *testutil.APIServer) {
	t.Helper()
	srv := testutil.NewAPIServer(t)
	session := &fakeSession{}
	return New(testutil.NewTransport(t, srv), session, testutil.NewLogger()), session, srv
}

func TestParsePhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"+7 (999) 123-45-67", 9991234567},
		{"8 999 123 45 67", 9991234567},
		{"+79991234567", 9991234567},
		{"not a phone", 0},
		{"", 0},
		{"+", 0},
	}
	for _, tc := range cases {
		if got := ParsePhone(tc.in); got != tc.want {
			t.Errorf("ParsePhone(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRequestCodeSendsNormalizedPhone(t *testing.T) {
	t.Parallel()

	svc, _, srv := newService(t)
	srv.Handle(http.MethodPost, "/v1/auth/code", http.StatusOK, models.CodeResponse{Message: "sent", IsRegistered: true})

	resp, err := svc.RequestCode(context.Background(), "+7 (999) 123-45-67")
	if err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if !resp.IsRegistered {
		t.Error("expected registered")
	}

	var body models.AuthRequest
	if err := json.Unmarshal(srv.LastRequest().Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Phone != 9991234567 {
		t.Errorf("phone = %d", body.Phone)
	}
	if body.Code != nil {
		t.Errorf("code = %v, want nil", body.Code)
	}
}

func TestAuthArmsTokenAndPersists(t *testing.T) {
	t.Parallel()

	svc, session, srv := newService(t)
	token := "token-abc"
	srv.Handle(http.MethodPost, "/v1/auth/token", http.StatusOK, models.AuthResponse{AccessToken: &token})
	srv.HandleFunc(http.MethodGet, "/v1/me/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(models.Profile{ID: "u1", FirstName: "Ann"})
	})

	if _, err := svc.Auth(context.Background(), "+79991234567", "1234"); err != nil {
		t.Fatalf("Auth: %v", err)
	}
	if session.token != "token-abc" {
		t.Errorf("stored token = %q", session.token)
	}

	profile, err := svc.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.ID != "u1" {
		t.Errorf("profile id = %q", profile.ID)
	}
	if session.profile == nil || session.profile.FirstName != "Ann" {
		t.Errorf("cached profile = %+v", session.profile)
	}
}

func TestAuthRejectedWithoutToken(t *testing.T) {
	t.Parallel()

	svc, session, srv := newService(t)
	detail := "wrong code"
	srv.Handle(http.MethodPost, "/v1/auth/token", http.StatusOK, models.AuthResponse{Detail: &detail})

	_, err := svc.Auth(context.Background(), "+79991234567", "0000")
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("err = %v, want UNAUTHORIZED", err)
	}
	if session.token != "" {
		t.Errorf("token persisted on failure: %q", session.token)
	}
}

func TestFavoritesRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/favorite/", http.StatusOK, models.Paged[models.Product]{
		Data: []models.Product{{ID: "p1", Code: "SKU1", ConceptID: "c1"}},
	})
	srv.Handle(http.MethodPost, "/v1/favorite/", http.StatusOK, nil)
	srv.Handle(http.MethodDelete, "/v1/favorite/", http.StatusOK, nil)

	favorites, err := svc.Favorites(context.Background(), "c1", 1)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favorites) != 1 || favorites[0].Code != "SKU1" {
		t.Fatalf("favorites = %+v", favorites)
	}

	product := models.Product{Code: "SKU1", ConceptID: "c1"}
	if err := svc.AddFavorite(context.Background(), product); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if got := string(srv.LastRequest().Body); got != `{"conceptId":"c1","productCode":"SKU1"}` {
		t.Errorf("add body = %s", got)
	}

	if err := svc.DeleteFavorite(context.Background(), product); err != nil {
		t.Fatalf("DeleteFavorite: %v", err)
	}
	if srv.LastRequest().Method != http.MethodDelete {
		t.Errorf("method = %s", srv.LastRequest().Method)
	}
}

func TestCheckPromocodeBuildsCartPayload(t *testing.T) {
	t.Parallel()

	svc, _, srv := newService(t)
	minSum := float32(1000)
	errCode := "min_order_sum"
	srv.Handle(http.MethodPost, "/v1/promocodes/check", http.StatusOK, models.PromocodeResponse{
		Err:    &errCode,
		MinSum: &minSum,
	})

	lines := []models.Product{{
		Code:           "SKU1",
		Quantity:       2,
		OrderModifiers: []models.Modifier{{ID: "m1"}, {ID: "m2"}},
	}}
	result, err := svc.CheckPromocode(context.Background(), "WELCOME", "c1", lines)
	if err != nil {
		t.Fatalf("CheckPromocode: %v", err)
	}
	if result.Reason == nil || *result.Reason != models.PromocodeMinOrderSum {
		t.Errorf("reason = %v", result.Reason)
	}
	if result.MinOrderSum == nil || *result.MinOrderSum != 1000 {
		t.Errorf("min sum = %v", result.MinOrderSum)
	}

	var body models.PromocodeRequest
	if err := json.Unmarshal(srv.LastRequest().Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Promocode != "WELCOME" || body.ConceptID != "c1" {
		t.Errorf("body = %+v", body)
	}
	if len(body.Products) != 1 || body.Products[0].Amount != 2 {
		t.Fatalf("products = %+v", body.Products)
	}
	if len(body.Products[0].Modifiers) != 2 || body.Products[0].Modifiers[1].Amount != 2 {
		t.Errorf("modifiers = %+v", body.Products[0].Modifiers)
	}
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
		"sub": "u1",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := TokenExpiry(signed)
	if err != nil {
		t.Fatalf("TokenExpiry: %v", err)
	}
	if got != exp.Unix() {
		t.Errorf("expiry = %d, want %d", got, exp.Unix())
	}

	if _, err := TokenExpiry("not-a-token"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("err = %v, want VALIDATION_ERROR", err)
	}
}
