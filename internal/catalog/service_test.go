package catalog

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/cwmarketing/loyalty-go/internal/testutil"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

func newService(t *testing.T) (*Service, *testutil.APIServer) {
	t.Helper()
	srv := testutil.NewAPIServer(t)
	return New(testutil.NewTransport(t, srv), testutil.NewLogger()), srv
}

func TestConceptsFilterAndOrder(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/concepts/", http.StatusOK, models.Paged[models.Concept]{
		Data: []models.Concept{
			{ID: "c3", Name: "Steak House", Order: 3},
			{ID: "c2", Name: "Closed", Order: 2, IsDisabled: true},
			{ID: "c1", Name: "Sushi Bar", Order: 1},
			{ID: "c4", Name: "Gone", Order: 4, IsDeleted: true},
		},
	})

	concepts, err := svc.Concepts(context.Background(), 1)
	if err != nil {
		t.Fatalf("Concepts: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("len = %d, want 2", len(concepts))
	}
	if concepts[0].ID != "c1" || concepts[1].ID != "c3" {
		t.Errorf("order = %s, %s", concepts[0].ID, concepts[1].ID)
	}
}

func TestCategoriesQueryParams(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/categories/", http.StatusOK, models.Paged[models.Category]{})

	filter := MenuFilter{ConceptID: "c1", TerminalID: "t1", Page: 2}
	if _, err := svc.Categories(context.Background(), filter); err != nil {
		t.Fatalf("Categories: %v", err)
	}

	values, err := url.ParseQuery(srv.LastRequest().Query)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	for key, want := range map[string]string{
		"conceptId":  "c1",
		"terminalId": "t1",
		"page":       "2",
		"limit":      "100",
		"isDisabled": "false",
		"isDeleted":  "false",
	} {
		if values.Get(key) != want {
			t.Errorf("query %s = %q, want %q", key, values.Get(key), want)
		}
	}
}

func TestProductsFilterAndOrder(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/products/", http.StatusOK, models.Paged[models.Product]{
		Data: []models.Product{
			{ID: "p2", Name: "Burger", Order: 2},
			{ID: "p3", Name: "Hidden", Order: 3, IsDeleted: true},
			{ID: "p1", Name: "Fries", Order: 1},
		},
	})

	products, err := svc.Products(context.Background(), MenuFilter{ConceptID: "c1"})
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 2 || products[0].ID != "p1" || products[1].ID != "p2" {
		t.Fatalf("products = %+v", products)
	}
}

func TestFeaturedUnwrapsFirstGroup(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/featured_products/", http.StatusOK, models.Paged[models.Featured]{
		Data: []models.Featured{
			{ID: "f1", ConceptID: "c1", Products: []models.Product{{ID: "p9", Name: "Dessert"}}},
			{ID: "f2", ConceptID: "c1", Products: []models.Product{{ID: "p10"}}},
		},
	})

	featured, err := svc.Featured(context.Background(), "c1", 1)
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(featured) != 1 || featured[0].ID != "p9" {
		t.Fatalf("featured = %+v", featured)
	}
}

func TestFeaturedEmpty(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/featured_products/", http.StatusOK, models.Paged[models.Featured]{})

	featured, err := svc.Featured(context.Background(), "c1", 1)
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if featured != nil {
		t.Errorf("featured = %+v, want nil", featured)
	}
}

func TestMenuAssemblesAllThree(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/categories/", http.StatusOK, models.Paged[models.Category]{
		Data: []models.Category{{ID: "cat1", Name: "Mains"}},
	})
	srv.Handle(http.MethodGet, "/v1/products/", http.StatusOK, models.Paged[models.Product]{
		Data: []models.Product{{ID: "p1", Name: "Soup"}},
	})
	srv.Handle(http.MethodGet, "/v1/featured_products/", http.StatusOK, models.Paged[models.Featured]{
		Data: []models.Featured{{Products: []models.Product{{ID: "p2"}}}},
	})

	menu, err := svc.Menu(context.Background(), MenuFilter{ConceptID: "c1"})
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if len(menu.Categories) != 1 || len(menu.Products) != 1 || len(menu.Featured) != 1 {
		t.Fatalf("menu = %+v", menu)
	}
}

func TestMenuPropagatesPartialFailure(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/categories/", http.StatusOK, models.Paged[models.Category]{})
	srv.Handle(http.MethodGet, "/v1/products/", http.StatusNotFound, nil)
	srv.Handle(http.MethodGet, "/v1/featured_products/", http.StatusOK, models.Paged[models.Featured]{})

	if _, err := svc.Menu(context.Background(), MenuFilter{ConceptID: "c1"}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestStoriesSkipDisabled(t *testing.T) {
	t.Parallel()

	disabled := true
	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/stories/", http.StatusOK, models.Paged[models.Story]{
		Data: []models.Story{
			{ID: "s2", Order: 2},
			{ID: "s3", Order: 3, IsDisabled: &disabled},
			{ID: "s1", Order: 1},
		},
	})

	stories, err := svc.Stories(context.Background(), "", 1)
	if err != nil {
		t.Fatalf("Stories: %v", err)
	}
	if len(stories) != 2 || stories[0].ID != "s1" || stories[1].ID != "s2" {
		t.Fatalf("stories = %+v", stories)
	}
}

func TestNotifications(t *testing.T) {
	t.Parallel()

	svc, srv := newService(t)
	srv.Handle(http.MethodGet, "/v1/notifications/", http.StatusOK, models.Paged[models.Notification]{
		Data: []models.Notification{{ID: "n1", Title: "Promo"}},
	})

	notes, err := svc.Notifications(context.Background(), 1)
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Promo" {
		t.Fatalf("notifications = %+v", notes)
	}
}
