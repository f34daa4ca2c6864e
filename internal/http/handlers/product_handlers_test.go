package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/http/cookies"
	"github.com/aswin1661/looms-petals/internal/http/middleware"
	"github.com/aswin1661/looms-petals/internal/mocks"
	"github.com/aswin1661/looms-petals/internal/services"
)

func newProductTestRouter(productRepo *mocks.MockProductRepository, sessionSvc *mocks.MockSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewProductHandlers(services.NewProductService(productRepo), zerolog.Nop())
	mw := middleware.NewAuthMW(sessionSvc, testCookieWriter())

	r := gin.New()
	r.GET("/products", h.List)
	r.GET("/products/:id", h.Get)

	adm := r.Group("/admin").Use(mw.RequireAdmin())
	adm.POST("/products", h.Create)
	adm.PUT("/products/:id", h.Update)
	adm.DELETE("/products/:id", h.Delete)
	return r
}

func adminCookie() *http.Cookie {
	return &http.Cookie{Name: cookies.AdminCookie, Value: "admin-sess"}
}

func TestProductHandlers_List(t *testing.T) {
	productRepo := mocks.NewMockProductRepository()
	var gotFilter domain.ProductFilter
	productRepo.ListFunc = func(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
		gotFilter = filter
		return []*domain.Product{{ID: 1, Name: "Saree", Price: 2499, IsActive: true}}, nil
	}

	r := newProductTestRouter(productRepo, mocks.NewMockSessionService())
	w := doJSON(t, r, http.MethodGet, "/products?category=sarees&featured=true", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotFilter.Category != "sarees" || !gotFilter.Featured {
		t.Errorf("filter not forwarded: %+v", gotFilter)
	}
	// The public listing never surfaces deactivated products.
	if !gotFilter.ActiveOnly {
		t.Error("public listing must be active-only")
	}
}

func TestProductHandlers_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r := newProductTestRouter(mocks.NewMockProductRepository(), mocks.NewMockSessionService())
		w := doJSON(t, r, http.MethodGet, "/products/1", nil, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		productRepo := mocks.NewMockProductRepository()
		productRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		}

		r := newProductTestRouter(productRepo, mocks.NewMockSessionService())
		w := doJSON(t, r, http.MethodGet, "/products/99", nil, nil)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		r := newProductTestRouter(mocks.NewMockProductRepository(), mocks.NewMockSessionService())
		w := doJSON(t, r, http.MethodGet, "/products/abc", nil, nil)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestProductHandlers_Create(t *testing.T) {
	t.Run("admin can create", func(t *testing.T) {
		productRepo := mocks.NewMockProductRepository()
		var created *domain.Product
		productRepo.CreateFunc = func(ctx context.Context, p *domain.Product) error {
			p.ID = 5
			created = p
			return nil
		}

		r := newProductTestRouter(productRepo, mocks.NewMockSessionService())
		w := doJSON(t, r, http.MethodPost, "/admin/products", ProductRequest{
			Name: "Kurta", Price: 1299, Category: "kurtas", Stock: 8,
		}, adminCookie())

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}
		if created == nil || !created.IsActive {
			t.Errorf("new product must be active: %+v", created)
		}
		// Unspecified fields pick up catalog defaults.
		if created.Status != "normal" || created.Type != "clothing" {
			t.Errorf("defaults not applied: %+v", created)
		}
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		r := newProductTestRouter(mocks.NewMockProductRepository(), mocks.NewMockSessionService())
		w := doJSON(t, r, http.MethodPost, "/admin/products", ProductRequest{Name: "Kurta", Price: 1299, Category: "kurtas"}, nil)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		sessionSvc := mocks.NewMockSessionService()
		sessionSvc.ValidateAdminSessionFunc = func(ctx context.Context, token string) (*domain.User, error) {
			return nil, domain.ErrNotAdmin
		}

		r := newProductTestRouter(mocks.NewMockProductRepository(), sessionSvc)
		w := doJSON(t, r, http.MethodPost, "/admin/products", ProductRequest{Name: "Kurta", Price: 1299, Category: "kurtas"}, adminCookie())

		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
		if body := decodeBody(t, w); body["message"] != "Unauthorized access" {
			t.Errorf("unexpected message %q", body["message"])
		}
	})
}

func TestProductHandlers_Update(t *testing.T) {
	productRepo := mocks.NewMockProductRepository()
	var updated *domain.Product
	productRepo.UpdateFunc = func(ctx context.Context, p *domain.Product) error {
		updated = p
		return nil
	}

	r := newProductTestRouter(productRepo, mocks.NewMockSessionService())
	w := doJSON(t, r, http.MethodPut, "/admin/products/7", ProductRequest{
		Name: "Silk Saree", Price: 2999, Category: "sarees",
	}, adminCookie())

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if updated == nil || updated.ID != 7 {
		t.Errorf("path id not applied: %+v", updated)
	}
}

func TestProductHandlers_Delete(t *testing.T) {
	productRepo := mocks.NewMockProductRepository()
	var deactivated uint
	productRepo.DeactivateFunc = func(ctx context.Context, id uint) error {
		deactivated = id
		return nil
	}

	r := newProductTestRouter(productRepo, mocks.NewMockSessionService())
	w := doJSON(t, r, http.MethodDelete, "/admin/products/7", nil, adminCookie())

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if deactivated != 7 {
		t.Errorf("deactivated %d, want 7", deactivated)
	}
}
