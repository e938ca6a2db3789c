package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/server/http/middleware"
	testhelpers "github.com/cartcloud/backend/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func asIdentity(userID int64, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Set(middleware.UserRoleContextKey, role)
		c.Next()
	}
}

func perform(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return payload
}

func TestLoginSuccess(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{
		AuthenticateFn: func(ctx context.Context, email, password string) (*model.User, string, error) {
			return &model.User{ID: 5, Role: model.RoleVendor, Email: email}, "signed-token", nil
		},
	})
	engine := gin.New()
	engine.POST("/api/auth/login", handler.Login)

	rec := perform(engine, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["token"] != "signed-token" {
		t.Fatalf("missing token: %v", payload)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{
		AuthenticateFn: func(context.Context, string, string) (*model.User, string, error) {
			return nil, "", domainErrors.ErrInvalidCredentials
		},
	})
	engine := gin.New()
	engine.POST("/api/auth/login", handler.Login)

	rec := perform(engine, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Invalid email or password" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	engine := gin.New()
	engine.POST("/api/auth/login", handler.Login)

	rec := perform(engine, http.MethodPost, "/api/auth/login", `{"email":"a@b.c"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateUserDemotionFlowsCallerRole(t *testing.T) {
	var seenRole model.Role
	handler := NewUserHandler(testhelpers.UserFacadeStub{
		CreateFn: func(ctx context.Context, in model.CreateUserInput, callerRole model.Role) (*model.User, string, error) {
			seenRole = callerRole
			return &model.User{ID: 2, Role: model.RoleCustomer, Email: in.Email}, "token", nil
		},
	})
	engine := gin.New()
	engine.POST("/users", asIdentity(1, model.RoleCustomer), handler.Create)

	rec := perform(engine, http.MethodPost, "/users", `{"name":"X","email":"x@example.com","password":"pw","role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if seenRole != model.RoleCustomer {
		t.Fatalf("caller role must reach the facade, got %q", seenRole)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	handler := NewUserHandler(testhelpers.UserFacadeStub{
		CreateFn: func(context.Context, model.CreateUserInput, model.Role) (*model.User, string, error) {
			return nil, "", domainErrors.ErrAlreadyExists
		},
	})
	engine := gin.New()
	engine.POST("/users", handler.Create)

	rec := perform(engine, http.MethodPost, "/users", `{"name":"X","email":"x@example.com","password":"pw"}`)
	if rec.Code != http.StatusBadRequest || decodeBody(t, rec)["message"] != "User already exists" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUserNotFound(t *testing.T) {
	handler := NewUserHandler(testhelpers.UserFacadeStub{
		UserFn: func(context.Context, int64) (*model.User, error) {
			return nil, domainErrors.ErrNotFound
		},
	})
	engine := gin.New()
	engine.GET("/users/:id", handler.Get)

	rec := perform(engine, http.MethodGet, "/users/99", "")
	if rec.Code != http.StatusNotFound || decodeBody(t, rec)["message"] != "User not found" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUserInvalidID(t *testing.T) {
	handler := NewUserHandler(testhelpers.UserFacadeStub{})
	engine := gin.New()
	engine.GET("/users/:id", handler.Get)

	rec := perform(engine, http.MethodGet, "/users/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for garbage id, got %d", rec.Code)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	handler := NewUserHandler(testhelpers.UserFacadeStub{
		ChangePasswordFn: func(context.Context, int64, string, string) error {
			return domainErrors.ErrInvalidCredentials
		},
	})
	engine := gin.New()
	engine.PUT("/users/:id/password", handler.ChangePassword)

	rec := perform(engine, http.MethodPut, "/users/1/password", `{"currentPassword":"bad","newPassword":"next"}`)
	if rec.Code != http.StatusUnauthorized || decodeBody(t, rec)["message"] != "Current password is incorrect" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateProductVendorOwnsEntry(t *testing.T) {
	var created *model.Product
	handler := NewProductHandler(testhelpers.ProductFacadeStub{
		CreateFn: func(ctx context.Context, product *model.Product) (*model.Product, error) {
			created = product
			stored := *product
			stored.ID = 9
			return &stored, nil
		},
	})
	engine := gin.New()
	engine.POST("/products", asIdentity(3, model.RoleVendor), handler.Create)

	rec := perform(engine, http.MethodPost, "/products", `{"name":"Gadget","price":5,"stock":10,"vendorId":77}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created.VendorID != 3 {
		t.Fatalf("vendor caller must own the product, got vendor %d", created.VendorID)
	}
}

func TestCreateProductAdminMayAssignVendor(t *testing.T) {
	var created *model.Product
	handler := NewProductHandler(testhelpers.ProductFacadeStub{
		CreateFn: func(ctx context.Context, product *model.Product) (*model.Product, error) {
			created = product
			return product, nil
		},
	})
	engine := gin.New()
	engine.POST("/products", asIdentity(1, model.RoleAdmin), handler.Create)

	rec := perform(engine, http.MethodPost, "/products", `{"name":"Gadget","price":5,"stock":10,"vendorId":77}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created.VendorID != 77 {
		t.Fatalf("admin-assigned vendor must stick, got %d", created.VendorID)
	}
}

func TestUpdateProductForeignVendorForbidden(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{
		GetFn: func(context.Context, int64) (*model.Product, error) {
			return &model.Product{ID: 4, VendorID: 8}, nil
		},
	})
	engine := gin.New()
	engine.PUT("/products/:id", asIdentity(3, model.RoleVendor), handler.Update)

	rec := perform(engine, http.MethodPut, "/products/4", `{"name":"Gadget","price":5,"stock":1}`)
	if rec.Code != http.StatusForbidden || decodeBody(t, rec)["message"] != "Not authorized to modify this product" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteProductVendorOwnershipEnforced(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{
		GetFn: func(context.Context, int64) (*model.Product, error) {
			return &model.Product{ID: 4, VendorID: 8}, nil
		},
	})
	engine := gin.New()
	engine.DELETE("/products/:id", asIdentity(3, model.RoleVendor), handler.Delete)

	rec := perform(engine, http.MethodDelete, "/products/4", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestWriteProductErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domainErrors.ErrNotFound, http.StatusNotFound, "Product not found"},
		{domainErrors.ErrForbidden, http.StatusForbidden, "Not authorized to modify this product"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		writeProductError(c, tc.err)
		if rec.Code != tc.status || decodeBody(t, rec)["message"] != tc.message {
			t.Fatalf("error %v mapped to %d %s", tc.err, rec.Code, rec.Body.String())
		}
	}
}

func TestAddCartItemValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing product", domainErrors.ErrProductRequired, http.StatusBadRequest, "Product ID is required"},
		{"quantity too small", domainErrors.ErrQuantityTooSmall, http.StatusBadRequest, "Quantity must be at least 1"},
		{"unknown product", domainErrors.ErrNotFound, http.StatusNotFound, "Not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewCartHandler(testhelpers.CartFacadeStub{
				AddFn: func(context.Context, int64, int64, int) (*model.Cart, error) {
					return nil, tc.err
				},
			})
			engine := gin.New()
			engine.POST("/carts/:userId", handler.Add)

			rec := perform(engine, http.MethodPost, "/carts/7", `{"productId":1,"quantity":1}`)
			if rec.Code != tc.status || decodeBody(t, rec)["message"] != tc.message {
				t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateCartItemNotInCart(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{
		UpdateFn: func(context.Context, int64, int64, int) (*model.Cart, error) {
			return nil, domainErrors.ErrItemNotInCart
		},
	})
	engine := gin.New()
	engine.PUT("/carts/:userId", handler.UpdateItem)

	rec := perform(engine, http.MethodPut, "/carts/7", `{"productId":1,"quantity":2}`)
	if rec.Code != http.StatusNotFound || decodeBody(t, rec)["message"] != "Item not found in cart" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddCartItemDefaultsQuantity(t *testing.T) {
	var seenQty int
	handler := NewCartHandler(testhelpers.CartFacadeStub{
		AddFn: func(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
			seenQty = quantity
			return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
		},
	})
	engine := gin.New()
	engine.POST("/carts/:userId", handler.Add)

	rec := perform(engine, http.MethodPost, "/carts/7", `{"productId":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if seenQty != 1 {
		t.Fatalf("quantity must default to 1, got %d", seenQty)
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CheckoutFn: func(ctx context.Context, userID int64, in model.CheckoutInput) (*model.Order, error) {
			return &model.Order{
				ID:          1,
				OrderNumber: "ORD-1-AAAAA",
				UserID:      userID,
				Status:      model.OrderStatusConfirmed,
				Total:       32.99,
			}, nil
		},
	})
	engine := gin.New()
	engine.POST("/orders/user/:userId", handler.Checkout)

	rec := perform(engine, http.MethodPost, "/orders/user/7", `{"paymentMethod":"credit_card"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["orderNumber"] != "ORD-1-AAAAA" || payload["status"] != "confirmed" {
		t.Fatalf("unexpected order payload: %v", payload)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CheckoutFn: func(context.Context, int64, model.CheckoutInput) (*model.Order, error) {
			return nil, domainErrors.ErrEmptyCart
		},
	})
	engine := gin.New()
	engine.POST("/orders/user/:userId", handler.Checkout)

	rec := perform(engine, http.MethodPost, "/orders/user/7", `{"paymentMethod":"credit_card"}`)
	if rec.Code != http.StatusBadRequest || decodeBody(t, rec)["message"] != "Cart is empty" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutPaymentDeclined(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CheckoutFn: func(context.Context, int64, model.CheckoutInput) (*model.Order, error) {
			return nil, domainErrors.ErrPaymentFailed
		},
	})
	engine := gin.New()
	engine.POST("/orders/user/:userId", handler.Checkout)

	rec := perform(engine, http.MethodPost, "/orders/user/7", `{"paymentMethod":"credit_card"}`)
	if rec.Code != http.StatusBadRequest || decodeBody(t, rec)["message"] != "Payment processing failed" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCancelOrderReportsRefund(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CancelFn: func(ctx context.Context, id int64, reason string) (*model.Order, error) {
			return &model.Order{
				ID:                   id,
				Status:               model.OrderStatusCancelled,
				PaymentStatus:        model.PaymentStatusRefunded,
				PaymentTransactionID: "TXN_1",
				Total:                32.99,
				CancellationReason:   reason,
			}, nil
		},
	})
	engine := gin.New()
	engine.PATCH("/orders/:orderId/cancel", handler.Cancel)

	rec := perform(engine, http.MethodPatch, "/orders/1/cancel", `{"reason":"changed my mind"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	if payload["message"] != "Order cancelled successfully" {
		t.Fatalf("unexpected message: %v", payload)
	}
	refund, ok := payload["refundInfo"].(map[string]any)
	if !ok || refund["refunded"] != true || refund["transactionId"] != "TXN_1" {
		t.Fatalf("refund info missing or wrong: %v", payload)
	}
}

func TestCancelOrderOmitsRefundWhenUnpaid(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CancelFn: func(ctx context.Context, id int64, reason string) (*model.Order, error) {
			return &model.Order{ID: id, Status: model.OrderStatusCancelled, PaymentStatus: model.PaymentStatusPending}, nil
		},
	})
	engine := gin.New()
	engine.PATCH("/orders/:orderId/cancel", handler.Cancel)

	rec := perform(engine, http.MethodPatch, "/orders/1/cancel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, present := decodeBody(t, rec)["refundInfo"]; present {
		t.Fatalf("unpaid cancel must not include refund info: %s", rec.Body.String())
	}
}

func TestCancelOrderRejectsFinalStatus(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		CancelFn: func(context.Context, int64, string) (*model.Order, error) {
			return nil, domainErrors.NotCancellableError{Status: "shipped"}
		},
	})
	engine := gin.New()
	engine.PATCH("/orders/:orderId/cancel", handler.Cancel)

	rec := perform(engine, http.MethodPatch, "/orders/1/cancel", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	message, _ := decodeBody(t, rec)["message"].(string)
	if !strings.Contains(message, "shipped") {
		t.Fatalf("message must name the blocking status: %q", message)
	}
}

func TestDeliverOrder(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		DeliverFn: func(ctx context.Context, id int64) (*model.Order, error) {
			return &model.Order{ID: id, Status: model.OrderStatusDelivered}, nil
		},
	})
	engine := gin.New()
	engine.PATCH("/orders/:orderId/deliver", handler.Deliver)

	rec := perform(engine, http.MethodPatch, "/orders/1/deliver", "")
	if rec.Code != http.StatusOK || decodeBody(t, rec)["message"] != "Order marked as delivered" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeliverOrderRejectsPending(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		DeliverFn: func(context.Context, int64) (*model.Order, error) {
			return nil, domainErrors.NotDeliverableError{Status: "pending"}
		},
	})
	engine := gin.New()
	engine.PATCH("/orders/:orderId/deliver", handler.Deliver)

	rec := perform(engine, http.MethodPatch, "/orders/1/deliver", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	engine := gin.New()
	engine.GET("/orders/:orderId", handler.Get)

	rec := perform(engine, http.MethodGet, "/orders/123", "")
	if rec.Code != http.StatusNotFound || decodeBody(t, rec)["message"] != "Order not found" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVendorAnalyticsResponse(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	engine := gin.New()
	engine.GET("/orders/analytics/:vendorId", handler.Analytics)

	rec := perform(engine, http.MethodGet, "/orders/analytics/5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	monthly, ok := payload["monthlySales"].([]any)
	if !ok || len(monthly) != 12 {
		t.Fatalf("expected 12 monthly buckets: %v", payload)
	}
}
