package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/cartcloud/backend/internal/domain/errors"
	"github.com/cartcloud/backend/internal/domain/model"
	testhelpers "github.com/cartcloud/backend/internal/test"
)

func TestWishlistGetReturnsEmptyViewWhenMissing(t *testing.T) {
	uc := NewWishlistUseCase(&testhelpers.WishlistRepositoryStub{}, &testhelpers.ProductRepositoryStub{})

	list, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if list.UserID != 7 || len(list.Items) != 0 {
		t.Fatalf("expected empty wishlist view, got %+v", list)
	}
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	uc := NewWishlistUseCase(&testhelpers.WishlistRepositoryStub{}, &testhelpers.ProductRepositoryStub{})

	if _, err := uc.Add(context.Background(), 7, 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	products := &testhelpers.ProductRepositoryStub{Products: map[int64]*model.Product{1: {ID: 1}}}
	adds := 0
	wishlists := &testhelpers.WishlistRepositoryStub{
		AddItemFn: func(context.Context, int64, int64) (bool, error) {
			adds++
			return adds == 1, nil
		},
		GetFn: func(context.Context, int64) (*model.Wishlist, error) {
			return &model.Wishlist{UserID: 7, Items: []model.WishlistItem{{ProductID: 1, Product: &model.Product{ID: 1}}}}, nil
		},
	}
	uc := NewWishlistUseCase(wishlists, products)

	for i := 0; i < 2; i++ {
		list, err := uc.Add(context.Background(), 7, 1)
		if err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
		if len(list.Items) != 1 {
			t.Fatalf("expected single item, got %+v", list.Items)
		}
	}
}
