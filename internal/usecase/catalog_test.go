package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	. "github.com/drinktab/drinktab/internal/usecase"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/storage/memory"
)

func TestDrinkTypesGate(t *testing.T) {
	store := memory.New()
	uc := NewCatalogUseCase(testPolicy(), store.DrinkTypes())
	ctx := context.Background()

	if _, err := uc.DrinkTypes(ctx, nil); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Any authenticated principal may browse the catalog, groups or not.
	if _, err := uc.DrinkTypes(ctx, &model.Principal{Name: "visitor"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddDrinkType(t *testing.T) {
	store := memory.New()
	uc := NewCatalogUseCase(testPolicy(), store.DrinkTypes())
	ctx := context.Background()

	if _, err := uc.AddDrinkType(ctx, member("bob"), "beer", "beer.png", 24); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	created, err := uc.AddDrinkType(ctx, admin("boss"), "beer", "beer.png", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "beer" || created.Quantity != 24 {
		t.Fatalf("unexpected entry: %+v", created)
	}

	if _, err := uc.AddDrinkType(ctx, admin("boss"), "beer", "", 1); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	types, err := uc.DrinkTypes(ctx, member("bob"))
	if err != nil || len(types) != 1 {
		t.Fatalf("unexpected catalog: %v err=%v", types, err)
	}
}

func TestSetDrinkTypeQuantity(t *testing.T) {
	store := memory.New()
	uc := NewCatalogUseCase(testPolicy(), store.DrinkTypes())
	ctx := context.Background()

	created, err := uc.AddDrinkType(ctx, admin("boss"), "mate", "", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.SetDrinkTypeQuantity(ctx, member("bob"), created.ID, 50); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.SetDrinkTypeQuantity(ctx, admin("boss"), created.ID+9, 50); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	updated, err := uc.SetDrinkTypeQuantity(ctx, admin("boss"), created.ID, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 50 {
		t.Fatalf("expected 50, got %d", updated.Quantity)
	}
}
