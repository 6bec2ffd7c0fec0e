package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	. "github.com/drinktab/drinktab/internal/usecase"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/pkg/authz"
	"github.com/drinktab/drinktab/internal/storage/memory"
	testhelpers "github.com/drinktab/drinktab/internal/test"
)

func testPolicy() authz.Policy {
	return authz.New("members", "admins")
}

func member(name string) *model.Principal {
	return &model.Principal{Name: name, Groups: []string{"members"}}
}

func admin(name string) *model.Principal {
	return &model.Principal{Name: name, Groups: []string{"admins"}}
}

func stranger(name string) *model.Principal {
	return &model.Principal{Name: name, Groups: []string{"guests"}}
}

func TestProfileRequiresPrincipal(t *testing.T) {
	store := memory.New()
	uc := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())

	if _, err := uc.Profile(context.Background(), nil); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestProfileProvisionsOnFirstSight(t *testing.T) {
	store := memory.New()
	uc := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	ctx := context.Background()

	user, err := uc.Profile(ctx, member("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" || user.Money != 0 || user.Activated {
		t.Fatalf("unexpected provisioned record: %+v", user)
	}

	again, err := uc.Profile(ctx, member("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("profile created a second record: %d vs %d", again.ID, user.ID)
	}
}

func TestProfileProvisioningRace(t *testing.T) {
	existing := &model.PostpaidUser{ID: 7, Username: "alice"}
	calls := 0
	postpaid := &testhelpers.PostpaidRepositoryStub{
		GetFn: func(context.Context, string) (*model.PostpaidUser, error) {
			calls++
			if calls == 1 {
				return nil, domainErrors.ErrNotFound
			}
			return existing, nil
		},
		UpsertFn: func(context.Context, *model.PostpaidUser) (*model.PostpaidUser, error) {
			return nil, domainErrors.ErrConflict
		},
	}
	uc := NewAccountUseCase(testPolicy(), postpaid, &testhelpers.PrepaidRepositoryStub{})

	user, err := uc.Profile(context.Background(), member("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != existing.ID {
		t.Fatalf("expected record created by the racing request, got %+v", user)
	}
}

func TestProfilePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("boom")
	postpaid := &testhelpers.PostpaidRepositoryStub{
		GetFn: func(context.Context, string) (*model.PostpaidUser, error) { return nil, storeErr },
	}
	uc := NewAccountUseCase(testPolicy(), postpaid, &testhelpers.PrepaidRepositoryStub{})

	if _, err := uc.Profile(context.Background(), member("alice")); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestMyPrepaidUsersGate(t *testing.T) {
	store := memory.New()
	uc := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	ctx := context.Background()

	if _, err := uc.MyPrepaidUsers(ctx, nil); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := uc.MyPrepaidUsers(ctx, stranger("eve")); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMyPrepaidUsersListsOwnOnly(t *testing.T) {
	store := memory.New()
	uc := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	ctx := context.Background()

	if _, err := uc.AddPrepaidUser(ctx, member("alice"), "kid", 2000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.AddPrepaidUser(ctx, member("alice"), "pal", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.AddPrepaidUser(ctx, member("bob"), "cousin", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owned, err := uc.MyPrepaidUsers(ctx, member("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(owned) != 2 {
		t.Fatalf("expected 2 owned records, got %d", len(owned))
	}
	for _, u := range owned {
		if u.UserKey == "" {
			t.Fatalf("expected key to be included: %+v", u)
		}
	}

	none, err := uc.MyPrepaidUsers(ctx, member("carol"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no records, got %+v", none)
	}
}

func TestAddPrepaidUserValidatesStartMoney(t *testing.T) {
	prepaid := &testhelpers.PrepaidRepositoryStub{
		UpsertFn: func(context.Context, *model.PrepaidUser) (*model.PrepaidUser, error) {
			t.Fatal("upsert should not be called on validation errors")
			return nil, nil
		},
	}
	uc := NewAccountUseCase(testPolicy(), &testhelpers.PostpaidRepositoryStub{}, prepaid)

	if _, err := uc.AddPrepaidUser(context.Background(), member("alice"), "kid", -1); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestAddPrepaidUser(t *testing.T) {
	store := memory.New()
	uc := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	ctx := context.Background()

	created, err := uc.AddPrepaidUser(ctx, member("alice"), "kid", 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Money != 2000 || !created.Activated || created.UserKey == "" {
		t.Fatalf("unexpected record: %+v", created)
	}

	owner, err := store.Postpaid().Get(ctx, "alice")
	if err != nil {
		t.Fatalf("owner was not provisioned: %v", err)
	}
	if created.PostpaidUserID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, created.PostpaidUserID)
	}

	second, err := uc.AddPrepaidUser(ctx, member("alice"), "pal", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.UserKey == created.UserKey {
		t.Fatal("keys must be unique per record")
	}

	if _, err := uc.AddPrepaidUser(ctx, member("bob"), "kid", 0); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for taken username, got %v", err)
	}
}

func TestAddMoneyPrepaidOwnership(t *testing.T) {
	store := memory.New()
	uc := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	ctx := context.Background()

	created, err := uc.AddPrepaidUser(ctx, member("bob"), "kid", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uc.AddMoneyPrepaid(ctx, nil, "kid", 100); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := uc.AddMoneyPrepaid(ctx, stranger("eve"), "kid", 100); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.AddMoneyPrepaid(ctx, member("mallory"), "kid", 100); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if _, err := uc.AddMoneyPrepaid(ctx, member("bob"), "nobody", 100); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	topped, err := uc.AddMoneyPrepaid(ctx, member("bob"), "kid", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topped.Money != 1500 {
		t.Fatalf("expected 1500, got %d", topped.Money)
	}

	// Admins may adjust anyone's sub-account, any sign.
	adjusted, err := uc.AddMoneyPrepaid(ctx, admin("boss"), "kid", -300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adjusted.Money != 1200 {
		t.Fatalf("expected 1200, got %d", adjusted.Money)
	}
	if created.ID != adjusted.ID {
		t.Fatalf("adjusted a different record: %d vs %d", created.ID, adjusted.ID)
	}
}

func TestAddMoneyPrepaidTopUpDrinkRoundTrip(t *testing.T) {
	store := memory.New()
	accounts := NewAccountUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	drinks := NewDrinkUseCase(testPolicy(), store.Postpaid(), store.Prepaid(), store.DrinkTypes(), testWindow)
	ctx := context.Background()

	created, err := accounts.AddPrepaidUser(ctx, member("bob"), "kid", 700)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := accounts.AddMoneyPrepaid(ctx, member("bob"), "kid", 150); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	receipt, err := drinks.RecordDrink(ctx, nil, TargetSelector{UserKey: created.UserKey}, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Money != 700 {
		t.Fatalf("top-up and drink of equal amounts must cancel out, got %d", receipt.Money)
	}
}
