package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/drinktab/drinktab/internal/domain/errors"
	. "github.com/drinktab/drinktab/internal/usecase"
	"github.com/drinktab/drinktab/internal/domain/model"
	"github.com/drinktab/drinktab/internal/storage/memory"
	testhelpers "github.com/drinktab/drinktab/internal/test"
)

func newAdminFixture(t *testing.T) (*AdminUseCase, *memory.Store) {
	t.Helper()
	store := memory.New()
	uc := NewAdminUseCase(testPolicy(), store.Postpaid(), store.Prepaid())
	return uc, store
}

func TestPayUpGate(t *testing.T) {
	postpaid := &testhelpers.PostpaidRepositoryStub{
		TransferFn: func(context.Context, string, string, int64) error {
			t.Fatal("transfer should not be called without admin rights")
			return nil
		},
	}
	uc := NewAdminUseCase(testPolicy(), postpaid, &testhelpers.PrepaidRepositoryStub{})
	ctx := context.Background()

	if err := uc.PayUp(ctx, nil, "alice", 500); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := uc.PayUp(ctx, member("bob"), "alice", 500); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestPayUpSettlesDebt(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "boss", Money: 1000, Activated: true})
	seedPostpaid(t, store, model.PostpaidUser{Username: "alice", Money: -150, Activated: true})

	if err := uc.PayUp(ctx, admin("boss"), "alice", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boss, _ := store.Postpaid().Get(ctx, "boss")
	alice, _ := store.Postpaid().Get(ctx, "alice")
	if boss.Money != 500 || alice.Money != 350 {
		t.Fatalf("unexpected balances: boss=%d alice=%d", boss.Money, alice.Money)
	}
	if boss.Money+alice.Money != 850 {
		t.Fatalf("settlement must conserve money, got %d", boss.Money+alice.Money)
	}
}

func TestPayUpSameUser(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "boss", Money: 1000, Activated: true})

	if err := uc.PayUp(ctx, admin("boss"), "boss", 300); err != nil {
		t.Fatalf("paying yourself is a no-op, got %v", err)
	}
	boss, _ := store.Postpaid().Get(ctx, "boss")
	if boss.Money != 1000 {
		t.Fatalf("expected untouched balance, got %d", boss.Money)
	}
}

func TestPayUpMissingUser(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "boss", Money: 1000, Activated: true})

	if err := uc.PayUp(ctx, admin("boss"), "ghost", 100); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := uc.PayUp(ctx, admin("nobody"), "boss", 100); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for missing payer record, got %v", err)
	}
}

func TestSetMoneyPostpaid(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "alice", Money: 100, Activated: true})

	if _, err := uc.SetMoneyPostpaid(ctx, member("bob"), "alice", 0); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.SetMoneyPostpaid(ctx, admin("boss"), "ghost", 0); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	alice, err := uc.SetMoneyPostpaid(ctx, admin("boss"), "alice", -2500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alice.Money != -2500 {
		t.Fatalf("expected -2500, got %d", alice.Money)
	}
}

func TestSetMoneyPrepaid(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPrepaid(t, store, model.PrepaidUser{Username: "kid", UserKey: "key-1", PostpaidUserID: 1, Money: 100, Activated: true})

	if _, err := uc.SetMoneyPrepaid(ctx, admin("boss"), "ghost", 0); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	kid, err := uc.SetMoneyPrepaid(ctx, admin("boss"), "kid", 7500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kid.Money != 7500 {
		t.Fatalf("expected 7500, got %d", kid.Money)
	}
}

func TestToggleActivated(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "alice"})
	seedPrepaid(t, store, model.PrepaidUser{Username: "kid", UserKey: "key-1", PostpaidUserID: 1, Activated: true})

	if _, err := uc.ToggleActivated(ctx, member("bob"), "alice", model.UserKindPostpaid); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	on, err := uc.ToggleActivated(ctx, admin("boss"), "alice", model.UserKindPostpaid)
	if err != nil || !on {
		t.Fatalf("expected activation, got %v err=%v", on, err)
	}

	off, err := uc.ToggleActivated(ctx, admin("boss"), "kid", model.UserKindPrepaid)
	if err != nil || off {
		t.Fatalf("expected deactivation, got %v err=%v", off, err)
	}

	if _, err := uc.ToggleActivated(ctx, admin("boss"), "ghost", model.UserKindPrepaid); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePrepaidUser(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	created := seedPrepaid(t, store, model.PrepaidUser{Username: "kid", UserKey: "key-1", PostpaidUserID: 1, Activated: true})

	if err := uc.DeletePrepaidUser(ctx, member("bob"), "kid"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := uc.DeletePrepaidUser(ctx, admin("boss"), "kid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.DeletePrepaidUser(ctx, admin("boss"), "kid"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// The deleted key must stay dead: lookups fail and reuse conflicts.
	if _, err := store.Prepaid().GetByKey(ctx, created.UserKey); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for retired key, got %v", err)
	}
	if _, err := store.Prepaid().Upsert(ctx, &model.PrepaidUser{Username: "newkid", UserKey: created.UserKey, PostpaidUserID: 1}); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict for retired key, got %v", err)
	}
}

func TestLedgersGate(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "alice", Money: -150})
	seedPrepaid(t, store, model.PrepaidUser{Username: "kid", UserKey: "key-1", PostpaidUserID: 1, Money: 2000})

	if _, err := uc.PostpaidLedger(ctx, member("bob")); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := uc.PrepaidLedger(ctx, nil); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	postpaid, err := uc.PostpaidLedger(ctx, admin("boss"))
	if err != nil || len(postpaid) != 1 {
		t.Fatalf("unexpected result: %v err=%v", postpaid, err)
	}
	prepaid, err := uc.PrepaidLedger(ctx, admin("boss"))
	if err != nil || len(prepaid) != 1 {
		t.Fatalf("unexpected result: %v err=%v", prepaid, err)
	}
	if prepaid[0].UserKey == "" {
		t.Fatal("admin ledger should include keys")
	}
}

func TestLedgerTotals(t *testing.T) {
	uc, store := newAdminFixture(t)
	ctx := context.Background()
	seedPostpaid(t, store, model.PostpaidUser{Username: "boss", Money: 1000})
	seedPostpaid(t, store, model.PostpaidUser{Username: "alice", Money: -150})
	seedPrepaid(t, store, model.PrepaidUser{Username: "kid", UserKey: "key-1", PostpaidUserID: 1, Money: 2000})
	seedPrepaid(t, store, model.PrepaidUser{Username: "pal", UserKey: "key-2", PostpaidUserID: 1, Money: 500})

	totals, err := uc.LedgerTotals(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.LedgerTotals{
		PostpaidTotal: 850,
		PrepaidTotal:  2500,
		PostpaidDebt:  150,
		PostpaidCount: 2,
		PrepaidCount:  2,
	}
	if *totals != want {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestLedgerTotalsPropagatesErrors(t *testing.T) {
	storeErr := errors.New("boom")
	uc := NewAdminUseCase(testPolicy(), &testhelpers.PostpaidRepositoryStub{
		ListFn: func(context.Context) ([]model.PostpaidUser, error) { return nil, storeErr },
	}, &testhelpers.PrepaidRepositoryStub{})

	if _, err := uc.LedgerTotals(context.Background()); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
