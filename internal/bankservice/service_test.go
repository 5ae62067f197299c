package bankservice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-petr/vaultbank/internal/domain"
	"github.com/go-petr/vaultbank/pkg/errorspkg"
	"github.com/go-petr/vaultbank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

const testReserve = 1_392_000

type mocks struct {
	store    *MockStore
	tx       *MockTx
	banks    *MockRepo
	holdings *MockHoldingStore
	wallets  *MockWallet
	entries  *MockEntryRecorder
	reserve  *MockReservePolicy
}

func newMocks(ctrl *gomock.Controller) mocks {
	m := mocks{
		store:    NewMockStore(ctrl),
		tx:       NewMockTx(ctrl),
		banks:    NewMockRepo(ctrl),
		holdings: NewMockHoldingStore(ctrl),
		wallets:  NewMockWallet(ctrl),
		entries:  NewMockEntryRecorder(ctrl),
		reserve:  NewMockReservePolicy(ctrl),
	}

	m.store.EXPECT().
		ExecTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(Tx) error) error {
			return fn(m.tx)
		}).
		AnyTimes()

	m.tx.EXPECT().Banks().Return(m.banks).AnyTimes()
	m.tx.EXPECT().Holdings().Return(m.holdings).AnyTimes()
	m.tx.EXPECT().Wallets().Return(m.wallets).AnyTimes()
	m.tx.EXPECT().Entries().Return(m.entries).AnyTimes()

	return m
}

func TestDeriveAddress(t *testing.T) {
	t.Parallel()

	a1 := DeriveAddress("alice")
	a2 := DeriveAddress("alice")
	b := DeriveAddress("bob")

	if a1 != a2 {
		t.Errorf("DeriveAddress(alice) = %v and %v, want equal", a1, a2)
	}

	if a1 == b {
		t.Errorf("DeriveAddress(alice) = DeriveAddress(bob) = %v, want different", a1)
	}

	if len(a1) != 64 {
		t.Errorf("len(DeriveAddress(alice)) = %v, want 64", len(a1))
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	name := randompkg.BankName()
	address := DeriveAddress(owner)

	want := domain.Bank{
		Address:   address,
		Name:      name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}

	testCases := []struct {
		name       string
		bankName   string
		buildStubs func(m mocks)
		wantErr    error
	}{
		{
			name:     "OK",
			bankName: name,
			buildStubs: func(m mocks) {
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.banks.EXPECT().
					Create(gomock.Any(), domain.CreateBankParams{Address: address, Name: name, Owner: owner}).
					Times(1).
					Return(want, nil)
				m.wallets.EXPECT().DisposableFunds(gomock.Any(), owner).Times(1).Return(uint64(testReserve), nil)
				m.wallets.EXPECT().Debit(gomock.Any(), owner, uint64(testReserve)).Times(1).Return(nil)
				m.holdings.EXPECT().AddFunds(gomock.Any(), address, uint64(testReserve)).Times(1).Return(nil)
				m.entries.EXPECT().
					Create(gomock.Any(), domain.CreateEntryParams{
						BankAddress: address,
						Username:    owner,
						Kind:        domain.EntryCreate,
						Amount:      "1392000",
					}).
					Times(1).
					Return(domain.Entry{}, nil)
			},
		},
		{
			name:     "ErrEmptyName",
			bankName: "",
			buildStubs: func(m mocks) {
				m.banks.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrEmptyName,
		},
		{
			name:     "ErrNameTooLong",
			bankName: strings.Repeat("a", domain.MaxNameLen),
			buildStubs: func(m mocks) {
				m.banks.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrNameTooLong,
		},
		{
			name:     "ErrBankAlreadyExists",
			bankName: name,
			buildStubs: func(m mocks) {
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.banks.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(domain.Bank{}, domain.ErrBankAlreadyExists)
				m.wallets.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrBankAlreadyExists,
		},
		{
			name:     "ErrInsufficientFunds",
			bankName: name,
			buildStubs: func(m mocks) {
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.banks.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(want, nil)
				m.wallets.EXPECT().DisposableFunds(gomock.Any(), owner).Times(1).Return(uint64(testReserve-1), nil)
				m.wallets.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				m.holdings.EXPECT().AddFunds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:     "ReserveInternalError",
			bankName: name,
			buildStubs: func(m mocks) {
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(0), errorspkg.ErrInternal)
				m.banks.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tc.buildStubs(m)

			service := New(m.store, m.reserve)

			got, err := service.Create(context.Background(), owner, tc.bankName)
			if err != tc.wantErr {
				t.Fatalf("service.Create(context.Background(), %v, %q) returned error: %v, want %v",
					owner, tc.bankName, err, tc.wantErr)
			}

			if tc.wantErr != nil {
				if diff := cmp.Diff(domain.Bank{}, got); diff != "" {
					t.Errorf("service.Create returned non-empty bank on error (-want +got):\n%s", diff)
				}

				return
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("service.Create(context.Background(), %v, %q) returned unexpected difference (-want +got):\n%s",
					owner, tc.bankName, diff)
			}
		})
	}
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	depositor := randompkg.Owner()
	address := DeriveAddress(owner)
	bank := domain.Bank{Address: address, Name: randompkg.BankName(), Owner: owner, Balance: 100}

	const amount = 500

	testCases := []struct {
		name        string
		amount      uint64
		buildStubs  func(m mocks)
		wantBalance uint64
		wantErr     error
	}{
		{
			name:   "OK",
			amount: amount,
			buildStubs: func(m mocks) {
				gomock.InOrder(
					m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil),
					m.wallets.EXPECT().DisposableFunds(gomock.Any(), depositor).Times(1).Return(uint64(amount), nil),
					m.wallets.EXPECT().Debit(gomock.Any(), depositor, uint64(amount)).Times(1).Return(nil),
					m.holdings.EXPECT().AddFunds(gomock.Any(), address, uint64(amount)).Times(1).Return(nil),
				)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve+100+amount), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				updated := bank
				updated.Balance = 100 + amount
				m.banks.EXPECT().UpdateBalance(gomock.Any(), address, uint64(100+amount)).Times(1).Return(updated, nil)
				m.entries.EXPECT().
					Create(gomock.Any(), domain.CreateEntryParams{
						BankAddress: address,
						Username:    depositor,
						Kind:        domain.EntryDeposit,
						Amount:      "500",
					}).
					Times(1).
					Return(domain.Entry{}, nil)
			},
			wantBalance: 100 + amount,
		},
		{
			name:   "ErrZeroAmount",
			amount: 0,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrZeroAmount,
		},
		{
			name:   "ErrBankNotFound",
			amount: amount,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(domain.Bank{}, domain.ErrBankNotFound)
				m.wallets.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrBankNotFound,
		},
		{
			name:   "ErrInsufficientFunds",
			amount: amount,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.wallets.EXPECT().DisposableFunds(gomock.Any(), depositor).Times(1).Return(uint64(amount-1), nil)
				m.wallets.EXPECT().Debit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				m.holdings.EXPECT().AddFunds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name:   "ErrAmountOverflow",
			amount: amount,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.wallets.EXPECT().DisposableFunds(gomock.Any(), depositor).Times(1).Return(uint64(amount), nil)
				m.wallets.EXPECT().Debit(gomock.Any(), depositor, uint64(amount)).Times(1).Return(nil)
				m.holdings.EXPECT().AddFunds(gomock.Any(), address, uint64(amount)).Times(1).Return(domain.ErrAmountOverflow)
				m.banks.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAmountOverflow,
		},
		{
			name:   "ErrReserveViolation",
			amount: amount,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.wallets.EXPECT().DisposableFunds(gomock.Any(), depositor).Times(1).Return(uint64(amount), nil)
				m.wallets.EXPECT().Debit(gomock.Any(), depositor, uint64(amount)).Times(1).Return(nil)
				m.holdings.EXPECT().AddFunds(gomock.Any(), address, uint64(amount)).Times(1).Return(nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve-1), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.banks.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrReserveViolation,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tc.buildStubs(m)

			service := New(m.store, m.reserve)

			got, err := service.Deposit(context.Background(), depositor, address, tc.amount)
			if err != tc.wantErr {
				t.Fatalf("service.Deposit(context.Background(), %v, %v, %v) returned error: %v, want %v",
					depositor, address, tc.amount, err, tc.wantErr)
			}

			if got.Balance != tc.wantBalance {
				t.Errorf("got.Balance = %v, want %v", got.Balance, tc.wantBalance)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	stranger := randompkg.Owner()
	address := DeriveAddress(owner)

	testCases := []struct {
		name        string
		requester   string
		amount      uint64
		buildStubs  func(m mocks)
		wantBalance uint64
		wantErr     error
	}{
		{
			name:      "OK",
			requester: owner,
			amount:    300,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner, Balance: 1000}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve+1000), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				gomock.InOrder(
					m.holdings.EXPECT().RemoveFunds(gomock.Any(), address, uint64(300)).Times(1).Return(nil),
					m.wallets.EXPECT().Credit(gomock.Any(), owner, uint64(300)).Times(1).Return(nil),
				)
				bank.Balance = 700
				m.banks.EXPECT().UpdateBalance(gomock.Any(), address, uint64(700)).Times(1).Return(bank, nil)
				m.entries.EXPECT().
					Create(gomock.Any(), domain.CreateEntryParams{
						BankAddress: address,
						Username:    owner,
						Kind:        domain.EntryWithdraw,
						Amount:      "-300",
					}).
					Times(1).
					Return(domain.Entry{}, nil)
			},
			wantBalance: 700,
		},
		{
			// Funds added to the holding outside deposits become withdrawable.
			name:      "ReconciledAboveStored",
			requester: owner,
			amount:    1500,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner, Balance: 1000}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve+2000), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.holdings.EXPECT().RemoveFunds(gomock.Any(), address, uint64(1500)).Times(1).Return(nil)
				m.wallets.EXPECT().Credit(gomock.Any(), owner, uint64(1500)).Times(1).Return(nil)
				bank.Balance = 500
				m.banks.EXPECT().UpdateBalance(gomock.Any(), address, uint64(500)).Times(1).Return(bank, nil)
				m.entries.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(domain.Entry{}, nil)
			},
			wantBalance: 500,
		},
		{
			// A higher reserve shrinks the balance below the stored value.
			name:      "ReconciledBelowStored",
			requester: owner,
			amount:    1000,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner, Balance: 1000}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve+1000), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve+1), nil)
				m.holdings.EXPECT().RemoveFunds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInsufficientBankBalance,
		},
		{
			name:      "ErrZeroAmount",
			requester: owner,
			amount:    0,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrZeroAmount,
		},
		{
			name:      "ErrUnauthorized",
			requester: stranger,
			amount:    1,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner, Balance: 1000}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), gomock.Any()).Times(0)
				m.holdings.EXPECT().RemoveFunds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:      "ErrBankNotFound",
			requester: owner,
			amount:    1,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(domain.Bank{}, domain.ErrBankNotFound)
			},
			wantErr: domain.ErrBankNotFound,
		},
		{
			name:      "ErrInsufficientBankBalance",
			requester: owner,
			amount:    1001,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner, Balance: 1000}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve+1000), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.holdings.EXPECT().RemoveFunds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				m.wallets.EXPECT().Credit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInsufficientBankBalance,
		},
		{
			name:      "ErrReserveViolation",
			requester: owner,
			amount:    1,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve/2), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.holdings.EXPECT().RemoveFunds(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrReserveViolation,
		},
		{
			name:      "CreditInternalError",
			requester: owner,
			amount:    1,
			buildStubs: func(m mocks) {
				bank := domain.Bank{Address: address, Owner: owner, Balance: 1}
				m.banks.EXPECT().GetForUpdate(gomock.Any(), address).Times(1).Return(bank, nil)
				m.holdings.EXPECT().TotalFunds(gomock.Any(), address).Times(1).Return(uint64(testReserve+1), nil)
				m.reserve.EXPECT().ReservedMinimum(gomock.Any(), domain.BankSize).Times(1).Return(uint64(testReserve), nil)
				m.holdings.EXPECT().RemoveFunds(gomock.Any(), address, uint64(1)).Times(1).Return(nil)
				m.wallets.EXPECT().Credit(gomock.Any(), owner, uint64(1)).Times(1).Return(errorspkg.ErrInternal)
				m.banks.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tc.buildStubs(m)

			service := New(m.store, m.reserve)

			got, err := service.Withdraw(context.Background(), tc.requester, address, tc.amount)
			if err != tc.wantErr {
				t.Fatalf("service.Withdraw(context.Background(), %v, %v, %v) returned error: %v, want %v",
					tc.requester, address, tc.amount, err, tc.wantErr)
			}

			if got.Balance != tc.wantBalance {
				t.Errorf("got.Balance = %v, want %v", got.Balance, tc.wantBalance)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	want := domain.Bank{Address: DeriveAddress("owner"), Owner: "owner", Name: "vault", Balance: 7}

	m.banks.EXPECT().Get(gomock.Any(), want.Address).Times(1).Return(want, nil)
	m.banks.EXPECT().Get(gomock.Any(), "missing").Times(1).Return(domain.Bank{}, domain.ErrBankNotFound)

	service := New(m.store, m.reserve)

	got, err := service.Get(context.Background(), want.Address)
	if err != nil {
		t.Fatalf("service.Get(context.Background(), %v) returned error: %v", want.Address, err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("service.Get returned unexpected difference (-want +got):\n%s", diff)
	}

	if _, err := service.Get(context.Background(), "missing"); err != domain.ErrBankNotFound {
		t.Errorf("service.Get(context.Background(), missing) returned error: %v, want %v", err, domain.ErrBankNotFound)
	}
}

func TestListEntries(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	bank := domain.Bank{Address: DeriveAddress(owner), Owner: owner, Name: "vault"}
	items := []domain.Entry{
		{ID: 1, BankAddress: bank.Address, Username: owner, Kind: domain.EntryCreate, Amount: "1392000"},
		{ID: 2, BankAddress: bank.Address, Username: "payer", Kind: domain.EntryDeposit, Amount: "10"},
	}

	testCases := []struct {
		name       string
		requester  string
		buildStubs func(m mocks)
		want       []domain.Entry
		wantErr    error
	}{
		{
			name:      "OK",
			requester: owner,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().Get(gomock.Any(), bank.Address).Times(1).Return(bank, nil)
				m.entries.EXPECT().List(gomock.Any(), bank.Address, int32(5), int32(0)).Times(1).Return(items, nil)
			},
			want: items,
		},
		{
			name:      "NotOwner",
			requester: "stranger",
			buildStubs: func(m mocks) {
				m.banks.EXPECT().Get(gomock.Any(), bank.Address).Times(1).Return(bank, nil)
				m.entries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:      "BankNotFound",
			requester: owner,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().Get(gomock.Any(), bank.Address).Times(1).Return(domain.Bank{}, domain.ErrBankNotFound)
				m.entries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrBankNotFound,
		},
		{
			name:      "ListInternalError",
			requester: owner,
			buildStubs: func(m mocks) {
				m.banks.EXPECT().Get(gomock.Any(), bank.Address).Times(1).Return(bank, nil)
				m.entries.EXPECT().List(gomock.Any(), bank.Address, int32(5), int32(0)).Times(1).Return(nil, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tc.buildStubs(m)

			service := New(m.store, m.reserve)

			got, err := service.ListEntries(context.Background(), tc.requester, bank.Address, 5, 0)
			if err != tc.wantErr {
				t.Fatalf("service.ListEntries(context.Background(), %v, %v, 5, 0) returned error: %v, want %v",
					tc.requester, bank.Address, err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("service.ListEntries returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}
