package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/errs"
	"github.com/bimakw/token-holdings/internal/infrastructure/metrics"
	"github.com/bimakw/token-holdings/internal/testutil"
)

func setupTokenServiceTest() (*TokenService, *testutil.Repositories) {
	repos := testutil.NewRepositories()
	m := metrics.NewListingMetrics(prometheus.NewRegistry())

	service := NewTokenService(repos.Tokens, testPagination, m, zap.NewNop())
	return service, repos
}

func seedTokens(repos *testutil.Repositories) {
	repos.Store.PutTokens(
		testutil.CreateTestToken(testutil.TokenWithAddress(testutil.USDTAddress), testutil.TokenWithMarketCap("100"), testutil.TokenWithName("Tether USD")),
		testutil.CreateTestToken(testutil.TokenWithAddress(testutil.USDCAddress), testutil.TokenWithMarketCap("100"), testutil.TokenWithName("usd coin")),
		testutil.CreateTestToken(testutil.TokenWithAddress(testutil.DAIAddress), testutil.TokenWithHolderCount(40), testutil.TokenWithName("Dai")),
		testutil.CreateTestToken(testutil.TokenWithAddress(nftAddress), testutil.TokenWithoutName()),
	)
}

func TestNewTokenService(t *testing.T) {
	service, _ := setupTokenServiceTest()
	if service == nil {
		t.Fatal("expected non-nil service")
	}
}

func TestTokenService_ListTokens_Order(t *testing.T) {
	service, repos := setupTokenServiceTest()
	seedTokens(repos)

	response, err := service.ListTokens(context.Background(), "", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		testutil.USDTAddress.Hex(), // "tether usd" < "usd coin"
		testutil.USDCAddress.Hex(),
		testutil.DAIAddress.Hex(),
		nftAddress.Hex(),
	}
	if len(response.Data) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(response.Data))
	}
	for i, addr := range want {
		if response.Data[i].ContractAddress != addr {
			t.Errorf("position %d: expected %s, got %s", i, addr, response.Data[i].ContractAddress)
		}
	}
	if response.Total != 4 {
		t.Errorf("expected total 4, got %d", response.Total)
	}
}

func TestTokenService_ListTokens_Pagination(t *testing.T) {
	service, repos := setupTokenServiceTest()
	seedTokens(repos)
	ctx := context.Background()

	var seen []string
	token := ""
	for pages := 0; ; pages++ {
		if pages > 4 {
			t.Fatal("pagination did not terminate")
		}
		response, err := service.ListTokens(ctx, token, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, d := range response.Data {
			seen = append(seen, d.ContractAddress)
		}
		if !response.HasMore {
			break
		}
		token = response.NextCursor
	}

	if len(seen) != 4 {
		t.Fatalf("expected 4 tokens across pages, got %d", len(seen))
	}
	unique := make(map[string]bool)
	for _, s := range seen {
		unique[s] = true
	}
	if len(unique) != 4 {
		t.Errorf("expected no duplicates, got %v", seen)
	}
}

func TestTokenService_ListTokens_InvalidArguments(t *testing.T) {
	service, _ := setupTokenServiceTest()
	ctx := context.Background()

	holdingToken, err := cursor.Encode(cursor.TypeName{ContractAddress: testutil.USDTAddress})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.ListTokens(ctx, "", 0); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for page size 0, got %v", err)
	}
	if _, err := service.ListTokens(ctx, holdingToken, 10); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for a holdings cursor, got %v", err)
	}
}

func TestTokenService_ListTokens_StorageError(t *testing.T) {
	service, repos := setupTokenServiceTest()

	repos.Tokens.CountFunc = func(ctx context.Context) (int64, error) {
		return 0, errs.Storage("count tokens", errors.New("database error"))
	}

	_, err := service.ListTokens(context.Background(), "", 10)
	if !errors.Is(err, errs.ErrStorageUnavailable) {
		t.Errorf("expected storage unavailable, got %v", err)
	}
}

func TestTokenService_GetByAddress(t *testing.T) {
	service, repos := setupTokenServiceTest()
	seedTokens(repos)
	ctx := context.Background()

	response, err := service.GetByAddress(ctx, "0xDAC17F958D2EE523A2206206994597C13D831EC7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response == nil {
		t.Fatal("expected token")
	}
	if response.Data.ContractAddress != testutil.USDTAddress.Hex() {
		t.Errorf("expected %s, got %s", testutil.USDTAddress.Hex(), response.Data.ContractAddress)
	}
	if *response.Data.Name != "Tether USD" {
		t.Errorf("unexpected name %s", *response.Data.Name)
	}

	missing, err := service.GetByAddress(ctx, testutil.BobAddress.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown token")
	}

	if _, err := service.GetByAddress(ctx, "invalid"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}
