package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bimakw/token-holdings/internal/application/services"
	"github.com/bimakw/token-holdings/internal/domain/cursor"
	"github.com/bimakw/token-holdings/internal/domain/entities"
	"github.com/bimakw/token-holdings/internal/domain/errs"
	"github.com/bimakw/token-holdings/internal/testutil"
)

var (
	nftAddress     = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	unnamedAddress = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	coinAddress    = common.HexToAddress("0x00000000000000000000000000000000000000c3")
)

func seedAlice(repos *testutil.Repositories) {
	repos.Store.PutTokens(
		testutil.CreateTestToken(testutil.TokenWithAddress(nftAddress), testutil.TokenWithName("AAA"), testutil.TokenWithType(entities.TokenTypeERC721)),
		testutil.CreateTestToken(testutil.TokenWithAddress(unnamedAddress), testutil.TokenWithoutName(), testutil.TokenWithType(entities.TokenTypeERC721)),
		testutil.CreateTestToken(testutil.TokenWithAddress(coinAddress), testutil.TokenWithName("ZZZ")),
	)
	for i, addr := range []common.Address{nftAddress, unnamedAddress, coinAddress} {
		repos.Store.AddSnapshots(testutil.CreateTestSnapshot(
			testutil.SnapshotWithContract(addr),
			testutil.SnapshotWithInsertedAt(testutil.BaseTime.Add(time.Duration(i)*time.Minute)),
		))
	}
}

func tokensPath(owner, query string) string {
	return "/addresses/" + owner + "/tokens" + query
}

func TestHoldingsHandler_ListTokens_DefaultPageSize(t *testing.T) {
	r, repos := setupRouter()
	seedAlice(repos)

	req := httptest.NewRequest(http.MethodGet, tokensPath(testutil.AliceAddress.Hex(), ""), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response services.HoldingsPageResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Data) != testPagination.DefaultPageSize {
		t.Errorf("expected %d holdings, got %d", testPagination.DefaultPageSize, len(response.Data))
	}
	if !response.HasMore || response.NextCursor == "" {
		t.Error("expected a continuation cursor")
	}
	if response.Total != 3 {
		t.Errorf("expected total 3, got %d", response.Total)
	}
}

func TestHoldingsHandler_ListTokens_FollowsCursor(t *testing.T) {
	r, repos := setupRouter()
	seedAlice(repos)
	owner := testutil.AliceAddress.Hex()

	var got []string
	query := "?page_size=1"
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, tokensPath(owner, query), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("page %d: expected status 200, got %d", i, rec.Code)
		}

		var response services.HoldingsPageResponse
		json.NewDecoder(rec.Body).Decode(&response)
		for _, d := range response.Data {
			got = append(got, d.ContractAddress)
		}
		query = "?page_size=1&cursor=" + url.QueryEscape(response.NextCursor)
	}

	want := []string{nftAddress.Hex(), unnamedAddress.Hex(), coinAddress.Hex()}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestHoldingsHandler_ListTokens_OmitsCursorAtEnd(t *testing.T) {
	r, repos := setupRouter()
	seedAlice(repos)

	req := httptest.NewRequest(http.MethodGet, tokensPath(testutil.AliceAddress.Hex(), "?page_size=5"), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := body["next_cursor"]; ok {
		t.Error("expected next_cursor to be omitted on the last page")
	}
	if body["has_more"] != false {
		t.Errorf("expected has_more false, got %v", body["has_more"])
	}
}

func TestHoldingsHandler_ListTokens_BadRequests(t *testing.T) {
	r, _ := setupRouter()
	owner := testutil.AliceAddress.Hex()

	marketToken, _ := cursor.Encode(cursor.MarketRank{ContractAddress: testutil.USDTAddress})

	tests := []struct {
		name string
		path string
	}{
		{"non-integer page size", tokensPath(owner, "?page_size=ten")},
		{"zero page size", tokensPath(owner, "?page_size=0")},
		{"invalid owner", tokensPath("0xnope", "")},
		{"malformed cursor", tokensPath(owner, "?cursor=%25%25")},
		{"cursor of the token listing", tokensPath(owner, "?cursor="+marketToken)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}

			var response ErrorResponse
			json.NewDecoder(rec.Body).Decode(&response)
			if response.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestHoldingsHandler_ListTokens_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"storage unavailable", errs.Storage("list holdings", errors.New("connection reset")), http.StatusServiceUnavailable},
		{"integrity violation", errs.IntegrityViolation("tied snapshots"), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, repos := setupRouter()
			repos.Holdings.ListHoldingsFunc = func(ctx context.Context, owner common.Address, after *cursor.TypeName, limit int) ([]entities.TokenHolding, error) {
				return nil, tt.err
			}

			req := httptest.NewRequest(http.MethodGet, tokensPath(testutil.AliceAddress.Hex(), ""), nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}

			var response ErrorResponse
			json.NewDecoder(rec.Body).Decode(&response)
			if response.Error != "Failed to list holdings" {
				t.Errorf("unexpected error message: %s", response.Error)
			}
		})
	}
}

func TestHoldingsHandler_GetHoldings(t *testing.T) {
	r, repos := setupRouter()
	seedAlice(repos)

	req := httptest.NewRequest(http.MethodGet, "/addresses/"+testutil.AliceAddress.Hex()+"/holdings", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var response services.HoldingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Data) != 3 {
		t.Errorf("expected 3 holdings, got %d", len(response.Data))
	}
	if response.Data[0].BalanceFormatted != "1" {
		t.Errorf("expected formatted balance 1, got %s", response.Data[0].BalanceFormatted)
	}
}

func TestHoldingsHandler_GetHoldings_InvalidAddress(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/addresses/invalid/holdings", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
