package ledger

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"
)

var (
	testPrice = uint256.NewInt(1_000_000_000_000_000)
	saleAddr  = testAccounts[4]
)

type SuiteSale struct {
	suite.Suite

	token *Token
	sale  *Sale
}

func (s *SuiteSale) SetupTest() {
	s.token = NewToken(testAccounts[0], uint256.NewInt(7_000_000))
	s.sale = NewSale(saleAddr, testAccounts[0], s.token, testPrice)
}

func (s *SuiteSale) cost(n uint64) *uint256.Int {
	s.T().Helper()
	res, err := Cost(uint256.NewInt(n), testPrice)
	s.Require().NoError(err)
	return res
}

func (s *SuiteSale) provision() {
	s.T().Helper()
	s.Require().NoError(s.token.Transfer(testAccounts[0], saleAddr, uint256.NewInt(5_000_000)))
}

func (s *SuiteSale) TestBuyWithoutInventory() {
	buyer := testAccounts[1]
	s.Require().ErrorIs(s.sale.Buy(buyer, uint256.NewInt(10), uint256.NewInt(1)), ErrWrongPayment)
	s.Require().ErrorIs(s.sale.Buy(buyer, uint256.NewInt(10), s.cost(10)), ErrInsufficientInventory)
}

func (s *SuiteSale) TestBuyWrongPayment() {
	s.provision()
	buyer := testAccounts[1]
	cost := s.cost(10)

	for _, value := range []*uint256.Int{
		uint256.NewInt(1),
		new(uint256.Int).SubUint64(cost, 1),
		new(uint256.Int).AddUint64(cost, 1),
	} {
		s.Require().ErrorIs(s.sale.Buy(buyer, uint256.NewInt(10), value), ErrWrongPayment)
	}
	s.True(s.sale.TokensSold().IsZero())
}

func (s *SuiteSale) TestBuy() {
	s.provision()
	buyer := testAccounts[1]

	s.Require().NoError(s.sale.Buy(buyer, uint256.NewInt(10), s.cost(10)))
	s.Equal(uint256.NewInt(10), s.sale.TokensSold())
	s.Equal(uint256.NewInt(10), s.token.BalanceOf(buyer))
	s.Equal(uint256.NewInt(4_999_990), s.sale.Inventory())
	s.Equal(s.cost(10), s.sale.Proceeds())
}

func (s *SuiteSale) TestBuyMoreThanInventory() {
	s.provision()
	n := uint256.NewInt(5_000_001)
	cost, err := Cost(n, testPrice)
	s.Require().NoError(err)
	s.Require().ErrorIs(s.sale.Buy(testAccounts[1], n, cost), ErrInsufficientInventory)
}

func (s *SuiteSale) TestEndByNonAdmin() {
	_, err := s.sale.End(testAccounts[1])
	s.Require().ErrorIs(err, ErrNotAdmin)
	s.False(s.sale.Ended())
}

func (s *SuiteSale) TestEndWithoutSales() {
	s.provision()

	res, err := s.sale.End(testAccounts[0])
	s.Require().NoError(err)
	s.True(res.ContractBalance.IsZero())
	s.Equal(uint256.NewInt(7_000_000), res.AdminBalance)
	s.True(res.Forwarded.IsZero())
	s.True(s.sale.Ended())
}

func (s *SuiteSale) TestEndAfterSale() {
	s.provision()
	s.Require().NoError(s.sale.Buy(testAccounts[1], uint256.NewInt(10), s.cost(10)))

	res, err := s.sale.End(testAccounts[0])
	s.Require().NoError(err)
	s.True(res.ContractBalance.IsZero())
	s.Equal(uint256.NewInt(6_999_990), res.AdminBalance)
	s.Equal(s.cost(10), res.Forwarded)
	s.True(s.sale.Proceeds().IsZero())

	s.Require().ErrorIs(s.sale.Buy(testAccounts[1], uint256.NewInt(1), s.cost(1)), ErrSaleEnded)
	_, err = s.sale.End(testAccounts[0])
	s.Require().ErrorIs(err, ErrSaleEnded)
}

func TestSale(t *testing.T) {
	t.Parallel()

	suite.Run(t, new(SuiteSale))
}

func TestCostOverflow(t *testing.T) {
	t.Parallel()

	maxInt := new(uint256.Int).SetAllOne()
	_, err := Cost(maxInt, uint256.NewInt(2))
	require.ErrorIs(t, err, ErrOverflow)

	res, err := Cost(maxInt, uint256.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, maxInt, res)
}

func TestCost(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64Range(0, math.MaxUint32).Draw(t, "n")
		price := rapid.Uint64Range(0, math.MaxUint32).Draw(t, "price")

		res, err := Cost(uint256.NewInt(n), uint256.NewInt(price))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsUint64() || res.Uint64() != n*price {
			t.Fatalf("%d * %d = %s", n, price, res)
		}
	})
}

// TestSaleAccounting checks that sold tokens, proceeds and inventory stay consistent.
func TestSaleAccounting(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		token := NewToken(testAccounts[0], uint256.NewInt(1_000_000))
		inventory := rapid.Uint64Range(0, 1_000_000).Draw(t, "inventory")
		if err := token.Transfer(testAccounts[0], saleAddr, uint256.NewInt(inventory)); err != nil {
			t.Fatal(err)
		}
		price := uint256.NewInt(rapid.Uint64Range(1, 1_000).Draw(t, "price"))
		sale := NewSale(saleAddr, testAccounts[0], token, price)
		buyer := rapid.SampledFrom(testAccounts[1:4])

		t.Repeat(map[string]func(*rapid.T){
			"buy": func(t *rapid.T) {
				n := uint256.NewInt(rapid.Uint64Range(0, 200_000).Draw(t, "n"))
				cost, err := Cost(n, price)
				if err != nil {
					t.Fatal(err)
				}
				if rapid.Bool().Draw(t, "wrongPayment") {
					cost.AddUint64(cost, 1)
				}
				_ = sale.Buy(buyer.Draw(t, "buyer"), n, cost)
			},
			"end": func(t *rapid.T) {
				_, _ = sale.End(rapid.SampledFrom(testAccounts[:2]).Draw(t, "caller"))
			},
			"": func(t *rapid.T) {
				if err := token.CheckSupply(); err != nil {
					t.Fatal(err)
				}
				expected := new(uint256.Int).Mul(sale.TokensSold(), price)
				if !sale.Ended() && !sale.Proceeds().Eq(expected) {
					t.Fatalf("proceeds %s, expected %s", sale.Proceeds(), expected)
				}
				var bought uint256.Int
				for _, a := range testAccounts[1:4] {
					bought.Add(&bought, token.BalanceOf(a))
				}
				if !bought.Eq(sale.TokensSold()) {
					t.Fatalf("buyers hold %s, sold %s", &bought, sale.TokensSold())
				}
			},
		})
	})
}
