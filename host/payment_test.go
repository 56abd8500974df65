package host

import (
	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/call"
)

func payment(token string, nonce uint64, amount uint64) call.TokenPayment {
	return call.TokenPayment{Token: call.Token(token), Nonce: codec.U64(nonce), Amount: codec.BigUintFrom64(amount)}
}

func (s *HostTestSuite) pay(p Payment, ep Endpoint) Result {
	return s.host.ExecutePayable(s.ctx, nil, p, ep)
}

func (s *HostTestSuite) TestNotPayable() {
	notPayable := func(c *Call) { c.CheckNotPayable() }

	s.Assert().True(s.exec(notPayable).OK())

	res := s.pay(Payment{EGLD: codec.BigUintFrom64(1)}, notPayable)
	s.Assert().Equal(StatusExecutionFailed, res.Status)
	s.Assert().Equal(ErrNonPayableEGLD.Error(), res.Message)

	res = s.pay(Payment{ESDT: []call.TokenPayment{payment("TOK-123456", 0, 1)}}, notPayable)
	s.Assert().Equal(StatusExecutionFailed, res.Status)
	s.Assert().Equal(ErrNonPayableESDT.Error(), res.Message)

	// Zero EGLD is not a payment.
	s.Assert().True(s.pay(Payment{EGLD: codec.BigUintFrom64(0)}, notPayable).OK())
}

func (s *HostTestSuite) TestSinglePayment() {
	var (
		value  uint64
		token  string
		nonce  uint64
		kind   call.TokenType
		egld   uint64
		hasTok bool
	)
	res := s.pay(Payment{
		EGLD: codec.BigUintFrom64(3),
		ESDT: []call.TokenPayment{payment("NFT-abcdef", 7, 1)},
	}, func(c *Call) {
		egld = c.EGLDValue().Int().Uint64()
		value = c.SingleESDTValue().Int().Uint64()
		tok, ok := c.Token()
		token, hasTok = tok.String(), ok
		nonce = c.TokenNonce()
		kind = c.TokenType()
	})
	s.Require().True(res.OK(), res.Message)
	s.Assert().Equal(uint64(3), egld)
	s.Assert().Equal(uint64(1), value)
	s.Assert().True(hasTok)
	s.Assert().Equal("NFT-abcdef", token)
	s.Assert().Equal(uint64(7), nonce)
	s.Assert().Equal(call.NonFungible, kind)
}

func (s *HostTestSuite) TestNoTransfers() {
	var hasTok = true
	res := s.exec(func(c *Call) {
		_, hasTok = c.Token()
		s.Assert().Zero(c.ESDTTransfers())
		s.Assert().Zero(c.EGLDValue().Int().Sign())
	})
	s.Require().True(res.OK(), res.Message)
	s.Assert().False(hasTok)

	res = s.exec(func(c *Call) { _ = c.SingleESDTValue() })
	s.Assert().Equal(StatusExecutionFailed, res.Status)
	s.Assert().Equal(ErrInvalidTokenIndex.Error(), res.Message)
}

func (s *HostTestSuite) TestMultiplePayments() {
	multi := Payment{ESDT: []call.TokenPayment{
		payment("WEGLD-bd4d79", 0, 10),
		payment("SFT-000001", 2, 4),
	}}

	for name, ep := range map[string]Endpoint{
		"value": func(c *Call) { _ = c.SingleESDTValue() },
		"token": func(c *Call) { _, _ = c.Token() },
		"nonce": func(c *Call) { _ = c.TokenNonce() },
		"type":  func(c *Call) { _ = c.TokenType() },
	} {
		res := s.pay(multi, ep)
		s.Assert().Equal(StatusExecutionFailed, res.Status, name)
		s.Assert().Equal(ErrTooManyTransfers.Error(), res.Message, name)
	}

	var (
		tokens []string
		kinds  []call.TokenType
		total  uint64
	)
	res := s.pay(multi, func(c *Call) {
		for i := 0; i < c.ESDTTransfers(); i++ {
			tokens = append(tokens, c.TokenByIndex(i).String())
			kinds = append(kinds, c.TokenTypeByIndex(i))
			total += c.ESDTValueByIndex(i).Int().Uint64() * (c.TokenNonceByIndex(i) + 1)
		}
	})
	s.Require().True(res.OK(), res.Message)
	s.Assert().Equal([]string{"WEGLD-bd4d79", "SFT-000001"}, tokens)
	s.Assert().Equal([]call.TokenType{call.Fungible, call.NonFungible}, kinds)
	s.Assert().Equal(uint64(10+4*3), total)

	res = s.pay(multi, func(c *Call) { _ = c.TokenNonceByIndex(2) })
	s.Assert().Equal(StatusExecutionFailed, res.Status)
	s.Assert().Equal(ErrInvalidTokenIndex.Error(), res.Message)
}

func (s *HostTestSuite) TestPaymentFailureDropsWrites() {
	res := s.pay(Payment{EGLD: codec.BigUintFrom64(5)}, func(c *Call) {
		Store(c, sumKey, codec.BigUintFrom64(1))
		c.CheckNotPayable()
	})
	s.Require().Equal(StatusExecutionFailed, res.Status)
	s.Assert().Zero(s.store.Len())
}
