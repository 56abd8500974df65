package host

import (
	"errors"

	codec "github.com/oy3o/sccodec"
	"github.com/oy3o/sccodec/call"
)

var (
	ErrNonPayableEGLD    = errors.New("function does not accept EGLD payment")
	ErrNonPayableESDT    = errors.New("function does not accept ESDT payment")
	ErrInvalidTokenIndex = errors.New("invalid token index")
	ErrTooManyTransfers  = errors.New("too many ESDT transfers")
)

// Payment is the value sent along with a call: native EGLD and any number
// of ESDT transfers.
type Payment struct {
	EGLD codec.BigUint
	ESDT []call.TokenPayment
}

// CheckNotPayable aborts the call if it carries any value.
func (c *Call) CheckNotPayable() {
	if c.pay.EGLD.Int().Sign() > 0 {
		c.fail(ErrNonPayableEGLD)
	}
	if len(c.pay.ESDT) > 0 {
		c.fail(ErrNonPayableESDT)
	}
}

// EGLDValue returns the EGLD sent with the call.
func (c *Call) EGLDValue() codec.BigUint { return c.pay.EGLD }

// ESDTTransfers returns the number of ESDT transfers sent with the call.
func (c *Call) ESDTTransfers() int { return len(c.pay.ESDT) }

// SingleESDTValue returns the amount of the only ESDT transfer.
func (c *Call) SingleESDTValue() codec.BigUint {
	c.atMostOneTransfer()
	return c.ESDTValueByIndex(0)
}

// Token returns the identifier of the only ESDT transfer, or false when
// there is none.
func (c *Call) Token() (call.TokenIdentifier, bool) {
	c.atMostOneTransfer()
	if len(c.pay.ESDT) == 0 {
		return call.TokenIdentifier{}, false
	}
	return c.TokenByIndex(0), true
}

// TokenNonce returns the nonce of the only ESDT transfer.
func (c *Call) TokenNonce() uint64 {
	c.atMostOneTransfer()
	return c.TokenNonceByIndex(0)
}

// TokenType returns the type of the only ESDT transfer.
func (c *Call) TokenType() call.TokenType {
	c.atMostOneTransfer()
	return c.TokenTypeByIndex(0)
}

func (c *Call) ESDTValueByIndex(i int) codec.BigUint { return c.transfer(i).Amount }

// TokenByIndex returns the identifier of transfer i, staging it in memory.
func (c *Call) TokenByIndex(i int) call.TokenIdentifier {
	t := c.transfer(i).Token
	c.MemStore(0, uint32(t.Len()))
	return t
}

func (c *Call) TokenNonceByIndex(i int) uint64 { return uint64(c.transfer(i).Nonce) }

func (c *Call) TokenTypeByIndex(i int) call.TokenType {
	return call.TokenTypeForNonce(c.TokenNonceByIndex(i))
}

func (c *Call) transfer(i int) call.TokenPayment {
	if i < 0 || i >= len(c.pay.ESDT) {
		c.fail(ErrInvalidTokenIndex)
	}
	return c.pay.ESDT[i]
}

func (c *Call) atMostOneTransfer() {
	if len(c.pay.ESDT) > 1 {
		c.fail(ErrTooManyTransfers)
	}
}

// fail ends the execution with err. It does not return.
func (c *Call) fail(err error) {
	_ = c.h.HandleError(err)
}
