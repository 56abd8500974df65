package call

// Names of the protocol built-in functions.
const (
	ESDTLocalMint           = "ESDTLocalMint"
	ESDTLocalBurn           = "ESDTLocalBurn"
	MultiESDTNFTTransfer    = "MultiESDTNFTTransfer"
	ESDTNFTTransfer         = "ESDTNFTTransfer"
	ESDTNFTCreate           = "ESDTNFTCreate"
	ESDTNFTAddQuantity      = "ESDTNFTAddQuantity"
	ESDTNFTAddURI           = "ESDTNFTAddURI"
	ESDTNFTUpdateAttributes = "ESDTNFTUpdateAttributes"
	ESDTNFTBurn             = "ESDTNFTBurn"
	ESDTTransfer            = "ESDTTransfer"
	ChangeOwnerAddress      = "ChangeOwnerAddress"
	SetUserName             = "SetUserName"
	UpgradeContract         = "upgradeContract"
)

// IsESDTTransfer reports whether name is one of the token transfer built-ins.
func IsESDTTransfer(name string) bool {
	switch name {
	case ESDTTransfer, ESDTNFTTransfer, MultiESDTNFTTransfer:
		return true
	}
	return false
}
