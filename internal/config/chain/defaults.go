package chain

// 内置链默认值
//
// 只内置链 ID、名称与代币精度；合约地址因部署而异，需要在配置文件的 chains 段中提供。
var defaultChains = []Chain{
	{
		ChainID: 84532,
		Name:    "Base Sepolia",
		Native:  Token{Symbol: "USDC", Decimals: 6},
		Super:   Token{Symbol: "USDCx", Decimals: 18},
	},
	{
		ChainID: 11155111,
		Name:    "Ethereum Sepolia",
		Native:  Token{Symbol: "ETH", Decimals: 18},
		Super:   Token{Symbol: "ETHx", Decimals: 18},
	},
	{
		ChainID: 11155420,
		Name:    "OP Sepolia",
		Native:  Token{Symbol: "USDC", Decimals: 6},
		Super:   Token{Symbol: "USDCx", Decimals: 18},
	},
}

// maxDecimals 允许的最大代币精度
const maxDecimals = 36
