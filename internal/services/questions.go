package services

import "goldium/internal/models"

// built-in question bank, difficulty 1 (easy) to 3 (hard)
var questionBank = []models.Question{
	{
		ID:         1,
		Category:   "basics",
		Prompt:     "What is a blockchain?",
		Options:    []string{"A distributed ledger of transactions", "A type of database owned by one company", "A programming language", "A cryptocurrency exchange"},
		Answer:     0,
		Difficulty: 1,
	},
	{
		ID:         2,
		Category:   "basics",
		Prompt:     "What does a wallet address identify?",
		Options:    []string{"Your email account", "An account on the blockchain", "Your bank branch", "A mining pool"},
		Answer:     1,
		Difficulty: 1,
	},
	{
		ID:         3,
		Category:   "basics",
		Prompt:     "What is needed to sign a transaction?",
		Options:    []string{"A public key", "A wallet address", "A private key", "A block hash"},
		Answer:     2,
		Difficulty: 1,
	},
	{
		ID:         4,
		Category:   "basics",
		Prompt:     "What does 'HODL' mean in crypto slang?",
		Options:    []string{"Sell everything quickly", "Hold an asset long term", "Trade on margin", "Hash of a distributed ledger"},
		Answer:     1,
		Difficulty: 1,
	},
	{
		ID:         5,
		Category:   "solana",
		Prompt:     "What unit is a fraction of one SOL?",
		Options:    []string{"Wei", "Satoshi", "Lamport", "Gwei"},
		Answer:     2,
		Difficulty: 1,
	},
	{
		ID:         6,
		Category:   "solana",
		Prompt:     "What does transaction finality mean?",
		Options:    []string{"The transaction can no longer be reverted", "The transaction was broadcast", "The transaction is pending", "The fee was refunded"},
		Answer:     0,
		Difficulty: 2,
	},
	{
		ID:         7,
		Category:   "solana",
		Prompt:     "What is a slot on Solana?",
		Options:    []string{"A wallet slot for NFTs", "The period in which a leader produces a block", "A staking account", "A token account"},
		Answer:     1,
		Difficulty: 2,
	},
	{
		ID:         8,
		Category:   "defi",
		Prompt:     "What does APY stand for?",
		Options:    []string{"Annual Percentage Yield", "Average Payment per Year", "Automated Protocol Yield", "Annual Protocol Income"},
		Answer:     0,
		Difficulty: 2,
	},
	{
		ID:         9,
		Category:   "defi",
		Prompt:     "What is slippage in a token swap?",
		Options:    []string{"A failed transaction", "The network fee", "The difference between quoted and executed price", "The time a swap takes"},
		Answer:     2,
		Difficulty: 2,
	},
	{
		ID:         10,
		Category:   "defi",
		Prompt:     "What does staking typically provide to a proof-of-stake network?",
		Options:    []string{"Storage space", "Economic security", "Faster internet", "Private transactions"},
		Answer:     1,
		Difficulty: 2,
	},
	{
		ID:         11,
		Category:   "defi",
		Prompt:     "What is an AMM?",
		Options:    []string{"A market maker using liquidity pools and a pricing formula", "A manual order book", "A mining algorithm", "A wallet standard"},
		Answer:     0,
		Difficulty: 3,
	},
	{
		ID:         12,
		Category:   "defi",
		Prompt:     "What is impermanent loss?",
		Options:    []string{"Losing a private key", "A failed airdrop", "A hack of a bridge", "Value lost by liquidity providers from price divergence"},
		Answer:     3,
		Difficulty: 3,
	},
	{
		ID:         13,
		Category:   "solana",
		Prompt:     "Why do Solana transactions include a recent blockhash?",
		Options:    []string{"To pay the fee", "To prevent replay and expire stale transactions", "To select a validator", "To compress the payload"},
		Answer:     1,
		Difficulty: 3,
	},
	{
		ID:         14,
		Category:   "nft",
		Prompt:     "What makes an NFT non-fungible?",
		Options:    []string{"It cannot be transferred", "It has no owner", "Each token is unique and not interchangeable", "It is stored off-chain"},
		Answer:     2,
		Difficulty: 1,
	},
	{
		ID:         15,
		Category:   "nft",
		Prompt:     "Where is NFT artwork usually stored?",
		Options:    []string{"Inside the block header", "Off-chain, referenced by the token metadata", "In the validator memory", "In the wallet app"},
		Answer:     1,
		Difficulty: 3,
	},
}
