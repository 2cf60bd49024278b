package aave

const chainFields = `
	name
	icon
	chainId
	explorerUrl
	isTestnet
	nativeWrappedToken
`

const chainsQuery = `
	query Chains {
		chains(filter: ALL) {` + chainFields + `}
	}
`

const marketsQuery = `
	query Markets($request: MarketsRequest!) {
		markets(request: $request) {
			name
			address
			icon
			chain {` + chainFields + `}
		}
	}
`

const historyQuery = `
	fragment Token on Currency {
		address
		chainId
		name
		imageUrl
		symbol
		decimals
	}

	fragment Reserve on ReserveInfo {
		market {
			name
			address
			icon
			chain {` + chainFields + `}
		}
		underlyingToken { ...Token }
		aToken { ...Token }
		vToken { ...Token }
		usdExchangeRate
		permitSupported
	}

	fragment TokenAmount on TokenAmount {
		usd
		usdPerToken
		amount {
			raw
			value
			decimals
		}
	}

	query UserTransactionHistory($request: UserTransactionHistoryRequest!) {
		userTransactionHistory(request: $request) {
			items {
				__typename
				... on UserSupplyTransaction {
					amount { ...TokenAmount }
					reserve { ...Reserve }
					blockExplorerUrl
					txHash
					timestamp
				}
				... on UserWithdrawTransaction {
					amount { ...TokenAmount }
					reserve { ...Reserve }
					blockExplorerUrl
					txHash
					timestamp
				}
				... on UserBorrowTransaction {
					amount { ...TokenAmount }
					reserve { ...Reserve }
					blockExplorerUrl
					txHash
					timestamp
				}
				... on UserRepayTransaction {
					amount { ...TokenAmount }
					reserve { ...Reserve }
					blockExplorerUrl
					txHash
					timestamp
				}
				... on UserUsageAsCollateralTransaction {
					enabled
					reserve { ...Reserve }
					blockExplorerUrl
					txHash
					timestamp
				}
				... on UserLiquidationCallTransaction {
					collateral {
						reserve { ...Reserve }
						amount { ...TokenAmount }
					}
					debtRepaid {
						reserve { ...Reserve }
						amount { ...TokenAmount }
					}
					blockExplorerUrl
					txHash
					timestamp
				}
			}
		}
	}
`
