package repository

// Factory describes access to the domain repositories.
type Factory interface {
	Profiles() ProfileRepository
	Withdrawals() WithdrawalRepository
	Ledger() LedgerRepository
}
