package aging

import "sort"

// groupAccounts partitions bank accounts by vendor, derives their currency
// signals and fixes the evaluation order. Sorting by record id keeps the
// "first match wins" tie-break reproducible across runs regardless of how
// the ERP ordered its response.
func groupAccounts(accounts []BankAccount) map[int64][]BankAccount {
	byVendor := make(map[int64][]BankAccount)
	for _, acc := range accounts {
		acc.NotesCurrency = DetectCurrencyInNotes(acc.Notes)
		acc.FieldCurrency = NormalizeCurrency(acc.CurrencyLabel)
		byVendor[acc.VendorID] = append(byVendor[acc.VendorID], acc)
	}
	for _, list := range byVendor {
		sort.SliceStable(list, func(i, j int) bool { return list[i].RecordID < list[j].RecordID })
	}
	return byVendor
}

// bestAccount picks the account for one line by walking the matching tiers:
// notes-derived currency, explicit currency field, accounts with no
// currency signal at all, then any account as a last resort. Tiers 1 and 2
// compare signals verbatim, so a line whose currency normalizes to unknown
// pairs with accounts that carry no signal of that kind.
func bestAccount(accounts []BankAccount, invoiceCurrency string) (BankAccount, bool) {
	for _, acc := range accounts {
		if acc.NotesCurrency == invoiceCurrency {
			return acc, true
		}
	}
	for _, acc := range accounts {
		if acc.FieldCurrency == invoiceCurrency {
			return acc, true
		}
	}
	for _, acc := range accounts {
		if acc.NotesCurrency == "" && acc.FieldCurrency == "" {
			return acc, true
		}
	}
	if len(accounts) > 0 {
		return accounts[0], true
	}
	return BankAccount{}, false
}

// ResolveBanks assigns each classified line its best-guess bank account.
// Vendors without any account get empty bank fields, never an error.
func ResolveBanks(lines []ClassifiedLine, accounts []BankAccount) []ReportRow {
	byVendor := groupAccounts(accounts)

	rows := make([]ReportRow, 0, len(lines))
	for _, line := range lines {
		row := ReportRow{ClassifiedLine: line}
		if acc, ok := bestAccount(byVendor[line.VendorID], NormalizeCurrency(line.Currency)); ok {
			row.BankName = acc.BankName
			row.AccountNumber = acc.AccountNumber
			row.BankNotes = acc.Notes
		}
		rows = append(rows, row)
	}
	return rows
}
