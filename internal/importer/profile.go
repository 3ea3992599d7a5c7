package importer

// amountMode determines how the price and its direction are read from a row.
type amountMode int

const (
	// amountSigned is one signed column: negative is an expense.
	amountSigned amountMode = iota
	// amountSplit is separate withdrawal and deposit columns.
	amountSplit
	// amountTyped is an unsigned price next to an explicit type code column.
	amountTyped
)

// Profile describes the column layout of a supported CSV export.
type Profile struct {
	Name        string
	DateCol     string
	DateLayouts []string
	TitleCol    string
	ContentCol  string // optional
	PaymentCol  string // optional, the default payment code is used otherwise
	AmountMode  amountMode
	AmountCol   string // amountSigned
	DebitCol    string // amountSplit
	CreditCol   string // amountSplit
	PriceCol    string // amountTyped
	TypeCol     string // amountTyped

	// PositiveIsExpense flips amountSigned for statements that list
	// purchases as positive amounts.
	PositiveIsExpense bool
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.TitleCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	case amountTyped:
		cols = append(cols, p.PriceCol, p.TypeCol)
	}

	if p.PaymentCol != "" {
		cols = append(cols, p.PaymentCol)
	}

	return cols
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "spendo",
		DateCol:     "spendoDate",
		DateLayouts: []string{"2006-01-02"},
		TitleCol:    "spendoTitle",
		ContentCol:  "spendoContent",
		PaymentCol:  "spendoCodeType",
		AmountMode:  amountTyped,
		PriceCol:    "spendoPrice",
		TypeCol:     "spendoType",
	},
	{
		Name:        "card",
		DateCol:     "이용일자",
		DateLayouts: []string{"2006.01.02", "2006-01-02", "20060102"},
		TitleCol:    "가맹점명",
		AmountMode:  amountSigned,
		AmountCol:   "이용금액",

		PositiveIsExpense: true,
	},
	{
		Name:        "bank",
		DateCol:     "거래일자",
		DateLayouts: []string{"2006.01.02", "2006-01-02", "20060102"},
		TitleCol:    "적요",
		ContentCol:  "메모",
		AmountMode:  amountSplit,
		DebitCol:    "출금액",
		CreditCol:   "입금액",
	},
	{
		Name:        "generic",
		DateCol:     "Date",
		DateLayouts: []string{"2006-01-02", "01/02/2006", "02-01-2006"},
		TitleCol:    "Description",
		AmountMode:  amountSigned,
		AmountCol:   "Amount",
	},
}
