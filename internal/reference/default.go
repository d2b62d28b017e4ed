package reference

// Default returns the compiled-in reference dataset: a large-cap US
// universe, the canonical metric-synonym table, and the manual alias
// overrides for names that diverge from the registered company name.
func Default() *Data {
	return &Data{
		Companies: defaultCompanies,
		Metrics:   defaultMetrics,
		Overrides: defaultOverrides,
	}
}

var defaultCompanies = []Company{
	{Ticker: "AAPL", Name: "Apple Inc"},
	{Ticker: "MSFT", Name: "Microsoft Corporation"},
	{Ticker: "GOOGL", Name: "Alphabet Inc"},
	{Ticker: "AMZN", Name: "Amazon.com Inc"},
	{Ticker: "META", Name: "Meta Platforms Inc"},
	{Ticker: "TSLA", Name: "Tesla Inc"},
	{Ticker: "NVDA", Name: "NVIDIA Corporation"},
	{Ticker: "BRK.B", Name: "Berkshire Hathaway Inc"},
	{Ticker: "JPM", Name: "JPMorgan Chase and Co"},
	{Ticker: "V", Name: "Visa Inc"},
	{Ticker: "JNJ", Name: "Johnson and Johnson"},
	{Ticker: "WMT", Name: "Walmart Inc"},
	{Ticker: "PG", Name: "Procter and Gamble Co"},
	{Ticker: "XOM", Name: "Exxon Mobil Corporation"},
	{Ticker: "UNH", Name: "UnitedHealth Group Inc"},
	{Ticker: "HD", Name: "The Home Depot Inc"},
	{Ticker: "MA", Name: "Mastercard Inc"},
	{Ticker: "BAC", Name: "Bank of America Corp"},
	{Ticker: "DIS", Name: "The Walt Disney Company"},
	{Ticker: "ADBE", Name: "Adobe Inc"},
	{Ticker: "CRM", Name: "Salesforce Inc"},
	{Ticker: "NFLX", Name: "Netflix Inc"},
	{Ticker: "INTC", Name: "Intel Corporation"},
	{Ticker: "KO", Name: "The Coca-Cola Company"},
	{Ticker: "PEP", Name: "PepsiCo Inc"},
	{Ticker: "CSCO", Name: "Cisco Systems Inc"},
	{Ticker: "ORCL", Name: "Oracle Corporation"},
	{Ticker: "IBM", Name: "International Business Machines Corporation"},
	{Ticker: "AMD", Name: "Advanced Micro Devices Inc"},
	{Ticker: "QCOM", Name: "Qualcomm Inc"},
	{Ticker: "T", Name: "AT and T Inc"},
	{Ticker: "VZ", Name: "Verizon Communications Inc"},
	{Ticker: "GS", Name: "The Goldman Sachs Group Inc"},
	{Ticker: "MS", Name: "Morgan Stanley"},
	{Ticker: "C", Name: "Citigroup Inc"},
	{Ticker: "CVX", Name: "Chevron Corporation"},
	{Ticker: "PFE", Name: "Pfizer Inc"},
	{Ticker: "MRK", Name: "Merck and Co Inc"},
	{Ticker: "ABBV", Name: "AbbVie Inc"},
	{Ticker: "NKE", Name: "Nike Inc"},
	{Ticker: "MCD", Name: "McDonald's Corporation"},
	{Ticker: "SBUX", Name: "Starbucks Corporation"},
	{Ticker: "BA", Name: "The Boeing Company"},
	{Ticker: "CAT", Name: "Caterpillar Inc"},
	{Ticker: "GE", Name: "General Electric Company"},
	{Ticker: "F", Name: "Ford Motor Company"},
	{Ticker: "GM", Name: "General Motors Company"},
	{Ticker: "UBER", Name: "Uber Technologies Inc"},
	{Ticker: "PYPL", Name: "PayPal Holdings Inc"},
	{Ticker: "SHOP", Name: "Shopify Inc"},
}

var defaultMetrics = []Metric{
	{ID: "revenue", Synonyms: []string{"sales", "top line", "turnover", "total revenue", "net sales"}},
	{ID: "net_income", Synonyms: []string{"profit", "net profit", "earnings", "bottom line", "net earnings"}},
	{ID: "eps", Synonyms: []string{"earnings per share", "diluted eps"}},
	{ID: "gross_margin", Synonyms: []string{"gross profit margin"}},
	{ID: "operating_margin", Synonyms: []string{"operating profit margin", "ebit margin"}},
	{ID: "operating_income", Synonyms: []string{"operating profit", "ebit", "income from operations"}},
	{ID: "ebitda", Synonyms: []string{"adjusted ebitda"}},
	{ID: "free_cash_flow", Synonyms: []string{"fcf", "free cashflow"}},
	{ID: "operating_cash_flow", Synonyms: []string{"cash from operations", "cash flow from operations"}},
	{ID: "pe_ratio", Synonyms: []string{"p/e", "pe", "p/e ratio", "price to earnings", "price-to-earnings", "earnings multiple"}},
	{ID: "market_cap", Synonyms: []string{"market capitalization", "market capitalisation", "market value"}},
	{ID: "dividend_yield", Synonyms: []string{"yield", "dividend"}},
	{ID: "total_debt", Synonyms: []string{"debt", "borrowings"}},
	{ID: "total_assets", Synonyms: []string{"assets"}},
	{ID: "cash_and_equivalents", Synonyms: []string{"cash", "cash position", "cash on hand"}},
	{ID: "roe", Synonyms: []string{"return on equity"}},
	{ID: "roa", Synonyms: []string{"return on assets"}},
	{ID: "capex", Synonyms: []string{"capital expenditure", "capital expenditures", "capital spending"}},
	{ID: "revenue_growth", Synonyms: []string{"sales growth", "top line growth", "revenue cagr"}},
	{ID: "net_margin", Synonyms: []string{"profit margin", "net profit margin"}},
}

var defaultOverrides = []Override{
	{Alias: "google", Ticker: "GOOGL", Priority: 10},
	{Alias: "alphabet", Ticker: "GOOGL", Priority: 10},
	{Alias: "facebook", Ticker: "META", Priority: 10},
	{Alias: "meta", Ticker: "META", Priority: 10},
	{Alias: "berkshire", Ticker: "BRK.B", Priority: 10},
	{Alias: "berkshire hathaway", Ticker: "BRK.B", Priority: 10},
	{Alias: "coca cola", Ticker: "KO", Priority: 10},
	{Alias: "coke", Ticker: "KO", Priority: 10},
	{Alias: "att", Ticker: "T", Priority: 10},
	{Alias: "jp morgan", Ticker: "JPM", Priority: 10},
	{Alias: "jpmorgan", Ticker: "JPM", Priority: 10},
	{Alias: "goldman", Ticker: "GS", Priority: 10},
	{Alias: "goldman sachs", Ticker: "GS", Priority: 10},
	{Alias: "walmart", Ticker: "WMT", Priority: 10},
	{Alias: "disney", Ticker: "DIS", Priority: 10},
	{Alias: "exxon", Ticker: "XOM", Priority: 10},
	{Alias: "ford", Ticker: "F", Priority: 10},
	{Alias: "nvidia", Ticker: "NVDA", Priority: 10},
	{Alias: "amazon", Ticker: "AMZN", Priority: 10},
	{Alias: "mcdonalds", Ticker: "MCD", Priority: 10},
	{Alias: "home depot", Ticker: "HD", Priority: 10},
	{Alias: "paypal", Ticker: "PYPL", Priority: 10},
}
