package refdata

// SeedList pairs a list name with its entries and pinned code, used both for
// the built-in registry and for seeding the database-backed list source.
type SeedList struct {
	Name    string  `yaml:"name"`
	Pinned  string  `yaml:"pinned"`
	Entries []Entry `yaml:"entries"`
}

// SeedLists returns the built-in controlled lists. South Africa is pinned
// first on the country and dialing-code lists because it is the home
// jurisdiction of the onboarding flow.
func SeedLists() []SeedList {
	return []SeedList{
		{
			Name:   ListCountries,
			Pinned: "ZA",
			Entries: []Entry{
				{Code: "ZA", Label: "South Africa", IsActive: true},
				{Code: "BW", Label: "Botswana", IsActive: true},
				{Code: "DE", Label: "Germany", IsActive: true},
				{Code: "FR", Label: "France", IsActive: true},
				{Code: "GB", Label: "United Kingdom", IsActive: true},
				{Code: "MU", Label: "Mauritius", IsActive: true},
				{Code: "MZ", Label: "Mozambique", IsActive: true},
				{Code: "NA", Label: "Namibia", IsActive: true},
				{Code: "NG", Label: "Nigeria", IsActive: true},
				{Code: "US", Label: "United States", IsActive: true},
				{Code: "ZW", Label: "Zimbabwe", IsActive: true},
				// Retired code kept for historic submissions.
				{Code: "AN", Label: "Netherlands Antilles", IsActive: false},
			},
		},
		{
			Name:   ListDialingCodes,
			Pinned: "+27",
			Entries: []Entry{
				{Code: "+27", Label: "South Africa (+27)", IsActive: true},
				{Code: "+1", Label: "United States (+1)", IsActive: true},
				{Code: "+230", Label: "Mauritius (+230)", IsActive: true},
				{Code: "+234", Label: "Nigeria (+234)", IsActive: true},
				{Code: "+258", Label: "Mozambique (+258)", IsActive: true},
				{Code: "+263", Label: "Zimbabwe (+263)", IsActive: true},
				{Code: "+264", Label: "Namibia (+264)", IsActive: true},
				{Code: "+267", Label: "Botswana (+267)", IsActive: true},
				{Code: "+33", Label: "France (+33)", IsActive: true},
				{Code: "+44", Label: "United Kingdom (+44)", IsActive: true},
				{Code: "+49", Label: "Germany (+49)", IsActive: true},
			},
		},
		{
			Name: ListTitles,
			Entries: []Entry{
				{Code: "MR", Label: "Mr", IsActive: true, SortOrder: 1},
				{Code: "MRS", Label: "Mrs", IsActive: true, SortOrder: 2},
				{Code: "MS", Label: "Ms", IsActive: true, SortOrder: 3},
				{Code: "DR", Label: "Dr", IsActive: true, SortOrder: 4},
				{Code: "PROF", Label: "Prof", IsActive: true, SortOrder: 5},
				{Code: "ADV", Label: "Adv", IsActive: true, SortOrder: 6},
			},
		},
		{
			Name: ListIndustries,
			Entries: []Entry{
				{Code: "AGRI", Label: "Agriculture", IsActive: true},
				{Code: "CONS", Label: "Construction", IsActive: true},
				{Code: "FIN", Label: "Financial Services", IsActive: true},
				{Code: "HOSP", Label: "Hospitality", IsActive: true},
				{Code: "LEGAL", Label: "Legal Services", IsActive: true},
				{Code: "MAN", Label: "Manufacturing", IsActive: true},
				{Code: "MED", Label: "Medical and Health", IsActive: true},
				{Code: "MIN", Label: "Mining", IsActive: true},
				{Code: "PROP", Label: "Property", IsActive: true},
				{Code: "RETAIL", Label: "Retail and Wholesale", IsActive: true},
				{Code: "TECH", Label: "Information Technology", IsActive: true},
				{Code: "TRANS", Label: "Transport and Logistics", IsActive: true},
				{Code: "OTHER", Label: "Other", IsActive: true, SortOrder: 99},
			},
		},
		{
			Name: ListSourceOfFunds,
			Entries: []Entry{
				{Code: "SALARY", Label: "Salary or Wages", IsActive: true},
				{Code: "BUSINESS", Label: "Business Income", IsActive: true},
				{Code: "INVEST", Label: "Investment Income", IsActive: true},
				{Code: "INHERIT", Label: "Inheritance", IsActive: true},
				{Code: "SAVINGS", Label: "Savings", IsActive: true},
				{Code: "LOAN", Label: "Loan Proceeds", IsActive: true},
				{Code: "DONATION", Label: "Donation or Gift", IsActive: true},
				{Code: "OTHER", Label: "Other", IsActive: true, SortOrder: 99},
			},
		},
	}
}

// DefaultRegistry builds a registry from the built-in seed lists.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, list := range SeedLists() {
		r.Register(list.Name, list.Entries, list.Pinned)
	}
	return r
}
