package domain

// LivestreamPackage is one of the fixed service tiers.
type LivestreamPackage struct {
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Type     string   `json:"type"`
	Features []string `json:"features"`
}

// Packages is the current catalog. Prices are whole USD.
var Packages = []LivestreamPackage{
	{
		Name:  "Tributestream Solo",
		Price: 550,
		Type:  "Offline Recording",
		Features: []string{
			"Professional Videographer",
			"2 Hours of Record Time",
			"Custom URL",
			"1 Year of Complimentary Hosting",
			"Complimentary Download of Recording",
		},
	},
	{
		Name:  "Tributestream Gold",
		Price: 1100,
		Type:  "Livestream Recording",
		Features: []string{
			"Professional Livestream Technician",
			"Remote Livestream Producer",
			"Professional Videographer",
			"2 Hours of Broadcast Time",
			"Custom URL",
			"1 Year of Complimentary Hosting",
			"Complimentary Download of Livestream",
		},
	},
	{
		Name:  "Tributestream Legacy",
		Price: 2799,
		Type:  "Livestream Production",
		Features: []string{
			"B-Roll Videographer",
			"Pre-Site Visit by Production Manager",
			"Post Production Editing",
			"Professional Livestream Technician",
			"Remote Livestream Producer",
			"Professional Videographer",
			"2 Hours of Broadcast Time",
			"Custom URL",
			"1 Year of Complimentary Hosting",
			"Complimentary Download of Livestream",
		},
	},
}

// PackageByName looks up a catalog entry.
func PackageByName(name string) (LivestreamPackage, bool) {
	for _, p := range Packages {
		if p.Name == name {
			return p, true
		}
	}
	return LivestreamPackage{}, false
}

const (
	additionalLocationCharge = 100
	extendedHourCharge       = 50
)

// QuoteInput selects a package plus the options that carry surcharges.
type QuoteInput struct {
	PackageName   string
	DurationHours int
	SecondAddress bool
	ThirdAddress  bool
}

// LineItem is one row of a pricing breakdown.
type LineItem struct {
	Item  string `json:"item"`
	Price int    `json:"price"`
}

// Quote is an itemized price for a livestream booking.
type Quote struct {
	PackageName string     `json:"package_name"`
	Items       []LineItem `json:"items"`
	Total       int        `json:"total"`
}

// ComputeQuote prices a booking: base package, $100 per additional location,
// $50 per broadcast hour beyond the first.
func ComputeQuote(in QuoteInput) (*Quote, error) {
	pkg, ok := PackageByName(in.PackageName)
	if !ok {
		return nil, Validationf("unknown package %q", in.PackageName)
	}
	if in.DurationHours < 1 {
		in.DurationHours = 1
	}

	q := &Quote{
		PackageName: pkg.Name,
		Items:       []LineItem{{Item: pkg.Name, Price: pkg.Price}},
	}
	if in.SecondAddress {
		q.Items = append(q.Items, LineItem{Item: "Second Location", Price: additionalLocationCharge})
	}
	if in.ThirdAddress {
		q.Items = append(q.Items, LineItem{Item: "Third Location", Price: additionalLocationCharge})
	}
	if in.DurationHours > 1 {
		q.Items = append(q.Items, LineItem{
			Item:  "Extended Duration",
			Price: (in.DurationHours - 1) * extendedHourCharge,
		})
	}
	for _, it := range q.Items {
		q.Total += it.Price
	}
	return q, nil
}
