package domain

import "testing"

func TestComputeQuote_BasePackage(t *testing.T) {
	q, err := ComputeQuote(QuoteInput{PackageName: "Tributestream Solo"})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Total != 550 {
		t.Fatalf("expected total 550, got %d", q.Total)
	}
	if len(q.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(q.Items))
	}
}

func TestComputeQuote_Surcharges(t *testing.T) {
	q, err := ComputeQuote(QuoteInput{
		PackageName:   "Tributestream Gold",
		DurationHours: 3,
		SecondAddress: true,
		ThirdAddress:  true,
	})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	// 1100 base + 100 + 100 locations + 2 extra hours * 50
	if q.Total != 1400 {
		t.Fatalf("expected total 1400, got %d", q.Total)
	}
	if len(q.Items) != 4 {
		t.Fatalf("expected 4 line items, got %d", len(q.Items))
	}
}

func TestComputeQuote_ZeroDurationCountsAsOneHour(t *testing.T) {
	q, err := ComputeQuote(QuoteInput{PackageName: "Tributestream Legacy", DurationHours: 0})
	if err != nil {
		t.Fatalf("ComputeQuote returned error: %v", err)
	}
	if q.Total != 2799 {
		t.Fatalf("expected total 2799, got %d", q.Total)
	}
}

func TestComputeQuote_UnknownPackage(t *testing.T) {
	if _, err := ComputeQuote(QuoteInput{PackageName: "Tributestream Platinum"}); err == nil {
		t.Fatalf("expected error for unknown package")
	}
}

func TestTributeSlug(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"John", "Doe", "john_doe"},
		{"  Mary Ann ", "Smith", "mary_ann_smith"},
		{"JEAN", "D ARC", "jean_d_arc"},
	}
	for _, c := range cases {
		if got := TributeSlug(c.first, c.last); got != c.want {
			t.Fatalf("TributeSlug(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}

func TestIdentityIsAdmin(t *testing.T) {
	admin := &Identity{Roles: []string{"subscriber", RoleAdministrator}}
	if !admin.IsAdmin() {
		t.Fatalf("expected admin")
	}
	user := &Identity{Roles: []string{"subscriber"}}
	if user.IsAdmin() {
		t.Fatalf("subscriber should not be admin")
	}
	empty := &Identity{}
	if empty.IsAdmin() {
		t.Fatalf("empty roles should not be admin")
	}
}
