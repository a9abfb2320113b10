package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wooStatuses = []string{"pending", "processing", "completed", "cancelled", "refunded"}

func TestCustomizeScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		rc   RequestContext
		want QueryOverride
	}{
		{
			name: "date order with excluded statuses",
			cfg: Config{
				OrderField:       "date",
				ExcludedStatuses: []string{"cancelled", "refunded"},
			},
			rc: RequestContext{
				CurrentUserRoles: []string{"shop_manager"},
				IsDefaultListing: true,
				AllKnownStatuses: wooStatuses,
			},
			want: QueryOverride{
				Applied:        true,
				OrderBy:        "date",
				OrderDirection: Asc,
				StatusFilter:   []string{"pending", "processing", "completed"},
			},
		},
		{
			name: "custom without field name falls back to ID",
			cfg:  Config{OrderField: FieldCustom},
			rc: RequestContext{
				CurrentUserRoles: []string{"shop_manager"},
				IsDefaultListing: true,
				AllKnownStatuses: wooStatuses,
			},
			want: QueryOverride{Applied: true, OrderBy: "ID", OrderDirection: Asc},
		},
		{
			name: "role the user does not hold",
			cfg:  Config{OrderField: "title", AppliedToRole: "editor"},
			rc: RequestContext{
				CurrentUserRoles: []string{"shop_manager"},
				IsDefaultListing: true,
				AllKnownStatuses: wooStatuses,
			},
			want: QueryOverride{},
		},
		{
			name: "explicit status filter in request",
			cfg: Config{
				OrderField:       "title",
				ExcludedStatuses: []string{"cancelled"},
			},
			rc: RequestContext{
				CurrentUserRoles: []string{"administrator"},
				IsDefaultListing: false,
				AllKnownStatuses: wooStatuses,
			},
			want: QueryOverride{},
		},
		{
			name: "custom meta key used verbatim",
			cfg:  Config{OrderField: FieldCustom, CustomOrderField: "_billing_last_name"},
			rc:   RequestContext{IsDefaultListing: true},
			want: QueryOverride{Applied: true, OrderBy: "_billing_last_name", OrderDirection: Asc},
		},
		{
			name: "custom field ignored for built-in order field",
			cfg:  Config{OrderField: FieldModified, CustomOrderField: "_billing_last_name"},
			rc:   RequestContext{IsDefaultListing: true},
			want: QueryOverride{Applied: true, OrderBy: "modified", OrderDirection: Asc},
		},
		{
			name: "unknown order field passes through",
			cfg:  Config{OrderField: "menu_order"},
			rc:   RequestContext{IsDefaultListing: true},
			want: QueryOverride{Applied: true, OrderBy: "menu_order", OrderDirection: Asc},
		},
		{
			name: "matching role applies",
			cfg:  Config{OrderField: "title", AppliedToRole: "editor"},
			rc: RequestContext{
				CurrentUserRoles: []string{"subscriber", "editor"},
				IsDefaultListing: true,
			},
			want: QueryOverride{Applied: true, OrderBy: "title", OrderDirection: Asc},
		},
		{
			name: "role match ignores case",
			cfg:  Config{OrderField: "title", AppliedToRole: "Editor"},
			rc: RequestContext{
				CurrentUserRoles: []string{"editor"},
				IsDefaultListing: true,
			},
			want: QueryOverride{Applied: true, OrderBy: "title", OrderDirection: Asc},
		},
		{
			name: "unknown excluded codes are inert",
			cfg: Config{
				OrderField:       "ID",
				ExcludedStatuses: []string{"wc-archived"},
			},
			rc: RequestContext{IsDefaultListing: true, AllKnownStatuses: wooStatuses},
			want: QueryOverride{
				Applied:        true,
				OrderBy:        "ID",
				OrderDirection: Asc,
				StatusFilter:   wooStatuses,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Customize(tc.cfg, tc.rc))
		})
	}
}

func TestCustomizeExcludingEveryStatus(t *testing.T) {
	t.Parallel()

	got := Customize(
		Config{OrderField: "date", ExcludedStatuses: wooStatuses},
		RequestContext{IsDefaultListing: true, AllKnownStatuses: wooStatuses},
	)

	require.True(t, got.Applied)
	require.NotNil(t, got.StatusFilter)
	assert.Empty(t, got.StatusFilter)
}

func TestCustomizeNoExclusionsLeavesStatusAbsent(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"", FieldID, FieldDate, FieldCustom, "anything"} {
		got := Customize(
			Config{OrderField: field, ExcludedStatuses: []string{}},
			RequestContext{IsDefaultListing: true, AllKnownStatuses: wooStatuses},
		)
		assert.Nil(t, got.StatusFilter, "field %q", field)
		assert.Equal(t, Asc, got.OrderDirection, "field %q", field)
		assert.NotEmpty(t, got.OrderBy, "field %q", field)
	}
}

func TestCustomizeIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := Config{OrderField: "title", ExcludedStatuses: []string{"pending"}, AppliedToRole: "shop_manager"}
	rc := RequestContext{
		CurrentUserRoles: []string{"shop_manager"},
		IsDefaultListing: true,
		AllKnownStatuses: wooStatuses,
	}

	first := Customize(cfg, rc)
	second := Customize(cfg, rc)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"pending", "processing", "completed", "cancelled", "refunded"}, rc.AllKnownStatuses)
}

func TestIsDefaultListing(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"":            true,
		"   ":         true,
		"all":         true,
		"ALL":         true,
		"wc-pending":  false,
		"completed":   false,
		"trash":       false,
		"all,pending": false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsDefaultListing(in), "status %q", in)
	}
}

func TestFieldChoices(t *testing.T) {
	t.Parallel()

	assert.True(t, IsKnownField(FieldCustom))
	assert.True(t, IsKnownField(FieldModified))
	assert.False(t, IsKnownField("menu_order"))
	assert.Equal(t, FieldDate, DefaultConfig().OrderField)
}
