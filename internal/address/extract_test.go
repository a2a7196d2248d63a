package address_test

import (
	"testing"

	"github.com/club-roster-api/internal/address"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want address.Address
	}{
		{
			name: "full address",
			raw:  "Main St 12, 120 00 Prague",
			want: address.Address{Street: "Main St", StreetNumber: "12", ZipCode: "12000", City: "Prague"},
		},
		{
			name: "zip and city only",
			raw:  "120 00 Prague",
			want: address.Address{ZipCode: "12000", City: "Prague"},
		},
		{
			name: "slash house number",
			raw:  "Na Vysluni 2906/64, 100 00 Praha 10",
			want: address.Address{Street: "Na Vysluni", StreetNumber: "2906/64", ZipCode: "10000", City: "Praha 10"},
		},
		{
			name: "zip without space",
			raw:  "Main St 12, 12000 Prague",
			want: address.Address{Street: "Main St", StreetNumber: "12", ZipCode: "12000", City: "Prague"},
		},
		{
			name: "city before bare zip",
			raw:  "Prague, 120 00",
			want: address.Address{ZipCode: "12000", City: "Prague"},
		},
		{
			name: "no zip falls back to second segment as city",
			raw:  "Evergreen Terrace 742, Springfield",
			want: address.Address{Street: "Evergreen Terrace", StreetNumber: "742", City: "Springfield"},
		},
		{
			name: "street and number only",
			raw:  "Main St 12",
			want: address.Address{Street: "Main St", StreetNumber: "12"},
		},
		{
			name: "unstructured text kept as street",
			raw:  "Unknown place",
			want: address.Address{Street: "Unknown place"},
		},
		{
			name: "letter suffix on number",
			raw:  "Oak Lane 12a, 530 02 Pardubice",
			want: address.Address{Street: "Oak Lane", StreetNumber: "12a", ZipCode: "53002", City: "Pardubice"},
		},
		{
			name: "empty input",
			raw:  "",
			want: address.Address{},
		},
		{
			name: "only separators",
			raw:  " , , ",
			want: address.Address{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := address.Extract(tt.raw)
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
