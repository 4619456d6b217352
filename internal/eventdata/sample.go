package eventdata

// SampleID is the event id under which Sample is served by the demo server.
const SampleID = "sample"

// Sample returns a small conference perk grid, used by the demo server when
// no fixture overrides it.
func Sample() EventData {
	blurb := Perk{ID: "5dd7b830-6aa6-40ad-977a-f23c9acfc3e7", Description: "Blurb on emberconf.com", Type: PerkTypeQuantity, Limited: true, SoldOut: true}
	logo := Perk{ID: "6b6d2ae1-caef-49ac-bda2-4bca46279cca", Description: "Logo on screens during breaks", Type: PerkTypeFreeform, Limited: true}
	promo := Perk{ID: "21c155d2-638e-419f-ab36-ea7dafdbda52", Description: "Opportunities for promo videos", Type: PerkTypeSimple, Limited: true, SoldOut: true}

	return EventData{
		ID:   SampleID,
		Name: "EmberConf",
		Packages: []Package{
			{
				ID: "3c7d5844-8607-4967-8b04-3a0f831b2b06", Name: "Silver", Price: 24, Limited: true,
				Perks: []PerkWithValue{
					{Perk: blurb, Value: IntValue(1)},
					{Perk: logo, Value: StringValue("Included")},
					{Perk: promo, Value: BoolValue(false)},
				},
			},
			{
				ID: "83e3c65e-3888-4883-9595-eea174e82a29", Name: "Gold", Price: 40, Limited: true,
				Perks: []PerkWithValue{
					{Perk: blurb, Value: IntValue(2)},
					{Perk: logo, Value: StringValue("Included")},
					{Perk: promo, Value: BoolValue(true)},
				},
			},
			{
				ID: "1f8cb4c2-9d36-42ab-b51a-52c8c29c0bdf", Name: "Diamond", Price: 42, Limited: true, SoldOut: true,
				Perks: []PerkWithValue{
					{Perk: logo, Value: StringValue("Included")},
					{Perk: promo, Value: BoolValue(true)},
				},
			},
		},
		Perks: []Perk{blurb, logo, promo},
	}
}
