package region

// Region is a fixed geographic grouping of questions. Regions unlock in
// OrderIndex order.
type Region struct {
	ID          string `json:"id"`
	DisplayName string `json:"name_ar"`
	EnglishName string `json:"name_en"`
	OrderIndex  int    `json:"order_index"`
}

// Morocco returns the twelve administrative regions of Morocco in unlock order.
func Morocco() []Region {
	return []Region{
		{ID: "MA-01", DisplayName: "طنجة تطوان الحسيمة", EnglishName: "Tanger-Tetouan-Al Hoceima", OrderIndex: 0},
		{ID: "MA-02", DisplayName: "الشرق", EnglishName: "Oriental", OrderIndex: 1},
		{ID: "MA-03", DisplayName: "فاس مكناس", EnglishName: "Fes-Meknes", OrderIndex: 2},
		{ID: "MA-04", DisplayName: "الرباط سلا القنيطرة", EnglishName: "Rabat-Sale-Kenitra", OrderIndex: 3},
		{ID: "MA-05", DisplayName: "بني ملال خنيفرة", EnglishName: "Beni Mellal-Khenifra", OrderIndex: 4},
		{ID: "MA-06", DisplayName: "الدار البيضاء سطات", EnglishName: "Casablanca-Settat", OrderIndex: 5},
		{ID: "MA-07", DisplayName: "مراكش آسفي", EnglishName: "Marrakesh-Safi", OrderIndex: 6},
		{ID: "MA-08", DisplayName: "درعة تافيلالت", EnglishName: "Draa-Tafilalet", OrderIndex: 7},
		{ID: "MA-09", DisplayName: "سوس ماسة", EnglishName: "Souss-Massa", OrderIndex: 8},
		{ID: "MA-10", DisplayName: "كلميم واد نون", EnglishName: "Guelmim-Oued Noun", OrderIndex: 9},
		{ID: "MA-11", DisplayName: "العيون الساقية الحمراء", EnglishName: "Laayoune-Sakia El Hamra", OrderIndex: 10},
		{ID: "MA-12", DisplayName: "الداخلة وادي الذهب", EnglishName: "Dakhla-Oued Ed-Dahab", OrderIndex: 11},
	}
}
