package catalog

func bar(id, name string, w, h, t, kg float64) Profile {
	return Profile{ID: id, Name: name, WidthMm: w, HeightMm: h, WallThicknessMm: t, WeightKgPerMeter: kg, Basis: PerMeter}
}

func sheet(id, name string, t, kgPerSqM float64) Profile {
	return Profile{ID: id, Name: name, WidthMm: t, HeightMm: t, WallThicknessMm: t, WeightKgPerMeter: kgPerSqM, Basis: PerSqMeter}
}

// DefaultGateProfiles is the MS hollow section table. p0 is the "select" row.
func DefaultGateProfiles() []Profile {
	return []Profile{
		{ID: "p0", Name: "Select Profile", Basis: PerMeter},
		bar("p1", "12x12x1.6", 12, 12, 1.6, 0.47),
		bar("p2", "12x12x2", 12, 12, 2, 0.55),
		bar("p3", "15x15x1.6", 15, 15, 1.6, 0.62),
		bar("p4", "15x15x2", 15, 15, 2, 0.74),
		bar("p5", "15x15x2.2", 15, 15, 2.2, 0.79),
		bar("p6", "20x20x1.6", 20, 20, 1.6, 0.87),
		bar("p7", "20x20x2", 20, 20, 2, 1.05),
		bar("p8", "20x20x2.2", 20, 20, 2.2, 1.13),
		bar("p9", "20x20x2.6", 20, 20, 2.6, 1.29),
		bar("p10", "25x25x1.6", 25, 25, 1.6, 1.12),
		bar("p11", "25x25x2", 25, 25, 2, 1.37),
		bar("p12", "25x25x2.2", 25, 25, 2.2, 1.48),
		bar("p13", "25x25x2.6", 25, 25, 2.6, 1.7),
		bar("p14", "25x25x2.9", 25, 25, 2.9, 1.84),
		bar("p15", "30x30x1.6", 30, 30, 1.6, 1.37),
		bar("p16", "30x30x2", 30, 30, 2, 1.68),
		bar("p17", "30x30x2.2", 30, 30, 2.2, 1.82),
		bar("p18", "30x30x2.6", 30, 30, 2.6, 2.1),
		bar("p19", "30x30x2.9", 30, 30, 2.9, 2.3),
		bar("p20", "30x30x3", 30, 30, 3, 2.36),
		bar("p21", "40x20x1.6", 40, 20, 1.6, 1.37),
		bar("p22", "40x20x2", 40, 20, 2, 1.68),
		bar("p23", "50x25x1.6", 50, 25, 1.6, 1.75),
		bar("p24", "50x25x2", 50, 25, 2, 2.15),
		bar("p25", "40x40x1.6", 40, 40, 1.6, 1.88),
		bar("p26", "40x40x2", 40, 40, 2, 2.31),
		bar("p27", "40x40x3", 40, 40, 3, 3.3),
		bar("p28", "50x50x1.6", 50, 50, 1.6, 2.38),
		bar("p29", "50x50x2", 50, 50, 2, 2.94),
		bar("p30", "50x50x3", 50, 50, 3, 4.25),
		bar("p31", "60x40x2", 60, 40, 2, 2.94),
		bar("p32", "60x40x3", 60, 40, 3, 4.25),
		bar("p33", "75x50x2", 75, 50, 2, 3.72),
		bar("p34", "75x50x3", 75, 50, 3, 5.42),
		bar("p35", "100x50x3", 100, 50, 3, 6.6),
		sheet("sheet-1.5", "1.5mm MS Sheet", 1.5, 11.78),
		sheet("sheet-2.0", "2.0mm MS Sheet", 2.0, 15.70),
		sheet("sheet-3.0", "3.0mm MS Sheet", 3.0, 23.55),
	}
}

// DefaultWindowProfiles is the aluminium section table.
func DefaultWindowProfiles() []WindowProfile {
	return []WindowProfile{
		{ID: "wp_of_1", Name: "2.5 Track Outer Frame (60x55)", Category: OuterFrame, WidthMm: 60, HeightMm: 55, WeightKgPerMeter: 1.1, StandardLengthM: 6},
		{ID: "wp_vm_1", Name: "Vertical Mullion (40x40)", Category: VerticalMullion, WidthMm: 40, HeightMm: 40, WeightKgPerMeter: 0.9, StandardLengthM: 6},
		{ID: "wp_hm_1", Name: "Horizontal Mullion (40x40)", Category: HorizontalMullion, WidthMm: 40, HeightMm: 40, WeightKgPerMeter: 0.9, StandardLengthM: 6},
		{ID: "wp_sh_1", Name: "Shutter Handle (25x60)", Category: ShutterHandle, WidthMm: 25, HeightMm: 60, WeightKgPerMeter: 0.85, StandardLengthM: 6},
		{ID: "wp_si_1", Name: "Shutter Interlock (25x40)", Category: ShutterInterlock, WidthMm: 25, HeightMm: 40, WeightKgPerMeter: 0.75, StandardLengthM: 6},
		{ID: "wp_st_1", Name: "Shutter Top/Bottom (25x40)", Category: ShutterTopBottom, WidthMm: 25, HeightMm: 40, WeightKgPerMeter: 0.80, StandardLengthM: 6},
		{ID: "wp_cf_1", Name: "Casement Frame (45x50)", Category: CasementFrame, WidthMm: 45, HeightMm: 50, WeightKgPerMeter: 1.0, StandardLengthM: 6},
		{ID: "wp_cs_1", Name: "Casement Sash (45x60)", Category: CasementSash, WidthMm: 45, HeightMm: 60, WeightKgPerMeter: 1.2, StandardLengthM: 6},
	}
}

func Default() *Catalog {
	return New(DefaultGateProfiles(), DefaultWindowProfiles())
}
