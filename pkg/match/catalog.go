package match

// DefaultCatalog returns the built-in item names backing the management
// item search. A deployment with real inventory data would load these from
// the reporting machines instead.
func DefaultCatalog() []string {
	return []string{
		"iron_ingot", "iron_block", "iron_nugget", "iron_ore",
		"gold_ingot", "gold_block", "gold_nugget", "gold_ore",
		"diamond", "diamond_block", "diamond_ore",
		"coal", "coal_block", "coal_ore",
		"redstone", "redstone_block", "redstone_ore",
		"emerald", "emerald_block", "emerald_ore",
		"lapis_lazuli", "lapis_block", "lapis_ore",
		"copper_ingot", "copper_block", "copper_ore",
		"netherite_ingot", "netherite_block", "netherite_scrap",
		"wooden_planks", "oak_planks", "spruce_planks",
		"stone", "cobblestone", "gravel", "sand",
		"glass", "glass_pane", "obsidian",
	}
}
