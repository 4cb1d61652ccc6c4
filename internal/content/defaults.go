package content

// Default returns the stock Grimoire content tables.
func Default() *Tables {
	return &Tables{
		Boot: []BootEntry{
			{Text: "ARCANE TERMINAL v3.14.159", Kind: BootInfo},
			{Text: "Initializing mana conduits...", Kind: BootLoading},
			{Text: "Mana conduits [OK]", Kind: BootSuccess},
			{Text: "Loading sigil decoder...", Kind: BootLoading},
			{Text: "Sigil decoder [OK]", Kind: BootSuccess},
			{Text: "Establishing astral link...", Kind: BootLoading},
			{Text: "Astral link [OK]", Kind: BootSuccess},
			{Text: "Decrypting ancient protocols...", Kind: BootLoading},
			{Text: "Protocols decrypted [OK]", Kind: BootSuccess},
			{Text: "", Kind: BootBlank},
			{Text: "SYSTEM READY", Kind: BootSuccess},
		},
		Dialogue: []string{
			"Ah... the terminal stirs.",
			"",
			"An apprentice approaches.",
			"",
			"I am Archmage Sasquatch.",
			"Keeper of Algorithms.",
			"Maintainer of the Grand Grimoire.",
			"",
			"The first to merge a spell with zero conflicts.",
		},
		SystemChecks: []Check{
			{Name: "APPRENTICE_BINDING", Display: "Apprentice Binding Protocol"},
			{Name: "GRIMOIRE_LINK", Display: "Grimoire Link Interface"},
			{Name: "SPELL_COMPILER", Display: "Spell Compilation Engine"},
			{Name: "RUNE_VALIDATOR", Display: "Rune Validation System"},
			{Name: "MANA_FLOW", Display: "Mana Flow Controller"},
		},
		Loading: []string{
			"Loading spell indices...",
			"Parsing rune libraries...",
			"Compiling incantation cache...",
			"Validating grimoire checksum...",
			"GRIMOIRE READY",
		},
		Runes: []Check{
			{Name: "SIGIL_ALPHA", Display: "Sigil Alpha"},
			{Name: "SIGIL_BETA", Display: "Sigil Beta"},
			{Name: "SIGIL_GAMMA", Display: "Sigil Gamma"},
			{Name: "SIGIL_DELTA", Display: "Sigil Delta"},
			{Name: "SIGIL_EPSILON", Display: "Sigil Epsilon"},
			{Name: "SIGIL_ZETA", Display: "Sigil Zeta"},
		},
		Glyphs: []string{"*", "+", "#", "@", "%", "&", "^", "~"},
		Lines: Lines{
			Speaker:          "SASQUATCH",
			ProfileHeader:    "=== INITIALIZING APPRENTICE PROFILE ===",
			GrimoireTitle:    "GRIMOIRE SYSTEM",
			GrimoireStatus:   "Status: ACTIVE",
			GrimoireVersion:  "Version: ARCANE.2024.XI",
			GrimoireSpells:   "Spells Registered: 0",
			GrimoireFollowUp: "The Grand Grimoire awaits your first spell.",
			RuneHeader:       "=== RUNE CALIBRATION RITUAL ===",
			Harmony:          "All runes aligned. Remarkable, apprentice.",
			Disharmony:       "The runes drift out of harmony.",
			DisharmonyFollow: "You must restore balance, apprentice.",
			Closing:          "The system is prepared.",
			ClosingFollow:    "Your journey begins now, apprentice.",
			Prompt:           "GRIMOIRE>",
			Initiate:         ">>> INITIATING ARCANE INTERFACE...",
			Entering:         ">>> ENTERING THE GRIMOIRE...",
		},
		Portrait: []string{
			"    .  *   .\n      .  .\n   *    .   *\n     .    .\n  .    *    .",
			"      ***\n     *..*\n      ...\n     *...*\n      ***",
			"       ^\n      /*\\\n     | . |\n      \\./\n       |",
			"         /\\\n        /  \\\n       / ** \\\n      /______\\\n       | o o|\n       |  > |\n        \\__/\n     .-'    '-.\n    /  '----'  \\\n   |  |      |  |\n   |  '------'  |\n    \\__________/",
		},
	}
}
