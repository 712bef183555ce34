package textnorm

// substitution is one literal character replacement.
type substitution struct {
	from string
	to   string
}

// diacriticsMap folds Amharic homophone variants to a single base form.
// Applied as a sequence of literal substitutions; entry order does not
// affect the result because no replacement target appears as a key.
var diacriticsMap = []substitution{
	{"ሃ", "ሀ"}, {"ኅ", "ሀ"}, {"ኃ", "ሀ"}, {"ሐ", "ሀ"}, {"ሓ", "ሀ"}, {"ኻ", "ሀ"},
	{"ሑ", "ሁ"}, {"ኁ", "ሁ"}, {"ዅ", "ሁ"},
	{"ሒ", "ሂ"}, {"ኂ", "ሂ"}, {"ኺ", "ሂ"},
	{"ሔ", "ሄ"}, {"ኄ", "ሄ"}, {"ዄ", "ሄ"},
	{"ሕ", "ህ"}, {"ኽ", "ህ"},
	{"ሖ", "ሆ"}, {"ኆ", "ሆ"}, {"ኾ", "ሆ"},
	{"ሠ", "ሰ"}, {"ሡ", "ሱ"}, {"ሢ", "ሲ"}, {"ሣ", "ሳ"}, {"ሤ", "ሴ"}, {"ሥ", "ስ"}, {"ሦ", "ሶ"},
	{"ዐ", "አ"}, {"ዓ", "አ"}, {"ኣ", "አ"},
	{"ዑ", "ኡ"}, {"ዒ", "ኢ"}, {"ዔ", "ኤ"}, {"ዕ", "እ"}, {"ዖ", "ኦ"},
	{"ፀ", "ጸ"}, {"ፁ", "ጹ"}, {"ፂ", "ጺ"}, {"ፃ", "ጻ"}, {"ፄ", "ጼ"}, {"ፅ", "ጽ"}, {"ፆ", "ጾ"},
	{"ቊ", "ቁ"}, {"ኵ", "ኩ"},
}
