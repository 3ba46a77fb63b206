package tagger

// closedClass covers the grammatical words of English. Open-class words are
// left to the suffix heuristics.
var closedClass = map[string]string{
	// determiners
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "that": "DT",
	"these": "DT", "those": "DT", "every": "DT", "each": "DT", "some": "DT",
	"any": "DT", "no": "DT", "another": "DT", "either": "DT", "neither": "DT",

	// predeterminers
	"all": "PDT", "both": "PDT", "half": "PDT", "such": "PDT",

	// pronouns
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP",
	"we": "PRP", "they": "PRP", "me": "PRP", "him": "PRP", "us": "PRP",
	"them": "PRP", "myself": "PRP", "yourself": "PRP", "himself": "PRP",
	"herself": "PRP", "itself": "PRP", "ourselves": "PRP", "themselves": "PRP",

	// possessive pronouns
	"my": "PRP$", "your": "PRP$", "his": "PRP$", "her": "PRP$", "its": "PRP$",
	"our": "PRP$", "their": "PRP$",

	// wh-words
	"which": "WDT", "whatever": "WDT", "whichever": "WDT",
	"who": "WP", "whom": "WP", "what": "WP", "whose": "WP$",
	"when": "WRB", "where": "WRB", "why": "WRB", "how": "WRB",

	// prepositions and subordinating conjunctions
	"in": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN", "with": "IN",
	"about": "IN", "of": "IN", "from": "IN", "into": "IN", "over": "IN",
	"under": "IN", "after": "IN", "before": "IN", "between": "IN",
	"through": "IN", "during": "IN", "without": "IN", "against": "IN",
	"among": "IN", "than": "IN", "since": "IN", "until": "IN", "upon": "IN",
	"because": "IN", "if": "IN", "while": "IN", "although": "IN",
	"though": "IN", "whether": "IN", "like": "IN", "across": "IN",
	"behind": "IN", "below": "IN", "above": "IN", "near": "IN",

	// coordinating conjunctions
	"and": "CC", "or": "CC", "but": "CC", "nor": "CC", "yet": "CC", "so": "CC",

	// modals
	"can": "MD", "could": "MD", "may": "MD", "might": "MD", "must": "MD",
	"shall": "MD", "should": "MD", "will": "MD", "would": "MD",

	"to":    "TO",
	"there": "EX",

	// particles
	"up": "RP", "out": "RP", "off": "RP", "down": "RP", "away": "RP",

	// cardinal numbers
	"one": "CD", "two": "CD", "three": "CD", "four": "CD", "five": "CD",
	"six": "CD", "seven": "CD", "eight": "CD", "nine": "CD", "ten": "CD",
	"hundred": "CD", "thousand": "CD", "million": "CD",

	// auxiliaries
	"be": "VB", "am": "VBP", "is": "VBZ", "are": "VBP", "was": "VBD",
	"were": "VBD", "been": "VBN", "being": "VBG", "have": "VBP", "has": "VBZ",
	"had": "VBD", "do": "VBP", "does": "VBZ", "did": "VBD",

	// frequent adverbs without -ly
	"not": "RB", "very": "RB", "too": "RB", "also": "RB", "never": "RB",
	"always": "RB", "often": "RB", "now": "RB", "then": "RB", "here": "RB",
	"just": "RB", "still": "RB", "again": "RB", "soon": "RB",

	"oh": "UH", "wow": "UH", "hey": "UH",
}
