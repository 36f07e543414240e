package omml

// symbols maps substitution commands to the character they render as.
var symbols = map[string]string{
	// Greek lowercase
	"alpha":      "α",
	"beta":       "β",
	"gamma":      "γ",
	"delta":      "δ",
	"epsilon":    "ε",
	"varepsilon": "ε",
	"zeta":       "ζ",
	"eta":        "η",
	"theta":      "θ",
	"vartheta":   "ϑ",
	"iota":       "ι",
	"kappa":      "κ",
	"lambda":     "λ",
	"mu":         "μ",
	"nu":         "ν",
	"xi":         "ξ",
	"omicron":    "ο",
	"pi":         "π",
	"varpi":      "ϖ",
	"rho":        "ρ",
	"varrho":     "ϱ",
	"sigma":      "σ",
	"varsigma":   "ς",
	"tau":        "τ",
	"upsilon":    "υ",
	"phi":        "φ",
	"varphi":     "φ",
	"chi":        "χ",
	"psi":        "ψ",
	"omega":      "ω",

	// Greek uppercase
	"Gamma":   "Γ",
	"Delta":   "Δ",
	"Theta":   "Θ",
	"Lambda":  "Λ",
	"Xi":      "Ξ",
	"Pi":      "Π",
	"Sigma":   "Σ",
	"Upsilon": "Υ",
	"Phi":     "Φ",
	"Psi":     "Ψ",
	"Omega":   "Ω",

	// Binary operators
	"times":    "×",
	"div":      "÷",
	"pm":       "±",
	"mp":       "∓",
	"cdot":     "⋅",
	"ast":      "∗",
	"star":     "⋆",
	"circ":     "∘",
	"bullet":   "∙",
	"oplus":    "⊕",
	"ominus":   "⊖",
	"otimes":   "⊗",
	"odot":     "⊙",
	"setminus": "∖",

	// Relations
	"leq":    "≤",
	"le":     "≤",
	"geq":    "≥",
	"ge":     "≥",
	"neq":    "≠",
	"ne":     "≠",
	"approx": "≈",
	"equiv":  "≡",
	"sim":    "∼",
	"simeq":  "≃",
	"cong":   "≅",
	"propto": "∝",
	"ll":     "≪",
	"gg":     "≫",
	"prec":   "≺",
	"succ":   "≻",

	// Arrows
	"to":             "→",
	"rightarrow":     "→",
	"leftarrow":      "←",
	"leftrightarrow": "↔",
	"Rightarrow":     "⇒",
	"Leftarrow":      "⇐",
	"Leftrightarrow": "⇔",
	"mapsto":         "↦",
	"uparrow":        "↑",
	"downarrow":      "↓",

	// Set and logic
	"in":         "∈",
	"notin":      "∉",
	"ni":         "∋",
	"subset":     "⊂",
	"supset":     "⊃",
	"subseteq":   "⊆",
	"supseteq":   "⊇",
	"cup":        "∪",
	"cap":        "∩",
	"emptyset":   "∅",
	"varnothing": "∅",
	"forall":     "∀",
	"exists":     "∃",
	"nexists":    "∄",
	"neg":        "¬",
	"lnot":       "¬",
	"wedge":      "∧",
	"land":       "∧",
	"vee":        "∨",
	"lor":        "∨",

	// Miscellaneous
	"infty":     "∞",
	"partial":   "∂",
	"nabla":     "∇",
	"hbar":      "ℏ",
	"ell":       "ℓ",
	"aleph":     "ℵ",
	"Re":        "ℜ",
	"Im":        "ℑ",
	"wp":        "℘",
	"perp":      "⊥",
	"parallel":  "∥",
	"angle":     "∠",
	"triangle":  "△",
	"therefore": "∴",
	"because":   "∵",
	"prime":     "′",
	"degree":    "°",
	"ldots":     "…",
	"dots":      "…",
	"cdots":     "⋯",
	"vdots":     "⋮",
	"ddots":     "⋱",
	"mid":       "∣",

	// Standalone delimiters
	"langle": "⟨",
	"rangle": "⟩",
	"lfloor": "⌊",
	"rfloor": "⌋",
	"lceil":  "⌈",
	"rceil":  "⌉",

	// Escaped literals
	"{": "{",
	"}": "}",
	"$": "$",
	"%": "%",
	"&": "&",
	"#": "#",
	"_": "_",
	"|": "‖",
}

// spacing maps spacing commands to the text they emit.
var spacing = map[string]string{
	" ":     " ",
	",":     " ",
	";":     " ",
	":":     " ",
	"!":     "",
	"quad":  " ",
	"qquad": "  ",
}

// accents maps accent commands to their combining character.
var accents = map[string]string{
	"hat":            "̂",
	"widehat":        "̂",
	"check":          "̌",
	"tilde":          "̃",
	"widetilde":      "̃",
	"acute":          "́",
	"grave":          "̀",
	"dot":            "̇",
	"ddot":           "̈",
	"breve":          "̆",
	"bar":            "̄",
	"vec":            "⃗",
	"mathring":       "̊",
	"overrightarrow": "⃗",
	"overleftarrow":  "⃖",
}

// functions is the set of upright named functions rendered via m:func.
var functions = map[string]bool{
	"sin": true, "cos": true, "tan": true,
	"cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true,
	"sinh": true, "cosh": true, "tanh": true, "coth": true,
	"log": true, "ln": true, "lg": true, "exp": true,
	"det": true, "dim": true, "ker": true, "deg": true,
	"arg": true, "min": true, "max": true,
	"sup": true, "inf": true, "gcd": true, "Pr": true,
	"lim": true,
}

// naryOp describes one n-ary operator.
type naryOp struct {
	chr    string
	limLoc string // "undOvr" for big operators, "subSup" for integrals
}

// naryOps maps n-ary commands to their operator character and default
// bound placement.
var naryOps = map[string]naryOp{
	"sum":       {"∑", "undOvr"},
	"prod":      {"∏", "undOvr"},
	"coprod":    {"∐", "undOvr"},
	"bigcup":    {"⋃", "undOvr"},
	"bigcap":    {"⋂", "undOvr"},
	"bigvee":    {"⋁", "undOvr"},
	"bigwedge":  {"⋀", "undOvr"},
	"bigoplus":  {"⨁", "undOvr"},
	"bigotimes": {"⨂", "undOvr"},
	"bigodot":   {"⨀", "undOvr"},
	"bigsqcup":  {"⨆", "undOvr"},
	"int":       {"∫", "subSup"},
	"iint":      {"∬", "subSup"},
	"iiint":     {"∭", "subSup"},
	"oint":      {"∮", "subSup"},
	"oiint":     {"∯", "subSup"},
}

// matrixEnv describes one matrix-like environment.
type matrixEnv struct {
	beg string
	end string
}

// matrixEnvs maps environment names to the delimiter pair wrapping the
// matrix; the bare "matrix" environment has none.
var matrixEnvs = map[string]matrixEnv{
	"matrix":  {"", ""},
	"pmatrix": {"(", ")"},
	"bmatrix": {"[", "]"},
	"vmatrix": {"|", "|"},
	"Bmatrix": {"{", "}"},
	"Vmatrix": {"‖", "‖"},
}

// leftRightDelims maps delimiter commands usable after \left and \right
// to the character rendered. "." is the invisible delimiter.
var leftRightDelims = map[string]string{
	"langle": "⟨",
	"rangle": "⟩",
	"lfloor": "⌊",
	"rfloor": "⌋",
	"lceil":  "⌈",
	"rceil":  "⌉",
	"{":      "{",
	"}":      "}",
	"|":      "‖",
	"vert":   "|",
	"Vert":   "‖",
}
