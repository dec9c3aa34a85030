package grammar

// PlainName is the name of the grammar that classifies everything as Plain.
const PlainName = "plain"

// PlainDefinition produces one Plain token per line.
func PlainDefinition() Definition {
	return Definition{
		Name:    PlainName,
		Aliases: []string{"text", "txt"},
		States:  map[string][]Rule{RootState: {{Pattern: `.+`, Kind: Plain}}},
	}
}

var cStyleComment = []string{"/*", "*/"}

// Builtins returns the definitions of the built-in grammars.
func Builtins() []Definition {
	return []Definition{
		{
			Name:       "rust",
			Aliases:    []string{"rust-like", "rs"},
			Extensions: []string{"rs"},
			Keywords: []string{
				"as", "async", "await", "break", "const", "continue", "crate", "dyn", "else", "enum",
				"extern", "false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move",
				"mut", "pub", "ref", "return", "self", "Self", "static", "struct", "super", "trait",
				"true", "type", "unsafe", "use", "where", "while", "yield",
			},
			Types: []string{
				"bool", "char", "f32", "f64", "i8", "i16", "i32", "i64", "i128", "isize", "str", "u8",
				"u16", "u32", "u64", "u128", "usize", "String", "Vec", "Option", "Result", "Box", "Rc",
				"Arc", "Cell", "RefCell", "HashMap", "HashSet", "BTreeMap", "BTreeSet",
			},
			Constants:        []string{"None", "Some", "Ok", "Err"},
			LineComments:     []string{"//"},
			BlockComment:     cStyleComment,
			MultilineStrings: []string{`"`},
			Chars:            []string{"'"},
		},
		{
			Name:       "python",
			Aliases:    []string{"py", "python3"},
			Extensions: []string{"py", "pyw", "pyi"},
			Keywords: []string{
				"and", "as", "assert", "async", "await", "break", "class", "continue", "def", "del",
				"elif", "else", "except", "finally", "for", "from", "global", "if", "import", "in", "is",
				"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try", "while", "with",
				"yield",
			},
			Types: []string{
				"int", "float", "str", "bool", "list", "dict", "set", "tuple", "bytes", "bytearray",
				"complex", "frozenset", "object", "type",
			},
			Constants:        []string{"True", "False", "None"},
			LineComments:     []string{"#"},
			MultilineStrings: []string{`"""`, `'''`},
			Strings:          []string{`"`, `'`},
		},
		{
			Name:       "javascript",
			Aliases:    []string{"js", "jsx"},
			Extensions: []string{"js", "jsx", "mjs", "cjs"},
			Keywords: []string{
				"async", "await", "break", "case", "catch", "class", "const", "continue", "debugger",
				"default", "delete", "do", "else", "export", "extends", "finally", "for", "function",
				"if", "import", "in", "instanceof", "let", "new", "of", "return", "static", "super",
				"switch", "this", "throw", "try", "typeof", "var", "void", "while", "with", "yield",
			},
			Types: []string{
				"Array", "Boolean", "Date", "Error", "Function", "Map", "Number", "Object", "Promise",
				"RegExp", "Set", "String", "Symbol", "WeakMap", "WeakSet",
			},
			Constants:        []string{"true", "false", "null", "undefined", "NaN", "Infinity"},
			LineComments:     []string{"//"},
			BlockComment:     cStyleComment,
			MultilineStrings: []string{"`"},
			Strings:          []string{`"`, `'`},
			WordPattern:      `[\p{L}_$][\p{L}\p{N}_$]*`,
		},
		{
			Name:       "typescript",
			Aliases:    []string{"ts", "tsx"},
			Extensions: []string{"ts", "tsx", "mts", "cts"},
			Keywords: []string{
				"abstract", "as", "async", "await", "break", "case", "catch", "class", "const",
				"continue", "debugger", "declare", "default", "delete", "do", "else", "enum", "export",
				"extends", "finally", "for", "from", "function", "if", "implements", "import", "in",
				"instanceof", "interface", "let", "module", "namespace", "new", "of", "package",
				"private", "protected", "public", "readonly", "return", "static", "super", "switch",
				"this", "throw", "try", "type", "typeof", "var", "void", "while", "with", "yield",
			},
			Types: []string{
				"any", "boolean", "never", "number", "object", "string", "symbol", "unknown",
				"Array", "Boolean", "Date", "Error", "Function", "Map", "Number", "Object", "Promise",
				"RegExp", "Set", "String", "Symbol", "WeakMap", "WeakSet",
			},
			Constants:        []string{"true", "false", "null", "undefined", "NaN", "Infinity"},
			LineComments:     []string{"//"},
			BlockComment:     cStyleComment,
			MultilineStrings: []string{"`"},
			Strings:          []string{`"`, `'`},
			WordPattern:      `[\p{L}_$][\p{L}\p{N}_$]*`,
		},
		{
			Name:       "c",
			Aliases:    []string{"h"},
			Extensions: []string{"c", "h"},
			Keywords: []string{
				"auto", "break", "case", "const", "continue", "default", "do", "else", "enum", "extern",
				"for", "goto", "if", "inline", "register", "restrict", "return", "sizeof", "static",
				"struct", "switch", "typedef", "union", "volatile", "while", "_Alignas", "_Alignof",
				"_Atomic", "_Bool", "_Complex", "_Generic", "_Imaginary", "_Noreturn", "_Static_assert",
				"_Thread_local",
			},
			Types: []string{
				"char", "double", "float", "int", "long", "short", "signed", "unsigned", "void", "size_t",
				"ssize_t", "ptrdiff_t", "int8_t", "int16_t", "int32_t", "int64_t", "uint8_t", "uint16_t",
				"uint32_t", "uint64_t",
			},
			Constants:    []string{"NULL", "true", "false", "EOF"},
			LineComments: []string{"//"},
			BlockComment: cStyleComment,
			Strings:      []string{`"`},
			Chars:        []string{"'"},
		},
		{
			Name:       "cpp",
			Aliases:    []string{"c++", "cxx"},
			Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx", "h++"},
			Keywords: []string{
				"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor", "break", "case",
				"catch", "class", "compl", "concept", "const", "consteval", "constexpr", "constinit",
				"const_cast", "continue", "co_await", "co_return", "co_yield", "decltype", "default",
				"delete", "do", "dynamic_cast", "else", "enum", "explicit", "export", "extern", "for",
				"friend", "goto", "if", "inline", "mutable", "namespace", "new", "noexcept", "not",
				"not_eq", "operator", "or", "or_eq", "private", "protected", "public",
				"register", "reinterpret_cast", "requires", "return", "sizeof", "static", "static_assert",
				"static_cast", "struct", "switch", "template", "this", "thread_local", "throw", "try",
				"typedef", "typeid", "typename", "union", "using", "virtual", "volatile", "while",
				"xor", "xor_eq",
			},
			Types: []string{
				"bool", "char", "char8_t", "char16_t", "char32_t", "double", "float", "int", "long",
				"short", "signed", "unsigned", "void", "wchar_t", "size_t", "string", "vector", "map",
				"set", "array", "unique_ptr", "shared_ptr", "weak_ptr",
			},
			Constants:    []string{"NULL", "nullptr", "true", "false"},
			LineComments: []string{"//"},
			BlockComment: cStyleComment,
			Strings:      []string{`"`},
			Chars:        []string{"'"},
		},
		{
			Name:       "go",
			Aliases:    []string{"golang"},
			Extensions: []string{"go"},
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer", "else", "fallthrough",
				"for", "func", "go", "goto", "if", "import", "interface", "map", "package", "range",
				"return", "select", "struct", "switch", "type", "var",
			},
			Types: []string{
				"any", "bool", "byte", "comparable", "complex64", "complex128", "error", "float32", "float64",
				"int", "int8", "int16", "int32", "int64", "rune", "string", "uint", "uint8", "uint16", "uint32",
				"uint64", "uintptr",
			},
			Constants:        []string{"true", "false", "nil", "iota"},
			LineComments:     []string{"//"},
			BlockComment:     cStyleComment,
			MultilineStrings: []string{"`"},
			Strings:          []string{`"`},
			Chars:            []string{"'"},
		},
		{
			Name:       "java",
			Extensions: []string{"java"},
			Keywords: []string{
				"abstract", "assert", "break", "case", "catch", "class", "const", "continue", "default",
				"do", "else", "enum", "extends", "final", "finally", "for", "goto", "if", "implements",
				"import", "instanceof", "interface", "native", "new", "package", "private", "protected",
				"public", "return", "static", "strictfp", "super", "switch", "synchronized", "this",
				"throw", "throws", "transient", "try", "volatile", "while",
			},
			Types: []string{
				"boolean", "byte", "char", "double", "float", "int", "long", "short", "void", "String",
				"Integer", "Long", "Double", "Float", "Boolean", "Character", "Byte", "Short", "Object",
				"Class", "List", "Map", "Set", "ArrayList", "HashMap", "HashSet",
			},
			Constants:    []string{"true", "false", "null"},
			LineComments: []string{"//"},
			BlockComment: cStyleComment,
			Strings:      []string{`"`},
			Chars:        []string{"'"},
		},
		{
			Name:       "html",
			Aliases:    []string{"htm", "xhtml", "xml"},
			Extensions: []string{"html", "htm", "xhtml", "xml", "svg"},
			States: map[string][]Rule{
				RootState: {
					{Pattern: `<!--`, Kind: Comment, Next: "comment"},
					{Pattern: `</?[A-Za-z][\w:.-]*`, Kind: Keyword, Next: "tag"},
					{Pattern: `<![A-Za-z][^>]*>?`, Kind: Keyword},
					{Pattern: `&(?:#[0-9]+|#x[0-9a-fA-F]+|[A-Za-z]+);`, Kind: Number},
					{Pattern: `[^<&]+`, Kind: Plain},
				},
				"tag": {
					{Pattern: `\s+`, Kind: Plain},
					{Pattern: `/?>`, Kind: Keyword, Next: RootState},
					{Pattern: `[A-Za-z_:][\w:.-]*`, Kind: Identifier},
					{Pattern: `=`, Kind: Operator},
					{Pattern: `"[^"]*"?`, Kind: String},
					{Pattern: `'[^']*'?`, Kind: String},
				},
				"comment": {
					{Pattern: `-->`, Kind: Comment, Next: RootState},
					{Pattern: `[^-]+`, Kind: Comment},
					{Pattern: `.`, Kind: Comment},
				},
			},
		},
		{
			Name:       "css",
			Aliases:    []string{"scss", "less"},
			Extensions: []string{"css", "scss", "sass", "less"},
			Keywords: []string{
				"import", "media", "charset", "font-face", "keyframes", "supports", "page", "namespace",
				"important",
			},
			Constants: []string{
				"inherit", "initial", "unset", "none", "auto", "transparent", "currentColor",
			},
			LineComments: []string{"//"},
			BlockComment: cStyleComment,
			Strings:      []string{`"`, `'`},
			WordPattern:  `-?[\p{L}_][\p{L}\p{N}_-]*`,
		},
		{
			Name:       "json",
			Aliases:    []string{"jsonc"},
			Extensions: []string{"json", "jsonc", "jsonl"},
			Filenames:  []string{".prettierrc", ".babelrc", ".eslintrc"},
			Constants:  []string{"true", "false", "null"},
			Strings:    []string{`"`},
		},
		{
			Name:         "yaml",
			Aliases:      []string{"yml"},
			Extensions:   []string{"yaml", "yml"},
			Filenames:    []string{".clang-format", ".clang-tidy"},
			Constants:    []string{"true", "false", "null", "yes", "no", "on", "off"},
			LineComments: []string{"#"},
			Strings:      []string{`"`, `'`},
		},
		{
			Name:             "toml",
			Extensions:       []string{"toml"},
			Filenames:        []string{"Cargo.lock", "Pipfile", "poetry.lock"},
			Constants:        []string{"true", "false", "inf", "nan"},
			LineComments:     []string{"#"},
			MultilineStrings: []string{`"""`, `'''`},
			Strings:          []string{`"`, `'`},
		},
		{
			Name:       "markdown",
			Aliases:    []string{"md"},
			Extensions: []string{"md", "markdown", "mdown", "mkdn"},
			Filenames:  []string{"README", "CHANGELOG"},
			States: map[string][]Rule{
				RootState: {
					{Pattern: "```.*", Kind: String, Next: "fence", LineStart: true},
					{Pattern: `#{1,6}(?:\s.*)?$`, Kind: Keyword, LineStart: true},
					{Pattern: `>.*`, Kind: Comment, LineStart: true},
					{Pattern: `\s*(?:[-*+]|[0-9]+[.)])\s`, Kind: Operator, LineStart: true},
					{Pattern: "`[^`]*`?", Kind: String},
					{Pattern: `\*\*[^*]+\*\*|__[^_]+__`, Kind: Keyword},
					{Pattern: `\*[^*\s][^*]*\*|_[^_\s][^_]*_`, Kind: Identifier},
					{Pattern: `!?\[[^\]]*\]\([^)]*\)`, Kind: Identifier},
					{Pattern: `<!--`, Kind: Comment, Next: "comment"},
					{Pattern: "[^`*_!\\[<]+", Kind: Plain},
				},
				"fence": {
					{Pattern: "```\\s*$", Kind: String, Next: RootState, LineStart: true},
					{Pattern: `.+`, Kind: String},
				},
				"comment": {
					{Pattern: `-->`, Kind: Comment, Next: RootState},
					{Pattern: `[^-]+`, Kind: Comment},
					{Pattern: `.`, Kind: Comment},
				},
			},
		},
		{
			Name:       "shell",
			Aliases:    []string{"sh", "bash", "zsh", "fish"},
			Extensions: []string{"sh", "bash", "zsh", "fish"},
			Filenames:  []string{".bashrc", ".bash_profile", ".bash_*", ".zshrc", ".profile", "*.env"},
			Keywords: []string{
				"if", "then", "else", "elif", "fi", "case", "esac", "for", "while", "until", "do", "done",
				"in", "function", "select", "time", "coproc", "return", "exit", "break", "continue",
				"local", "export", "readonly", "declare", "typeset", "unset", "shift", "source", "alias",
				"eval", "exec", "trap",
			},
			Constants:        []string{"true", "false"},
			LineComments:     []string{"#"},
			MultilineStrings: []string{`"`, `'`},
		},
		{
			Name:       "sql",
			Extensions: []string{"sql"},
			IgnoreCase: true,
			Keywords: []string{
				"select", "from", "where", "insert", "update", "delete", "create", "drop", "alter",
				"table", "index", "view", "database", "schema", "into", "values", "set", "and", "or",
				"not", "is", "in", "like", "between", "join", "inner", "left", "right", "outer",
				"on", "as", "order", "by", "group", "having", "limit", "offset", "union", "all",
				"distinct", "primary", "key", "foreign", "references", "constraint", "default", "check",
				"unique", "cascade", "restrict", "trigger", "procedure", "function", "begin", "end",
				"commit", "rollback", "transaction", "grant", "revoke", "if", "else", "case", "when",
				"then", "exists", "any", "some",
			},
			Types: []string{
				"int", "integer", "smallint", "bigint", "decimal", "numeric", "float", "real", "double",
				"char", "varchar", "text", "blob", "date", "time", "datetime", "timestamp", "boolean",
				"bool",
			},
			Constants:    []string{"true", "false", "null"},
			LineComments: []string{"--"},
			BlockComment: cStyleComment,
			Strings:      []string{`'`, `"`},
		},
	}
}
